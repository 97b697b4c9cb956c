package domain

// RawProduct is one schema-free catalog entry as returned by the remote
// search API. Fields may be absent, null, or carry mixed types; each is
// consumed exactly once by the extractor and never mutated.
type RawProduct map[string]any

// Nutriments returns the nested nutriment map of a product, or an empty
// map when the record has none.
func (p RawProduct) Nutriments() map[string]any {
	if nutr, ok := p["nutriments"].(map[string]any); ok {
		return nutr
	}
	return map[string]any{}
}

// RemotePage is the outcome of one page fetch. Count is set only when
// the server reported a total result count; degraded pages carry neither
// products nor a count. An empty page does not mean the walk is done —
// it may be a retried/skipped page.
type RemotePage struct {
	Products []RawProduct
	Count    *int64
}

// SearchResponse mirrors the remote search API payload.
type SearchResponse struct {
	Products []RawProduct `json:"products"`
	Count    *int64       `json:"count"`
}
