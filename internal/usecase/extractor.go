package usecase

import (
	"strconv"
	"strings"

	"github.com/phetrack/pipeline/internal/domain"
)

// FetchHeader is the fetch pipeline's output schema. ExtractProductRow
// must produce fields in exactly this order.
var FetchHeader = []string{
	"code",
	"product_name",
	"generic_name",
	"brands",
	"categories",
	"countries",
	"proteins_100g",
	"fat_100g",
	"carbohydrates_100g",
	"sugars_100g",
	"fiber_100g",
	"salt_100g",
	"energy_kcal_100g",
	"energy_kj_100g",
	"url",
	"image_url",
}

// ExtractProductRow shapes one raw product into the fixed 16-field row.
// Pure: absent or null fields become empty strings, never an error.
func ExtractProductRow(p domain.RawProduct) []string {
	nutr := p.Nutriments()

	return []string{
		cleanString(p["code"]),
		cleanString(p["product_name"]),
		cleanString(p["generic_name"]),
		cleanString(p["brands"]),
		cleanString(p["categories"]),
		cleanString(p["countries"]),

		NormalizeNumber(nutr["proteins_100g"]),
		NormalizeNumber(nutr["fat_100g"]),
		NormalizeNumber(nutr["carbohydrates_100g"]),
		NormalizeNumber(nutr["sugars_100g"]),
		NormalizeNumber(nutr["fiber_100g"]),
		NormalizeNumber(nutr["salt_100g"]),

		NormalizeNumber(nutr["energy-kcal_100g"]),
		NormalizeNumber(nutr["energy_100g"]),

		cleanString(p["url"]),
		cleanString(p["image_url"]),
	}
}

// cleanString renders a source value as a trimmed string; nil becomes
// the empty string. Barcode-like numeric values are rendered without an
// exponent.
func cleanString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

// NormalizeNumber renders a numeric source value with a comma as the
// fractional separator, the locale contract downstream consumers
// expect. Absent or unparseable values become the empty string — never
// a zero that could be confused with a real zero.
func NormalizeNumber(v any) string {
	var f float64

	switch n := v.(type) {
	case nil:
		return ""
	case float64:
		f = n
	case string:
		if strings.TrimSpace(n) == "" {
			return ""
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return ""
		}
		f = parsed
	default:
		return ""
	}

	return strings.Replace(strconv.FormatFloat(f, 'f', -1, 64), ".", ",", 1)
}

// FormatFixed renders a value rounded to the given number of decimals,
// with a dot separator.
func FormatFixed(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
