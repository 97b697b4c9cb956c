package domain

// Category labels a food record for human-facing reporting. Each
// category maps to exactly one phe coefficient tier; several categories
// share a tier value.
type Category string

const (
	CategoryCheese     Category = "Cheese"
	CategoryEggs       Category = "Eggs"
	CategoryMeat       Category = "Meat"
	CategoryFish       Category = "Fish/Seafood"
	CategoryLegumes    Category = "Legumes"
	CategoryNutsSeeds  Category = "Nuts/Seeds"
	CategoryDairy      Category = "Dairy"
	CategoryPlantMilk  Category = "Plant Milk"
	CategoryBreads     Category = "Breads/Bakery"
	CategoryGrains     Category = "Grains/Pasta"
	CategoryVegetables Category = "Vegetables"
	CategoryFruits     Category = "Fruits"
	CategorySweets     Category = "Sweets"
	CategoryBeverages  Category = "Beverages"
	CategoryOther      Category = "Other"
)

// Coefficient tiers in milligrams of phenylalanine per gram of protein.
// Sweets reuses the "other" tier value under its own label. Beverages
// carry coefficient 0: this model assumes negligible protein-bound phe
// in drinks.
const (
	CoeffHeavyProtein = 50.0
	CoeffNutsLegumes  = 45.0
	CoeffDairy        = 40.0
	CoeffGrainsBread  = 30.0
	CoeffVegFruit     = 25.0
	CoeffOther        = 30.0
	CoeffBeverage     = 0.0
)

// Classification pairs a category label with its phe coefficient.
type Classification struct {
	Category    Category
	Coefficient float64
}

// PheSource records where an output phe value came from.
type PheSource string

const (
	// PheSourceOriginal means the source record reported phe directly.
	PheSourceOriginal PheSource = "original"
	// PheSourceCalculated means phe was derived from protein and the
	// category coefficient.
	PheSourceCalculated PheSource = "calculated"
	// PheSourceEmpty means neither phe nor protein was available.
	PheSourceEmpty PheSource = "empty"
)

// DerivedRecord is one output row of the classification pipeline.
type DerivedRecord struct {
	FdcID     int64     `json:"fdcId"`
	Name      string    `json:"name"`
	Category  Category  `json:"category"`
	Protein   float64   `json:"protein"`
	Phe       float64   `json:"phe"`
	PheSource PheSource `json:"pheSource"`
	Fat       float64   `json:"fat"`
	Carbs     float64   `json:"carbs"`
	Energy    float64   `json:"energy"`
}
