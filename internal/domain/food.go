package domain

// Nutrient numbers used by FoodData Central dump files.
const (
	NutrientNumberProtein = "203"
	NutrientNumberFat     = "204"
	NutrientNumberCarbs   = "205"
	NutrientNumberEnergy  = "208"
	NutrientNumberPhe     = "508"
)

// Food is one record from a FoodData Central dump file.
type Food struct {
	FdcID             int64              `json:"fdcId"`
	Description       string             `json:"description"`
	FoodCategory      *FoodCategory      `json:"foodCategory,omitempty"`
	WweiaFoodCategory *WweiaFoodCategory `json:"wweiaFoodCategory,omitempty"`
	FoodNutrients     []FoodNutrient     `json:"foodNutrients"`
}

// FoodCategory is the category hint object carried by foundation and
// legacy records.
type FoodCategory struct {
	Description string `json:"description"`
}

// WweiaFoodCategory is the survey-specific category hint object.
type WweiaFoodCategory struct {
	Description string `json:"wweiaFoodCategoryDescription"`
}

// FoodNutrient carries either a nested nutrient reference or a flat
// nutrient number, depending on the dump generation.
type FoodNutrient struct {
	Nutrient       *NutrientRef `json:"nutrient,omitempty"`
	NutrientNumber string       `json:"nutrientNumber,omitempty"`
	Amount         *float64     `json:"amount,omitempty"`
}

// NutrientRef identifies a nutrient in the nested dump shape.
type NutrientRef struct {
	Number string `json:"number"`
}

// Number returns the nutrient number regardless of dump shape.
func (n FoodNutrient) Number() string {
	if n.Nutrient != nil {
		return n.Nutrient.Number
	}
	return n.NutrientNumber
}

// CategoryHint returns the record's auxiliary category text, preferring
// the foodCategory form over the survey-specific one.
func (f Food) CategoryHint() string {
	if f.FoodCategory != nil {
		return f.FoodCategory.Description
	}
	if f.WweiaFoodCategory != nil {
		return f.WweiaFoodCategory.Description
	}
	return ""
}

// NutrientSet holds the fixed nutrient values used downstream, in grams
// per 100g (kcal for energy, grams for phe). Nutrients absent from the
// source record stay 0. The set is built once per record and never
// mutated afterwards.
type NutrientSet struct {
	Protein float64
	Fat     float64
	Carbs   float64
	Energy  float64
	Phe     float64
}
