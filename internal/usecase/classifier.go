package usecase

import (
	"strings"

	"github.com/phetrack/pipeline/internal/domain"
)

// Keyword vocabularies per category. Matching is substring-based over
// the lower-cased description plus category hint, so compound words
// count ("cheeseburger" hits "cheese"). "pea " keeps its trailing space
// to avoid matching "peach" and "pear".
var (
	cheeseKeywords = []string{
		"cheese", "cheddar", "parmesan", "mozzarella", "brie", "camembert",
		"feta", "gouda", "provolone", "swiss", "ricotta", "cottage", "curd",
	}
	eggKeywords = []string{"egg", "yolk", "white", "omelet"}
	meatKeywords = []string{
		"meat", "beef", "pork", "chicken", "turkey", "lamb", "veal", "bacon",
		"sausage", "ham", "steak", "burger", "salami", "poultry",
		"frankfurter", "liver", "kidney", "heart",
	}
	fishKeywords = []string{
		"fish", "salmon", "tuna", "cod", "trout", "shrimp", "crab", "lobster",
		"oyster", "mussel", "clam", "sardine", "anchovy", "seafood", "sushi",
		"caviar",
	}
	legumeKeywords = []string{
		"bean", "lentil", "soy", "tofu", "hummus", "pea ", "peas", "chickpea",
		"peanut", "edamame", "miso",
	}
	nutKeywords = []string{
		"nut", "almond", "walnut", "cashew", "pecan", "pistachio", "macadamia",
		"hazelnut", "seeds", "sunflower", "pumpkin seed", "flax", "chia",
		"sesame", "tahini",
	}
	dairyKeywords = []string{
		"milk", "yogurt", "cream", "dairy", "latte", "cappuccino",
		"buttermilk", "kefir", "whey", "casein", "ice cream", "custard",
		"pudding",
	}
	plantMilkKeywords = []string{"coconut", "almond", "soy", "oat"}
	breadKeywords     = []string{
		"bread", "toast", "bagel", "roll", "bun", "croissant", "muffin",
		"pancake", "waffle", "biscuit", "cookie", "cracker", "cake", "pie",
		"pastry", "dough", "pizza", "sandwich", "brownie", "donut",
		"tortilla", "pita", "flatbread",
	}
	grainKeywords = []string{
		"pasta", "spaghetti", "macaroni", "noodle", "ravioli", "lasagna",
		"vermicelli", "rice", "oat", "barley", "rye", "wheat", "buckwheat",
		"quinoa", "millet", "bulgur", "couscous", "cornmeal", "cereal",
		"granola", "flour", "semolina", "bran", "germ", "starch",
	}
	vegetableKeywords = []string{
		"vegetable", "potato", "tomato", "carrot", "onion", "corn",
		"cucumber", "lettuce", "spinach", "broccoli", "cabbage",
		"cauliflower", "pepper", "mushroom", "squash", "zucchini", "eggplant",
		"salad",
		"soup", "stew", "garlic", "celery", "asparagus", "kale", "avocado",
		"olive",
	}
	fruitKeywords = []string{
		"fruit", "apple", "banana", "orange", "juice", "berry", "grape",
		"pear", "peach", "apricot", "plum", "melon", "watermelon",
		"pineapple", "mango", "kiwi", "lemon", "lime", "cherry",
		"strawberry", "raspberry", "blueberry", "raisin", "date", "fig",
		"prune",
	}
	sweetKeywords = []string{
		"chocolate", "candy", "sugar", "honey", "syrup", "jam", "jelly",
		"marmalade", "gum", "cocoa",
	}
	beverageKeywords = []string{
		"water", "tea", "coffee", "soda", "cola", "beer", "wine", "alcohol",
		"liquor", "drink", "beverage", "lemonade",
	}
)

// rule pairs a predicate with a classification outcome.
type rule struct {
	match  func(text string) bool
	result domain.Classification
}

// classificationRules are evaluated in order, first match wins. Order
// matters because the vocabularies overlap lexically: "cheese pizza"
// must hit Cheese before Breads/Bakery ever sees "pizza". Exclusions
// and overrides are extra predicate clauses on the relevant rule: the
// eggplant guard on Eggs, and Plant Milk as a dedicated combined rule
// ahead of the legume, nut and dairy rules (plant-based milks are
// scored on the nuts/legumes tier).
var classificationRules = []rule{
	{
		match:  func(t string) bool { return containsAny(t, cheeseKeywords) },
		result: domain.Classification{Category: domain.CategoryCheese, Coefficient: domain.CoeffHeavyProtein},
	},
	{
		match: func(t string) bool {
			return containsAny(t, eggKeywords) && !strings.Contains(t, "eggplant")
		},
		result: domain.Classification{Category: domain.CategoryEggs, Coefficient: domain.CoeffHeavyProtein},
	},
	{
		match:  func(t string) bool { return containsAny(t, meatKeywords) },
		result: domain.Classification{Category: domain.CategoryMeat, Coefficient: domain.CoeffHeavyProtein},
	},
	{
		match:  func(t string) bool { return containsAny(t, fishKeywords) },
		result: domain.Classification{Category: domain.CategoryFish, Coefficient: domain.CoeffHeavyProtein},
	},
	{
		// Ahead of the legume and nut rules so "almond milk" and
		// "soy milk" resolve as milks rather than by their base plant.
		match: func(t string) bool {
			return containsAny(t, dairyKeywords) && containsAny(t, plantMilkKeywords)
		},
		result: domain.Classification{Category: domain.CategoryPlantMilk, Coefficient: domain.CoeffNutsLegumes},
	},
	{
		match:  func(t string) bool { return containsAny(t, legumeKeywords) },
		result: domain.Classification{Category: domain.CategoryLegumes, Coefficient: domain.CoeffNutsLegumes},
	},
	{
		match:  func(t string) bool { return containsAny(t, nutKeywords) },
		result: domain.Classification{Category: domain.CategoryNutsSeeds, Coefficient: domain.CoeffNutsLegumes},
	},
	{
		match:  func(t string) bool { return containsAny(t, dairyKeywords) },
		result: domain.Classification{Category: domain.CategoryDairy, Coefficient: domain.CoeffDairy},
	},
	{
		match:  func(t string) bool { return containsAny(t, breadKeywords) },
		result: domain.Classification{Category: domain.CategoryBreads, Coefficient: domain.CoeffGrainsBread},
	},
	{
		match:  func(t string) bool { return containsAny(t, grainKeywords) },
		result: domain.Classification{Category: domain.CategoryGrains, Coefficient: domain.CoeffGrainsBread},
	},
	{
		match:  func(t string) bool { return containsAny(t, vegetableKeywords) },
		result: domain.Classification{Category: domain.CategoryVegetables, Coefficient: domain.CoeffVegFruit},
	},
	{
		match:  func(t string) bool { return containsAny(t, fruitKeywords) },
		result: domain.Classification{Category: domain.CategoryFruits, Coefficient: domain.CoeffVegFruit},
	},
	{
		match:  func(t string) bool { return containsAny(t, sweetKeywords) },
		result: domain.Classification{Category: domain.CategorySweets, Coefficient: domain.CoeffOther},
	},
	{
		match:  func(t string) bool { return containsAny(t, beverageKeywords) },
		result: domain.Classification{Category: domain.CategoryBeverages, Coefficient: domain.CoeffBeverage},
	},
}

// Classify maps a food description plus category hint to a category
// label and phe coefficient. It is pure and total: empty inputs fall
// through every rule to the Other default.
func Classify(name, categoryHint string) domain.Classification {
	text := strings.ToLower(name + " " + categoryHint)

	for _, r := range classificationRules {
		if r.match(text) {
			return r.result
		}
	}

	return domain.Classification{Category: domain.CategoryOther, Coefficient: domain.CoeffOther}
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
