package autocomplete

// Built-in datasets used on first startup or when a category's on-disk cache
// is missing or unusable. Real data replaces these on the first reload.
var seedData = map[string][]string{
	"products": {
		"protein powder", "whey isolate", "casein protein", "creatine monohydrate",
		"bcaa powder", "eaa powder", "pre workout", "fat burner", "mass gainer",
		"multivitamin", "omega-3", "fish oil", "vitamin d", "magnesium", "zinc",
		"jacked3d", "c4", "pre-jym", "superpump250", "gold standard",
	},
	"brands": {
		"optimum nutrition", "dymatize", "muscle tech", "bpi sports",
		"cellucor", "ghost", "quest nutrition", "gold standard",
		"isopure", "gnc", "vitamin shoppe", "nature made",
	},
}

// seedWords returns the seed dataset for a category. Categories added via
// config without seed data start empty and fill on their first reload.
func seedWords(category string) []string {
	return seedData[category]
}
