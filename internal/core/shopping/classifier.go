package shopping

import "strings"

// 固定的分類標籤
const (
	CategoryProduce  = "Produce"
	CategoryMeat     = "Meat"
	CategorySeafood  = "Seafood"
	CategoryDairy    = "Dairy"
	CategoryBakery   = "Bakery"
	CategoryPantry   = "Pantry"
	CategorySpice    = "Spice"
	CategoryBeverage = "Beverage"
	CategoryFrozen   = "Frozen"
	CategoryOther    = "Other"
)

// categoryEntry 一個分類與它的關鍵字集合
type categoryEntry struct {
	name     string
	keywords []string
}

// categoryTable 分類關鍵字表，行程啟動後視為唯讀
// 走訪順序固定，多個關鍵字命中時以排前面的分類為準
var categoryTable = []categoryEntry{
	{CategoryProduce, []string{
		"lettuce", "tomato", "onion", "garlic", "potato", "carrot", "celery",
		"pepper", "cucumber", "spinach", "kale", "broccoli", "cauliflower",
		"apple", "banana", "orange", "lemon", "lime", "strawberry", "mushroom",
		"cabbage", "zucchini", "eggplant", "squash", "pumpkin", "ginger", "avocado",
	}},
	{CategoryMeat, []string{
		"chicken", "beef", "pork", "lamb", "turkey", "bacon", "sausage",
		"ground meat", "steak", "ribs", "ham",
	}},
	{CategorySeafood, []string{
		"fish", "salmon", "tuna", "shrimp", "crab", "lobster", "oyster",
		"clam", "squid", "prawn", "cod", "tilapia",
	}},
	{CategoryDairy, []string{
		"milk", "cheese", "butter", "cream", "yogurt", "sour cream", "ice cream",
		"cottage cheese", "cheddar", "mozzarella", "parmesan",
	}},
	{CategoryBakery, []string{
		"bread", "baguette", "roll", "bagel", "tortilla", "pita", "croissant",
	}},
	{CategoryPantry, []string{
		"flour", "sugar", "salt", "oil", "vinegar", "sauce", "pasta",
		"rice", "bean", "lentil", "quinoa", "oat", "cereal", "noodle",
		"ketchup", "mustard", "mayonnaise", "pickle", "relish",
	}},
	{CategorySpice, []string{
		"cinnamon", "cumin", "paprika", "oregano", "basil", "thyme",
		"rosemary", "chili", "curry", "turmeric",
	}},
	{CategoryBeverage, []string{
		"juice", "soda", "water", "wine", "beer", "coffee", "tea",
	}},
	{CategoryFrozen, []string{
		"frozen", "ice",
	}},
}

// categoryRank 分類的固定排序位置，購物清單輸出依此排序
var categoryRank = func() map[string]int {
	rank := make(map[string]int, len(categoryTable)+1)
	for i, entry := range categoryTable {
		rank[entry.name] = i
	}
	rank[CategoryOther] = len(categoryTable)
	return rank
}()

// Classify 以關鍵字子字串比對把正規化後的食材名稱歸類
// 沒有任何關鍵字命中時回傳 Other
func Classify(normalizedName string) string {
	name := strings.ToLower(normalizedName)
	for _, entry := range categoryTable {
		for _, keyword := range entry.keywords {
			if strings.Contains(name, keyword) {
				return entry.name
			}
		}
	}
	return CategoryOther
}

// CategoryRank 取得分類的排序位置，未知分類排在最後
func CategoryRank(category string) int {
	if rank, ok := categoryRank[category]; ok {
		return rank
	}
	return len(categoryTable) + 1
}
