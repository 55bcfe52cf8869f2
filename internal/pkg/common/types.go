package common

import "time"

// Difficulty 食譜難度
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// RecipeSummary 食譜快照，評分與購物清單產生時使用的不可變資料
// 由外部資料儲存層提供，核心不會修改它
type RecipeSummary struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Cuisine         string     `json:"cuisine"`
	Difficulty      Difficulty `json:"difficulty"`
	TotalTime       int        `json:"total_time"` // 分鐘，>= 0
	IsPublic        bool       `json:"is_public"`
	OwnerID         string     `json:"owner_id,omitempty"`
	AverageRating   *float64   `json:"average_rating,omitempty"` // 0-5，可能缺少
	DietMatch       bool       `json:"diet_match"`               // 由儲存層預先計算
	Description     string     `json:"description,omitempty"`
	IngredientsText string     `json:"ingredients_text"` // 自由格式的食材清單
	CreatedAt       time.Time  `json:"created_at"`
}

// UserContext 每次推薦請求組出的使用者情境
// 所有選填欄位缺少時代表不套用對應的評分條款
type UserContext struct {
	UserID           string          `json:"user_id"`
	PreferredCuisine string          `json:"preferred_cuisine,omitempty"`
	CookingSkill     string          `json:"cooking_skill,omitempty"` // 與難度對照時不分大小寫
	DietType         string          `json:"diet_type,omitempty"`
	SavedRecipeIDs   map[string]bool `json:"saved_recipe_ids,omitempty"`
	CookedRecipeIDs  map[string]int  `json:"cooked_recipe_ids,omitempty"` // recipe_id -> 烹煮次數
}

// IsSaved 檢查食譜是否已被收藏
func (uc *UserContext) IsSaved(recipeID string) bool {
	return uc.SavedRecipeIDs[recipeID]
}

// CookCount 取得食譜的烹煮次數
func (uc *UserContext) CookCount(recipeID string) int {
	return uc.CookedRecipeIDs[recipeID]
}

// ScoredRecommendation 單一食譜的推薦結果，每次請求重新計算
type ScoredRecommendation struct {
	Recipe  RecipeSummary `json:"recipe"`
	Score   float64       `json:"score"`   // 已夾限於 [0,100]
	Reasons []string      `json:"reasons"` // 依評分條款順序排列
}

// RecipeActivity 單一食譜在活動時間窗內的統計
type RecipeActivity struct {
	Saves    int `json:"saves"`
	Sessions int `json:"sessions"`
}

// RecipeFilters 推薦候選的過濾條件
type RecipeFilters struct {
	Cuisine    string `json:"cuisine,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	MaxTime    int    `json:"max_time,omitempty"` // 0 代表不限制
}

// ParsedIngredient 解析後的食材行，分類後不再變動
type ParsedIngredient struct {
	NormalizedName string `json:"normalized_name"` // 小寫、去除標點、已做單數化
	RawQuantity    string `json:"raw_quantity,omitempty"`
	Category       string `json:"category"`
	SourceRecipeID string `json:"source_recipe_id"`
}

// QuantityContribution 購物清單項目的單筆來源紀錄
type QuantityContribution struct {
	RawQuantity    string `json:"raw_quantity,omitempty"`
	SourceRecipeID string `json:"source_recipe_id"`
}

// ShoppingListItem 合併後的購物清單項目
// 同一份清單內每個 normalized_name 至多出現一次
type ShoppingListItem struct {
	NormalizedName string                 `json:"normalized_name"`
	Category       string                 `json:"category"`
	Contributions  []QuantityContribution `json:"contributions"`
	IsChecked      bool                   `json:"is_checked"` // 之後只由呼叫端透過儲存層切換
}

// ShoppingList 一次產生的完整購物清單
type ShoppingList struct {
	ID              string             `json:"id"`
	UserID          string             `json:"user_id,omitempty"`
	Name            string             `json:"name"`
	Items           []ShoppingListItem `json:"items"`
	SourceRecipeIDs []string           `json:"source_recipe_ids,omitempty"`
	CollectionID    string             `json:"collection_id,omitempty"`
	GeneratedAt     time.Time          `json:"generated_at"`
}

// RecommendationSummary 使用者推薦因子摘要
type RecommendationSummary struct {
	TotalRecipes         int    `json:"total_recipes"`
	SavedRecipes         int    `json:"saved_recipes"`
	CookedRecipes        int    `json:"cooked_recipes"`
	PreferredCuisine     string `json:"preferred_cuisine,omitempty"`
	MatchingCuisineCount int    `json:"matching_cuisine_count"`
	CookingSkill         string `json:"cooking_skill,omitempty"`
	DietType             string `json:"diet_type,omitempty"`
}
