package store

import (
	"context"
	"sort"

	"recipe-recommender/internal/pkg/common"
)

// Store 外部資料儲存層介面
// 核心只透過這個介面取得快照與寫入新產生的購物清單，
// 任何後端失敗都以 common 的錯誤分類回報，核心不重試
type Store interface {
	// FetchUserContext 取得使用者情境，未知使用者回傳 NotFound
	FetchUserContext(ctx context.Context, userID string) (*common.UserContext, error)

	// FetchCandidateRecipes 取得候選食譜：公開食譜加上該使用者私有的食譜
	// userID 為空字串時只回傳公開食譜；後端可以先做粗過濾，
	// 核心仍會在評分前重新套用 filters
	FetchCandidateRecipes(ctx context.Context, userID string, filters common.RecipeFilters) ([]common.RecipeSummary, error)

	// FetchRecipe 取得單一食譜快照，不存在回傳 NotFound
	FetchRecipe(ctx context.Context, recipeID string) (*common.RecipeSummary, error)

	// FetchRecentActivity 取得時間窗內每個食譜的收藏與烹煮次數
	FetchRecentActivity(ctx context.Context, days int) (map[string]common.RecipeActivity, error)

	// ResolveCollection 將收藏集展開成食譜 ID 清單，不存在回傳 NotFound
	ResolveCollection(ctx context.Context, collectionID string) ([]string, error)

	// PersistShoppingList 保存新產生的購物清單並回傳儲存後的 ID
	PersistShoppingList(ctx context.Context, list *common.ShoppingList) (string, error)

	// GetShoppingList 讀取已保存的購物清單，不存在回傳 NotFound
	GetShoppingList(ctx context.Context, listID string) (*common.ShoppingList, error)

	// ListShoppingLists 列出使用者的購物清單
	ListShoppingLists(ctx context.Context, userID string) ([]common.ShoppingList, error)

	// SetItemChecked 切換購物清單項目的勾選狀態，由呼叫端使用，核心不會呼叫
	SetItemChecked(ctx context.Context, listID, normalizedName string, checked bool) error
}

// sortShoppingLists 讓 ListShoppingLists 的回傳順序與後端無關：
// 依產生時間由舊到新排序，相同時間再以清單 ID 決勝
func sortShoppingLists(lists []common.ShoppingList) {
	sort.Slice(lists, func(i, j int) bool {
		if lists[i].GeneratedAt.Equal(lists[j].GeneratedAt) {
			return lists[i].ID < lists[j].ID
		}
		return lists[i].GeneratedAt.Before(lists[j].GeneratedAt)
	})
}
