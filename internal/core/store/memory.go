package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"recipe-recommender/internal/pkg/common"
)

// 編譯期介面檢查
var _ Store = (*MemoryStore)(nil)

// dietKeywords 飲食偏好對應的關鍵字，用於組快照時預先計算 diet_match
var dietKeywords = map[string][]string{
	"vegetarian":  {"vegetarian", "veggie"},
	"vegan":       {"vegan"},
	"pescatarian": {"fish", "seafood"},
}

// UserRecord 儲存層內的使用者紀錄
type UserRecord struct {
	ID               string
	PreferredCuisine string
	CookingSkill     string
	DietType         string
}

// ActivityEvent 收藏或烹煮事件，時間窗統計用
type ActivityEvent struct {
	RecipeID  string
	CreatedAt time.Time
}

// MemoryStore 記憶體版的資料儲存層，併發安全
// 做為預設後端與測試替身使用
type MemoryStore struct {
	mu            sync.RWMutex
	users         map[string]UserRecord
	recipes       map[string]common.RecipeSummary
	savedBy       map[string]map[string]bool // userID -> recipeID -> true
	cookedBy      map[string]map[string]int  // userID -> recipeID -> 次數
	saveEvents    []ActivityEvent
	sessionEvents []ActivityEvent
	collections   map[string][]string
	lists         map[string]*common.ShoppingList
	now           func() time.Time
}

// NewMemoryStore 創建空的記憶體儲存層
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:       make(map[string]UserRecord),
		recipes:     make(map[string]common.RecipeSummary),
		savedBy:     make(map[string]map[string]bool),
		cookedBy:    make(map[string]map[string]int),
		collections: make(map[string][]string),
		lists:       make(map[string]*common.ShoppingList),
		now:         time.Now,
	}
}

// SetClock 替換時鐘，時間窗測試用
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// AddUser 寫入使用者紀錄
func (s *MemoryStore) AddUser(u UserRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// AddRecipe 寫入食譜快照
func (s *MemoryStore) AddRecipe(r common.RecipeSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipes[r.ID] = r
}

// AddSave 記錄一次收藏
func (s *MemoryStore) AddSave(userID, recipeID string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.savedBy[userID] == nil {
		s.savedBy[userID] = make(map[string]bool)
	}
	s.savedBy[userID][recipeID] = true
	s.saveEvents = append(s.saveEvents, ActivityEvent{RecipeID: recipeID, CreatedAt: at})
}

// AddCookingSession 記錄一次烹煮
func (s *MemoryStore) AddCookingSession(userID, recipeID string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cookedBy[userID] == nil {
		s.cookedBy[userID] = make(map[string]int)
	}
	s.cookedBy[userID][recipeID]++
	s.sessionEvents = append(s.sessionEvents, ActivityEvent{RecipeID: recipeID, CreatedAt: at})
}

// AddCollection 寫入收藏集
func (s *MemoryStore) AddCollection(collectionID string, recipeIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collectionID] = append([]string(nil), recipeIDs...)
}

// FetchUserContext 組出使用者情境
func (s *MemoryStore) FetchUserContext(ctx context.Context, userID string) (*common.UserContext, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, common.NewNotFound("user not found: %s", userID)
	}

	uc := &common.UserContext{
		UserID:           u.ID,
		PreferredCuisine: u.PreferredCuisine,
		CookingSkill:     u.CookingSkill,
		DietType:         u.DietType,
		SavedRecipeIDs:   make(map[string]bool, len(s.savedBy[userID])),
		CookedRecipeIDs:  make(map[string]int, len(s.cookedBy[userID])),
	}
	for id := range s.savedBy[userID] {
		uc.SavedRecipeIDs[id] = true
	}
	for id, n := range s.cookedBy[userID] {
		uc.CookedRecipeIDs[id] = n
	}
	return uc, nil
}

// matchesDiet 依原始資料的關鍵字規則判斷食譜是否符合飲食偏好
func matchesDiet(r common.RecipeSummary, dietType string) bool {
	keywords, ok := dietKeywords[strings.ToLower(dietType)]
	if !ok {
		return false
	}
	desc := strings.ToLower(r.Description)
	ingredients := strings.ToLower(r.IngredientsText)
	for _, kw := range keywords {
		if strings.Contains(desc, kw) || strings.Contains(ingredients, kw) {
			return true
		}
	}
	return false
}

// FetchCandidateRecipes 取得公開食譜加上使用者私有食譜
// 組快照時一併補上 diet_match
func (s *MemoryStore) FetchCandidateRecipes(ctx context.Context, userID string, filters common.RecipeFilters) ([]common.RecipeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dietType := ""
	if u, ok := s.users[userID]; ok {
		dietType = u.DietType
	}

	var out []common.RecipeSummary
	for _, r := range s.recipes {
		if !r.IsPublic && (userID == "" || r.OwnerID != userID) {
			continue
		}
		if dietType != "" {
			r.DietMatch = matchesDiet(r, dietType)
		}
		out = append(out, r)
	}

	// 回傳順序固定，讓上層的確定性排序不依賴 map 走訪順序
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// FetchRecipe 取得單一食譜快照
func (s *MemoryStore) FetchRecipe(ctx context.Context, recipeID string) (*common.RecipeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.recipes[recipeID]
	if !ok {
		return nil, common.NewNotFound("recipe not found: %s", recipeID)
	}
	return &r, nil
}

// FetchRecentActivity 統計時間窗內的收藏與烹煮事件
// 時間窗包含起點，事件時間與起點相同仍算在內
func (s *MemoryStore) FetchRecentActivity(ctx context.Context, days int) (map[string]common.RecipeActivity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := s.now().AddDate(0, 0, -days)
	activity := make(map[string]common.RecipeActivity)

	for _, ev := range s.saveEvents {
		if ev.CreatedAt.Before(cutoff) {
			continue
		}
		a := activity[ev.RecipeID]
		a.Saves++
		activity[ev.RecipeID] = a
	}
	for _, ev := range s.sessionEvents {
		if ev.CreatedAt.Before(cutoff) {
			continue
		}
		a := activity[ev.RecipeID]
		a.Sessions++
		activity[ev.RecipeID] = a
	}
	return activity, nil
}

// ResolveCollection 展開收藏集
func (s *MemoryStore) ResolveCollection(ctx context.Context, collectionID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids, ok := s.collections[collectionID]
	if !ok {
		return nil, common.NewNotFound("collection not found: %s", collectionID)
	}
	return append([]string(nil), ids...), nil
}

// PersistShoppingList 保存購物清單
func (s *MemoryStore) PersistShoppingList(ctx context.Context, list *common.ShoppingList) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *list
	stored.Items = append([]common.ShoppingListItem(nil), list.Items...)
	s.lists[stored.ID] = &stored
	return stored.ID, nil
}

// GetShoppingList 讀取購物清單
func (s *MemoryStore) GetShoppingList(ctx context.Context, listID string) (*common.ShoppingList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list, ok := s.lists[listID]
	if !ok {
		return nil, common.NewNotFound("shopping list not found: %s", listID)
	}
	out := *list
	out.Items = append([]common.ShoppingListItem(nil), list.Items...)
	return &out, nil
}

// ListShoppingLists 列出使用者的購物清單，依產生時間排序
func (s *MemoryStore) ListShoppingLists(ctx context.Context, userID string) ([]common.ShoppingList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []common.ShoppingList
	for _, list := range s.lists {
		if list.UserID != userID {
			continue
		}
		copied := *list
		copied.Items = append([]common.ShoppingListItem(nil), list.Items...)
		out = append(out, copied)
	}
	sortShoppingLists(out)
	return out, nil
}

// SetItemChecked 切換購物清單項目的勾選狀態
func (s *MemoryStore) SetItemChecked(ctx context.Context, listID, normalizedName string, checked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, ok := s.lists[listID]
	if !ok {
		return common.NewNotFound("shopping list not found: %s", listID)
	}
	for i := range list.Items {
		if list.Items[i].NormalizedName == normalizedName {
			list.Items[i].IsChecked = checked
			return nil
		}
	}
	return common.NewNotFound("shopping list item not found: %s", normalizedName)
}
