package shopping

import (
	"context"
	"fmt"
	"time"

	"recipe-recommender/internal/core/store"
	"recipe-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// GenerateRequest 購物清單產生請求
// RecipeIDs 與 CollectionID 必須恰好提供其中一個
type GenerateRequest struct {
	RecipeIDs    []string
	CollectionID string
	Name         string
}

// Service 購物清單服務
type Service struct {
	store store.Store
}

// NewService 創建購物清單服務
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// resolveSource 把請求來源展開成具體的食譜 ID 清單
func (s *Service) resolveSource(ctx context.Context, req GenerateRequest) ([]string, error) {
	hasIDs := len(req.RecipeIDs) > 0
	hasCollection := req.CollectionID != ""

	switch {
	case hasIDs && hasCollection:
		return nil, common.NewInvalidParameter("provide either recipe_ids or collection_id, not both")
	case !hasIDs && !hasCollection:
		return nil, common.NewInvalidParameter("provide recipe_ids or collection_id")
	case hasCollection:
		return s.store.ResolveCollection(ctx, req.CollectionID)
	default:
		return req.RecipeIDs, nil
	}
}

// Generate 從食譜產生合併後的購物清單並保存
// 任何一份食譜找不到就整個請求失敗，不會默默跳過
func (s *Service) Generate(ctx context.Context, userID string, req GenerateRequest) (*common.ShoppingList, error) {
	recipeIDs, err := s.resolveSource(ctx, req)
	if err != nil {
		return nil, err
	}

	var parsed []common.ParsedIngredient
	for _, recipeID := range recipeIDs {
		recipe, err := s.store.FetchRecipe(ctx, recipeID)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, ParseIngredientsText(recipe.IngredientsText, recipe.ID)...)
	}

	name := req.Name
	if name == "" {
		name = fmt.Sprintf("Generated from %d recipe(s)", len(recipeIDs))
	}

	list := &common.ShoppingList{
		ID:              common.GenerateUUID(),
		UserID:          userID,
		Name:            name,
		Items:           Merge(parsed),
		SourceRecipeIDs: recipeIDs,
		CollectionID:    req.CollectionID,
		GeneratedAt:     time.Now().UTC(),
	}

	storedID, err := s.store.PersistShoppingList(ctx, list)
	if err != nil {
		return nil, err
	}
	list.ID = storedID

	common.LogInfo("購物清單已產生",
		zap.String("list_id", list.ID),
		zap.String("user_id", userID),
		zap.Int("recipes", len(recipeIDs)),
		zap.Int("items", len(list.Items)),
	)
	return list, nil
}

// Get 讀取已保存的購物清單
func (s *Service) Get(ctx context.Context, listID string) (*common.ShoppingList, error) {
	return s.store.GetShoppingList(ctx, listID)
}

// List 列出使用者的購物清單
func (s *Service) List(ctx context.Context, userID string) ([]common.ShoppingList, error) {
	return s.store.ListShoppingLists(ctx, userID)
}

// SetItemChecked 替呼叫端切換清單項目的勾選狀態
// 這是清單產生後唯一允許的變動，由儲存層執行
func (s *Service) SetItemChecked(ctx context.Context, listID, normalizedName string, checked bool) error {
	return s.store.SetItemChecked(ctx, listID, normalizedName, checked)
}
