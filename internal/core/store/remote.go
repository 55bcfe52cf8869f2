package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"recipe-recommender/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

// 編譯期介面檢查
var _ Store = (*RemoteStore)(nil)

// RemoteStore 透過 HTTP 存取上游記錄服務的儲存層
// 上游無回應或回傳 5xx 時一律回報 UpstreamUnavailable，不重試、
// 也不以部分資料頂替；404 直接轉成 NotFound
type RemoteStore struct {
	client *resty.Client
}

// NewRemoteStore 創建遠端儲存層
func NewRemoteStore(baseURL string, timeout time.Duration) *RemoteStore {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &RemoteStore{client: client}
}

// do 發送請求並統一處理錯誤分類與解碼
func (s *RemoteStore) do(ctx context.Context, operation string, req func(r *resty.Request) (*resty.Response, error), out interface{}) error {
	start := time.Now()
	resp, err := req(s.client.R().SetContext(ctx))
	common.LogStoreCall(operation, time.Since(start), err)

	if err != nil {
		return common.NewUpstreamUnavailable(fmt.Errorf("%s: %w", operation, err))
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return common.NewNotFound("%s: upstream returned 404", operation)
	case resp.StatusCode() >= http.StatusBadRequest:
		return common.NewUpstreamUnavailable(fmt.Errorf("%s: upstream returned %d: %s", operation, resp.StatusCode(), resp.String()))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return common.NewUpstreamUnavailable(fmt.Errorf("%s: failed to parse upstream response: %w", operation, err))
	}
	return nil
}

// FetchUserContext 取得使用者情境
func (s *RemoteStore) FetchUserContext(ctx context.Context, userID string) (*common.UserContext, error) {
	var uc common.UserContext
	err := s.do(ctx, "fetch_user_context", func(r *resty.Request) (*resty.Response, error) {
		return r.Get(fmt.Sprintf("/users/%s/context", url.PathEscape(userID)))
	}, &uc)
	if err != nil {
		return nil, err
	}
	return &uc, nil
}

// FetchCandidateRecipes 取得候選食譜，filters 做為查詢參數傳給上游粗過濾
func (s *RemoteStore) FetchCandidateRecipes(ctx context.Context, userID string, filters common.RecipeFilters) ([]common.RecipeSummary, error) {
	var recipes []common.RecipeSummary
	err := s.do(ctx, "fetch_candidate_recipes", func(r *resty.Request) (*resty.Response, error) {
		if userID != "" {
			r.SetQueryParam("user_id", userID)
		}
		if filters.Cuisine != "" {
			r.SetQueryParam("cuisine", filters.Cuisine)
		}
		if filters.Difficulty != "" {
			r.SetQueryParam("difficulty", filters.Difficulty)
		}
		if filters.MaxTime > 0 {
			r.SetQueryParam("max_time", strconv.Itoa(filters.MaxTime))
		}
		return r.Get("/recipes")
	}, &recipes)
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// FetchRecipe 取得單一食譜快照
func (s *RemoteStore) FetchRecipe(ctx context.Context, recipeID string) (*common.RecipeSummary, error) {
	var recipe common.RecipeSummary
	err := s.do(ctx, "fetch_recipe", func(r *resty.Request) (*resty.Response, error) {
		return r.Get(fmt.Sprintf("/recipes/%s", url.PathEscape(recipeID)))
	}, &recipe)
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// FetchRecentActivity 取得時間窗內的活動統計
func (s *RemoteStore) FetchRecentActivity(ctx context.Context, days int) (map[string]common.RecipeActivity, error) {
	activity := make(map[string]common.RecipeActivity)
	err := s.do(ctx, "fetch_recent_activity", func(r *resty.Request) (*resty.Response, error) {
		return r.SetQueryParam("days", strconv.Itoa(days)).Get("/activity")
	}, &activity)
	if err != nil {
		return nil, err
	}
	return activity, nil
}

// ResolveCollection 展開收藏集
func (s *RemoteStore) ResolveCollection(ctx context.Context, collectionID string) ([]string, error) {
	var ids []string
	err := s.do(ctx, "resolve_collection", func(r *resty.Request) (*resty.Response, error) {
		return r.Get(fmt.Sprintf("/collections/%s/recipes", url.PathEscape(collectionID)))
	}, &ids)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// PersistShoppingList 保存購物清單
func (s *RemoteStore) PersistShoppingList(ctx context.Context, list *common.ShoppingList) (string, error) {
	var stored struct {
		ID string `json:"id"`
	}
	err := s.do(ctx, "persist_shopping_list", func(r *resty.Request) (*resty.Response, error) {
		return r.SetHeader("Content-Type", "application/json").SetBody(list).Post("/shopping-lists")
	}, &stored)
	if err != nil {
		return "", err
	}
	if stored.ID == "" {
		return list.ID, nil
	}
	return stored.ID, nil
}

// GetShoppingList 讀取購物清單
func (s *RemoteStore) GetShoppingList(ctx context.Context, listID string) (*common.ShoppingList, error) {
	var list common.ShoppingList
	err := s.do(ctx, "get_shopping_list", func(r *resty.Request) (*resty.Response, error) {
		return r.Get(fmt.Sprintf("/shopping-lists/%s", url.PathEscape(listID)))
	}, &list)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// ListShoppingLists 列出使用者的購物清單
func (s *RemoteStore) ListShoppingLists(ctx context.Context, userID string) ([]common.ShoppingList, error) {
	var lists []common.ShoppingList
	err := s.do(ctx, "list_shopping_lists", func(r *resty.Request) (*resty.Response, error) {
		return r.SetQueryParam("user_id", userID).Get("/shopping-lists")
	}, &lists)
	if err != nil {
		return nil, err
	}
	return lists, nil
}

// SetItemChecked 切換購物清單項目的勾選狀態
func (s *RemoteStore) SetItemChecked(ctx context.Context, listID, normalizedName string, checked bool) error {
	body := map[string]bool{"is_checked": checked}
	return s.do(ctx, "set_item_checked", func(r *resty.Request) (*resty.Response, error) {
		return r.SetHeader("Content-Type", "application/json").
			SetBody(body).
			Patch(fmt.Sprintf("/shopping-lists/%s/items/%s", url.PathEscape(listID), url.PathEscape(normalizedName)))
	}, nil)
}
