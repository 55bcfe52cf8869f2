package recommend

import (
	"context"
	"sort"
	"strings"

	"recipe-recommender/internal/core/store"
	"recipe-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// 查詢參數的固定邊界
const (
	minLimit = 1
	maxLimit = 50
	minDays  = 1
	maxDays  = 365
)

// Service 推薦服務，對儲存層做查詢後套用純函數計算
type Service struct {
	store store.Store
}

// NewService 創建推薦服務
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// validateLimit 檢查回傳數量上限
func validateLimit(limit int) error {
	if limit < minLimit || limit > maxLimit {
		return common.NewInvalidParameter("limit must be between %d and %d, got %d", minLimit, maxLimit, limit)
	}
	return nil
}

// applyFilters 在評分前套用過濾條件
// 菜系過濾沿用原始資料的不分大小寫子字串比對，難度為完全相等
func applyFilters(recipes []common.RecipeSummary, f common.RecipeFilters) []common.RecipeSummary {
	var out []common.RecipeSummary
	for _, r := range recipes {
		if f.Cuisine != "" && !strings.Contains(strings.ToLower(r.Cuisine), strings.ToLower(f.Cuisine)) {
			continue
		}
		if f.Difficulty != "" && string(r.Difficulty) != f.Difficulty {
			continue
		}
		if f.MaxTime > 0 && r.TotalTime > f.MaxTime {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Recommend 為使用者產生個人化推薦
// 每個候選都重新評分，分數遞減排序，同分以食譜 ID 遞增決勝
func (s *Service) Recommend(ctx context.Context, userID string, limit int, filters common.RecipeFilters) ([]common.ScoredRecommendation, error) {
	if err := validateLimit(limit); err != nil {
		return nil, err
	}
	if filters.MaxTime < 0 {
		return nil, common.NewInvalidParameter("max_time must not be negative, got %d", filters.MaxTime)
	}

	uc, err := s.store.FetchUserContext(ctx, userID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.store.FetchCandidateRecipes(ctx, userID, filters)
	if err != nil {
		return nil, err
	}
	candidates = applyFilters(candidates, filters)

	scored := make([]common.ScoredRecommendation, 0, len(candidates))
	for _, recipe := range candidates {
		scored = append(scored, Score(recipe, *uc))
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Recipe.ID < scored[j].Recipe.ID
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}

	common.LogDebug("推薦計算完成",
		zap.String("user_id", userID),
		zap.Int("candidates", len(candidates)),
		zap.Int("returned", len(scored)),
	)
	return scored, nil
}

// Trending 依時間窗內的活動量排出熱門食譜
func (s *Service) Trending(ctx context.Context, days, limit int) ([]common.RecipeSummary, error) {
	if days < minDays || days > maxDays {
		return nil, common.NewInvalidParameter("days must be between %d and %d, got %d", minDays, maxDays, days)
	}
	if err := validateLimit(limit); err != nil {
		return nil, err
	}

	recipes, err := s.store.FetchCandidateRecipes(ctx, "", common.RecipeFilters{})
	if err != nil {
		return nil, err
	}
	activity, err := s.store.FetchRecentActivity(ctx, days)
	if err != nil {
		return nil, err
	}

	return RankByActivity(recipes, activity, limit), nil
}

// Similar 找出與參考食譜屬性相近的食譜
func (s *Service) Similar(ctx context.Context, recipeID string, limit int) ([]common.RecipeSummary, error) {
	if err := validateLimit(limit); err != nil {
		return nil, err
	}

	reference, err := s.store.FetchRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.store.FetchCandidateRecipes(ctx, "", common.RecipeFilters{})
	if err != nil {
		return nil, err
	}

	return RankBySimilarity(*reference, candidates, limit), nil
}

// Summary 整理使用者的推薦因子摘要
func (s *Service) Summary(ctx context.Context, userID string) (*common.RecommendationSummary, error) {
	uc, err := s.store.FetchUserContext(ctx, userID)
	if err != nil {
		return nil, err
	}

	recipes, err := s.store.FetchCandidateRecipes(ctx, userID, common.RecipeFilters{})
	if err != nil {
		return nil, err
	}

	matchingCuisine := 0
	if uc.PreferredCuisine != "" {
		needle := strings.ToLower(uc.PreferredCuisine)
		for _, r := range recipes {
			if strings.Contains(strings.ToLower(r.Cuisine), needle) {
				matchingCuisine++
			}
		}
	}

	return &common.RecommendationSummary{
		TotalRecipes:         len(recipes),
		SavedRecipes:         len(uc.SavedRecipeIDs),
		CookedRecipes:        len(uc.CookedRecipeIDs),
		PreferredCuisine:     uc.PreferredCuisine,
		MatchingCuisineCount: matchingCuisine,
		CookingSkill:         uc.CookingSkill,
		DietType:             uc.DietType,
	}, nil
}
