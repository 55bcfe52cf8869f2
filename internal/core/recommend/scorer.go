package recommend

import (
	"fmt"
	"strings"

	"recipe-recommender/internal/pkg/common"
)

// 評分權重，行程啟動後視為唯讀
const (
	baseScore      = 50.0
	cuisineBonus   = 20.0
	skillBonus     = 15.0
	dietBonus      = 15.0
	ratingBonus    = 10.0
	quickBonus     = 5.0
	noveltyBonus   = 5.0
	savedPenalty   = 5.0
	perCookPenalty = 3.0

	ratingThreshold = 4.0
	quickTimeLimit  = 60 // 分鐘

	minScore = 0.0
	maxScore = 100.0
)

// skillDifficultyMap 烹飪技能對應的食譜難度
var skillDifficultyMap = map[string]common.Difficulty{
	"beginner":     common.DifficultyEasy,
	"intermediate": common.DifficultyMedium,
	"advanced":     common.DifficultyHard,
	"expert":       common.DifficultyHard,
}

// Score 計算單一食譜對單一使用者情境的推薦分數
// 純函數：相同輸入必得相同分數與理由，理由依條款順序排列，
// 扣分條款不產生理由；夾限只在所有加減項累計完後做一次
func Score(recipe common.RecipeSummary, uc common.UserContext) common.ScoredRecommendation {
	score := baseScore
	var reasons []string

	// 偏好菜系（不分大小寫的相等比較）
	if uc.PreferredCuisine != "" && strings.EqualFold(recipe.Cuisine, uc.PreferredCuisine) {
		score += cuisineBonus
		reasons = append(reasons, fmt.Sprintf("Matches your preferred cuisine: %s", recipe.Cuisine))
	}

	// 技能與難度對照
	if uc.CookingSkill != "" {
		if preferred, ok := skillDifficultyMap[strings.ToLower(uc.CookingSkill)]; ok && preferred == recipe.Difficulty {
			score += skillBonus
			reasons = append(reasons, fmt.Sprintf("Matches your skill level: %s", recipe.Difficulty))
		}
	}

	// 飲食偏好：判斷委派給儲存層，這裡只消費預先算好的布林值
	if uc.DietType != "" && recipe.DietMatch {
		score += dietBonus
		reasons = append(reasons, "Matches your dietary preference")
	}

	// 高評價
	if recipe.AverageRating != nil && *recipe.AverageRating >= ratingThreshold {
		score += ratingBonus
		reasons = append(reasons, "Highly rated by other users")
	}

	// 快速料理
	if recipe.TotalTime <= quickTimeLimit {
		score += quickBonus
		reasons = append(reasons, fmt.Sprintf("Quick to make (%d mins)", recipe.TotalTime))
	}

	// 新鮮感：沒收藏也沒煮過
	saved := uc.IsSaved(recipe.ID)
	cookCount := uc.CookCount(recipe.ID)
	if !saved && cookCount == 0 {
		score += noveltyBonus
		reasons = append(reasons, "New recipe to try")
	}

	// 扣分條款，不加理由
	if saved {
		score -= savedPenalty
	}
	score -= perCookPenalty * float64(cookCount)

	// 夾限到 [0,100]
	if score > maxScore {
		score = maxScore
	}
	if score < minScore {
		score = minScore
	}

	return common.ScoredRecommendation{
		Recipe:  recipe,
		Score:   score,
		Reasons: reasons,
	}
}
