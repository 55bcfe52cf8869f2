package recommend

import (
	"sort"

	"recipe-recommender/internal/pkg/common"
)

// activityVolume 時間窗內的活動量：收藏數加上烹煮次數
func activityVolume(a common.RecipeActivity) int {
	return a.Saves + a.Sessions
}

// RankByActivity 依活動量排序食譜
// 沒有任何活動的食譜以 0 參與排序，活動量相同時以 ID 遞增決勝，
// 結果截斷到 limit
func RankByActivity(recipes []common.RecipeSummary, activity map[string]common.RecipeActivity, limit int) []common.RecipeSummary {
	ranked := append([]common.RecipeSummary(nil), recipes...)

	sort.Slice(ranked, func(i, j int) bool {
		vi := activityVolume(activity[ranked[i].ID])
		vj := activityVolume(activity[ranked[j].ID])
		if vi != vj {
			return vi > vj
		}
		return ranked[i].ID < ranked[j].ID
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
