package recommend

import (
	"sort"
	"strings"

	"recipe-recommender/internal/pkg/common"
)

// 相似度各屬性的容許範圍
const similarTimeRange = 15 // 分鐘

// similarityPoints 計算兩份食譜的屬性相近度
// 每個命中的屬性各得一分：同菜系、同難度、總時間差在 15 分鐘內
func similarityPoints(a, b common.RecipeSummary) int {
	points := 0
	if a.Cuisine != "" && strings.EqualFold(a.Cuisine, b.Cuisine) {
		points++
	}
	if a.Difficulty != "" && a.Difficulty == b.Difficulty {
		points++
	}
	diff := a.TotalTime - b.TotalTime
	if diff < 0 {
		diff = -diff
	}
	if diff <= similarTimeRange {
		points++
	}
	return points
}

// RankBySimilarity 依與參考食譜的相近度排序候選
// 參考食譜本身永遠不出現在結果中；同分以 ID 遞增決勝，截斷到 limit
func RankBySimilarity(reference common.RecipeSummary, candidates []common.RecipeSummary, limit int) []common.RecipeSummary {
	type scored struct {
		recipe common.RecipeSummary
		points int
	}

	var ranked []scored
	for _, c := range candidates {
		if c.ID == reference.ID {
			continue
		}
		ranked = append(ranked, scored{recipe: c, points: similarityPoints(reference, c)})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].points != ranked[j].points {
			return ranked[i].points > ranked[j].points
		}
		return ranked[i].recipe.ID < ranked[j].recipe.ID
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]common.RecipeSummary, 0, len(ranked))
	for _, s := range ranked {
		out = append(out, s.recipe)
	}
	return out
}
