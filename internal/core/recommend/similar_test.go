package recommend

import (
	"testing"

	"recipe-recommender/internal/pkg/common"
)

func TestRankBySimilarityExcludesReference(t *testing.T) {
	reference := common.RecipeSummary{ID: "ref", Cuisine: "Thai", Difficulty: common.DifficultyEasy, TotalTime: 30}
	candidates := []common.RecipeSummary{
		reference,
		{ID: "other", Cuisine: "Thai", Difficulty: common.DifficultyEasy, TotalTime: 30},
	}

	got := RankBySimilarity(reference, candidates, 10)

	if len(got) != 1 || got[0].ID != "other" {
		t.Fatalf("got %v, want only \"other\"", got)
	}
}

func TestRankBySimilarityOrdersByPoints(t *testing.T) {
	reference := common.RecipeSummary{ID: "ref", Cuisine: "Thai", Difficulty: common.DifficultyEasy, TotalTime: 30}
	candidates := []common.RecipeSummary{
		// 0 分：全不相近
		{ID: "far", Cuisine: "French", Difficulty: common.DifficultyHard, TotalTime: 120},
		// 3 分：菜系、難度、時間全中
		{ID: "triple", Cuisine: "thai", Difficulty: common.DifficultyEasy, TotalTime: 40},
		// 1 分：只有時間相近
		{ID: "time-only", Cuisine: "French", Difficulty: common.DifficultyHard, TotalTime: 45},
		// 2 分：菜系加時間
		{ID: "double", Cuisine: "Thai", Difficulty: common.DifficultyHard, TotalTime: 20},
	}

	got := RankBySimilarity(reference, candidates, 10)

	want := []string{"triple", "double", "time-only", "far"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("rank[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestRankBySimilarityTimeWindowInclusive(t *testing.T) {
	reference := common.RecipeSummary{ID: "ref", TotalTime: 30}
	candidates := []common.RecipeSummary{
		{ID: "edge", TotalTime: 45},    // 差 15，仍相近
		{ID: "outside", TotalTime: 46}, // 差 16
	}

	got := RankBySimilarity(reference, candidates, 10)

	if got[0].ID != "edge" || got[1].ID != "outside" {
		t.Fatalf("order = %s, %s", got[0].ID, got[1].ID)
	}
}

func TestRankBySimilarityEmptyAttributesDoNotMatch(t *testing.T) {
	// 參考食譜缺菜系與難度時，空值對空值不算相近
	reference := common.RecipeSummary{ID: "ref", TotalTime: 30}
	candidates := []common.RecipeSummary{
		{ID: "blank", TotalTime: 200},
	}

	got := RankBySimilarity(reference, candidates, 10)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if pts := similarityPoints(reference, candidates[0]); pts != 0 {
		t.Fatalf("points = %d, want 0", pts)
	}
}

func TestRankBySimilarityTieBreaksByIDAndTruncates(t *testing.T) {
	reference := common.RecipeSummary{ID: "ref", Cuisine: "Thai", TotalTime: 30}
	candidates := []common.RecipeSummary{
		{ID: "c", Cuisine: "Thai", TotalTime: 30},
		{ID: "a", Cuisine: "Thai", TotalTime: 30},
		{ID: "b", Cuisine: "Thai", TotalTime: 30},
	}

	got := RankBySimilarity(reference, candidates, 2)

	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("got %v, want [a b]", got)
	}
}
