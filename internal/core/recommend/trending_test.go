package recommend

import (
	"testing"

	"recipe-recommender/internal/pkg/common"
)

func recipesByID(ids ...string) []common.RecipeSummary {
	out := make([]common.RecipeSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, common.RecipeSummary{ID: id})
	}
	return out
}

func TestRankByActivityOrdersByVolume(t *testing.T) {
	recipes := recipesByID("a", "b", "c")
	activity := map[string]common.RecipeActivity{
		"a": {Saves: 1, Sessions: 1}, // 2
		"b": {Saves: 3, Sessions: 2}, // 5
		"c": {Sessions: 4},           // 4
	}

	got := RankByActivity(recipes, activity, 10)

	want := []string{"b", "c", "a"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("rank[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestRankByActivityIncludesZeroActivity(t *testing.T) {
	recipes := recipesByID("quiet-1", "busy", "quiet-2")
	activity := map[string]common.RecipeActivity{
		"busy": {Saves: 2},
	}

	got := RankByActivity(recipes, activity, 10)

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].ID != "busy" {
		t.Fatalf("rank[0] = %s, want busy", got[0].ID)
	}
	// 沒有活動的食譜以 0 參與排序，同分依 ID 遞增
	if got[1].ID != "quiet-1" || got[2].ID != "quiet-2" {
		t.Fatalf("tie order = %s, %s", got[1].ID, got[2].ID)
	}
}

func TestRankByActivityTieBreaksByID(t *testing.T) {
	recipes := recipesByID("z", "a", "m")
	activity := map[string]common.RecipeActivity{
		"z": {Saves: 1},
		"a": {Sessions: 1},
		"m": {Saves: 1},
	}

	got := RankByActivity(recipes, activity, 10)

	want := []string{"a", "m", "z"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("rank[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestRankByActivityTruncates(t *testing.T) {
	recipes := recipesByID("a", "b", "c", "d")
	got := RankByActivity(recipes, nil, 2)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
}

func TestRankByActivityDoesNotMutateInput(t *testing.T) {
	recipes := recipesByID("b", "a")
	activity := map[string]common.RecipeActivity{"a": {Saves: 5}}

	_ = RankByActivity(recipes, activity, 10)

	if recipes[0].ID != "b" || recipes[1].ID != "a" {
		t.Fatalf("input slice was reordered: %v", recipes)
	}
}
