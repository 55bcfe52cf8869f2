package recommend

import (
	"context"
	"testing"

	"recipe-recommender/internal/core/store"
	"recipe-recommender/internal/pkg/common"
)

func newTestStore() *store.MemoryStore {
	st := store.NewMemoryStore()
	st.AddUser(store.UserRecord{
		ID:               "u1",
		PreferredCuisine: "Thai",
		CookingSkill:     "beginner",
	})
	st.AddRecipe(common.RecipeSummary{
		ID: "r1", Title: "Pad Thai", Cuisine: "Thai",
		Difficulty: common.DifficultyEasy, TotalTime: 30, IsPublic: true,
	})
	st.AddRecipe(common.RecipeSummary{
		ID: "r2", Title: "Beef Bourguignon", Cuisine: "French",
		Difficulty: common.DifficultyHard, TotalTime: 180, IsPublic: true,
	})
	st.AddRecipe(common.RecipeSummary{
		ID: "r3", Title: "Green Curry", Cuisine: "Thai",
		Difficulty: common.DifficultyMedium, TotalTime: 45, IsPublic: true,
	})
	return st
}

func TestRecommendValidatesLimit(t *testing.T) {
	svc := NewService(newTestStore())

	for _, limit := range []int{0, -1, 51} {
		_, err := svc.Recommend(context.Background(), "u1", limit, common.RecipeFilters{})
		if !common.IsInvalidParameter(err) {
			t.Errorf("limit %d: err = %v, want invalid parameter", limit, err)
		}
	}

	if _, err := svc.Recommend(context.Background(), "u1", 50, common.RecipeFilters{}); err != nil {
		t.Fatalf("limit 50: unexpected err %v", err)
	}
}

func TestRecommendRejectsNegativeMaxTime(t *testing.T) {
	svc := NewService(newTestStore())

	_, err := svc.Recommend(context.Background(), "u1", 10, common.RecipeFilters{MaxTime: -1})
	if !common.IsInvalidParameter(err) {
		t.Fatalf("err = %v, want invalid parameter", err)
	}
}

func TestRecommendUnknownUser(t *testing.T) {
	svc := NewService(newTestStore())

	_, err := svc.Recommend(context.Background(), "nobody", 10, common.RecipeFilters{})
	if !common.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestRecommendOrdersByScoreThenID(t *testing.T) {
	svc := NewService(newTestStore())

	got, err := svc.Recommend(context.Background(), "u1", 10, common.RecipeFilters{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}

	// r1 同時命中菜系、技能與快速料理，必定排最前
	if got[0].Recipe.ID != "r1" {
		t.Fatalf("top = %s, want r1", got[0].Recipe.ID)
	}
	for i := 1; i < len(got); i++ {
		prev, cur := got[i-1], got[i]
		if cur.Score > prev.Score {
			t.Fatalf("scores not descending: %v then %v", prev.Score, cur.Score)
		}
		if cur.Score == prev.Score && cur.Recipe.ID < prev.Recipe.ID {
			t.Fatalf("tie not broken by ID: %s before %s", prev.Recipe.ID, cur.Recipe.ID)
		}
	}
}

func TestRecommendAppliesFilters(t *testing.T) {
	svc := NewService(newTestStore())

	// 菜系過濾不分大小寫且允許子字串
	got, err := svc.Recommend(context.Background(), "u1", 10, common.RecipeFilters{Cuisine: "tha"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("cuisine filter: len = %d, want 2", len(got))
	}

	got, err = svc.Recommend(context.Background(), "u1", 10, common.RecipeFilters{Difficulty: "Hard"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Recipe.ID != "r2" {
		t.Fatalf("difficulty filter: got %v", got)
	}

	got, err = svc.Recommend(context.Background(), "u1", 10, common.RecipeFilters{MaxTime: 45})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("max_time filter: len = %d, want 2", len(got))
	}
}

func TestRecommendTruncatesToLimit(t *testing.T) {
	svc := NewService(newTestStore())

	got, err := svc.Recommend(context.Background(), "u1", 1, common.RecipeFilters{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
}

func TestTrendingValidatesBounds(t *testing.T) {
	svc := NewService(newTestStore())

	for _, days := range []int{0, -5, 366} {
		_, err := svc.Trending(context.Background(), days, 10)
		if !common.IsInvalidParameter(err) {
			t.Errorf("days %d: err = %v, want invalid parameter", days, err)
		}
	}
	if _, err := svc.Trending(context.Background(), 7, 0); !common.IsInvalidParameter(err) {
		t.Fatal("limit 0 should be rejected")
	}
}

func TestSimilarUnknownRecipe(t *testing.T) {
	svc := NewService(newTestStore())

	_, err := svc.Similar(context.Background(), "missing", 5)
	if !common.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestSimilarExcludesReference(t *testing.T) {
	svc := NewService(newTestStore())

	got, err := svc.Similar(context.Background(), "r1", 5)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range got {
		if r.ID == "r1" {
			t.Fatal("reference recipe appeared in its own similar list")
		}
	}
}

func TestSummaryCountsFactors(t *testing.T) {
	st := newTestStore()
	svc := NewService(st)

	got, err := svc.Summary(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}

	if got.TotalRecipes != 3 {
		t.Errorf("total = %d, want 3", got.TotalRecipes)
	}
	if got.MatchingCuisineCount != 2 {
		t.Errorf("matching cuisine = %d, want 2", got.MatchingCuisineCount)
	}
	if got.PreferredCuisine != "Thai" || got.CookingSkill != "beginner" {
		t.Errorf("profile fields = %+v", got)
	}
}
