package shopping

import (
	"context"
	"testing"

	"recipe-recommender/internal/core/store"
	"recipe-recommender/internal/pkg/common"
)

func newTestStore() *store.MemoryStore {
	st := store.NewMemoryStore()
	st.AddRecipe(common.RecipeSummary{
		ID: "r1", Title: "Fried Rice", IsPublic: true,
		IngredientsText: "2 cups rice\n1 onion\n2 eggs",
	})
	st.AddRecipe(common.RecipeSummary{
		ID: "r2", Title: "Onion Soup", IsPublic: true,
		IngredientsText: "3 onions\n1 l stock",
	})
	st.AddCollection("weeknight", []string{"r1", "r2"})
	return st
}

func TestGenerateRejectsAmbiguousSource(t *testing.T) {
	svc := NewService(newTestStore())

	_, err := svc.Generate(context.Background(), "u1", GenerateRequest{
		RecipeIDs:    []string{"r1"},
		CollectionID: "weeknight",
	})
	if !common.IsInvalidParameter(err) {
		t.Fatalf("both sources: err = %v, want invalid parameter", err)
	}

	_, err = svc.Generate(context.Background(), "u1", GenerateRequest{})
	if !common.IsInvalidParameter(err) {
		t.Fatalf("no source: err = %v, want invalid parameter", err)
	}
}

func TestGenerateAbortsOnMissingRecipe(t *testing.T) {
	svc := NewService(newTestStore())

	_, err := svc.Generate(context.Background(), "u1", GenerateRequest{
		RecipeIDs: []string{"r1", "missing"},
	})
	if !common.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestGenerateMergesAcrossRecipes(t *testing.T) {
	st := newTestStore()
	svc := NewService(st)

	list, err := svc.Generate(context.Background(), "u1", GenerateRequest{
		RecipeIDs: []string{"r1", "r2"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if list.ID == "" {
		t.Fatal("list ID not assigned")
	}
	if list.Name != "Generated from 2 recipe(s)" {
		t.Fatalf("name = %q", list.Name)
	}

	var onion *common.ShoppingListItem
	for i := range list.Items {
		if list.Items[i].NormalizedName == "onion" {
			onion = &list.Items[i]
		}
	}
	if onion == nil {
		t.Fatal("onion missing from merged list")
	}
	if len(onion.Contributions) != 2 {
		t.Fatalf("onion contributions = %d, want 2", len(onion.Contributions))
	}
	if onion.Contributions[0].SourceRecipeID != "r1" || onion.Contributions[1].SourceRecipeID != "r2" {
		t.Fatalf("contribution order = %+v", onion.Contributions)
	}

	// 產生後即可讀回
	got, err := svc.Get(context.Background(), list.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Items) != len(list.Items) {
		t.Fatalf("stored items = %d, want %d", len(got.Items), len(list.Items))
	}
}

func TestGenerateFromCollection(t *testing.T) {
	svc := NewService(newTestStore())

	list, err := svc.Generate(context.Background(), "u1", GenerateRequest{
		CollectionID: "weeknight",
		Name:         "Week 35",
	})
	if err != nil {
		t.Fatal(err)
	}
	if list.Name != "Week 35" {
		t.Fatalf("name = %q", list.Name)
	}
	if list.CollectionID != "weeknight" {
		t.Fatalf("collection_id = %q", list.CollectionID)
	}
	if len(list.SourceRecipeIDs) != 2 {
		t.Fatalf("source recipes = %v", list.SourceRecipeIDs)
	}
}

func TestGenerateUnknownCollection(t *testing.T) {
	svc := NewService(newTestStore())

	_, err := svc.Generate(context.Background(), "u1", GenerateRequest{CollectionID: "missing"})
	if !common.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestSetItemChecked(t *testing.T) {
	svc := NewService(newTestStore())

	list, err := svc.Generate(context.Background(), "u1", GenerateRequest{RecipeIDs: []string{"r1"}})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.SetItemChecked(context.Background(), list.ID, "rice", true); err != nil {
		t.Fatal(err)
	}

	got, err := svc.Get(context.Background(), list.ID)
	if err != nil {
		t.Fatal(err)
	}
	for _, item := range got.Items {
		if item.NormalizedName == "rice" && !item.IsChecked {
			t.Fatal("rice not marked as checked")
		}
	}

	if err := svc.SetItemChecked(context.Background(), list.ID, "unobtainium", true); !common.IsNotFound(err) {
		t.Fatalf("unknown item: err = %v, want not found", err)
	}
}

func TestListReturnsOnlyOwnLists(t *testing.T) {
	svc := NewService(newTestStore())

	if _, err := svc.Generate(context.Background(), "u1", GenerateRequest{RecipeIDs: []string{"r1"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Generate(context.Background(), "u2", GenerateRequest{RecipeIDs: []string{"r2"}}); err != nil {
		t.Fatal(err)
	}

	lists, err := svc.List(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(lists) != 1 || lists[0].UserID != "u1" {
		t.Fatalf("lists = %+v", lists)
	}
}
