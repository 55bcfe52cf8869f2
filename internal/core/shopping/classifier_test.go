package shopping

import "testing"

func TestClassifyByKeyword(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"roma tomato", CategoryProduce},
		{"chicken breast", CategoryMeat},
		{"smoked salmon", CategorySeafood},
		{"cheddar cheese", CategoryDairy},
		{"sourdough bread", CategoryBakery},
		{"jasmine rice", CategoryPantry},
		{"ground cumin", CategorySpice},
		{"orange juice", CategoryProduce}, // orange 先於 juice 命中
		{"sparkling water", CategoryBeverage},
		{"frozen pea", CategoryFrozen},
		{"ketchup", CategoryPantry},
		{"unicorn dust", CategoryOther},
		{"", CategoryOther},
	}

	for _, tc := range cases {
		if got := Classify(tc.name); got != tc.want {
			t.Errorf("Classify(%q) = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestClassifyFirstCategoryWins(t *testing.T) {
	// frozen chicken 同時命中 Meat 與 Frozen，以排前面的分類為準
	if got := Classify("frozen chicken"); got != CategoryMeat {
		t.Fatalf("got %s, want %s", got, CategoryMeat)
	}
	// ice cream 先命中 Dairy 的 cream
	if got := Classify("ice cream"); got != CategoryDairy {
		t.Fatalf("got %s, want %s", got, CategoryDairy)
	}
}

func TestCategoryRankFixedOrder(t *testing.T) {
	order := []string{
		CategoryProduce, CategoryMeat, CategorySeafood, CategoryDairy,
		CategoryBakery, CategoryPantry, CategorySpice, CategoryBeverage,
		CategoryFrozen, CategoryOther,
	}

	for i := 1; i < len(order); i++ {
		if CategoryRank(order[i-1]) >= CategoryRank(order[i]) {
			t.Fatalf("%s should rank before %s", order[i-1], order[i])
		}
	}
	if CategoryRank("Nonsense") <= CategoryRank(CategoryOther) {
		t.Fatal("unknown categories must sort last")
	}
}
