package shopping

import (
	"sort"

	"recipe-recommender/internal/pkg/common"
)

// Merge 把多份食譜解析出的食材合併成單一購物清單項目集合
// 以 normalized_name 分組，每組的 (數量, 來源食譜) 依輸入順序累積；
// 分類對同一名稱是確定性的，所以整組共用一個分類。
// 輸出依固定分類順序排序，同分類內再依名稱遞增
func Merge(parsed []common.ParsedIngredient) []common.ShoppingListItem {
	byName := make(map[string]*common.ShoppingListItem)
	var order []string

	for _, p := range parsed {
		item, ok := byName[p.NormalizedName]
		if !ok {
			item = &common.ShoppingListItem{
				NormalizedName: p.NormalizedName,
				Category:       p.Category,
			}
			byName[p.NormalizedName] = item
			order = append(order, p.NormalizedName)
		}
		item.Contributions = append(item.Contributions, common.QuantityContribution{
			RawQuantity:    p.RawQuantity,
			SourceRecipeID: p.SourceRecipeID,
		})
	}

	items := make([]common.ShoppingListItem, 0, len(order))
	for _, name := range order {
		items = append(items, *byName[name])
	}

	sort.Slice(items, func(i, j int) bool {
		ri, rj := CategoryRank(items[i].Category), CategoryRank(items[j].Category)
		if ri != rj {
			return ri < rj
		}
		return items[i].NormalizedName < items[j].NormalizedName
	})
	return items
}
