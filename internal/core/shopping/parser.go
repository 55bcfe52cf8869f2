package shopping

import (
	"regexp"
	"strings"
	"unicode"

	"recipe-recommender/internal/pkg/common"
)

// quantityUnits 數量後可接的單位字，行程啟動後視為唯讀
var quantityUnits = map[string]bool{
	"cup": true, "cups": true,
	"tbsp": true, "tablespoon": true, "tablespoons": true,
	"tsp": true, "teaspoon": true, "teaspoons": true,
	"oz": true, "ounce": true, "ounces": true,
	"lb": true, "lbs": true, "pound": true, "pounds": true,
	"kg": true, "g": true, "gram": true, "grams": true,
	"ml": true, "l": true, "liter": true, "liters": true,
	"clove": true, "cloves": true,
	"can": true, "cans": true,
	"slice": true, "slices": true,
	"pinch": true, "pinches": true,
}

// pluralExceptions 結尾是 s 但不是複數的字，不做單數化
var pluralExceptions = map[string]bool{
	"hummus":    true,
	"couscous":  true,
	"asparagus": true,
	"molasses":  true,
	"citrus":    true,
}

// 行首的數值：整數、小數或分數，含 "1 1/2" 這種帶分數
var leadingNumberRe = regexp.MustCompile(`^\d+(?:[./]\d+)?(?:\s+\d+/\d+)?`)

// 單位候選字
var leadingWordRe = regexp.MustCompile(`^[a-zA-Z]+`)

// SplitIngredientLines 把自由格式的食材區塊切成候選行
// 先依換行切，再依逗號切，每行去除前後空白，空行丟棄
func SplitIngredientLines(text string) []string {
	var lines []string
	for _, row := range strings.Split(text, "\n") {
		for _, part := range strings.Split(row, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				lines = append(lines, part)
			}
		}
	}
	return lines
}

// splitQuantity 從行首切出數量，剩下的就是食材名稱
// 數量 = 數值 + 選擇性的單位字或括號量測；沒有行首數值時數量為空
func splitQuantity(line string) (quantity, name string) {
	num := leadingNumberRe.FindString(line)
	if num == "" {
		return "", strings.TrimSpace(line)
	}

	rest := line[len(num):]
	trimmed := strings.TrimLeft(rest, " \t")
	skipped := len(rest) - len(trimmed)

	// 括號量測，例如 "1 (400g)"
	if strings.HasPrefix(trimmed, "(") {
		if idx := strings.Index(trimmed, ")"); idx >= 0 {
			consumed := skipped + idx + 1
			return strings.TrimSpace(line[:len(num)+consumed]), strings.TrimSpace(rest[consumed:])
		}
	}

	// 單位字，例如 "2 cups" 或黏在數字後的 "500g"
	if word := leadingWordRe.FindString(trimmed); word != "" && quantityUnits[strings.ToLower(word)] {
		consumed := skipped + len(word)
		return strings.TrimSpace(line[:len(num)+consumed]), strings.TrimSpace(rest[consumed:])
	}

	return strings.TrimSpace(num), strings.TrimSpace(rest)
}

// NormalizeName 正規化食材名稱：小寫、去除前後標點、壓縮空白、單數化
// 單數化只去掉結尾一個 s，結尾 ss 或在例外清單內的字不處理
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return ""
	}

	words := strings.Fields(name)
	last := words[len(words)-1]
	if len(last) > 3 && strings.HasSuffix(last, "s") && !strings.HasSuffix(last, "ss") && !pluralExceptions[last] {
		name = name[:len(name)-1]
	}
	return name
}

// ParseLine 解析單一食材行，分類之後才補上
// 正規化後名稱為空的行回報 false，由呼叫端丟棄
func ParseLine(line, sourceRecipeID string) (common.ParsedIngredient, bool) {
	quantity, rawName := splitQuantity(line)
	name := NormalizeName(rawName)
	if name == "" {
		return common.ParsedIngredient{}, false
	}
	return common.ParsedIngredient{
		NormalizedName: name,
		RawQuantity:    quantity,
		SourceRecipeID: sourceRecipeID,
	}, true
}

// ParseIngredientsText 解析整個食材區塊並完成分類
func ParseIngredientsText(text, sourceRecipeID string) []common.ParsedIngredient {
	var out []common.ParsedIngredient
	for _, line := range SplitIngredientLines(text) {
		parsed, ok := ParseLine(line, sourceRecipeID)
		if !ok {
			continue
		}
		parsed.Category = Classify(parsed.NormalizedName)
		out = append(out, parsed)
	}
	return out
}
