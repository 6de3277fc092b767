package matching

import (
	"strconv"
	"strings"
)

// PriceInBudget проверяет, попадает ли цена в текстовый бюджет искателя.
// Грамматика: «до X» → price ≤ X; «от X» → price ≥ X; «A – B» → диапазон.
// Пустой или нераспознанный бюджет считается неограниченным.
func PriceInBudget(price int, bucket string) bool {
	b := strings.ToLower(strings.TrimSpace(bucket))
	if b == "" {
		return true
	}
	switch {
	case strings.HasPrefix(b, "до"):
		if max, ok := extractNumber(b); ok {
			return price <= max
		}
	case strings.HasPrefix(b, "от"):
		if min, ok := extractNumber(b); ok {
			return price >= min
		}
	case strings.Contains(b, "–"):
		parts := strings.SplitN(b, "–", 2)
		lo, okLo := extractNumber(parts[0])
		hi, okHi := extractNumber(parts[1])
		if okLo && okHi {
			return price >= lo && price <= hi
		}
	}
	return true
}

// extractNumber выбрасывает все нецифровые символы (пробелы, NBSP,
// «сом» и т.п.) и парсит остаток.
func extractNumber(s string) (int, bool) {
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0, false
	}
	return n, true
}
