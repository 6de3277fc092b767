package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceInBudget_UpperBound(t *testing.T) {
	assert.True(t, PriceInBudget(10000, "до 10 000"))
	assert.True(t, PriceInBudget(1, "до 10 000"))
	assert.False(t, PriceInBudget(10001, "до 10 000"))
}

func TestPriceInBudget_LowerBound(t *testing.T) {
	assert.True(t, PriceInBudget(30000, "от 30 000"))
	assert.True(t, PriceInBudget(99999, "от 30 000"))
	assert.False(t, PriceInBudget(29999, "от 30 000"))
}

func TestPriceInBudget_Range(t *testing.T) {
	bucket := "10 000 – 20 000"
	assert.True(t, PriceInBudget(10000, bucket))
	assert.True(t, PriceInBudget(20000, bucket))
	assert.True(t, PriceInBudget(15000, bucket))
	assert.False(t, PriceInBudget(9999, bucket))
	assert.False(t, PriceInBudget(20001, bucket))
}

func TestPriceInBudget_NonBreakingSpaces(t *testing.T) {
	// Telegram-клиенты подставляют NBSP вместо пробела
	assert.True(t, PriceInBudget(15000, "до 20 000"))
	assert.False(t, PriceInBudget(25000, "до 20 000"))
}

func TestPriceInBudget_UnparseableIsUnconstrained(t *testing.T) {
	assert.True(t, PriceInBudget(999999, ""))
	assert.True(t, PriceInBudget(999999, "договорная"))
	assert.True(t, PriceInBudget(999999, "до дорого"))
	assert.True(t, PriceInBudget(999999, "что-то – что-то"))
}
