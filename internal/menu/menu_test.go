package menu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPenceString(t *testing.T) {
	assert.Equal(t, "£3.70", Pence(370).String())
	assert.Equal(t, "£14.00", Pence(1400).String())
	assert.Equal(t, "£6.75", Pence(675).String())
	assert.Equal(t, "£0.05", Pence(5).String())
}

func TestDefaultCoffeeFirst(t *testing.T) {
	c := Default()
	items := c.Items()
	assert.NotEmpty(t, items)

	seenFood := false
	for _, it := range items {
		if it.Category == CategoryFood {
			seenFood = true
		}
		if seenFood {
			assert.Equal(t, CategoryFood, it.Category, "coffee must precede food in definition order")
		}
	}
}

func TestLookup(t *testing.T) {
	c := Default()

	tests := []struct {
		key  string
		want string
		ok   bool
	}{
		{"latte", "Latte", true},
		{"LATTE", "Latte", true},
		{" Eggs Benedict ", "Eggs Benedict", true},
		{"benedict", "Eggs Benedict", true}, // alias
		{"cocoa", "Hot Chocolate", true},    // alias
		{"sushi", "", false},
		{"", "", false},
	}
	for _, tc := range tests {
		it, ok := c.Lookup(tc.key)
		assert.Equal(t, tc.ok, ok, "key %q", tc.key)
		if tc.ok {
			assert.Equal(t, tc.want, it.Name, "key %q", tc.key)
		}
	}
}

func TestRenderFull(t *testing.T) {
	out := Default().RenderFull()

	for _, section := range []string{"BREAKFAST:", "BRUNCH & MAINS:", "SIDES:", "COFFEE & DRINKS:"} {
		assert.Contains(t, out, section)
	}
	assert.Contains(t, out, "• Latte - £3.70")
	assert.Contains(t, out, "• Steak & Eggs - £17.50")
	assert.Contains(t, out, "• Korean Hashbrown Bites - £6.75")
}

func TestRenderCoffee(t *testing.T) {
	out := Default().RenderCoffee()
	assert.Contains(t, out, "COFFEE & DRINKS MENU")
	assert.Contains(t, out, "• Espresso - £3.00")
	assert.NotContains(t, out, "Eggs Benedict")
	// all seven drinks listed
	assert.Equal(t, 7, strings.Count(out, "• "))
}
