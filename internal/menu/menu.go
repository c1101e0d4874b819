package menu

import (
	"fmt"
	"strings"
)

type Category string

const (
	CategoryCoffee Category = "coffee"
	CategoryFood   Category = "food"
)

// Pence is a fixed-point amount in pence. Prices never touch floats.
type Pence int64

func (p Pence) String() string { return fmt.Sprintf("£%d.%02d", p/100, p%100) }

type Item struct {
	Name     string
	Price    Pence
	Category Category
}

// Catalog holds the menu in definition order, coffee before food, plus the
// alias table used for fuzzy lookup. Built once at startup, never mutated.
type Catalog struct {
	items   []Item
	byKey   map[string]Item
	aliases map[string][]string
}

// New builds a catalog from items in definition order and an alias table
// keyed by canonical lowercase name.
func New(items []Item, aliases map[string][]string) *Catalog {
	byKey := make(map[string]Item, len(items))
	for _, it := range items {
		byKey[strings.ToLower(it.Name)] = it
	}
	if aliases == nil {
		aliases = map[string][]string{}
	}
	return &Catalog{items: items, byKey: byKey, aliases: aliases}
}

func Default() *Catalog {
	items := []Item{
		{"Espresso", 300, CategoryCoffee},
		{"Americano", 320, CategoryCoffee},
		{"Flat White", 360, CategoryCoffee},
		{"Latte", 370, CategoryCoffee},
		{"Cappuccino", 380, CategoryCoffee},
		{"Mocha", 420, CategoryCoffee},
		{"Hot Chocolate", 400, CategoryCoffee},

		{"Big Brew Breakfast", 1400, CategoryFood},
		{"Little Brew Breakfast", 850, CategoryFood},
		{"Eggs Benedict", 1000, CategoryFood},
		{"Eggs Benedict with Bacon", 1300, CategoryFood},
		{"Eggs Benedict with Salmon", 1400, CategoryFood},
		{"Breakfast Sandwich", 1000, CategoryFood},
		{"Eggs on Toast", 650, CategoryFood},
		{"Steak & Eggs", 1750, CategoryFood},
		{"Green Eggs", 1100, CategoryFood},
		{"French Toast", 1200, CategoryFood},
		{"Avocado Toast", 1000, CategoryFood},
		{"Korean Hashbrown Bites", 675, CategoryFood},
		{"Corn Ribs", 500, CategoryFood},
		{"Halloumi & Berry Ketchup", 600, CategoryFood},
	}

	aliases := map[string][]string{
		"big brew breakfast":        {"big breakfast", "full english", "big brew", "full breakfast"},
		"little brew breakfast":     {"little breakfast", "small breakfast", "little brew"},
		"eggs benedict":             {"benedict", "eggs ben"},
		"eggs benedict with bacon":  {"benedict bacon", "eggs ben bacon", "benedict with bacon"},
		"eggs benedict with salmon": {"benedict salmon", "eggs ben salmon", "benedict with salmon"},
		"breakfast sandwich":        {"sandwich", "breakfast sarnie"},
		"eggs on toast":             {"eggs toast", "scrambled eggs"},
		"steak & eggs":              {"steak eggs", "steak and eggs"},
		"green eggs":                {"green egg"},
		"french toast":              {"french bread", "eggy bread"},
		"avocado toast":             {"avocado", "avo toast"},
		"korean hashbrown bites":    {"hashbrown", "hashbrowns", "hash brown", "korean hashbrown", "hashbrown bites"},
		"corn ribs":                 {"corn", "ribs"},
		"halloumi & berry ketchup":  {"halloumi", "halloumi berry", "cheese"},
		"espresso":                  {"coffee"},
		"americano":                 {"black coffee"},
		"flat white":                {"flat"},
		"latte":                     {"coffee latte"},
		"cappuccino":                {"capp", "cap"},
		"mocha":                     {"chocolate coffee"},
		"hot chocolate":             {"chocolate", "hot choc", "cocoa"},
	}

	return New(items, aliases)
}

// Items returns the catalog in definition order, coffee items first.
func (c *Catalog) Items() []Item { return c.items }

// Lookup resolves an exact case-insensitive name or alias to an item.
func (c *Catalog) Lookup(key string) (Item, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	if it, ok := c.byKey[key]; ok {
		return it, true
	}
	for canonical, alts := range c.aliases {
		for _, a := range alts {
			if a == key {
				return c.byKey[canonical], true
			}
		}
	}
	return Item{}, false
}

// Aliases returns the alternate phrases for a canonical lowercase name.
func (c *Catalog) Aliases(lowerName string) []string { return c.aliases[lowerName] }
