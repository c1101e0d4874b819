package menu

import (
	"fmt"
	"strings"
)

// Menu board section groupings. These are a display concern only; resolution
// works off catalog definition order.
var (
	breakfastItems = []string{
		"Big Brew Breakfast", "Little Brew Breakfast", "Eggs Benedict",
		"Eggs Benedict with Bacon", "Eggs Benedict with Salmon",
		"Breakfast Sandwich", "Eggs on Toast",
	}
	brunchItems = []string{"Steak & Eggs", "Green Eggs", "French Toast", "Avocado Toast"}
	sideItems   = []string{"Korean Hashbrown Bites", "Corn Ribs", "Halloumi & Berry Ketchup"}
)

// RenderFull renders the complete menu board.
func (c *Catalog) RenderFull() string {
	var b strings.Builder
	b.WriteString("FULL MENU\n\nFOOD MENU\n\nBREAKFAST:\n")
	c.writeSection(&b, breakfastItems)
	b.WriteString("\nBRUNCH & MAINS:\n")
	c.writeSection(&b, brunchItems)
	b.WriteString("\nSIDES:\n")
	c.writeSection(&b, sideItems)
	b.WriteString("\nCOFFEE & DRINKS:\n")
	for _, it := range c.items {
		if it.Category == CategoryCoffee {
			fmt.Fprintf(&b, "• %s - %s\n", it.Name, it.Price)
		}
	}
	b.WriteString("\nVegan & Gluten-Free options available!\n\nTo order, just type the item name!\n(e.g., 'latte', 'big brew breakfast')")
	return b.String()
}

// RenderCoffee renders the coffee and drinks board.
func (c *Catalog) RenderCoffee() string {
	var b strings.Builder
	b.WriteString("COFFEE & DRINKS MENU\n\n")
	for _, it := range c.items {
		if it.Category == CategoryCoffee {
			fmt.Fprintf(&b, "• %s - %s\n", it.Name, it.Price)
		}
	}
	b.WriteString("\nWe serve North Star Coffee from Leeds!\nPlant-based milk available.\n\nTo order, just type the drink name!")
	return b.String()
}

func (c *Catalog) writeSection(b *strings.Builder, names []string) {
	for _, name := range names {
		if it, ok := c.byKey[strings.ToLower(name)]; ok {
			fmt.Fprintf(b, "• %s - %s\n", it.Name, it.Price)
		}
	}
}
