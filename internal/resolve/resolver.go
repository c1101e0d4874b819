// Package resolve turns free text into catalog items. It handles multi-item
// separators ("and", ",", "+"), leading quantity words and the alias table.
package resolve

import (
	"regexp"
	"strings"

	"brew-assistant/internal/menu"
)

var sepAnd = regexp.MustCompile(`\s+and\s+`)

var quantities = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"1": 1, "2": 2, "3": 3, "4": 4, "5": 5,
}

type Resolver struct {
	catalog *menu.Catalog
}

func New(catalog *menu.Catalog) *Resolver { return &Resolver{catalog: catalog} }

// Resolve matches free text against the catalog and returns one item per
// requested line, in input order; a quantity of N yields N consecutive
// entries. Segments that match nothing are dropped. An empty result means
// no match; matching itself never fails.
func (r *Resolver) Resolve(text string) []menu.Item {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil
	}

	var out []menu.Item
	for _, seg := range splitSegments(text) {
		qty, phrase := stripQuantity(seg)
		it, ok := r.matchPhrase(phrase)
		if !ok {
			continue
		}
		for i := 0; i < qty; i++ {
			out = append(out, it)
		}
	}
	if len(out) > 0 {
		return out
	}

	// Nothing matched segment by segment. Retry the whole text as a single
	// phrase so items whose names contain a separator ("Steak & Eggs",
	// "halloumi and berry ketchup") still resolve.
	qty, phrase := stripQuantity(text)
	it, ok := r.matchPhrase(phrase)
	if !ok {
		return nil
	}
	for i := 0; i < qty; i++ {
		out = append(out, it)
	}
	return out
}

func splitSegments(text string) []string {
	text = strings.ReplaceAll(text, "+", ",")
	text = sepAnd.ReplaceAllString(text, ",")
	parts := strings.Split(text, ",")
	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			segs = append(segs, p)
		}
	}
	return segs
}

func stripQuantity(phrase string) (int, string) {
	word, rest, found := strings.Cut(phrase, " ")
	if !found {
		return 1, phrase
	}
	if n, ok := quantities[word]; ok {
		return n, strings.TrimSpace(rest)
	}
	return 1, phrase
}

// matchPhrase finds the first catalog item the phrase refers to. Coffee is
// checked before food because the catalog lists it first; within a category,
// definition order decides ties.
func (r *Resolver) matchPhrase(phrase string) (menu.Item, bool) {
	if phrase == "" {
		return menu.Item{}, false
	}
	for _, it := range r.catalog.Items() {
		name := strings.ToLower(it.Name)
		if strings.Contains(name, phrase) || strings.Contains(phrase, name) {
			return it, true
		}
		for _, alias := range r.catalog.Aliases(name) {
			if strings.Contains(alias, phrase) || strings.Contains(phrase, alias) {
				return it, true
			}
		}
	}
	return menu.Item{}, false
}
