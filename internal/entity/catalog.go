package domain

import "errors"

type Category string

const (
	CategoryEntree    Category = "Entree"
	CategorySide      Category = "Side"
	CategoryAppetizer Category = "Appetizer"
	CategoryDrink     Category = "Drink"
)

var ErrUnknownCategory = errors.New("unknown category")

func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryEntree, CategorySide, CategoryAppetizer, CategoryDrink:
		return Category(s), nil
	}
	return "", ErrUnknownCategory
}

// CatalogEntry is one purchasable menu item as supplied by the catalog.
type CatalogEntry struct {
	Name      string
	Price     float64
	Category  Category
	Calories  int
	Allergens []string
	Seasonal  bool
}

// Catalog is a read-only snapshot of the menu, keyed by item name. The
// pricing core only ever reads it; refreshes build a new snapshot.
type Catalog struct {
	entries map[string]CatalogEntry
}

func NewCatalog(entries []CatalogEntry) *Catalog {
	c := &Catalog{entries: make(map[string]CatalogEntry, len(entries))}
	for _, e := range entries {
		c.entries[e.Name] = e
	}
	return c
}

// UnitPrice looks up the price for name. ok is false when the item is not
// in the catalog; callers treat that as price 0 and flag it.
func (c *Catalog) UnitPrice(name string) (float64, bool) {
	e, ok := c.entries[name]
	return e.Price, ok
}

func (c *Catalog) Category(name string) (Category, bool) {
	e, ok := c.entries[name]
	return e.Category, ok
}

// EntreeNames returns the set of item names in the Entree category, used
// by the reward engine's BOGO eligibility check.
func (c *Catalog) EntreeNames() map[string]struct{} {
	out := make(map[string]struct{})
	for name, e := range c.entries {
		if e.Category == CategoryEntree {
			out[name] = struct{}{}
		}
	}
	return out
}

func (c *Catalog) Entries() []CatalogEntry {
	out := make([]CatalogEntry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.entries)
}
