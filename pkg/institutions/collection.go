package institutions

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/agentstation/skillmap/pkg/errors"
)

// Collection is the read-only catalog view consumed by reports, the CLI and
// the HTTP API. It never hands out references to its own records.
type Collection struct {
	items []Institution
	index map[string]int
}

// NewCollection builds a collection over a copy of items.
// For duplicate ids the first record wins the id lookup.
func NewCollection(items []Institution) *Collection {
	c := &Collection{
		items: make([]Institution, len(items)),
		index: make(map[string]int, len(items)),
	}
	for i, inst := range items {
		c.items[i] = inst.Clone()
		if _, exists := c.index[inst.ID]; !exists {
			c.index[inst.ID] = i
		}
	}
	return c
}

// Len returns the number of institutions.
func (c *Collection) Len() int {
	return len(c.items)
}

// List returns a copy of every institution in catalog order.
func (c *Collection) List() []Institution {
	return c.filter(func(Institution) bool { return true })
}

// Get returns a copy of the institution with the given id.
func (c *Collection) Get(id string) (Institution, error) {
	i, ok := c.index[id]
	if !ok {
		return Institution{}, errors.NewNotFoundError("institution", id)
	}
	return c.items[i].Clone(), nil
}

// ByCategory returns institutions of the given category.
func (c *Collection) ByCategory(category Category) []Institution {
	return c.filter(func(inst Institution) bool { return inst.Category == category })
}

// ByDistrict returns institutions located in district, compared case-insensitively.
func (c *Collection) ByDistrict(district string) []Institution {
	want := fold(district)
	return c.filter(func(inst Institution) bool { return fold(inst.District()) == want })
}

// Search returns institutions whose name or area contains q, ignoring case.
// An empty query matches everything.
func (c *Collection) Search(q string) []Institution {
	needle := fold(strings.TrimSpace(q))
	return c.filter(func(inst Institution) bool {
		return strings.Contains(fold(inst.Name), needle) || strings.Contains(fold(inst.Area()), needle)
	})
}

// Categories returns the distinct categories present, sorted.
func (c *Collection) Categories() []Category {
	seen := make(map[Category]bool)
	var out []Category
	for _, inst := range c.items {
		if inst.Category == "" || seen[inst.Category] {
			continue
		}
		seen[inst.Category] = true
		out = append(out, inst.Category)
	}
	slices.Sort(out)
	return out
}

func (c *Collection) filter(keep func(Institution) bool) []Institution {
	out := make([]Institution, 0, len(c.items))
	for _, inst := range c.items {
		if keep(inst) {
			out = append(out, inst.Clone())
		}
	}
	return out
}

// Fold returns s case-folded for case-insensitive comparison.
func Fold(s string) string {
	return fold(s)
}

func fold(s string) string {
	// cases.Caser is stateful; a fresh one per call keeps Fold safe for concurrent use.
	return cases.Fold().String(s)
}
