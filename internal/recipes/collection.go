package recipes

// Collection is the user's saved recipes, newest first. Titles are unique.
type Collection struct {
	items []Recipe
}

// NewCollection wraps an existing slice (as loaded from storage). The input
// is copied.
func NewCollection(items []Recipe) *Collection {
	c := &Collection{items: make([]Recipe, 0, len(items))}
	for _, r := range items {
		c.items = append(c.items, r.Clone())
	}
	return c
}

// Save puts r at the front. It reports false and changes nothing when a
// recipe with the same title is already saved.
func (c *Collection) Save(r Recipe) bool {
	if c.Contains(r.Title) {
		return false
	}
	c.items = append([]Recipe{r.Clone()}, c.items...)
	return true
}

// Delete removes every recipe whose title matches exactly and reports
// whether anything was removed.
func (c *Collection) Delete(title string) bool {
	kept := c.items[:0:0]
	for _, r := range c.items {
		if r.Title != title {
			kept = append(kept, r)
		}
	}
	removed := len(kept) != len(c.items)
	c.items = kept
	return removed
}

// Contains reports whether a recipe with this exact title is saved.
func (c *Collection) Contains(title string) bool {
	_, ok := c.Find(title)
	return ok
}

// Find returns a copy of the saved recipe with this title.
func (c *Collection) Find(title string) (Recipe, bool) {
	for _, r := range c.items {
		if r.Title == title {
			return r.Clone(), true
		}
	}
	return Recipe{}, false
}

// Len is the number of saved recipes.
func (c *Collection) Len() int { return len(c.items) }

// Items returns a copy of the saved recipes, newest first.
func (c *Collection) Items() []Recipe {
	out := make([]Recipe, 0, len(c.items))
	for _, r := range c.items {
		out = append(out, r.Clone())
	}
	return out
}
