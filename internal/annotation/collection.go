package annotation

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Collection is the in-memory per-page annotation store. Tool commits
// append to it, hit-testing and rendering read from it. All mutation
// goes through record replacement: callers never see a partially
// mutated annotation.
type Collection struct {
	mu    sync.RWMutex
	pages map[int][]Annotation
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{pages: make(map[int][]Annotation)}
}

// Append validates and stores an annotation on its page, preserving
// insertion order.
func (c *Collection) Append(a Annotation) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("append rejected: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages[a.Page] = append(c.pages[a.Page], a)
	return nil
}

// Update applies mutate to a copy of the identified annotation and
// replaces the stored record if the result still validates. Returns
// the updated record.
func (c *Collection) Update(page int, id uuid.UUID, mutate func(*Annotation)) (Annotation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := c.pages[page]
	for i := range list {
		if list[i].ID != id {
			continue
		}
		updated := list[i]
		mutate(&updated)
		updated.ID = id
		updated.Page = page
		if err := updated.Validate(); err != nil {
			return Annotation{}, fmt.Errorf("update rejected: %w", err)
		}
		list[i] = updated
		return updated, nil
	}
	return Annotation{}, fmt.Errorf("annotation %s not found on page %d", id, page)
}

// Remove deletes the identified annotation. It reports whether the
// annotation existed.
func (c *Collection) Remove(page int, id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := c.pages[page]
	for i := range list {
		if list[i].ID == id {
			c.pages[page] = append(list[:i:i], list[i+1:]...)
			return true
		}
	}
	return false
}

// Page returns a copy of the annotations on a page in insertion order.
func (c *Collection) Page(page int) []Annotation {
	c.mu.RLock()
	defer c.mu.RUnlock()

	list := c.pages[page]
	out := make([]Annotation, len(list))
	copy(out, list)
	return out
}

// Get returns the identified annotation.
func (c *Collection) Get(page int, id uuid.UUID) (Annotation, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, a := range c.pages[page] {
		if a.ID == id {
			return a, true
		}
	}
	return Annotation{}, false
}

// Count returns the number of annotations on a page.
func (c *Collection) Count(page int) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pages[page])
}
