package selection

import "github.com/google/uuid"

// Tracker keeps at most one hovered and one selected annotation id.
type Tracker struct {
	hover    uuid.UUID
	selected uuid.UUID
}

// NewTracker creates a tracker with nothing hovered or selected.
func NewTracker() *Tracker {
	return &Tracker{}
}

// SetHover replaces the hovered id, clearing the previous one. It
// reports whether the hover changed.
func (t *Tracker) SetHover(id uuid.UUID) bool {
	if t.hover == id {
		return false
	}
	t.hover = id
	return true
}

// ClearHover drops the hovered id.
func (t *Tracker) ClearHover() bool {
	return t.SetHover(uuid.Nil)
}

// Hover returns the hovered id, uuid.Nil when nothing is hovered.
func (t *Tracker) Hover() uuid.UUID {
	return t.hover
}

// Select replaces the selected id. It reports whether the selection
// changed.
func (t *Tracker) Select(id uuid.UUID) bool {
	if t.selected == id {
		return false
	}
	t.selected = id
	return true
}

// ClearSelection drops the selected id.
func (t *Tracker) ClearSelection() bool {
	return t.Select(uuid.Nil)
}

// Selected returns the selected id, uuid.Nil when nothing is selected.
func (t *Tracker) Selected() uuid.UUID {
	return t.selected
}
