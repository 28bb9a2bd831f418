package domain

import (
	"cmp"
	"slices"
	"time"
)

const (
	// DefaultTabName is used for the tab created when a session starts empty
	DefaultTabName = "Untitled"
	// NewTabName is used for tabs created from the tab bar
	NewTabName = "New Tab"
)

// Tab is a named container of notes (e.g., "Work")
type Tab struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	OrderID   *int64    `json:"order_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TabPatch holds the fields to overwrite on a tab. Nil fields are left alone.
type TabPatch struct {
	Name    *string
	OrderID *int64
}

// Clone returns a copy of the tab that shares no memory with the original
func (t Tab) Clone() Tab {
	t.OrderID = clonePtr(t.OrderID)
	return t
}

// Apply returns the tab with the patch applied
func (t Tab) Apply(p TabPatch) Tab {
	t = t.Clone()
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.OrderID != nil {
		t.OrderID = Ptr(*p.OrderID)
	}
	return t
}

// DisplayName returns the tab name, or "Untitled" when it is blank
func (t Tab) DisplayName() string {
	if t.Name == "" {
		return DefaultTabName
	}
	return t.Name
}

// CompareTabs orders tabs by order ID. Tabs without an order ID sort after
// every tab that has one; ties fall back to ID.
func CompareTabs(a, b Tab) int {
	switch {
	case a.OrderID != nil && b.OrderID == nil:
		return -1
	case a.OrderID == nil && b.OrderID != nil:
		return 1
	case a.OrderID != nil && b.OrderID != nil && *a.OrderID != *b.OrderID:
		return cmp.Compare(*a.OrderID, *b.OrderID)
	}
	return cmp.Compare(a.ID, b.ID)
}

// SortTabs returns a sorted copy of tabs
func SortTabs(tabs []Tab) []Tab {
	out := CloneTabs(tabs)
	slices.SortStableFunc(out, CompareTabs)
	return out
}

// CloneTabs deep-copies a tab slice
func CloneTabs(tabs []Tab) []Tab {
	if tabs == nil {
		return nil
	}
	out := make([]Tab, len(tabs))
	for i, t := range tabs {
		out[i] = t.Clone()
	}
	return out
}

// TabIDs returns the IDs of tabs in slice order
func TabIDs(tabs []Tab) []int64 {
	ids := make([]int64, len(tabs))
	for i, t := range tabs {
		ids[i] = t.ID
	}
	return ids
}

// IndexOfTab returns the position of the tab with the given ID, or -1
func IndexOfTab(tabs []Tab, id int64) int {
	return slices.IndexFunc(tabs, func(t Tab) bool { return t.ID == id })
}

// Ptr returns a pointer to v
func Ptr[T any](v T) *T {
	return &v
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	return Ptr(*p)
}

func valueOr(p *int64, fallback int64) int64 {
	if p == nil {
		return fallback
	}
	return *p
}
