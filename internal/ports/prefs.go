package ports

import "focusboard/internal/domain"

// UIVisibility holds which optional panels are shown
type UIVisibility struct {
	TabBar bool `json:"tab_bar"`
}

// DefaultUIVisibility shows every panel
func DefaultUIVisibility() UIVisibility {
	return UIVisibility{TabBar: true}
}

// Preferences is the UI state remembered between sessions
type Preferences struct {
	CurrentTabID   *int64
	CurrentTabName string
	OpenStates     domain.OpenStates
	UI             UIVisibility
}

// PreferenceStore persists UI preferences. A missing key loads as its zero
// value; only storage failures are errors.
type PreferenceStore interface {
	Load() (Preferences, error)
	SaveSelection(tabID *int64, tabName string) error
	SaveOpenStates(states domain.OpenStates) error
	SaveUI(ui UIVisibility) error
}
