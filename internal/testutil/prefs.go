package testutil

import (
	"sync"

	"focusboard/internal/domain"
	"focusboard/internal/ports"
)

// Prefs is an in-memory ports.PreferenceStore
type Prefs struct {
	mu    sync.Mutex
	prefs ports.Preferences
	saves map[string]int
	fail  error
}

var _ ports.PreferenceStore = (*Prefs)(nil)

// NewPrefs creates a store that loads p
func NewPrefs(p ports.Preferences) *Prefs {
	return &Prefs{prefs: p, saves: make(map[string]int)}
}

// SetFail makes every later call return err; nil clears it
func (p *Prefs) SetFail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fail = err
}

// Current returns the stored preferences
func (p *Prefs) Current() ports.Preferences {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.prefs
}

// Saves returns how many times kind ("selection", "open", "ui") was saved
func (p *Prefs) Saves(kind string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saves[kind]
}

func (p *Prefs) Load() (ports.Preferences, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail != nil {
		return ports.Preferences{}, p.fail
	}
	return p.prefs, nil
}

func (p *Prefs) SaveSelection(tabID *int64, tabName string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail != nil {
		return p.fail
	}
	p.saves["selection"]++
	p.prefs.CurrentTabID = tabID
	p.prefs.CurrentTabName = tabName
	return nil
}

func (p *Prefs) SaveOpenStates(states domain.OpenStates) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail != nil {
		return p.fail
	}
	p.saves["open"]++
	p.prefs.OpenStates = states
	return nil
}

func (p *Prefs) SaveUI(ui ports.UIVisibility) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail != nil {
		return p.fail
	}
	p.saves["ui"]++
	p.prefs.UI = ui
	return nil
}
