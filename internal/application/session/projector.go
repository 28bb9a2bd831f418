package session

import (
	"sync"

	"focusboard/internal/domain"
)

// Projector memoizes the hierarchy of the most recent note collection. The
// memo key is the snapshot's NotesGen, so tab-only commits reuse the previous
// projection and any note mutation yields a fresh one.
type Projector struct {
	mu       sync.Mutex
	gen      uint64
	h        *domain.Hierarchy
	computed int
}

// Project returns the hierarchy of snap, computing it only when its notes
// differ from the last projected ones
func (p *Projector) Project(snap *Snapshot) *domain.Hierarchy {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.h != nil && p.gen == snap.NotesGen {
		return p.h
	}
	p.gen = snap.NotesGen
	p.h = domain.Project(snap.Notes)
	p.computed++
	return p.h
}

// Computed returns how many projections were built
func (p *Projector) Computed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.computed
}
