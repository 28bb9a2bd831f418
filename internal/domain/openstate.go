package domain

// OpenStates records which notes are expanded, per tab then per note.
// Values are treated as immutable: every update returns a new OpenStates
// that shares the inner maps of all tabs it did not touch.
type OpenStates map[int64]map[int64]bool

// Get reports whether a note is expanded. Notes default to expanded.
func (o OpenStates) Get(tabID, noteID int64) bool {
	open, ok := o[tabID][noteID]
	if !ok {
		return true
	}
	return open
}

// Has reports whether an explicit entry exists for the note
func (o OpenStates) Has(tabID, noteID int64) bool {
	_, ok := o[tabID][noteID]
	return ok
}

// Set returns a copy with the note's state set to open
func (o OpenStates) Set(tabID, noteID int64, open bool) OpenStates {
	if cur, ok := o[tabID][noteID]; ok && cur == open {
		return o
	}
	next := o.shallowCopy()
	inner := make(map[int64]bool, len(o[tabID])+1)
	for id, v := range o[tabID] {
		inner[id] = v
	}
	inner[noteID] = open
	next[tabID] = inner
	return next
}

// Toggle returns a copy with the note's state flipped
func (o OpenStates) Toggle(tabID, noteID int64) OpenStates {
	return o.Set(tabID, noteID, !o.Get(tabID, noteID))
}

// PruneTab returns a copy without the entries of tabID whose note IDs are
// not in live. When nothing is stale the receiver itself is returned.
func (o OpenStates) PruneTab(tabID int64, live map[int64]struct{}) OpenStates {
	stale := false
	for id := range o[tabID] {
		if _, ok := live[id]; !ok {
			stale = true
			break
		}
	}
	if !stale {
		return o
	}

	next := o.shallowCopy()
	inner := make(map[int64]bool, len(live))
	for id, v := range o[tabID] {
		if _, ok := live[id]; ok {
			inner[id] = v
		}
	}
	next[tabID] = inner
	return next
}

// DropTab returns a copy without any entries for tabID
func (o OpenStates) DropTab(tabID int64) OpenStates {
	if _, ok := o[tabID]; !ok {
		return o
	}
	next := o.shallowCopy()
	delete(next, tabID)
	return next
}

func (o OpenStates) shallowCopy() OpenStates {
	next := make(OpenStates, len(o)+1)
	for tab, inner := range o {
		next[tab] = inner
	}
	return next
}
