// Package testutil provides in-memory collaborators for tests.
package testutil

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"focusboard/internal/domain"
	"focusboard/internal/ports"
)

// Backend operation names, used for failure injection, gates and the call log
const (
	OpListTabs     = "ListTabs"
	OpCreateTab    = "CreateTab"
	OpRenameTab    = "RenameTab"
	OpDeleteTab    = "DeleteTab"
	OpReorderTabs  = "ReorderTabs"
	OpListNotes    = "ListNotes"
	OpCreateNote   = "CreateNote"
	OpUpdateNote   = "UpdateNote"
	OpDeleteNote   = "DeleteNote"
	OpReorderNotes = "ReorderNotes"
	OpBackup       = "Backup"
	OpOptimize     = "Optimize"
)

// Call is one recorded Backend call
type Call struct {
	Op    string
	TabID int64
	IDs   []int64
}

// Gate holds calls of one operation until released
type Gate struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
	relOnce sync.Once
}

// Entered is closed once a call reaches the gate
func (g *Gate) Entered() <-chan struct{} {
	return g.entered
}

// Release lets every held and future call through
func (g *Gate) Release() {
	g.relOnce.Do(func() { close(g.release) })
}

func (g *Gate) wait(ctx context.Context) error {
	g.once.Do(func() { close(g.entered) })
	select {
	case <-g.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Backend is an in-memory ports.Backend with failure injection
type Backend struct {
	mu     sync.Mutex
	tabs   []domain.Tab
	notes  []domain.Note
	nextID int64
	fail   map[string]error
	gates  map[string]*Gate
	calls  []Call
	now    func() time.Time
}

var _ ports.Backend = (*Backend)(nil)

// NewBackend creates an empty in-memory backend
func NewBackend() *Backend {
	return &Backend{
		fail:  make(map[string]error),
		gates: make(map[string]*Gate),
		now:   time.Now,
	}
}

// SeedTab inserts a tab directly, bypassing the call log
func (b *Backend) SeedTab(name string, order *int64) domain.Tab {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	t := domain.Tab{ID: b.nextID, Name: name, OrderID: order, CreatedAt: b.now(), UpdatedAt: b.now()}
	b.tabs = append(b.tabs, t)
	return t.Clone()
}

// SeedNote inserts a note directly. A zero ID is assigned.
func (b *Backend) SeedNote(n domain.Note) domain.Note {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n.ID == 0 {
		b.nextID++
		n.ID = b.nextID
	} else if n.ID > b.nextID {
		b.nextID = n.ID
	}
	if n.Type == "" {
		n.Type = domain.NoteTypeBasic
	}
	b.notes = append(b.notes, n.Clone())
	return n.Clone()
}

// SetFail makes every later call of op return err; nil clears it
func (b *Backend) SetFail(op string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err == nil {
		delete(b.fail, op)
		return
	}
	b.fail[op] = err
}

// Block holds calls of op until the returned gate is released
func (b *Backend) Block(op string) *Gate {
	b.mu.Lock()
	defer b.mu.Unlock()
	g := &Gate{entered: make(chan struct{}), release: make(chan struct{})}
	b.gates[op] = g
	return g
}

// Calls returns the recorded calls
func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.calls)
}

// CallsOf returns the recorded calls of one operation
func (b *Backend) CallsOf(op string) []Call {
	var out []Call
	for _, c := range b.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Tabs returns the stored tabs in insertion order
func (b *Backend) Tabs() []domain.Tab {
	b.mu.Lock()
	defer b.mu.Unlock()
	return domain.CloneTabs(b.tabs)
}

// Notes returns every stored note in insertion order
func (b *Backend) Notes() []domain.Note {
	b.mu.Lock()
	defer b.mu.Unlock()
	return domain.CloneNotes(b.notes)
}

// Note returns one stored note
func (b *Backend) Note(id int64) (domain.Note, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := domain.IndexOfNote(b.notes, id)
	if i < 0 {
		return domain.Note{}, false
	}
	return b.notes[i].Clone(), true
}

// enter records the call, waits on any gate, then returns the injected failure
func (b *Backend) enter(ctx context.Context, c Call) error {
	b.mu.Lock()
	c.IDs = slices.Clone(c.IDs)
	b.calls = append(b.calls, c)
	g := b.gates[c.Op]
	b.mu.Unlock()

	if g != nil {
		if err := g.wait(ctx); err != nil {
			return err
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fail[c.Op]
}

func (b *Backend) ListTabs(ctx context.Context) ([]domain.Tab, error) {
	if err := b.enter(ctx, Call{Op: OpListTabs}); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	out := domain.CloneTabs(b.tabs)
	slices.SortFunc(out, func(x, y domain.Tab) int { return cmp.Compare(x.ID, y.ID) })
	return out, nil
}

func (b *Backend) CreateTab(ctx context.Context, name string) (*domain.Tab, error) {
	if err := b.enter(ctx, Call{Op: OpCreateTab}); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	t := domain.Tab{ID: b.nextID, Name: name, CreatedAt: b.now(), UpdatedAt: b.now()}
	b.tabs = append(b.tabs, t)
	out := t.Clone()
	return &out, nil
}

func (b *Backend) RenameTab(ctx context.Context, id int64, name string) error {
	if err := b.enter(ctx, Call{Op: OpRenameTab, TabID: id}); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	i := domain.IndexOfTab(b.tabs, id)
	if i < 0 {
		return fmt.Errorf("tab %d: %w", id, ports.ErrNotFound)
	}
	b.tabs[i].Name = name
	b.tabs[i].UpdatedAt = b.now()
	return nil
}

func (b *Backend) DeleteTab(ctx context.Context, id int64) error {
	if err := b.enter(ctx, Call{Op: OpDeleteTab, TabID: id}); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	i := domain.IndexOfTab(b.tabs, id)
	if i < 0 {
		return fmt.Errorf("tab %d: %w", id, ports.ErrNotFound)
	}
	b.tabs = slices.Delete(b.tabs, i, i+1)
	b.notes = slices.DeleteFunc(b.notes, func(n domain.Note) bool {
		return n.TabID != nil && *n.TabID == id
	})
	return nil
}

func (b *Backend) ReorderTabs(ctx context.Context, ids []int64) error {
	if err := b.enter(ctx, Call{Op: OpReorderTabs, IDs: ids}); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for idx, id := range ids {
		if i := domain.IndexOfTab(b.tabs, id); i >= 0 {
			b.tabs[i].OrderID = domain.Ptr(int64(idx))
		}
	}
	return nil
}

func (b *Backend) ListNotes(ctx context.Context, tabID int64) ([]domain.Note, error) {
	if err := b.enter(ctx, Call{Op: OpListNotes, TabID: tabID}); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []domain.Note
	for _, n := range b.notes {
		if n.TabID != nil && *n.TabID == tabID {
			out = append(out, n.Clone())
		}
	}
	return domain.SortNotes(out), nil
}

func (b *Backend) CreateNote(ctx context.Context, nn domain.NewNote) (*domain.Note, error) {
	if err := b.enter(ctx, Call{Op: OpCreateNote, TabID: valueOr(nn.TabID)}); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	scope := domain.NoteScope(valueOr(nn.TabID), nn.ParentID)
	var maxOrder int64
	for _, n := range b.notes {
		if n.Scope() == scope && valueOr(n.OrderID) > maxOrder {
			maxOrder = *n.OrderID
		}
	}

	b.nextID++
	typ := nn.Type
	if typ == "" {
		typ = domain.NoteTypeBasic
	}
	n := domain.Note{
		ID:        b.nextID,
		Title:     nn.Title,
		Content:   nn.Content,
		TabID:     nn.TabID,
		ParentID:  nn.ParentID,
		OrderID:   domain.Ptr(maxOrder + 1),
		Type:      typ,
		CreatedAt: b.now(),
		UpdatedAt: b.now(),
	}
	b.notes = append(b.notes, n.Clone())
	return &n, nil
}

func (b *Backend) UpdateNote(ctx context.Context, id int64, title, content string) error {
	if err := b.enter(ctx, Call{Op: OpUpdateNote, IDs: []int64{id}}); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	i := domain.IndexOfNote(b.notes, id)
	if i < 0 {
		return fmt.Errorf("note %d: %w", id, ports.ErrNotFound)
	}
	b.notes[i].Title = title
	b.notes[i].Content = content
	b.notes[i].UpdatedAt = b.now()
	return nil
}

func (b *Backend) DeleteNote(ctx context.Context, id int64) error {
	if err := b.enter(ctx, Call{Op: OpDeleteNote, IDs: []int64{id}}); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if domain.IndexOfNote(b.notes, id) < 0 {
		return fmt.Errorf("note %d: %w", id, ports.ErrNotFound)
	}
	b.notes = slices.DeleteFunc(b.notes, func(n domain.Note) bool {
		return n.ID == id || (n.ParentID != nil && *n.ParentID == id)
	})
	return nil
}

func (b *Backend) ReorderNotes(ctx context.Context, tabID int64, ids []int64) error {
	if err := b.enter(ctx, Call{Op: OpReorderNotes, TabID: tabID, IDs: ids}); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for idx, id := range ids {
		i := domain.IndexOfNote(b.notes, id)
		if i < 0 {
			continue
		}
		if tabID != 0 && valueOr(b.notes[i].TabID) != tabID {
			continue
		}
		b.notes[i].OrderID = domain.Ptr(int64(idx + 1))
	}
	return nil
}

func (b *Backend) Backup(ctx context.Context) (string, error) {
	if err := b.enter(ctx, Call{Op: OpBackup}); err != nil {
		return "", err
	}
	return "/backups/database-backup_test", nil
}

func (b *Backend) Optimize(ctx context.Context) error {
	return b.enter(ctx, Call{Op: OpOptimize})
}

func valueOr(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}
