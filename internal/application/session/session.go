// Package session is the interactive board engine: the entity store, the
// memoized hierarchy, optimistic reordering, drag classification and the
// open-state tracker, all over a ports.Backend.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"focusboard/internal/domain"
	"focusboard/internal/ports"
)

// DefaultDebounce is the delay before open-state changes are saved
const DefaultDebounce = 300 * time.Millisecond

// Options configures a Session
type Options struct {
	Backend ports.Backend
	Prefs   ports.PreferenceStore
	Logger  logrus.FieldLogger

	// Debounce delays open-state saves; DefaultDebounce when zero
	Debounce time.Duration

	// OnStatus receives every status message
	OnStatus func(Status)
	// OnReorderState observes reorder state transitions per scope
	OnReorderState func(domain.Scope, ReorderState)
}

// Session holds the board state of one running client
type Session struct {
	backend ports.Backend
	prefs   ports.PreferenceStore
	log     logrus.FieldLogger
	store   *Store
	proj    *Projector
	now     func() time.Time

	onStatus  func(Status)
	onReorder func(domain.Scope, ReorderState)

	// selMu orders selection changes against note loads and is held across
	// store commits, so store subscribers must never take it
	selMu sync.Mutex

	// mu guards selection, ui, status, drag and reorder bookkeeping
	mu             sync.Mutex
	currentTabID   *int64
	currentTabName string
	ui             ports.UIVisibility
	status         Status
	drag           dragState
	reorders       map[domain.Scope]ReorderState
	inflight       map[domain.Scope]int

	openMu sync.Mutex
	open   domain.OpenStates
	saver  *Debouncer

	wg          sync.WaitGroup
	unsubscribe func()
}

// New creates a session. Call Start before use.
func New(opts Options) *Session {
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		log = l
	}
	delay := opts.Debounce
	if delay <= 0 {
		delay = DefaultDebounce
	}

	s := &Session{
		backend:   opts.Backend,
		prefs:     opts.Prefs,
		log:       log,
		store:     NewStore(),
		proj:      &Projector{},
		now:       time.Now,
		onStatus:  opts.OnStatus,
		onReorder: opts.OnReorderState,
		ui:        ports.DefaultUIVisibility(),
		reorders:  make(map[domain.Scope]ReorderState),
		inflight:  make(map[domain.Scope]int),
	}
	s.saver = NewDebouncer(delay, s.saveOpenStates)
	s.unsubscribe = s.store.Subscribe(s.pruneOpenStates)
	return s
}

// Start loads preferences and tabs, creates a first tab when there is none,
// and restores the saved selection.
func (s *Session) Start(ctx context.Context) error {
	var (
		prefs ports.Preferences
		tabs  []domain.Tab
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.prefs.Load()
		if err != nil {
			s.log.WithError(err).Warn("Failed to load preferences, using defaults")
			p = ports.Preferences{UI: ports.DefaultUIVisibility()}
		}
		prefs = p
		return nil
	})
	g.Go(func() error {
		t, err := s.backend.ListTabs(gctx)
		if err != nil {
			return fmt.Errorf("failed to load tabs: %w", err)
		}
		tabs = t
		return nil
	})
	if err := g.Wait(); err != nil {
		s.report("", err)
		return err
	}

	if len(tabs) == 0 {
		tab, err := s.backend.CreateTab(ctx, domain.DefaultTabName)
		if err != nil {
			err = fmt.Errorf("failed to create tab: %w", err)
			s.report("", err)
			return err
		}
		s.log.WithField("tab", tab.ID).Info("Created initial tab")
		tabs = []domain.Tab{*tab}
	}

	s.openMu.Lock()
	s.open = prefs.OpenStates
	s.openMu.Unlock()

	s.mu.Lock()
	s.ui = prefs.UI
	s.mu.Unlock()

	s.store.ReplaceTabs(tabs)

	target := s.restoredTab(prefs)
	if err := s.SelectTab(ctx, target); err != nil {
		return err
	}

	s.report("App setup complete", nil)
	return nil
}

// restoredTab returns the saved tab when one with the same ID and name still
// exists, otherwise the first tab by order
func (s *Session) restoredTab(prefs ports.Preferences) int64 {
	snap := s.store.Snapshot()
	if prefs.CurrentTabID != nil {
		if t, ok := snap.Tab(*prefs.CurrentTabID); ok && t.Name == prefs.CurrentTabName {
			return t.ID
		}
		s.log.WithFields(logrus.Fields{
			"tab":  *prefs.CurrentTabID,
			"name": prefs.CurrentTabName,
		}).Debug("Saved tab no longer matches, selecting first tab")
	}
	return snap.Tabs[0].ID
}

// Close waits for in-flight persistence, saves every preference and runs
// backend maintenance. A pending debounced open-state save is flushed and
// counts as the final open-state write.
func (s *Session) Close(ctx context.Context) error {
	s.wg.Wait()
	flushed, openErr := s.saver.Flush()
	s.saver.Stop()
	s.unsubscribe()

	s.mu.Lock()
	tabID, tabName, ui := s.currentTabID, s.currentTabName, s.ui
	s.mu.Unlock()

	var errs []error
	if err := s.prefs.SaveSelection(tabID, tabName); err != nil {
		errs = append(errs, fmt.Errorf("save selection: %w", err))
	}
	if !flushed {
		openErr = s.saveOpenStates()
	}
	if openErr != nil {
		errs = append(errs, fmt.Errorf("save open states: %w", openErr))
	}
	if err := s.prefs.SaveUI(ui); err != nil {
		errs = append(errs, fmt.Errorf("save ui: %w", err))
	}
	if err := s.backend.Optimize(ctx); err != nil {
		errs = append(errs, fmt.Errorf("optimize: %w", err))
	}

	err := errors.Join(errs...)
	if err != nil {
		s.log.WithError(err).Error("Session closed with errors")
	}
	return err
}

// Snapshot returns the current board state
func (s *Session) Snapshot() *Snapshot {
	return s.store.Snapshot()
}

// Subscribe registers fn for every committed snapshot. fn must not call
// back into the session's mutating methods.
func (s *Session) Subscribe(fn func(*Snapshot)) func() {
	return s.store.Subscribe(fn)
}

// Hierarchy returns the projection of the current snapshot
func (s *Session) Hierarchy() *domain.Hierarchy {
	return s.proj.Project(s.store.Snapshot())
}

// Projections returns how many hierarchies have been computed
func (s *Session) Projections() int {
	return s.proj.Computed()
}

// Forest returns the current tab's note tree with expansion applied
func (s *Session) Forest() []*domain.TreeNode {
	tabID, ok := s.CurrentTabID()
	if !ok {
		return nil
	}
	return domain.BuildForest(s.Hierarchy(), tabID, s.OpenStates())
}

// Status returns the latest status message
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Wait blocks until every in-flight persistence call has finished
func (s *Session) Wait() {
	s.wg.Wait()
}

// report records a status message. A non-nil err makes it a failure and the
// message defaults to the error text.
func (s *Session) report(msg string, err error) {
	if msg == "" && err != nil {
		msg = err.Error()
	}
	st := Status{Message: msg, Err: err, At: s.now()}

	s.mu.Lock()
	s.status = st
	s.mu.Unlock()

	if err != nil {
		s.log.WithError(err).Error(msg)
	} else {
		s.log.Info(msg)
	}
	if s.onStatus != nil {
		s.onStatus(st)
	}
}
