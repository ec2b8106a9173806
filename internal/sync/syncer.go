// Package sync mirrors the local interview store to the remote row store in
// the background. Mutations debounce into a single outbound pass after a
// quiet period; conflicts on initial fetch resolve by last-write-wins on
// updatedAt. Concurrent edits from two sessions racing within the debounce
// window can silently lose one side — an accepted limitation of this
// policy, not something the syncer tries to repair.
package sync

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/beanup/interview-guide/internal/interview"
)

// DefaultDebounce is the quiet period before a mutation burst is pushed.
const DefaultDebounce = 2 * time.Second

// Remote is the row-store contract the syncer pushes to and pulls from.
// *db.Store satisfies it.
type Remote interface {
	FetchAll(ctx context.Context, userID string) ([]*interview.Interview, error)
	Upsert(ctx context.Context, userID string, iv *interview.Interview) error
	Delete(ctx context.Context, id string) error
}

// Source is the slice of the local store the syncer needs.
type Source interface {
	Interviews() []*interview.Interview
	MergeRemote(remote []*interview.Interview)
}

// State is the coarse sync condition shown in the status indicator.
type State string

const (
	StateIdle    State = "idle"
	StateSyncing State = "syncing"
	StateSuccess State = "success"
	StateError   State = "error"
)

// Status is the non-blocking sync indicator surfaced to the UI. Transport
// failures land here; local state is never rolled back because of them.
type Status struct {
	State        State     `json:"state"`
	LastError    string    `json:"lastError,omitempty"`
	LastSyncedAt time.Time `json:"lastSyncedAt,omitempty"`
}

// Syncer debounces local mutations into background pushes. At most one
// pass runs at a time; notifications during a pass coalesce into one
// follow-up pass.
type Syncer struct {
	remote   Remote
	store    Source
	userID   string
	debounce time.Duration
	now      func() time.Time

	mu       sync.Mutex
	timer    *time.Timer
	inflight bool
	pending  bool
	pushed   map[string]struct{}
	status   Status
	stopped  bool
}

// New creates a syncer for one user's data. debounce <= 0 uses
// DefaultDebounce; now may be nil.
func New(remote Remote, store Source, userID string, debounce time.Duration, now func() time.Time) *Syncer {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if now == nil {
		now = time.Now
	}
	return &Syncer{
		remote:   remote,
		store:    store,
		userID:   userID,
		debounce: debounce,
		now:      now,
		pushed:   map[string]struct{}{},
		status:   Status{State: StateIdle},
	}
}

// Status returns the current sync indicator.
func (s *Syncer) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Syncer) setSyncing() {
	s.mu.Lock()
	s.status.State = StateSyncing
	s.mu.Unlock()
}

func (s *Syncer) setSuccess() {
	s.mu.Lock()
	s.status = Status{State: StateSuccess, LastSyncedAt: s.now()}
	s.mu.Unlock()
}

func (s *Syncer) setError(msg string) {
	s.mu.Lock()
	s.status.State = StateError
	s.status.LastError = msg
	s.mu.Unlock()
}

// InitialSync pulls the remote collection and merges it into the local
// store by last-write-wins on updatedAt. Fetch failures surface in the
// status and leave local state untouched.
func (s *Syncer) InitialSync(ctx context.Context) error {
	s.setSyncing()
	remote, err := s.remote.FetchAll(ctx, s.userID)
	if err != nil {
		log.Printf("sync: fetch failed: %v", err)
		s.setError("Laden fehlgeschlagen: " + err.Error())
		return err
	}
	s.store.MergeRemote(remote)

	s.mu.Lock()
	for _, iv := range remote {
		s.pushed[iv.ID] = struct{}{}
	}
	s.mu.Unlock()

	s.setSuccess()
	return nil
}

// Notify schedules a debounced sync pass. Safe to call from the store's
// subscription on every mutation; bursts collapse into one pass.
func (s *Syncer) Notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if s.inflight {
		s.pending = true
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		s.runPass(context.Background())
	})
}

// Flush runs a sync pass immediately, cancelling any scheduled one. Meant
// for shutdown.
func (s *Syncer) Flush(ctx context.Context) {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	s.runPass(ctx)
}

// Stop prevents any further scheduled passes.
func (s *Syncer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// runPass pushes the current local collection and propagates deletions of
// records pushed earlier. Individual transport errors are logged and
// surfaced; the pass continues with the remaining records.
func (s *Syncer) runPass(ctx context.Context) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	if s.inflight {
		s.pending = true
		s.mu.Unlock()
		return
	}
	s.inflight = true
	s.mu.Unlock()

	s.setSyncing()
	interviews := s.store.Interviews()

	local := make(map[string]struct{}, len(interviews))
	failed := false
	for _, iv := range interviews {
		local[iv.ID] = struct{}{}
		if err := s.remote.Upsert(ctx, s.userID, iv); err != nil {
			log.Printf("sync: upsert %s failed: %v", iv.ID, err)
			s.setError("Speichern fehlgeschlagen: " + err.Error())
			failed = true
			continue
		}
		s.mu.Lock()
		s.pushed[iv.ID] = struct{}{}
		s.mu.Unlock()
	}

	s.mu.Lock()
	var stale []string
	for id := range s.pushed {
		if _, ok := local[id]; !ok {
			stale = append(stale, id)
		}
	}
	s.mu.Unlock()

	for _, id := range stale {
		if err := s.remote.Delete(ctx, id); err != nil {
			log.Printf("sync: delete %s failed: %v", id, err)
			s.setError("Löschen fehlgeschlagen: " + err.Error())
			failed = true
			continue
		}
		s.mu.Lock()
		delete(s.pushed, id)
		s.mu.Unlock()
	}

	if !failed {
		s.setSuccess()
	}

	s.mu.Lock()
	s.inflight = false
	rerun := s.pending && !s.stopped
	s.pending = false
	if rerun {
		s.timer = time.AfterFunc(s.debounce, func() {
			s.runPass(context.Background())
		})
	}
	s.mu.Unlock()
}
