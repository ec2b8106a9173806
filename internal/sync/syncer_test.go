package sync

import (
	"context"
	"errors"
	"strings"
	gosync "sync"
	"testing"
	"time"

	"github.com/beanup/interview-guide/internal/interview"
)

type stubRemote struct {
	mu        gosync.Mutex
	fetched   []*interview.Interview
	fetchErr  error
	upserts   []string
	upsertErr map[string]error
	deletes   []string
	deleteErr error
}

func (r *stubRemote) FetchAll(ctx context.Context, userID string) ([]*interview.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fetchErr != nil {
		return nil, r.fetchErr
	}
	return r.fetched, nil
}

func (r *stubRemote) Upsert(ctx context.Context, userID string, iv *interview.Interview) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.upsertErr[iv.ID]; err != nil {
		return err
	}
	r.upserts = append(r.upserts, iv.ID)
	return nil
}

func (r *stubRemote) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.deletes = append(r.deletes, id)
	return nil
}

func (r *stubRemote) upsertCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.upserts)
}

func (r *stubRemote) deleted() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.deletes))
	copy(out, r.deletes)
	return out
}

type stubSource struct {
	mu         gosync.Mutex
	interviews []*interview.Interview
	merged     []*interview.Interview
}

func (s *stubSource) Interviews() []*interview.Interview {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interviews
}

func (s *stubSource) MergeRemote(remote []*interview.Interview) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.merged = remote
}

func (s *stubSource) set(interviews []*interview.Interview) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interviews = interviews
}

func testNow() time.Time {
	return time.Date(2026, 8, 12, 10, 0, 0, 0, time.UTC)
}

func TestInitialSyncMergesRemote(t *testing.T) {
	remote := &stubRemote{fetched: []*interview.Interview{interview.NewInterview("Remote", testNow())}}
	source := &stubSource{}
	s := New(remote, source, "u1", time.Millisecond, testNow)

	if err := s.InitialSync(context.Background()); err != nil {
		t.Fatalf("initial sync: %v", err)
	}
	if len(source.merged) != 1 {
		t.Fatalf("merged %d records, want 1", len(source.merged))
	}
	if st := s.Status(); st.State != StateSuccess || st.LastSyncedAt.IsZero() {
		t.Fatalf("status = %+v", st)
	}
}

func TestInitialSyncErrorSurfacedNotFatal(t *testing.T) {
	remote := &stubRemote{fetchErr: errors.New("connection refused")}
	source := &stubSource{}
	s := New(remote, source, "u1", time.Millisecond, testNow)

	if err := s.InitialSync(context.Background()); err == nil {
		t.Fatal("expected fetch error")
	}
	if source.merged != nil {
		t.Fatal("failed fetch must not merge anything")
	}
	st := s.Status()
	if st.State != StateError || !strings.Contains(st.LastError, "Laden fehlgeschlagen") {
		t.Fatalf("status = %+v", st)
	}
}

func TestNotifyDebouncesIntoSinglePass(t *testing.T) {
	remote := &stubRemote{}
	source := &stubSource{}
	source.set([]*interview.Interview{interview.NewInterview("A", testNow())})
	s := New(remote, source, "u1", 20*time.Millisecond, testNow)
	defer s.Stop()

	for i := 0; i < 10; i++ {
		s.Notify()
	}
	time.Sleep(200 * time.Millisecond)

	if got := remote.upsertCount(); got != 1 {
		t.Fatalf("upserts = %d, want 1 (burst must coalesce)", got)
	}
	if st := s.Status(); st.State != StateSuccess {
		t.Fatalf("status = %+v", st)
	}
}

func TestFlushPushesImmediately(t *testing.T) {
	remote := &stubRemote{}
	source := &stubSource{}
	source.set([]*interview.Interview{
		interview.NewInterview("A", testNow()),
		interview.NewInterview("B", testNow()),
	})
	s := New(remote, source, "u1", time.Hour, testNow)
	defer s.Stop()

	s.Notify()
	s.Flush(context.Background())

	if got := remote.upsertCount(); got != 2 {
		t.Fatalf("upserts = %d, want 2", got)
	}
}

func TestDeletePropagation(t *testing.T) {
	gone := interview.NewInterview("Gone", testNow())
	remote := &stubRemote{fetched: []*interview.Interview{gone}}
	source := &stubSource{}
	s := New(remote, source, "u1", time.Millisecond, testNow)

	if err := s.InitialSync(context.Background()); err != nil {
		t.Fatal(err)
	}

	// Local store no longer has the record: the next pass deletes it
	// remotely.
	source.set(nil)
	s.Flush(context.Background())

	deletes := remote.deleted()
	if len(deletes) != 1 || deletes[0] != gone.ID {
		t.Fatalf("deletes = %v, want [%s]", deletes, gone.ID)
	}
}

func TestUpsertFailureSurfacedAndPassContinues(t *testing.T) {
	a := interview.NewInterview("A", testNow())
	b := interview.NewInterview("B", testNow())
	remote := &stubRemote{upsertErr: map[string]error{a.ID: errors.New("disk full")}}
	source := &stubSource{}
	source.set([]*interview.Interview{a, b})
	s := New(remote, source, "u1", time.Millisecond, testNow)

	s.Flush(context.Background())

	if got := remote.upsertCount(); got != 1 {
		t.Fatalf("upserts = %d, want 1 (pass continues past failures)", got)
	}
	st := s.Status()
	if st.State != StateError || !strings.Contains(st.LastError, "Speichern fehlgeschlagen") {
		t.Fatalf("status = %+v", st)
	}
}

func TestStopPreventsScheduledPass(t *testing.T) {
	remote := &stubRemote{}
	source := &stubSource{}
	source.set([]*interview.Interview{interview.NewInterview("A", testNow())})
	s := New(remote, source, "u1", 20*time.Millisecond, testNow)

	s.Notify()
	s.Stop()
	time.Sleep(100 * time.Millisecond)

	if got := remote.upsertCount(); got != 0 {
		t.Fatalf("upserts = %d after stop, want 0", got)
	}
}
