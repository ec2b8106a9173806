package interview

import (
	"context"
	"time"
)

// TimerSnapshot is a read-only view of the timer for one section at one
// query instant. Elapsed values are derived from wall-clock timestamps, so
// polling frequency never affects accuracy.
type TimerSnapshot struct {
	SectionKey       SectionKey `json:"sectionKey"`
	DurationMs       int64      `json:"durationMs"`
	SectionElapsedMs int64      `json:"sectionElapsedMs"`
	RemainingMs      int64      `json:"remainingMs"`
	TotalElapsedMs   int64      `json:"totalElapsedMs"`
	IsPaused         bool       `json:"isPaused"`
}

// SectionTimer tracks per-section elapsed time for the active interview,
// backed by the store's timerState so it survives restarts and is scoped
// per interview.
//
// Elapsed fields are only written at pause/resume/switch/reset transitions;
// reads compute current elapsed from SectionStartedAt. A periodic poller
// therefore never accumulates drift.
type SectionTimer struct {
	store *Store
	now   func() time.Time
}

// NewSectionTimer creates a timer over the store. now may be nil, in which
// case time.Now is used.
func NewSectionTimer(store *Store, now func() time.Time) *SectionTimer {
	if now == nil {
		now = time.Now
	}
	return &SectionTimer{store: store, now: now}
}

func (t *SectionTimer) msSince(at *time.Time) int64 {
	if at == nil {
		return 0
	}
	d := t.now().Sub(*at).Milliseconds()
	if d < 0 {
		return 0
	}
	return d
}

// Observe makes key the tracked section. Observing a section other than the
// currently tracked one is the switch transition: unflushed running time of
// the previous section folds into totalElapsedMs, the section clock resets
// to zero and starts running. Observing the already tracked section only
// repairs a missing start stamp on a running timer.
func (t *SectionTimer) Observe(key SectionKey) {
	if !ValidSectionKey(key) {
		return
	}
	ts := t.store.ActiveInterview().Config.TimerState

	if ts.CurrentSectionKey != key {
		previous := ts.SectionElapsedMs
		if ts.CurrentSectionKey != "" && !ts.IsPaused {
			previous += t.msSince(ts.SectionStartedAt)
		}
		now := t.now()
		total := ts.TotalElapsedMs + previous
		zero := int64(0)
		paused := false
		t.store.UpdateTimerState(TimerStatePatch{
			CurrentSectionKey: &key,
			SectionStartedAt:  &now,
			SectionElapsedMs:  &zero,
			TotalElapsedMs:    &total,
			IsPaused:          &paused,
		})
		return
	}

	if !ts.IsPaused && ts.SectionStartedAt == nil {
		now := t.now()
		t.store.UpdateTimerState(TimerStatePatch{SectionStartedAt: &now})
	}
}

// Pause stops the running clock, folding elapsed-since-start into
// sectionElapsedMs. A paused timer is a no-op.
func (t *SectionTimer) Pause() {
	ts := t.store.ActiveInterview().Config.TimerState
	if ts.IsPaused {
		return
	}
	elapsed := ts.SectionElapsedMs + t.msSince(ts.SectionStartedAt)
	paused := true
	t.store.UpdateTimerState(TimerStatePatch{
		SectionElapsedMs:      &elapsed,
		ClearSectionStartedAt: true,
		IsPaused:              &paused,
	})
}

// Resume restarts a paused clock from a fresh start stamp; accumulated
// sectionElapsedMs is preserved. A running timer is a no-op.
func (t *SectionTimer) Resume() {
	ts := t.store.ActiveInterview().Config.TimerState
	if !ts.IsPaused {
		return
	}
	now := t.now()
	paused := false
	t.store.UpdateTimerState(TimerStatePatch{
		SectionStartedAt: &now,
		IsPaused:         &paused,
	})
}

// ResetSection zeroes the current section's clock. A running timer keeps
// running from a fresh start stamp; a paused timer stays paused.
func (t *SectionTimer) ResetSection() {
	ts := t.store.ActiveInterview().Config.TimerState
	zero := int64(0)
	patch := TimerStatePatch{SectionElapsedMs: &zero}
	if ts.IsPaused {
		patch.ClearSectionStartedAt = true
	} else {
		now := t.now()
		patch.SectionStartedAt = &now
	}
	t.store.UpdateTimerState(patch)
}

// Snapshot reports elapsed and remaining time for key at the current
// instant without mutating any state. A section other than the tracked one
// reads as zero elapsed.
func (t *SectionTimer) Snapshot(key SectionKey) TimerSnapshot {
	ts := t.store.ActiveInterview().Config.TimerState
	snap := TimerSnapshot{
		SectionKey: key,
		DurationMs: SectionDurationMs(key),
		IsPaused:   ts.IsPaused,
	}

	if ts.CurrentSectionKey == key {
		snap.SectionElapsedMs = ts.SectionElapsedMs
		if !ts.IsPaused {
			snap.SectionElapsedMs += t.msSince(ts.SectionStartedAt)
		}
	}

	snap.TotalElapsedMs = ts.TotalElapsedMs
	if ts.CurrentSectionKey == key && !ts.IsPaused {
		snap.TotalElapsedMs += t.msSince(ts.SectionStartedAt)
	}

	if remaining := snap.DurationMs - snap.SectionElapsedMs; remaining > 0 {
		snap.RemainingMs = remaining
	}
	return snap
}

// Watch polls the timer for key and hands each snapshot to fn. It returns
// when ctx is cancelled or when key stops being the running section, so a
// poller never outlives its section.
func (t *SectionTimer) Watch(ctx context.Context, key SectionKey, interval time.Duration, fn func(TimerSnapshot)) {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ts := t.store.ActiveInterview().Config.TimerState
			if ts.CurrentSectionKey != key || ts.IsPaused {
				return
			}
			fn(t.Snapshot(key))
		}
	}
}
