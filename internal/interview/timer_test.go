package interview

import (
	"testing"
	"time"
)

func newTestTimer() (*SectionTimer, *Store, *fakeClock) {
	clk := newFakeClock()
	s := NewStore(clk.Now)
	return NewSectionTimer(s, clk.Now), s, clk
}

func TestTimerRemainingWhileRunning(t *testing.T) {
	timer, _, clk := newTestTimer()
	timer.Observe(SectionPain) // 15 min section

	clk.Advance(250 * time.Second)
	snap := timer.Snapshot(SectionPain)

	if snap.SectionElapsedMs != 250_000 {
		t.Fatalf("elapsed = %d, want 250000", snap.SectionElapsedMs)
	}
	if snap.RemainingMs != 650_000 {
		t.Fatalf("remaining = %d, want 650000", snap.RemainingMs)
	}
	if snap.IsPaused {
		t.Fatal("timer should be running after observe")
	}
}

func TestPausedTimeExcluded(t *testing.T) {
	timer, _, clk := newTestTimer()
	timer.Observe(SectionJourney)

	clk.Advance(250 * time.Second)
	timer.Pause()

	clk.Advance(150 * time.Second)
	timer.Resume()

	clk.Advance(100 * time.Second)
	snap := timer.Snapshot(SectionJourney)

	if snap.SectionElapsedMs != 350_000 {
		t.Fatalf("elapsed = %d, want 350000 (paused interval must not count)", snap.SectionElapsedMs)
	}
}

func TestPauseAndResumeAreIdempotent(t *testing.T) {
	timer, s, clk := newTestTimer()
	timer.Observe(SectionWarmup)

	clk.Advance(10 * time.Second)
	timer.Pause()
	timer.Pause()

	ts := s.ActiveInterview().Config.TimerState
	if ts.SectionElapsedMs != 10_000 {
		t.Fatalf("elapsed = %d after double pause, want 10000", ts.SectionElapsedMs)
	}
	if ts.SectionStartedAt != nil {
		t.Fatal("pause must clear the start stamp")
	}

	timer.Resume()
	start := *s.ActiveInterview().Config.TimerState.SectionStartedAt
	clk.Advance(5 * time.Second)
	timer.Resume()
	if !s.ActiveInterview().Config.TimerState.SectionStartedAt.Equal(start) {
		t.Fatal("resume on a running timer must not re-stamp the start")
	}
}

func TestSectionSwitchFoldsRunningTimeIntoTotal(t *testing.T) {
	timer, s, clk := newTestTimer()
	timer.Observe(SectionWarmup)

	clk.Advance(2 * time.Minute)
	timer.Observe(SectionJourney)

	ts := s.ActiveInterview().Config.TimerState
	if ts.CurrentSectionKey != SectionJourney {
		t.Fatalf("tracked section = %s", ts.CurrentSectionKey)
	}
	if ts.TotalElapsedMs != 120_000 {
		t.Fatalf("total = %d, want 120000", ts.TotalElapsedMs)
	}
	if ts.SectionElapsedMs != 0 {
		t.Fatal("section clock must reset on switch")
	}
	if ts.IsPaused {
		t.Fatal("switch must leave the timer running")
	}

	// Switching away while paused folds only the flushed section time.
	clk.Advance(time.Minute)
	timer.Pause()
	clk.Advance(time.Hour)
	timer.Observe(SectionPain)
	ts = s.ActiveInterview().Config.TimerState
	if ts.TotalElapsedMs != 180_000 {
		t.Fatalf("total = %d, want 180000", ts.TotalElapsedMs)
	}
}

func TestObserveSameSectionRepairsMissingStart(t *testing.T) {
	timer, s, clk := newTestTimer()
	timer.Observe(SectionWarmup)

	// Simulate a rehydrated state that claims to run but lost its stamp.
	paused := false
	s.UpdateTimerState(TimerStatePatch{ClearSectionStartedAt: true, IsPaused: &paused})

	timer.Observe(SectionWarmup)
	ts := s.ActiveInterview().Config.TimerState
	if ts.SectionStartedAt == nil {
		t.Fatal("observe must repair a missing start stamp")
	}
	if !ts.SectionStartedAt.Equal(clk.Now()) {
		t.Fatal("repaired stamp should be now")
	}
}

func TestResetSectionWhileRunning(t *testing.T) {
	timer, _, clk := newTestTimer()
	timer.Observe(SectionAI)

	clk.Advance(90 * time.Second)
	timer.ResetSection()

	snap := timer.Snapshot(SectionAI)
	if snap.SectionElapsedMs != 0 {
		t.Fatalf("elapsed = %d after reset, want 0", snap.SectionElapsedMs)
	}

	clk.Advance(30 * time.Second)
	snap = timer.Snapshot(SectionAI)
	if snap.SectionElapsedMs != 30_000 {
		t.Fatalf("elapsed = %d, want 30000 (reset must keep running)", snap.SectionElapsedMs)
	}
}

func TestResetSectionWhilePaused(t *testing.T) {
	timer, s, clk := newTestTimer()
	timer.Observe(SectionAI)
	clk.Advance(time.Minute)
	timer.Pause()

	timer.ResetSection()
	ts := s.ActiveInterview().Config.TimerState
	if ts.SectionElapsedMs != 0 {
		t.Fatal("reset must zero the section clock")
	}
	if ts.SectionStartedAt != nil {
		t.Fatal("reset on a paused timer must stay paused with no stamp")
	}
	if !ts.IsPaused {
		t.Fatal("reset must not resume a paused timer")
	}
}

func TestSnapshotOfUntrackedSectionReadsZero(t *testing.T) {
	timer, _, clk := newTestTimer()
	timer.Observe(SectionWarmup)
	clk.Advance(time.Minute)

	snap := timer.Snapshot(SectionClosing)
	if snap.SectionElapsedMs != 0 {
		t.Fatalf("untracked section elapsed = %d, want 0", snap.SectionElapsedMs)
	}
	if snap.RemainingMs != SectionDurationMs(SectionClosing) {
		t.Fatal("untracked section must show its full duration remaining")
	}
	if snap.TotalElapsedMs != 0 {
		t.Fatal("running delta belongs to the tracked section only")
	}
}

func TestTimerStateScopedPerInterview(t *testing.T) {
	timer, s, clk := newTestTimer()
	first := s.ActiveID()
	timer.Observe(SectionWarmup)
	clk.Advance(time.Minute)
	timer.Pause()

	s.CreateInterview("Second")
	timer.Observe(SectionWarmup)
	clk.Advance(30 * time.Second)
	if got := timer.Snapshot(SectionWarmup).SectionElapsedMs; got != 30_000 {
		t.Fatalf("second interview elapsed = %d, want 30000", got)
	}

	s.SetActiveInterview(first)
	if got := timer.Snapshot(SectionWarmup).SectionElapsedMs; got != 60_000 {
		t.Fatalf("first interview elapsed = %d, want 60000", got)
	}
}
