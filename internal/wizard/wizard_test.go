package wizard

import "testing"

func TestStepNavigationClamped(t *testing.T) {
	tr := NewTracker()
	tr.SetInterview("iv-1")

	tr.PrevStep()
	if got := tr.Current().CurrentStep; got != 0 {
		t.Fatalf("step = %d, want clamp at 0", got)
	}

	for i := 0; i < MaxStep+5; i++ {
		tr.NextStep()
	}
	if got := tr.Current().CurrentStep; got != MaxStep {
		t.Fatalf("step = %d, want clamp at %d", got, MaxStep)
	}

	tr.GoToStep(3)
	if got := tr.Current().CurrentStep; got != 3 {
		t.Fatalf("step = %d, want 3", got)
	}
	tr.GoToStep(99)
	if got := tr.Current().CurrentStep; got != MaxStep {
		t.Fatalf("step = %d, want %d", got, MaxStep)
	}
}

func TestMarkCompleteSortedUnique(t *testing.T) {
	tr := NewTracker()
	tr.SetInterview("iv-1")

	tr.MarkComplete(4)
	tr.MarkComplete(1)
	tr.MarkComplete(4)

	steps := tr.Current().CompletedSteps
	if len(steps) != 2 || steps[0] != 1 || steps[1] != 4 {
		t.Fatalf("completed steps = %v", steps)
	}
}

func TestValidationErrorsPerStep(t *testing.T) {
	tr := NewTracker()
	tr.SetInterview("iv-1")

	tr.SetValidationErrors(2, []string{"Name fehlt"})
	if errs := tr.Current().ValidationErrors[2]; len(errs) != 1 {
		t.Fatalf("errors = %v", errs)
	}

	tr.ClearValidationErrors(2)
	if _, ok := tr.Current().ValidationErrors[2]; ok {
		t.Fatal("errors not cleared")
	}
}

func TestProgressIsolatedPerInterview(t *testing.T) {
	tr := NewTracker()
	tr.SetInterview("iv-1")
	tr.GoToStep(5)

	tr.SetInterview("iv-2")
	if got := tr.Current().CurrentStep; got != 0 {
		t.Fatalf("new interview starts at step %d, want 0", got)
	}

	tr.SetInterview("iv-1")
	if got := tr.Current().CurrentStep; got != 5 {
		t.Fatalf("step = %d after switching back, want 5", got)
	}
}

func TestNoCurrentInterviewNoops(t *testing.T) {
	tr := NewTracker()
	tr.NextStep()
	tr.MarkComplete(1)

	p := tr.Current()
	if p.CurrentStep != 0 || len(p.CompletedSteps) != 0 {
		t.Fatalf("operations without an interview mutated state: %+v", p)
	}
}

func TestResetInterview(t *testing.T) {
	tr := NewTracker()
	tr.SetInterview("iv-1")
	tr.GoToStep(4)
	tr.MarkComplete(2)

	tr.ResetInterview("iv-1")
	p := tr.Current()
	if p.CurrentStep != 0 || len(p.CompletedSteps) != 0 {
		t.Fatalf("reset left progress behind: %+v", p)
	}

	tr.ResetInterview("")
	_, byInterview := tr.State()
	if _, ok := byInterview[""]; ok {
		t.Fatal("reset with empty id must not create an entry")
	}
}

func TestDiscardProgress(t *testing.T) {
	tr := NewTracker()
	tr.SetInterview("iv-1")
	tr.GoToStep(4)

	tr.DiscardProgress("iv-1")
	if tr.CurrentInterviewID() != "" {
		t.Fatal("discard must clear the current pointer")
	}
	if got := tr.Current().CurrentStep; got != 0 {
		t.Fatalf("discarded progress still visible: step %d", got)
	}
}

func TestLoadRepairsState(t *testing.T) {
	tr := NewTracker()
	tr.Load("iv-gone", map[string]Progress{
		"iv-1": {CurrentStep: 42},
		"":     {CurrentStep: 1},
	})

	if tr.CurrentInterviewID() != "" {
		t.Fatal("unknown current id must be dropped")
	}
	tr.SetInterview("iv-1")
	p := tr.Current()
	if p.CurrentStep != MaxStep {
		t.Fatalf("step = %d, want clamped to %d", p.CurrentStep, MaxStep)
	}
	if p.CompletedSteps == nil || p.ValidationErrors == nil {
		t.Fatal("nil fields must be backfilled")
	}
}
