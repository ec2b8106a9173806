// Package wizard tracks per-interview navigation progress through the
// capture flow: current step, completed steps and validation errors. It is
// deliberately separate from interview content so wiping wizard state never
// touches captured data.
package wizard

import (
	"sort"
	"sync"
)

// MaxStep is the index of the last wizard step (core facts through summary).
const MaxStep = 9

// Progress is the navigation state of one interview.
type Progress struct {
	CurrentStep      int              `json:"currentStep"`
	CompletedSteps   []int            `json:"completedSteps"`
	ValidationErrors map[int][]string `json:"validationErrors"`
}

func newProgress() Progress {
	return Progress{
		CompletedSteps:   []int{},
		ValidationErrors: map[int][]string{},
	}
}

func (p Progress) clone() Progress {
	out := p
	out.CompletedSteps = make([]int, len(p.CompletedSteps))
	copy(out.CompletedSteps, p.CompletedSteps)
	out.ValidationErrors = make(map[int][]string, len(p.ValidationErrors))
	for step, errs := range p.ValidationErrors {
		cp := make([]string, len(errs))
		copy(cp, errs)
		out.ValidationErrors[step] = cp
	}
	return out
}

func clampStep(step int) int {
	if step < 0 {
		return 0
	}
	if step > MaxStep {
		return MaxStep
	}
	return step
}

// Tracker keeps wizard progress keyed by interview id. Operations with no
// current interview are silent no-ops.
type Tracker struct {
	mu          sync.RWMutex
	currentID   string
	byInterview map[string]Progress
}

func NewTracker() *Tracker {
	return &Tracker{byInterview: map[string]Progress{}}
}

// SetInterview makes interviewID the wizard's current interview, creating
// empty progress for it on first sight.
func (t *Tracker) SetInterview(interviewID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.currentID = interviewID
	if _, ok := t.byInterview[interviewID]; !ok {
		t.byInterview[interviewID] = newProgress()
	}
}

// Current returns a copy of the current interview's progress. With no
// current interview it returns empty progress.
func (t *Tracker) Current() Progress {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if p, ok := t.byInterview[t.currentID]; ok {
		return p.clone()
	}
	return newProgress()
}

// CurrentInterviewID returns the id the wizard is tracking, or "".
func (t *Tracker) CurrentInterviewID() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.currentID
}

func (t *Tracker) mutate(fn func(p *Progress)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.currentID == "" {
		return
	}
	p, ok := t.byInterview[t.currentID]
	if !ok {
		p = newProgress()
	}
	fn(&p)
	t.byInterview[t.currentID] = p
}

func (t *Tracker) NextStep() {
	t.mutate(func(p *Progress) {
		p.CurrentStep = clampStep(p.CurrentStep + 1)
	})
}

func (t *Tracker) PrevStep() {
	t.mutate(func(p *Progress) {
		p.CurrentStep = clampStep(p.CurrentStep - 1)
	})
}

func (t *Tracker) GoToStep(step int) {
	t.mutate(func(p *Progress) {
		p.CurrentStep = clampStep(step)
	})
}

// MarkComplete records step as completed, keeping the list sorted and
// duplicate-free.
func (t *Tracker) MarkComplete(step int) {
	step = clampStep(step)
	t.mutate(func(p *Progress) {
		for _, s := range p.CompletedSteps {
			if s == step {
				return
			}
		}
		p.CompletedSteps = append(p.CompletedSteps, step)
		sort.Ints(p.CompletedSteps)
	})
}

func (t *Tracker) SetValidationErrors(step int, errs []string) {
	t.mutate(func(p *Progress) {
		cp := make([]string, len(errs))
		copy(cp, errs)
		p.ValidationErrors[clampStep(step)] = cp
	})
}

func (t *Tracker) ClearValidationErrors(step int) {
	t.mutate(func(p *Progress) {
		delete(p.ValidationErrors, clampStep(step))
	})
}

// ResetInterview wipes progress for one interview back to step zero. An
// empty id is a no-op.
func (t *Tracker) ResetInterview(interviewID string) {
	if interviewID == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.byInterview[interviewID] = newProgress()
}

// DiscardProgress drops all progress kept for a deleted interview. It
// satisfies the store's WizardNotifier.
func (t *Tracker) DiscardProgress(interviewID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.byInterview, interviewID)
	if t.currentID == interviewID {
		t.currentID = ""
	}
}

// State exports the full tracker state for snapshot persistence.
func (t *Tracker) State() (currentID string, byInterview map[string]Progress) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]Progress, len(t.byInterview))
	for id, p := range t.byInterview {
		out[id] = p.clone()
	}
	return t.currentID, out
}

// Load replaces tracker state from a snapshot, clamping steps and dropping
// malformed entries rather than failing.
func (t *Tracker) Load(currentID string, byInterview map[string]Progress) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.byInterview = make(map[string]Progress, len(byInterview))
	for id, p := range byInterview {
		if id == "" {
			continue
		}
		p.CurrentStep = clampStep(p.CurrentStep)
		if p.CompletedSteps == nil {
			p.CompletedSteps = []int{}
		}
		if p.ValidationErrors == nil {
			p.ValidationErrors = map[int][]string{}
		}
		t.byInterview[id] = p.clone()
	}
	t.currentID = currentID
	if _, ok := t.byInterview[currentID]; !ok {
		t.currentID = ""
	}
}
