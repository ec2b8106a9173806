package interview

// Clone helpers keep store reads isolated from store state: every value that
// leaves the store is a deep copy, so callers can never mutate shared data.

func cloneStrings(src []string) []string {
	out := make([]string, len(src))
	copy(out, src)
	return out
}

func cloneQuotes(src []Quote) []Quote {
	out := make([]Quote, len(src))
	copy(out, src)
	return out
}

func (f CoreFacts) Clone() CoreFacts {
	out := f
	out.AdditionalFounders = make([]AdditionalFounder, len(f.AdditionalFounders))
	copy(out.AdditionalFounders, f.AdditionalFounders)
	return out
}

func (n SectionNote) Clone() SectionNote {
	out := n
	out.Quotes = cloneQuotes(n.Quotes)
	return out
}

func (j JTBDAnalysis) Clone() JTBDAnalysis {
	out := j
	out.PushFactors = cloneStrings(j.PushFactors)
	out.PullFactors = cloneStrings(j.PullFactors)
	out.Anxiety = cloneStrings(j.Anxiety)
	out.Habit = cloneStrings(j.Habit)
	return out
}

func (r SteveReaction) Clone() SteveReaction {
	out := r
	out.QuotesAboutSteve = cloneStrings(r.QuotesAboutSteve)
	return out
}

func (s PostInterviewSummary) Clone() PostInterviewSummary {
	out := s
	out.CoreFacts = s.CoreFacts.Clone()
	out.JTBD = s.JTBD.Clone()
	out.PainPoints = make([]PainPoint, len(s.PainPoints))
	copy(out.PainPoints, s.PainPoints)
	out.WorkaroundsAttempted = cloneStrings(s.WorkaroundsAttempted)
	out.AIToolsUsed = cloneStrings(s.AIToolsUsed)
	out.AIBarriers = cloneStrings(s.AIBarriers)
	out.SteveReaction = s.SteveReaction.Clone()
	out.KeyQuotes = cloneQuotes(s.KeyQuotes)
	return out
}

func (t TimerState) Clone() TimerState {
	out := t
	if t.SectionStartedAt != nil {
		at := *t.SectionStartedAt
		out.SectionStartedAt = &at
	}
	return out
}

func (c Config) Clone() Config {
	out := c
	out.CoreFacts = c.CoreFacts.Clone()
	out.SectionNotes = make(map[SectionKey]SectionNote, len(c.SectionNotes))
	for k, n := range c.SectionNotes {
		out.SectionNotes[k] = n.Clone()
	}
	out.AllQuotes = cloneQuotes(c.AllQuotes)
	out.Summary = c.Summary.Clone()
	out.Checklist = make([]ChecklistItem, len(c.Checklist))
	copy(out.Checklist, c.Checklist)
	out.TimerState = c.TimerState.Clone()
	out.CustomQuestions = make(map[SectionKey][]Question, len(c.CustomQuestions))
	for k, qs := range c.CustomQuestions {
		cp := make([]Question, len(qs))
		copy(cp, qs)
		out.CustomQuestions[k] = cp
	}
	return out
}

func (iv *Interview) Clone() *Interview {
	if iv == nil {
		return nil
	}
	out := *iv
	out.Config = iv.Config.Clone()
	return &out
}
