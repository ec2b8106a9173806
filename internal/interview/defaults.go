package interview

import "time"

// DefaultInterviewName is used when a create request carries no name.
const DefaultInterviewName = "Unbenanntes Interview"

// FirstInterviewName names the interview synthesized on first run and after
// the last interview is deleted.
const FirstInterviewName = "Erstes Discovery Interview"

func defaultCoreFacts() CoreFacts {
	return CoreFacts{
		Segment:            SegmentRetrospective,
		AdditionalFounders: []AdditionalFounder{},
	}
}

func defaultSectionNote(key SectionKey, now time.Time) SectionNote {
	return SectionNote{
		ID:         NewID("section-" + string(key)),
		SectionKey: key,
		Quotes:     []Quote{},
		Timestamp:  now,
	}
}

func defaultSectionNotes(now time.Time) map[SectionKey]SectionNote {
	notes := make(map[SectionKey]SectionNote, len(SectionKeys()))
	for _, key := range SectionKeys() {
		notes[key] = defaultSectionNote(key, now)
	}
	return notes
}

func defaultJTBD() JTBDAnalysis {
	return JTBDAnalysis{
		PushFactors: []string{},
		PullFactors: []string{},
		Anxiety:     []string{},
		Habit:       []string{},
	}
}

func defaultSteveReaction() SteveReaction {
	return SteveReaction{
		InterestLevel:    InterestPolite,
		QuotesAboutSteve: []string{},
	}
}

func defaultOverallAssessment() OverallAssessment {
	return OverallAssessment{
		RelevanceScore:     3,
		PainIntensityScore: 3,
		SteveFitScore:      3,
		FollowUpPriority:   PriorityMedium,
	}
}

func defaultSummary(facts CoreFacts, now time.Time) PostInterviewSummary {
	return PostInterviewSummary{
		CoreFacts:            facts.Clone(),
		JTBD:                 defaultJTBD(),
		PainPoints:           []PainPoint{},
		WorkaroundsAttempted: []string{},
		AIAttitude:           AttitudeNeutral,
		AIToolsUsed:          []string{},
		AIBarriers:           []string{},
		SteveReaction:        defaultSteveReaction(),
		KeyQuotes:            []Quote{},
		OverallAssessment:    defaultOverallAssessment(),
		GeneratedAt:          now,
	}
}

func defaultChecklist() []ChecklistItem {
	items := make([]ChecklistItem, 0, len(DefaultChecklistLabels))
	for _, label := range DefaultChecklistLabels {
		items = append(items, ChecklistItem{ID: NewID("checklist"), Label: label})
	}
	return items
}

func defaultTimerState() TimerState {
	return TimerState{IsPaused: true}
}

func defaultCustomQuestions() map[SectionKey][]Question {
	qs := make(map[SectionKey][]Question, len(SectionKeys()))
	for _, key := range SectionKeys() {
		qs[key] = []Question{}
	}
	return qs
}

// DefaultConfig builds a fully populated empty interview config. All six
// section keys are present in the section-keyed maps.
func DefaultConfig(now time.Time) Config {
	facts := defaultCoreFacts()
	return Config{
		CoreFacts:       facts,
		SectionNotes:    defaultSectionNotes(now),
		AllQuotes:       []Quote{},
		Summary:         defaultSummary(facts, now),
		Checklist:       defaultChecklist(),
		TimerState:      defaultTimerState(),
		CustomQuestions: defaultCustomQuestions(),
	}
}

// NewInterview builds a planned interview from defaults. A blank name falls
// back to DefaultInterviewName.
func NewInterview(name string, now time.Time) *Interview {
	if name == "" {
		name = DefaultInterviewName
	}
	return &Interview{
		ID:          NewID("interview"),
		Name:        name,
		Status:      StatusPlanned,
		Visibility:  VisibilityPrivate,
		ScheduledAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
		Config:      DefaultConfig(now),
	}
}
