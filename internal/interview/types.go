package interview

import "time"

// SectionKey identifies one of the six fixed thematic phases of an interview.
type SectionKey string

const (
	SectionWarmup      SectionKey = "warmup"
	SectionJourney     SectionKey = "gruendungsreise"
	SectionPain        SectionKey = "schmerz_workarounds"
	SectionAI          SectionKey = "ki_automatisierung"
	SectionConceptTest SectionKey = "konzepttest_steve"
	SectionClosing     SectionKey = "abschluss"
)

// SectionKeys returns the six canonical section keys in interview order.
// Section-keyed maps must always carry exactly these keys.
func SectionKeys() []SectionKey {
	return []SectionKey{
		SectionWarmup,
		SectionJourney,
		SectionPain,
		SectionAI,
		SectionConceptTest,
		SectionClosing,
	}
}

// ValidSectionKey reports whether k is one of the six canonical keys.
func ValidSectionKey(k SectionKey) bool {
	for _, key := range SectionKeys() {
		if key == k {
			return true
		}
	}
	return false
}

type Status string

const (
	StatusPlanned    Status = "planned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusAborted    Status = "aborted"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusPlanned, StatusInProgress, StatusCompleted, StatusAborted:
		return true
	}
	return false
}

type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

// Segment distinguishes founders reflecting on a past founding from those
// currently founding.
type Segment string

const (
	SegmentRetrospective Segment = "retrospektiv"
	SegmentFounding      Segment = "aktuell_gruendend"
)

func ValidSegment(s Segment) bool {
	return s == SegmentRetrospective || s == SegmentFounding
}

type InterestLevel string

const (
	InterestStrong    InterestLevel = "stark"
	InterestPolite    InterestLevel = "hoeflich"
	InterestSkeptical InterestLevel = "skeptisch"
)

func ValidInterestLevel(l InterestLevel) bool {
	switch l {
	case InterestStrong, InterestPolite, InterestSkeptical:
		return true
	}
	return false
}

type AIAttitude string

const (
	AttitudeEnthusiastic AIAttitude = "enthusiastisch"
	AttitudeOpen         AIAttitude = "offen"
	AttitudeNeutral      AIAttitude = "neutral"
	AttitudeSkeptical    AIAttitude = "skeptisch"
	AttitudeDismissive   AIAttitude = "ablehnend"
)

func ValidAIAttitude(a AIAttitude) bool {
	switch a {
	case AttitudeEnthusiastic, AttitudeOpen, AttitudeNeutral, AttitudeSkeptical, AttitudeDismissive:
		return true
	}
	return false
}

type FollowUpPriority string

const (
	PriorityHigh   FollowUpPriority = "hoch"
	PriorityMedium FollowUpPriority = "mittel"
	PriorityLow    FollowUpPriority = "niedrig"
	PriorityNone   FollowUpPriority = "keine"
)

func ValidFollowUpPriority(p FollowUpPriority) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow, PriorityNone:
		return true
	}
	return false
}

// Question is one scripted or user-added interview question.
type Question struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Segment    string `json:"segment"` // "both" or a Segment value
	IsFollowUp bool   `json:"isFollowUp"`
	Category   string `json:"category,omitempty"`
}

// AdditionalFounder is a co-founder captured alongside the interviewee.
type AdditionalFounder struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Contact string `json:"contact"`
}

// Quote is a statement captured during an interview, attributed to a section.
type Quote struct {
	ID         string     `json:"id"`
	Text       string     `json:"text"`
	SectionKey SectionKey `json:"sectionKey"`
	IsVerbatim bool       `json:"isVerbatim"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// SectionNote holds the free-text notes and quotes of one section.
type SectionNote struct {
	ID         string     `json:"id"`
	SectionKey SectionKey `json:"sectionKey"`
	Content    string     `json:"content"`
	Quotes     []Quote    `json:"quotes"`
	Timestamp  time.Time  `json:"timestamp"`
}

// CoreFacts are the demographic and business facts of the interviewee.
type CoreFacts struct {
	IntervieweeName     string              `json:"intervieweeName"`
	Segment             Segment             `json:"segment"`
	Industry            string              `json:"industry"`
	FoundingDate        string              `json:"foundingDate"`
	TeamSize            string              `json:"teamSize"`
	Location            string              `json:"location"`
	ContactEmail        string              `json:"contactEmail"`
	ContactPhone        string              `json:"contactPhone"`
	ReferredBy          string              `json:"referredBy"`
	AdditionalFounders  []AdditionalFounder `json:"additionalFounders"`
	BusinessDescription string              `json:"businessDescription"`
	Notes               string              `json:"notes"`
}

// JTBDAnalysis captures the jobs-to-be-done motivation fields.
type JTBDAnalysis struct {
	Trigger     string   `json:"trigger"`
	PushFactors []string `json:"pushFactors"`
	PullFactors []string `json:"pullFactors"`
	Anxiety     []string `json:"anxiety"`
	Habit       []string `json:"habit"`
}

// PainPoint is a ranked, scored problem statement. Rank is kept dense 1..N
// in list order by the store.
type PainPoint struct {
	ID              string `json:"id"`
	Description     string `json:"description"`
	Intensity       int    `json:"intensity"` // 1..5
	Frequency       string `json:"frequency"`
	CurrentSolution string `json:"currentSolution"`
	CostOfProblem   string `json:"costOfProblem"`
	Rank            int    `json:"rank"`
}

// SteveReaction documents the interviewee's response to the bean:up concept
// pitch tested in the konzepttest_steve section.
type SteveReaction struct {
	FirstReaction           string        `json:"firstReaction"`
	InterestLevel           InterestLevel `json:"interestLevel"`
	MostInterestingFeature  string        `json:"mostInterestingFeature"`
	UseCase                 string        `json:"useCase"`
	WillingnessToPayMonthly string        `json:"willingnessToPayMonthly"`
	Concerns                string        `json:"concerns"`
	QuotesAboutSteve        []string      `json:"quotesAboutSteve"`
}

// OverallAssessment is the interviewer's post-interview scoring.
type OverallAssessment struct {
	RelevanceScore     int              `json:"relevanceScore"`     // 1..5
	PainIntensityScore int              `json:"painIntensityScore"` // 1..5
	SteveFitScore      int              `json:"steveFitScore"`      // 1..5
	FollowUpPriority   FollowUpPriority `json:"followUpPriority"`
	Notes              string           `json:"notes"`
}

// MaxKeyQuotes caps the curated summary.keyQuotes list.
const MaxKeyQuotes = 20

// PostInterviewSummary is the structured analysis of one interview.
// CoreFacts mirrors Config.CoreFacts and is kept in sync by the store.
type PostInterviewSummary struct {
	CoreFacts            CoreFacts         `json:"coreFacts"`
	JTBD                 JTBDAnalysis      `json:"jtbd"`
	PainPoints           []PainPoint       `json:"painPoints"`
	WorkaroundsAttempted []string          `json:"workaroundsAttempted"`
	AIAttitude           AIAttitude        `json:"aiAttitude"`
	AIToolsUsed          []string          `json:"aiToolsUsed"`
	AIBarriers           []string          `json:"aiBarriers"`
	SteveReaction        SteveReaction     `json:"steveReaction"`
	KeyQuotes            []Quote           `json:"keyQuotes"`
	OverallAssessment    OverallAssessment `json:"overallAssessment"`
	GeneratedAt          time.Time         `json:"generatedAt"`
	AIGenerated          bool              `json:"aiGenerated"`
}

// TimerState is the single timer cursor owned by one interview. Elapsed
// fields are only mutated at pause/resume/switch/reset transitions; reads
// derive current elapsed time from SectionStartedAt.
type TimerState struct {
	CurrentSectionKey SectionKey `json:"currentSectionKey,omitempty"`
	SectionStartedAt  *time.Time `json:"sectionStartedAt,omitempty"`
	SectionElapsedMs  int64      `json:"sectionElapsedMs"`
	TotalElapsedMs    int64      `json:"totalElapsedMs"`
	IsPaused          bool       `json:"isPaused"`
}

type ChecklistItem struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

// Config is the nested aggregate owned by exactly one Interview.
type Config struct {
	CoreFacts       CoreFacts                    `json:"coreFacts"`
	SectionNotes    map[SectionKey]SectionNote   `json:"sectionNotes"`
	AllQuotes       []Quote                      `json:"allQuotes"`
	Summary         PostInterviewSummary         `json:"summary"`
	Checklist       []ChecklistItem              `json:"checklist"`
	TimerState      TimerState                   `json:"timerState"`
	CustomQuestions map[SectionKey][]Question    `json:"customQuestions"`
}

// Interview is the root aggregate: one discovery conversation with a founder.
type Interview struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Status      Status     `json:"status"`
	Visibility  Visibility `json:"visibility"`
	ScheduledAt time.Time  `json:"scheduledAt"`
	ConductedAt time.Time  `json:"conductedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Config      Config     `json:"config"`
}

// SectionConfig describes one section of the interview guide: its label,
// target duration, scripted questions and interviewer don'ts.
type SectionConfig struct {
	Key             SectionKey `json:"key"`
	Label           string     `json:"label"`
	DurationMinutes int        `json:"durationMinutes"`
	Description     string     `json:"description"`
	Questions       []Question `json:"questions"`
	Donts           []string   `json:"donts"`
}
