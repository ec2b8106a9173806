package interview

import "time"

// Patch types carry partial updates into the store. Nil fields mean "leave
// unchanged"; non-nil slice fields replace the target list wholesale.

type CoreFactsPatch struct {
	IntervieweeName     *string  `json:"intervieweeName,omitempty"`
	Segment             *Segment `json:"segment,omitempty" validate:"omitempty,oneof=retrospektiv aktuell_gruendend"`
	Industry            *string  `json:"industry,omitempty"`
	FoundingDate        *string  `json:"foundingDate,omitempty"`
	TeamSize            *string  `json:"teamSize,omitempty"`
	Location            *string  `json:"location,omitempty"`
	ContactEmail        *string  `json:"contactEmail,omitempty" validate:"omitempty,email"`
	ContactPhone        *string  `json:"contactPhone,omitempty"`
	ReferredBy          *string  `json:"referredBy,omitempty"`
	BusinessDescription *string  `json:"businessDescription,omitempty"`
	Notes               *string  `json:"notes,omitempty"`
}

func (p CoreFactsPatch) apply(f *CoreFacts) {
	if p.IntervieweeName != nil {
		f.IntervieweeName = *p.IntervieweeName
	}
	if p.Segment != nil {
		f.Segment = *p.Segment
	}
	if p.Industry != nil {
		f.Industry = *p.Industry
	}
	if p.FoundingDate != nil {
		f.FoundingDate = *p.FoundingDate
	}
	if p.TeamSize != nil {
		f.TeamSize = *p.TeamSize
	}
	if p.Location != nil {
		f.Location = *p.Location
	}
	if p.ContactEmail != nil {
		f.ContactEmail = *p.ContactEmail
	}
	if p.ContactPhone != nil {
		f.ContactPhone = *p.ContactPhone
	}
	if p.ReferredBy != nil {
		f.ReferredBy = *p.ReferredBy
	}
	if p.BusinessDescription != nil {
		f.BusinessDescription = *p.BusinessDescription
	}
	if p.Notes != nil {
		f.Notes = *p.Notes
	}
}

type FounderPatch struct {
	Name    *string `json:"name,omitempty"`
	Role    *string `json:"role,omitempty"`
	Contact *string `json:"contact,omitempty"`
}

func (p FounderPatch) apply(f *AdditionalFounder) {
	if p.Name != nil {
		f.Name = *p.Name
	}
	if p.Role != nil {
		f.Role = *p.Role
	}
	if p.Contact != nil {
		f.Contact = *p.Contact
	}
}

type JTBDPatch struct {
	Trigger     *string  `json:"trigger,omitempty"`
	PushFactors []string `json:"pushFactors,omitempty"`
	PullFactors []string `json:"pullFactors,omitempty"`
	Anxiety     []string `json:"anxiety,omitempty"`
	Habit       []string `json:"habit,omitempty"`
}

func (p JTBDPatch) apply(j *JTBDAnalysis) {
	if p.Trigger != nil {
		j.Trigger = *p.Trigger
	}
	if p.PushFactors != nil {
		j.PushFactors = cloneStrings(p.PushFactors)
	}
	if p.PullFactors != nil {
		j.PullFactors = cloneStrings(p.PullFactors)
	}
	if p.Anxiety != nil {
		j.Anxiety = cloneStrings(p.Anxiety)
	}
	if p.Habit != nil {
		j.Habit = cloneStrings(p.Habit)
	}
}

type PainPointPatch struct {
	Description     *string `json:"description,omitempty"`
	Intensity       *int    `json:"intensity,omitempty" validate:"omitempty,min=1,max=5"`
	Frequency       *string `json:"frequency,omitempty"`
	CurrentSolution *string `json:"currentSolution,omitempty"`
	CostOfProblem   *string `json:"costOfProblem,omitempty"`
}

func (p PainPointPatch) apply(pp *PainPoint) {
	if p.Description != nil {
		pp.Description = *p.Description
	}
	if p.Intensity != nil {
		pp.Intensity = *p.Intensity
	}
	if p.Frequency != nil {
		pp.Frequency = *p.Frequency
	}
	if p.CurrentSolution != nil {
		pp.CurrentSolution = *p.CurrentSolution
	}
	if p.CostOfProblem != nil {
		pp.CostOfProblem = *p.CostOfProblem
	}
}

type SteveReactionPatch struct {
	FirstReaction           *string        `json:"firstReaction,omitempty"`
	InterestLevel           *InterestLevel `json:"interestLevel,omitempty" validate:"omitempty,oneof=stark hoeflich skeptisch"`
	MostInterestingFeature  *string        `json:"mostInterestingFeature,omitempty"`
	UseCase                 *string        `json:"useCase,omitempty"`
	WillingnessToPayMonthly *string        `json:"willingnessToPayMonthly,omitempty"`
	Concerns                *string        `json:"concerns,omitempty"`
	QuotesAboutSteve        []string       `json:"quotesAboutSteve,omitempty"`
}

func (p SteveReactionPatch) apply(r *SteveReaction) {
	if p.FirstReaction != nil {
		r.FirstReaction = *p.FirstReaction
	}
	if p.InterestLevel != nil {
		r.InterestLevel = *p.InterestLevel
	}
	if p.MostInterestingFeature != nil {
		r.MostInterestingFeature = *p.MostInterestingFeature
	}
	if p.UseCase != nil {
		r.UseCase = *p.UseCase
	}
	if p.WillingnessToPayMonthly != nil {
		r.WillingnessToPayMonthly = *p.WillingnessToPayMonthly
	}
	if p.Concerns != nil {
		r.Concerns = *p.Concerns
	}
	if p.QuotesAboutSteve != nil {
		r.QuotesAboutSteve = cloneStrings(p.QuotesAboutSteve)
	}
}

type OverallAssessmentPatch struct {
	RelevanceScore     *int              `json:"relevanceScore,omitempty" validate:"omitempty,min=1,max=5"`
	PainIntensityScore *int              `json:"painIntensityScore,omitempty" validate:"omitempty,min=1,max=5"`
	SteveFitScore      *int              `json:"steveFitScore,omitempty" validate:"omitempty,min=1,max=5"`
	FollowUpPriority   *FollowUpPriority `json:"followUpPriority,omitempty" validate:"omitempty,oneof=hoch mittel niedrig keine"`
	Notes              *string           `json:"notes,omitempty"`
}

func (p OverallAssessmentPatch) apply(a *OverallAssessment) {
	if p.RelevanceScore != nil {
		a.RelevanceScore = *p.RelevanceScore
	}
	if p.PainIntensityScore != nil {
		a.PainIntensityScore = *p.PainIntensityScore
	}
	if p.SteveFitScore != nil {
		a.SteveFitScore = *p.SteveFitScore
	}
	if p.FollowUpPriority != nil {
		a.FollowUpPriority = *p.FollowUpPriority
	}
	if p.Notes != nil {
		a.Notes = *p.Notes
	}
}

// SummaryPatch covers the summary's own scalar and list fields. The nested
// aggregates (JTBD, SteveReaction, OverallAssessment) are merged key-by-key
// through their own patches; pain points have dedicated operations.
type SummaryPatch struct {
	JTBD                 *JTBDPatch              `json:"jtbd,omitempty"`
	PainPoints           []PainPoint             `json:"painPoints,omitempty"`
	WorkaroundsAttempted []string                `json:"workaroundsAttempted,omitempty"`
	AIAttitude           *AIAttitude             `json:"aiAttitude,omitempty" validate:"omitempty,oneof=enthusiastisch offen neutral skeptisch ablehnend"`
	AIToolsUsed          []string                `json:"aiToolsUsed,omitempty"`
	AIBarriers           []string                `json:"aiBarriers,omitempty"`
	SteveReaction        *SteveReactionPatch     `json:"steveReaction,omitempty"`
	KeyQuotes            []Quote                 `json:"keyQuotes,omitempty"`
	OverallAssessment    *OverallAssessmentPatch `json:"overallAssessment,omitempty"`
	AIGenerated          *bool                   `json:"aiGenerated,omitempty"`
}

func (p SummaryPatch) apply(s *PostInterviewSummary) {
	if p.JTBD != nil {
		p.JTBD.apply(&s.JTBD)
	}
	if p.PainPoints != nil {
		s.PainPoints = make([]PainPoint, len(p.PainPoints))
		copy(s.PainPoints, p.PainPoints)
	}
	if p.WorkaroundsAttempted != nil {
		s.WorkaroundsAttempted = cloneStrings(p.WorkaroundsAttempted)
	}
	if p.AIAttitude != nil {
		s.AIAttitude = *p.AIAttitude
	}
	if p.AIToolsUsed != nil {
		s.AIToolsUsed = cloneStrings(p.AIToolsUsed)
	}
	if p.AIBarriers != nil {
		s.AIBarriers = cloneStrings(p.AIBarriers)
	}
	if p.SteveReaction != nil {
		p.SteveReaction.apply(&s.SteveReaction)
	}
	if p.KeyQuotes != nil {
		s.KeyQuotes = cloneQuotes(p.KeyQuotes)
		if len(s.KeyQuotes) > MaxKeyQuotes {
			s.KeyQuotes = s.KeyQuotes[:MaxKeyQuotes]
		}
	}
	if p.OverallAssessment != nil {
		p.OverallAssessment.apply(&s.OverallAssessment)
	}
	if p.AIGenerated != nil {
		s.AIGenerated = *p.AIGenerated
	}
}

type TimerStatePatch struct {
	CurrentSectionKey *SectionKey `json:"currentSectionKey,omitempty"`
	SectionStartedAt  *time.Time  `json:"sectionStartedAt,omitempty"`
	// ClearSectionStartedAt distinguishes "set to null" from "leave as is",
	// which a nil pointer alone cannot express.
	ClearSectionStartedAt bool   `json:"clearSectionStartedAt,omitempty"`
	SectionElapsedMs      *int64 `json:"sectionElapsedMs,omitempty"`
	TotalElapsedMs        *int64 `json:"totalElapsedMs,omitempty"`
	IsPaused              *bool  `json:"isPaused,omitempty"`
}

func (p TimerStatePatch) apply(t *TimerState) {
	if p.CurrentSectionKey != nil {
		t.CurrentSectionKey = *p.CurrentSectionKey
	}
	if p.ClearSectionStartedAt {
		t.SectionStartedAt = nil
	} else if p.SectionStartedAt != nil {
		at := *p.SectionStartedAt
		t.SectionStartedAt = &at
	}
	if p.SectionElapsedMs != nil {
		t.SectionElapsedMs = *p.SectionElapsedMs
	}
	if p.TotalElapsedMs != nil {
		t.TotalElapsedMs = *p.TotalElapsedMs
	}
	if p.IsPaused != nil {
		t.IsPaused = *p.IsPaused
	}
}
