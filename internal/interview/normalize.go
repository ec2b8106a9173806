package interview

import (
	"encoding/json"
	"time"
)

// The normalizer turns arbitrarily shaped persisted or remote data into a
// fully valid Interview. Scalars are taken only when present with the right
// type, nested objects are repaired field-by-field, lists default to empty,
// and list elements missing an id or timestamp are re-stamped. The six
// section-keyed maps are rebuilt over the canonical key set: missing keys
// get defaults, extra keys are dropped.
//
// It runs at every ingestion point: snapshot rehydration, remote merge,
// import and duplication.

// DecodeInterview decodes raw JSON into a normalized Interview. Malformed
// JSON yields a fresh default interview rather than an error; shape problems
// inside valid JSON are repaired, never rejected.
func DecodeInterview(data []byte, now time.Time) *Interview {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return NewInterview("", now)
	}
	return InterviewFromMap(raw, now)
}

// DecodeConfig decodes raw JSON into a normalized Config. Malformed JSON
// yields a default config.
func DecodeConfig(data []byte, now time.Time) Config {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return DefaultConfig(now)
	}
	return configFromMap(raw, now)
}

// InterviewFromMap builds a normalized Interview from a decoded JSON object.
func InterviewFromMap(raw map[string]any, now time.Time) *Interview {
	iv := NewInterview("", now)
	if raw == nil {
		return iv
	}
	if id := strVal(raw, "id"); id != "" {
		iv.ID = id
	}
	if name := strVal(raw, "name"); name != "" {
		iv.Name = name
	}
	if st := Status(strVal(raw, "status")); ValidStatus(st) {
		iv.Status = st
	}
	if v := Visibility(strVal(raw, "visibility")); v == VisibilityPrivate || v == VisibilityPublic {
		iv.Visibility = v
	}
	if t, ok := timeVal(raw, "scheduledAt"); ok {
		iv.ScheduledAt = t
	}
	if t, ok := timeVal(raw, "conductedAt"); ok {
		iv.ConductedAt = t
	}
	if t, ok := timeVal(raw, "createdAt"); ok {
		iv.CreatedAt = t
	}
	if t, ok := timeVal(raw, "updatedAt"); ok {
		iv.UpdatedAt = t
	}
	iv.Config = configFromMap(mapVal(raw, "config"), now)
	return iv
}

func configFromMap(raw map[string]any, now time.Time) Config {
	cfg := DefaultConfig(now)
	if raw == nil {
		return cfg
	}

	cfg.CoreFacts = coreFactsFromMap(mapVal(raw, "coreFacts"))

	notes := mapVal(raw, "sectionNotes")
	for _, key := range SectionKeys() {
		nm := mapVal(notes, string(key))
		if nm == nil {
			continue
		}
		note := cfg.SectionNotes[key]
		if id := strVal(nm, "id"); id != "" {
			note.ID = id
		}
		note.Content = strVal(nm, "content")
		note.Quotes = quotesFromList(listVal(nm, "quotes"), key, now)
		if t, ok := timeVal(nm, "timestamp"); ok {
			note.Timestamp = t
		}
		cfg.SectionNotes[key] = note
	}

	cfg.AllQuotes = quotesFromList(listVal(raw, "allQuotes"), "", now)
	cfg.Summary = summaryFromMap(mapVal(raw, "summary"), cfg.CoreFacts, now)
	cfg.Checklist = checklistFromList(listVal(raw, "checklist"))
	cfg.TimerState = timerStateFromMap(mapVal(raw, "timerState"))

	questions := mapVal(raw, "customQuestions")
	for _, key := range SectionKeys() {
		cfg.CustomQuestions[key] = questionsFromList(listVal(questions, string(key)))
	}

	return cfg
}

func coreFactsFromMap(raw map[string]any) CoreFacts {
	facts := defaultCoreFacts()
	if raw == nil {
		return facts
	}
	facts.IntervieweeName = strVal(raw, "intervieweeName")
	if seg := Segment(strVal(raw, "segment")); ValidSegment(seg) {
		facts.Segment = seg
	}
	facts.Industry = strVal(raw, "industry")
	facts.FoundingDate = strVal(raw, "foundingDate")
	facts.TeamSize = strVal(raw, "teamSize")
	facts.Location = strVal(raw, "location")
	facts.ContactEmail = strVal(raw, "contactEmail")
	facts.ContactPhone = strVal(raw, "contactPhone")
	facts.ReferredBy = strVal(raw, "referredBy")
	facts.BusinessDescription = strVal(raw, "businessDescription")
	facts.Notes = strVal(raw, "notes")
	for _, item := range listVal(raw, "additionalFounders") {
		fm, ok := item.(map[string]any)
		if !ok {
			continue
		}
		founder := AdditionalFounder{
			ID:      strVal(fm, "id"),
			Name:    strVal(fm, "name"),
			Role:    strVal(fm, "role"),
			Contact: strVal(fm, "contact"),
		}
		if founder.ID == "" {
			founder.ID = NewID("founder")
		}
		facts.AdditionalFounders = append(facts.AdditionalFounders, founder)
	}
	return facts
}

func summaryFromMap(raw map[string]any, facts CoreFacts, now time.Time) PostInterviewSummary {
	sum := defaultSummary(facts, now)
	if raw == nil {
		return sum
	}

	if jm := mapVal(raw, "jtbd"); jm != nil {
		sum.JTBD.Trigger = strVal(jm, "trigger")
		sum.JTBD.PushFactors = stringsFromList(listVal(jm, "pushFactors"))
		sum.JTBD.PullFactors = stringsFromList(listVal(jm, "pullFactors"))
		sum.JTBD.Anxiety = stringsFromList(listVal(jm, "anxiety"))
		sum.JTBD.Habit = stringsFromList(listVal(jm, "habit"))
	}

	for i, item := range listVal(raw, "painPoints") {
		pm, ok := item.(map[string]any)
		if !ok {
			continue
		}
		pp := PainPoint{
			ID:              strVal(pm, "id"),
			Description:     strVal(pm, "description"),
			Intensity:       intVal(pm, "intensity", 3),
			Frequency:       strVal(pm, "frequency"),
			CurrentSolution: strVal(pm, "currentSolution"),
			CostOfProblem:   strVal(pm, "costOfProblem"),
			Rank:            intVal(pm, "rank", i+1),
		}
		if pp.ID == "" {
			pp.ID = NewID("pain")
		}
		sum.PainPoints = append(sum.PainPoints, pp)
	}

	sum.WorkaroundsAttempted = stringsFromList(listVal(raw, "workaroundsAttempted"))
	if att := AIAttitude(strVal(raw, "aiAttitude")); ValidAIAttitude(att) {
		sum.AIAttitude = att
	}
	sum.AIToolsUsed = stringsFromList(listVal(raw, "aiToolsUsed"))
	sum.AIBarriers = stringsFromList(listVal(raw, "aiBarriers"))

	if rm := mapVal(raw, "steveReaction"); rm != nil {
		sum.SteveReaction.FirstReaction = strVal(rm, "firstReaction")
		if lvl := InterestLevel(strVal(rm, "interestLevel")); ValidInterestLevel(lvl) {
			sum.SteveReaction.InterestLevel = lvl
		}
		sum.SteveReaction.MostInterestingFeature = strVal(rm, "mostInterestingFeature")
		sum.SteveReaction.UseCase = strVal(rm, "useCase")
		sum.SteveReaction.WillingnessToPayMonthly = strVal(rm, "willingnessToPayMonthly")
		sum.SteveReaction.Concerns = strVal(rm, "concerns")
		sum.SteveReaction.QuotesAboutSteve = stringsFromList(listVal(rm, "quotesAboutSteve"))
	}

	sum.KeyQuotes = quotesFromList(listVal(raw, "keyQuotes"), "", now)
	if len(sum.KeyQuotes) > MaxKeyQuotes {
		sum.KeyQuotes = sum.KeyQuotes[:MaxKeyQuotes]
	}

	if am := mapVal(raw, "overallAssessment"); am != nil {
		sum.OverallAssessment.RelevanceScore = intVal(am, "relevanceScore", 3)
		sum.OverallAssessment.PainIntensityScore = intVal(am, "painIntensityScore", 3)
		sum.OverallAssessment.SteveFitScore = intVal(am, "steveFitScore", 3)
		if p := FollowUpPriority(strVal(am, "followUpPriority")); ValidFollowUpPriority(p) {
			sum.OverallAssessment.FollowUpPriority = p
		}
		sum.OverallAssessment.Notes = strVal(am, "notes")
	}

	if t, ok := timeVal(raw, "generatedAt"); ok {
		sum.GeneratedAt = t
	}
	sum.AIGenerated = boolVal(raw, "aiGenerated")
	return sum
}

func checklistFromList(items []any) []ChecklistItem {
	if items == nil {
		return defaultChecklist()
	}
	out := make([]ChecklistItem, 0, len(items))
	for _, item := range items {
		cm, ok := item.(map[string]any)
		if !ok {
			continue
		}
		ci := ChecklistItem{
			ID:      strVal(cm, "id"),
			Label:   strVal(cm, "label"),
			Checked: boolVal(cm, "checked"),
		}
		if ci.Label == "" {
			continue
		}
		if ci.ID == "" {
			ci.ID = NewID("checklist")
		}
		out = append(out, ci)
	}
	return out
}

func timerStateFromMap(raw map[string]any) TimerState {
	ts := defaultTimerState()
	if raw == nil {
		return ts
	}
	if key := SectionKey(strVal(raw, "currentSectionKey")); ValidSectionKey(key) {
		ts.CurrentSectionKey = key
	}
	if t, ok := timeVal(raw, "sectionStartedAt"); ok {
		ts.SectionStartedAt = &t
	}
	ts.SectionElapsedMs = int64Val(raw, "sectionElapsedMs")
	ts.TotalElapsedMs = int64Val(raw, "totalElapsedMs")
	if ts.SectionElapsedMs < 0 {
		ts.SectionElapsedMs = 0
	}
	if ts.TotalElapsedMs < 0 {
		ts.TotalElapsedMs = 0
	}
	if v, ok := raw["isPaused"].(bool); ok {
		ts.IsPaused = v
	}
	return ts
}

func questionsFromList(items []any) []Question {
	out := []Question{}
	for _, item := range items {
		qm, ok := item.(map[string]any)
		if !ok {
			continue
		}
		q := Question{
			ID:         strVal(qm, "id"),
			Text:       strVal(qm, "text"),
			Segment:    strVal(qm, "segment"),
			IsFollowUp: boolVal(qm, "isFollowUp"),
			Category:   strVal(qm, "category"),
		}
		if q.Text == "" {
			continue
		}
		if q.ID == "" {
			q.ID = NewID("question")
		}
		if q.Segment == "" {
			q.Segment = "both"
		}
		out = append(out, q)
	}
	return out
}

func quotesFromList(items []any, fallbackKey SectionKey, now time.Time) []Quote {
	out := []Quote{}
	for _, item := range items {
		qm, ok := item.(map[string]any)
		if !ok {
			continue
		}
		q := Quote{
			ID:         strVal(qm, "id"),
			Text:       strVal(qm, "text"),
			IsVerbatim: boolVal(qm, "isVerbatim"),
		}
		if key := SectionKey(strVal(qm, "sectionKey")); ValidSectionKey(key) {
			q.SectionKey = key
		} else {
			q.SectionKey = fallbackKey
		}
		if q.ID == "" {
			q.ID = NewID("quote")
		}
		if t, ok := timeVal(qm, "createdAt"); ok {
			q.CreatedAt = t
		} else {
			q.CreatedAt = now
		}
		out = append(out, q)
	}
	return out
}

// NormalizeInterview repairs an already typed interview: blank ids and zero
// timestamps are re-stamped, invalid enums fall back to defaults and the
// config is passed through NormalizeConfig.
func NormalizeInterview(iv *Interview, now time.Time) *Interview {
	out := iv.Clone()
	if out.ID == "" {
		out.ID = NewID("interview")
	}
	if out.Name == "" {
		out.Name = DefaultInterviewName
	}
	if !ValidStatus(out.Status) {
		out.Status = StatusPlanned
	}
	if out.Visibility != VisibilityPrivate && out.Visibility != VisibilityPublic {
		out.Visibility = VisibilityPrivate
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = now
	}
	if out.UpdatedAt.IsZero() {
		out.UpdatedAt = out.CreatedAt
	}
	if out.ScheduledAt.IsZero() {
		out.ScheduledAt = out.CreatedAt
	}
	out.Config = NormalizeConfig(out.Config, now)
	return out
}

// NormalizeConfig repairs a typed config in place of the raw-map path: nil
// lists become empty, the section-keyed maps are rebuilt over the canonical
// six keys, list elements missing ids or timestamps are re-stamped and enum
// fields fall back to defaults.
func NormalizeConfig(cfg Config, now time.Time) Config {
	out := cfg.Clone()

	if !ValidSegment(out.CoreFacts.Segment) {
		out.CoreFacts.Segment = SegmentRetrospective
	}
	if out.CoreFacts.AdditionalFounders == nil {
		out.CoreFacts.AdditionalFounders = []AdditionalFounder{}
	}
	for i := range out.CoreFacts.AdditionalFounders {
		if out.CoreFacts.AdditionalFounders[i].ID == "" {
			out.CoreFacts.AdditionalFounders[i].ID = NewID("founder")
		}
	}

	notes := make(map[SectionKey]SectionNote, len(SectionKeys()))
	for _, key := range SectionKeys() {
		note, ok := out.SectionNotes[key]
		if !ok {
			note = defaultSectionNote(key, now)
		}
		note.SectionKey = key
		if note.ID == "" {
			note.ID = NewID("section-" + string(key))
		}
		if note.Timestamp.IsZero() {
			note.Timestamp = now
		}
		note.Quotes = normalizeQuotes(note.Quotes, key, now)
		notes[key] = note
	}
	out.SectionNotes = notes

	out.AllQuotes = normalizeQuotes(out.AllQuotes, "", now)
	out.Summary = normalizeSummary(out.Summary, out.CoreFacts, now)
	if out.Checklist == nil {
		out.Checklist = defaultChecklist()
	}
	for i := range out.Checklist {
		if out.Checklist[i].ID == "" {
			out.Checklist[i].ID = NewID("checklist")
		}
	}
	out.TimerState = normalizeTimerState(out.TimerState)

	questions := make(map[SectionKey][]Question, len(SectionKeys()))
	for _, key := range SectionKeys() {
		qs := out.CustomQuestions[key]
		if qs == nil {
			qs = []Question{}
		}
		for i := range qs {
			if qs[i].ID == "" {
				qs[i].ID = NewID("question")
			}
			if qs[i].Segment == "" {
				qs[i].Segment = "both"
			}
		}
		questions[key] = qs
	}
	out.CustomQuestions = questions

	return out
}

func normalizeSummary(sum PostInterviewSummary, facts CoreFacts, now time.Time) PostInterviewSummary {
	if sum.CoreFacts.AdditionalFounders == nil {
		sum.CoreFacts = facts.Clone()
	}
	if !ValidSegment(sum.CoreFacts.Segment) {
		sum.CoreFacts.Segment = SegmentRetrospective
	}
	if sum.JTBD.PushFactors == nil {
		sum.JTBD.PushFactors = []string{}
	}
	if sum.JTBD.PullFactors == nil {
		sum.JTBD.PullFactors = []string{}
	}
	if sum.JTBD.Anxiety == nil {
		sum.JTBD.Anxiety = []string{}
	}
	if sum.JTBD.Habit == nil {
		sum.JTBD.Habit = []string{}
	}
	if sum.PainPoints == nil {
		sum.PainPoints = []PainPoint{}
	}
	for i := range sum.PainPoints {
		if sum.PainPoints[i].ID == "" {
			sum.PainPoints[i].ID = NewID("pain")
		}
		if sum.PainPoints[i].Rank == 0 {
			sum.PainPoints[i].Rank = i + 1
		}
	}
	if sum.WorkaroundsAttempted == nil {
		sum.WorkaroundsAttempted = []string{}
	}
	if !ValidAIAttitude(sum.AIAttitude) {
		sum.AIAttitude = AttitudeNeutral
	}
	if sum.AIToolsUsed == nil {
		sum.AIToolsUsed = []string{}
	}
	if sum.AIBarriers == nil {
		sum.AIBarriers = []string{}
	}
	if !ValidInterestLevel(sum.SteveReaction.InterestLevel) {
		sum.SteveReaction.InterestLevel = InterestPolite
	}
	if sum.SteveReaction.QuotesAboutSteve == nil {
		sum.SteveReaction.QuotesAboutSteve = []string{}
	}
	sum.KeyQuotes = normalizeQuotes(sum.KeyQuotes, "", now)
	if len(sum.KeyQuotes) > MaxKeyQuotes {
		sum.KeyQuotes = sum.KeyQuotes[:MaxKeyQuotes]
	}
	if !ValidFollowUpPriority(sum.OverallAssessment.FollowUpPriority) {
		sum.OverallAssessment.FollowUpPriority = PriorityMedium
	}
	if sum.GeneratedAt.IsZero() {
		sum.GeneratedAt = now
	}
	return sum
}

func normalizeQuotes(quotes []Quote, fallbackKey SectionKey, now time.Time) []Quote {
	if quotes == nil {
		return []Quote{}
	}
	for i := range quotes {
		if quotes[i].ID == "" {
			quotes[i].ID = NewID("quote")
		}
		if !ValidSectionKey(quotes[i].SectionKey) {
			quotes[i].SectionKey = fallbackKey
		}
		if quotes[i].CreatedAt.IsZero() {
			quotes[i].CreatedAt = now
		}
	}
	return quotes
}

func normalizeTimerState(ts TimerState) TimerState {
	if ts.CurrentSectionKey != "" && !ValidSectionKey(ts.CurrentSectionKey) {
		ts.CurrentSectionKey = ""
	}
	if ts.SectionElapsedMs < 0 {
		ts.SectionElapsedMs = 0
	}
	if ts.TotalElapsedMs < 0 {
		ts.TotalElapsedMs = 0
	}
	return ts
}

// JSON helpers for the tolerant raw decoding path. Wrong-typed values read
// as absent.

func strVal(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

func stringsFromList(items []any) []string {
	out := []string{}
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func boolVal(m map[string]any, key string) bool {
	if m == nil {
		return false
	}
	b, _ := m[key].(bool)
	return b
}

func intVal(m map[string]any, key string, fallback int) int {
	if m == nil {
		return fallback
	}
	if f, ok := m[key].(float64); ok {
		return int(f)
	}
	return fallback
}

func int64Val(m map[string]any, key string) int64 {
	if m == nil {
		return 0
	}
	if f, ok := m[key].(float64); ok {
		return int64(f)
	}
	return 0
}

func mapVal(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	v, _ := m[key].(map[string]any)
	return v
}

func listVal(m map[string]any, key string) []any {
	if m == nil {
		return nil
	}
	v, _ := m[key].([]any)
	return v
}

func timeVal(m map[string]any, key string) (time.Time, bool) {
	if m == nil {
		return time.Time{}, false
	}
	s, ok := m[key].(string)
	if !ok || s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil || t.IsZero() {
		return time.Time{}, false
	}
	return t, true
}
