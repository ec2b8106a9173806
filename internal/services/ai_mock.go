package services

import (
	"strings"
	"time"

	"github.com/beanup/interview-guide/internal/interview"
)

// MockAIService produces deterministic, canned analysis output. It stands in
// for a real model endpoint so the suggestion and summary flows can be
// exercised offline; keyword heuristics stand in for inference.
type MockAIService struct {
	now   func() time.Time
	idGen func(prefix string) string
}

func NewMockAIService() *MockAIService {
	return &MockAIService{
		now:   func() time.Time { return time.Now().UTC() },
		idGen: interview.NewID,
	}
}

func toSentences(input string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(input, func(r rune) bool {
		return r == '\n' || r == '.'
	}) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func pick(values []string, index int) string {
	return values[index%len(values)]
}

func inferAIAttitude(text string) interview.AIAttitude {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "liebe"), strings.Contains(lower, "super"), strings.Contains(lower, "viel"):
		return interview.AttitudeEnthusiastic
	case strings.Contains(lower, "offen"), strings.Contains(lower, "neugierig"):
		return interview.AttitudeOpen
	case strings.Contains(lower, "skept"):
		return interview.AttitudeSkeptical
	case strings.Contains(lower, "ablehn"):
		return interview.AttitudeDismissive
	default:
		return interview.AttitudeNeutral
	}
}

func inferInterestLevel(text string) interview.InterestLevel {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "stark"), strings.Contains(lower, "wow"), strings.Contains(lower, "sofort"):
		return interview.InterestStrong
	case strings.Contains(lower, "skept"), strings.Contains(lower, "unnötig"):
		return interview.InterestSkeptical
	default:
		return interview.InterestPolite
	}
}

// GenerateSummary builds a full summary patch from the captured notes and
// quotes. The two lead pain points come from the first sentences of the
// concatenated section notes.
func (m *MockAIService) GenerateSummary(cfg *interview.Config) interview.SummaryPatch {
	var parts []string
	for _, key := range interview.SectionKeys() {
		parts = append(parts, cfg.SectionNotes[key].Content)
	}
	concatenated := strings.Join(parts, "\n")

	statements := toSentences(concatenated)
	firstPain := "Unklare Priorisierung in der Gründungsphase"
	secondPain := "Zu viel manueller Aufwand in wiederkehrenden Aufgaben"
	if len(statements) > 0 {
		firstPain = statements[0]
	}
	if len(statements) > 1 {
		secondPain = statements[1]
	}

	var steveQuotes []string
	for _, q := range cfg.AllQuotes {
		if q.SectionKey == interview.SectionConceptTest && len(steveQuotes) < 3 {
			steveQuotes = append(steveQuotes, q.Text)
		}
	}

	keyQuotes := cfg.AllQuotes
	if len(keyQuotes) > 6 {
		keyQuotes = keyQuotes[:6]
	}

	attitude := inferAIAttitude(concatenated)
	interest := inferInterestLevel(cfg.SectionNotes[interview.SectionConceptTest].Content)
	generated := true

	return interview.SummaryPatch{
		WorkaroundsAttempted: []string{"Tabellen/Notion", "Ad-hoc Beratung", "Einzeltools ohne Integration"},
		AIAttitude:           &attitude,
		AIToolsUsed:          []string{"ChatGPT", "Notion AI"},
		AIBarriers:           []string{"Fehlende Zeit für Setup", "Unsicherheit bei Datenqualität"},
		PainPoints: []interview.PainPoint{
			{
				ID:              m.idGen("pain"),
				Description:     firstPain,
				Intensity:       4,
				Frequency:       "mehrmals pro Woche",
				CurrentSolution: "manuelle Listen und Erinnerungen",
				CostOfProblem:   "Zeitverlust und Entscheidungsmüdigkeit",
				Rank:            1,
			},
			{
				ID:              m.idGen("pain"),
				Description:     secondPain,
				Intensity:       3,
				Frequency:       "wöchentlich",
				CurrentSolution: "Workarounds mit mehreren Tools",
				CostOfProblem:   "Kontextwechsel und Fehleranfälligkeit",
				Rank:            2,
			},
		},
		SteveReaction: &interview.SteveReactionPatch{
			FirstReaction:           strPtr("Interessant, wenn es wirklich Zeit spart."),
			InterestLevel:           &interest,
			MostInterestingFeature:  strPtr("Automatisierte Priorisierung nächster Schritte"),
			UseCase:                 strPtr("Wöchentliche Planung und Aufgabenbündelung"),
			WillingnessToPayMonthly: strPtr("39-79 EUR"),
			Concerns:                strPtr("Datenschutz und Integration in bestehende Tools"),
			QuotesAboutSteve:        steveQuotes,
		},
		JTBD: &interview.JTBDPatch{
			Trigger:     strPtr("Zeitdruck und Unsicherheit in operativen Entscheidungen"),
			PushFactors: []string{"Zu viele offene To-dos", "Manuelle Prozesse"},
			PullFactors: []string{"Schnellere Klarheit", "Weniger Tool-Wechsel"},
			Anxiety:     []string{"Abhängigkeit von einer neuen Plattform", "Lernaufwand"},
			Habit:       []string{"Weiterarbeit mit Tabellen", "Ad-hoc Problemlösung"},
		},
		KeyQuotes:   keyQuotes,
		AIGenerated: &generated,
	}
}

// ExtractPainPoints derives up to three pain points from the note text and
// appends a quote-derived cluster when quotes exist.
func (m *MockAIService) ExtractPainPoints(sectionNotes string, quotes []interview.Quote) []interview.PainPoint {
	sentences := toSentences(sectionNotes)
	descriptions := sentences
	if len(descriptions) > 3 {
		descriptions = descriptions[:3]
	}
	if len(descriptions) == 0 {
		descriptions = []string{
			"Manuelle Verwaltungsaufgaben kosten zu viel Zeit",
			"Unklare Priorisierung im Tagesgeschäft",
		}
	}

	intensities := []int{3, 4, 5}
	points := make([]interview.PainPoint, 0, len(descriptions)+1)
	for i, description := range descriptions {
		points = append(points, interview.PainPoint{
			ID:              m.idGen("pain"),
			Description:     description,
			Intensity:       intensities[i%len(intensities)],
			Frequency:       pick([]string{"täglich", "mehrmals pro Woche", "wöchentlich"}, i),
			CurrentSolution: pick([]string{"Excel/Notion", "Persönliche To-do-Listen", "Externe Beratung"}, i),
			CostOfProblem:   pick([]string{"Zeitverlust", "Verpasste Chancen", "Frustration und mentale Last"}, i),
			Rank:            i + 1,
		})
	}

	if len(quotes) > 0 {
		text := quotes[0].Text
		if runes := []rune(text); len(runes) > 80 {
			text = string(runes[:80])
		}
		points = append(points, interview.PainPoint{
			ID:              m.idGen("pain"),
			Description:     "Direktzitat-Cluster: " + text,
			Intensity:       4,
			Frequency:       "mehrmals pro Monat",
			CurrentSolution: "Situative Einzellösungen",
			CostOfProblem:   "Inkonsistente Ergebnisse",
			Rank:            len(points) + 1,
		})
	}
	return points
}

// GenerateJTBD builds a jobs-to-be-done analysis seeded from the journey and
// pain section notes.
func (m *MockAIService) GenerateJTBD(journeyNotes, painNotes string) interview.JTBDAnalysis {
	trigger := "Wachsender operativer Druck in der Gründungsphase"
	if s := toSentences(journeyNotes); len(s) > 0 {
		trigger = s[0]
	}
	push := toSentences(painNotes)
	if len(push) > 3 {
		push = push[:3]
	}
	if len(push) == 0 {
		push = []string{"Zu viele manuelle Aufgaben", "Unklare Prioritäten"}
	}
	return interview.JTBDAnalysis{
		Trigger:     trigger,
		PushFactors: push,
		PullFactors: []string{"Mehr Fokus auf Kund:innen", "Schnellere Entscheidungen", "Weniger Tool-Chaos"},
		Anxiety:     []string{"Fehlende Kontrolle über Daten", "Abhängigkeit von Automatisierung"},
		Habit:       []string{"Bisherige Tabellen-Workflows", "Ad-hoc Recherchen und Notizen"},
	}
}

// SuggestFollowUpQuestions returns four probing questions seeded from the
// current notes; the closing question depends on the founder segment.
func (m *MockAIService) SuggestFollowUpQuestions(sectionKey interview.SectionKey, currentNotes string, segment interview.Segment) []string {
	signal := "diesem Punkt"
	if s := toSentences(currentNotes); len(s) > 0 {
		signal = s[0]
	}
	closing := "Welche Entscheidung musst du dazu in den nächsten 14 Tagen treffen?"
	if segment == interview.SegmentRetrospective {
		closing = "Wenn du zurückgehst: Was hätte dir damals am meisten geholfen?"
	}
	return []string{
		`Kannst du mir ein konkretes Beispiel aus der letzten Woche zu "` + signal + `" geben?`,
		"Was war in der Situation der größte Engpass? (" + string(sectionKey) + ")",
		"Wie würde sich dein Alltag verändern, wenn dieses Problem gelöst wäre?",
		closing,
	}
}

func strPtr(s string) *string { return &s }
