package services

import (
	"strings"
	"testing"
	"time"

	"github.com/beanup/interview-guide/internal/interview"
)

func testMock() *MockAIService {
	m := NewMockAIService()
	m.now = func() time.Time { return time.Date(2026, 8, 12, 10, 0, 0, 0, time.UTC) }
	n := 0
	m.idGen = func(prefix string) string {
		n++
		return prefix + "-" + strings.Repeat("x", n)
	}
	return m
}

func TestGenerateSummaryFromNotes(t *testing.T) {
	m := testMock()
	iv := interview.NewInterview("Test", time.Date(2026, 8, 12, 9, 0, 0, 0, time.UTC))
	cfg := &iv.Config

	warmup := cfg.SectionNotes[interview.SectionWarmup]
	warmup.Content = "Zu viele Tools im Einsatz. Buchhaltung frisst den Freitag."
	cfg.SectionNotes[interview.SectionWarmup] = warmup

	steve := cfg.SectionNotes[interview.SectionConceptTest]
	steve.Content = "Wow, das würde ich sofort nutzen."
	cfg.SectionNotes[interview.SectionConceptTest] = steve

	cfg.AllQuotes = []interview.Quote{
		{ID: "q1", Text: "Das nervt täglich", SectionKey: interview.SectionPain, IsVerbatim: true},
		{ID: "q2", Text: "Genau mein Problem", SectionKey: interview.SectionConceptTest, IsVerbatim: true},
	}

	patch := m.GenerateSummary(cfg)

	if patch.AIGenerated == nil || !*patch.AIGenerated {
		t.Fatal("summary must be flagged as generated")
	}
	if len(patch.PainPoints) != 2 {
		t.Fatalf("pain points = %d, want 2", len(patch.PainPoints))
	}
	if patch.PainPoints[0].Description != "Zu viele Tools im Einsatz" {
		t.Fatalf("first pain point %q must come from the first note sentence", patch.PainPoints[0].Description)
	}
	if patch.SteveReaction == nil || patch.SteveReaction.InterestLevel == nil {
		t.Fatal("missing concept reaction")
	}
	if *patch.SteveReaction.InterestLevel != interview.InterestStrong {
		t.Fatalf("interest = %s, want stark for an enthusiastic reaction note", *patch.SteveReaction.InterestLevel)
	}
	if got := patch.SteveReaction.QuotesAboutSteve; len(got) != 1 || got[0] != "Genau mein Problem" {
		t.Fatalf("concept quotes = %v", got)
	}
	if len(patch.KeyQuotes) != 2 {
		t.Fatalf("key quotes = %d, want all captured quotes below the cap", len(patch.KeyQuotes))
	}
}

func TestGenerateSummaryEmptyNotesFallsBack(t *testing.T) {
	m := testMock()
	iv := interview.NewInterview("Leer", time.Date(2026, 8, 12, 9, 0, 0, 0, time.UTC))

	patch := m.GenerateSummary(&iv.Config)

	if len(patch.PainPoints) != 2 {
		t.Fatalf("pain points = %d", len(patch.PainPoints))
	}
	if patch.PainPoints[0].Description == "" || patch.PainPoints[1].Description == "" {
		t.Fatal("fallback descriptions must be non-empty")
	}
	if patch.AIAttitude == nil || *patch.AIAttitude != interview.AttitudeNeutral {
		t.Fatalf("attitude = %v, want neutral for empty notes", patch.AIAttitude)
	}
}

func TestExtractPainPointsRanksAndQuoteCluster(t *testing.T) {
	m := testMock()
	notes := "Erstens dauert alles zu lange. Zweitens fehlt der Überblick. Drittens kostet es Nerven. Viertens wird ignoriert."
	quotes := []interview.Quote{{ID: "q1", Text: "Ich verliere jede Woche einen Tag"}}

	points := m.ExtractPainPoints(notes, quotes)

	if len(points) != 4 {
		t.Fatalf("points = %d, want 3 from notes plus the quote cluster", len(points))
	}
	for i, p := range points {
		if p.Rank != i+1 {
			t.Fatalf("rank at %d = %d", i, p.Rank)
		}
	}
	last := points[3]
	if !strings.HasPrefix(last.Description, "Direktzitat-Cluster: ") {
		t.Fatalf("quote cluster description = %q", last.Description)
	}
}

func TestExtractPainPointsEmptyInput(t *testing.T) {
	m := testMock()
	points := m.ExtractPainPoints("", nil)
	if len(points) != 2 {
		t.Fatalf("points = %d, want 2 fallback entries", len(points))
	}
}

func TestGenerateJTBDSeedsFromNotes(t *testing.T) {
	m := testMock()
	jtbd := m.GenerateJTBD("Kündigung des Mitgründers war der Auslöser. Danach kam der Druck.", "Zu viel Papierkram. Keine Zeit für Vertrieb.")

	if jtbd.Trigger != "Kündigung des Mitgründers war der Auslöser" {
		t.Fatalf("trigger = %q", jtbd.Trigger)
	}
	if len(jtbd.PushFactors) != 2 || jtbd.PushFactors[0] != "Zu viel Papierkram" {
		t.Fatalf("push factors = %v", jtbd.PushFactors)
	}
	if len(jtbd.PullFactors) == 0 || len(jtbd.Anxiety) == 0 || len(jtbd.Habit) == 0 {
		t.Fatal("canned factor lists must be populated")
	}
}

func TestSuggestFollowUpQuestionsSegmentClosing(t *testing.T) {
	m := testMock()

	retro := m.SuggestFollowUpQuestions(interview.SectionPain, "Rechnungen stapeln sich.", interview.SegmentRetrospective)
	if len(retro) != 4 {
		t.Fatalf("questions = %d, want 4", len(retro))
	}
	if !strings.Contains(retro[0], "Rechnungen stapeln sich") {
		t.Fatalf("first question %q must quote the note signal", retro[0])
	}
	if !strings.Contains(retro[3], "damals") {
		t.Fatalf("retrospective closing question = %q", retro[3])
	}

	founding := m.SuggestFollowUpQuestions(interview.SectionPain, "", interview.SegmentFounding)
	if !strings.Contains(founding[3], "14 Tagen") {
		t.Fatalf("founding closing question = %q", founding[3])
	}
	if !strings.Contains(founding[0], "diesem Punkt") {
		t.Fatalf("empty notes must fall back to the generic signal: %q", founding[0])
	}
}
