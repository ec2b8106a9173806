// Package export renders finalized interviews and insight reports into
// portable formats: Markdown, a flat one-row CSV and pretty-printed JSON.
// All formatters are pure functions over their input.
package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/beanup/interview-guide/internal/insights"
	"github.com/beanup/interview-guide/internal/interview"
)

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02.01.2006 15:04")
}

// InterviewMarkdown renders one interview as a structured German report.
func InterviewMarkdown(iv *interview.Interview) string {
	cfg := iv.Config
	sum := cfg.Summary
	var b strings.Builder

	fmt.Fprintf(&b, "# Interview: %s\n\n", iv.Name)
	fmt.Fprintf(&b, "- Status: %s\n", interview.StatusLabel(iv.Status))
	fmt.Fprintf(&b, "- Erstellt: %s\n", formatDate(iv.CreatedAt))
	fmt.Fprintf(&b, "- Aktualisiert: %s\n\n", formatDate(iv.UpdatedAt))

	b.WriteString("## Basisdaten\n\n")
	fmt.Fprintf(&b, "- Name: %s\n", orDash(cfg.CoreFacts.IntervieweeName))
	fmt.Fprintf(&b, "- Segment: %s\n", interview.SegmentLabel(cfg.CoreFacts.Segment))
	fmt.Fprintf(&b, "- Branche: %s\n", orDash(cfg.CoreFacts.Industry))
	fmt.Fprintf(&b, "- Geschäftsbeschreibung: %s\n", orDash(cfg.CoreFacts.BusinessDescription))
	fmt.Fprintf(&b, "- Gründungsdatum: %s\n", orDash(cfg.CoreFacts.FoundingDate))
	fmt.Fprintf(&b, "- Teamgröße: %s\n", orDash(cfg.CoreFacts.TeamSize))
	fmt.Fprintf(&b, "- Weitere Gründer: %s\n", foundersLine(cfg.CoreFacts.AdditionalFounders))
	fmt.Fprintf(&b, "- Ort: %s\n", orDash(cfg.CoreFacts.Location))
	fmt.Fprintf(&b, "- E-Mail: %s\n", orDash(cfg.CoreFacts.ContactEmail))
	fmt.Fprintf(&b, "- Telefon: %s\n", orDash(cfg.CoreFacts.ContactPhone))
	fmt.Fprintf(&b, "- Empfehlung: %s\n", orDash(cfg.CoreFacts.ReferredBy))
	fmt.Fprintf(&b, "- Notizen: %s\n\n", orDash(cfg.CoreFacts.Notes))

	b.WriteString("## JTBD\n\n")
	fmt.Fprintf(&b, "- Trigger: %s\n", orDash(sum.JTBD.Trigger))
	fmt.Fprintf(&b, "- Push-Faktoren: %s\n", joinOrDash(sum.JTBD.PushFactors))
	fmt.Fprintf(&b, "- Pull-Faktoren: %s\n", joinOrDash(sum.JTBD.PullFactors))
	fmt.Fprintf(&b, "- Ängste: %s\n", joinOrDash(sum.JTBD.Anxiety))
	fmt.Fprintf(&b, "- Gewohnheiten: %s\n\n", joinOrDash(sum.JTBD.Habit))

	b.WriteString("## Schmerzpunkte\n\n")
	if len(sum.PainPoints) == 0 {
		b.WriteString("_Keine Schmerzpunkte dokumentiert._\n\n")
	} else {
		for _, pp := range sum.PainPoints {
			fmt.Fprintf(&b, "- **#%d %s** (Intensität %d/5)\n", pp.Rank, pp.Description, pp.Intensity)
			fmt.Fprintf(&b, "  - Frequenz: %s\n", orDash(pp.Frequency))
			fmt.Fprintf(&b, "  - Aktuelle Lösung: %s\n", orDash(pp.CurrentSolution))
			fmt.Fprintf(&b, "  - Kosten: %s\n", orDash(pp.CostOfProblem))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Umgehungslösungen\n\n")
	if len(sum.WorkaroundsAttempted) == 0 {
		b.WriteString("_Keine Umgehungslösungen dokumentiert._\n\n")
	} else {
		for _, w := range sum.WorkaroundsAttempted {
			fmt.Fprintf(&b, "- %s\n", w)
		}
		b.WriteString("\n")
	}

	b.WriteString("## KI & Automatisierung\n\n")
	fmt.Fprintf(&b, "- Haltung: %s\n", interview.AIAttitudeLabel(sum.AIAttitude))
	fmt.Fprintf(&b, "- Tools: %s\n", joinOrDash(sum.AIToolsUsed))
	fmt.Fprintf(&b, "- Barrieren: %s\n\n", joinOrDash(sum.AIBarriers))

	b.WriteString("## bean:up-Reaktion\n\n")
	fmt.Fprintf(&b, "- Erste Reaktion: %s\n", orDash(sum.SteveReaction.FirstReaction))
	fmt.Fprintf(&b, "- Interesse: %s\n", interview.InterestLabel(sum.SteveReaction.InterestLevel))
	fmt.Fprintf(&b, "- Wichtigstes Feature: %s\n", orDash(sum.SteveReaction.MostInterestingFeature))
	fmt.Fprintf(&b, "- Anwendungsfall: %s\n", orDash(sum.SteveReaction.UseCase))
	fmt.Fprintf(&b, "- Zahlungsbereitschaft/Monat: %s\n", orDash(sum.SteveReaction.WillingnessToPayMonthly))
	fmt.Fprintf(&b, "- Bedenken: %s\n\n", orDash(sum.SteveReaction.Concerns))

	b.WriteString("## Gesamtbewertung\n\n")
	fmt.Fprintf(&b, "- Relevanz: %d/5\n", sum.OverallAssessment.RelevanceScore)
	fmt.Fprintf(&b, "- Schmerzintensität: %d/5\n", sum.OverallAssessment.PainIntensityScore)
	fmt.Fprintf(&b, "- bean:up-Fit: %d/5\n", sum.OverallAssessment.SteveFitScore)
	fmt.Fprintf(&b, "- Nachfass-Priorität: %s\n", interview.FollowUpPriorityLabel(sum.OverallAssessment.FollowUpPriority))
	fmt.Fprintf(&b, "- Notizen: %s\n\n", orDash(sum.OverallAssessment.Notes))

	b.WriteString("## Abschnittsnotizen\n\n")
	for _, key := range interview.SectionKeys() {
		note := cfg.SectionNotes[key]
		fmt.Fprintf(&b, "### %s\n\n", interview.SectionLabel(key))
		if strings.TrimSpace(note.Content) == "" {
			b.WriteString("_Keine Notizen_\n\n")
		} else {
			fmt.Fprintf(&b, "%s\n\n", note.Content)
		}
	}

	b.WriteString("## Schlüsselzitate\n\n")
	if len(cfg.AllQuotes) == 0 {
		b.WriteString("_Keine Zitate dokumentiert._\n")
	} else {
		for i, q := range cfg.AllQuotes {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "> %s _(%s)_\n", q.Text, interview.SectionLabel(q.SectionKey))
		}
	}

	return b.String()
}

func foundersLine(founders []interview.AdditionalFounder) string {
	if len(founders) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(founders))
	for _, f := range founders {
		parts = append(parts, fmt.Sprintf("%s (%s)", f.Name, f.Role))
	}
	return strings.Join(parts, ", ")
}

// InterviewJSON renders the interview as indented JSON.
func InterviewJSON(iv *interview.Interview) ([]byte, error) {
	return json.MarshalIndent(iv, "", "  ")
}

// InsightsMarkdown renders the cross-interview insights report.
func InsightsMarkdown(sum insights.Summary) string {
	var b strings.Builder

	b.WriteString("# Interview-Auswertungsbericht\n\n")
	b.WriteString("## Überblick\n\n")
	fmt.Fprintf(&b, "- Gesamtinterviews: %d\n", sum.TotalInterviews)
	fmt.Fprintf(&b, "- Segment retrospektiv: %d\n", sum.SegmentBreakdown[interview.SegmentRetrospective])
	fmt.Fprintf(&b, "- Segment aktuell gründend: %d\n", sum.SegmentBreakdown[interview.SegmentFounding])
	fmt.Fprintf(&b, "- Durchschnittlicher bean:up-Fit: %.2f/5\n\n", sum.AvgSteveFit)

	b.WriteString("## bean:up-Interesse\n\n")
	fmt.Fprintf(&b, "- Stark: %d\n", sum.SteveInterestDistribution[interview.InterestStrong])
	fmt.Fprintf(&b, "- Höflich: %d\n", sum.SteveInterestDistribution[interview.InterestPolite])
	fmt.Fprintf(&b, "- Skeptisch: %d\n\n", sum.SteveInterestDistribution[interview.InterestSkeptical])

	b.WriteString("## KI-Haltung\n\n")
	fmt.Fprintf(&b, "- Enthusiastisch: %d\n", sum.AIAttitudeDistribution[interview.AttitudeEnthusiastic])
	fmt.Fprintf(&b, "- Offen: %d\n", sum.AIAttitudeDistribution[interview.AttitudeOpen])
	fmt.Fprintf(&b, "- Neutral: %d\n", sum.AIAttitudeDistribution[interview.AttitudeNeutral])
	fmt.Fprintf(&b, "- Skeptisch: %d\n", sum.AIAttitudeDistribution[interview.AttitudeSkeptical])
	fmt.Fprintf(&b, "- Ablehnend: %d\n\n", sum.AIAttitudeDistribution[interview.AttitudeDismissive])

	b.WriteString("## Top-Schmerzpunkte\n\n")
	if len(sum.TopPainPoints) == 0 {
		b.WriteString("- Keine Daten\n\n")
	} else {
		for _, pp := range sum.TopPainPoints {
			fmt.Fprintf(&b, "- %s: %d Nennungen (Ø %.2f/5)\n", pp.Description, pp.Count, pp.AvgIntensity)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Häufige Umgehungslösungen\n\n")
	if len(sum.CommonWorkarounds) == 0 {
		b.WriteString("- Keine Daten\n\n")
	} else {
		for _, w := range sum.CommonWorkarounds {
			fmt.Fprintf(&b, "- %s: %d\n", w.Description, w.Count)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Schlüsselzitate\n\n")
	if len(sum.TopQuotes) == 0 {
		b.WriteString("_Keine Zitate vorhanden._\n")
	} else {
		for i, q := range sum.TopQuotes {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "> %s\n", q.Text)
		}
	}

	return b.String()
}
