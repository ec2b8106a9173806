package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/beanup/interview-guide/internal/interview"
)

// listSep joins flattened list values inside a single CSV cell; painSep
// joins whole pain-point records, which themselves contain listSep-style
// text.
const (
	listSep = " | "
	painSep = " || "
)

func csvTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func flattenFounders(founders []interview.AdditionalFounder) string {
	parts := make([]string, 0, len(founders))
	for _, f := range founders {
		parts = append(parts, fmt.Sprintf("%s (%s, %s)", f.Name, f.Role, f.Contact))
	}
	return strings.Join(parts, listSep)
}

func flattenPainPoints(points []interview.PainPoint) string {
	parts := make([]string, 0, len(points))
	for _, pp := range points {
		parts = append(parts, fmt.Sprintf("#%d %s (Intensität %d/5; Frequenz: %s; Lösung: %s; Kosten: %s)",
			pp.Rank, pp.Description, pp.Intensity, pp.Frequency, pp.CurrentSolution, pp.CostOfProblem))
	}
	return strings.Join(parts, painSep)
}

func flattenQuotes(quotes []interview.Quote) string {
	parts := make([]string, 0, len(quotes))
	for _, q := range quotes {
		parts = append(parts, fmt.Sprintf("[%s] %s", interview.SectionLabel(q.SectionKey), q.Text))
	}
	return strings.Join(parts, listSep)
}

func flattenChecklist(items []interview.ChecklistItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, item.Label+": "+boolJaNein(item.Checked))
	}
	return strings.Join(parts, listSep)
}

func quoteTexts(quotes []interview.Quote) []string {
	out := make([]string, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, q.Text)
	}
	return out
}

// InterviewCSV renders one interview as a header row plus one data row,
// one column per leaf field. Nested lists are flattened with " | ", pain
// points with " || ".
func InterviewCSV(iv *interview.Interview) ([]byte, error) {
	cfg := iv.Config
	sum := cfg.Summary
	core := cfg.CoreFacts

	type column struct {
		header string
		value  string
	}
	columns := []column{
		{"id", iv.ID},
		{"name", iv.Name},
		{"status", string(iv.Status)},
		{"status_label", interview.StatusLabel(iv.Status)},
		{"scheduled_at", csvTime(iv.ScheduledAt)},
		{"conducted_at", csvTime(iv.ConductedAt)},
		{"created_at", csvTime(iv.CreatedAt)},
		{"updated_at", csvTime(iv.UpdatedAt)},

		{"core_interviewee_name", core.IntervieweeName},
		{"core_segment", string(core.Segment)},
		{"core_segment_label", interview.SegmentLabel(core.Segment)},
		{"core_industry", core.Industry},
		{"core_founding_date", core.FoundingDate},
		{"core_team_size", core.TeamSize},
		{"core_location", core.Location},
		{"core_business_description", core.BusinessDescription},
		{"core_additional_founders", flattenFounders(core.AdditionalFounders)},
		{"core_contact_email", core.ContactEmail},
		{"core_contact_phone", core.ContactPhone},
		{"core_referred_by", core.ReferredBy},
		{"core_notes", core.Notes},
	}

	for _, key := range interview.SectionKeys() {
		columns = append(columns, column{"note_" + string(key), cfg.SectionNotes[key].Content})
	}

	columns = append(columns,
		column{"checklist", flattenChecklist(cfg.Checklist)},
		column{"quotes_all", flattenQuotes(cfg.AllQuotes)},

		column{"jtbd_trigger", sum.JTBD.Trigger},
		column{"jtbd_push_factors", strings.Join(sum.JTBD.PushFactors, listSep)},
		column{"jtbd_pull_factors", strings.Join(sum.JTBD.PullFactors, listSep)},
		column{"jtbd_anxiety", strings.Join(sum.JTBD.Anxiety, listSep)},
		column{"jtbd_habit", strings.Join(sum.JTBD.Habit, listSep)},

		column{"pain_points", flattenPainPoints(sum.PainPoints)},
		column{"workarounds_attempted", strings.Join(sum.WorkaroundsAttempted, listSep)},

		column{"ai_attitude", string(sum.AIAttitude)},
		column{"ai_attitude_label", interview.AIAttitudeLabel(sum.AIAttitude)},
		column{"ai_tools_used", strings.Join(sum.AIToolsUsed, listSep)},
		column{"ai_barriers", strings.Join(sum.AIBarriers, listSep)},

		column{"steve_first_reaction", sum.SteveReaction.FirstReaction},
		column{"steve_interest_level", string(sum.SteveReaction.InterestLevel)},
		column{"steve_interest_level_label", interview.InterestLabel(sum.SteveReaction.InterestLevel)},
		column{"steve_most_interesting_feature", sum.SteveReaction.MostInterestingFeature},
		column{"steve_use_case", sum.SteveReaction.UseCase},
		column{"steve_willingness_to_pay_monthly", sum.SteveReaction.WillingnessToPayMonthly},
		column{"steve_concerns", sum.SteveReaction.Concerns},
		column{"steve_quotes_about_steve", strings.Join(sum.SteveReaction.QuotesAboutSteve, listSep)},

		column{"key_quotes", strings.Join(quoteTexts(sum.KeyQuotes), listSep)},

		column{"assessment_relevance_score", strconv.Itoa(sum.OverallAssessment.RelevanceScore)},
		column{"assessment_pain_intensity_score", strconv.Itoa(sum.OverallAssessment.PainIntensityScore)},
		column{"assessment_steve_fit_score", strconv.Itoa(sum.OverallAssessment.SteveFitScore)},
		column{"assessment_follow_up_priority", string(sum.OverallAssessment.FollowUpPriority)},
		column{"assessment_follow_up_priority_label", interview.FollowUpPriorityLabel(sum.OverallAssessment.FollowUpPriority)},
		column{"assessment_notes", sum.OverallAssessment.Notes},

		column{"timer_current_section_key", string(cfg.TimerState.CurrentSectionKey)},
		column{"timer_section_elapsed_ms", strconv.FormatInt(cfg.TimerState.SectionElapsedMs, 10)},
		column{"timer_total_elapsed_ms", strconv.FormatInt(cfg.TimerState.TotalElapsedMs, 10)},
		column{"timer_is_paused", boolJaNein(cfg.TimerState.IsPaused)},
	)

	headers := make([]string, len(columns))
	row := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = c.header
		row[i] = c.value
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, err
	}
	if err := w.Write(row); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func boolJaNein(v bool) string {
	if v {
		return "ja"
	}
	return "nein"
}
