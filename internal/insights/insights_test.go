package insights

import (
	"testing"
	"time"

	"github.com/beanup/interview-guide/internal/interview"
)

type stubSource struct {
	interviews []*interview.Interview
}

func (s *stubSource) Interviews() []*interview.Interview {
	return s.interviews
}

func sampleInterview(id string, created time.Time, mutate func(*interview.Interview)) *interview.Interview {
	iv := interview.NewInterview("Interview "+id, created)
	iv.ID = id
	iv.CreatedAt = created
	if mutate != nil {
		mutate(iv)
	}
	return iv
}

func TestSummaryEmptySource(t *testing.T) {
	svc := NewService(&stubSource{})
	sum := svc.Summary()

	if sum.TotalInterviews != 0 {
		t.Fatalf("total = %d", sum.TotalInterviews)
	}
	if sum.SegmentBreakdown == nil || sum.AIAttitudeDistribution == nil {
		t.Fatal("empty summary must carry zeroed distributions")
	}
	if len(sum.TopPainPoints) != 0 || len(sum.TopQuotes) != 0 {
		t.Fatal("empty summary must have empty lists")
	}
}

func TestSummaryAggregation(t *testing.T) {
	base := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)

	a := sampleInterview("iv-a", base, func(iv *interview.Interview) {
		iv.Config.CoreFacts.Segment = interview.SegmentFounding
		iv.Config.Summary.SteveReaction.InterestLevel = interview.InterestStrong
		iv.Config.Summary.AIAttitude = interview.AttitudeOpen
		iv.Config.Summary.OverallAssessment.SteveFitScore = 5
		iv.Config.Summary.PainPoints = []interview.PainPoint{
			{ID: "p1", Description: "Manuelle Buchhaltung", Intensity: 4, Rank: 1},
		}
		iv.Config.Summary.WorkaroundsAttempted = []string{"Excel", "Steuerberater"}
	})

	b := sampleInterview("iv-b", base.Add(24*time.Hour), func(iv *interview.Interview) {
		iv.Config.CoreFacts.Segment = interview.SegmentRetrospective
		iv.Config.Summary.SteveReaction.InterestLevel = interview.InterestSkeptical
		iv.Config.Summary.AIAttitude = interview.AttitudeOpen
		iv.Config.Summary.OverallAssessment.SteveFitScore = 3
		iv.Config.Summary.PainPoints = []interview.PainPoint{
			{ID: "p2", Description: "manuelle buchhaltung", Intensity: 2, Rank: 1},
			{ID: "p3", Description: "Kundenakquise", Intensity: 5, Rank: 2},
		}
		iv.Config.Summary.WorkaroundsAttempted = []string{"excel"}
	})

	svc := NewService(&stubSource{interviews: []*interview.Interview{a, b}})
	sum := svc.Summary()

	if sum.TotalInterviews != 2 {
		t.Fatalf("total = %d", sum.TotalInterviews)
	}
	if sum.SegmentBreakdown[interview.SegmentFounding] != 1 || sum.SegmentBreakdown[interview.SegmentRetrospective] != 1 {
		t.Fatalf("segment breakdown = %v", sum.SegmentBreakdown)
	}
	if sum.AIAttitudeDistribution[interview.AttitudeOpen] != 2 {
		t.Fatalf("attitude distribution = %v", sum.AIAttitudeDistribution)
	}
	if sum.AvgSteveFit != 4 {
		t.Fatalf("avg fit = %f, want 4", sum.AvgSteveFit)
	}

	if len(sum.TopPainPoints) != 2 {
		t.Fatalf("top pain points = %d, want 2 (case-insensitive grouping)", len(sum.TopPainPoints))
	}
	top := sum.TopPainPoints[0]
	if top.Description != "Manuelle Buchhaltung" || top.Count != 2 || top.AvgIntensity != 3 {
		t.Fatalf("top pain point = %+v", top)
	}

	if len(sum.CommonWorkarounds) != 2 || sum.CommonWorkarounds[0].Description != "Excel" || sum.CommonWorkarounds[0].Count != 2 {
		t.Fatalf("workarounds = %v", sum.CommonWorkarounds)
	}
}

func TestTopQuotesVerbatimFirst(t *testing.T) {
	base := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)
	iv := sampleInterview("iv-a", base, func(iv *interview.Interview) {
		iv.Config.AllQuotes = []interview.Quote{
			{ID: "q1", Text: "paraphrase neu", SectionKey: interview.SectionWarmup, CreatedAt: base.Add(3 * time.Hour)},
			{ID: "q2", Text: "wörtlich alt", SectionKey: interview.SectionPain, IsVerbatim: true, CreatedAt: base},
			{ID: "q3", Text: "wörtlich neu", SectionKey: interview.SectionPain, IsVerbatim: true, CreatedAt: base.Add(time.Hour)},
		}
	})

	sum := NewService(&stubSource{interviews: []*interview.Interview{iv}}).Summary()
	if len(sum.TopQuotes) != 3 {
		t.Fatalf("quotes = %d", len(sum.TopQuotes))
	}
	if sum.TopQuotes[0].ID != "q3" || sum.TopQuotes[1].ID != "q2" || sum.TopQuotes[2].ID != "q1" {
		t.Fatalf("quote order = %s %s %s", sum.TopQuotes[0].ID, sum.TopQuotes[1].ID, sum.TopQuotes[2].ID)
	}
}

func TestPainPointClusters(t *testing.T) {
	base := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)
	a := sampleInterview("iv-a", base, func(iv *interview.Interview) {
		iv.Config.Summary.PainPoints = []interview.PainPoint{
			{ID: "p1", Description: "Pricing unklar", Intensity: 3, Rank: 1},
			{ID: "p2", Description: "pricing unklar", Intensity: 5, Rank: 2},
		}
	})
	b := sampleInterview("iv-b", base, func(iv *interview.Interview) {
		iv.Config.Summary.PainPoints = []interview.PainPoint{
			{ID: "p3", Description: "Pricing unklar", Intensity: 4, Rank: 1},
		}
	})

	clusters := NewService(&stubSource{interviews: []*interview.Interview{a, b}}).PainPointClusters()
	if len(clusters) != 1 {
		t.Fatalf("clusters = %d, want 1", len(clusters))
	}
	c := clusters[0]
	if c.Count != 3 {
		t.Fatalf("cluster count = %d", c.Count)
	}
	if c.AvgIntensity != 4 {
		t.Fatalf("avg intensity = %f", c.AvgIntensity)
	}
	if len(c.Interviews) != 2 {
		t.Fatalf("cluster interviews = %v (duplicates per interview must collapse)", c.Interviews)
	}
}

func TestInterestTrendByDay(t *testing.T) {
	day1 := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 7, 2, 15, 0, 0, 0, time.UTC)

	ivs := []*interview.Interview{
		sampleInterview("a", day1, func(iv *interview.Interview) {
			iv.Config.Summary.SteveReaction.InterestLevel = interview.InterestStrong
		}),
		sampleInterview("b", day1, func(iv *interview.Interview) {
			iv.Config.Summary.SteveReaction.InterestLevel = interview.InterestPolite
		}),
		sampleInterview("c", day2, func(iv *interview.Interview) {
			iv.Config.Summary.SteveReaction.InterestLevel = interview.InterestStrong
		}),
	}

	trend := NewService(&stubSource{interviews: ivs}).InterestTrend()
	if len(trend) != 2 {
		t.Fatalf("trend points = %d, want 2", len(trend))
	}
	if trend[0].Date != "2026-07-01" || trend[0].Strong != 1 || trend[0].Polite != 1 {
		t.Fatalf("day1 = %+v", trend[0])
	}
	if trend[1].Date != "2026-07-02" || trend[1].Strong != 1 {
		t.Fatalf("day2 = %+v", trend[1])
	}
}
