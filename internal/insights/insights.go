// Package insights aggregates findings across all captured interviews:
// segment and attitude distributions, recurring pain points, common
// workarounds and standout quotes.
package insights

import (
	"sort"
	"strings"

	"github.com/beanup/interview-guide/internal/interview"
)

const (
	maxTopPainPoints = 10
	maxWorkarounds   = 10
	maxTopQuotes     = 12
)

// InterviewSource yields the interviews to aggregate over. *interview.Store
// satisfies it.
type InterviewSource interface {
	Interviews() []*interview.Interview
}

// PainPointStat is one recurring pain point across interviews.
type PainPointStat struct {
	Description  string  `json:"description"`
	Count        int     `json:"count"`
	AvgIntensity float64 `json:"avgIntensity"`
}

// WorkaroundStat is one workaround named in multiple interviews.
type WorkaroundStat struct {
	Description string `json:"description"`
	Count       int    `json:"count"`
}

// Summary is the cross-interview aggregation shown on the insights page.
type Summary struct {
	TotalInterviews           int                                    `json:"totalInterviews"`
	SegmentBreakdown          map[interview.Segment]int              `json:"segmentBreakdown"`
	TopPainPoints             []PainPointStat                        `json:"topPainPoints"`
	CommonWorkarounds         []WorkaroundStat                       `json:"commonWorkarounds"`
	SteveInterestDistribution map[interview.InterestLevel]int        `json:"steveInterestDistribution"`
	AvgSteveFit               float64                                `json:"avgSteveFit"`
	AIAttitudeDistribution    map[interview.AIAttitude]int           `json:"aiAttitudeDistribution"`
	TopQuotes                 []interview.Quote                      `json:"topQuotes"`
	FollowUpBreakdown         map[interview.FollowUpPriority]int     `json:"followUpBreakdown"`
}

// PainPointCluster groups identical pain-point descriptions with the
// interviews they came from.
type PainPointCluster struct {
	Key          string   `json:"key"`
	Label        string   `json:"label"`
	Count        int      `json:"count"`
	AvgIntensity float64  `json:"avgIntensity"`
	Interviews   []string `json:"interviews"`
}

// InterestTrendPoint counts concept-test interest levels per calendar day
// of interview creation.
type InterestTrendPoint struct {
	Date      string `json:"date"`
	Strong    int    `json:"stark"`
	Polite    int    `json:"hoeflich"`
	Skeptical int    `json:"skeptisch"`
}

// Service computes insights on demand; it keeps no state of its own.
type Service struct {
	source InterviewSource
}

func NewService(source InterviewSource) *Service {
	return &Service{source: source}
}

func emptySummary() Summary {
	return Summary{
		SegmentBreakdown: map[interview.Segment]int{
			interview.SegmentRetrospective: 0,
			interview.SegmentFounding:      0,
		},
		TopPainPoints:     []PainPointStat{},
		CommonWorkarounds: []WorkaroundStat{},
		SteveInterestDistribution: map[interview.InterestLevel]int{
			interview.InterestStrong:    0,
			interview.InterestPolite:    0,
			interview.InterestSkeptical: 0,
		},
		AIAttitudeDistribution: map[interview.AIAttitude]int{
			interview.AttitudeEnthusiastic: 0,
			interview.AttitudeOpen:         0,
			interview.AttitudeNeutral:      0,
			interview.AttitudeSkeptical:    0,
			interview.AttitudeDismissive:   0,
		},
		TopQuotes: []interview.Quote{},
		FollowUpBreakdown: map[interview.FollowUpPriority]int{
			interview.PriorityHigh:   0,
			interview.PriorityMedium: 0,
			interview.PriorityLow:    0,
			interview.PriorityNone:   0,
		},
	}
}

func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Summary aggregates all interviews into one report.
func (s *Service) Summary() Summary {
	interviews := s.source.Interviews()
	out := emptySummary()
	if len(interviews) == 0 {
		return out
	}
	out.TotalInterviews = len(interviews)

	type painAgg struct {
		label        string
		count        int
		intensitySum int
	}
	painMap := map[string]*painAgg{}
	type workAgg struct {
		label string
		count int
	}
	workMap := map[string]*workAgg{}
	var allQuotes []interview.Quote
	steveFitSum := 0

	for _, iv := range interviews {
		sum := iv.Config.Summary
		out.SegmentBreakdown[iv.Config.CoreFacts.Segment]++
		out.SteveInterestDistribution[sum.SteveReaction.InterestLevel]++
		out.AIAttitudeDistribution[sum.AIAttitude]++
		out.FollowUpBreakdown[sum.OverallAssessment.FollowUpPriority]++
		steveFitSum += sum.OverallAssessment.SteveFitScore

		for _, pp := range sum.PainPoints {
			key := normalizeText(pp.Description)
			if key == "" {
				continue
			}
			agg, ok := painMap[key]
			if !ok {
				agg = &painAgg{label: strings.TrimSpace(pp.Description)}
				painMap[key] = agg
			}
			agg.count++
			agg.intensitySum += pp.Intensity
		}

		for _, w := range sum.WorkaroundsAttempted {
			key := normalizeText(w)
			if key == "" {
				continue
			}
			agg, ok := workMap[key]
			if !ok {
				agg = &workAgg{label: strings.TrimSpace(w)}
				workMap[key] = agg
			}
			agg.count++
		}

		allQuotes = append(allQuotes, iv.Config.AllQuotes...)
	}

	for _, agg := range painMap {
		out.TopPainPoints = append(out.TopPainPoints, PainPointStat{
			Description:  agg.label,
			Count:        agg.count,
			AvgIntensity: float64(agg.intensitySum) / float64(agg.count),
		})
	}
	sort.Slice(out.TopPainPoints, func(i, j int) bool {
		a, b := out.TopPainPoints[i], out.TopPainPoints[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.AvgIntensity != b.AvgIntensity {
			return a.AvgIntensity > b.AvgIntensity
		}
		return a.Description < b.Description
	})
	if len(out.TopPainPoints) > maxTopPainPoints {
		out.TopPainPoints = out.TopPainPoints[:maxTopPainPoints]
	}

	for _, agg := range workMap {
		out.CommonWorkarounds = append(out.CommonWorkarounds, WorkaroundStat{
			Description: agg.label,
			Count:       agg.count,
		})
	}
	sort.Slice(out.CommonWorkarounds, func(i, j int) bool {
		a, b := out.CommonWorkarounds[i], out.CommonWorkarounds[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Description < b.Description
	})
	if len(out.CommonWorkarounds) > maxWorkarounds {
		out.CommonWorkarounds = out.CommonWorkarounds[:maxWorkarounds]
	}

	out.AvgSteveFit = float64(steveFitSum) / float64(len(interviews))
	out.TopQuotes = topQuotes(allQuotes, maxTopQuotes)
	return out
}

// topQuotes orders verbatim quotes first, newest first inside each group.
func topQuotes(quotes []interview.Quote, limit int) []interview.Quote {
	sorted := make([]interview.Quote, len(quotes))
	copy(sorted, quotes)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].IsVerbatim != sorted[j].IsVerbatim {
			return sorted[i].IsVerbatim
		}
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// PainPointClusters groups pain points by normalized description across all
// interviews, largest cluster first.
func (s *Service) PainPointClusters() []PainPointCluster {
	clusters := map[string]*PainPointCluster{}

	for _, iv := range s.source.Interviews() {
		for _, pp := range iv.Config.Summary.PainPoints {
			key := normalizeText(pp.Description)
			if key == "" {
				continue
			}
			c, ok := clusters[key]
			if !ok {
				c = &PainPointCluster{Key: key, Label: strings.TrimSpace(pp.Description)}
				clusters[key] = c
			}
			total := c.AvgIntensity*float64(c.Count) + float64(pp.Intensity)
			c.Count++
			c.AvgIntensity = total / float64(c.Count)
			seen := false
			for _, id := range c.Interviews {
				if id == iv.ID {
					seen = true
					break
				}
			}
			if !seen {
				c.Interviews = append(c.Interviews, iv.ID)
			}
		}
	}

	out := make([]PainPointCluster, 0, len(clusters))
	for _, c := range clusters {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].AvgIntensity != out[j].AvgIntensity {
			return out[i].AvgIntensity > out[j].AvgIntensity
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// InterestTrend buckets concept-test interest per creation day, oldest
// first.
func (s *Service) InterestTrend() []InterestTrendPoint {
	byDay := map[string]*InterestTrendPoint{}

	for _, iv := range s.source.Interviews() {
		date := iv.CreatedAt.UTC().Format("2006-01-02")
		p, ok := byDay[date]
		if !ok {
			p = &InterestTrendPoint{Date: date}
			byDay[date] = p
		}
		switch iv.Config.Summary.SteveReaction.InterestLevel {
		case interview.InterestStrong:
			p.Strong++
		case interview.InterestPolite:
			p.Polite++
		case interview.InterestSkeptical:
			p.Skeptical++
		}
	}

	out := make([]InterestTrendPoint, 0, len(byDay))
	for _, p := range byDay {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
