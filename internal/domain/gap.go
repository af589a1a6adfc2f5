package domain

// GapKind tags the GapAnalysis union.
type GapKind string

const (
	GapNone     GapKind = "none"
	GapQuick    GapKind = "quick"
	GapDetailed GapKind = "detailed"
)

type CriticalGap struct {
	Area        string `json:"area"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
	Action      string `json:"action"`
}

// GapAnalysis is a tagged union over the none/quick/detailed shapes.
// Only the fields belonging to the tagged variant are populated.
type GapAnalysis struct {
	Kind GapKind `json:"kind"`

	// None
	SkipReason string `json:"skip_reason,omitempty"`

	// Quick (HasGaps, Gaps <=5, Strengths <=3)
	HasGaps    bool     `json:"has_gaps,omitempty"`
	Gaps       []string `json:"gaps,omitempty"`
	Strengths  []string `json:"strengths,omitempty"`
	PrepAdvice string   `json:"prep_advice,omitempty"`

	// Detailed
	ReadinessTier    string        `json:"readiness_tier,omitempty"`
	CriticalGaps     []CriticalGap `json:"critical_gaps,omitempty"`
	MinorGaps        []string      `json:"minor_gaps,omitempty"`
	PreparationSteps []string      `json:"preparation_steps,omitempty"`
	PrepWeeks        int           `json:"prep_weeks,omitempty"`
}

// NoGapAnalysis builds the skipped variant with a human-readable reason.
func NoGapAnalysis(reason string) GapAnalysis {
	return GapAnalysis{Kind: GapNone, SkipReason: reason}
}

// NarrowGap converts any gap result into the quick shape expected by a
// quick-curriculum stage. Narrowing is lossy and never the other way
// around: a detailed result keeps its top findings, a quick result
// passes through, and a none result stays none.
func NarrowGap(g GapAnalysis) GapAnalysis {
	switch g.Kind {
	case GapDetailed:
		gaps := make([]string, 0, len(g.CriticalGaps))
		for _, cg := range g.CriticalGaps {
			gaps = append(gaps, cg.Area)
		}
		if len(gaps) > 5 {
			gaps = gaps[:5]
		}
		strengths := g.Strengths
		if len(strengths) > 3 {
			strengths = strengths[:3]
		}
		advice := ""
		if len(g.PreparationSteps) > 0 {
			advice = g.PreparationSteps[0]
		}
		return GapAnalysis{
			Kind:       GapQuick,
			HasGaps:    len(gaps) > 0,
			Gaps:       gaps,
			Strengths:  strengths,
			PrepAdvice: advice,
		}
	default:
		return g
	}
}
