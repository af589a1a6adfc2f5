// Package planning holds the depth-mode model for a plan generation
// run: the closed per-stage mode sets, the DepthPlan produced once per
// run, and the profile-driven selection rules.
package planning

import (
	"strings"

	"github.com/planweave/planweave-backend/internal/domain"
)

type AnalysisMode string

const (
	AnalysisQuick    AnalysisMode = "quick"
	AnalysisStandard AnalysisMode = "standard"
	AnalysisDetailed AnalysisMode = "detailed"
	AnalysisSkip     AnalysisMode = "skip"
)

type GapMode string

const (
	GapModeNone     GapMode = "none"
	GapModeQuick    GapMode = "quick"
	GapModeDetailed GapMode = "detailed"
	GapModeSkip     GapMode = "skip"
)

type CurriculumMode string

const (
	CurriculumQuick    CurriculumMode = "quick"
	CurriculumStandard CurriculumMode = "standard"
	CurriculumDetailed CurriculumMode = "detailed"
)

func (m CurriculumMode) Depth() domain.CurriculumDepth {
	switch m {
	case CurriculumQuick:
		return domain.CurriculumBasic
	case CurriculumDetailed:
		return domain.CurriculumDetailed
	default:
		return domain.CurriculumStandard
	}
}

type ResourceMode string

const (
	ResourceSkip     ResourceMode = "skip"
	ResourceDetailed ResourceMode = "detailed"
)

// DepthPlan is the per-stage mode selection for one planning run.
// It is produced once, before any stage executes, and never changes.
type DepthPlan struct {
	Analysis    AnalysisMode     `json:"analysis"`
	Gap         GapMode          `json:"gap"`
	Curriculum  CurriculumMode   `json:"curriculum"`
	Resource    ResourceMode     `json:"resource"`
	AllowHybrid bool             `json:"allow_hybrid"`
	HybridMix   []CurriculumMode `json:"hybrid_mix,omitempty"`
}

// Label is the human-readable depth tag recorded in plan metadata.
func (p DepthPlan) Label() string {
	if p.AllowHybrid && len(p.HybridMix) > 0 {
		parts := make([]string, 0, len(p.HybridMix))
		for _, m := range p.HybridMix {
			parts = append(parts, string(m))
		}
		return "hybrid(" + strings.Join(parts, "+") + ")"
	}
	return string(p.Curriculum)
}

// DefaultHybridMix is the fixed mix used when the oracle-driven mix
// selection fails. Mix tuning only shapes the plan, so it degrades
// silently instead of aborting the run.
func DefaultHybridMix() []CurriculumMode {
	return []CurriculumMode{CurriculumQuick, CurriculumStandard}
}

// ParseMix filters arbitrary tags down to the closed CurriculumMode
// set, dropping anything unrecognized. An empty result means the mix
// was unusable.
func ParseMix(tags []string) []CurriculumMode {
	out := make([]CurriculumMode, 0, len(tags))
	for _, t := range tags {
		switch CurriculumMode(strings.ToLower(strings.TrimSpace(t))) {
		case CurriculumQuick:
			out = append(out, CurriculumQuick)
		case CurriculumStandard:
			out = append(out, CurriculumStandard)
		case CurriculumDetailed:
			out = append(out, CurriculumDetailed)
		}
	}
	return out
}

// SelectDepthPlan derives the per-stage modes from the learner profile.
// The rules are deterministic; only the hybrid mix (when allowed) comes
// from the oracle, and that selection lives with the caller.
func SelectDepthPlan(profile domain.LearnerProfile) DepthPlan {
	plan := DepthPlan{
		Analysis:   AnalysisStandard,
		Gap:        GapModeQuick,
		Curriculum: CurriculumStandard,
		Resource:   ResourceDetailed,
	}

	switch profile.ExperienceLevel {
	case domain.ExperienceBeginner:
		plan.Analysis = AnalysisQuick
		plan.Curriculum = CurriculumQuick
	case domain.ExperienceAdvanced:
		plan.Analysis = AnalysisDetailed
		plan.Gap = GapModeDetailed
		plan.Curriculum = CurriculumDetailed
	}

	// No recorded skills means a gap analysis has nothing to compare
	// against.
	if profile.KnownSkillCount == 0 {
		plan.Gap = GapModeNone
	}

	weeklyHours := profile.WeeklyHours()
	if weeklyHours > 0 && weeklyHours < 3 {
		// Very low capacity: keep the curriculum small and skip
		// resource lookups that would inflate each step.
		plan.Curriculum = CurriculumQuick
		plan.Resource = ResourceSkip
	}

	// Hybrid composition needs both room in the week and enough
	// experience to mix segment sizes meaningfully.
	plan.AllowHybrid = weeklyHours >= 6 && profile.ExperienceLevel != domain.ExperienceBeginner

	return plan
}
