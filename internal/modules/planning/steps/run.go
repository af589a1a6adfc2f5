package steps

import (
	"context"
	"fmt"

	"github.com/planweave/planweave-backend/internal/domain"
	"github.com/planweave/planweave-backend/internal/modules/planning"
	"github.com/planweave/planweave-backend/internal/pkg/parallel"
	"github.com/planweave/planweave-backend/internal/platform/logger"
)

// Oracle is the slice of the generative content oracle the pipeline
// stages call. Each call either succeeds with a validated artifact or
// fails with a generation error; retries are the caller's concern.
type Oracle interface {
	TechContext(ctx context.Context, tech domain.TechnologyDescriptor, depth domain.ContextDepth) (*domain.TechContext, error)
	GapAnalysis(ctx context.Context, profile domain.LearnerProfile, tech domain.TechnologyDescriptor, deepCtx *domain.TechContext, detailed bool) (domain.GapAnalysis, error)
	Curriculum(ctx context.Context, profile domain.LearnerProfile, tech domain.TechnologyDescriptor, techCtx *domain.TechContext, gap domain.GapAnalysis, depth domain.CurriculumDepth) (*domain.Curriculum, error)
	StepResources(ctx context.Context, tech domain.TechnologyDescriptor, step domain.StepBlueprint, prefersKorean bool) ([]domain.LearningResource, error)
}

type RunDeps struct {
	Log    *logger.Logger
	Oracle Oracle
	Pool   *parallel.Pool
}

// Run is the orchestration context for one planning run. It memoizes
// the oracle artifacts (simple/deep tech context, gap analysis) so that
// on-demand materialization never recomputes a prerequisite two stages
// both need, and it tracks what actually executed for plan metadata.
type Run struct {
	deps    RunDeps
	profile domain.LearnerProfile
	tech    domain.TechnologyDescriptor
	depth   planning.DepthPlan

	simpleCtx *domain.TechContext
	deepCtx   *domain.TechContext
	gap       *domain.GapAnalysis

	gapRan            bool
	resourcesEnriched bool
}

func NewRun(deps RunDeps, profile domain.LearnerProfile, tech domain.TechnologyDescriptor, depth planning.DepthPlan) *Run {
	return &Run{deps: deps, profile: profile, tech: tech, depth: depth}
}

func (r *Run) DepthPlan() planning.DepthPlan { return r.depth }
func (r *Run) GapRan() bool                  { return r.gapRan }
func (r *Run) ResourcesEnriched() bool       { return r.resourcesEnriched }

// SimpleContext materializes the brief tech context on first use.
func (r *Run) SimpleContext(ctx context.Context) (*domain.TechContext, error) {
	if r.simpleCtx != nil {
		return r.simpleCtx, nil
	}
	tc, err := r.deps.Oracle.TechContext(ctx, r.tech, domain.ContextSimple)
	if err != nil {
		return nil, fmt.Errorf("materialize simple tech context for %s: %w", r.tech.Key, err)
	}
	r.simpleCtx = tc
	return tc, nil
}

// DeepContext materializes the comprehensive tech context on first use.
// The simple variant is never substituted in its place.
func (r *Run) DeepContext(ctx context.Context) (*domain.TechContext, error) {
	if r.deepCtx != nil {
		return r.deepCtx, nil
	}
	tc, err := r.deps.Oracle.TechContext(ctx, r.tech, domain.ContextDeep)
	if err != nil {
		return nil, fmt.Errorf("materialize deep tech context for %s: %w", r.tech.Key, err)
	}
	r.deepCtx = tc
	return tc, nil
}

// RunAnalysis executes the analysis stage. Quick mode fetches the
// simple context; every other mode, including skip, attempts the deep
// context. Skip still materializing deep is deliberate: later stages
// expect the deep variant and must never get the simple one instead.
func (r *Run) RunAnalysis(ctx context.Context) (*domain.TechContext, error) {
	switch r.depth.Analysis {
	case planning.AnalysisQuick:
		tc, err := r.SimpleContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("analysis stage: %w", err)
		}
		return tc, nil
	default:
		tc, err := r.DeepContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("analysis stage: %w", err)
		}
		return tc, nil
	}
}

// RunGap executes the gap stage. Quick and detailed modes need the deep
// context and compute it on demand when absent; none/skip modes need
// the simple context under the same rule and always produce the
// no-gap-analysis result with a reason.
func (r *Run) RunGap(ctx context.Context) (domain.GapAnalysis, error) {
	switch r.depth.Gap {
	case planning.GapModeQuick, planning.GapModeDetailed:
		deep, err := r.DeepContext(ctx)
		if err != nil {
			return domain.GapAnalysis{}, fmt.Errorf("gap stage: %w", err)
		}
		detailed := r.depth.Gap == planning.GapModeDetailed
		gap, err := r.deps.Oracle.GapAnalysis(ctx, r.profile, r.tech, deep, detailed)
		if err != nil {
			return domain.GapAnalysis{}, fmt.Errorf("gap stage: generate gap analysis: %w", err)
		}
		r.gapRan = true
		r.gap = &gap
		return gap, nil
	default:
		if _, err := r.SimpleContext(ctx); err != nil {
			return domain.GapAnalysis{}, fmt.Errorf("gap stage: %w", err)
		}
		reason := "gap analysis skipped by depth plan"
		if r.profile.KnownSkillCount == 0 {
			reason = "no known skills recorded for this learner"
		}
		gap := domain.NoGapAnalysis(reason)
		r.gap = &gap
		return gap, nil
	}
}

// RunCurriculum executes the curriculum stage against whatever gap
// result the gap stage left behind. Quick mode works from the simple
// context and drops the gap result to the no-gap shape; detailed mode
// works from the deep context and upgrades a non-detailed gap result by
// recomputing it; standard mode works from the deep context and narrows
// a detailed result rather than discarding it.
func (r *Run) RunCurriculum(ctx context.Context) (*domain.Curriculum, error) {
	gap := domain.NoGapAnalysis("gap stage did not run")
	if r.gap != nil {
		gap = *r.gap
	}

	switch r.depth.Curriculum {
	case planning.CurriculumQuick:
		simple, err := r.SimpleContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("curriculum stage: %w", err)
		}
		if gap.Kind != domain.GapNone {
			gap = domain.NoGapAnalysis("quick curriculum ignores gap analysis")
		}
		cur, err := r.deps.Oracle.Curriculum(ctx, r.profile, r.tech, simple, gap, domain.CurriculumBasic)
		if err != nil {
			return nil, fmt.Errorf("curriculum stage: generate basic curriculum: %w", err)
		}
		return cur, nil

	case planning.CurriculumDetailed:
		deep, err := r.DeepContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("curriculum stage: %w", err)
		}
		if gap.Kind != domain.GapDetailed {
			upgraded, err := r.deps.Oracle.GapAnalysis(ctx, r.profile, r.tech, deep, true)
			if err != nil {
				return nil, fmt.Errorf("curriculum stage: upgrade gap analysis: %w", err)
			}
			r.gapRan = true
			gap = upgraded
			r.gap = &upgraded
		}
		cur, err := r.deps.Oracle.Curriculum(ctx, r.profile, r.tech, deep, gap, domain.CurriculumDetailed)
		if err != nil {
			return nil, fmt.Errorf("curriculum stage: generate detailed curriculum: %w", err)
		}
		return cur, nil

	default:
		deep, err := r.DeepContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("curriculum stage: %w", err)
		}
		gap = domain.NarrowGap(gap)
		cur, err := r.deps.Oracle.Curriculum(ctx, r.profile, r.tech, deep, gap, domain.CurriculumStandard)
		if err != nil {
			return nil, fmt.Errorf("curriculum stage: generate standard curriculum: %w", err)
		}
		return cur, nil
	}
}

// RunResources executes the resource stage. Only detailed mode performs
// real enrichment; any other mode passes the steps through with empty
// resource lists.
func (r *Run) RunResources(ctx context.Context, cur *domain.Curriculum) (*domain.EnrichedCurriculum, error) {
	if r.depth.Resource != planning.ResourceDetailed {
		steps := make([]domain.EnrichedStep, len(cur.Steps))
		for i, s := range cur.Steps {
			steps[i] = domain.EnrichedStep{StepBlueprint: s, LearningResources: []domain.LearningResource{}}
		}
		return &domain.EnrichedCurriculum{Depth: cur.Depth, Steps: steps}, nil
	}

	enriched, err := EnrichCurriculum(ctx, EnrichDeps{
		Log:    r.deps.Log,
		Oracle: r.deps.Oracle,
		Pool:   r.deps.Pool,
	}, r.tech, r.profile.PrefersKoreanContent, cur)
	if err != nil {
		return nil, fmt.Errorf("resource stage: %w", err)
	}
	r.resourcesEnriched = true
	return enriched, nil
}
