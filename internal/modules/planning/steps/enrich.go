package steps

import (
	"context"

	"github.com/planweave/planweave-backend/internal/domain"
	"github.com/planweave/planweave-backend/internal/pkg/parallel"
	"github.com/planweave/planweave-backend/internal/platform/logger"
)

type EnrichDeps struct {
	Log    *logger.Logger
	Oracle Oracle
	Pool   *parallel.Pool
}

// EnrichCurriculum attaches learning resources to every step, one
// independent oracle call per step on the shared worker pool. Step
// order in the output always matches the curriculum; a failed lookup
// degrades that step to an empty resource list instead of failing the
// batch.
func EnrichCurriculum(ctx context.Context, deps EnrichDeps, tech domain.TechnologyDescriptor, prefersKorean bool, cur *domain.Curriculum) (*domain.EnrichedCurriculum, error) {
	enriched, err := parallel.MapOrdered(ctx, deps.Pool, cur.Steps,
		func(ctx context.Context, step domain.StepBlueprint) (domain.EnrichedStep, error) {
			resources, err := deps.Oracle.StepResources(ctx, tech, step, prefersKorean)
			if err != nil {
				return domain.EnrichedStep{}, err
			}
			if resources == nil {
				resources = []domain.LearningResource{}
			}
			return domain.EnrichedStep{StepBlueprint: step, LearningResources: resources}, nil
		},
		func(step domain.StepBlueprint, err error) domain.EnrichedStep {
			if deps.Log != nil {
				deps.Log.Warn("step enrichment failed, continuing without resources",
					"technology", tech.Key, "step_order", step.Order, "error", err)
			}
			return domain.EnrichedStep{StepBlueprint: step, LearningResources: []domain.LearningResource{}}
		},
	)
	if err != nil {
		return nil, err
	}
	return &domain.EnrichedCurriculum{Depth: cur.Depth, Steps: enriched}, nil
}
