package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/planweave/planweave-backend/internal/domain"
	"github.com/planweave/planweave-backend/internal/modules/planning"
	"github.com/planweave/planweave-backend/internal/modules/planning/prompts"
	"github.com/planweave/planweave-backend/internal/platform/logger"
	"github.com/planweave/planweave-backend/internal/platform/openai"
)

// ContentOracle is the typed facade over the generative content oracle:
// it builds prompts, runs them through the structured-output client and
// validates the artifacts before the pipeline sees them.
type ContentOracle interface {
	TechContext(ctx context.Context, tech domain.TechnologyDescriptor, depth domain.ContextDepth) (*domain.TechContext, error)
	GapAnalysis(ctx context.Context, profile domain.LearnerProfile, tech domain.TechnologyDescriptor, deepCtx *domain.TechContext, detailed bool) (domain.GapAnalysis, error)
	Curriculum(ctx context.Context, profile domain.LearnerProfile, tech domain.TechnologyDescriptor, techCtx *domain.TechContext, gap domain.GapAnalysis, depth domain.CurriculumDepth) (*domain.Curriculum, error)
	StepResources(ctx context.Context, tech domain.TechnologyDescriptor, step domain.StepBlueprint, prefersKorean bool) ([]domain.LearningResource, error)
	HybridMix(ctx context.Context, profile domain.LearnerProfile, tech domain.TechnologyDescriptor) ([]planning.CurriculumMode, error)
}

type contentOracle struct {
	log *logger.Logger
	ai  openai.Client
}

func NewContentOracle(baseLog *logger.Logger, ai openai.Client) ContentOracle {
	return &contentOracle{log: baseLog.With("service", "ContentOracle"), ai: ai}
}

func (o *contentOracle) generate(ctx context.Context, p prompts.Prompt, out any) error {
	obj, err := o.ai.GenerateJSON(ctx, p.System, p.User, p.SchemaName, p.Schema)
	if err != nil {
		return fmt.Errorf("oracle %s: %w", p.Name, err)
	}
	raw, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("oracle %s: marshal artifact: %w", p.Name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("oracle %s: decode artifact: %w", p.Name, err)
	}
	return nil
}

func (o *contentOracle) TechContext(ctx context.Context, tech domain.TechnologyDescriptor, depth domain.ContextDepth) (*domain.TechContext, error) {
	var tc domain.TechContext
	if err := o.generate(ctx, prompts.TechContext(tech, depth), &tc); err != nil {
		return nil, err
	}
	tc.Depth = depth
	return &tc, nil
}

func (o *contentOracle) GapAnalysis(ctx context.Context, profile domain.LearnerProfile, tech domain.TechnologyDescriptor, deepCtx *domain.TechContext, detailed bool) (domain.GapAnalysis, error) {
	var gap domain.GapAnalysis
	if err := o.generate(ctx, prompts.GapAnalysis(profile, tech, deepCtx, detailed), &gap); err != nil {
		return domain.GapAnalysis{}, err
	}
	if detailed {
		gap.Kind = domain.GapDetailed
		return gap, nil
	}
	gap.Kind = domain.GapQuick
	// Quick shape bounds: at most 5 gaps, at most 3 strengths.
	if len(gap.Gaps) > 5 {
		gap.Gaps = gap.Gaps[:5]
	}
	if len(gap.Strengths) > 3 {
		gap.Strengths = gap.Strengths[:3]
	}
	gap.HasGaps = len(gap.Gaps) > 0
	return gap, nil
}

func (o *contentOracle) Curriculum(ctx context.Context, profile domain.LearnerProfile, tech domain.TechnologyDescriptor, techCtx *domain.TechContext, gap domain.GapAnalysis, depth domain.CurriculumDepth) (*domain.Curriculum, error) {
	var payload struct {
		Steps []domain.StepBlueprint `json:"steps"`
	}
	if err := o.generate(ctx, prompts.Curriculum(profile, tech, techCtx, gap, depth), &payload); err != nil {
		return nil, err
	}

	// The model occasionally misnumbers; keep its ordering intent but
	// renumber contiguously before the constructor validates.
	sort.SliceStable(payload.Steps, func(i, j int) bool {
		return payload.Steps[i].Order < payload.Steps[j].Order
	})
	for i := range payload.Steps {
		payload.Steps[i].Order = i + 1
		if payload.Steps[i].Prerequisites == nil {
			payload.Steps[i].Prerequisites = []string{}
		}
		if payload.Steps[i].KeyTopics == nil {
			payload.Steps[i].KeyTopics = []string{}
		}
	}

	cur, err := domain.NewCurriculum(depth, payload.Steps)
	if err != nil {
		return nil, fmt.Errorf("oracle %s: invalid curriculum: %w", prompts.PromptCurriculum, err)
	}
	return cur, nil
}

func (o *contentOracle) StepResources(ctx context.Context, tech domain.TechnologyDescriptor, step domain.StepBlueprint, prefersKorean bool) ([]domain.LearningResource, error) {
	var payload struct {
		Resources []domain.LearningResource `json:"resources"`
	}
	if err := o.generate(ctx, prompts.StepResources(tech, step, prefersKorean), &payload); err != nil {
		return nil, err
	}
	if payload.Resources == nil {
		payload.Resources = []domain.LearningResource{}
	}
	return payload.Resources, nil
}

func (o *contentOracle) HybridMix(ctx context.Context, profile domain.LearnerProfile, tech domain.TechnologyDescriptor) ([]planning.CurriculumMode, error) {
	var payload struct {
		Mix []string `json:"mix"`
	}
	if err := o.generate(ctx, prompts.HybridMix(profile, tech), &payload); err != nil {
		return nil, err
	}
	mix := planning.ParseMix(payload.Mix)
	if len(mix) == 0 {
		return nil, fmt.Errorf("oracle %s: empty mix", prompts.PromptHybridMix)
	}
	return mix, nil
}
