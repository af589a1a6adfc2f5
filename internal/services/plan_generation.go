package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/planweave/planweave-backend/internal/clients/redis"
	"github.com/planweave/planweave-backend/internal/data/repos"
	"github.com/planweave/planweave-backend/internal/domain"
	"github.com/planweave/planweave-backend/internal/modules/planning"
	"github.com/planweave/planweave-backend/internal/modules/planning/steps"
	"github.com/planweave/planweave-backend/internal/pkg/dbctx"
	"github.com/planweave/planweave-backend/internal/pkg/parallel"
	"github.com/planweave/planweave-backend/internal/platform/apierr"
	"github.com/planweave/planweave-backend/internal/platform/logger"
)

const (
	pathOracle = "oracle_curriculum"
	pathHybrid = "hybrid_composition"
)

// PlanGenerationService drives a full planning run: technology
// resolution, depth selection, the oracle-backed stage pipeline,
// optional hybrid composition, parallel resource enrichment, schedule
// allocation and finalization, then persists the result.
type PlanGenerationService interface {
	GeneratePlan(ctx context.Context, memberID uuid.UUID, technologyRef string) (*domain.LearningPlan, error)
	GetPlan(ctx context.Context, id uuid.UUID) (*domain.LearningPlan, error)
	ListMemberPlans(ctx context.Context, memberID uuid.UUID) ([]*domain.LearningPlan, error)
}

type planGenerationService struct {
	db  *gorm.DB
	log *logger.Logger

	memberRepo repos.MemberRepo
	planRepo   repos.LearningPlanRepo

	catalog TechnologyCatalogService
	oracle  ContentOracle
	pool    *parallel.Pool
	bus     redis.PlanEventBus
}

func NewPlanGenerationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	memberRepo repos.MemberRepo,
	planRepo repos.LearningPlanRepo,
	catalog TechnologyCatalogService,
	oracle ContentOracle,
	pool *parallel.Pool,
	bus redis.PlanEventBus,
) PlanGenerationService {
	return &planGenerationService{
		db:         db,
		log:        baseLog.With("service", "PlanGenerationService"),
		memberRepo: memberRepo,
		planRepo:   planRepo,
		catalog:    catalog,
		oracle:     oracle,
		pool:       pool,
		bus:        bus,
	}
}

func (s *planGenerationService) GeneratePlan(ctx context.Context, memberID uuid.UUID, technologyRef string) (*domain.LearningPlan, error) {
	member, err := s.memberRepo.GetByID(dbctx.From(ctx), memberID)
	if err != nil {
		return nil, fmt.Errorf("load member: %w", err)
	}
	if member == nil {
		return nil, apierr.NotFound("member_not_found", fmt.Errorf("member %s not found", memberID))
	}
	profile := member.Profile()
	if err := validateProfile(profile); err != nil {
		return nil, apierr.BadRequest("invalid_profile", err)
	}

	// Stage 1: resolve the technology reference. Validation failures
	// happen here, before any oracle call.
	tech, err := steps.TechResolve(ctx, steps.TechResolveDeps{Log: s.log, Catalog: s.catalog}, technologyRef)
	if err != nil {
		return nil, apierr.BadRequest("invalid_technology", err)
	}

	depthPlan := s.selectDepth(ctx, profile, tech)
	runLog := s.log.With("member_id", memberID.String(), "technology", tech.Key, "depth", depthPlan.Label())
	runLog.Info("planning run started",
		"analysis_mode", depthPlan.Analysis,
		"gap_mode", depthPlan.Gap,
		"curriculum_mode", depthPlan.Curriculum,
		"resource_mode", depthPlan.Resource,
		"hybrid", depthPlan.AllowHybrid,
	)

	run := steps.NewRun(steps.RunDeps{Log: runLog, Oracle: s.oracle, Pool: s.pool}, profile, tech, depthPlan)

	// Stage 2: background analysis. Fatal when its materialization fails.
	techCtx, err := run.RunAnalysis(ctx)
	if err != nil {
		return nil, apierr.Upstream("analysis_failed", err)
	}

	// Stage 3: gap analysis (or the explicit no-gap result).
	if _, err := run.RunGap(ctx); err != nil {
		return nil, apierr.Upstream("gap_analysis_failed", err)
	}

	// Stage 4: curriculum, either oracle-generated at the selected
	// depth or spliced from the hybrid mix.
	pathTaken := pathOracle
	var curriculum *domain.Curriculum
	if depthPlan.AllowHybrid && len(depthPlan.HybridMix) > 0 {
		pathTaken = pathHybrid
		blueprint := steps.ComposeHybrid(tech.DisplayName, depthPlan.HybridMix, profile.WeeklyHours(), profile.PrefersKoreanContent, profile.PreferredStyle)
		curriculum, err = domain.NewCurriculum(domain.CurriculumHybrid, blueprint)
		if err != nil {
			return nil, fmt.Errorf("compose hybrid curriculum: %w", err)
		}
	} else {
		curriculum, err = run.RunCurriculum(ctx)
		if err != nil {
			return nil, apierr.Upstream("curriculum_failed", err)
		}
	}

	// Stage 5: resource enrichment (order-preserving, failure-isolated).
	enriched, err := run.RunResources(ctx, curriculum)
	if err != nil {
		return nil, apierr.Upstream("enrichment_failed", err)
	}

	// Stages 6-7: schedule allocation and finalization.
	startDate := time.Now().UTC().Truncate(24 * time.Hour)
	schedule := steps.AllocateDailySchedule(startDate, profile.DailyCapacityMin, enriched.Steps)

	generated := steps.FinalizePlan(steps.FinalizeInput{
		Profile:           profile,
		Tech:              tech,
		Curriculum:        enriched,
		Schedule:          schedule,
		TechCtx:           techCtx,
		StartDate:         startDate,
		PathTaken:         pathTaken,
		DepthLabel:        depthPlan.Label(),
		GapAnalysisRan:    run.GapRan(),
		ResourcesEnriched: run.ResourcesEnriched(),
	})

	row, err := s.persist(ctx, generated)
	if err != nil {
		return nil, fmt.Errorf("persist plan: %w", err)
	}

	if s.bus != nil {
		if err := s.bus.Publish(ctx, redis.PlanEvent{
			Event:         "plan.generated",
			MemberID:      memberID.String(),
			PlanID:        row.ID.String(),
			TechnologyKey: tech.Key,
		}); err != nil {
			runLog.Warn("plan event publish failed (continuing)", "error", err)
		}
	}

	runLog.Info("planning run finished",
		"plan_id", row.ID.String(),
		"steps", len(generated.Steps),
		"total_hours", generated.TotalHours,
		"estimated_weeks", generated.EstimatedWeeks,
		"path", pathTaken,
	)
	return row, nil
}

// selectDepth derives the depth plan from the profile and, when hybrid
// composition is allowed, asks the oracle for the mix. Mix selection
// only tunes plan shape, so any oracle failure falls back to the fixed
// default mix instead of aborting.
func (s *planGenerationService) selectDepth(ctx context.Context, profile domain.LearnerProfile, tech domain.TechnologyDescriptor) planning.DepthPlan {
	plan := planning.SelectDepthPlan(profile)
	if !plan.AllowHybrid {
		return plan
	}
	mix, err := s.oracle.HybridMix(ctx, profile, tech)
	if err != nil {
		s.log.Warn("hybrid mix selection failed, using default mix", "technology", tech.Key, "error", err)
		mix = planning.DefaultHybridMix()
	}
	plan.HybridMix = mix
	return plan
}

func (s *planGenerationService) persist(ctx context.Context, plan domain.GeneratedLearningPlan) (*domain.LearningPlan, error) {
	stepsJSON, err := json.Marshal(plan.Steps)
	if err != nil {
		return nil, fmt.Errorf("marshal steps: %w", err)
	}
	scheduleJSON, err := json.Marshal(plan.Schedule)
	if err != nil {
		return nil, fmt.Errorf("marshal schedule: %w", err)
	}
	metadataJSON, err := json.Marshal(plan.Metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}

	row := &domain.LearningPlan{
		ID:                 uuid.New(),
		MemberID:           plan.MemberID,
		TechnologyKey:      plan.TechnologyKey,
		TechnologyName:     plan.TechnologyName,
		Title:              plan.Title,
		Description:        plan.Description,
		BackgroundAnalysis: plan.BackgroundAnalysis,
		TotalHours:         plan.TotalHours,
		EstimatedWeeks:     plan.EstimatedWeeks,
		StartDate:          plan.StartDate,
		TargetEndDate:      plan.TargetEndDate,
		Steps:              datatypes.JSON(stepsJSON),
		Schedule:           datatypes.JSON(scheduleJSON),
		Metadata:           datatypes.JSON(metadataJSON),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := s.planRepo.Create(dbctx.Context{Ctx: ctx, Tx: tx}, []*domain.LearningPlan{row})
		return err
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (s *planGenerationService) GetPlan(ctx context.Context, id uuid.UUID) (*domain.LearningPlan, error) {
	row, err := s.planRepo.GetByID(dbctx.From(ctx), id)
	if err != nil {
		return nil, fmt.Errorf("load plan: %w", err)
	}
	if row == nil {
		return nil, apierr.New(http.StatusNotFound, "plan_not_found", fmt.Errorf("plan %s not found", id))
	}
	return row, nil
}

func (s *planGenerationService) ListMemberPlans(ctx context.Context, memberID uuid.UUID) ([]*domain.LearningPlan, error) {
	return s.planRepo.ListByMember(dbctx.From(ctx), memberID)
}

func validateProfile(p domain.LearnerProfile) error {
	if !p.ExperienceLevel.Valid() {
		return fmt.Errorf("unknown experience level %q", p.ExperienceLevel)
	}
	if p.WeeklyCapacityMin < 0 {
		return fmt.Errorf("weekly capacity must not be negative")
	}
	if p.DailyCapacityMin < 0 {
		return fmt.Errorf("daily capacity must not be negative")
	}
	if p.KnownSkillCount < 0 {
		return fmt.Errorf("known skill count must not be negative")
	}
	return nil
}
