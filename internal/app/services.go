package app

import (
	"gorm.io/gorm"

	redisclient "github.com/planweave/planweave-backend/internal/clients/redis"
	"github.com/planweave/planweave-backend/internal/pkg/parallel"
	"github.com/planweave/planweave-backend/internal/platform/logger"
	"github.com/planweave/planweave-backend/internal/platform/openai"
	"github.com/planweave/planweave-backend/internal/services"
)

type Services struct {
	Member         services.MemberService
	Catalog        services.TechnologyCatalogService
	Oracle         services.ContentOracle
	PlanGeneration services.PlanGenerationService
}

func wireServices(db *gorm.DB, log *logger.Logger, reposet Repos, pool *parallel.Pool, bus redisclient.PlanEventBus) (Services, error) {
	log.Info("wiring services")

	ai, err := openai.NewClient(log)
	if err != nil {
		return Services{}, err
	}
	oracle := services.NewContentOracle(log, ai)
	catalog := services.NewTechnologyCatalogService(log, reposet.Technology)

	return Services{
		Member:         services.NewMemberService(log, reposet.Member),
		Catalog:        catalog,
		Oracle:         oracle,
		PlanGeneration: services.NewPlanGenerationService(db, log, reposet.Member, reposet.LearningPlan, catalog, oracle, pool, bus),
	}, nil
}
