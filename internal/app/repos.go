package app

import (
	"gorm.io/gorm"

	"github.com/planweave/planweave-backend/internal/data/repos"
	"github.com/planweave/planweave-backend/internal/platform/logger"
)

type Repos struct {
	Member       repos.MemberRepo
	Technology   repos.TechnologyRepo
	LearningPlan repos.LearningPlanRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("wiring repos")
	return Repos{
		Member:       repos.NewMemberRepo(db, log),
		Technology:   repos.NewTechnologyRepo(db, log),
		LearningPlan: repos.NewLearningPlanRepo(db, log),
	}
}
