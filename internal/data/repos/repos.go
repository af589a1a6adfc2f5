package repos

import (
	"gorm.io/gorm"

	"github.com/planweave/planweave-backend/internal/data/repos/planning"
	"github.com/planweave/planweave-backend/internal/platform/logger"
)

type MemberRepo = planning.MemberRepo
type TechnologyRepo = planning.TechnologyRepo
type LearningPlanRepo = planning.LearningPlanRepo

func NewMemberRepo(db *gorm.DB, log *logger.Logger) MemberRepo {
	return planning.NewMemberRepo(db, log)
}

func NewTechnologyRepo(db *gorm.DB, log *logger.Logger) TechnologyRepo {
	return planning.NewTechnologyRepo(db, log)
}

func NewLearningPlanRepo(db *gorm.DB, log *logger.Logger) LearningPlanRepo {
	return planning.NewLearningPlanRepo(db, log)
}
