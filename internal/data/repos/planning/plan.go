package planning

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/planweave/planweave-backend/internal/domain"
	"github.com/planweave/planweave-backend/internal/pkg/dbctx"
	"github.com/planweave/planweave-backend/internal/platform/logger"
)

type LearningPlanRepo interface {
	Create(dbc dbctx.Context, rows []*domain.LearningPlan) ([]*domain.LearningPlan, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.LearningPlan, error)
	ListByMember(dbc dbctx.Context, memberID uuid.UUID) ([]*domain.LearningPlan, error)
	SoftDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type learningPlanRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningPlanRepo(db *gorm.DB, baseLog *logger.Logger) LearningPlanRepo {
	return &learningPlanRepo{db: db, log: baseLog.With("repo", "LearningPlanRepo")}
}

func (r *learningPlanRepo) conn(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

func (r *learningPlanRepo) Create(dbc dbctx.Context, rows []*domain.LearningPlan) ([]*domain.LearningPlan, error) {
	if len(rows) == 0 {
		return []*domain.LearningPlan{}, nil
	}
	if err := r.conn(dbc).WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *learningPlanRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.LearningPlan, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row domain.LearningPlan
	err := r.conn(dbc).WithContext(dbc.Ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *learningPlanRepo) ListByMember(dbc dbctx.Context, memberID uuid.UUID) ([]*domain.LearningPlan, error) {
	var rows []*domain.LearningPlan
	if memberID == uuid.Nil {
		return rows, nil
	}
	err := r.conn(dbc).WithContext(dbc.Ctx).
		Where("member_id = ?", memberID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *learningPlanRepo) SoftDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.conn(dbc).WithContext(dbc.Ctx).Where("id IN ?", ids).Delete(&domain.LearningPlan{}).Error
}
