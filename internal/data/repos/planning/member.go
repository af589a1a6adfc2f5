package planning

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/planweave/planweave-backend/internal/domain"
	"github.com/planweave/planweave-backend/internal/pkg/dbctx"
	"github.com/planweave/planweave-backend/internal/platform/logger"
)

type MemberRepo interface {
	Create(dbc dbctx.Context, rows []*domain.Member) ([]*domain.Member, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Member, error)
	Update(dbc dbctx.Context, row *domain.Member) error
	SoftDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type memberRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMemberRepo(db *gorm.DB, baseLog *logger.Logger) MemberRepo {
	return &memberRepo{db: db, log: baseLog.With("repo", "MemberRepo")}
}

func (r *memberRepo) conn(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

func (r *memberRepo) Create(dbc dbctx.Context, rows []*domain.Member) ([]*domain.Member, error) {
	if len(rows) == 0 {
		return []*domain.Member{}, nil
	}
	if err := r.conn(dbc).WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *memberRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Member, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row domain.Member
	err := r.conn(dbc).WithContext(dbc.Ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *memberRepo) Update(dbc dbctx.Context, row *domain.Member) error {
	if row == nil || row.ID == uuid.Nil {
		return errors.New("member row with id required")
	}
	return r.conn(dbc).WithContext(dbc.Ctx).Save(row).Error
}

func (r *memberRepo) SoftDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.conn(dbc).WithContext(dbc.Ctx).Where("id IN ?", ids).Delete(&domain.Member{}).Error
}
