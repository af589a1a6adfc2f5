package planning

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/planweave/planweave-backend/internal/domain"
	"github.com/planweave/planweave-backend/internal/pkg/dbctx"
	"github.com/planweave/planweave-backend/internal/platform/logger"
)

type TechnologyRepo interface {
	// FindByKey returns nil with no error when the key has no catalog row.
	FindByKey(dbc dbctx.Context, key string) (*domain.Technology, error)
	UpsertByKey(dbc dbctx.Context, rows []*domain.Technology) error
	Count(dbc dbctx.Context) (int64, error)
}

type technologyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTechnologyRepo(db *gorm.DB, baseLog *logger.Logger) TechnologyRepo {
	return &technologyRepo{db: db, log: baseLog.With("repo", "TechnologyRepo")}
}

func (r *technologyRepo) conn(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

func (r *technologyRepo) FindByKey(dbc dbctx.Context, key string) (*domain.Technology, error) {
	if key == "" {
		return nil, nil
	}
	var row domain.Technology
	err := r.conn(dbc).WithContext(dbc.Ctx).Where("key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *technologyRepo) UpsertByKey(dbc dbctx.Context, rows []*domain.Technology) error {
	if len(rows) == 0 {
		return nil
	}
	return r.conn(dbc).WithContext(dbc.Ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"display_name", "category", "ecosystem", "official_site", "updated_at"}),
	}).Create(&rows).Error
}

func (r *technologyRepo) Count(dbc dbctx.Context) (int64, error) {
	var n int64
	if err := r.conn(dbc).WithContext(dbc.Ctx).Model(&domain.Technology{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
