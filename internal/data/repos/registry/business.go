package registry

import (
	"errors"

	"gorm.io/gorm"

	types "github.com/dmelchor/symreg-backend/internal/domain"
	"github.com/dmelchor/symreg-backend/internal/platform/dbctx"
	"github.com/dmelchor/symreg-backend/internal/platform/logger"
)

type BusinessRepo interface {
	GetByID(dbc dbctx.Context, id int64) (*types.Business, error)
	Create(dbc dbctx.Context, business *types.Business) (*types.Business, error)
}

type businessRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBusinessRepo(db *gorm.DB, baseLog *logger.Logger) BusinessRepo {
	return &businessRepo{
		db:  db,
		log: baseLog.With("repo", "BusinessRepo"),
	}
}

func (r *businessRepo) GetByID(dbc dbctx.Context, id int64) (*types.Business, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var business types.Business
	err := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		First(&business).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *businessRepo) Create(dbc dbctx.Context, business *types.Business) (*types.Business, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(dbc.Ctx).Create(business).Error; err != nil {
		return nil, err
	}
	return business, nil
}
