package registry

import (
	"errors"

	"gorm.io/gorm"

	types "github.com/dmelchor/symreg-backend/internal/domain"
	"github.com/dmelchor/symreg-backend/internal/platform/dbctx"
	"github.com/dmelchor/symreg-backend/internal/platform/logger"
)

type AssociationRepo interface {
	GetByPair(dbc dbctx.Context, businessID, symptomID int64) (*types.Association, error)
	Create(dbc dbctx.Context, association *types.Association) (*types.Association, error)
}

type associationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssociationRepo(db *gorm.DB, baseLog *logger.Logger) AssociationRepo {
	return &associationRepo{
		db:  db,
		log: baseLog.With("repo", "AssociationRepo"),
	}
}

func (r *associationRepo) GetByPair(dbc dbctx.Context, businessID, symptomID int64) (*types.Association, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var association types.Association
	err := transaction.WithContext(dbc.Ctx).
		Where("business_id = ? AND symptom_id = ?", businessID, symptomID).
		First(&association).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &association, nil
}

func (r *associationRepo) Create(dbc dbctx.Context, association *types.Association) (*types.Association, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(dbc.Ctx).Create(association).Error; err != nil {
		return nil, err
	}
	return association, nil
}
