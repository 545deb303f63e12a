package registry

import (
	"errors"

	"gorm.io/gorm"

	types "github.com/dmelchor/symreg-backend/internal/domain"
	"github.com/dmelchor/symreg-backend/internal/platform/dbctx"
	"github.com/dmelchor/symreg-backend/internal/platform/logger"
)

type SymptomRepo interface {
	GetByCodeName(dbc dbctx.Context, code, name string) (*types.Symptom, error)
	Create(dbc dbctx.Context, symptom *types.Symptom) (*types.Symptom, error)
	UpdateDiagnostic(dbc dbctx.Context, id int64, diagnostic bool) error
}

type symptomRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSymptomRepo(db *gorm.DB, baseLog *logger.Logger) SymptomRepo {
	return &symptomRepo{
		db:  db,
		log: baseLog.With("repo", "SymptomRepo"),
	}
}

func (r *symptomRepo) GetByCodeName(dbc dbctx.Context, code, name string) (*types.Symptom, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var symptom types.Symptom
	err := transaction.WithContext(dbc.Ctx).
		Where("code = ? AND name = ?", code, name).
		First(&symptom).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &symptom, nil
}

func (r *symptomRepo) Create(dbc dbctx.Context, symptom *types.Symptom) (*types.Symptom, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(dbc.Ctx).Create(symptom).Error; err != nil {
		return nil, err
	}
	return symptom, nil
}

func (r *symptomRepo) UpdateDiagnostic(dbc dbctx.Context, id int64, diagnostic bool) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx).
		Model(&types.Symptom{}).
		Where("id = ?", id).
		Update("diagnostic", diagnostic).Error
}
