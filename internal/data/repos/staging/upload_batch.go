package staging

import (
	"gorm.io/gorm"

	types "github.com/dmelchor/symreg-backend/internal/domain"
	"github.com/dmelchor/symreg-backend/internal/platform/dbctx"
	"github.com/dmelchor/symreg-backend/internal/platform/logger"
)

type UploadBatchRepo interface {
	Create(dbc dbctx.Context, batch *types.UploadBatch) (*types.UploadBatch, error)
}

type uploadBatchRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUploadBatchRepo(db *gorm.DB, baseLog *logger.Logger) UploadBatchRepo {
	return &uploadBatchRepo{
		db:  db,
		log: baseLog.With("repo", "UploadBatchRepo"),
	}
}

func (r *uploadBatchRepo) Create(dbc dbctx.Context, batch *types.UploadBatch) (*types.UploadBatch, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if batch == nil {
		return nil, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(batch).Error; err != nil {
		return nil, err
	}
	return batch, nil
}
