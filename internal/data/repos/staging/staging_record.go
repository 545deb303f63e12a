package staging

import (
	"time"

	"gorm.io/gorm"

	types "github.com/dmelchor/symreg-backend/internal/domain"
	"github.com/dmelchor/symreg-backend/internal/platform/dbctx"
	"github.com/dmelchor/symreg-backend/internal/platform/logger"
)

type StagingRecordRepo interface {
	Append(dbc dbctx.Context, records []*types.StagingRecord) ([]*types.StagingRecord, error)
	ScanUnprocessed(dbc dbctx.Context) ([]*types.StagingRecord, error)
	MarkIngested(dbc dbctx.Context, id int64, at time.Time) error
	RecordError(dbc dbctx.Context, id int64, msg string) error
}

type stagingRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStagingRecordRepo(db *gorm.DB, baseLog *logger.Logger) StagingRecordRepo {
	return &stagingRecordRepo{
		db:  db,
		log: baseLog.With("repo", "StagingRecordRepo"),
	}
}

// Append never inspects record content. The staging layer accepts whatever
// the upload handed over; validation happens at ingest time.
func (r *stagingRecordRepo) Append(dbc dbctx.Context, records []*types.StagingRecord) ([]*types.StagingRecord, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(records) == 0 {
		return []*types.StagingRecord{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *stagingRecordRepo) ScanUnprocessed(dbc dbctx.Context) ([]*types.StagingRecord, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.StagingRecord
	if err := transaction.WithContext(dbc.Ctx).
		Where("ingested_at IS NULL").
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *stagingRecordRepo) MarkIngested(dbc dbctx.Context, id int64, at time.Time) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx).
		Model(&types.StagingRecord{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"ingested_at": at,
			"last_error":  "",
		}).Error
}

// RecordError overwrites last_error and leaves ingested_at untouched, so
// the record stays eligible for the next pass.
func (r *stagingRecordRepo) RecordError(dbc dbctx.Context, id int64, msg string) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if r := []rune(msg); len(r) > 1000 {
		msg = string(r[:1000])
	}
	return transaction.WithContext(dbc.Ctx).
		Model(&types.StagingRecord{}).
		Where("id = ?", id).
		Update("last_error", msg).Error
}
