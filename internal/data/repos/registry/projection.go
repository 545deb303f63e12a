package registry

import (
	"database/sql"

	"gorm.io/gorm"

	types "github.com/dmelchor/symreg-backend/internal/domain"
	"github.com/dmelchor/symreg-backend/internal/platform/dbctx"
	"github.com/dmelchor/symreg-backend/internal/platform/logger"
)

// ProjectionFilter carries the optional fetch filters. Nil means "no
// constraint"; when both are set they combine with AND.
type ProjectionFilter struct {
	BusinessID *int64
	Diagnostic *bool
}

// ProjectionRow is one joined business/symptom/association result.
type ProjectionRow struct {
	BusinessID   int64
	BusinessName string
	SymptomCode  string
	SymptomName  string
	Diagnostic   bool
}

type ProjectionRepo interface {
	// Rows returns a live cursor over the three-way join. The caller owns
	// the cursor and must Close it; results are never buffered here because
	// the result set is unbounded.
	Rows(dbc dbctx.Context, filter ProjectionFilter) (*sql.Rows, error)
	Scan(rows *sql.Rows) (*ProjectionRow, error)
}

type projectionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProjectionRepo(db *gorm.DB, baseLog *logger.Logger) ProjectionRepo {
	return &projectionRepo{
		db:  db,
		log: baseLog.With("repo", "ProjectionRepo"),
	}
}

func (r *projectionRepo) Rows(dbc dbctx.Context, filter ProjectionFilter) (*sql.Rows, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(dbc.Ctx).
		Model(&types.Business{}).
		Select("business.id, business.name, symptom.code, symptom.name, symptom.diagnostic").
		Joins("INNER JOIN business_symptom_association ON business_symptom_association.business_id = business.id").
		Joins("INNER JOIN symptom ON business_symptom_association.symptom_id = symptom.id")
	if filter.BusinessID != nil {
		q = q.Where("business.id = ?", *filter.BusinessID)
	}
	if filter.Diagnostic != nil {
		q = q.Where("symptom.diagnostic = ?", *filter.Diagnostic)
	}
	return q.Rows()
}

func (r *projectionRepo) Scan(rows *sql.Rows) (*ProjectionRow, error) {
	var row ProjectionRow
	if err := rows.Scan(
		&row.BusinessID,
		&row.BusinessName,
		&row.SymptomCode,
		&row.SymptomName,
		&row.Diagnostic,
	); err != nil {
		return nil, err
	}
	return &row, nil
}
