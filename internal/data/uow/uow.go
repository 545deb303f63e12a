package uow

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/dmelchor/symreg-backend/internal/platform/dbctx"
)

// Runner is the shared unit-of-work primitive. Each InTx call opens its own
// root-level transaction against the pool and commits (or rolls back) on
// exit, so independently-acquired units never share fate. The ingest
// resolvers lean on this: every get-or-create is its own unit, committed
// before the caller proceeds.
type Runner interface {
	InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error
}

type gormRunner struct {
	db *gorm.DB
}

// NewGormRunner returns a unit-of-work runner backed by GORM transactions.
func NewGormRunner(db *gorm.DB) Runner {
	return &gormRunner{db: db}
}

func (r *gormRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	if fn == nil {
		return nil
	}
	if r == nil || r.db == nil {
		return fmt.Errorf("unit of work: nil db")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbctx.Context{Ctx: ctx, Tx: tx})
	})
}
