package services

import (
	"context"

	"github.com/dmelchor/symreg-backend/internal/data/repos/registry"
	"github.com/dmelchor/symreg-backend/internal/data/uow"
	"github.com/dmelchor/symreg-backend/internal/platform/dbctx"
	"github.com/dmelchor/symreg-backend/internal/platform/logger"
)

// FetchService projects the normalized tables for external consumption.
// Results go through emit one row at a time; the full set is never held in
// memory because its size is unbounded relative to request cost.
type FetchService interface {
	Stream(ctx context.Context, filter registry.ProjectionFilter, emit func(row *registry.ProjectionRow) error) error
}

type fetchService struct {
	runner     uow.Runner
	log        *logger.Logger
	projection registry.ProjectionRepo
}

func NewFetchService(
	runner uow.Runner,
	baseLog *logger.Logger,
	projection registry.ProjectionRepo,
) FetchService {
	return &fetchService{
		runner:     runner,
		log:        baseLog.With("service", "FetchService"),
		projection: projection,
	}
}

func (s *fetchService) Stream(ctx context.Context, filter registry.ProjectionFilter, emit func(row *registry.ProjectionRow) error) error {
	// One unit of work per call keeps the cursor on a single session for
	// the duration of the stream.
	return s.runner.InTx(ctx, func(dbc dbctx.Context) error {
		rows, err := s.projection.Rows(dbc, filter)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			row, err := s.projection.Scan(rows)
			if err != nil {
				return err
			}
			if err := emit(row); err != nil {
				return err
			}
		}
		return rows.Err()
	})
}
