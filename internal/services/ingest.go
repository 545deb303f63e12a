package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmelchor/symreg-backend/internal/data/repos/staging"
	types "github.com/dmelchor/symreg-backend/internal/domain"
	"github.com/dmelchor/symreg-backend/internal/platform/dbctx"
	"github.com/dmelchor/symreg-backend/internal/platform/logger"
)

// IngestService drives one pass over unprocessed staging rows. Records are
// processed sequentially; within one record the business and symptom
// resolutions run concurrently. Each record's outcome commits on its own,
// so an interrupted pass leaves nothing half-done, and one bad record never
// blocks the rest.
type IngestService interface {
	RunPass(ctx context.Context) (*PassResult, error)
}

// PassResult summarizes one ingest pass for logging and diagnostics.
type PassResult struct {
	Scanned  int
	Ingested int
	Failed   int
}

type ingestService struct {
	log      *logger.Logger
	records  staging.StagingRecordRepo
	resolver ResolverService
}

func NewIngestService(
	baseLog *logger.Logger,
	records staging.StagingRecordRepo,
	resolver ResolverService,
) IngestService {
	return &ingestService{
		log:      baseLog.With("service", "IngestService"),
		records:  records,
		resolver: resolver,
	}
}

func (s *ingestService) RunPass(ctx context.Context) (*PassResult, error) {
	records, err := s.records.ScanUnprocessed(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, err
	}

	result := &PassResult{Scanned: len(records)}
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			// Interrupted between records; everything committed so far
			// stands, the rest waits for the next pass.
			return result, err
		}
		if err := s.ingestOne(ctx, rec); err != nil {
			result.Failed++
			s.recordFailure(ctx, rec, err)
			continue
		}
		result.Ingested++
	}

	s.log.Info("ingest pass complete",
		"scanned", result.Scanned,
		"ingested", result.Ingested,
		"failed", result.Failed,
	)
	return result, nil
}

func (s *ingestService) ingestOne(ctx context.Context, rec *types.StagingRecord) error {
	// Business and symptom resolution touch disjoint entity sets and may
	// proceed in parallel. The association needs both results.
	var businessID, symptomID int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		id, err := s.resolver.GetOrCreateBusiness(gctx, rec)
		if err != nil {
			return err
		}
		businessID = id
		return nil
	})
	g.Go(func() error {
		id, err := s.resolver.GetOrCreateSymptom(gctx, rec)
		if err != nil {
			return err
		}
		symptomID = id
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if _, err := s.resolver.GetOrCreateAssociation(ctx, businessID, symptomID, rec.ID); err != nil {
		return err
	}

	return s.records.MarkIngested(dbctx.Context{Ctx: ctx}, rec.ID, time.Now().UTC())
}

// recordFailure writes the failure onto the staging row. A second-level
// failure here is logged and swallowed; it must not abort the pass.
func (s *ingestService) recordFailure(ctx context.Context, rec *types.StagingRecord, cause error) {
	s.log.Warn("record failed to ingest", "record_id", rec.ID, "error", cause)
	if err := s.records.RecordError(dbctx.Context{Ctx: ctx}, rec.ID, cause.Error()); err != nil {
		s.log.Error("could not record ingest error", "record_id", rec.ID, "error", err)
	}
}
