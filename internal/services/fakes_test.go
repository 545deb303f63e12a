package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	types "github.com/dmelchor/symreg-backend/internal/domain"
	"github.com/dmelchor/symreg-backend/internal/platform/dbctx"
)

// stubRunner runs the unit-of-work body without a real transaction; the
// fake repos below hold state in memory.
type stubRunner struct{}

func (stubRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	return fn(dbctx.Context{Ctx: ctx})
}

type fakeBusinessRepo struct {
	rows map[int64]*types.Business

	// raceWinner simulates a concurrent creator on another node: the first
	// lookup misses, the insert hits the unique constraint, and the winner
	// row is visible from then on.
	raceWinner *types.Business
}

func newFakeBusinessRepo() *fakeBusinessRepo {
	return &fakeBusinessRepo{rows: map[int64]*types.Business{}}
}

func (f *fakeBusinessRepo) GetByID(dbc dbctx.Context, id int64) (*types.Business, error) {
	if b, ok := f.rows[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeBusinessRepo) Create(dbc dbctx.Context, business *types.Business) (*types.Business, error) {
	if f.raceWinner != nil && f.raceWinner.ID == business.ID {
		f.rows[business.ID] = f.raceWinner
		f.raceWinner = nil
		return nil, gorm.ErrDuplicatedKey
	}
	if _, ok := f.rows[business.ID]; ok {
		return nil, gorm.ErrDuplicatedKey
	}
	cp := *business
	cp.CreatedAt = time.Now().UTC()
	f.rows[business.ID] = &cp
	return business, nil
}

type fakeSymptomRepo struct {
	nextID int64
	rows   map[[2]string]*types.Symptom

	raceWinner *types.Symptom
	updates    int
}

func newFakeSymptomRepo() *fakeSymptomRepo {
	return &fakeSymptomRepo{rows: map[[2]string]*types.Symptom{}}
}

func (f *fakeSymptomRepo) GetByCodeName(dbc dbctx.Context, code, name string) (*types.Symptom, error) {
	if s, ok := f.rows[[2]string{code, name}]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeSymptomRepo) Create(dbc dbctx.Context, symptom *types.Symptom) (*types.Symptom, error) {
	key := [2]string{symptom.Code, symptom.Name}
	if f.raceWinner != nil && f.raceWinner.Code == symptom.Code && f.raceWinner.Name == symptom.Name {
		f.rows[key] = f.raceWinner
		f.raceWinner = nil
		return nil, gorm.ErrDuplicatedKey
	}
	if _, ok := f.rows[key]; ok {
		return nil, gorm.ErrDuplicatedKey
	}
	f.nextID++
	cp := *symptom
	cp.ID = f.nextID
	f.rows[key] = &cp
	symptom.ID = cp.ID
	return symptom, nil
}

func (f *fakeSymptomRepo) UpdateDiagnostic(dbc dbctx.Context, id int64, diagnostic bool) error {
	for _, s := range f.rows {
		if s.ID == id {
			s.Diagnostic = diagnostic
			f.updates++
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeAssociationRepo struct {
	nextID int64
	rows   map[[2]int64]*types.Association
}

func newFakeAssociationRepo() *fakeAssociationRepo {
	return &fakeAssociationRepo{rows: map[[2]int64]*types.Association{}}
}

func (f *fakeAssociationRepo) GetByPair(dbc dbctx.Context, businessID, symptomID int64) (*types.Association, error) {
	if a, ok := f.rows[[2]int64{businessID, symptomID}]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeAssociationRepo) Create(dbc dbctx.Context, association *types.Association) (*types.Association, error) {
	key := [2]int64{association.BusinessID, association.SymptomID}
	if _, ok := f.rows[key]; ok {
		return nil, gorm.ErrDuplicatedKey
	}
	f.nextID++
	cp := *association
	cp.ID = f.nextID
	f.rows[key] = &cp
	association.ID = cp.ID
	return association, nil
}

type fakeBatchRepo struct {
	batches []*types.UploadBatch
}

func (f *fakeBatchRepo) Create(dbc dbctx.Context, batch *types.UploadBatch) (*types.UploadBatch, error) {
	batch.ID = int64(len(f.batches) + 1)
	f.batches = append(f.batches, batch)
	return batch, nil
}

type fakeStagingRepo struct {
	records []*types.StagingRecord

	recordErrFailures int
}

func (f *fakeStagingRepo) Append(dbc dbctx.Context, records []*types.StagingRecord) ([]*types.StagingRecord, error) {
	for i, rec := range records {
		rec.ID = int64(len(f.records) + i + 1)
	}
	f.records = append(f.records, records...)
	return records, nil
}

func (f *fakeStagingRepo) ScanUnprocessed(dbc dbctx.Context) ([]*types.StagingRecord, error) {
	var out []*types.StagingRecord
	for _, rec := range f.records {
		if rec.IngestedAt == nil {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeStagingRepo) MarkIngested(dbc dbctx.Context, id int64, at time.Time) error {
	for _, rec := range f.records {
		if rec.ID == id {
			rec.IngestedAt = &at
			empty := ""
			rec.LastError = &empty
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeStagingRepo) RecordError(dbc dbctx.Context, id int64, msg string) error {
	if f.recordErrFailures > 0 {
		f.recordErrFailures--
		return gorm.ErrInvalidDB
	}
	for _, rec := range f.records {
		if rec.ID == id {
			cp := msg
			rec.LastError = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}
