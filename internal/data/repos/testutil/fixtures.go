package testutil

import (
	"context"
	"testing"

	"gorm.io/gorm"

	types "github.com/dmelchor/symreg-backend/internal/domain"
)

func SeedStagingRecord(tb testing.TB, ctx context.Context, tx *gorm.DB, businessID, businessName, code, name, diagnostic string) *types.StagingRecord {
	tb.Helper()
	rec := &types.StagingRecord{
		BusinessIDRaw:        businessID,
		BusinessNameRaw:      businessName,
		SymptomCodeRaw:       code,
		SymptomNameRaw:       name,
		SymptomDiagnosticRaw: diagnostic,
	}
	if err := tx.WithContext(ctx).Create(rec).Error; err != nil {
		tb.Fatalf("seed staging record: %v", err)
	}
	return rec
}

func SeedBusiness(tb testing.TB, ctx context.Context, tx *gorm.DB, id int64, name string) *types.Business {
	tb.Helper()
	b := &types.Business{
		ID:             id,
		Name:           name,
		SourceRecordID: 1,
	}
	if err := tx.WithContext(ctx).Create(b).Error; err != nil {
		tb.Fatalf("seed business: %v", err)
	}
	return b
}

func SeedSymptom(tb testing.TB, ctx context.Context, tx *gorm.DB, code, name string, diagnostic bool) *types.Symptom {
	tb.Helper()
	s := &types.Symptom{
		Code:           code,
		Name:           name,
		Diagnostic:     diagnostic,
		SourceRecordID: 1,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed symptom: %v", err)
	}
	return s
}

func SeedAssociation(tb testing.TB, ctx context.Context, tx *gorm.DB, businessID, symptomID int64) *types.Association {
	tb.Helper()
	a := &types.Association{
		BusinessID:     businessID,
		SymptomID:      symptomID,
		SourceRecordID: 1,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed association: %v", err)
	}
	return a
}
