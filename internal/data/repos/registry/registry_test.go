package registry

import (
	"context"
	"testing"

	"github.com/dmelchor/symreg-backend/internal/data/repos/testutil"
	types "github.com/dmelchor/symreg-backend/internal/domain"
	"github.com/dmelchor/symreg-backend/internal/platform/dbctx"
)

func TestBusinessRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewBusinessRepo(db, testutil.Logger(t))

	got, err := repo.GetByID(dbc, 424242)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for absent business, got %+v", got)
	}

	created, err := repo.Create(dbc, &types.Business{ID: 424242, Name: "Acme Co", SourceRecordID: 1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != 424242 {
		t.Fatalf("external id not preserved: %d", created.ID)
	}

	got, err = repo.GetByID(dbc, 424242)
	if err != nil || got == nil {
		t.Fatalf("GetByID after create: %v, %+v", err, got)
	}
	if got.Name != "Acme Co" {
		t.Fatalf("Name = %q", got.Name)
	}
}

func TestSymptomRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewSymptomRepo(db, testutil.Logger(t))

	got, err := repo.GetByCodeName(dbc, "S1", "Cough")
	if err != nil {
		t.Fatalf("GetByCodeName: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for absent symptom")
	}

	created, err := repo.Create(dbc, &types.Symptom{Code: "S1", Name: "Cough", Diagnostic: true, SourceRecordID: 1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("surrogate id not assigned")
	}

	// (code, name) is the identity pair: same code with another name is a
	// different symptom.
	other, err := repo.Create(dbc, &types.Symptom{Code: "S1", Name: "Dry Cough", SourceRecordID: 1})
	if err != nil {
		t.Fatalf("Create sibling: %v", err)
	}
	if other.ID == created.ID {
		t.Fatalf("sibling symptom shares id")
	}

	if err := repo.UpdateDiagnostic(dbc, created.ID, false); err != nil {
		t.Fatalf("UpdateDiagnostic: %v", err)
	}
	got, err = repo.GetByCodeName(dbc, "S1", "Cough")
	if err != nil || got == nil {
		t.Fatalf("GetByCodeName after update: %v", err)
	}
	if got.Diagnostic {
		t.Fatalf("diagnostic flag not updated")
	}
}

func TestAssociationRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	business := testutil.SeedBusiness(t, ctx, tx, 515151, "Acme Co")
	symptom := testutil.SeedSymptom(t, ctx, tx, "S9", "Fever", false)

	repo := NewAssociationRepo(db, testutil.Logger(t))

	got, err := repo.GetByPair(dbc, business.ID, symptom.ID)
	if err != nil {
		t.Fatalf("GetByPair: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for absent association")
	}

	created, err := repo.Create(dbc, &types.Association{BusinessID: business.ID, SymptomID: symptom.ID, SourceRecordID: 1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err = repo.GetByPair(dbc, business.ID, symptom.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByPair after create: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("GetByPair returned a different row")
	}
}

func TestProjectionRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	acme := testutil.SeedBusiness(t, ctx, tx, 616161, "Acme Co")
	globex := testutil.SeedBusiness(t, ctx, tx, 616162, "Globex")
	cough := testutil.SeedSymptom(t, ctx, tx, "P1", "Cough", true)
	fever := testutil.SeedSymptom(t, ctx, tx, "P2", "Fever", false)
	testutil.SeedAssociation(t, ctx, tx, acme.ID, cough.ID)
	testutil.SeedAssociation(t, ctx, tx, acme.ID, fever.ID)
	testutil.SeedAssociation(t, ctx, tx, globex.ID, fever.ID)

	repo := NewProjectionRepo(db, testutil.Logger(t))

	collect := func(filter ProjectionFilter) []*ProjectionRow {
		t.Helper()
		rows, err := repo.Rows(dbc, filter)
		if err != nil {
			t.Fatalf("Rows: %v", err)
		}
		defer rows.Close()
		var out []*ProjectionRow
		for rows.Next() {
			row, err := repo.Scan(rows)
			if err != nil {
				t.Fatalf("Scan: %v", err)
			}
			out = append(out, row)
		}
		if err := rows.Err(); err != nil {
			t.Fatalf("rows.Err: %v", err)
		}
		return out
	}

	bid := acme.ID
	byBusiness := collect(ProjectionFilter{BusinessID: &bid})
	if len(byBusiness) != 2 {
		t.Fatalf("business filter: got %d rows, want 2", len(byBusiness))
	}
	for _, row := range byBusiness {
		if row.BusinessID != acme.ID || row.BusinessName != "Acme Co" {
			t.Fatalf("unexpected row: %+v", row)
		}
	}

	diag := true
	diagnostic := collect(ProjectionFilter{BusinessID: &bid, Diagnostic: &diag})
	if len(diagnostic) != 1 {
		t.Fatalf("combined filter: got %d rows, want 1", len(diagnostic))
	}
	if diagnostic[0].SymptomCode != "P1" || !diagnostic[0].Diagnostic {
		t.Fatalf("combined filter returned wrong symptom: %+v", diagnostic[0])
	}

	notDiag := false
	gid := globex.ID
	globexRows := collect(ProjectionFilter{BusinessID: &gid, Diagnostic: &notDiag})
	if len(globexRows) != 1 || globexRows[0].SymptomName != "Fever" {
		t.Fatalf("globex filter: %+v", globexRows)
	}
}
