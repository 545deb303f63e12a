package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/dmelchor/symreg-backend/internal/data/repos/registry"
	"github.com/dmelchor/symreg-backend/internal/data/uow"
	types "github.com/dmelchor/symreg-backend/internal/domain"
	"github.com/dmelchor/symreg-backend/internal/normalization"
	"github.com/dmelchor/symreg-backend/internal/platform/dbctx"
	"github.com/dmelchor/symreg-backend/internal/platform/logger"
)

const (
	businessNameMax = 1000
	symptomFieldMax = 100
)

// ResolverService turns raw staging fields into canonical entities via
// get-or-create. Every call runs in its own unit of work, committed
// independently of the caller's session, so a resolver's write is durable
// before the association lookup that depends on it. Duplicate-creation
// races across nodes are settled by the store's unique constraints: the
// loser sees gorm.ErrDuplicatedKey and re-reads the winning row.
type ResolverService interface {
	GetOrCreateBusiness(ctx context.Context, rec *types.StagingRecord) (int64, error)
	GetOrCreateSymptom(ctx context.Context, rec *types.StagingRecord) (int64, error)
	GetOrCreateAssociation(ctx context.Context, businessID, symptomID, sourceRecordID int64) (int64, error)
}

type resolverService struct {
	runner       uow.Runner
	log          *logger.Logger
	businesses   registry.BusinessRepo
	symptoms     registry.SymptomRepo
	associations registry.AssociationRepo
}

func NewResolverService(
	runner uow.Runner,
	baseLog *logger.Logger,
	businesses registry.BusinessRepo,
	symptoms registry.SymptomRepo,
	associations registry.AssociationRepo,
) ResolverService {
	return &resolverService{
		runner:       runner,
		log:          baseLog.With("service", "ResolverService"),
		businesses:   businesses,
		symptoms:     symptoms,
		associations: associations,
	}
}

func (s *resolverService) GetOrCreateBusiness(ctx context.Context, rec *types.StagingRecord) (int64, error) {
	businessID, ok := normalization.ParseInt(rec.BusinessIDRaw)
	if !ok {
		return 0, fmt.Errorf("%w: business id %q is not an integer", ErrValidation, rec.BusinessIDRaw)
	}
	if strings.TrimSpace(rec.BusinessNameRaw) == "" {
		return 0, fmt.Errorf("%w: business name missing", ErrValidation)
	}
	name := normalization.TruncateWithEllipsis(rec.BusinessNameRaw, businessNameMax)

	resolve := func(dbc dbctx.Context) (bool, error) {
		existing, err := s.businesses.GetByID(dbc, businessID)
		if err != nil {
			return false, err
		}
		if existing != nil {
			// First writer wins: an existing name is never updated.
			return true, nil
		}
		return false, nil
	}

	err := s.runner.InTx(ctx, func(dbc dbctx.Context) error {
		found, err := resolve(dbc)
		if err != nil || found {
			return err
		}
		_, err = s.businesses.Create(dbc, &types.Business{
			ID:             businessID,
			Name:           name,
			SourceRecordID: rec.ID,
		})
		return err
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the creation race; the winner's row is the answer.
		err = s.runner.InTx(ctx, func(dbc dbctx.Context) error {
			found, rerr := resolve(dbc)
			if rerr != nil {
				return rerr
			}
			if !found {
				return fmt.Errorf("business %d vanished after conflict", businessID)
			}
			return nil
		})
	}
	if err != nil {
		return 0, err
	}
	return businessID, nil
}

func (s *resolverService) GetOrCreateSymptom(ctx context.Context, rec *types.StagingRecord) (int64, error) {
	code := normalization.TruncateWithEllipsis(rec.SymptomCodeRaw, symptomFieldMax)
	name := normalization.TruncateWithEllipsis(rec.SymptomNameRaw, symptomFieldMax)
	diagnostic := normalization.TruthyBool(rec.SymptomDiagnosticRaw)

	var symptomID int64
	resolve := func(dbc dbctx.Context) (bool, error) {
		existing, err := s.symptoms.GetByCodeName(dbc, code, name)
		if err != nil {
			return false, err
		}
		if existing == nil {
			return false, nil
		}
		symptomID = existing.ID
		// Last writer wins for the diagnostic flag only.
		if existing.Diagnostic != diagnostic {
			if err := s.symptoms.UpdateDiagnostic(dbc, existing.ID, diagnostic); err != nil {
				return false, err
			}
		}
		return true, nil
	}

	err := s.runner.InTx(ctx, func(dbc dbctx.Context) error {
		found, err := resolve(dbc)
		if err != nil || found {
			return err
		}
		created, err := s.symptoms.Create(dbc, &types.Symptom{
			Code:           code,
			Name:           name,
			Diagnostic:     diagnostic,
			SourceRecordID: rec.ID,
		})
		if err != nil {
			return err
		}
		symptomID = created.ID
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = s.runner.InTx(ctx, func(dbc dbctx.Context) error {
			found, rerr := resolve(dbc)
			if rerr != nil {
				return rerr
			}
			if !found {
				return fmt.Errorf("symptom (%q, %q) vanished after conflict", code, name)
			}
			return nil
		})
	}
	if err != nil {
		return 0, err
	}
	return symptomID, nil
}

func (s *resolverService) GetOrCreateAssociation(ctx context.Context, businessID, symptomID, sourceRecordID int64) (int64, error) {
	var associationID int64
	resolve := func(dbc dbctx.Context) (bool, error) {
		existing, err := s.associations.GetByPair(dbc, businessID, symptomID)
		if err != nil {
			return false, err
		}
		if existing == nil {
			return false, nil
		}
		associationID = existing.ID
		return true, nil
	}

	err := s.runner.InTx(ctx, func(dbc dbctx.Context) error {
		found, err := resolve(dbc)
		if err != nil || found {
			return err
		}
		created, err := s.associations.Create(dbc, &types.Association{
			BusinessID:     businessID,
			SymptomID:      symptomID,
			SourceRecordID: sourceRecordID,
		})
		if err != nil {
			return err
		}
		associationID = created.ID
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = s.runner.InTx(ctx, func(dbc dbctx.Context) error {
			found, rerr := resolve(dbc)
			if rerr != nil {
				return rerr
			}
			if !found {
				return fmt.Errorf("association (%d, %d) vanished after conflict", businessID, symptomID)
			}
			return nil
		})
	}
	if err != nil {
		return 0, err
	}
	return associationID, nil
}
