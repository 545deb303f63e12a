package services

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gorm.io/datatypes"

	"github.com/dmelchor/symreg-backend/internal/data/repos/staging"
	"github.com/dmelchor/symreg-backend/internal/data/uow"
	types "github.com/dmelchor/symreg-backend/internal/domain"
	"github.com/dmelchor/symreg-backend/internal/platform/dbctx"
	"github.com/dmelchor/symreg-backend/internal/platform/logger"
)

// ExpectedHeader is the only accepted CSV header, in this exact column
// order. Column reordering is out of scope; a mismatch rejects the upload.
const ExpectedHeader = "Business ID,Business Name,Symptom Code,Symptom Name,Symptom Diagnostic"

const uploadColumns = 5

// UploadService parses an uploaded CSV into staging rows. Parsing is
// deliberately minimal: strict comma split, no quoting or escaping. Row
// content is never validated here; that is the ingest pass's job.
type UploadService interface {
	Stage(ctx context.Context, fileName string, r io.Reader) (*types.UploadBatch, error)
}

type uploadService struct {
	runner  uow.Runner
	log     *logger.Logger
	records staging.StagingRecordRepo
	batches staging.UploadBatchRepo
}

func NewUploadService(
	runner uow.Runner,
	baseLog *logger.Logger,
	records staging.StagingRecordRepo,
	batches staging.UploadBatchRepo,
) UploadService {
	return &uploadService{
		runner:  runner,
		log:     baseLog.With("service", "UploadService"),
		records: records,
		batches: batches,
	}
}

func (s *uploadService) Stage(ctx context.Context, fileName string, r io.Reader) (*types.UploadBatch, error) {
	// A plain buffered reader, not a Scanner: lines carry raw staging
	// fields of unbounded length, and staging must never reject content
	// over a size it can still hold.
	reader := bufio.NewReader(r)

	header, err := readLine(reader)
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty file", ErrMalformedUpload)
		}
		return nil, err
	}
	if header != ExpectedHeader {
		s.log.Warn("upload header mismatch", "got", header)
		return nil, fmt.Errorf("%w: header mismatch, please reorder columns in this order: %s", ErrMalformedUpload, ExpectedHeader)
	}

	// The whole batch is parsed before anything is appended: one malformed
	// line rejects the upload with nothing staged.
	var (
		records   []*types.StagingRecord
		byteCount int
		lineNo    = 1
	)
	for {
		line, err := readLine(reader)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		lineNo++
		if line == "" {
			continue
		}
		byteCount += len(line)
		fields := strings.Split(line, ",")
		if len(fields) != uploadColumns {
			return nil, fmt.Errorf("%w: line %d has %d columns, want %d", ErrMalformedUpload, lineNo, len(fields), uploadColumns)
		}
		records = append(records, &types.StagingRecord{
			BusinessIDRaw:        fields[0],
			BusinessNameRaw:      fields[1],
			SymptomCodeRaw:       fields[2],
			SymptomNameRaw:       fields[3],
			SymptomDiagnosticRaw: fields[4],
		})
	}

	stats, _ := json.Marshal(map[string]any{
		"bytes": byteCount,
		"rows":  len(records),
	})
	batch := &types.UploadBatch{
		FileName: fileName,
		RowCount: len(records),
		Stats:    datatypes.JSON(stats),
	}

	err = s.runner.InTx(ctx, func(dbc dbctx.Context) error {
		if _, err := s.batches.Create(dbc, batch); err != nil {
			return err
		}
		for _, rec := range records {
			rec.BatchID = &batch.ID
		}
		_, err := s.records.Append(dbc, records)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("upload staged", "batch_id", batch.ID, "file", fileName, "rows", len(records))
	return batch, nil
}

// readLine returns the next line with surrounding whitespace trimmed.
// io.EOF is returned only once the input is exhausted; a final line with no
// trailing newline still comes back as a line.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
