package party

import (
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/mohammadpnp/party-onboarding/internal/domain/account"
	domain "github.com/mohammadpnp/party-onboarding/internal/domain/party"
	"go.uber.org/zap"
)

// ReasonInsertConflict is reported for rows that passed validation but were
// refused by the store's unique constraints during the bulk insert.
const ReasonInsertConflict = "Insert-time conflict: Email, Contact or generated code already exists"

type spreadsheetDecoder interface {
	Decode(r io.Reader) ([]domain.UploadRow, error)
}

type rowValidator interface {
	Validate(ctx context.Context, t domain.Type, row domain.UploadRow) (ValidationOutcome, error)
}

type BulkUploadInput struct {
	PartyType domain.Type
	Role      string
	Actor     string
	FileName  string
	// File is nil when the request carried no file part.
	File io.Reader
}

type BulkUploadOutput struct {
	Report  domain.UploadReport
	BatchID string
}

type BulkUpload interface {
	Execute(ctx context.Context, in BulkUploadInput) (BulkUploadOutput, error)
}

type bulkUpload struct {
	decoder   spreadsheetDecoder
	validator rowValidator
	inserter  domain.BulkInserter
	batches   domain.UploadBatchRecorder
	logger    *zap.Logger
	newID     func() string
}

func NewBulkUpload(
	decoder spreadsheetDecoder,
	validator rowValidator,
	inserter domain.BulkInserter,
	batches domain.UploadBatchRecorder,
	logger *zap.Logger,
) BulkUpload {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &bulkUpload{
		decoder:   decoder,
		validator: validator,
		inserter:  inserter,
		batches:   batches,
		logger:    logger,
		newID:     uuid.NewString,
	}
}

func (uc *bulkUpload) Execute(ctx context.Context, in BulkUploadInput) (BulkUploadOutput, error) {
	if in.Role != account.RoleAdmin {
		return BulkUploadOutput{}, ErrForbidden
	}
	if in.File == nil {
		return BulkUploadOutput{}, ErrMissingFile
	}

	started := time.Now()
	logger := uc.logger.With(
		zap.String("party_type", string(in.PartyType)),
		zap.String("file_name", in.FileName),
		zap.String("actor", in.Actor),
	)

	rows, err := uc.decoder.Decode(in.File)
	if err != nil {
		return BulkUploadOutput{}, fmt.Errorf("%w: %v", ErrDecodeUpload, err)
	}

	var (
		failed  []domain.FailedRow
		pending []ValidationOutcome
	)
	for _, row := range rows {
		outcome, err := uc.validator.Validate(ctx, in.PartyType, row)
		if err != nil {
			return BulkUploadOutput{}, fmt.Errorf("%w: %v", ErrBulkUpload, err)
		}
		if !outcome.Valid() {
			failed = append(failed, outcome.FailedRow())
			continue
		}
		pending = append(pending, outcome)
	}

	inserted, err := uc.insert(ctx, in.PartyType, pending)
	if err != nil {
		return BulkUploadOutput{}, fmt.Errorf("%w: %v", ErrBulkUpload, err)
	}

	summaries := make([]domain.InsertedParty, 0, len(inserted))
	for _, outcome := range pending {
		id := outcome.recordID(in.PartyType)
		if summary, ok := inserted[id]; ok {
			summaries = append(summaries, summary)
			continue
		}
		failed = append(failed, domain.NewFailedRow(outcome.Row, ReasonInsertConflict))
	}
	slices.SortStableFunc(failed, func(a, b domain.FailedRow) int {
		return a.RowNumber - b.RowNumber
	})

	report := domain.BuildReport(in.PartyType, len(rows), summaries, failed)

	logger.Info("bulk upload processed",
		zap.Int("total_rows", report.Summary.TotalRows),
		zap.Int("successful", report.Summary.Successful),
		zap.Int("failed", report.Summary.Failed),
		zap.Int("insert_conflicts", len(pending)-len(summaries)),
		zap.String("outcome", string(report.Outcome())),
		zap.Duration("elapsed", time.Since(started)),
	)

	return BulkUploadOutput{
		Report:  report,
		BatchID: uc.record(ctx, logger, in, report),
	}, nil
}

// insert assigns correlation ids, persists the valid records and returns the
// summaries of the stored ones keyed by id.
func (uc *bulkUpload) insert(ctx context.Context, t domain.Type, pending []ValidationOutcome) (map[string]domain.InsertedParty, error) {
	out := make(map[string]domain.InsertedParty, len(pending))
	if len(pending) == 0 {
		return out, nil
	}

	switch t {
	case domain.TypeRetailer:
		records := make([]domain.Retailer, 0, len(pending))
		for i := range pending {
			pending[i].Retailer.ID = uc.newID()
			records = append(records, pending[i].Retailer)
		}
		stored, err := uc.inserter.InsertRetailers(ctx, records)
		if err != nil {
			return nil, err
		}
		for _, r := range stored {
			out[r.ID] = domain.SummarizeRetailer(r)
		}
	case domain.TypeEmployee:
		records := make([]domain.Employee, 0, len(pending))
		for i := range pending {
			pending[i].Employee.ID = uc.newID()
			records = append(records, pending[i].Employee)
		}
		stored, err := uc.inserter.InsertEmployees(ctx, records)
		if err != nil {
			return nil, err
		}
		for _, e := range stored {
			out[e.ID] = domain.SummarizeEmployee(e)
		}
	default:
		return nil, domain.ErrInvalidPartyType
	}

	return out, nil
}

// record writes the audit row. A failing audit write never fails the upload.
func (uc *bulkUpload) record(ctx context.Context, logger *zap.Logger, in BulkUploadInput, report domain.UploadReport) string {
	if uc.batches == nil {
		return ""
	}

	id, err := uc.batches.Record(ctx, domain.UploadBatch{
		PartyType:  in.PartyType,
		FileName:   in.FileName,
		Actor:      in.Actor,
		Outcome:    report.Outcome(),
		TotalRows:  report.Summary.TotalRows,
		Successful: report.Summary.Successful,
		Failed:     report.Summary.Failed,
	})
	if err != nil {
		logger.Warn("record upload batch failed", zap.Error(err))
		return ""
	}
	return id
}

func (o ValidationOutcome) recordID(t domain.Type) string {
	if t == domain.TypeEmployee {
		return o.Employee.ID
	}
	return o.Retailer.ID
}
