package party

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/mohammadpnp/party-onboarding/internal/domain/account"
	domain "github.com/mohammadpnp/party-onboarding/internal/domain/party"
)

type failedRowsEncoder interface {
	EncodeFailedRows(w io.Writer, failed []domain.FailedRow) error
}

type ExportFailedRowsInput struct {
	Role       string
	PartyType  domain.Type
	FailedRows []domain.FailedRow
}

type ExportFailedRowsOutput struct {
	FileName string
	Content  []byte
}

type ExportFailedRows interface {
	Execute(ctx context.Context, in ExportFailedRowsInput) (ExportFailedRowsOutput, error)
}

type exportFailedRows struct {
	encoder failedRowsEncoder
	now     func() time.Time
}

func NewExportFailedRows(encoder failedRowsEncoder) ExportFailedRows {
	return &exportFailedRows{encoder: encoder, now: time.Now}
}

func (uc *exportFailedRows) Execute(ctx context.Context, in ExportFailedRowsInput) (ExportFailedRowsOutput, error) {
	if in.Role != account.RoleAdmin {
		return ExportFailedRowsOutput{}, ErrForbidden
	}
	if len(in.FailedRows) == 0 {
		return ExportFailedRowsOutput{}, ErrNoFailedRows
	}

	var buf bytes.Buffer
	if err := uc.encoder.EncodeFailedRows(&buf, in.FailedRows); err != nil {
		return ExportFailedRowsOutput{}, fmt.Errorf("%w: %v", ErrExportFailedRows, err)
	}

	return ExportFailedRowsOutput{
		FileName: FailedRowsFileName(in.PartyType, uc.now()),
		Content:  buf.Bytes(),
	}, nil
}

// FailedRowsFileName names the export after the party type and the UTC date.
func FailedRowsFileName(t domain.Type, at time.Time) string {
	return fmt.Sprintf("Failed_%s_Upload_%s.xlsx", t.Label(), at.UTC().Format(time.DateOnly))
}
