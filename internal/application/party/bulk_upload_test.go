package party_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	app "github.com/mohammadpnp/party-onboarding/internal/application/party"
	domain "github.com/mohammadpnp/party-onboarding/internal/domain/party"
)

func newBulkUpload(t *testing.T, decoder *fakeDecoder, store *memoryStore, batches *fakeBatchRecorder) app.BulkUpload {
	t.Helper()
	var recorder domain.UploadBatchRecorder
	if batches != nil {
		recorder = batches
	}
	return app.NewBulkUpload(decoder, newValidator(t, store), store, recorder, nil)
}

func adminUpload(t domain.Type) app.BulkUploadInput {
	return app.BulkUploadInput{
		PartyType: t,
		Role:      "admin",
		Actor:     "admin-1",
		FileName:  "retailers.xlsx",
		File:      bytes.NewBufferString("ignored"),
	}
}

func TestBulkUploadForbiddenForNonAdmin(t *testing.T) {
	t.Parallel()

	uc := newBulkUpload(t, &fakeDecoder{}, newMemoryStore(), nil)
	in := adminUpload(domain.TypeRetailer)
	in.Role = "employee"

	_, err := uc.Execute(context.Background(), in)
	if !errors.Is(err, app.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestBulkUploadMissingFile(t *testing.T) {
	t.Parallel()

	uc := newBulkUpload(t, &fakeDecoder{}, newMemoryStore(), nil)
	in := adminUpload(domain.TypeRetailer)
	in.File = nil

	_, err := uc.Execute(context.Background(), in)
	if !errors.Is(err, app.ErrMissingFile) {
		t.Fatalf("expected ErrMissingFile, got %v", err)
	}
}

func TestBulkUploadDecodeFailure(t *testing.T) {
	t.Parallel()

	decoder := &fakeDecoder{err: fmt.Errorf("%w: zip: not a valid zip file", domain.ErrUnreadableSpreadsheet)}
	uc := newBulkUpload(t, decoder, newMemoryStore(), nil)

	_, err := uc.Execute(context.Background(), adminUpload(domain.TypeRetailer))
	if !errors.Is(err, app.ErrDecodeUpload) {
		t.Fatalf("expected ErrDecodeUpload, got %v", err)
	}
}

func TestBulkUploadFiveRowScenario(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	store.retailers = []domain.Retailer{{ID: "existing", Email: "old@example.com", ContactNo: "9000000005"}}
	batches := &fakeBatchRecorder{}

	decoder := &fakeDecoder{rows: []domain.UploadRow{
		retailerRow(2, "9000000001", "one@example.com"),
		retailerRow(3, "9000000002", ""),
		retailerRow(4, "9000000003", "three@example.com"),
		retailerRow(5, "9000000004", ""),
		retailerRow(6, "9000000005", "five@example.com"),
	}}

	out, err := newBulkUpload(t, decoder, store, batches).Execute(context.Background(), adminUpload(domain.TypeRetailer))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	summary := out.Report.Summary
	if summary.TotalRows != 5 || summary.Successful != 2 || summary.Failed != 3 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.SuccessRate != "40.00%" {
		t.Fatalf("unexpected success rate: %s", summary.SuccessRate)
	}

	failed := out.Report.FailedRows
	wantRows := []int{3, 5, 6}
	for i, want := range wantRows {
		if failed[i].RowNumber != want {
			t.Fatalf("failed[%d].RowNumber = %d, want %d", i, failed[i].RowNumber, want)
		}
	}
	if failed[0].Reason != "Missing required fields: email" {
		t.Fatalf("unexpected reason: %q", failed[0].Reason)
	}
	if failed[2].Reason != app.ReasonDuplicate {
		t.Fatalf("unexpected reason: %q", failed[2].Reason)
	}
	if failed[2].Data.Values["contactNo"] != "9000000005" {
		t.Fatalf("expected original row data, got %v", failed[2].Data.Values)
	}

	inserted := out.Report.Inserted
	if inserted[0].Email != "one@example.com" || inserted[1].Email != "three@example.com" {
		t.Fatalf("unexpected inserted order: %+v", inserted)
	}
	if inserted[0].ID == "" || inserted[0].UniqueID == "" || inserted[0].Code == "" {
		t.Fatalf("expected system fields on summary: %+v", inserted[0])
	}
	if out.Report.Outcome() != domain.OutcomePartial {
		t.Fatalf("expected partial outcome, got %s", out.Report.Outcome())
	}

	if out.BatchID != "batch-1" || len(batches.batches) != 1 {
		t.Fatalf("expected one audit record, got %q %v", out.BatchID, batches.batches)
	}
	if b := batches.batches[0]; b.Successful != 2 || b.Failed != 3 || b.Actor != "admin-1" {
		t.Fatalf("unexpected audit record: %+v", b)
	}
}

func TestBulkUploadReuploadFailsAsDuplicates(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	decoder := &fakeDecoder{rows: []domain.UploadRow{
		retailerRow(2, "9000000001", "one@example.com"),
		retailerRow(3, "9000000002", "two@example.com"),
	}}
	uc := newBulkUpload(t, decoder, store, nil)

	first, err := uc.Execute(context.Background(), adminUpload(domain.TypeRetailer))
	if err != nil {
		t.Fatalf("first upload: %v", err)
	}
	if first.Report.Summary.Successful != 2 || first.Report.Outcome() != domain.OutcomeAllInserted {
		t.Fatalf("unexpected first summary: %+v", first.Report.Summary)
	}

	second, err := uc.Execute(context.Background(), adminUpload(domain.TypeRetailer))
	if err != nil {
		t.Fatalf("second upload: %v", err)
	}
	if second.Report.Summary.Successful != 0 || second.Report.Summary.Failed != 2 {
		t.Fatalf("unexpected second summary: %+v", second.Report.Summary)
	}
	for _, row := range second.Report.FailedRows {
		if row.Reason != app.ReasonDuplicate {
			t.Fatalf("unexpected reason: %q", row.Reason)
		}
	}
	if second.Report.Outcome() != domain.OutcomeNoneInserted {
		t.Fatalf("expected none inserted, got %s", second.Report.Outcome())
	}
}

func TestBulkUploadReconcilesInsertTimeConflicts(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	store.dropEmail["raced@example.com"] = true

	// Rows 2 and 4 share a contact; both pass the pre-check and the store keeps the first.
	decoder := &fakeDecoder{rows: []domain.UploadRow{
		retailerRow(2, "9000000001", "one@example.com"),
		retailerRow(3, "9000000002", "raced@example.com"),
		retailerRow(4, "9000000001", "dup@example.com"),
		retailerRow(5, "9000000004", "bad-email"),
	}}

	out, err := newBulkUpload(t, decoder, store, nil).Execute(context.Background(), adminUpload(domain.TypeRetailer))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	summary := out.Report.Summary
	if summary.Successful+summary.Failed != summary.TotalRows {
		t.Fatalf("counts do not add up: %+v", summary)
	}
	if summary.Successful != 1 || summary.Failed != 3 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	failed := out.Report.FailedRows
	if failed[0].RowNumber != 3 || failed[0].Reason != app.ReasonInsertConflict {
		t.Fatalf("unexpected failed[0]: %+v", failed[0])
	}
	if failed[1].RowNumber != 4 || failed[1].Reason != app.ReasonInsertConflict {
		t.Fatalf("unexpected failed[1]: %+v", failed[1])
	}
	if failed[2].RowNumber != 5 || failed[2].Reason != app.ReasonInvalidEmail {
		t.Fatalf("unexpected failed[2]: %+v", failed[2])
	}
}

func TestBulkUploadZeroRows(t *testing.T) {
	t.Parallel()

	out, err := newBulkUpload(t, &fakeDecoder{}, newMemoryStore(), nil).Execute(context.Background(), adminUpload(domain.TypeEmployee))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Report.Summary.TotalRows != 0 || out.Report.Summary.SuccessRate != "0%" {
		t.Fatalf("unexpected summary: %+v", out.Report.Summary)
	}
	if out.Report.Outcome() != domain.OutcomeNoneInserted {
		t.Fatalf("expected none inserted, got %s", out.Report.Outcome())
	}
}

func TestBulkUploadEmployees(t *testing.T) {
	t.Parallel()

	decoder := &fakeDecoder{rows: []domain.UploadRow{
		employeeRow(2, "9123456780", "a@example.com"),
		employeeRow(3, "9123456781", "b@example.com"),
	}}

	in := adminUpload(domain.TypeEmployee)
	out, err := newBulkUpload(t, decoder, newMemoryStore(), nil).Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Report.Summary.Successful != 2 {
		t.Fatalf("unexpected summary: %+v", out.Report.Summary)
	}
	for _, e := range out.Report.Inserted {
		if len(e.Code) < len(domain.EmployeeCodePrefix) || e.Code[:len(domain.EmployeeCodePrefix)] != domain.EmployeeCodePrefix {
			t.Fatalf("expected employee code, got %q", e.Code)
		}
	}
}

func TestBulkUploadStoreFailureIsOpaque(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	store.insertErr = errStoreDown
	decoder := &fakeDecoder{rows: []domain.UploadRow{retailerRow(2, "9000000001", "one@example.com")}}

	_, err := newBulkUpload(t, decoder, store, nil).Execute(context.Background(), adminUpload(domain.TypeRetailer))
	if !errors.Is(err, app.ErrBulkUpload) {
		t.Fatalf("expected ErrBulkUpload, got %v", err)
	}
}

func TestBulkUploadAuditFailureDoesNotFailRequest(t *testing.T) {
	t.Parallel()

	decoder := &fakeDecoder{rows: []domain.UploadRow{retailerRow(2, "9000000001", "one@example.com")}}
	batches := &fakeBatchRecorder{err: errStoreDown}

	out, err := newBulkUpload(t, decoder, newMemoryStore(), batches).Execute(context.Background(), adminUpload(domain.TypeRetailer))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.BatchID != "" || out.Report.Summary.Successful != 1 {
		t.Fatalf("unexpected output: %+v", out)
	}
}

func TestBulkUploadOverlongRowDoesNotFailBatch(t *testing.T) {
	t.Parallel()

	long := retailerRow(3, "9000000002", "long@example.com")
	long.Data.Set("IFSC", strings.Repeat("X", 33))
	decoder := &fakeDecoder{rows: []domain.UploadRow{
		retailerRow(2, "9000000001", "one@example.com"),
		long,
		retailerRow(4, "9000000003", "three@example.com"),
	}}

	out, err := newBulkUpload(t, decoder, newMemoryStore(), nil).Execute(context.Background(), adminUpload(domain.TypeRetailer))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	summary := out.Report.Summary
	if summary.TotalRows != 3 || summary.Successful != 2 || summary.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	failed := out.Report.FailedRows
	if len(failed) != 1 || failed[0].RowNumber != 3 || failed[0].Reason != "Field too long: IFSC" {
		t.Fatalf("unexpected failed rows: %+v", failed)
	}
}
