package echo_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	app "github.com/mohammadpnp/party-onboarding/internal/application/party"
	"github.com/mohammadpnp/party-onboarding/internal/domain/account"
	domain "github.com/mohammadpnp/party-onboarding/internal/domain/party"
	"github.com/mohammadpnp/party-onboarding/internal/infrastructure/spreadsheet"
	httpecho "github.com/mohammadpnp/party-onboarding/internal/interfaces/http/echo"
)

type fakeBulkUpload struct {
	output app.BulkUploadOutput
	err    error
	got    app.BulkUploadInput
	body   string
}

func (f *fakeBulkUpload) Execute(ctx context.Context, in app.BulkUploadInput) (app.BulkUploadOutput, error) {
	f.got = in
	if in.File != nil {
		b, _ := io.ReadAll(in.File)
		f.body = string(b)
	}
	if f.err != nil {
		return app.BulkUploadOutput{}, f.err
	}
	return f.output, nil
}

type fakeExport struct {
	output app.ExportFailedRowsOutput
	err    error
	got    app.ExportFailedRowsInput
}

func (f *fakeExport) Execute(ctx context.Context, in app.ExportFailedRowsInput) (app.ExportFailedRowsOutput, error) {
	f.got = in
	return f.output, f.err
}

type fakeSamples struct {
	err error
}

func (f *fakeSamples) Execute(ctx context.Context, in app.GetSampleTemplateInput) (app.GetSampleTemplateOutput, error) {
	if f.err != nil {
		return app.GetSampleTemplateOutput{}, f.err
	}
	return app.GetSampleTemplateOutput{
		FileName: app.SampleTemplateName(in.PartyType),
		Content:  io.NopCloser(strings.NewReader("xlsx-bytes")),
	}, nil
}

func uploadServer(bulk *fakeBulkUpload, export *fakeExport, samples *fakeSamples) *httpecho.UploadHandler {
	return httpecho.NewUploadHandler(bulk, export, samples, nil)
}

func failedRow(n int, reason string) domain.FailedRow {
	data := domain.NewRowData()
	data.Set("name", "Shop")
	data.Set("email", "bad")
	return domain.FailedRow{RowNumber: n, Reason: reason, Data: data}
}

func TestUploadRetailersAllInserted(t *testing.T) {
	t.Parallel()

	bulk := &fakeBulkUpload{output: app.BulkUploadOutput{
		BatchID: "batch-1",
		Report: domain.BuildReport(domain.TypeRetailer, 1, []domain.InsertedParty{
			{ID: "r-1", Name: "Shop", Email: "a@b.co", ContactNo: "9876543210", UniqueID: "RET-1", Code: "RC1"},
		}, nil),
	}}
	e := newServer(httpecho.Handlers{Uploads: uploadServer(bulk, &fakeExport{}, &fakeSamples{})})

	rec := serve(e, multipartRequest(t, "/admin/retailers/bulk", nil, map[string]string{"file": "retailers.xlsx"}, adminToken(t)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	got := decodeBody(t, rec)
	if got["success"] != true || got["message"] != "All retailers added successfully" {
		t.Fatalf("unexpected body: %#v", got)
	}
	if got["batchId"] != "batch-1" {
		t.Fatalf("unexpected batchId: %#v", got["batchId"])
	}
	inserted, ok := got["insertedRetailers"].([]any)
	if !ok || len(inserted) != 1 {
		t.Fatalf("unexpected insertedRetailers: %#v", got["insertedRetailers"])
	}
	if first := inserted[0].(map[string]any); first["retailerCode"] != "RC1" || first["contactNo"] != "9876543210" {
		t.Fatalf("unexpected inserted retailer: %#v", first)
	}
	if _, ok := got["insertedEmployees"]; ok {
		t.Fatalf("employee list must be absent for retailer uploads")
	}
	if bulk.got.Role != account.RoleAdmin || bulk.got.Actor != "user-1" || bulk.got.FileName != "retailers.xlsx" {
		t.Fatalf("unexpected use case input: %#v", bulk.got)
	}
	if bulk.body != "content of retailers.xlsx" {
		t.Fatalf("file body not forwarded: %q", bulk.body)
	}
}

func TestUploadEmployeesPartialSuccess(t *testing.T) {
	t.Parallel()

	bulk := &fakeBulkUpload{output: app.BulkUploadOutput{
		Report: domain.BuildReport(domain.TypeEmployee, 2, []domain.InsertedParty{
			{ID: "e-1", Name: "Asha", UniqueID: "EMP-1", Code: "E001"},
		}, []domain.FailedRow{failedRow(3, "Invalid email format")}),
	}}
	e := newServer(httpecho.Handlers{Uploads: uploadServer(bulk, &fakeExport{}, &fakeSamples{})})

	rec := serve(e, multipartRequest(t, "/admin/employees/bulk", nil, map[string]string{"file": "employees.xlsx"}, adminToken(t)))

	if rec.Code != http.StatusMultiStatus {
		t.Fatalf("expected 207, got %d", rec.Code)
	}
	got := decodeBody(t, rec)
	if got["message"] != "Partial success" {
		t.Fatalf("unexpected message: %#v", got["message"])
	}
	summary := got["summary"].(map[string]any)
	if summary["successRate"] != "50.00%" {
		t.Fatalf("unexpected summary: %#v", summary)
	}
	employees := got["insertedEmployees"].([]any)
	if employees[0].(map[string]any)["employeeId"] != "E001" {
		t.Fatalf("unexpected inserted employee: %#v", employees[0])
	}
	failed := got["failedRows"].([]any)
	if failed[0].(map[string]any)["rowNumber"] != float64(3) {
		t.Fatalf("unexpected failed row: %#v", failed[0])
	}
	if bulk.got.PartyType != domain.TypeEmployee {
		t.Fatalf("unexpected party type: %q", bulk.got.PartyType)
	}
}

func TestUploadNothingInsertedIsBadRequest(t *testing.T) {
	t.Parallel()

	bulk := &fakeBulkUpload{output: app.BulkUploadOutput{
		Report: domain.BuildReport(domain.TypeRetailer, 0, nil, nil),
	}}
	e := newServer(httpecho.Handlers{Uploads: uploadServer(bulk, &fakeExport{}, &fakeSamples{})})

	rec := serve(e, multipartRequest(t, "/admin/retailers/bulk", nil, map[string]string{"file": "empty.xlsx"}, adminToken(t)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	got := decodeBody(t, rec)
	if got["success"] != false || got["message"] != "No retailers were added" {
		t.Fatalf("unexpected body: %#v", got)
	}
	if got["summary"].(map[string]any)["successRate"] != "0%" {
		t.Fatalf("unexpected summary: %#v", got["summary"])
	}
	if inserted := got["insertedRetailers"].([]any); len(inserted) != 0 {
		t.Fatalf("expected empty inserted list, got %#v", inserted)
	}
}

func TestUploadErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"forbidden", app.ErrForbidden, http.StatusForbidden, "Only admins can upload retailers"},
		{"missing file", app.ErrMissingFile, http.StatusBadRequest, "Excel/CSV file is required"},
		{"decode", app.ErrDecodeUpload, http.StatusBadRequest, "Could not read the uploaded spreadsheet"},
		{"unexpected", errors.New("db down"), http.StatusInternalServerError, "Server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			bulk := &fakeBulkUpload{err: tc.err}
			e := newServer(httpecho.Handlers{Uploads: uploadServer(bulk, &fakeExport{}, &fakeSamples{})})

			rec := serve(e, multipartRequest(t, "/admin/retailers/bulk", nil, map[string]string{"file": "r.xlsx"}, adminToken(t)))

			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
			got := decodeBody(t, rec)
			if got["message"] != tc.message {
				t.Fatalf("unexpected message: %#v", got["message"])
			}
			if tc.status == http.StatusInternalServerError && strings.Contains(rec.Body.String(), "db down") {
				t.Fatalf("internal error leaked: %s", rec.Body.String())
			}
		})
	}
}

func TestUploadWithoutFilePassesNilReader(t *testing.T) {
	t.Parallel()

	bulk := &fakeBulkUpload{err: app.ErrMissingFile}
	e := newServer(httpecho.Handlers{Uploads: uploadServer(bulk, &fakeExport{}, &fakeSamples{})})

	rec := serve(e, multipartRequest(t, "/admin/retailers/bulk", map[string]string{"note": "x"}, nil, adminToken(t)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if bulk.got.File != nil {
		t.Fatalf("expected nil file")
	}
}

func TestUploadRequiresToken(t *testing.T) {
	t.Parallel()

	e := newServer(httpecho.Handlers{Uploads: uploadServer(&fakeBulkUpload{}, &fakeExport{}, &fakeSamples{})})

	rec := serve(e, multipartRequest(t, "/admin/retailers/bulk", nil, map[string]string{"file": "r.xlsx"}, ""))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	rec = serve(e, multipartRequest(t, "/admin/retailers/bulk", nil, map[string]string{"file": "r.xlsx"}, "Bearer not-a-jwt"))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad token, got %d", rec.Code)
	}
}

func TestExportFailedRows(t *testing.T) {
	t.Parallel()

	export := &fakeExport{output: app.ExportFailedRowsOutput{
		FileName: "Failed_Retailers_Upload_2026-10-17.xlsx",
		Content:  []byte("xlsx"),
	}}
	e := newServer(httpecho.Handlers{Uploads: uploadServer(&fakeBulkUpload{}, export, &fakeSamples{})})

	body := `{"partyType":"retailer","failedRows":[{"rowNumber":2,"reason":"Invalid email format","data":{"name":"Shop","email":"bad"}}]}`
	rec := serve(e, jsonRequest(http.MethodPost, "/admin/uploads/failed-rows/export", body, adminToken(t)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != spreadsheet.ContentTypeXLSX {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "Failed_Retailers_Upload_2026-10-17.xlsx") {
		t.Fatalf("unexpected content disposition %q", cd)
	}
	if len(export.got.FailedRows) != 1 || export.got.FailedRows[0].Data.Columns[0] != "name" {
		t.Fatalf("failed rows not forwarded in order: %#v", export.got.FailedRows)
	}
}

func TestExportFailedRowsErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"bad party type", `{"partyType":"vendor","failedRows":[]}`, nil, http.StatusBadRequest},
		{"no rows", `{"partyType":"employee","failedRows":[]}`, app.ErrNoFailedRows, http.StatusBadRequest},
		{"forbidden", `{"partyType":"employee","failedRows":[]}`, app.ErrForbidden, http.StatusForbidden},
		{"malformed", `{"partyType":`, nil, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			e := newServer(httpecho.Handlers{Uploads: uploadServer(&fakeBulkUpload{}, &fakeExport{err: tc.err}, &fakeSamples{})})
			rec := serve(e, jsonRequest(http.MethodPost, "/admin/uploads/failed-rows/export", tc.body, adminToken(t)))

			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
		})
	}
}

func TestSampleTemplate(t *testing.T) {
	t.Parallel()

	e := newServer(httpecho.Handlers{Uploads: uploadServer(&fakeBulkUpload{}, &fakeExport{}, &fakeSamples{})})

	rec := serve(e, jsonRequest(http.MethodGet, "/admin/samples/employee", "", adminToken(t)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "xlsx-bytes" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, app.SampleTemplateName(domain.TypeEmployee)) {
		t.Fatalf("unexpected content disposition %q", cd)
	}
}

func TestSampleTemplateNotFound(t *testing.T) {
	t.Parallel()

	e := newServer(httpecho.Handlers{Uploads: uploadServer(&fakeBulkUpload{}, &fakeExport{}, &fakeSamples{err: app.ErrTemplateNotFound})})

	rec := serve(e, jsonRequest(http.MethodGet, "/admin/samples/retailer", "", adminToken(t)))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "not_found" {
		t.Fatalf("unexpected code %q", code)
	}

	rec = serve(e, jsonRequest(http.MethodGet, "/admin/samples/vendor", "", adminToken(t)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown type, got %d", rec.Code)
	}
}
