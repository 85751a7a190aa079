package echo

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	app "github.com/mohammadpnp/party-onboarding/internal/application/party"
	domain "github.com/mohammadpnp/party-onboarding/internal/domain/party"
	"github.com/mohammadpnp/party-onboarding/internal/infrastructure/spreadsheet"
	"go.uber.org/zap"
)

const uploadField = "file"

type UploadHandler struct {
	bulk    app.BulkUpload
	export  app.ExportFailedRows
	samples app.GetSampleTemplate
	logger  *zap.Logger
}

type bulkMessage struct {
	Message string `json:"message"`
}

type bulkFailure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type insertedRetailerJSON struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	ContactNo    string `json:"contactNo"`
	UniqueID     string `json:"uniqueId"`
	RetailerCode string `json:"retailerCode"`
}

type insertedEmployeeJSON struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	ContactNo  string `json:"contactNo"`
	UniqueID   string `json:"uniqueId"`
	EmployeeID string `json:"employeeId"`
}

// bulkResponse is shared by both bulk endpoints. Exactly one inserted list is set.
type bulkResponse struct {
	Success           bool                    `json:"success"`
	Message           string                  `json:"message"`
	BatchID           string                  `json:"batchId,omitempty"`
	Summary           domain.Summary          `json:"summary"`
	InsertedRetailers *[]insertedRetailerJSON `json:"insertedRetailers,omitempty"`
	InsertedEmployees *[]insertedEmployeeJSON `json:"insertedEmployees,omitempty"`
	FailedRows        []domain.FailedRow      `json:"failedRows"`
}

type exportFailedRowsRequest struct {
	PartyType  string             `json:"partyType"`
	FailedRows []domain.FailedRow `json:"failedRows"`
}

func NewUploadHandler(bulk app.BulkUpload, export app.ExportFailedRows, samples app.GetSampleTemplate, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{bulk: bulk, export: export, samples: samples, logger: orNop(logger)}
}

func (h *UploadHandler) UploadRetailers(c echo.Context) error {
	return h.upload(c, domain.TypeRetailer)
}

func (h *UploadHandler) UploadEmployees(c echo.Context) error {
	return h.upload(c, domain.TypeEmployee)
}

func (h *UploadHandler) upload(c echo.Context, t domain.Type) error {
	p := principalFrom(c)
	in := app.BulkUploadInput{PartyType: t, Role: p.Role, Actor: p.UserID}

	if fh, err := c.FormFile(uploadField); err == nil {
		f, err := fh.Open()
		if err != nil {
			return h.serverError(c, fmt.Errorf("open upload: %w", err))
		}
		defer f.Close()

		in.File, in.FileName = f, fh.Filename
		if ext := strings.ToLower(filepath.Ext(fh.Filename)); ext != ".xlsx" && ext != ".xls" {
			h.logger.Warn("upload has unexpected extension", zap.String("file_name", fh.Filename))
		}
	}

	out, err := h.bulk.Execute(c.Request().Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrForbidden):
			return c.JSON(http.StatusForbidden, bulkMessage{Message: "Only admins can upload " + t.Plural()})
		case errors.Is(err, app.ErrMissingFile):
			return c.JSON(http.StatusBadRequest, bulkFailure{Message: "Excel/CSV file is required"})
		case errors.Is(err, app.ErrDecodeUpload):
			return c.JSON(http.StatusBadRequest, bulkFailure{Message: "Could not read the uploaded spreadsheet"})
		}
		return h.serverError(c, err)
	}

	return writeBulkReport(c, out)
}

func (h *UploadHandler) serverError(c echo.Context, err error) error {
	h.logger.Error("bulk upload failed", zap.String("path", c.Path()), zap.Error(err))
	return c.JSON(http.StatusInternalServerError, bulkFailure{Message: "Server error", Error: "internal error"})
}

func writeBulkReport(c echo.Context, out app.BulkUploadOutput) error {
	report := out.Report
	plural := report.PartyType.Plural()

	resp := bulkResponse{
		Success:    true,
		BatchID:    out.BatchID,
		Summary:    report.Summary,
		FailedRows: report.FailedRows,
	}

	switch report.PartyType {
	case domain.TypeEmployee:
		inserted := make([]insertedEmployeeJSON, 0, len(report.Inserted))
		for _, p := range report.Inserted {
			inserted = append(inserted, insertedEmployeeJSON{ID: p.ID, Name: p.Name, Email: p.Email, ContactNo: p.ContactNo, UniqueID: p.UniqueID, EmployeeID: p.Code})
		}
		resp.InsertedEmployees = &inserted
	default:
		inserted := make([]insertedRetailerJSON, 0, len(report.Inserted))
		for _, p := range report.Inserted {
			inserted = append(inserted, insertedRetailerJSON{ID: p.ID, Name: p.Name, Email: p.Email, ContactNo: p.ContactNo, UniqueID: p.UniqueID, RetailerCode: p.Code})
		}
		resp.InsertedRetailers = &inserted
	}

	switch report.Outcome() {
	case domain.OutcomeNoneInserted:
		resp.Success = false
		resp.Message = "No " + plural + " were added"
		return c.JSON(http.StatusBadRequest, resp)
	case domain.OutcomePartial:
		resp.Message = "Partial success"
		return c.JSON(http.StatusMultiStatus, resp)
	default:
		resp.Message = "All " + plural + " added successfully"
		return c.JSON(http.StatusCreated, resp)
	}
}

func (h *UploadHandler) ExportFailedRows(c echo.Context) error {
	var req exportFailedRowsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	t, err := domain.ParseType(req.PartyType)
	if err != nil {
		return badRequest(c, "partyType must be retailer or employee")
	}

	out, err := h.export.Execute(c.Request().Context(), app.ExportFailedRowsInput{
		Role:       principalFrom(c).Role,
		PartyType:  t,
		FailedRows: req.FailedRows,
	})
	if err != nil {
		return respondError(c, h.logger, err, []errorMapping{
			{app.ErrForbidden, http.StatusForbidden, "forbidden", "only admins can export failed rows"},
			{app.ErrNoFailedRows, http.StatusBadRequest, "no_failed_rows", "there are no failed rows to export"},
		}, "failed to export failed rows")
	}

	setAttachment(c, out.FileName)
	return c.Blob(http.StatusOK, spreadsheet.ContentTypeXLSX, out.Content)
}

func (h *UploadHandler) SampleTemplate(c echo.Context) error {
	t, err := domain.ParseType(c.Param("partyType"))
	if err != nil {
		return badRequest(c, "partyType must be retailer or employee")
	}

	out, err := h.samples.Execute(c.Request().Context(), app.GetSampleTemplateInput{PartyType: t})
	if err != nil {
		return respondError(c, h.logger, err, []errorMapping{
			{app.ErrTemplateNotFound, http.StatusNotFound, "not_found", "sample template not found"},
		}, "failed to load sample template")
	}
	defer out.Content.Close()

	setAttachment(c, out.FileName)
	return c.Stream(http.StatusOK, spreadsheet.ContentTypeXLSX, out.Content)
}

func setAttachment(c echo.Context, fileName string) {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
}
