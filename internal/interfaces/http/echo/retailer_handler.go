package echo

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	app "github.com/mohammadpnp/party-onboarding/internal/application/party"
	"go.uber.org/zap"
)

var registrationFileFields = []string{
	app.FileOutletPhoto,
	app.FileGovtIDPhoto,
	app.FilePersonPhoto,
	app.FileRegistrationForm,
}

type RetailerHandler struct {
	register app.RegisterRetailer
	list     app.ListRetailers
	logger   *zap.Logger
}

type registerRetailerResponse struct {
	Message  string `json:"message"`
	ID       string `json:"id"`
	UniqueID string `json:"uniqueId"`
}

func NewRetailerHandler(register app.RegisterRetailer, list app.ListRetailers, logger *zap.Logger) *RetailerHandler {
	return &RetailerHandler{register: register, list: list, logger: orNop(logger)}
}

// Register accepts multipart or urlencoded forms. Nested fields may arrive under
// dotted keys such as shopDetails.shopName.
func (h *RetailerHandler) Register(c echo.Context) error {
	files := make(map[string]app.RegistrationFile)
	for _, field := range registrationFileFields {
		fh, err := c.FormFile(field)
		if err != nil {
			continue
		}
		files[field] = app.RegistrationFile{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		}
	}

	out, err := h.register.Execute(c.Request().Context(), app.RegisterRetailerInput{
		Form:  c.FormValue,
		Files: files,
	})
	if err != nil {
		return respondError(c, h.logger, err, []errorMapping{
			{app.ErrInvalidRegistration, http.StatusBadRequest, "bad_request", "Email and contact number are required"},
			{app.ErrFieldTooLong, http.StatusBadRequest, "field_too_long", "One or more fields exceed the allowed length"},
			{app.ErrPhoneNotVerified, http.StatusBadRequest, "phone_not_verified", "Please verify your phone number before registration"},
			{app.ErrDuplicateParty, http.StatusBadRequest, "duplicate", "Phone or email already registered"},
		}, "failed to register retailer")
	}

	return c.JSON(http.StatusCreated, apiResponse{Data: registerRetailerResponse{
		Message:  "Retailer registered successfully",
		ID:       out.ID,
		UniqueID: out.UniqueID,
	}})
}

func (h *RetailerHandler) List(c echo.Context) error {
	out, err := h.list.Execute(c.Request().Context(), app.ListRetailersInput{Role: principalFrom(c).Role})
	if err != nil {
		return respondError(c, h.logger, err, []errorMapping{
			{app.ErrForbidden, http.StatusForbidden, "forbidden", "only admins can list retailers"},
		}, "failed to list retailers")
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}
