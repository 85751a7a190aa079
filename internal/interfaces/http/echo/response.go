package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiResponse struct {
	Data  any        `json:"data,omitempty"`
	Error *errorBody `json:"error,omitempty"`
}

type messageData struct {
	Message string `json:"message"`
}

// errorMapping translates one application error into a response.
type errorMapping struct {
	err     error
	status  int
	code    string
	message string
}

func errorJSON(c echo.Context, status int, code, message string) error {
	return c.JSON(status, apiResponse{Error: &errorBody{Code: code, Message: message}})
}

// respondError writes the first mapping that matches err. Anything else is
// logged and answered with an opaque 500.
func respondError(c echo.Context, logger *zap.Logger, err error, mappings []errorMapping, fallback string) error {
	for _, m := range mappings {
		if errors.Is(err, m.err) {
			return errorJSON(c, m.status, m.code, m.message)
		}
	}

	logger.Error("request failed",
		zap.String("path", c.Path()),
		zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		zap.Error(err),
	)
	return errorJSON(c, http.StatusInternalServerError, "internal_error", fallback)
}

func badRequest(c echo.Context, message string) error {
	return errorJSON(c, http.StatusBadRequest, "bad_request", message)
}

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
