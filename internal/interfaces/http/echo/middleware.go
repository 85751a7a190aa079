package echo

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mohammadpnp/party-onboarding/internal/infrastructure/auth"
	"go.uber.org/zap"
)

const principalKey = "principal"

type tokenParser interface {
	Parse(token string) (auth.Principal, error)
}

// JWTAuth requires a bearer token and stores the caller on the context.
func JWTAuth(parser tokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return errorJSON(c, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			}

			p, err := parser.Parse(strings.TrimSpace(token))
			if err != nil {
				return errorJSON(c, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
			}

			c.Set(principalKey, p)
			return next(c)
		}
	}
}

func principalFrom(c echo.Context) auth.Principal {
	p, _ := c.Get(principalKey).(auth.Principal)
	return p
}

// RequestLogger logs one line per request.
func RequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	logger = orNop(logger)
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("request_id", v.RequestID),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				logger.Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	})
}

// RequestValidator plugs validator/v10 into echo.Context.Validate.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

func (v *RequestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

// bindAndValidate reports false after writing a 400 for a malformed body.
func bindAndValidate(c echo.Context, req any, message string) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, badRequest(c, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return false, badRequest(c, message)
	}
	return true, nil
}
