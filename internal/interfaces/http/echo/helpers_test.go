package echo_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mohammadpnp/party-onboarding/internal/domain/account"
	"github.com/mohammadpnp/party-onboarding/internal/infrastructure/auth"
	httpecho "github.com/mohammadpnp/party-onboarding/internal/interfaces/http/echo"
)

const testSecret = "test-secret"

func newServer(h httpecho.Handlers) *echo.Echo {
	e := echo.New()
	httpecho.RegisterRoutes(e, httpecho.JWTAuth(auth.NewJWTManager(testSecret)), h)
	return e
}

func bearer(t *testing.T, role string) string {
	t.Helper()

	token, err := auth.NewJWTManager(testSecret).Issue(auth.Principal{UserID: "user-1", Role: role}, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return "Bearer " + token
}

func adminToken(t *testing.T) string {
	return bearer(t, account.RoleAdmin)
}

func jsonRequest(method, target, body, token string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, token)
	}
	return req
}

// multipartRequest builds a form with the given text fields and files keyed by
// form field name.
func multipartRequest(t *testing.T, target string, fields map[string]string, files map[string]string, token string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	for field, name := range files {
		part, err := w.CreateFormFile(field, name)
		if err != nil {
			t.Fatalf("create file part: %v", err)
		}
		if _, err := io.WriteString(part, "content of "+name); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, token)
	}
	return req
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unexpected json %q: %v", rec.Body.String(), err)
	}
	return got
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	body, ok := decodeBody(t, rec)["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
	code, _ := body["code"].(string)
	return code
}
