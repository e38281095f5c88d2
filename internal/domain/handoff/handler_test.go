package handoff

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/medibridge/medibridge/internal/platform/auth"
	"github.com/medibridge/medibridge/internal/platform/httpx"
	"github.com/medibridge/medibridge/internal/platform/token"
)

func newTestHandler() (*Handler, *fixture, *token.Issuer, *echo.Echo) {
	f := newFixture()
	issuer := token.NewIssuer([]byte("test-secret"))
	h := NewHandler(f.svc, f.svc.users, f.svc.records, issuer)
	return h, f, issuer, echo.New()
}

func postJSON(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func asUser(c echo.Context, id uuid.UUID) {
	ctx := context.WithValue(c.Request().Context(), auth.UserIDKey, id.String())
	c.SetRequest(c.Request().WithContext(ctx))
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var resp struct {
		Success bool                       `json:"success"`
		Data    map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success envelope, got %s", rec.Body.String())
	}
	return resp.Data
}

func TestHandler_TokenHandoff(t *testing.T) {
	h, f, issuer, e := newTestHandler()
	u := seedUser(t, f)
	tok, err := issuer.Issue(u.ID.String())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("token")
	c.SetParamValues(tok)

	if err := h.TokenHandoff(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	data := decodeData(t, rec)
	if len(data) != 8 {
		t.Errorf("expected 8 bundle keys, got %d", len(data))
	}
	if strings.Contains(rec.Body.String(), `"password`) {
		t.Error("password material leaked in handoff response")
	}
}

func TestHandler_TokenHandoff_BadToken(t *testing.T) {
	h, _, _, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("token")
	c.SetParamValues("not-a-token")

	err := h.TokenHandoff(c)
	var appErr *httpx.Error
	if !errors.As(err, &appErr) || appErr.Kind != httpx.KindAuthorization {
		t.Errorf("expected authorization error, got %v", err)
	}
}

func TestHandler_ScanHandoff(t *testing.T) {
	h, f, _, e := newTestHandler()
	u := seedUser(t, f)

	c, rec := postJSON(e, `{"userId":"`+u.ID.String()+`","inputValue":"4567"}`)
	if err := h.ScanHandoff(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data := decodeData(t, rec)
	if len(data) != 8 {
		t.Errorf("expected 8 bundle keys, got %d", len(data))
	}
	if len(f.notifier.events) != 1 {
		t.Errorf("expected 1 scan notification, got %d", len(f.notifier.events))
	}
}

func TestHandler_ScanHandoff_WrongCode(t *testing.T) {
	h, f, _, e := newTestHandler()
	u := seedUser(t, f)

	c, _ := postJSON(e, `{"userId":"`+u.ID.String()+`","inputValue":"0000"}`)
	err := h.ScanHandoff(c)
	var appErr *httpx.Error
	if !errors.As(err, &appErr) || appErr.Kind != httpx.KindAuthorization {
		t.Errorf("expected authorization error, got %v", err)
	}
}

func TestHandler_ScanHandoff_BadUserID(t *testing.T) {
	h, _, _, e := newTestHandler()

	c, _ := postJSON(e, `{"userId":"42","inputValue":"4567"}`)
	err := h.ScanHandoff(c)
	var appErr *httpx.Error
	if !errors.As(err, &appErr) || appErr.Kind != httpx.KindValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestHandler_GetUserDetail_User(t *testing.T) {
	h, f, _, e := newTestHandler()
	u := seedUser(t, f)

	c, rec := postJSON(e, `{"detailType":"user"}`)
	asUser(c, u.ID)
	if err := h.GetUserDetail(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// data is a one-element list like every other detail type, so clients
	// indexing data[0] work uniformly.
	var resp struct {
		Data []struct {
			Email string `json:"email"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("expected one-element list, got %s", rec.Body.String())
	}
	if resp.Data[0].Email != "ann@x.com" {
		t.Errorf("expected owner identity in response, got %+v", resp.Data[0])
	}
}

func TestHandler_GetUserDetail_Records(t *testing.T) {
	h, f, _, e := newTestHandler()
	u := seedUser(t, f)

	c, rec := postJSON(e, `{"detailType":"appointments"}`)
	asUser(c, u.ID)
	if err := h.GetUserDetail(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if string(resp.Data) != "[]" {
		t.Errorf("expected empty list, got %s", resp.Data)
	}
}

func TestHandler_GetUserDetail_UnknownType(t *testing.T) {
	h, f, _, e := newTestHandler()
	u := seedUser(t, f)

	c, _ := postJSON(e, `{"detailType":"passwords"}`)
	asUser(c, u.ID)
	err := h.GetUserDetail(c)
	var appErr *httpx.Error
	if !errors.As(err, &appErr) || appErr.Kind != httpx.KindValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestHandler_StoreUserDetail(t *testing.T) {
	h, f, _, e := newTestHandler()
	u := seedUser(t, f)

	body := `{"detailType":"appointments","userId":"` + u.ID.String() + `",` +
		`"data":{"date":"2026-09-01T00:00:00Z","time":"10:30","doctor":"Dr. Roy","department":"Cardiology"}}`
	c, rec := postJSON(e, body)
	asUser(c, u.ID)
	if err := h.StoreUserDetail(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	if len(f.appointments.items) != 1 {
		t.Errorf("expected 1 stored appointment, got %d", len(f.appointments.items))
	}
}

func TestHandler_StoreUserDetail_MissingFields(t *testing.T) {
	h, _, _, e := newTestHandler()

	c, _ := postJSON(e, `{"detailType":"appointments"}`)
	err := h.StoreUserDetail(c)
	var appErr *httpx.Error
	if !errors.As(err, &appErr) || appErr.Kind != httpx.KindValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}
