package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo) {
	svc, _ := newTestService()
	return NewHandler(svc), echo.New()
}

func postJSON(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

const annBody = `{"name":"Ann","age":30,"gender":"F","bloodGroup":"O+","contact":"5551234567","email":"ann@x.com","password":"pw"}`

func TestHandler_Signup(t *testing.T) {
	h, e := newTestHandler()
	c, rec := postJSON(e, annBody)

	if err := h.Signup(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var resp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
		User    struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Token == "" {
		t.Errorf("expected success with token, got %+v", resp)
	}
	if resp.User.Email != "ann@x.com" {
		t.Errorf("unexpected user in response: %+v", resp.User)
	}
	if strings.Contains(rec.Body.String(), `"password`) {
		t.Error("password material leaked in signup response")
	}
}

func TestHandler_Signup_MissingFields(t *testing.T) {
	h, e := newTestHandler()
	c, _ := postJSON(e, `{"email":"ann@x.com","password":"pw"}`)

	if err := h.Signup(c); err == nil {
		t.Error("expected error for missing fields")
	}
}

func TestHandler_Signin(t *testing.T) {
	h, e := newTestHandler()
	c, _ := postJSON(e, annBody)
	if err := h.Signup(c); err != nil {
		t.Fatalf("signup: %v", err)
	}

	c, rec := postJSON(e, `{"email":"ann@x.com","password":"pw"}`)
	if err := h.Signin(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_Signin_WrongPassword(t *testing.T) {
	h, e := newTestHandler()
	c, _ := postJSON(e, annBody)
	if err := h.Signup(c); err != nil {
		t.Fatalf("signup: %v", err)
	}

	c, _ = postJSON(e, `{"email":"ann@x.com","password":"nope"}`)
	if err := h.Signin(c); err == nil {
		t.Error("expected error for wrong password")
	}
}
