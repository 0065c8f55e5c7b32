package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func TestSession_IssuesCookieForNewVisitor(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured string
	handler := Session()(func(c echo.Context) error {
		captured = GetSessionID(c)
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, err := uuid.Parse(captured); err != nil {
		t.Errorf("Expected a UUID session ID, got %q", captured)
	}

	cookies := rec.Result().Cookies()
	found := false
	for _, cookie := range cookies {
		if cookie.Name == SessionCookieName {
			found = true
			if cookie.Value != captured {
				t.Errorf("Expected cookie %q to match context session %q", cookie.Value, captured)
			}
			if !cookie.HttpOnly {
				t.Error("Expected HttpOnly session cookie")
			}
		}
	}
	if !found {
		t.Error("Expected session cookie on response")
	}
}

func TestSession_ReusesValidCookie(t *testing.T) {
	e := echo.New()
	existing := uuid.New().String()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: existing})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured string
	handler := Session()(func(c echo.Context) error {
		captured = GetSessionID(c)
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if captured != existing {
		t.Errorf("Expected session %q reused, got %q", existing, captured)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("Expected no new cookie for a valid session")
	}
}

func TestSession_RejectsMalformedCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "not-a-uuid"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured string
	handler := Session()(func(c echo.Context) error {
		captured = GetSessionID(c)
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if captured == "not-a-uuid" {
		t.Error("Expected malformed cookie replaced")
	}
	if _, err := uuid.Parse(captured); err != nil {
		t.Errorf("Expected a fresh UUID, got %q", captured)
	}
}

func TestGetSessionID_WithoutMiddleware(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	if id := GetSessionID(c); id != "" {
		t.Errorf("Expected empty session ID, got %q", id)
	}
}
