package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/myschedule/internal/model"
)

// --- モック定義 ---

type mockSessionVerifier struct {
	currentSessionFn func(token string) *model.Session
}

func (m *mockSessionVerifier) CurrentSession(token string) *model.Session {
	if m.currentSessionFn != nil {
		return m.currentSessionFn(token)
	}
	return nil
}

// --- テスト ---

func TestSessionMiddleware_ValidToken_InjectsSession(t *testing.T) {
	verifier := &mockSessionVerifier{
		currentSessionFn: func(token string) *model.Session {
			if token == "valid-token" {
				return &model.Session{
					Email: "user@example.com",
					Name:  "Test User",
				}
			}
			return nil
		},
	}

	mw := NewSessionMiddleware(verifier)

	var captured *model.Session
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := SessionFromContext(r.Context())
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
		captured = sess
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/schedules", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "valid-token"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if captured == nil || captured.Email != "user@example.com" {
		t.Errorf("session = %+v, want email user@example.com", captured)
	}
}

func TestSessionMiddleware_NoCookie_Returns401(t *testing.T) {
	mw := NewSessionMiddleware(&mockSessionVerifier{})

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/schedules", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestSessionMiddleware_InvalidToken_Returns401(t *testing.T) {
	mw := NewSessionMiddleware(&mockSessionVerifier{})

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/schedules", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "tampered-token"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

// Cookie欠如と署名不正で同一のレスポンスボディが返ることを検証
func TestSessionMiddleware_401BodyIsIndistinguishable(t *testing.T) {
	mw := NewSessionMiddleware(&mockSessionVerifier{})

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	}))

	readBody := func(req *http.Request) string {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		body, err := io.ReadAll(w.Result().Body)
		if err != nil {
			t.Fatalf("failed to read body: %v", err)
		}
		return string(body)
	}

	missing := httptest.NewRequest(http.MethodGet, "/schedules", nil)

	invalid := httptest.NewRequest(http.MethodGet, "/schedules", nil)
	invalid.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "bad"})

	if readBody(missing) != readBody(invalid) {
		t.Error("missing-cookie and invalid-token responses must be identical")
	}

	var body ErrorResponseBody
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/schedules", nil))
	if err := json.NewDecoder(w.Result().Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if body.Code != model.ErrCodeUnauthorized {
		t.Errorf("error code = %q, want %q", body.Code, model.ErrCodeUnauthorized)
	}
}

func TestSessionFromContext_NoValue_ReturnsError(t *testing.T) {
	ctx := context.Background()
	_, err := SessionFromContext(ctx)
	if err == nil {
		t.Error("expected error for missing session in context")
	}
}

func TestSessionFromContext_ValidValue_ReturnsSession(t *testing.T) {
	ctx := ContextWithSession(context.Background(), &model.Session{Email: "a@example.com"})
	sess, err := SessionFromContext(ctx)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if sess.Email != "a@example.com" {
		t.Errorf("email = %q, want %q", sess.Email, "a@example.com")
	}
}
