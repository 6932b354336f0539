// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/myschedule/internal/middleware"
	"github.com/hitoshi/myschedule/internal/model"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	LoginURL(redirectURI string) string
	HandleCallback(ctx context.Context, code, redirectURI string) (string, error)
	CurrentSession(token string) *model.Session
}

// LoginMetrics はログイン結果の記録に必要なインターフェース。
// metrics.MetricsCollectorの部分集合として定義する。
type LoginMetrics interface {
	RecordLoginSuccess()
	RecordLoginFailure()
}

// noopLoginMetrics はメトリクス未設定時のフォールバック。
type noopLoginMetrics struct{}

func (noopLoginMetrics) RecordLoginSuccess() {}
func (noopLoginMetrics) RecordLoginFailure() {}

// AuthHandlerConfig は認証ハンドラーの設定。
type AuthHandlerConfig struct {
	BaseURL       string // ログイン後のリダイレクト先。未設定時は "/"
	CookieDomain  string
	CookieSecure  bool
	SessionMaxAge int // セッションCookieの有効期間（秒）
}

// AuthHandler はOAuth認証関連のHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
	config  AuthHandlerConfig
	metrics LoginMetrics
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface, config AuthHandlerConfig, loginMetrics LoginMetrics) *AuthHandler {
	if config.BaseURL == "" {
		config.BaseURL = "/"
	}
	if loginMetrics == nil {
		loginMetrics = noopLoginMetrics{}
	}
	return &AuthHandler{
		service: service,
		config:  config,
		metrics: loginMetrics,
	}
}

// callbackURL はリクエストからOAuthコールバックの絶対URLを導出する。
// リバースプロキシ配下ではX-Forwarded-Proto / X-Forwarded-Hostを優先する。
// ログイン時とコールバック時で同一の値になることがトークン交換の前提となる。
func callbackURL(r *http.Request) string {
	proto := r.Header.Get("X-Forwarded-Proto")
	if proto == "" {
		proto = "http"
	}
	host := r.Header.Get("X-Forwarded-Host")
	if host == "" {
		host = r.Host
	}
	return proto + "://" + host + "/callback"
}

// Login はGoogle OAuthフローを開始する。
// GET /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	url := h.service.LoginURL(callbackURL(r))
	http.Redirect(w, r, url, http.StatusFound)
}

// Callback はOAuthコールバックを処理する。
// GET /callback?code=xxx
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		h.metrics.RecordLoginFailure()
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewMissingAuthCodeError())
		return
	}

	token, err := h.service.HandleCallback(r.Context(), code, callbackURL(r))
	if err != nil {
		// 失敗理由の詳細はログのみに残し、レスポンスには含めない
		slog.Error("oauth callback failed", slog.String("error", err.Error()))
		h.metrics.RecordLoginFailure()
		middleware.WriteErrorResponse(w, http.StatusInternalServerError, model.NewAuthFailedError())
		return
	}

	// セッションCookieを設定（HTTP Only）
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   h.config.SessionMaxAge,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	h.metrics.RecordLoginSuccess()
	http.Redirect(w, r, h.config.BaseURL, http.StatusFound)
}

// Logout はセッションCookieをクリアする。
// サーバー側に破棄する状態はないため、Cookieなしで呼ばれても成功する。
// GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	// MaxAge: -1に加えて過去のExpiresも設定し、Max-Ageを解釈しない
	// 古いクライアントでも確実に破棄させる
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.config.BaseURL, http.StatusFound)
}

// Me は現在のセッション情報を返す。
// 未認証でも401にはせず、userをnullにして200を返す。
// GET /me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	var sess *model.Session
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		sess = h.service.CurrentSession(cookie.Value)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"user": sess,
	})
}
