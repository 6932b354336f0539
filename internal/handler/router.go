package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/myschedule/internal/metrics"
	"github.com/hitoshi/myschedule/internal/middleware"
)

// HealthChecker はデータベース接続の死活確認を行う。
// *sql.DBがそのまま満たす。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ヘルスチェック対象（通常は*sql.DB）。nilの場合は死活確認をスキップする。
	HealthChecker HealthChecker

	// ミドルウェア依存
	SessionVerifier   middleware.SessionVerifier
	CORSAllowedOrigin string
	Logger            *slog.Logger

	// メトリクス
	MetricsCollector *metrics.Collector
	MetricsGatherer  prometheus.Gatherer

	// 認証
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig

	// 予定
	ScheduleService ScheduleServiceInterface

	// リンク集
	LinksService LinksServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Logging → Metrics
//
// セッションミドルウェアで保護するのはリンク集の更新（PUT /schedule）のみ。
// 予定CRUDとリンク集の読み取りは認証不要。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	if deps.CORSAllowedOrigin != "" {
		r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	}
	if deps.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	}
	if deps.MetricsCollector != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.MetricsCollector))
	}

	var loginMetrics LoginMetrics
	if deps.MetricsCollector != nil {
		loginMetrics = deps.MetricsCollector
	}

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig, loginMetrics)
	scheduleHandler := NewScheduleHandler(deps.ScheduleService)
	linksHandler := NewLinksHandler(deps.LinksService)

	sessionRequired := middleware.NewSessionMiddleware(deps.SessionVerifier)

	// 稼働確認
	r.Get("/", handleRoot)
	r.Get("/health", newHealthHandler(deps.HealthChecker))

	// Prometheusスクレイプ
	if deps.MetricsGatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.MetricsGatherer))
	}

	// 認証ルート（OAuthフロー）
	r.Get("/login", authHandler.Login)
	r.Get("/callback", authHandler.Callback)
	r.Get("/logout", authHandler.Logout)
	r.Get("/me", authHandler.Me)

	// 予定管理（認証不要）
	r.Route("/schedules", func(r chi.Router) {
		r.Get("/", scheduleHandler.ListSchedules)
		r.Post("/", scheduleHandler.CreateSchedule)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", scheduleHandler.GetSchedule)
			r.Put("/", scheduleHandler.UpdateSchedule)
			r.Delete("/", scheduleHandler.DeleteSchedule)
		})
	})

	// リンク集（読み取りは公開、更新はセッション必須）
	r.Route("/schedule", func(r chi.Router) {
		r.Get("/", linksHandler.GetLinks)
		r.With(sessionRequired).Put("/", linksHandler.PutLinks)
	})

	return r
}

// handleRoot は稼働確認用のルートエンドポイント。
// GET /
func handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "MySchedule API",
	})
}

// newHealthHandler はヘルスチェックエンドポイントのハンドラーを生成する。
// DB接続に到達できない場合は503を返し、コンテナオーケストレーターに再起動を促す。
// GET /health
func newHealthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if checker != nil {
			if err := checker.PingContext(r.Context()); err != nil {
				slog.Error("health check failed", slog.String("error", err.Error()))
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "unavailable",
				})
				return
			}
		}

		json.NewEncoder(w).Encode(map[string]string{
			"status": "ok",
		})
	}
}
