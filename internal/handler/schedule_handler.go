package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/myschedule/internal/middleware"
	"github.com/hitoshi/myschedule/internal/model"
	"github.com/hitoshi/myschedule/internal/schedule"
)

// ScheduleServiceInterface は予定ハンドラーが必要とするサービスインターフェース。
type ScheduleServiceInterface interface {
	Create(ctx context.Context, input schedule.CreateInput) (*model.ScheduleEntry, error)
	List(ctx context.Context) ([]*model.ScheduleEntry, error)
	Get(ctx context.Context, id string) (*model.ScheduleEntry, error)
	Update(ctx context.Context, id string, input schedule.UpdateInput) (*model.ScheduleEntry, error)
	Delete(ctx context.Context, id string) error
}

// ScheduleHandler は予定管理のHTTPハンドラー。
type ScheduleHandler struct {
	service ScheduleServiceInterface
}

// NewScheduleHandler はScheduleHandlerを生成する。
func NewScheduleHandler(service ScheduleServiceInterface) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

// scheduleRequest は予定の作成・更新リクエストのボディ。
// 更新時はnilのフィールドを変更なしとして扱う。
type scheduleRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date"`
}

// scheduleResponse は予定のAPIレスポンス。
type scheduleResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateSchedule は予定を作成する。
// POST /schedules
func (h *ScheduleHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewInvalidBodyError())
		return
	}

	input := schedule.CreateInput{}
	if req.Title != nil {
		input.Title = *req.Title
	}
	if req.Description != nil {
		input.Description = *req.Description
	}
	if req.Date != nil {
		input.Date = *req.Date
	}

	entry, err := h.service.Create(r.Context(), input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toScheduleResponse(entry))
}

// ListSchedules は全予定を日時の昇順で返す。
// GET /schedules
func (h *ScheduleHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// 0件でもnullではなく空配列を返す
	responses := make([]scheduleResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, toScheduleResponse(entry))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(responses)
}

// GetSchedule は予定詳細を取得する。
// GET /schedules/:id
func (h *ScheduleHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entry, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toScheduleResponse(entry))
}

// UpdateSchedule は予定を部分更新する。
// PUT /schedules/:id
func (h *ScheduleHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewInvalidBodyError())
		return
	}

	entry, err := h.service.Update(r.Context(), id, schedule.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toScheduleResponse(entry))
}

// DeleteSchedule は予定を削除する。
// DELETE /schedules/:id
func (h *ScheduleHandler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "予定を削除しました。",
	})
}

// --- ヘルパー関数 ---

// toScheduleResponse はmodel.ScheduleEntryからAPIレスポンスに変換する。
func toScheduleResponse(entry *model.ScheduleEntry) scheduleResponse {
	return scheduleResponse{
		ID:          entry.ID,
		Title:       entry.Title,
		Description: entry.Description,
		Date:        entry.Date,
		CreatedAt:   entry.CreatedAt,
		UpdatedAt:   entry.UpdatedAt,
	}
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		statusCode := mapAPIErrorToHTTPStatus(apiErr)
		middleware.WriteErrorResponse(w, statusCode, apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	middleware.WriteInternalServerError(w)
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case model.ErrCodeAuthFailed:
		return http.StatusInternalServerError
	case model.ErrCodeMissingAuthCode:
		return http.StatusBadRequest
	case model.ErrCodeInvalidBody, model.ErrCodeInvalidTitle, model.ErrCodeInvalidDate:
		return http.StatusBadRequest
	case model.ErrCodeScheduleNotFound:
		return http.StatusNotFound
	case model.ErrCodeLinksRequired, model.ErrCodeInvalidLinkURL:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
