package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/myschedule/internal/middleware"
	"github.com/hitoshi/myschedule/internal/model"
)

// LinksServiceInterface はリンク集ハンドラーが必要とするサービスインターフェース。
type LinksServiceInterface interface {
	Get(ctx context.Context) (map[string]string, error)
	Put(ctx context.Context, links map[string]string) error
}

// LinksHandler はリンク集のHTTPハンドラー。
type LinksHandler struct {
	service LinksServiceInterface
}

// NewLinksHandler はLinksHandlerを生成する。
func NewLinksHandler(service LinksServiceInterface) *LinksHandler {
	return &LinksHandler{service: service}
}

// putLinksRequest はリンク集更新リクエストのボディ。
// linksフィールドの欠如と空マッピングを区別するためポインタで受ける。
type putLinksRequest struct {
	Links *map[string]string `json:"links"`
}

// GetLinks はリンク集を返す。未作成の場合は空のマッピングを返す。
// GET /schedule
func (h *LinksHandler) GetLinks(w http.ResponseWriter, r *http.Request) {
	links, err := h.service.Get(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"links": links,
	})
}

// PutLinks はリンク集全体を置き換える。
// PUT /schedule
func (h *LinksHandler) PutLinks(w http.ResponseWriter, r *http.Request) {
	var req putLinksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewInvalidBodyError())
		return
	}
	if req.Links == nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewLinksRequiredError())
		return
	}

	if err := h.service.Put(r.Context(), *req.Links); err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "リンクを更新しました。",
		"links":   *req.Links,
	})
}
