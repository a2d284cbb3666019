package handlers

import (
	"Pomnim/internal/model"
	"Pomnim/internal/service"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MemorialHandler обрабатывает создание, чтение и правку страниц.
type MemorialHandler struct {
	Memorials *service.MemorialService
	Logger    *zap.SugaredLogger
}

// NewMemorialHandler создаёт хендлер memorial
func NewMemorialHandler(memorials *service.MemorialService, logger *zap.SugaredLogger) *MemorialHandler {
	return &MemorialHandler{Memorials: memorials, Logger: logger}
}

// CreateMemorialRequest — тело запроса создания страницы.
type CreateMemorialRequest struct {
	DisplayName    string  `json:"display_name"`
	Visibility     string  `json:"visibility,omitempty"`
	AllowedUserIDs []int64 `json:"allowed_user_ids,omitempty"`
}

// MemorialResponse — публичное представление страницы.
type MemorialResponse struct {
	ID          string                       `json:"id"`
	DisplayName string                       `json:"display_name"`
	Slug        string                       `json:"slug"`
	CustomSlug  string                       `json:"custom_slug,omitempty"`
	ShareURL    string                       `json:"share_url"`
	Visibility  string                       `json:"visibility"`
	ViewCount   int64                        `json:"view_count"`
	Sections    map[model.SectionTag]string  `json:"sections,omitempty"`
	CreatedAt   time.Time                    `json:"created_at"`
}

func toMemorialResponse(m *model.Memorial) MemorialResponse {
	resp := MemorialResponse{
		ID:          m.ID,
		DisplayName: m.DisplayName,
		Slug:        m.PublicSlug(),
		ShareURL:    m.ShareURL,
		Visibility:  string(m.Visibility),
		ViewCount:   m.ViewCount,
		Sections:    m.Sections,
		CreatedAt:   m.CreatedAt,
	}
	if m.CustomSlug != nil {
		resp.CustomSlug = *m.CustomSlug
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Create создаёт страницу. Публичные идентификаторы выделяются здесь же,
// одним потоком с вставкой.
func (h *MemorialHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)
	if actor.IsAnonymous() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateMemorialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DisplayName == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	m, err := h.Memorials.Create(r.Context(), actor, service.CreateInput{
		DisplayName:    req.DisplayName,
		Visibility:     model.Visibility(req.Visibility),
		AllowedUserIDs: req.AllowedUserIDs,
	})
	if err != nil {
		h.Logger.Errorw("memorial create failed", "error", err)
		http.Error(w, err.Error(), httpStatus(err))
		return
	}
	writeJSON(w, http.StatusCreated, toMemorialResponse(m))
}

// Get отдаёт страницу по любому публичному идентификатору.
func (h *MemorialHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)
	identifier := chi.URLParam(r, "identifier")

	m, err := h.Memorials.Get(r.Context(), actor, identifier)
	if err != nil {
		http.Error(w, err.Error(), httpStatus(err))
		return
	}
	writeJSON(w, http.StatusOK, toMemorialResponse(m))
}

// UpdateSectionRequest — тело правки раздела.
type UpdateSectionRequest struct {
	Content string `json:"content"`
}

// UpdateSection записывает содержимое раздела.
func (h *MemorialHandler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)
	identifier := chi.URLParam(r, "identifier")
	section := chi.URLParam(r, "section")

	var req UpdateSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := h.Memorials.UpdateSection(r.Context(), actor, identifier, section, req.Content); err != nil {
		http.Error(w, err.Error(), httpStatus(err))
		return
	}
	w.WriteHeader(http.StatusOK)
}

// UpdateVisibilityRequest — тело смены видимости.
type UpdateVisibilityRequest struct {
	Visibility string `json:"visibility"`
}

// UpdateVisibility переключает страницу public/private. Только владелец.
func (h *MemorialHandler) UpdateVisibility(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)
	identifier := chi.URLParam(r, "identifier")

	var req UpdateVisibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := h.Memorials.UpdateVisibility(r.Context(), actor, identifier, model.Visibility(req.Visibility)); err != nil {
		http.Error(w, err.Error(), httpStatus(err))
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Delete удаляет страницу. Только владелец.
func (h *MemorialHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)
	identifier := chi.URLParam(r, "identifier")

	if err := h.Memorials.Delete(r.Context(), actor, identifier); err != nil {
		http.Error(w, err.Error(), httpStatus(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EditableSections — какие разделы актор может править (подсказка для UI).
func (h *MemorialHandler) EditableSections(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)
	identifier := chi.URLParam(r, "identifier")

	sections, err := h.Memorials.EditableSections(r.Context(), actor, identifier)
	if err != nil {
		http.Error(w, err.Error(), httpStatus(err))
		return
	}
	if sections == nil {
		sections = []model.SectionTag{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"sections": sections})
}
