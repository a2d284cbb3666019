package handlers

import (
	"Pomnim/internal/model"
	"Pomnim/internal/service"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// EditorHandler обрабатывает управление грантами редакторов.
type EditorHandler struct {
	Editors *service.EditorService
	Logger  *zap.SugaredLogger
}

// NewEditorHandler создаёт хендлер editors
func NewEditorHandler(editors *service.EditorService, logger *zap.SugaredLogger) *EditorHandler {
	return &EditorHandler{Editors: editors, Logger: logger}
}

// GrantRequest — тело выдачи гранта.
type GrantRequest struct {
	UserID   int64    `json:"user_id"`
	Sections []string `json:"sections"`
	Role     string   `json:"role,omitempty"`
}

// GrantResponse — представление гранта.
type GrantResponse struct {
	UserID    int64              `json:"user_id"`
	Sections  []model.SectionTag `json:"sections"`
	Role      string             `json:"role,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

func toGrantResponse(g *model.EditorGrant) GrantResponse {
	return GrantResponse{
		UserID:    g.UserID,
		Sections:  g.Sections,
		Role:      g.Role,
		CreatedAt: g.CreatedAt,
	}
}

// Grant выдаёт пользователю право правки разделов. Только владелец.
func (h *EditorHandler) Grant(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)
	identifier := chi.URLParam(r, "identifier")

	var req GrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == 0 {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	g, err := h.Editors.Grant(r.Context(), actor, identifier, req.UserID, req.Sections, req.Role)
	if err != nil {
		http.Error(w, err.Error(), httpStatus(err))
		return
	}
	writeJSON(w, http.StatusCreated, toGrantResponse(g))
}

// Revoke отзывает грант. Идемпотентен.
func (h *EditorHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)
	identifier := chi.URLParam(r, "identifier")

	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if err := h.Editors.Revoke(r.Context(), actor, identifier, userID); err != nil {
		http.Error(w, err.Error(), httpStatus(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// List возвращает гранты страницы в порядке выдачи. Только владелец.
func (h *EditorHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)
	identifier := chi.URLParam(r, "identifier")

	grants, err := h.Editors.ListGrants(r.Context(), actor, identifier)
	if err != nil {
		http.Error(w, err.Error(), httpStatus(err))
		return
	}

	resp := make([]GrantResponse, 0, len(grants))
	for i := range grants {
		resp = append(resp, toGrantResponse(&grants[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"editors": resp})
}
