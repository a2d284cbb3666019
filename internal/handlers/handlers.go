package handlers

import (
	"Pomnim/internal/config"
	"Pomnim/internal/middleware"
	"Pomnim/internal/service"
	"errors"
	"net/http"

	"Pomnim/internal/slug"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	memorialService *service.MemorialService,
	editorService *service.EditorService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(userService, logger, config)
	memorialHandler := NewMemorialHandler(memorialService, logger)
	editorHandler := NewEditorHandler(editorService, logger)

	// User routes
	r.Post("/api/user/register", userHandler.Register)
	r.Post("/api/user/login", userHandler.Login)
	r.Post("/api/user/test", userHandler.Status)

	// Memorial routes
	r.Route("/api/memorials", func(r chi.Router) {
		r.Post("/", memorialHandler.Create)
		r.Route("/{identifier}", func(r chi.Router) {
			r.Get("/", memorialHandler.Get)
			r.Delete("/", memorialHandler.Delete)
			r.Put("/visibility", memorialHandler.UpdateVisibility)
			r.Get("/sections", memorialHandler.EditableSections)
			r.Put("/sections/{section}", memorialHandler.UpdateSection)

			r.Post("/editors", editorHandler.Grant)
			r.Get("/editors", editorHandler.List)
			r.Delete("/editors/{userID}", editorHandler.Revoke)
		})
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return &Handler{Router: r}
}

// actorFromRequest достаёт проверенную личность из контекста запроса.
// Отсутствие — это явный аноним, а не ошибка.
func actorFromRequest(r *http.Request) service.Actor {
	if uid, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		return service.Actor{ID: uid}
	}
	return service.Anonymous
}

// httpStatus переводит сигнальные ошибки ядра в коды ответа.
// Выбор 404/403/401 — забота этого слоя, ядро отдаёт только причину.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, service.ErrDuplicateGrant), errors.Is(err, service.ErrLoginTaken):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidSection), errors.Is(err, service.ErrInvalidVisibility):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, slug.ErrExhausted):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
