package handlers

import (
	"Pomnim/internal/config"
	"Pomnim/internal/metrics"
	"Pomnim/internal/model"
	"Pomnim/internal/repo"
	"Pomnim/internal/service"
	"Pomnim/internal/slug"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// newTestApp собирает полный роутер поверх in-memory SQLite: та же цепочка
// мидлварей и сервисов, что и в проде, только база и логгер тестовые.
func newTestApp(t *testing.T) http.Handler {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dial := gormsqlite.Dialector{
		DriverName: "sqlite",
		DSN:        fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	}
	db, err := gorm.Open(dial, &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Memorial{}, &model.EditorGrant{}))

	cfg := &config.Config{AuthSecret: "test-secret", SlugRetryLimit: 1000}
	sugar := zap.NewNop().Sugar()
	m := metrics.New(prometheus.NewRegistry())

	userRepo := repo.NewUserRepository(db)
	memorialRepo := repo.NewMemorialRepository(db)
	grantRepo := repo.NewGrantRepository(db)

	userService := service.NewUserService(userRepo)
	identityService := service.NewIdentityService(memorialRepo, slug.NewAllocator(cfg.SlugRetryLimit))
	accessService := service.NewAccessService(grantRepo)
	memorialService := service.NewMemorialService(memorialRepo, identityService, accessService, m, sugar)
	editorService := service.NewEditorService(grantRepo, identityService)

	return NewHandler(userService, memorialService, editorService, sugar, cfg).Router
}

// doJSON выполняет запрос с JSON-телом и необязательной auth-cookie.
func doJSON(t *testing.T, h http.Handler, method, target string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// registerUser регистрирует пользователя и возвращает его auth-cookie.
func registerUser(t *testing.T, h http.Handler, login string) *http.Cookie {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/api/user/register",
		map[string]string{"login": login, "password": "secret"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	for _, c := range rec.Result().Cookies() {
		if c.Name == "auth_token" {
			return c
		}
	}
	t.Fatalf("auth_token cookie not set for %s", login)
	return nil
}

// decodeMemorial разбирает ответ хендлеров страницы.
func decodeMemorial(t *testing.T, rec *httptest.ResponseRecorder) MemorialResponse {
	t.Helper()
	var resp MemorialResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}
