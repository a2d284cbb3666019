package main

import (
	"Pomnim/internal/config"
	"Pomnim/internal/handlers"
	"Pomnim/internal/metrics"
	"Pomnim/internal/middleware"
	"Pomnim/internal/repo"
	"Pomnim/internal/service"
	"Pomnim/internal/slug"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	// Repositories
	userRepo := repo.NewUserRepository(gormDB)
	memorialRepo := repo.NewMemorialRepository(gormDB)
	grantRepo := repo.NewGrantRepository(gormDB)

	// Services
	userService := service.NewUserService(userRepo)
	identityService := service.NewIdentityService(memorialRepo, slug.NewAllocator(cfg.SlugRetryLimit))
	accessService := service.NewAccessService(grantRepo)
	memorialService := service.NewMemorialService(memorialRepo, identityService, accessService, m, sugar)
	editorService := service.NewEditorService(grantRepo, identityService)

	h := handlers.NewHandler(userService, memorialService, editorService, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"SlugRetryLimit", cfg.SlugRetryLimit,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
