// POST /register               # Create account (public, HTML form)
// POST /login                  # Log in (public, HTML form)
// GET  /logout                 # Log out (session)
// POST /forgot-password        # Email a reset link (public, HTML form)
// POST /reset-password/{token} # Set a new password (public, HTML form)
//
// GET    /api/entries      # List entries (auth)
// POST   /api/entries      # Create entry (auth)
// PUT    /api/entries/{id} # Update entry (auth)
// DELETE /api/entries/{id} # Delete entry (auth)

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	"diary/internal/config"
	"diary/internal/domain/entry"
	"diary/internal/domain/session"
	"diary/internal/domain/token"
	"diary/internal/domain/user"
	"diary/internal/infrastructure/storage/postgres"
	"diary/internal/mail"
	entryAPI "diary/internal/server/api/http/entry"
	healthAPI "diary/internal/server/api/http/health"
	"diary/internal/server/api/http/middleware"
	"diary/internal/server/api/http/middleware/auth"
	"diary/internal/server/api/http/middleware/logger"
	"diary/internal/server/web"
)

type Handlers struct {
	Health *healthAPI.Handler
	Entry  *entryAPI.Handler
	Web    *web.Handler
}

// New builds a *chi.Mux carrying both surfaces: the JSON entry API registered
// through huma and the HTML pages mounted directly on the router.
func New(cfg *config.Config, storage *postgres.Storage, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	humaConfig := huma.DefaultConfig("Encrypted Diary API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"session": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, humaConfig)

	h := handlers(cfg, storage, log)
	h.Health.SetupRoutes(API)
	h.Entry.SetupRoutes(API)
	h.Web.SetupRoutes(mux)

	return mux
}

func handlers(cfg *config.Config, storage *postgres.Storage, log *slog.Logger) *Handlers {
	pool := storage.Pool()

	sessionRepo := postgres.NewSessionRepository(pool, log)
	sessionService := session.NewService(sessionRepo, log)
	authMW := auth.New(sessionService, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	entryRepo := postgres.NewEntryRepository(pool, log)
	entryService := entry.NewService(entryRepo, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	entryHandler := entryAPI.NewHandler(entryService, log, middlewares.GetAllAndClear())

	userRepo := postgres.NewUserRepository(pool, log)
	resetCodec := token.New(cfg.Secret, token.SaltPasswordReset)
	userService := user.NewService(userRepo, resetCodec, log)
	mailer := mail.New(cfg.Mail, log)
	webHandler := web.NewHandler(userService, sessionService, mailer, cfg.Server.BaseURL, log)

	return &Handlers{
		Health: healthHandler,
		Entry:  entryHandler,
		Web:    webHandler,
	}
}
