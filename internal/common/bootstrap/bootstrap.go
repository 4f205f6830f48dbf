package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	articlehttp "github.com/AlibekovAA/ricebook/backend/internal/article/http"
	articlerepo "github.com/AlibekovAA/ricebook/backend/internal/article/repository"
	articleservice "github.com/AlibekovAA/ricebook/backend/internal/article/service"
	authhttp "github.com/AlibekovAA/ricebook/backend/internal/auth/http"
	authservice "github.com/AlibekovAA/ricebook/backend/internal/auth/service"
	"github.com/AlibekovAA/ricebook/backend/internal/common/clock"
	"github.com/AlibekovAA/ricebook/backend/internal/common/config"
	"github.com/AlibekovAA/ricebook/backend/internal/common/constants"
	commoncrypto "github.com/AlibekovAA/ricebook/backend/internal/common/crypto"
	"github.com/AlibekovAA/ricebook/backend/internal/common/db"
	commonhttp "github.com/AlibekovAA/ricebook/backend/internal/common/http"
	"github.com/AlibekovAA/ricebook/backend/internal/common/logger"
	"github.com/AlibekovAA/ricebook/backend/internal/common/sessionauth"
	followrepo "github.com/AlibekovAA/ricebook/backend/internal/following/repository"
	followhttp "github.com/AlibekovAA/ricebook/backend/internal/following/http"
	followservice "github.com/AlibekovAA/ricebook/backend/internal/following/service"
	profilehttp "github.com/AlibekovAA/ricebook/backend/internal/profile/http"
	profileservice "github.com/AlibekovAA/ricebook/backend/internal/profile/service"
	"github.com/AlibekovAA/ricebook/backend/internal/session"
	userrepo "github.com/AlibekovAA/ricebook/backend/internal/user/repository"
)

const ServiceName = "ricebook"

type sessionStore interface {
	session.Store
	session.ExpiredDeleter
}

type App struct {
	Config config.Config
	Log    *logger.Logger
	Pool   *pgxpool.Pool

	UserRepo    userrepo.Repository
	FollowRepo  followrepo.Repository
	ArticleRepo articlerepo.Repository
	Sessions    sessionStore

	AuthService      *authservice.AuthService
	ProfileService   *profileservice.ProfileService
	FollowingService *followservice.FollowingService
	ArticleService   *articleservice.ArticleService

	limiter *commonhttp.StrictRateLimiter
}

// New wires stores, services and the rate limiter. With a database URL the
// stores are Postgres-backed and migrations run first when enabled.
func New(ctx context.Context, cfg config.Config, log *logger.Logger) (*App, error) {
	app := &App{Config: cfg, Log: log}
	clk := clock.NewRealClock()

	if cfg.UsesPostgres() {
		if cfg.RunMigrations {
			if err := db.Migrate(ctx, log, cfg.DatabaseURL); err != nil {
				return nil, err
			}
		}

		pool, err := db.NewPool(ctx, log, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		app.Pool = pool
		app.UserRepo = userrepo.NewPgRepository(pool)
		app.FollowRepo = followrepo.NewPgRepository(pool)
		app.ArticleRepo = articlerepo.NewPgRepository(pool)
	} else {
		log.Warn("DATABASE_URL is empty, using in-memory stores")
		app.UserRepo = userrepo.NewMemoryRepository()
		app.FollowRepo = followrepo.NewMemoryRepository()
		app.ArticleRepo = articlerepo.NewMemoryRepository()
	}

	if cfg.SessionStore == config.SessionStorePostgres {
		app.Sessions = session.NewPgStore(app.Pool, clk)
	} else {
		app.Sessions = session.NewMemoryStore(clk)
	}

	app.AuthService = authservice.NewAuthService(authservice.AuthServiceDeps{
		Repo:           app.UserRepo,
		Sessions:       app.Sessions,
		Hasher:         commoncrypto.NewBcryptHasher(cfg.BcryptCost),
		IDGenerator:    commoncrypto.NewUUIDGenerator(),
		TokenGenerator: commoncrypto.NewTokenGenerator(),
		Clock:          clk,
		Log:            log,
	}, authservice.AuthServiceConfig{SessionTTL: cfg.SessionTTL})
	app.ProfileService = profileservice.NewProfileService(app.UserRepo, log)
	app.FollowingService = followservice.NewFollowingService(app.UserRepo, app.FollowRepo, log)
	app.ArticleService = articleservice.NewArticleService(app.ArticleRepo, commoncrypto.NewUUIDGenerator(), clk, log)

	app.limiter = commonhttp.NewStrictRateLimiter(cfg.TrustProxyHeaders)

	return app, nil
}

// Start launches the background loops; they stop when ctx is done.
func (a *App) Start(ctx context.Context) {
	go session.StartCleanup(ctx, a.Sessions, a.Log, a.Config.SessionCleanupInterval)
	if a.Pool != nil {
		db.StartPoolMetrics(ctx, a.Pool, constants.DBPoolMetricsInterval)
	}
}

func (a *App) Handler() http.Handler {
	r := commonhttp.NewRouter(ServiceName)
	checks := map[string]commonhttp.Check{}
	if a.Pool != nil {
		checks["postgres"] = a.Pool.Ping
	}
	r.Get("/health", commonhttp.HealthHandler(a.Log, checks))
	r.Handle("/metrics", promhttp.Handler())

	gate := sessionauth.Middleware(a.AuthService, a.Config.SessionCookieName, a.Log)

	r.Group(func(r chi.Router) {
		r.Use(commonhttp.WithTimeout(a.Config.RequestTimeout))
		r.Use(a.limiter.MiddlewareForPath(""))

		authhttp.NewHandler(a.AuthService, authhttp.CookieConfig{
			Name:   a.Config.SessionCookieName,
			Secure: a.Config.CookieSecure,
		}, a.Log).Mount(r, gate, a.limiter)
		profilehttp.NewHandler(a.ProfileService, a.Log).Mount(r, gate)
		followhttp.NewHandler(a.FollowingService, a.Log).Mount(r, gate)
		articlehttp.NewHandler(a.ArticleService, a.Log).Mount(r, gate)
	})

	return commonhttp.BuildBaseHandler(a.Log, r)
}

func (a *App) Close() {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.Pool != nil {
		a.Pool.Close()
	}
}
