package bootstrap

import (
	"context"
	"net/http"
	"time"

	"github.com/baechuer/inventory-service/internal/application/auth"
	"github.com/baechuer/inventory-service/internal/application/product"
	"github.com/baechuer/inventory-service/internal/config"
	"github.com/baechuer/inventory-service/internal/infrastructure/googleauth"
	"github.com/baechuer/inventory-service/internal/infrastructure/memory"
	rabbitmq_pub "github.com/baechuer/inventory-service/internal/infrastructure/messaging/rabbitmq"
	"github.com/baechuer/inventory-service/internal/infrastructure/mongodb"
	"github.com/baechuer/inventory-service/internal/infrastructure/redis"
	"github.com/baechuer/inventory-service/internal/infrastructure/security"
	"github.com/baechuer/inventory-service/internal/logger"
	http_handlers "github.com/baechuer/inventory-service/internal/transport/http/handlers"
	"github.com/baechuer/inventory-service/internal/transport/http/middleware"
	"github.com/baechuer/inventory-service/internal/transport/http/response"
	"github.com/baechuer/inventory-service/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing.
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	// NewStore connects the document store. It may return (nil, nil, err);
	// in dev the bootstrap falls back to in-memory repos.
	NewStore func(ctx context.Context, cfg *config.Config) (Store, func(), error)

	NewRedis func(addr, password string, db int) RedisClient

	NewPublisher func(rabbitURL string) (Publisher, error)

	NewRouter func(router.Deps) (http.Handler, error)
}

// Store bundles the persistence ports plus the readiness probe.
type Store struct {
	Users    auth.UserRepo
	Products product.Repo
	Pinger   http_handlers.Pinger
}

type RedisClient interface {
	Ping(ctx context.Context) error
	Close() error
}

type Publisher interface {
	PublishUserRegistered(ctx context.Context, evt auth.UserRegisteredEvent) error
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	var cleanupFns []func()

	// 1) document store
	store, storeCleanup, err := deps.NewStore(context.Background(), cfg)
	if err != nil {
		if cfg.Env != "dev" {
			return nil, nil, err
		}
		logger.Logger.Warn().Err(err).Msg("mongodb unavailable; using in-memory store")
		store = Store{
			Users:    memory.NewUserRepo(),
			Products: memory.NewProductRepo(),
		}
	} else if storeCleanup != nil {
		cleanupFns = append(cleanupFns, storeCleanup)
	}

	// 2) redis (best-effort, only used for rate limiting)
	var redisCli RedisClient
	if deps.NewRedis != nil && cfg.RedisAddr != "" {
		c := deps.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := c.Ping(ctx); err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; rate limiting disabled")
			_ = c.Close()
		} else {
			logger.Logger.Info().Msg("redis connected")
			redisCli = c
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
		}
	}

	// 3) publisher
	var pub auth.EventPublisher = memory.NewNoopPublisher()
	if deps.NewPublisher != nil && cfg.RabbitURL != "" {
		p, err := deps.NewPublisher(cfg.RabbitURL)
		if err != nil {
			if cfg.Env != "dev" {
				runCleanup(cleanupFns)
				return nil, nil, err
			}
			logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable; using noop publisher")
		} else {
			if e, ok := p.(interface{ SetExchange(string) }); ok {
				e.SetExchange(cfg.RabbitExchange)
			}
			if c, ok := p.(interface{ Close() error }); ok {
				cleanupFns = append(cleanupFns, func() { _ = c.Close() })
			}
			pub = p
		}
	}

	// 4) security
	logger.Logger.Info().Str("issuer", cfg.JWTIssuer).Msg("initializing jwt signer")
	hasher := security.NewBcryptHasher(12)
	signer := security.NewJWTSigner(cfg.JWTSecret, cfg.JWTIssuer)

	var verifier auth.GoogleVerifier
	if cfg.GoogleClientID != "" {
		verifier = googleauth.NewVerifier(cfg.GoogleClientID)
	} else {
		logger.Logger.Warn().Msg("GOOGLE_CLIENT_ID not set; google sign-in disabled")
	}

	// 5) services
	authSvc := auth.NewService(
		store.Users,
		hasher,
		signer,
		verifier,
		pub,
		auth.Config{SessionTTL: cfg.SessionTokenTTL},
	)

	authSvc = authSvc.WithAudit(func(action string, fields map[string]string) {
		evt := logger.Logger.Info().
			Bool("audit", true).
			Str("action", action)
		for k, v := range fields {
			evt = evt.Str(k, v)
		}
		evt.Msg("audit")
	})

	productSvc := product.NewService(store.Products)

	// 6) handlers + middleware
	authH := http_handlers.NewAuthHandler(authSvc)
	productH := http_handlers.NewProductHandler(productSvc)
	healthH := http_handlers.NewHealthHandler(store.Pinger)

	authMW := middleware.Auth(signer, store.Users, response.WriteError)

	// rate limit (fail-open)
	var loginRL func(http.Handler) http.Handler
	if redisCli != nil {
		if rc, ok := redisCli.(*redis.Client); ok {
			loginRL = middleware.RateLimitFixedWindow(
				redis.NewFixedWindowLimiter(rc),
				middleware.FixedWindowConfig{
					RouteKey: "auth.login",
					Limit:    cfg.LoginRateLimit,
					Window:   cfg.LoginRateWindow,
				},
				response.WriteError,
			)
		}
	}

	// 7) router
	newRouter := deps.NewRouter
	if newRouter == nil {
		newRouter = router.New
	}
	mux, err := newRouter(router.Deps{
		Health:      healthH,
		Auth:        authH,
		Product:     productH,
		AuthMW:      authMW,
		LoginRL:     loginRL,
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 8) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

func runCleanup(fns []func()) {
	// Last in, first out.
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewStore: func(ctx context.Context, cfg *config.Config) (Store, func(), error) {
			client, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
			if err != nil {
				return Store{}, nil, err
			}
			return Store{
				Users:    mongodb.NewUserRepo(client),
				Products: mongodb.NewProductRepo(client),
				Pinger:   client,
			}, func() { _ = client.Close() }, nil
		},
		NewRedis: func(addr, password string, db int) RedisClient {
			return redis.New(addr, password, db)
		},
		NewPublisher: func(url string) (Publisher, error) {
			return rabbitmq_pub.NewPublisher(url)
		},
		NewRouter: router.New,
	}
}
