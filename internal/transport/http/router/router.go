package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/baechuer/inventory-service/internal/transport/http/middleware"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	GoogleLogin(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	GetProfile(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
}

type ProductHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health  HealthHandler
	Auth    AuthHandler
	Product ProductHandler

	AuthMW func(http.Handler) http.Handler
	// LoginRL guards the credential endpoints; nil disables rate limiting.
	LoginRL func(http.Handler) http.Handler

	CORSOrigins []string
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("nil Auth handler")
	}
	if deps.Product == nil {
		return nil, fmt.Errorf("nil Product handler")
	}
	if deps.AuthMW == nil {
		return nil, fmt.Errorf("nil Auth middleware")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Metrics)

	if len(deps.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   deps.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.HeaderXRequestID},
			ExposedHeaders:   []string{middleware.HeaderXRequestID},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	loginRL := deps.LoginRL
	if loginRL == nil {
		loginRL = passthrough
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.With(loginRL).Post("/register", deps.Auth.Register)
		r.With(loginRL).Post("/login", deps.Auth.Login)
		r.With(loginRL).Post("/google", deps.Auth.GoogleLogin)

		r.With(deps.AuthMW).Get("/me", deps.Auth.Me)
		r.With(deps.AuthMW).Get("/profile", deps.Auth.GetProfile)
		r.With(deps.AuthMW).Put("/profile", deps.Auth.UpdateProfile)
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Use(deps.AuthMW)

		r.Get("/", deps.Product.List)
		r.Post("/", deps.Product.Create)
		r.Get("/{id}", deps.Product.Get)
		r.Put("/{id}", deps.Product.Update)
		r.Delete("/{id}", deps.Product.Delete)
	})

	return r, nil
}

func passthrough(next http.Handler) http.Handler { return next }
