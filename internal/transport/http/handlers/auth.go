package http_handlers

import (
	"net/http"

	"github.com/baechuer/inventory-service/internal/application/auth"
	"github.com/baechuer/inventory-service/internal/domain"
	"github.com/baechuer/inventory-service/internal/logger"
	"github.com/baechuer/inventory-service/internal/transport/http/dto"
	"github.com/baechuer/inventory-service/internal/transport/http/middleware"
	"github.com/baechuer/inventory-service/internal/transport/http/response"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		middleware.RegistrationsTotal.WithLabelValues("validation_failed").Inc()
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Register(r.Context(), req.ToInput())
	if err != nil {
		if domain.Is(err, "email_already_exists") {
			middleware.RegistrationsTotal.WithLabelValues("email_already_exists").Inc()
		} else {
			middleware.RegistrationsTotal.WithLabelValues("failed").Inc()
		}
		response.WriteError(w, r, err)
		return
	}

	middleware.RegistrationsTotal.WithLabelValues("success").Inc()
	logger.WithCtx(r.Context()).Info().
		Str("user_id", res.User.ID).
		Str("email", res.User.Email).
		Msg("user_registered")

	response.Created(w, dto.NewAuthData(res))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if domain.Is(err, "invalid_credentials") {
			middleware.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		} else {
			middleware.LoginAttemptsTotal.WithLabelValues("failed").Inc()
		}
		response.WriteError(w, r, err)
		return
	}

	middleware.LoginAttemptsTotal.WithLabelValues("success").Inc()
	logger.WithCtx(r.Context()).Info().
		Str("user_id", res.User.ID).
		Msg("user_logged_in")

	response.OK(w, dto.NewAuthData(res))
}

// GoogleLogin exchanges a verified Google ID token for a session. Unknown
// emails get a 401 with a registration hint; no account is auto-created.
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.GoogleLoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.LoginWithGoogle(r.Context(), req.Credential)
	if err != nil {
		if domain.Is(err, "registration_required") {
			middleware.LoginAttemptsTotal.WithLabelValues("registration_required").Inc()
		} else {
			middleware.LoginAttemptsTotal.WithLabelValues("google_failed").Inc()
		}
		response.WriteError(w, r, err)
		return
	}

	middleware.LoginAttemptsTotal.WithLabelValues("success").Inc()
	logger.WithCtx(r.Context()).Info().
		Str("user_id", res.User.ID).
		Msg("user_logged_in_google")

	response.OK(w, dto.NewAuthData(res))
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return
	}

	u, err := h.svc.Me(r.Context(), uid)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewUserView(u))
}

func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	h.Me(w, r)
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return
	}

	var req dto.UpdateProfileRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	u, err := h.svc.UpdateProfile(r.Context(), uid, req.ToUpdate())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", uid).
		Msg("profile_updated")

	response.OK(w, dto.NewUserView(u))
}
