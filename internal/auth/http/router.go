package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/AlibekovAA/ricebook/backend/internal/auth/service"
	commonerrors "github.com/AlibekovAA/ricebook/backend/internal/common/errors"
	commonhttp "github.com/AlibekovAA/ricebook/backend/internal/common/http"
	"github.com/AlibekovAA/ricebook/backend/internal/common/logger"
	"github.com/AlibekovAA/ricebook/backend/internal/common/sessionauth"
)

type resultResponse struct {
	Username string `json:"username"`
	Result   string `json:"result"`
}

type CookieConfig struct {
	Name   string
	Secure bool
}

type Handler struct {
	auth   *service.AuthService
	cookie CookieConfig
	log    *logger.Logger
}

func NewHandler(auth *service.AuthService, cookie CookieConfig, log *logger.Logger) *Handler {
	return &Handler{auth: auth, cookie: cookie, log: log}
}

// Mount registers /auth routes. Login and register are public and rate
// limited; logout and password change sit behind the session gate.
func (h *Handler) Mount(r chi.Router, gate func(http.Handler) http.Handler, limiter *commonhttp.StrictRateLimiter) {
	r.Route("/auth", func(r chi.Router) {
		r.With(limiter.MiddlewareForPath("/auth/register")).Post("/register", h.register)
		r.With(limiter.MiddlewareForPath("/auth/login")).Post("/login", h.login)

		r.Group(func(r chi.Router) {
			r.Use(gate)
			r.Put("/logout", h.logout)
			r.Put("/password", h.changePassword)
		})
	})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterInput
	if err := commonhttp.DecodeBody(r, &req); err != nil {
		h.log.Warnf("register failed: invalid json: %v", err)
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	user, err := h.auth.Register(r.Context(), req)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, resultResponse{Username: user.Username, Result: "success"})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginInput
	if err := commonhttp.DecodeBody(r, &req); err != nil {
		h.log.Warnf("login failed: invalid json: %v", err)
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	token, err := h.auth.Login(r.Context(), req)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	h.setSessionCookie(w, token.ID, h.auth.SessionTTL())
	commonhttp.WriteJSON(w, http.StatusOK, resultResponse{Username: token.Username, Result: "success"})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionauth.SessionIDFromContext(r.Context())
	if !ok {
		commonhttp.HandleError(w, r, commonerrors.ErrUnauthenticated, h.log)
		return
	}

	if err := h.auth.Logout(r.Context(), sessionID); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	h.clearSessionCookie(w)
	commonhttp.WriteText(w, http.StatusOK, "OK")
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	username, ok := sessionauth.UsernameFromContext(r.Context())
	if !ok {
		commonhttp.HandleError(w, r, commonerrors.ErrUnauthenticated, h.log)
		return
	}

	var req service.ChangePasswordInput
	if err := commonhttp.DecodeBody(r, &req); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	if err := h.auth.ChangePassword(r.Context(), username, req); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, resultResponse{Username: username, Result: "success"})
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, sessionID string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.cookie.Secure,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.cookie.Secure,
	})
}
