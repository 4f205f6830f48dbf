package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	commonerrors "github.com/AlibekovAA/ricebook/backend/internal/common/errors"
	commonhttp "github.com/AlibekovAA/ricebook/backend/internal/common/http"
	"github.com/AlibekovAA/ricebook/backend/internal/common/logger"
	"github.com/AlibekovAA/ricebook/backend/internal/common/sessionauth"
	"github.com/AlibekovAA/ricebook/backend/internal/following/service"
)

type followResponse struct {
	Message   string   `json:"message"`
	Following []string `json:"following"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type listResponse struct {
	Username  string   `json:"username"`
	Following []string `json:"following"`
}

type Handler struct {
	following *service.FollowingService
	log       *logger.Logger
}

func NewHandler(following *service.FollowingService, log *logger.Logger) *Handler {
	return &Handler{following: following, log: log}
}

func (h *Handler) Mount(r chi.Router, gate func(http.Handler) http.Handler) {
	r.Route("/following", func(r chi.Router) {
		r.Use(gate)
		r.Get("/", h.list)
		r.Get("/{username}", h.list)
		r.Post("/{username}", h.follow)
		r.Put("/{username}", h.follow)
		r.Delete("/{username}", h.unfollow)
	})
}

func (h *Handler) follow(w http.ResponseWriter, r *http.Request) {
	actor, ok := sessionauth.UsernameFromContext(r.Context())
	if !ok {
		commonhttp.HandleError(w, r, commonerrors.ErrUnauthenticated, h.log)
		return
	}

	target := chi.URLParam(r, "username")
	res, err := h.following.Follow(r.Context(), actor, target)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, followResponse{
		Message:   fmt.Sprintf("You are now following %s", target),
		Following: res.Following,
	})
}

func (h *Handler) unfollow(w http.ResponseWriter, r *http.Request) {
	actor, ok := sessionauth.UsernameFromContext(r.Context())
	if !ok {
		commonhttp.HandleError(w, r, commonerrors.ErrUnauthenticated, h.log)
		return
	}

	target := chi.URLParam(r, "username")
	if err := h.following.Unfollow(r.Context(), actor, target); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("You are no longer following %s.", target),
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	actor, ok := sessionauth.UsernameFromContext(r.Context())
	if !ok {
		commonhttp.HandleError(w, r, commonerrors.ErrUnauthenticated, h.log)
		return
	}

	username := chi.URLParam(r, "username")
	if username == "" {
		username = actor
	}

	following, err := h.following.ListFollowing(r.Context(), username)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, listResponse{Username: username, Following: following})
}
