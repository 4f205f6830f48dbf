package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	commonerrors "github.com/AlibekovAA/ricebook/backend/internal/common/errors"
	commonhttp "github.com/AlibekovAA/ricebook/backend/internal/common/http"
	"github.com/AlibekovAA/ricebook/backend/internal/common/logger"
	"github.com/AlibekovAA/ricebook/backend/internal/common/sessionauth"
	"github.com/AlibekovAA/ricebook/backend/internal/profile/service"
)

type Handler struct {
	profiles *service.ProfileService
	log      *logger.Logger
}

func NewHandler(profiles *service.ProfileService, log *logger.Logger) *Handler {
	return &Handler{profiles: profiles, log: log}
}

// Mount registers /profile routes behind gate. The optional trailing
// username selects whose field is read; writes accept only the caller.
func (h *Handler) Mount(r chi.Router, gate func(http.Handler) http.Handler) {
	r.Route("/profile", func(r chi.Router) {
		r.Use(gate)
		r.Get("/{field}", h.get)
		r.Get("/{field}/{username}", h.get)
		r.Put("/{field}", h.set)
		r.Put("/{field}/{username}", h.set)
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	actor, ok := sessionauth.UsernameFromContext(r.Context())
	if !ok {
		commonhttp.HandleError(w, r, commonerrors.ErrUnauthenticated, h.log)
		return
	}

	target := chi.URLParam(r, "username")
	if target == "" {
		target = actor
	}

	value, err := h.profiles.Get(r.Context(), target, chi.URLParam(r, "field"))
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, render(value))
}

func (h *Handler) set(w http.ResponseWriter, r *http.Request) {
	actor, ok := sessionauth.UsernameFromContext(r.Context())
	if !ok {
		commonhttp.HandleError(w, r, commonerrors.ErrUnauthenticated, h.log)
		return
	}

	field := chi.URLParam(r, "field")

	var body map[string]any
	if err := commonhttp.DecodeBody(r, &body); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	raw, present := body[field]
	if !present {
		commonhttp.HandleError(w, r, commonerrors.Validation("%s is required", field), h.log)
		return
	}
	value, isString := raw.(string)
	if !isString {
		commonhttp.HandleError(w, r, commonerrors.Validation("%s must be a string", field), h.log)
		return
	}

	updated, err := h.profiles.Set(r.Context(), actor, chi.URLParam(r, "username"), field, value)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, render(updated))
}

func render(v service.FieldValue) map[string]string {
	return map[string]string{
		"username":      v.Username,
		string(v.Field): v.Value,
	}
}
