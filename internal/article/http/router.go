package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AlibekovAA/ricebook/backend/internal/article/domain"
	"github.com/AlibekovAA/ricebook/backend/internal/article/service"
	commonerrors "github.com/AlibekovAA/ricebook/backend/internal/common/errors"
	commonhttp "github.com/AlibekovAA/ricebook/backend/internal/common/http"
	"github.com/AlibekovAA/ricebook/backend/internal/common/logger"
	"github.com/AlibekovAA/ricebook/backend/internal/common/sessionauth"
)

type listResponse struct {
	Articles []domain.Article `json:"articles"`
}

type Handler struct {
	articles *service.ArticleService
	log      *logger.Logger
}

func NewHandler(articles *service.ArticleService, log *logger.Logger) *Handler {
	return &Handler{articles: articles, log: log}
}

func (h *Handler) Mount(r chi.Router, gate func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(gate)
		r.Get("/articles", h.list)
		r.Get("/articles/{articleId}", h.list)
		r.Put("/articles/{articleId}", h.update)
		r.Post("/article", h.create)
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	author, ok := sessionauth.UsernameFromContext(r.Context())
	if !ok {
		commonhttp.HandleError(w, r, commonerrors.ErrUnauthenticated, h.log)
		return
	}

	var input service.CreateInput
	if err := commonhttp.DecodeBody(r, &input); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	article, err := h.articles.Create(r.Context(), author, input)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, article)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	author, ok := sessionauth.UsernameFromContext(r.Context())
	if !ok {
		commonhttp.HandleError(w, r, commonerrors.ErrUnauthenticated, h.log)
		return
	}

	var patch service.Patch
	if err := commonhttp.DecodeBody(r, &patch); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	article, err := h.articles.Update(r.Context(), author, chi.URLParam(r, "articleId"), patch)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, article)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	viewer, ok := sessionauth.UsernameFromContext(r.Context())
	if !ok {
		commonhttp.HandleError(w, r, commonerrors.ErrUnauthenticated, h.log)
		return
	}

	articles, err := h.articles.List(r.Context(), viewer, chi.URLParam(r, "articleId"))
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, listResponse{Articles: articles})
}
