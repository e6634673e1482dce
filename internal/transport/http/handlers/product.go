package http_handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baechuer/inventory-service/internal/application/product"
	"github.com/baechuer/inventory-service/internal/domain"
	"github.com/baechuer/inventory-service/internal/logger"
	"github.com/baechuer/inventory-service/internal/transport/http/dto"
	"github.com/baechuer/inventory-service/internal/transport/http/middleware"
	"github.com/baechuer/inventory-service/internal/transport/http/response"
)

type ProductHandler struct {
	svc *product.Service
}

func NewProductHandler(svc *product.Service) *ProductHandler {
	return &ProductHandler{svc: svc}
}

func requesterID(w http.ResponseWriter, r *http.Request) (string, bool) {
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return "", false
	}
	return uid, true
}

// List handles GET /api/products. ?showMyProducts=true narrows to the requester's own.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := requesterID(w, r)
	if !ok {
		return
	}

	onlyMine := r.URL.Query().Get("showMyProducts") == "true"
	ps, err := h.svc.List(r.Context(), uid, onlyMine)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewProductViews(ps))
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := requesterID(w, r)
	if !ok {
		return
	}

	p, err := h.svc.Get(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewProductView(p))
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := requesterID(w, r)
	if !ok {
		return
	}

	var req dto.CreateProductRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	p, err := h.svc.Create(r.Context(), uid, req.ToInput())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("product_id", p.ID).
		Str("owner_id", uid).
		Msg("product_created")

	response.Created(w, dto.NewProductView(p))
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, ok := requesterID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	p, err := h.svc.Update(r.Context(), uid, chi.URLParam(r, "id"), req.ToUpdate())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("product_id", p.ID).
		Msg("product_updated")

	response.OK(w, dto.NewProductView(p))
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := requesterID(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), uid, id); err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("product_id", id).
		Msg("product_deleted")

	response.NoContent(w)
}
