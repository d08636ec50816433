package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-fridge-tracker/internal/model"
	"go-fridge-tracker/internal/service"
)

type CartHandler struct {
	service *service.CartService
	query   *service.QueryService
}

func NewCartHandler(service *service.CartService, query *service.QueryService) *CartHandler {
	return &CartHandler{service: service, query: query}
}

type cartItemRequest struct {
	TypeID   string  `json:"type_id"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

func (req cartItemRequest) input() model.CartItemInput {
	return model.CartItemInput{TypeID: req.TypeID, Quantity: req.Quantity, Unit: req.Unit}
}

func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.query.ListCartItems(r.Context(), queryFilter(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, items)
}

func (h *CartHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	item, err := h.service.Create(r.Context(), req.input(), actorEmail(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, item)
}

func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	item, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req.input(), actorEmail(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, item)
}

func (h *CartHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id, actorEmail(r)); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"id": id})
}
