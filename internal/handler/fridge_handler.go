package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-fridge-tracker/internal/model"
	"go-fridge-tracker/internal/service"
)

// FridgeHandler serves fridge entries. Writes take multipart forms so a photo
// can travel with the fields.
type FridgeHandler struct {
	service       *service.FridgeService
	cart          *service.CartService
	query         *service.QueryService
	maxUploadSize int64
}

func NewFridgeHandler(service *service.FridgeService, cart *service.CartService, query *service.QueryService, maxUploadSize int64) *FridgeHandler {
	return &FridgeHandler{service: service, cart: cart, query: query, maxUploadSize: maxUploadSize}
}

func (h *FridgeHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.query.ListFridgeItems(r.Context(), queryFilter(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, items)
}

func (h *FridgeHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r, h.maxUploadSize); err != nil {
		writeError(w, err)
		return
	}

	in, err := fridgeInput(r)
	if err != nil {
		writeError(w, err)
		return
	}

	photo, file, err := formPhoto(r)
	if err != nil {
		writeError(w, err)
		return
	}
	defer closePhoto(file)

	item, err := h.service.Create(r.Context(), in, actorEmail(r), photo)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, item)
}

func (h *FridgeHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r, h.maxUploadSize); err != nil {
		writeError(w, err)
		return
	}

	in, err := fridgeInput(r)
	if err != nil {
		writeError(w, err)
		return
	}

	photo, file, err := formPhoto(r)
	if err != nil {
		writeError(w, err)
		return
	}
	defer closePhoto(file)

	item, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), in, formValue(r, "type_name"), actorEmail(r), photo)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, item)
}

func (h *FridgeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	label := r.URL.Query().Get("type_name")
	if err := h.service.Delete(r.Context(), id, label, actorEmail(r)); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"id": id})
}

// ToCart copies the entry's type, quantity and unit onto the shopping list.
func (h *FridgeHandler) ToCart(w http.ResponseWriter, r *http.Request) {
	item, err := h.cart.AddFromFridge(r.Context(), chi.URLParam(r, "id"), actorEmail(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, item)
}

func fridgeInput(r *http.Request) (model.FridgeItemInput, error) {
	quantity, err := parseQuantity(r.FormValue("quantity"))
	if err != nil {
		return model.FridgeItemInput{}, err
	}

	return model.FridgeItemInput{
		TypeID:     formValue(r, "type_id"),
		Quantity:   quantity,
		Unit:       formValue(r, "unit"),
		ExpiryDate: formValue(r, "expiry_date"),
	}, nil
}
