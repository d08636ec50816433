package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-fridge-tracker/internal/model"
	"go-fridge-tracker/internal/service"
)

type ItemTypeHandler struct {
	service       *service.ItemTypeService
	query         *service.QueryService
	maxUploadSize int64
}

func NewItemTypeHandler(service *service.ItemTypeService, query *service.QueryService, maxUploadSize int64) *ItemTypeHandler {
	return &ItemTypeHandler{service: service, query: query, maxUploadSize: maxUploadSize}
}

func (h *ItemTypeHandler) List(w http.ResponseWriter, r *http.Request) {
	types, err := h.query.ListItemTypes(r.Context(), queryFilter(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, types)
}

func (h *ItemTypeHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r, h.maxUploadSize); err != nil {
		writeError(w, err)
		return
	}

	photo, file, err := formPhoto(r)
	if err != nil {
		writeError(w, err)
		return
	}
	defer closePhoto(file)

	itemType, err := h.service.Create(r.Context(), itemTypeInput(r), actorEmail(r), photo)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, itemType)
}

func (h *ItemTypeHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r, h.maxUploadSize); err != nil {
		writeError(w, err)
		return
	}

	photo, file, err := formPhoto(r)
	if err != nil {
		writeError(w, err)
		return
	}
	defer closePhoto(file)

	itemType, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), itemTypeInput(r), actorEmail(r), photo)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, itemType)
}

func (h *ItemTypeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id, actorEmail(r)); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"id": id})
}

func itemTypeInput(r *http.Request) model.ItemTypeInput {
	return model.ItemTypeInput{
		Name:        formValue(r, "name"),
		Description: formValue(r, "description"),
	}
}
