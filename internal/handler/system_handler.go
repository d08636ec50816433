package handler

import (
	"net/http"

	"go-fridge-tracker/internal/blob"
	"go-fridge-tracker/internal/docstore"
)

type SystemHandler struct {
	documents docstore.Driver
	blobs     blob.Driver
}

func NewSystemHandler(documents docstore.Driver, blobs blob.Driver) *SystemHandler {
	return &SystemHandler{documents: documents, blobs: blobs}
}

func (h *SystemHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"docstore": string(h.documents),
		"blob":     string(h.blobs),
	})
}
