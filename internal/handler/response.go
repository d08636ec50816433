package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"go-fridge-tracker/internal/asset"
	"go-fridge-tracker/internal/model"
	"go-fridge-tracker/pkg/apierror"
)

func writeSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: true,
		Data:    data,
	})
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := &model.APIError{
		Code:    "INTERNAL_ERROR",
		Message: "Unexpected server error",
	}

	var apiErr *apierror.APIError
	var uploadErr *asset.UploadError
	if errors.As(err, &apiErr) {
		status = apiErr.HTTPStatus
		body.Code = apiErr.Code
		body.Message = apiErr.Message
		body.Details = apiErr.Details
	} else if errors.As(err, &uploadErr) {
		status = http.StatusBadGateway
		body.Code = "ASSET_UPLOAD_FAILED"
		body.Message = "Failed to upload photo"
		slog.Error("photo upload failed", "key", uploadErr.Key, "error", uploadErr.Err)
	} else if errors.Is(err, model.ErrNotFound) {
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Not found"
	} else if errors.Is(err, model.ErrValidation) {
		status = http.StatusBadRequest
		body.Code = "BAD_REQUEST"
		body.Message = "Invalid input"
	} else if errors.Is(err, model.ErrUnsupportedAsset) {
		status = http.StatusUnsupportedMediaType
		body.Code = "UNSUPPORTED_MEDIA_TYPE"
		body.Message = "Unsupported photo type"
	} else if errors.Is(err, model.ErrAssetDelete) {
		status = http.StatusBadGateway
		body.Code = "ASSET_DELETE_FAILED"
		body.Message = "Failed to delete old photo"
	} else if errors.Is(err, model.ErrUnsupportedSchema) {
		status = http.StatusConflict
		body.Code = "UNSUPPORTED_SCHEMA"
		body.Message = "Stored document was written by a newer version"
	} else if errors.Is(err, model.ErrUnauthorized) {
		status = http.StatusUnauthorized
		body.Code = "UNAUTHORIZED"
		body.Message = "Authentication required"
	} else if errors.Is(err, model.ErrForbidden) {
		status = http.StatusForbidden
		body.Code = "FORBIDDEN"
		body.Message = "Access denied"
	} else {
		// Log unclassified errors so they are visible in container logs.
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error:   body,
	})
}
