package handler

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go-fridge-tracker/internal/asset"
	"go-fridge-tracker/internal/middleware"
	"go-fridge-tracker/internal/model"
	"go-fridge-tracker/internal/service"
	"go-fridge-tracker/pkg/apierror"
)

const (
	photoField       = "photo"
	multipartMemory  = 8 << 20
	maxJSONBodyBytes = 1 << 20
)

// parseForm reads a multipart or urlencoded body capped at maxBytes.
func parseForm(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	err := r.ParseMultipartForm(multipartMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err == nil {
		return nil
	}
	if isPayloadTooLarge(err) {
		return apierror.New("PAYLOAD_TOO_LARGE", "request body exceeds MAX_UPLOAD_SIZE", "MAX_UPLOAD_SIZE", http.StatusRequestEntityTooLarge)
	}
	return apierror.BadRequest(model.ErrValidation, "invalid form body", err.Error())
}

func isPayloadTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), "request body too large")
}

// formPhoto returns the uploaded photo, or nil when the field is absent. The
// caller closes the returned file.
func formPhoto(r *http.Request) (*asset.Upload, multipart.File, error) {
	if r.MultipartForm == nil {
		return nil, nil, nil
	}
	headers := r.MultipartForm.File[photoField]
	if len(headers) == 0 {
		return nil, nil, nil
	}

	header := headers[0]
	file, err := header.Open()
	if err != nil {
		return nil, nil, apierror.BadRequest(model.ErrValidation, "photo could not be read", err.Error())
	}

	return &asset.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}, file, nil
}

func closePhoto(file multipart.File) {
	if file != nil {
		_ = file.Close()
	}
}

func formValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

func parseQuantity(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, apierror.BadRequest(model.ErrValidation, "quantity is required", "quantity")
	}
	q, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, apierror.BadRequest(model.ErrValidation, "quantity must be a number", "quantity")
	}
	return q, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return apierror.BadRequest(model.ErrValidation, "invalid JSON body", err.Error())
	}
	return nil
}

// actorEmail is empty when the route is not behind the actor middleware; the
// services reject that as a validation error.
func actorEmail(r *http.Request) string {
	actor, _ := middleware.ActorFromContext(r.Context())
	return actor.Email
}

func queryWindow(r *http.Request) (start *time.Time, end *time.Time, err error) {
	if start, err = service.ParseBound(r.URL.Query().Get("start"), false); err != nil {
		return nil, nil, err
	}
	if end, err = service.ParseBound(r.URL.Query().Get("end"), true); err != nil {
		return nil, nil, err
	}
	return start, end, nil
}

func queryFilter(r *http.Request) string {
	return r.URL.Query().Get("filter")
}
