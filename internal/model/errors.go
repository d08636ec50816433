package model

import "errors"

var (
	// Lookup errors
	ErrNotFound           = errors.New("not found")
	ErrItemTypeNotFound   = errors.New("item type not found")
	ErrFridgeItemNotFound = errors.New("fridge item not found")
	ErrCartItemNotFound   = errors.New("cart item not found")

	// Input errors, raised before any I/O
	ErrValidation = errors.New("validation failed")

	// Asset errors
	ErrAssetDelete      = errors.New("failed to delete old photo")
	ErrUnsupportedAsset = errors.New("unsupported photo type")

	// Stored documents written by a newer schema than this binary understands
	ErrUnsupportedSchema = errors.New("unsupported document schema")

	// Permission/Access related errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)
