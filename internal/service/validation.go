package service

import (
	"math"
	"strings"
	"time"

	"go-fridge-tracker/internal/model"
	"go-fridge-tracker/pkg/apierror"
)

// DateLayout is the calendar date format used for expiry dates and stats windows.
const DateLayout = "2006-01-02"

func invalid(message string, field string) error {
	return apierror.BadRequest(model.ErrValidation, message, field)
}

func requireField(value string, field string) error {
	if strings.TrimSpace(value) == "" {
		return invalid(field+" is required", field)
	}
	return nil
}

func validateQuantity(q float64) error {
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return invalid("quantity must be a finite number", "quantity")
	}
	if q < 0 {
		return invalid("quantity must not be negative", "quantity")
	}
	return nil
}

func validateExpiry(date string) error {
	if date == "" {
		return nil
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return invalid("expiry_date must be YYYY-MM-DD", "expiry_date")
	}
	return nil
}

// firstError returns the first non-nil error.
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
