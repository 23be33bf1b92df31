// internal/service/service.go
package service

import (
	"math"
	"strconv"
	"strings"
	"time"

	appErrors "github.com/unclebandit/creatorhub-backend/internal/errors"
)

const dateLayout = "2006-01-02"

// maxAmount is the first value a NUMERIC(12,2) column cannot hold.
const maxAmount = 1e10

// parseAmount parses a user-entered money amount. Blank means zero.
func parseAmount(field, text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, appErrors.NewValidation(field, "must be a number")
	}
	if err := checkAmount(field, v); err != nil {
		return 0, err
	}
	return v, nil
}

// checkAmount rejects amounts the budget and payment columns cannot store.
func checkAmount(field string, v float64) error {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return appErrors.NewValidation(field, "must be a number")
	case v < 0:
		return appErrors.NewValidation(field, "cannot be negative")
	case v >= maxAmount:
		return appErrors.NewValidation(field, "is too large")
	}
	return nil
}

// parseDate accepts a calendar date or an RFC 3339 timestamp. Blank is nil.
func parseDate(field, text string) (*time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	for _, layout := range []string{dateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, text); err == nil {
			return &t, nil
		}
	}
	return nil, appErrors.NewValidation(field, "must be a date (YYYY-MM-DD)")
}

func required(field, value, message string) error {
	if strings.TrimSpace(value) == "" {
		return appErrors.NewValidation(field, message)
	}
	return nil
}
