// Package common holds the request plumbing shared by the v1 handlers.
package common

import (
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
)

// OwnerHeader scopes every request to one owner.
type OwnerHeader struct {
	OwnerID string `header:"X-Owner-ID" required:"true" format:"uuid" doc:"UUID of the authenticated owner"`
}

func (o OwnerHeader) Owner() (uuid.UUID, error) {
	id, err := uuid.FromString(o.OwnerID)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid X-Owner-ID", err)
	}
	return id, nil
}

// ToHTTPError maps domain errors onto status codes. Anything unrecognized is a 500.
func ToHTTPError(err error, message string) error {
	var validation *ledger.ValidationError
	var notFound *ledger.NotFoundError
	switch {
	case errors.As(err, &validation):
		return huma.NewError(http.StatusBadRequest, validation.Error())
	case errors.As(err, &notFound):
		return huma.NewError(http.StatusNotFound, notFound.Error())
	}
	return huma.NewError(http.StatusInternalServerError, message, err)
}

func ParseID(field, s string) (uuid.UUID, error) {
	id, err := uuid.FromString(s)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return id, nil
}

// ParseOptionalID treats the empty string as no id.
func ParseOptionalID(field, s string) (uuid.NullUUID, error) {
	if s == "" {
		return uuid.NullUUID{}, nil
	}
	id, err := ParseID(field, s)
	if err != nil {
		return uuid.NullUUID{}, err
	}
	return uuid.NullUUID{UUID: id, Valid: true}, nil
}

func ParseDecimal(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return d, nil
}

// ParseDate reads a YYYY-MM-DD calendar date.
func ParseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// FormatOptionalID renders a missing id as the empty string.
func FormatOptionalID(id uuid.NullUUID) string {
	if !id.Valid {
		return ""
	}
	return id.UUID.String()
}
