package service

import (
	"github.com/shopspring/decimal"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
)

// AccountCreate holds the user-supplied fields of a new account.
type AccountCreate struct {
	Name           string
	Type           ledger.AccountType
	InitialBalance decimal.Decimal
}

// AccountCursor identifies a position in a paginated result set.
type AccountCursor struct {
	Position int
	Limit    int
}
