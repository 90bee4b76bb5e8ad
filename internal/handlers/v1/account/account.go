package account

import (
	"time"

	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
)

// Account is the API response model for an account.
type Account struct {
	ID             string `json:"id" doc:"Account UUID"`
	Name           string `json:"name" doc:"Account name"`
	Type           int    `json:"type" doc:"Account type: 0=Checking, 1=Savings, 2=Credit Card, 3=Investment, 4=Other"`
	InitialBalance string `json:"initialBalance" doc:"Decimal balance when the account was opened"`
	Balance        string `json:"balance" doc:"Decimal balance derived from completed entries"`
	CreatedAt      string `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromLedger(a *ledger.Account) Account {
	return Account{
		ID:             a.ID.String(),
		Name:           a.Name,
		Type:           int(a.Type),
		InitialBalance: a.InitialBalance.String(),
		Balance:        a.Balance.String(),
		CreatedAt:      a.CreatedAt.Format(time.RFC3339),
	}
}

// AccountOutput wraps a single account.
type AccountOutput struct {
	Body Account
}
