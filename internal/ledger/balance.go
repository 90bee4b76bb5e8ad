package ledger

import (
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Totals are the sums of completed entries of one account.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Balance is initial + completed income - completed expense.
func Balance(initial decimal.Decimal, totals Totals) decimal.Decimal {
	return initial.Add(totals.Income).Sub(totals.Expense)
}

// SumCompleted totals the completed entries of accountID. Entries of other
// accounts and entries without a completion date are ignored.
func SumCompleted(accountID uuid.UUID, entries []*Entry) Totals {
	totals := Totals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, e := range entries {
		if e.AccountID != accountID || !e.IsCompleted() {
			continue
		}
		switch e.Type {
		case EntryTypeIncome:
			totals.Income = totals.Income.Add(e.Amount)
		case EntryTypeExpense:
			totals.Expense = totals.Expense.Add(e.Amount)
		}
	}
	return totals
}

// ComputeBalance derives an account's balance from its entries.
func ComputeBalance(account *Account, entries []*Entry) decimal.Decimal {
	return Balance(account.InitialBalance, SumCompleted(account.ID, entries))
}
