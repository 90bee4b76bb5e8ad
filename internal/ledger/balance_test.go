package ledger

import (
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeBalance(t *testing.T) {
	account := &Account{
		ID:             uuid.Must(uuid.NewV4()),
		InitialBalance: decimal.RequireFromString("1000.50"),
	}
	other := uuid.Must(uuid.NewV4())

	salary := singleEntry(account.ID, EntryTypeIncome, 3000)
	salary.Complete(date(2024, 1, 1))
	rent := singleEntry(account.ID, EntryTypeExpense, 1200)
	rent.Complete(date(2024, 1, 2))
	pendingBill := singleEntry(account.ID, EntryTypeExpense, 99)
	elsewhere := singleEntry(other, EntryTypeIncome, 5000)
	elsewhere.Complete(date(2024, 1, 2))

	entries := []*Entry{salary, rent, pendingBill, elsewhere}

	totals := SumCompleted(account.ID, entries)
	assert.True(t, decimal.NewFromInt(3000).Equal(totals.Income))
	assert.True(t, decimal.NewFromInt(1200).Equal(totals.Expense))

	got := ComputeBalance(account, entries)
	assert.True(t, decimal.RequireFromString("2800.50").Equal(got), "got %s", got)
}

func TestComputeBalance_NoEntries(t *testing.T) {
	account := &Account{ID: uuid.Must(uuid.NewV4()), InitialBalance: decimal.NewFromInt(-20)}
	assert.True(t, decimal.NewFromInt(-20).Equal(ComputeBalance(account, nil)))
}

func TestBalance_Idempotent(t *testing.T) {
	totals := Totals{Income: decimal.NewFromInt(10), Expense: decimal.RequireFromString("2.25")}
	first := Balance(decimal.NewFromInt(5), totals)
	second := Balance(decimal.NewFromInt(5), totals)
	assert.True(t, first.Equal(second))
	assert.Equal(t, "12.75", first.StringFixed(2))
}
