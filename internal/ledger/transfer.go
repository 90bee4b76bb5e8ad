package ledger

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// TransferRequest moves Amount from one account to another, optionally as a
// recurring series.
type TransferRequest struct {
	OwnerID       uuid.UUID
	FromAccountID uuid.UUID
	ToAccountID   uuid.UUID
	Amount        decimal.Decimal
	Date          time.Time
	Description   string
	Status        Status
	Frequency     Frequency
	Installments  int
}

// Validate runs before any account lookup or write.
func (r *TransferRequest) Validate() error {
	if r.FromAccountID == uuid.Nil || r.ToAccountID == uuid.Nil {
		return Invalid("", "both accounts are required")
	}
	if r.FromAccountID == r.ToAccountID {
		return Invalid("", "accounts must differ")
	}
	if !r.Amount.IsPositive() {
		return Invalid("amount", "must be greater than zero")
	}
	if r.Date.IsZero() {
		return Invalid("date", "is required")
	}
	if !r.Status.Valid() {
		return Invalid("status", "must be pending or completed")
	}
	return validateRecurrence(r.Frequency, r.Installments)
}

// TransferLegs is one occurrence of a transfer.
type TransferLegs struct {
	Out *Entry
	In  *Entry
}

func transferDescription(prefix, accountName, description string) string {
	s := prefix + " " + accountName
	if description != "" {
		s += " - " + description
	}
	return s
}

// PlanTransfer builds every leg pair of a transfer. All pairs share one
// transfer id and one recurrence id.
func (p *Planner) PlanTransfer(req TransferRequest, from, to *Account) ([]TransferLegs, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	total := seriesShape(req.Frequency, req.Installments)
	transferID := uuid.NullUUID{UUID: p.NewID(), Valid: true}
	var recurrenceID uuid.NullUUID
	if req.Frequency != FrequencyNone {
		recurrenceID = uuid.NullUUID{UUID: p.NewID(), Valid: true}
	}

	now := p.Now().UTC()
	leg := func(accountID, counterpart uuid.UUID, t EntryType, description string, occ occurrence) *Entry {
		if req.Frequency == FrequencyInstallment {
			description = installmentSuffix(description, occ.ordinal, total)
		}
		e := &Entry{
			ID:                p.NewID(),
			OwnerID:           req.OwnerID,
			AccountID:         accountID,
			ToAccountID:       uuid.NullUUID{UUID: counterpart, Valid: true},
			Type:              t,
			Amount:            req.Amount,
			Date:              occ.date,
			Status:            StatusPending,
			Description:       description,
			Frequency:         req.Frequency,
			Installments:      total,
			InstallmentNumber: occ.ordinal + 1,
			RecurrenceID:      recurrenceID,
			TransferID:        transferID,
			CreatedAt:         now,
		}
		if occ.ordinal == 0 && req.Status == StatusCompleted {
			e.Complete(p.Today())
		}
		return e
	}

	outDescription := transferDescription("Transfer to", to.Name, req.Description)
	inDescription := transferDescription("Transfer from", from.Name, req.Description)

	var pairs []TransferLegs
	for _, occ := range occurrences(req.Date, req.Frequency, req.Installments, p.Policy) {
		pairs = append(pairs, TransferLegs{
			Out: leg(from.ID, to.ID, EntryTypeExpense, outDescription, occ),
			In:  leg(to.ID, from.ID, EntryTypeIncome, inDescription, occ),
		})
	}
	return pairs, nil
}
