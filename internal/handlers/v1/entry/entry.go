package entry

import (
	"time"

	"github.com/cesarberbelbr/household-finance-manager/internal/handlers/v1/common"
	"github.com/cesarberbelbr/household-finance-manager/internal/ledger"
)

// Entry is the API response model for a ledger entry or a projected occurrence.
type Entry struct {
	ID                string `json:"id" doc:"Entry UUID; a projection carries its template's UUID"`
	AccountID         string `json:"accountId" doc:"Account UUID"`
	ToAccountID       string `json:"toAccountId,omitempty" doc:"Counterpart account of a transfer leg"`
	CategoryID        string `json:"categoryId,omitempty" doc:"Category UUID"`
	Type              string `json:"type" doc:"income or expense"`
	Amount            string `json:"amount" doc:"Positive decimal amount"`
	Date              string `json:"date" doc:"Entry date (YYYY-MM-DD)"`
	Status            string `json:"status" doc:"pending or completed"`
	CompletionDate    string `json:"completionDate,omitempty" doc:"Date the entry was completed (YYYY-MM-DD)"`
	Description       string `json:"description" doc:"Free-form description"`
	Frequency         string `json:"frequency" doc:"none, installment or fixed_monthly"`
	Installments      int    `json:"installments,omitempty" doc:"Series length of an installment entry"`
	InstallmentNumber int    `json:"installmentNumber,omitempty" doc:"1-based ordinal within the series"`
	RecurrenceID      string `json:"recurrenceId,omitempty" doc:"Shared UUID of one recurring series"`
	TransferID        string `json:"transferId,omitempty" doc:"Shared UUID of the two legs of a transfer"`
	RuleID            string `json:"ruleId,omitempty" doc:"Recurring rule that produced the entry"`
	Projected         bool   `json:"projected,omitempty" doc:"True for a fixed-monthly occurrence that is not stored yet"`
	CreatedAt         string `json:"createdAt,omitempty" doc:"RFC3339 creation time"`
}

func fromLedger(e *ledger.Entry) Entry {
	out := Entry{
		ID:                e.ID.String(),
		AccountID:         e.AccountID.String(),
		ToAccountID:       common.FormatOptionalID(e.ToAccountID),
		CategoryID:        common.FormatOptionalID(e.CategoryID),
		Type:              string(e.Type),
		Amount:            e.Amount.String(),
		Date:              common.FormatDate(e.Date),
		Status:            string(e.Status),
		Description:       e.Description,
		Frequency:         string(e.Frequency),
		Installments:      e.Installments,
		InstallmentNumber: e.InstallmentNumber,
		RecurrenceID:      common.FormatOptionalID(e.RecurrenceID),
		TransferID:        common.FormatOptionalID(e.TransferID),
		RuleID:            common.FormatOptionalID(e.RuleID),
		CreatedAt:         e.CreatedAt.Format(time.RFC3339),
	}
	if e.CompletionDate != nil {
		out.CompletionDate = common.FormatDate(*e.CompletionDate)
	}
	return out
}

func fromProjection(p *ledger.Projection) Entry {
	return Entry{
		ID:           p.TemplateID.String(),
		AccountID:    p.AccountID.String(),
		ToAccountID:  common.FormatOptionalID(p.ToAccountID),
		CategoryID:   common.FormatOptionalID(p.CategoryID),
		Type:         string(p.Type),
		Amount:       p.Amount.String(),
		Date:         common.FormatDate(p.Date),
		Status:       string(p.Status()),
		Description:  p.Description,
		Frequency:    string(p.Frequency),
		RecurrenceID: common.FormatOptionalID(p.RecurrenceID),
		TransferID:   common.FormatOptionalID(p.TransferID),
		Projected:    true,
	}
}

func fromLine(l ledger.DashboardLine) Entry {
	if l.IsProjection() {
		return fromProjection(l.Projection)
	}
	return fromLedger(l.Entry)
}
