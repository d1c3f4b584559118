package expense

import (
	"time"

	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ExpenseRecordedEvent is raised when a new expense is recorded
type ExpenseRecordedEvent struct {
	shared.BaseDomainEvent
	ExpenseNumber string          `json:"expense_number"`
	Category      Category        `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	IncurredAt    time.Time       `json:"incurred_at"`
}

// EventType returns the event type name
func (e *ExpenseRecordedEvent) EventType() string {
	return "ExpenseRecorded"
}

// NewExpenseRecordedEvent creates a new ExpenseRecordedEvent
func NewExpenseRecordedEvent(exp *Expense) *ExpenseRecordedEvent {
	return &ExpenseRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ExpenseRecorded", "Expense", exp.ID, exp.BusinessID),
		ExpenseNumber:   exp.ExpenseNumber,
		Category:        exp.Category,
		Amount:          exp.Amount,
		Currency:        exp.Currency.String(),
		IncurredAt:      exp.IncurredAt,
	}
}
