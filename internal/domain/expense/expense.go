package expense

import (
	"fmt"
	"strings"
	"time"

	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/invoicemonk/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category classifies an expense
type Category string

const (
	CategoryRent         Category = "rent"
	CategoryUtilities    Category = "utilities"
	CategorySalaries     Category = "salaries"
	CategorySupplies     Category = "supplies"
	CategoryMarketing    Category = "marketing"
	CategoryTravel       Category = "travel"
	CategorySoftware     Category = "software"
	CategoryProfessional Category = "professional_services"
	CategoryBankCharges  Category = "bank_charges"
	CategoryTaxes        Category = "taxes"
	CategoryOther        Category = "other"
)

// IsValid checks if the category is a valid Category
func (c Category) IsValid() bool {
	switch c {
	case CategoryRent, CategoryUtilities, CategorySalaries, CategorySupplies,
		CategoryMarketing, CategoryTravel, CategorySoftware, CategoryProfessional,
		CategoryBankCharges, CategoryTaxes, CategoryOther:
		return true
	}
	return false
}

// String returns the string representation of the category
func (c Category) String() string {
	return string(c)
}

// AllCategories lists every valid category
func AllCategories() []Category {
	return []Category{
		CategoryRent, CategoryUtilities, CategorySalaries, CategorySupplies,
		CategoryMarketing, CategoryTravel, CategorySoftware, CategoryProfessional,
		CategoryBankCharges, CategoryTaxes, CategoryOther,
	}
}

// Status represents the lifecycle of an expense record
type Status string

const (
	StatusRecorded  Status = "recorded"
	StatusCancelled Status = "cancelled"
)

// Expense is a categorized spend record scoped to a currency account
type Expense struct {
	shared.BusinessAggregateRoot
	ExpenseNumber     string
	CurrencyAccountID uuid.UUID
	Currency          valueobject.Currency
	RateToPrimary     decimal.Decimal
	Category          Category
	Amount            decimal.Decimal
	Description       string
	IncurredAt        time.Time
	Status            Status
	CancelledAt       *time.Time
	CancelReason      string
}

// NewExpense records a new expense against a currency account
func NewExpense(
	businessID uuid.UUID,
	expenseNumber string,
	currencyAccountID uuid.UUID,
	currency valueobject.Currency,
	rateToPrimary decimal.Decimal,
	category Category,
	amount valueobject.Money,
	description string,
	incurredAt time.Time,
) (*Expense, error) {
	if expenseNumber == "" {
		return nil, shared.NewDomainError("INVALID_EXPENSE_NUMBER", "Expense number cannot be empty")
	}
	if currencyAccountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Currency account ID cannot be empty")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Expense category is not valid")
	}
	if amount.Currency() != currency {
		return nil, shared.ErrCurrencyMismatch
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if rateToPrimary.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_RATE", "Exchange rate to primary must be positive")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if len(description) > 500 {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 500 characters")
	}
	if incurredAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Incurred date cannot be empty")
	}

	e := &Expense{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(businessID),
		ExpenseNumber:         expenseNumber,
		CurrencyAccountID:     currencyAccountID,
		Currency:              currency,
		RateToPrimary:         rateToPrimary,
		Category:              category,
		Amount:                amount.Amount(),
		Description:           description,
		IncurredAt:            incurredAt,
		Status:                StatusRecorded,
	}

	e.AddDomainEvent(NewExpenseRecordedEvent(e))

	return e, nil
}

// Update replaces editable fields of a recorded expense
func (e *Expense) Update(category Category, amount valueobject.Money, description string, incurredAt time.Time) error {
	if e.Status == StatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cancelled expenses cannot be updated")
	}
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Expense category is not valid")
	}
	if amount.Currency() != e.Currency {
		return shared.ErrCurrencyMismatch
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}

	e.Category = category
	e.Amount = amount.Amount()
	e.Description = description
	e.IncurredAt = incurredAt
	e.Touch()
	return nil
}

// Cancel marks the expense as cancelled instead of deleting it
func (e *Expense) Cancel(reason string) error {
	if e.Status == StatusCancelled {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Expense %s is already cancelled", e.ExpenseNumber))
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason cannot be empty")
	}
	now := time.Now()
	e.Status = StatusCancelled
	e.CancelledAt = &now
	e.CancelReason = reason
	e.Touch()
	return nil
}

// PrimaryEquivalent converts the amount into the business's primary
// currency using the rate captured at creation
func (e *Expense) PrimaryEquivalent(primary valueobject.Currency) decimal.Decimal {
	if e.Currency == primary {
		return e.Amount
	}
	return e.Amount.Mul(e.RateToPrimary)
}
