package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoicemonk/backend/internal/domain/expense"
	"github.com/invoicemonk/backend/internal/domain/shared/valueobject"
)

// ExpenseModel is the persistence model for expense.Expense
type ExpenseModel struct {
	BusinessAggregateModel
	ExpenseNumber     string          `gorm:"not null;size:20;index"`
	CurrencyAccountID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Currency          string          `gorm:"not null;size:3"`
	RateToPrimary     decimal.Decimal `gorm:"type:numeric(20,10);not null"`
	Category          string          `gorm:"not null;size:30;index"`
	Amount            decimal.Decimal `gorm:"type:numeric(20,4);not null"`
	Description       string          `gorm:"not null;size:500"`
	IncurredAt        time.Time       `gorm:"not null;index"`
	Status            string          `gorm:"not null;size:20;default:'recorded'"`
	CancelledAt       *time.Time
	CancelReason      string `gorm:"size:500"`
}

// TableName returns the table name for ExpenseModel
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ExpenseModelFromDomain converts a domain Expense to a persistence model
func ExpenseModelFromDomain(e *expense.Expense) *ExpenseModel {
	m := &ExpenseModel{
		ExpenseNumber:     e.ExpenseNumber,
		CurrencyAccountID: e.CurrencyAccountID,
		Currency:          e.Currency.String(),
		RateToPrimary:     e.RateToPrimary,
		Category:          e.Category.String(),
		Amount:            e.Amount,
		Description:       e.Description,
		IncurredAt:        e.IncurredAt,
		Status:            string(e.Status),
		CancelledAt:       e.CancelledAt,
		CancelReason:      e.CancelReason,
	}
	m.FromDomainBusinessAggregateRoot(e.BusinessAggregateRoot)
	return m
}

// ToDomain converts the persistence model to a domain Expense
func (m *ExpenseModel) ToDomain() *expense.Expense {
	e := &expense.Expense{
		ExpenseNumber:     m.ExpenseNumber,
		CurrencyAccountID: m.CurrencyAccountID,
		Currency:          valueobject.Currency(m.Currency),
		RateToPrimary:     m.RateToPrimary,
		Category:          expense.Category(m.Category),
		Amount:            m.Amount,
		Description:       m.Description,
		IncurredAt:        m.IncurredAt,
		Status:            expense.Status(m.Status),
		CancelledAt:       m.CancelledAt,
		CancelReason:      m.CancelReason,
	}
	m.PopulateBusinessAggregateRoot(&e.BusinessAggregateRoot)
	return e
}
