package models

import (
	"github.com/shopspring/decimal"

	"github.com/invoicemonk/backend/internal/domain/ledger"
	"github.com/invoicemonk/backend/internal/domain/shared/valueobject"
)

// CurrencyAccountModel is the persistence model for ledger.CurrencyAccount
type CurrencyAccountModel struct {
	BusinessAggregateModel
	Name                  string          `gorm:"not null;size:100"`
	Currency              string          `gorm:"not null;size:3"`
	IsPrimary             bool            `gorm:"not null;default:false"`
	ExchangeRateToPrimary decimal.Decimal `gorm:"type:numeric(20,10);not null"`
	Status                string          `gorm:"not null;size:20;default:'active'"`
}

// TableName returns the table name for CurrencyAccountModel
func (CurrencyAccountModel) TableName() string {
	return "currency_accounts"
}

// CurrencyAccountModelFromDomain converts a domain CurrencyAccount to a persistence model
func CurrencyAccountModelFromDomain(a *ledger.CurrencyAccount) *CurrencyAccountModel {
	m := &CurrencyAccountModel{
		Name:                  a.Name,
		Currency:              a.Currency.String(),
		IsPrimary:             a.IsPrimary,
		ExchangeRateToPrimary: a.ExchangeRateToPrimary,
		Status:                string(a.Status),
	}
	m.FromDomainBusinessAggregateRoot(a.BusinessAggregateRoot)
	return m
}

// ToDomain converts the persistence model to a domain CurrencyAccount
func (m *CurrencyAccountModel) ToDomain() *ledger.CurrencyAccount {
	a := &ledger.CurrencyAccount{
		Name:                  m.Name,
		Currency:              valueobject.Currency(m.Currency),
		IsPrimary:             m.IsPrimary,
		ExchangeRateToPrimary: m.ExchangeRateToPrimary,
		Status:                ledger.AccountStatus(m.Status),
	}
	m.PopulateBusinessAggregateRoot(&a.BusinessAggregateRoot)
	return a
}
