package models

import (
	"time"

	"github.com/invoicemonk/backend/internal/domain/billing"
)

// SubscriptionModel is the persistence model for billing.Subscription
type SubscriptionModel struct {
	BusinessAggregateModel
	Tier        string `gorm:"not null;size:20"`
	Status      string `gorm:"not null;size:20"`
	PeriodStart time.Time
	PeriodEnd   time.Time
	CancelledAt *time.Time
}

// TableName returns the table name for SubscriptionModel
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

// SubscriptionModelFromDomain converts a domain Subscription to a persistence model
func SubscriptionModelFromDomain(s *billing.Subscription) *SubscriptionModel {
	m := &SubscriptionModel{
		Tier:        s.Tier.String(),
		Status:      string(s.Status),
		PeriodStart: s.PeriodStart,
		PeriodEnd:   s.PeriodEnd,
		CancelledAt: s.CancelledAt,
	}
	m.FromDomainBusinessAggregateRoot(s.BusinessAggregateRoot)
	return m
}

// ToDomain converts the persistence model to a domain Subscription
func (m *SubscriptionModel) ToDomain() *billing.Subscription {
	s := &billing.Subscription{
		Tier:        billing.Tier(m.Tier),
		Status:      billing.SubscriptionStatus(m.Status),
		PeriodStart: m.PeriodStart,
		PeriodEnd:   m.PeriodEnd,
		CancelledAt: m.CancelledAt,
	}
	m.PopulateBusinessAggregateRoot(&s.BusinessAggregateRoot)
	return s
}

// UsageCounterModel is the persistence model for billing.UsageCounter
type UsageCounterModel struct {
	BusinessAggregateModel
	Feature string `gorm:"not null;size:40"`
	Period  string `gorm:"not null;size:7"`
	Used    int64  `gorm:"not null;default:0"`
}

// TableName returns the table name for UsageCounterModel
func (UsageCounterModel) TableName() string {
	return "usage_counters"
}

// UsageCounterModelFromDomain converts a domain UsageCounter to a persistence model
func UsageCounterModelFromDomain(c *billing.UsageCounter) *UsageCounterModel {
	m := &UsageCounterModel{
		Feature: string(c.Feature),
		Period:  c.Period,
		Used:    c.Used,
	}
	m.FromDomainBusinessAggregateRoot(c.BusinessAggregateRoot)
	return m
}

// ToDomain converts the persistence model to a domain UsageCounter
func (m *UsageCounterModel) ToDomain() *billing.UsageCounter {
	c := &billing.UsageCounter{
		Feature: billing.Feature(m.Feature),
		Period:  m.Period,
		Used:    m.Used,
	}
	m.PopulateBusinessAggregateRoot(&c.BusinessAggregateRoot)
	return c
}
