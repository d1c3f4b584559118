package billing

import (
	"context"
	"testing"

	"github.com/invoicemonk/backend/internal/domain/audit"
	"github.com/invoicemonk/backend/internal/domain/billing"
	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSubscriptionService_Get_DefaultsToStarter(t *testing.T) {
	subRepo := new(MockSubscriptionRepository)
	usageRepo := new(MockUsageRepository)
	auditor := new(MockRecorder)
	svc := NewSubscriptionService(subRepo, usageRepo, auditor, zap.NewNop())
	businessID := uuid.New()

	subRepo.On("FindByBusinessID", mock.Anything, businessID).Return(nil, shared.ErrNotFound)

	dto, err := svc.Get(context.Background(), businessID)
	require.NoError(t, err)
	assert.Equal(t, "starter", dto.Tier)
	assert.Equal(t, int64(5), dto.Limits[billing.FeatureInvoices])
}

func TestSubscriptionService_ChangeTier(t *testing.T) {
	subRepo := new(MockSubscriptionRepository)
	usageRepo := new(MockUsageRepository)
	auditor := new(MockRecorder)
	svc := NewSubscriptionService(subRepo, usageRepo, auditor, zap.NewNop())
	businessID := uuid.New()
	actorID := uuid.New()

	sub, err := billing.NewSubscription(businessID, billing.TierStarter)
	require.NoError(t, err)
	subRepo.On("FindByBusinessID", mock.Anything, businessID).Return(sub, nil)
	subRepo.On("Save", mock.Anything, sub).Return(nil)
	auditor.On("Record", mock.Anything, businessID, &actorID, audit.ActionTierChanged, "Subscription", sub.ID,
		map[string]string{"from": "starter", "to": "professional"}).Return(nil)

	dto, err := svc.ChangeTier(context.Background(), businessID, actorID, billing.TierProfessional)
	require.NoError(t, err)
	assert.Equal(t, "professional", dto.Tier)
	auditor.AssertExpectations(t)
}

func TestSubscriptionService_ChangeTier_CreatesRecordForFreeBusiness(t *testing.T) {
	subRepo := new(MockSubscriptionRepository)
	usageRepo := new(MockUsageRepository)
	auditor := new(MockRecorder)
	svc := NewSubscriptionService(subRepo, usageRepo, auditor, zap.NewNop())
	businessID := uuid.New()
	actorID := uuid.New()

	subRepo.On("FindByBusinessID", mock.Anything, businessID).Return(nil, shared.ErrNotFound)
	subRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Subscription")).Return(nil)
	auditor.On("Record", mock.Anything, businessID, &actorID, audit.ActionTierChanged, "Subscription", mock.Anything,
		mock.Anything).Return(nil)

	dto, err := svc.ChangeTier(context.Background(), businessID, actorID, billing.TierStarterPaid)
	require.NoError(t, err)
	assert.Equal(t, "starter_paid", dto.Tier)
}

func TestSubscriptionService_Usage(t *testing.T) {
	subRepo := new(MockSubscriptionRepository)
	usageRepo := new(MockUsageRepository)
	auditor := new(MockRecorder)
	svc := NewSubscriptionService(subRepo, usageRepo, auditor, zap.NewNop())
	businessID := uuid.New()

	subRepo.On("FindByBusinessID", mock.Anything, businessID).Return(nil, shared.ErrNotFound)

	counter := counterWith(t, businessID, billing.FeatureInvoices, 3)
	usageRepo.On("FindAllForPeriod", mock.Anything, businessID, mock.Anything).
		Return([]billing.UsageCounter{*counter}, nil)

	dtos, err := svc.Usage(context.Background(), businessID)
	require.NoError(t, err)
	require.Len(t, dtos, 3)
	assert.Equal(t, "invoices", dtos[0].Feature)
	assert.Equal(t, int64(3), dtos[0].Used)
	assert.Equal(t, int64(5), dtos[0].Limit)
}
