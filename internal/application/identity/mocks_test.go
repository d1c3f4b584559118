package identity

import (
	"context"

	"github.com/invoicemonk/backend/internal/domain/audit"
	"github.com/invoicemonk/backend/internal/domain/billing"
	"github.com/invoicemonk/backend/internal/domain/identity"
	"github.com/invoicemonk/backend/internal/domain/ledger"
	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/invoicemonk/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockBusinessRepository is a mock implementation of BusinessRepository
type MockBusinessRepository struct {
	mock.Mock
}

func (m *MockBusinessRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Business), args.Error(1)
}

func (m *MockBusinessRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]identity.Business, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]identity.Business), args.Error(1)
}

func (m *MockBusinessRepository) FindForUser(ctx context.Context, userID uuid.UUID) ([]identity.Business, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]identity.Business), args.Error(1)
}

func (m *MockBusinessRepository) Save(ctx context.Context, business *identity.Business) error {
	args := m.Called(ctx, business)
	return args.Error(0)
}

// MockMembershipRepository is a mock implementation of MembershipRepository
type MockMembershipRepository struct {
	mock.Mock
}

func (m *MockMembershipRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Membership, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Membership), args.Error(1)
}

func (m *MockMembershipRepository) FindByBusinessAndUser(ctx context.Context, businessID, userID uuid.UUID) (*identity.Membership, error) {
	args := m.Called(ctx, businessID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Membership), args.Error(1)
}

func (m *MockMembershipRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]identity.Membership, error) {
	args := m.Called(ctx, businessID, filter)
	return args.Get(0).([]identity.Membership), args.Error(1)
}

func (m *MockMembershipRepository) CountForBusiness(ctx context.Context, businessID uuid.UUID) (int64, error) {
	args := m.Called(ctx, businessID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMembershipRepository) Save(ctx context.Context, membership *identity.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockMembershipRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCurrencyAccountRepository is a mock implementation of CurrencyAccountRepository
type MockCurrencyAccountRepository struct {
	mock.Mock
}

func (m *MockCurrencyAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.CurrencyAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.CurrencyAccount), args.Error(1)
}

func (m *MockCurrencyAccountRepository) FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*ledger.CurrencyAccount, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.CurrencyAccount), args.Error(1)
}

func (m *MockCurrencyAccountRepository) FindByCurrency(ctx context.Context, businessID uuid.UUID, currency valueobject.Currency) (*ledger.CurrencyAccount, error) {
	args := m.Called(ctx, businessID, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.CurrencyAccount), args.Error(1)
}

func (m *MockCurrencyAccountRepository) FindPrimary(ctx context.Context, businessID uuid.UUID) (*ledger.CurrencyAccount, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.CurrencyAccount), args.Error(1)
}

func (m *MockCurrencyAccountRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID) ([]ledger.CurrencyAccount, error) {
	args := m.Called(ctx, businessID)
	return args.Get(0).([]ledger.CurrencyAccount), args.Error(1)
}

func (m *MockCurrencyAccountRepository) CountForBusiness(ctx context.Context, businessID uuid.UUID) (int64, error) {
	args := m.Called(ctx, businessID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCurrencyAccountRepository) Save(ctx context.Context, account *ledger.CurrencyAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// MockSubscriptionRepository is a mock implementation of SubscriptionRepository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) FindByBusinessID(ctx context.Context, businessID uuid.UUID) (*billing.Subscription, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) Save(ctx context.Context, subscription *billing.Subscription) error {
	args := m.Called(ctx, subscription)
	return args.Error(0)
}

// MockUsageRepository is a mock implementation of UsageRepository
type MockUsageRepository struct {
	mock.Mock
}

func (m *MockUsageRepository) FindOrCreate(ctx context.Context, businessID uuid.UUID, feature billing.Feature, period string) (*billing.UsageCounter, error) {
	args := m.Called(ctx, businessID, feature, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.UsageCounter), args.Error(1)
}

func (m *MockUsageRepository) FindAllForPeriod(ctx context.Context, businessID uuid.UUID, period string) ([]billing.UsageCounter, error) {
	args := m.Called(ctx, businessID, period)
	return args.Get(0).([]billing.UsageCounter), args.Error(1)
}

func (m *MockUsageRepository) Save(ctx context.Context, counter *billing.UsageCounter) error {
	args := m.Called(ctx, counter)
	return args.Error(0)
}

// MockRecorder is a mock implementation of the audit recorder
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, businessID uuid.UUID, actorID *uuid.UUID, action audit.Action, entityType string, entityID uuid.UUID, metadata map[string]string) error {
	args := m.Called(ctx, businessID, actorID, action, entityType, entityID, metadata)
	return args.Error(0)
}
