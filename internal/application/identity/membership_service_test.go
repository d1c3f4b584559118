package identity

import (
	"context"
	"testing"

	appbilling "github.com/invoicemonk/backend/internal/application/billing"
	"github.com/invoicemonk/backend/internal/domain/audit"
	"github.com/invoicemonk/backend/internal/domain/billing"
	"github.com/invoicemonk/backend/internal/domain/identity"
	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMembershipService(membershipRepo *MockMembershipRepository, userRepo *MockUserRepository,
	subRepo *MockSubscriptionRepository, auditor *MockRecorder) *MembershipService {
	entitlements := appbilling.NewEntitlementService(subRepo, new(MockUsageRepository), zap.NewNop())
	return NewMembershipService(membershipRepo, userRepo, entitlements, auditor, zap.NewNop())
}

func TestMembershipService_Add(t *testing.T) {
	membershipRepo := new(MockMembershipRepository)
	userRepo := new(MockUserRepository)
	subRepo := new(MockSubscriptionRepository)
	auditor := new(MockRecorder)
	svc := newMembershipService(membershipRepo, userRepo, subRepo, auditor)

	businessID := uuid.New()
	actorID := uuid.New()
	user, err := identity.NewUser("grace@example.com", "strong-password-1", "Grace Hopper")
	require.NoError(t, err)

	sub, err := billing.NewSubscription(businessID, billing.TierStarterPaid)
	require.NoError(t, err)
	subRepo.On("FindByBusinessID", mock.Anything, businessID).Return(sub, nil)
	membershipRepo.On("CountForBusiness", mock.Anything, businessID).Return(int64(1), nil)
	userRepo.On("FindByEmail", mock.Anything, "grace@example.com").Return(user, nil)
	membershipRepo.On("FindByBusinessAndUser", mock.Anything, businessID, user.ID).Return(nil, shared.ErrNotFound)
	membershipRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.Membership")).Return(nil)
	auditor.On("Record", mock.Anything, businessID, &actorID, audit.ActionMemberAdded, "Membership", mock.Anything, mock.Anything).Return(nil)

	dto, err := svc.Add(context.Background(), AddMemberInput{
		BusinessID: businessID,
		ActorID:    actorID,
		Email:      "grace@example.com",
		Role:       identity.RoleMember,
	})
	require.NoError(t, err)
	assert.Equal(t, "member", dto.Role)
	auditor.AssertExpectations(t)
}

func TestMembershipService_Add_SeatLimitReached(t *testing.T) {
	membershipRepo := new(MockMembershipRepository)
	userRepo := new(MockUserRepository)
	subRepo := new(MockSubscriptionRepository)
	auditor := new(MockRecorder)
	svc := newMembershipService(membershipRepo, userRepo, subRepo, auditor)

	businessID := uuid.New()
	seatLimit := int64(1)

	subRepo.On("FindByBusinessID", mock.Anything, businessID).Return(nil, shared.ErrNotFound)
	membershipRepo.On("CountForBusiness", mock.Anything, businessID).Return(seatLimit, nil)

	_, err := svc.Add(context.Background(), AddMemberInput{
		BusinessID: businessID,
		ActorID:    uuid.New(),
		Email:      "grace@example.com",
		Role:       identity.RoleMember,
	})
	require.Error(t, err)
	de, ok := err.(*shared.DomainError)
	require.True(t, ok)
	assert.Equal(t, shared.CodeUpgradeRequired, de.Code)

	// A denied check changes nothing
	membershipRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestMembershipService_Remove_OwnerIsProtected(t *testing.T) {
	membershipRepo := new(MockMembershipRepository)
	svc := newMembershipService(membershipRepo, new(MockUserRepository), new(MockSubscriptionRepository), new(MockRecorder))

	businessID := uuid.New()
	owner, err := identity.NewMembership(businessID, uuid.New(), identity.RoleOwner)
	require.NoError(t, err)

	membershipRepo.On("FindByID", mock.Anything, owner.ID).Return(owner, nil)

	err = svc.Remove(context.Background(), businessID, uuid.New(), owner.ID)
	require.Error(t, err)
	membershipRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestMembershipService_ChangeRole_OwnershipNeverMoves(t *testing.T) {
	membershipRepo := new(MockMembershipRepository)
	userRepo := new(MockUserRepository)
	svc := newMembershipService(membershipRepo, userRepo, new(MockSubscriptionRepository), new(MockRecorder))

	businessID := uuid.New()
	member, err := identity.NewMembership(businessID, uuid.New(), identity.RoleMember)
	require.NoError(t, err)

	membershipRepo.On("FindByID", mock.Anything, member.ID).Return(member, nil)

	_, err = svc.ChangeRole(context.Background(), businessID, uuid.New(), member.ID, identity.RoleOwner)
	assert.Error(t, err)
}
