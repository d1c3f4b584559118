package identity

import (
	"context"
	"time"

	appaudit "github.com/invoicemonk/backend/internal/application/audit"
	appbilling "github.com/invoicemonk/backend/internal/application/billing"
	"github.com/invoicemonk/backend/internal/domain/audit"
	"github.com/invoicemonk/backend/internal/domain/billing"
	"github.com/invoicemonk/backend/internal/domain/identity"
	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MembershipService manages a business's team
type MembershipService struct {
	membershipRepo identity.MembershipRepository
	userRepo       identity.UserRepository
	entitlements   *appbilling.EntitlementService
	auditor        appaudit.Recorder
	logger         *zap.Logger
}

// NewMembershipService creates a new membership service
func NewMembershipService(
	membershipRepo identity.MembershipRepository,
	userRepo identity.UserRepository,
	entitlements *appbilling.EntitlementService,
	auditor appaudit.Recorder,
	logger *zap.Logger,
) *MembershipService {
	return &MembershipService{
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
		entitlements:   entitlements,
		auditor:        auditor,
		logger:         logger,
	}
}

// MemberDTO represents one team member
type MemberDTO struct {
	MembershipID uuid.UUID `json:"membership_id"`
	UserID       uuid.UUID `json:"user_id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	JoinedAt     time.Time `json:"joined_at"`
}

// AddMemberInput contains input for adding a team member
type AddMemberInput struct {
	BusinessID uuid.UUID
	ActorID    uuid.UUID
	Email      string
	Role       identity.Role
}

// Add invites an existing user to the business. Team seats are gated
// by the subscription tier.
func (s *MembershipService) Add(ctx context.Context, input AddMemberInput) (*MemberDTO, error) {
	current, err := s.membershipRepo.CountForBusiness(ctx, input.BusinessID)
	if err != nil {
		s.logger.Error("Failed to count members", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check team size")
	}

	ent, err := s.entitlements.CheckStructural(ctx, input.BusinessID, billing.FeatureTeamMembers, current)
	if err != nil {
		return nil, err
	}
	if err := s.entitlements.Require(ent); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "No account exists for this email")
	}

	if existing, err := s.membershipRepo.FindByBusinessAndUser(ctx, input.BusinessID, user.ID); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_MEMBER", "User is already a member of this business")
	}

	membership, err := identity.NewMembership(input.BusinessID, user.ID, input.Role)
	if err != nil {
		return nil, err
	}

	if err := s.membershipRepo.Save(ctx, membership); err != nil {
		s.logger.Error("Failed to save membership", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to add member")
	}

	s.logger.Info("Member added",
		zap.String("business_id", input.BusinessID.String()),
		zap.String("user_id", user.ID.String()),
		zap.String("role", input.Role.String()))

	if err := s.auditor.Record(ctx, input.BusinessID, &input.ActorID, audit.ActionMemberAdded, "Membership", membership.ID,
		map[string]string{"user_id": user.ID.String(), "role": input.Role.String()}); err != nil {
		s.logger.Warn("Failed to audit member addition", zap.Error(err))
	}

	return toMemberDTO(membership, user), nil
}

// ChangeRole updates a member's role. Ownership never moves this way.
func (s *MembershipService) ChangeRole(ctx context.Context, businessID, actorID, membershipID uuid.UUID, role identity.Role) (*MemberDTO, error) {
	membership, err := s.membershipRepo.FindByID(ctx, membershipID)
	if err != nil || membership.BusinessID != businessID {
		return nil, shared.ErrNotFound
	}

	previous := membership.Role
	if err := membership.ChangeRole(role); err != nil {
		return nil, err
	}

	if err := s.membershipRepo.Save(ctx, membership); err != nil {
		s.logger.Error("Failed to save membership", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to change role")
	}

	if err := s.auditor.Record(ctx, businessID, &actorID, audit.ActionRoleChanged, "Membership", membership.ID,
		map[string]string{"from": previous.String(), "to": role.String()}); err != nil {
		s.logger.Warn("Failed to audit role change", zap.Error(err))
	}

	user, err := s.userRepo.FindByID(ctx, membership.UserID)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load member")
	}
	return toMemberDTO(membership, user), nil
}

// Remove drops a member from the business. The owner cannot be removed.
func (s *MembershipService) Remove(ctx context.Context, businessID, actorID, membershipID uuid.UUID) error {
	membership, err := s.membershipRepo.FindByID(ctx, membershipID)
	if err != nil || membership.BusinessID != businessID {
		return shared.ErrNotFound
	}

	if !membership.CanBeRemoved() {
		return shared.NewDomainError("INVALID_STATE", "The business owner cannot be removed")
	}

	if err := s.membershipRepo.Delete(ctx, membershipID); err != nil {
		s.logger.Error("Failed to delete membership", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to remove member")
	}

	if err := s.auditor.Record(ctx, businessID, &actorID, audit.ActionMemberRemoved, "Membership", membershipID,
		map[string]string{"user_id": membership.UserID.String()}); err != nil {
		s.logger.Warn("Failed to audit member removal", zap.Error(err))
	}

	return nil
}

// List returns the business's team
func (s *MembershipService) List(ctx context.Context, businessID uuid.UUID) ([]MemberDTO, error) {
	memberships, err := s.membershipRepo.FindAllForBusiness(ctx, businessID, shared.DefaultFilter())
	if err != nil {
		s.logger.Error("Failed to list memberships", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list members")
	}

	dtos := make([]MemberDTO, 0, len(memberships))
	for i := range memberships {
		user, err := s.userRepo.FindByID(ctx, memberships[i].UserID)
		if err != nil {
			s.logger.Warn("Member user record missing",
				zap.String("user_id", memberships[i].UserID.String()))
			continue
		}
		dtos = append(dtos, *toMemberDTO(&memberships[i], user))
	}
	return dtos, nil
}

// RoleFor resolves the caller's role inside a business, used by the
// authorization middleware
func (s *MembershipService) RoleFor(ctx context.Context, businessID, userID uuid.UUID) (identity.Role, error) {
	membership, err := s.membershipRepo.FindByBusinessAndUser(ctx, businessID, userID)
	if err != nil {
		return "", shared.ErrForbidden
	}
	return membership.Role, nil
}

func toMemberDTO(m *identity.Membership, u *identity.User) *MemberDTO {
	return &MemberDTO{
		MembershipID: m.ID,
		UserID:       m.UserID,
		Email:        u.Email,
		FullName:     u.FullName,
		Role:         m.Role.String(),
		JoinedAt:     m.CreatedAt,
	}
}
