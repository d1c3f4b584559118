package identity

import (
	"context"

	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserRepository persists User aggregates
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, user *User) error
}

// BusinessRepository persists Business aggregates
type BusinessRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Business, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]Business, error)
	FindForUser(ctx context.Context, userID uuid.UUID) ([]Business, error)
	Save(ctx context.Context, business *Business) error
}

// MembershipRepository persists Membership aggregates
type MembershipRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Membership, error)
	FindByBusinessAndUser(ctx context.Context, businessID, userID uuid.UUID) (*Membership, error)
	FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]Membership, error)
	CountForBusiness(ctx context.Context, businessID uuid.UUID) (int64, error)
	Save(ctx context.Context, membership *Membership) error
	Delete(ctx context.Context, id uuid.UUID) error
}
