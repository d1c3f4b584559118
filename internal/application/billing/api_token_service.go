package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appaudit "github.com/invoicemonk/backend/internal/application/audit"
	"github.com/invoicemonk/backend/internal/domain/audit"
	"github.com/invoicemonk/backend/internal/domain/billing"
)

// TokenMinter mints long-lived programmatic access tokens
type TokenMinter interface {
	GenerateAPIToken(userID uuid.UUID, email string) (string, time.Time, error)
}

// APITokenService issues programmatic access tokens. Issuance is the
// entitlement gate: only tiers with api_access can mint, and a minted
// token is audited against the business.
type APITokenService struct {
	entitlements *EntitlementService
	tokens       TokenMinter
	auditor      appaudit.Recorder
	logger       *zap.Logger
}

// NewAPITokenService creates a new API token service
func NewAPITokenService(
	entitlements *EntitlementService,
	tokens TokenMinter,
	auditor appaudit.Recorder,
	logger *zap.Logger,
) *APITokenService {
	return &APITokenService{
		entitlements: entitlements,
		tokens:       tokens,
		auditor:      auditor,
		logger:       logger,
	}
}

// APITokenDTO carries a freshly minted programmatic token
type APITokenDTO struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Issue mints a programmatic token for the acting user, gated on the
// business's api_access entitlement
func (s *APITokenService) Issue(ctx context.Context, businessID, actorID uuid.UUID, email string) (*APITokenDTO, error) {
	ent, err := s.entitlements.CheckSwitch(ctx, businessID, billing.FeatureAPIAccess)
	if err != nil {
		return nil, err
	}
	if err := s.entitlements.Require(ent); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokens.GenerateAPIToken(actorID, email)
	if err != nil {
		s.logger.Error("Failed to mint API token", zap.Error(err))
		return nil, err
	}

	s.logger.Info("API token issued",
		zap.String("business_id", businessID.String()),
		zap.String("user_id", actorID.String()))

	if err := s.auditor.Record(ctx, businessID, &actorID, audit.ActionAPITokenIssued, "ApiToken", actorID,
		map[string]string{"expires_at": expiresAt.UTC().Format(time.RFC3339)}); err != nil {
		s.logger.Warn("Failed to audit API token issuance", zap.Error(err))
	}

	return &APITokenDTO{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
	}, nil
}
