package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/msomdec/taskvault/internal/domain"
)

// IdentityResolver turns a bearer token into the active user it names.
// Every protected operation goes through Resolve.
type IdentityResolver struct {
	tokens *TokenService
}

func NewIdentityResolver(tokens *TokenService) *IdentityResolver {
	return &IdentityResolver{tokens: tokens}
}

// Resolve validates token and loads its subject. A bad token and a missing
// user both yield domain.ErrInvalidCredentials.
func (r *IdentityResolver) Resolve(ctx context.Context, sess domain.Session, token string) (*domain.User, error) {
	userID, err := r.tokens.Validate(token)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := sess.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}
	return user, nil
}
