package websocket

import (
	"context"
	"database/sql"

	"github.com/tbalint/beamchat/internal/crypto"
	"github.com/tbalint/beamchat/internal/relay"
	"github.com/tbalint/beamchat/internal/store"
)

// tokenVerifier adapts the JWT manager to the relay's verifier contract.
type tokenVerifier struct {
	manager *crypto.JWTManager
}

func (v tokenVerifier) Verify(token string) (*relay.TokenClaims, error) {
	claims, err := v.manager.VerifyToken(token)
	if err != nil {
		return nil, err
	}
	return &relay.TokenClaims{
		Subject:  claims.Subject,
		Username: claims.Username,
		Email:    claims.Email,
	}, nil
}

// userLookup adapts the user store to the relay's lookup contract. A missing
// row maps to a nil ref, not an error.
type userLookup struct {
	users *store.Users
}

func (l userLookup) FindByID(ctx context.Context, id string) (*relay.UserRef, error) {
	return toUserRef(l.users.GetUserByID(ctx, id))
}

func (l userLookup) FindByUsername(ctx context.Context, username string) (*relay.UserRef, error) {
	return toUserRef(l.users.GetUserByUsername(ctx, username))
}

func toUserRef(user store.User, err error) (*relay.UserRef, error) {
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &relay.UserRef{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}
