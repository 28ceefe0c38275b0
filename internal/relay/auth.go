package relay

import (
	"context"
	"strings"
)

// AuthCode classifies connection-time authentication failures.
type AuthCode string

const (
	AuthMissingToken   AuthCode = "MISSING_TOKEN"
	AuthInvalidToken   AuthCode = "INVALID_TOKEN"
	AuthUserNotFound   AuthCode = "USER_NOT_FOUND"
	AuthInternalError  AuthCode = "INTERNAL_ERROR"
	bearerPrefix                = "Bearer "
)

// AuthError is a connection-time authentication failure. It is fatal for the
// connection attempt: the caller must notify the client and terminate the
// connection without registering it. Message is safe to send to clients.
type AuthError struct {
	Code    AuthCode
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// ExtractToken extracts the bearer credential from handshake metadata. The
// token field in the auth object wins over the Authorization header.
func ExtractToken(hs Handshake) string {
	if token, ok := hs.Auth["token"].(string); ok && token != "" {
		return token
	}
	if strings.HasPrefix(hs.Authorization, bearerPrefix) {
		return hs.Authorization[len(bearerPrefix):]
	}
	return ""
}

// Authenticate validates the handshake credential and resolves it to a user
// identity. It is stateless; any returned error is an *AuthError.
func Authenticate(ctx context.Context, deps Deps, hs Handshake) (UserRef, error) {
	token := ExtractToken(hs)
	if token == "" {
		return UserRef{}, &AuthError{Code: AuthMissingToken, Message: "Authentication required"}
	}

	claims, err := deps.Verifier().Verify(token)
	if err != nil {
		return UserRef{}, &AuthError{Code: AuthInvalidToken, Message: "Invalid or expired token"}
	}

	user, err := deps.Users().FindByID(ctx, claims.Subject)
	if err != nil {
		return UserRef{}, &AuthError{Code: AuthInternalError, Message: "Authentication failed"}
	}
	if user == nil {
		return UserRef{}, &AuthError{Code: AuthUserNotFound, Message: "User not found"}
	}

	return *user, nil
}

// Connect authenticates a new connection and registers it. A connection that
// fails authentication is never registered.
func Connect(ctx context.Context, deps Deps, connID string, hs Handshake) (UserRef, error) {
	user, err := Authenticate(ctx, deps, hs)
	if err != nil {
		return UserRef{}, err
	}

	if err := deps.Registry().Register(connID, user); err != nil {
		return UserRef{}, &AuthError{Code: AuthInternalError, Message: "Authentication failed"}
	}
	return user, nil
}

// Disconnect removes a connection from the registry. Membership is discarded
// without emitting leave notifications to the rooms the connection was in.
func Disconnect(deps Deps, connID string) {
	deps.Registry().Unregister(connID)
}
