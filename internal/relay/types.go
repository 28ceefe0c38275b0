package relay

import "context"

// UserRef is the identity snapshot captured at authentication time. It is not
// re-fetched per message.
type UserRef struct {
	ID       string
	Username string
	Email    string
}

// TokenClaims is the verified token payload the relay cares about.
type TokenClaims struct {
	Subject  string
	Username string
	Email    string
}

// TokenVerifier verifies a bearer credential (signature and expiry).
type TokenVerifier interface {
	Verify(token string) (*TokenClaims, error)
}

// UserLookup resolves user identities from the external user store. A nil
// result with a nil error means the user does not exist.
type UserLookup interface {
	FindByID(ctx context.Context, id string) (*UserRef, error)
	FindByUsername(ctx context.Context, username string) (*UserRef, error)
}

// Broadcaster is the group-broadcast transport primitive. Groups map to
// socket.io rooms in the production adapter.
type Broadcaster interface {
	Subscribe(connID, group string)
	Unsubscribe(connID, group string)
	Publish(group, event string, payload any)
	SendTo(connID, event string, payload any)
}

// Handshake carries the connection-time auth metadata presented by a client.
type Handshake struct {
	// Auth is the socket.io handshake auth object.
	Auth map[string]any
	// Authorization is the Authorization header value, if any.
	Authorization string
}

// Inbound payloads

type RoomPayload struct {
	Room string `json:"room"`
}

type RoomMessagePayload struct {
	Room    string `json:"room"`
	Message string `json:"message"`
}

type DirectMessagePayload struct {
	TargetUsername string `json:"targetUsername"`
	Message        string `json:"message"`
}

// Outbound payloads

// AuthenticatedPayload is sent once after a successful handshake.
type AuthenticatedPayload struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// ErrorPayload is sent to a single connection when a command is rejected.
type ErrorPayload struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Message is the envelope for "message" events (room and system messages).
type Message struct {
	Type      string `json:"type"`
	Room      string `json:"room,omitempty"`
	Sender    string `json:"sender,omitempty"`
	SenderID  string `json:"senderId,omitempty"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// PrivateMessage is the envelope for "directMessage" events.
type PrivateMessage struct {
	Type           string `json:"type"`
	Sender         string `json:"sender,omitempty"`
	SenderID       string `json:"senderId,omitempty"`
	TargetUsername string `json:"targetUsername,omitempty"`
	Content        string `json:"content"`
	Timestamp      string `json:"timestamp"`
}

const (
	// EventMessage carries room and system message envelopes.
	EventMessage = "message"
	// EventDirectMessage carries private and private-sent envelopes.
	EventDirectMessage = "directMessage"
	// EventError carries ErrorPayload.
	EventError = "error"
	// EventAuthenticated carries AuthenticatedPayload.
	EventAuthenticated = "authenticated"
)

const (
	// CodeUserNotFound is sent when a direct-message target does not exist.
	CodeUserNotFound = "USER_NOT_FOUND"
	// CodeUserOffline is sent when a direct-message target has no live
	// connections.
	CodeUserOffline = "USER_OFFLINE"
)
