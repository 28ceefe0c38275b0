package websocket

import (
	"context"

	socket "github.com/zishang520/socket.io/servers/socket/v3"

	"github.com/tbalint/beamchat/internal/logger"
	"github.com/tbalint/beamchat/internal/relay"
)

// handshakeData is the portion of the Socket.IO handshake the relay cares
// about.
type handshakeData struct {
	Headers map[string]any `json:"headers"`
	Auth    map[string]any `json:"auth"`
}

func headerValue(headers map[string]any, key string) string {
	switch v := headers[key].(type) {
	case string:
		return v
	case []any:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return s
			}
		}
	}
	return ""
}

func (s *SocketIOServer) handleConnection(client *socket.Socket) {
	socketID := string(client.Id())

	logger.Infof("Socket.IO connection attempt (socket %s)", socketID)

	var hs handshakeData
	if err := decodeAny(client.Handshake(), &hs); err != nil {
		logger.Warnf("Socket.IO invalid handshake (socket %s): %v", socketID, err)
		client.Emit(relay.EventError, relay.ErrorPayload{Message: "Invalid handshake"})
		client.Disconnect(true)
		return
	}

	// Do not log the handshake auth payload; it contains a bearer token.
	user, err := relay.Connect(context.Background(), s.deps, socketID, relay.Handshake{
		Auth:          hs.Auth,
		Authorization: headerValue(hs.Headers, "authorization"),
	})
	if err != nil {
		logger.Warnf("Connection rejected: %v (socket %s)", err, socketID)
		client.Emit(relay.EventError, relay.ErrorPayload{Message: err.Error()})
		client.Disconnect(true)
		return
	}

	s.sockets.Store(socketID, client)

	logger.Infof("User connected: %s (socket %s)", user.Username, socketID)
	client.Emit(relay.EventAuthenticated, relay.AuthenticatedPayload{
		Message: "Successfully authenticated",
		UserID:  user.ID,
	})

	s.registerClientHandlers(client, socketID, user)
}
