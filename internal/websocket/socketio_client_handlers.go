package websocket

import (
	"context"

	socket "github.com/zishang520/socket.io/servers/socket/v3"

	"github.com/tbalint/beamchat/internal/logger"
	"github.com/tbalint/beamchat/internal/relay"
)

func (s *SocketIOServer) registerClientHandlers(client *socket.Socket, socketID string, user relay.UserRef) {
	client.On("joinRoom", func(data ...any) {
		var req relay.RoomPayload
		_ = decodeAny(firstArg(data), &req)
		relay.Join(s.deps, socketID, req)
	})

	client.On("leaveRoom", func(data ...any) {
		var req relay.RoomPayload
		_ = decodeAny(firstArg(data), &req)
		relay.Leave(s.deps, socketID, req)
	})

	client.On("roomMessage", func(data ...any) {
		var req relay.RoomMessagePayload
		_ = decodeAny(firstArg(data), &req)
		relay.RoomMessage(s.deps, socketID, req)
	})

	client.On("directMessage", func(data ...any) {
		var req relay.DirectMessagePayload
		_ = decodeAny(firstArg(data), &req)
		relay.DirectMessage(context.Background(), s.deps, socketID, req)
	})

	client.On("disconnect", func(data ...any) {
		reason := ""
		if len(data) > 0 {
			if r, ok := data[0].(string); ok {
				reason = r
			}
		}
		logger.Infof("User disconnected: %s (socket %s, reason: %s)",
			user.Username, socketID, reason)

		relay.Disconnect(s.deps, socketID)
		s.sockets.Delete(socketID)
	})
}
