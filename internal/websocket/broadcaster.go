package websocket

import (
	"sync"

	socket "github.com/zishang520/socket.io/servers/socket/v3"
)

// socketBroadcaster implements relay.Broadcaster over Socket.IO rooms.
type socketBroadcaster struct {
	server  *socket.Server
	sockets *sync.Map
}

func (b *socketBroadcaster) socket(connID string) *socket.Socket {
	if value, ok := b.sockets.Load(connID); ok {
		if sock, ok := value.(*socket.Socket); ok {
			return sock
		}
	}
	return nil
}

func (b *socketBroadcaster) Subscribe(connID, group string) {
	if sock := b.socket(connID); sock != nil {
		sock.Join(socket.Room(group))
	}
}

func (b *socketBroadcaster) Unsubscribe(connID, group string) {
	if sock := b.socket(connID); sock != nil {
		sock.Leave(socket.Room(group))
	}
}

func (b *socketBroadcaster) Publish(group, event string, payload any) {
	b.server.To(socket.Room(group)).Emit(event, payload)
}

func (b *socketBroadcaster) SendTo(connID, event string, payload any) {
	if sock := b.socket(connID); sock != nil {
		sock.Emit(event, payload)
	}
}
