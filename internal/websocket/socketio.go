package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	socket "github.com/zishang520/socket.io/servers/socket/v3"
	sockettypes "github.com/zishang520/socket.io/v3/pkg/types"

	"github.com/tbalint/beamchat/internal/crypto"
	"github.com/tbalint/beamchat/internal/logger"
	"github.com/tbalint/beamchat/internal/relay"
	"github.com/tbalint/beamchat/internal/store"
)

// SocketIOServer binds the relay core to a Socket.IO transport. Socket.IO
// rooms back the relay's broadcast groups.
type SocketIOServer struct {
	server   *socket.Server
	registry *relay.Registry
	deps     relay.Deps
	sockets  sync.Map // socket ID -> *socket.Socket, authenticated only
}

// NewSocketIOServer creates a Socket.IO server wired to the relay core.
func NewSocketIOServer(users *store.Users, jwtManager *crypto.JWTManager) *SocketIOServer {
	opts := socket.DefaultServerOptions()

	opts.SetCors(&sockettypes.Cors{
		Origin:      "*",
		Credentials: false,
	})

	// SocketIOPingInterval defines how frequently the server pings clients to
	// detect stale/disconnected sockets. Idle-connection liveness lives here,
	// not in the relay core.
	const SocketIOPingInterval = 15 * time.Second

	// SocketIOPingTimeout defines how long the server waits before
	// considering a socket dead (no pong received).
	const SocketIOPingTimeout = 45 * time.Second

	opts.SetPingTimeout(SocketIOPingTimeout)
	opts.SetPingInterval(SocketIOPingInterval)
	opts.SetPath("/socket.io")

	server := socket.NewServer(nil, opts)

	s := &SocketIOServer{
		server:   server,
		registry: relay.NewRegistry(),
	}
	s.deps = relay.NewDeps(
		userLookup{users: users},
		tokenVerifier{manager: jwtManager},
		s.registry,
		&socketBroadcaster{server: server, sockets: &s.sockets},
		time.Now,
	)

	server.On("connection", func(clients ...any) {
		client := clients[0].(*socket.Socket)
		s.handleConnection(client)
	})

	return s
}

// Registry exposes the session registry (connection counts for ops
// endpoints).
func (s *SocketIOServer) Registry() *relay.Registry {
	return s.registry
}

func decodeAny(input any, out any) error {
	raw, err := json.Marshal(input)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// firstArg returns the first event argument, dropping a trailing ACK callback
// when the client requests one.
func firstArg(data []any) any {
	if len(data) == 0 {
		return nil
	}
	if _, ok := data[len(data)-1].(func(...any)); ok {
		data = data[:len(data)-1]
	}
	if len(data) == 0 {
		return nil
	}
	return data[0]
}

// HandleSocketIO creates a Gin handler for the Socket.IO endpoint.
func (s *SocketIOServer) HandleSocketIO() gin.HandlerFunc {
	httpHandler := s.server.ServeHandler(nil)

	return func(c *gin.Context) {
		if c.Request.Method == "OPTIONS" {
			c.Status(http.StatusOK)
			return
		}

		logger.Debugf("Socket.IO request: %s %s", c.Request.Method, c.Request.URL.Path)
		httpHandler.ServeHTTP(c.Writer, c.Request)
	}
}

// Close shuts down the Socket.IO server.
func (s *SocketIOServer) Close() error {
	s.server.Close(nil)
	return nil
}
