package relay

import (
	"fmt"
	"sync"
)

// connection is a live registry entry. Created only after successful
// authentication, destroyed on disconnect, never mutated outside the
// registry lock.
type connection struct {
	user  UserRef
	rooms map[string]struct{}
}

// Registry is the authoritative in-memory map of live connections, their
// owning users, and their room memberships. All mutating operations are
// atomic with respect to each other; no lock is ever held across an external
// call.
type Registry struct {
	mu     sync.RWMutex
	conns  map[string]*connection
	byUser map[string]map[string]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		conns:  make(map[string]*connection),
		byUser: make(map[string]map[string]struct{}),
	}
}

// Register inserts a new connection with an empty room set. A duplicate
// connection id is a programming error and is rejected.
func (r *Registry) Register(connID string, user UserRef) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.conns[connID]; exists {
		return fmt.Errorf("connection %s already registered", connID)
	}

	r.conns[connID] = &connection{
		user:  user,
		rooms: make(map[string]struct{}),
	}
	if r.byUser[user.ID] == nil {
		r.byUser[user.ID] = make(map[string]struct{})
	}
	r.byUser[user.ID][connID] = struct{}{}
	return nil
}

// Unregister removes a connection from all views. The user entry is removed
// entirely, not left empty, when the last connection for that user closes.
// No-op for unknown ids (disconnect before successful auth).
func (r *Registry) Unregister(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.conns[connID]
	if !ok {
		return
	}
	delete(r.conns, connID)

	if set := r.byUser[conn.user.ID]; set != nil {
		delete(set, connID)
		if len(set) == 0 {
			delete(r.byUser, conn.user.ID)
		}
	}
}

// User returns the identity snapshot owning a connection.
func (r *Registry) User(connID string) (UserRef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conn, ok := r.conns[connID]
	if !ok {
		return UserRef{}, false
	}
	return conn.user, true
}

// ConnectionsForUser returns all live connection ids for a user, empty if the
// user has no live connections.
func (r *Registry) ConnectionsForUser(userID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := r.byUser[userID]
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}

// JoinedRooms returns the rooms a connection is currently a member of.
func (r *Registry) JoinedRooms(connID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conn, ok := r.conns[connID]
	if !ok {
		return nil
	}
	rooms := make([]string, 0, len(conn.rooms))
	for room := range conn.rooms {
		rooms = append(rooms, room)
	}
	return rooms
}

// AddRoom adds a room to a connection's membership set. Joining twice is a
// no-op. Reports whether the membership was newly added and whether the
// connection is known.
func (r *Registry) AddRoom(connID, room string) (added, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, exists := r.conns[connID]
	if !exists {
		return false, false
	}
	if _, member := conn.rooms[room]; member {
		return false, true
	}
	conn.rooms[room] = struct{}{}
	return true, true
}

// RemoveRoom removes a room from a connection's membership set. Reports
// whether the connection was a member.
func (r *Registry) RemoveRoom(connID, room string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, exists := r.conns[connID]
	if !exists {
		return false
	}
	if _, member := conn.rooms[room]; !member {
		return false
	}
	delete(conn.rooms, room)
	return true
}

// IsMember reports whether a connection has joined a room.
func (r *Registry) IsMember(connID, room string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conn, exists := r.conns[connID]
	if !exists {
		return false
	}
	_, member := conn.rooms[room]
	return member
}

// ConnectionCount returns the total number of live connections.
func (r *Registry) ConnectionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.conns)
}

// UserCount returns the number of users with at least one live connection.
func (r *Registry) UserCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byUser)
}
