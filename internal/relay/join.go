package relay

import "fmt"

// Join adds the connection to a room and announces it. Joining a room twice
// is a no-op for membership state.
func Join(deps Deps, connID string, req RoomPayload) {
	user, ok := caller(deps, connID)
	if !ok {
		return
	}

	if !validRoom(req.Room) {
		deps.Broadcaster().SendTo(connID, EventError, ErrorPayload{
			Message: "Room name must be 1-100 characters",
		})
		return
	}

	room := Sanitize(req.Room)
	if room == "" {
		deps.Broadcaster().SendTo(connID, EventError, ErrorPayload{
			Message: "Room name must be 1-100 characters",
		})
		return
	}

	deps.Registry().AddRoom(connID, room)
	deps.Broadcaster().Subscribe(connID, room)

	deps.Broadcaster().Publish(room, EventMessage, Message{
		Type:      "system",
		Content:   fmt.Sprintf("%s joined room \"%s\"", user.Username, room),
		Timestamp: deps.Timestamp(),
	})
}
