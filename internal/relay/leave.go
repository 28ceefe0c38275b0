package relay

import "fmt"

// Leave removes the connection from a room. Leaving a room the connection
// never joined only notifies the caller.
func Leave(deps Deps, connID string, req RoomPayload) {
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

	if !deps.Registry().RemoveRoom(connID, room) {
		deps.Broadcaster().SendTo(connID, EventError, ErrorPayload{
			Message: fmt.Sprintf("You are not in room \"%s\"", room),
		})
		return
	}

	deps.Broadcaster().Unsubscribe(connID, room)

	deps.Broadcaster().Publish(room, EventMessage, Message{
		Type:      "system",
		Content:   fmt.Sprintf("%s left room \"%s\"", user.Username, room),
		Timestamp: deps.Timestamp(),
	})

	deps.Broadcaster().SendTo(connID, EventMessage, Message{
		Type:      "system",
		Content:   fmt.Sprintf("You left room \"%s\"", room),
		Timestamp: deps.Timestamp(),
	})
}
