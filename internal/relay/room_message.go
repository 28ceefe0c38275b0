package relay

import "fmt"

// RoomMessage broadcasts a message to every member of a room, the sender
// included. Senders must be current members; otherwise nothing is published.
func RoomMessage(deps Deps, connID string, req RoomMessagePayload) {
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
	if !validMessage(req.Message) {
		deps.Broadcaster().SendTo(connID, EventError, ErrorPayload{
			Message: "Message must be 1-2000 characters",
		})
		return
	}

	room := Sanitize(req.Room)

	if !deps.Registry().IsMember(connID, room) {
		deps.Broadcaster().SendTo(connID, EventError, ErrorPayload{
			Message: fmt.Sprintf("You are not in room \"%s\"!", room),
		})
		return
	}

	deps.Broadcaster().Publish(room, EventMessage, Message{
		Type:      "room",
		Room:      room,
		Sender:    user.Username,
		SenderID:  user.ID,
		Content:   Sanitize(req.Message),
		Timestamp: deps.Timestamp(),
	})
}
