package relay

const (
	maxRoomLen     = 100
	maxMessageLen  = 2000
	maxUsernameLen = 50
)

func validRoom(room string) bool {
	return len(room) >= 1 && len(room) <= maxRoomLen
}

func validMessage(message string) bool {
	return len(message) >= 1 && len(message) <= maxMessageLen
}

func validTargetUsername(username string) bool {
	return len(username) >= 1 && len(username) <= maxUsernameLen
}

// caller resolves the calling connection's identity. Connections that never
// authenticated are not in the registry; they get an error notification and
// the command is dropped.
func caller(deps Deps, connID string) (UserRef, bool) {
	user, ok := deps.Registry().User(connID)
	if !ok {
		deps.Broadcaster().SendTo(connID, EventError, ErrorPayload{Message: "Not authenticated"})
		return UserRef{}, false
	}
	return user, true
}
