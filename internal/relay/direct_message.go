package relay

import (
	"context"
	"fmt"

	"github.com/tbalint/beamchat/internal/logger"
)

// DirectMessage delivers a message to every live connection of the target
// user (multi-device fan-out) and confirms to the sender. Targets are
// resolved by username against the user store, never by raw connection id.
func DirectMessage(ctx context.Context, deps Deps, connID string, req DirectMessagePayload) {
	user, ok := caller(deps, connID)
	if !ok {
		return
	}

	if !validTargetUsername(req.TargetUsername) {
		deps.Broadcaster().SendTo(connID, EventError, ErrorPayload{
			Message: "Target username must be 1-50 characters",
		})
		return
	}
	if !validMessage(req.Message) {
		deps.Broadcaster().SendTo(connID, EventError, ErrorPayload{
			Message: "Message must be 1-2000 characters",
		})
		return
	}

	username := NormalizeUsername(req.TargetUsername)

	target, err := deps.Users().FindByUsername(ctx, username)
	if err != nil {
		logger.Errorf("Direct message target lookup failed (conn %s): %v", connID, err)
		deps.Broadcaster().SendTo(connID, EventError, ErrorPayload{Message: "Internal server error"})
		return
	}
	if target == nil {
		deps.Broadcaster().SendTo(connID, EventError, ErrorPayload{
			Message: fmt.Sprintf("User '%s' does not exist", username),
			Code:    CodeUserNotFound,
		})
		return
	}

	targetConns := deps.Registry().ConnectionsForUser(target.ID)
	if len(targetConns) == 0 {
		deps.Broadcaster().SendTo(connID, EventError, ErrorPayload{
			Message: fmt.Sprintf("User '%s' is not online", username),
			Code:    CodeUserOffline,
		})
		return
	}

	content := Sanitize(req.Message)
	ts := deps.Timestamp()

	for _, targetConn := range targetConns {
		deps.Broadcaster().SendTo(targetConn, EventDirectMessage, PrivateMessage{
			Type:      "private",
			Sender:    user.Username,
			SenderID:  user.ID,
			Content:   content,
			Timestamp: ts,
		})
	}

	deps.Broadcaster().SendTo(connID, EventDirectMessage, PrivateMessage{
		Type:           "private-sent",
		TargetUsername: username,
		Content:        content,
		Timestamp:      ts,
	})
}
