package relay

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func directMessageDeps(t *testing.T, bc *fakeBroadcaster) Deps {
	t.Helper()
	users := fakeUserLookup{
		findByUsername: func(ctx context.Context, username string) (*UserRef, error) {
			if username == bob.Username {
				u := bob
				return &u, nil
			}
			return nil, nil
		},
	}
	deps := testDeps(bc, users)
	require.NoError(t, deps.Registry().Register("alice-1", alice))
	return deps
}

func TestDirectMessage_MultiDeviceFanOut(t *testing.T) {
	bc := &fakeBroadcaster{}
	deps := directMessageDeps(t, bc)
	require.NoError(t, deps.Registry().Register("bob-1", bob))
	require.NoError(t, deps.Registry().Register("bob-2", bob))

	DirectMessage(context.Background(), deps, "alice-1", DirectMessagePayload{
		TargetUsername: " bob ",
		Message:        "see you at 5 o'clock",
	})

	// Both of bob's connections receive the private envelope.
	for _, connID := range []string{"bob-1", "bob-2"} {
		sent := bc.sentTo(connID)
		require.Len(t, sent, 1)
		require.Equal(t, EventDirectMessage, sent[0].event)
		msg, ok := sent[0].payload.(PrivateMessage)
		require.True(t, ok)
		require.Equal(t, "private", msg.Type)
		require.Equal(t, "alice", msg.Sender)
		require.Equal(t, alice.ID, msg.SenderID)
		require.Equal(t, "see you at 5 o&#x27;clock", msg.Content)
	}

	// Exactly one confirmation back to the sender.
	sent := bc.sentTo("alice-1")
	require.Len(t, sent, 1)
	conf, ok := sent[0].payload.(PrivateMessage)
	require.True(t, ok)
	require.Equal(t, "private-sent", conf.Type)
	require.Equal(t, "bob", conf.TargetUsername)
	require.Equal(t, "see you at 5 o&#x27;clock", conf.Content)
}

func TestDirectMessage_UserNotFound(t *testing.T) {
	bc := &fakeBroadcaster{}
	deps := directMessageDeps(t, bc)

	DirectMessage(context.Background(), deps, "alice-1", DirectMessagePayload{
		TargetUsername: "carol",
		Message:        "hello?",
	})

	sent := bc.sentTo("alice-1")
	require.Len(t, sent, 1)
	require.Equal(t, EventError, sent[0].event)
	require.Equal(t, ErrorPayload{
		Message: "User 'carol' does not exist",
		Code:    CodeUserNotFound,
	}, sent[0].payload)
}

func TestDirectMessage_UserOffline(t *testing.T) {
	bc := &fakeBroadcaster{}
	deps := directMessageDeps(t, bc)
	// bob exists in the store but has no live connections.

	DirectMessage(context.Background(), deps, "alice-1", DirectMessagePayload{
		TargetUsername: "bob",
		Message:        "hello?",
	})

	sent := bc.sentTo("alice-1")
	require.Len(t, sent, 1)
	require.Equal(t, ErrorPayload{
		Message: "User 'bob' is not online",
		Code:    CodeUserOffline,
	}, sent[0].payload)
	// No deliveries occurred.
	require.Len(t, bc.sends, 1)
}

func TestDirectMessage_LookupFailure(t *testing.T) {
	bc := &fakeBroadcaster{}
	users := fakeUserLookup{
		findByUsername: func(ctx context.Context, username string) (*UserRef, error) {
			return nil, errors.New("store unavailable")
		},
	}
	deps := testDeps(bc, users)
	require.NoError(t, deps.Registry().Register("alice-1", alice))

	DirectMessage(context.Background(), deps, "alice-1", DirectMessagePayload{
		TargetUsername: "bob",
		Message:        "hi",
	})

	sent := bc.sentTo("alice-1")
	require.Len(t, sent, 1)
	// Raw store errors never reach the client.
	require.Equal(t, ErrorPayload{Message: "Internal server error"}, sent[0].payload)
}

func TestDirectMessage_ValidationBounds(t *testing.T) {
	bc := &fakeBroadcaster{}
	deps := directMessageDeps(t, bc)

	DirectMessage(context.Background(), deps, "alice-1", DirectMessagePayload{
		TargetUsername: "",
		Message:        "hi",
	})
	DirectMessage(context.Background(), deps, "alice-1", DirectMessagePayload{
		TargetUsername: "bob",
		Message:        "",
	})

	require.Len(t, bc.sentTo("alice-1"), 2)
	for _, e := range bc.sentTo("alice-1") {
		require.Equal(t, EventError, e.event)
	}
}
