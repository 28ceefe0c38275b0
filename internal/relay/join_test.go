package relay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJoin_SubscribesAndAnnounces(t *testing.T) {
	bc := &fakeBroadcaster{}
	deps := testDeps(bc, fakeUserLookup{})
	require.NoError(t, deps.Registry().Register("c1", alice))

	Join(deps, "c1", RoomPayload{Room: " general "})

	require.True(t, deps.Registry().IsMember("c1", "general"))
	require.Len(t, bc.subscribes, 1)
	require.Equal(t, "general", bc.subscribes[0].group)

	require.Len(t, bc.publishes, 1)
	msg, ok := bc.publishes[0].payload.(Message)
	require.True(t, ok)
	require.Equal(t, "system", msg.Type)
	require.Equal(t, `alice joined room "general"`, msg.Content)
	require.NotEmpty(t, msg.Timestamp)
}

func TestJoin_IsIdempotentForMembership(t *testing.T) {
	bc := &fakeBroadcaster{}
	deps := testDeps(bc, fakeUserLookup{})
	require.NoError(t, deps.Registry().Register("c1", alice))

	Join(deps, "c1", RoomPayload{Room: "general"})
	Join(deps, "c1", RoomPayload{Room: "general"})

	require.ElementsMatch(t, []string{"general"}, deps.Registry().JoinedRooms("c1"))
}

func TestJoin_SanitizesRoomName(t *testing.T) {
	bc := &fakeBroadcaster{}
	deps := testDeps(bc, fakeUserLookup{})
	require.NoError(t, deps.Registry().Register("c1", alice))

	Join(deps, "c1", RoomPayload{Room: "<general>"})

	require.True(t, deps.Registry().IsMember("c1", "&lt;general&gt;"))
	require.False(t, deps.Registry().IsMember("c1", "<general>"))
}

func TestJoin_RejectsInvalidRoom(t *testing.T) {
	bc := &fakeBroadcaster{}
	deps := testDeps(bc, fakeUserLookup{})
	require.NoError(t, deps.Registry().Register("c1", alice))

	Join(deps, "c1", RoomPayload{Room: ""})
	Join(deps, "c1", RoomPayload{Room: strings.Repeat("x", 101)})

	require.Empty(t, deps.Registry().JoinedRooms("c1"))
	require.Empty(t, bc.publishes)
	require.Len(t, bc.sentTo("c1"), 2)
	for _, e := range bc.sentTo("c1") {
		require.Equal(t, EventError, e.event)
	}
}

func TestJoin_RequiresAuthentication(t *testing.T) {
	bc := &fakeBroadcaster{}
	deps := testDeps(bc, fakeUserLookup{})

	Join(deps, "never-authed", RoomPayload{Room: "general"})

	require.Empty(t, bc.subscribes)
	require.Empty(t, bc.publishes)
	sent := bc.sentTo("never-authed")
	require.Len(t, sent, 1)
	require.Equal(t, EventError, sent[0].event)
	require.Equal(t, ErrorPayload{Message: "Not authenticated"}, sent[0].payload)
}
