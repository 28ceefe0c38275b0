package relay

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndUnregister(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register("c1", alice))
	require.Equal(t, 1, r.ConnectionCount())
	require.Equal(t, 1, r.UserCount())

	user, ok := r.User("c1")
	require.True(t, ok)
	require.Equal(t, alice, user)

	r.Unregister("c1")
	require.Equal(t, 0, r.ConnectionCount())
	require.Equal(t, 0, r.UserCount())
	_, ok = r.User("c1")
	require.False(t, ok)
}

func TestRegistry_DuplicateConnectionID(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register("c1", alice))
	require.Error(t, r.Register("c1", bob))

	// Original registration is untouched.
	user, ok := r.User("c1")
	require.True(t, ok)
	require.Equal(t, alice, user)
}

func TestRegistry_UnregisterUnknownIsNoop(t *testing.T) {
	r := NewRegistry()
	r.Unregister("never-registered")
	require.Equal(t, 0, r.ConnectionCount())
}

func TestRegistry_ConnectionsForUser(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register("c1", bob))
	require.NoError(t, r.Register("c2", bob))
	require.NoError(t, r.Register("c3", alice))

	require.ElementsMatch(t, []string{"c1", "c2"}, r.ConnectionsForUser(bob.ID))
	require.ElementsMatch(t, []string{"c3"}, r.ConnectionsForUser(alice.ID))
	require.Empty(t, r.ConnectionsForUser("u-carol"))

	// The user entry disappears with the last connection, it is not left
	// empty.
	r.Unregister("c1")
	require.ElementsMatch(t, []string{"c2"}, r.ConnectionsForUser(bob.ID))
	require.Equal(t, 2, r.UserCount())

	r.Unregister("c2")
	require.Empty(t, r.ConnectionsForUser(bob.ID))
	require.Equal(t, 1, r.UserCount())
}

func TestRegistry_RoomMembership(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("c1", alice))

	added, ok := r.AddRoom("c1", "general")
	require.True(t, ok)
	require.True(t, added)

	// Joining twice does not double-count.
	added, ok = r.AddRoom("c1", "general")
	require.True(t, ok)
	require.False(t, added)
	require.ElementsMatch(t, []string{"general"}, r.JoinedRooms("c1"))

	require.True(t, r.IsMember("c1", "general"))
	require.False(t, r.IsMember("c1", "random"))

	require.True(t, r.RemoveRoom("c1", "general"))
	require.False(t, r.RemoveRoom("c1", "general"))
	require.Empty(t, r.JoinedRooms("c1"))
}

func TestRegistry_RoomOpsOnUnknownConnection(t *testing.T) {
	r := NewRegistry()

	_, ok := r.AddRoom("ghost", "general")
	require.False(t, ok)
	require.False(t, r.RemoveRoom("ghost", "general"))
	require.False(t, r.IsMember("ghost", "general"))
	require.Nil(t, r.JoinedRooms("ghost"))
}

func TestRegistry_DisconnectDiscardsMembership(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("c1", alice))
	_, _ = r.AddRoom("c1", "general")

	r.Unregister("c1")

	require.Empty(t, r.JoinedRooms("c1"))
	require.False(t, r.IsMember("c1", "general"))
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			connID := fmt.Sprintf("c%d", i)
			user := UserRef{ID: fmt.Sprintf("u%d", i%10), Username: "user"}
			require.NoError(t, r.Register(connID, user))
			_, _ = r.AddRoom(connID, "general")
			_ = r.ConnectionsForUser(user.ID)
			_ = r.JoinedRooms(connID)
			r.Unregister(connID)
		}(i)
	}
	wg.Wait()

	require.Equal(t, 0, r.ConnectionCount())
	require.Equal(t, 0, r.UserCount())
}
