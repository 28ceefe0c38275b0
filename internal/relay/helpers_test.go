package relay

import (
	"context"
	"time"
)

type fakeUserLookup struct {
	findByID       func(ctx context.Context, id string) (*UserRef, error)
	findByUsername func(ctx context.Context, username string) (*UserRef, error)
}

func (f fakeUserLookup) FindByID(ctx context.Context, id string) (*UserRef, error) {
	if f.findByID == nil {
		return nil, nil
	}
	return f.findByID(ctx, id)
}

func (f fakeUserLookup) FindByUsername(ctx context.Context, username string) (*UserRef, error) {
	if f.findByUsername == nil {
		return nil, nil
	}
	return f.findByUsername(ctx, username)
}

type fakeVerifier struct {
	verify func(token string) (*TokenClaims, error)
}

func (f fakeVerifier) Verify(token string) (*TokenClaims, error) {
	return f.verify(token)
}

type emission struct {
	connID  string
	group   string
	event   string
	payload any
}

// fakeBroadcaster records broadcaster calls in order.
type fakeBroadcaster struct {
	subscribes   []emission
	unsubscribes []emission
	publishes    []emission
	sends        []emission
}

func (f *fakeBroadcaster) Subscribe(connID, group string) {
	f.subscribes = append(f.subscribes, emission{connID: connID, group: group})
}

func (f *fakeBroadcaster) Unsubscribe(connID, group string) {
	f.unsubscribes = append(f.unsubscribes, emission{connID: connID, group: group})
}

func (f *fakeBroadcaster) Publish(group, event string, payload any) {
	f.publishes = append(f.publishes, emission{group: group, event: event, payload: payload})
}

func (f *fakeBroadcaster) SendTo(connID, event string, payload any) {
	f.sends = append(f.sends, emission{connID: connID, event: event, payload: payload})
}

// sentTo filters recorded SendTo calls for one connection.
func (f *fakeBroadcaster) sentTo(connID string) []emission {
	var out []emission
	for _, e := range f.sends {
		if e.connID == connID {
			out = append(out, e)
		}
	}
	return out
}

var testClock = func() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

// testDeps builds a Deps with a registered connection for alice and a fake
// broadcaster. Additional fakes override the defaults.
func testDeps(bc *fakeBroadcaster, users fakeUserLookup) Deps {
	return NewDeps(users, fakeVerifier{}, NewRegistry(), bc, testClock)
}

var alice = UserRef{ID: "u-alice", Username: "alice", Email: "alice@example.com"}
var bob = UserRef{ID: "u-bob", Username: "bob", Email: "bob@example.com"}
