package relay

import "time"

// isoTimestamp matches the wire timestamp format produced by
// Date.toISOString() on web clients.
const isoTimestamp = "2006-01-02T15:04:05.000Z07:00"

// Deps holds the narrow dependencies required by relay handlers.
type Deps struct {
	users       UserLookup
	verifier    TokenVerifier
	registry    *Registry
	broadcaster Broadcaster
	now         func() time.Time
}

// NewDeps builds a dependency bundle for handler calls.
func NewDeps(
	users UserLookup,
	verifier TokenVerifier,
	registry *Registry,
	broadcaster Broadcaster,
	now func() time.Time,
) Deps {
	return Deps{
		users:       users,
		verifier:    verifier,
		registry:    registry,
		broadcaster: broadcaster,
		now:         now,
	}
}

func (d Deps) Users() UserLookup        { return d.users }
func (d Deps) Verifier() TokenVerifier  { return d.verifier }
func (d Deps) Registry() *Registry      { return d.registry }
func (d Deps) Broadcaster() Broadcaster { return d.broadcaster }

func (d Deps) Now() time.Time {
	if d.now != nil {
		return d.now()
	}
	return time.Now()
}

// Timestamp returns the current time as an ISO-8601 UTC string, generated at
// send time.
func (d Deps) Timestamp() string {
	return d.Now().UTC().Format(isoTimestamp)
}
