package domain

import "time"

// State is the session as seen by one process. It is passed explicitly to
// whatever gates screens on it.
type State struct {
	LoggedIn bool
	// ID identifies this process's session; empty when logged out.
	ID string
	// Since is when the state was last observed to change.
	Since time.Time
}

// LoggedOut returns the logged-out state observed at now.
func LoggedOut(now time.Time) State {
	return State{Since: now}
}

// LoggedInAs returns a logged-in state with session id observed at now.
func LoggedInAs(id string, now time.Time) State {
	return State{LoggedIn: true, ID: id, Since: now}
}
