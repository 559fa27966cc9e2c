package session

import "errors"

// ErrNoIdentifier is returned when a lookup finds no stored value for the
// key. Absence is an expected state, not a storage failure: callers branch
// on it with errors.Is to render the "nothing selected" path without
// touching the network.
var ErrNoIdentifier = errors.New("no stored identifier")
