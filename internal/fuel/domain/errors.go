package fuel

import "errors"

// ErrEmptyAgentID rejects session operations without an owner.
var ErrEmptyAgentID = errors.New("fuel: empty agent id")
