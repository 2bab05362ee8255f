package entity

import (
	"errors"
	"fmt"
)

// All failures are local and recoverable; none are fatal to the process.
var (
	// ErrNoSelection marks a filter or pick that yields no record.
	ErrNoSelection = errors.New("no record selected")

	// ErrBlocked is reported for honeypot or rate-limit hits. The reason
	// is deliberately not distinguished to the caller.
	ErrBlocked = errors.New("blocked")
)

// LoadError marks a department whose source document could not be
// fetched or parsed. The department's index becomes empty.
type LoadError struct {
	Department string
	Err        error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load department %q: %v", e.Department, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ValidationError marks a malformed relay request caught before any
// network call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// RelayError marks a relay attempt rejected by the gateway or failed on
// the network. It carries the gateway's error string verbatim and is
// never retried automatically.
type RelayError struct {
	Channel RelayType
	Message string
}

func (e *RelayError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s relay failed", e.Channel)
	}
	return e.Message
}
