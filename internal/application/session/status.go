package session

import "time"

// Status is the latest user-facing outcome message
type Status struct {
	Message string
	Err     error
	At      time.Time
}

// IsError reports whether the status describes a failure
func (s Status) IsError() bool {
	return s.Err != nil
}
