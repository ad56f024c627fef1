// Package clock provides the current instant, allowing injection of a fixed
// clock in tests.
package clock

import "time"

// Clock is an interface for providing the current time.
type Clock interface {
	Now() time.Time
}

// System is a Clock that reads the wall clock in UTC.
type System struct{}

func (System) Now() time.Time { return time.Now().UTC() }

// Fixed is a Clock that always returns T.
// This is intended for use in tests.
type Fixed struct{ T time.Time }

func (f Fixed) Now() time.Time { return f.T }
