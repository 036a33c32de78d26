package entities

import "time"

// Clock provides the current time. Services take one so expiration can be tested
// without sleeping.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system time.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now().UTC()
}
