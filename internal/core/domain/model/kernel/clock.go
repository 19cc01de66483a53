package kernel

import "time"

// Clock supplies the current time. Handlers take one so tests can freeze it.
type Clock func() time.Time

// SystemClock returns the wall clock in UTC.
func SystemClock() time.Time {
	return time.Now().UTC()
}
