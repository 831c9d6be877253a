package xtime

import "time"

func UTCNow() time.Time {
	return time.Now().UTC()
}

// Clock returns the current time. Services take a Clock so tests can pin it.
type Clock func() time.Time

// StorageNow returns the current UTC time truncated to the precision every
// supported database keeps, so a reloaded row compares equal to what was written.
func StorageNow() time.Time {
	return UTCNow().Truncate(time.Microsecond)
}

// Fixed returns a Clock that always reports t.
func Fixed(t time.Time) Clock {
	return func() time.Time {
		return t
	}
}

// OrDefault returns c, or StorageNow when c is nil.
func (c Clock) OrDefault() Clock {
	if c == nil {
		return StorageNow
	}

	return c
}
