package schedule

import "time"

// CivilClock resolves "today" as a date key in one fixed civil timezone,
// independent of wherever the process happens to run. Everything downstream
// that compares against "today" goes through this.
type CivilClock struct {
	location *time.Location
	now      func() time.Time
}

func NewCivilClock(location *time.Location) *CivilClock {
	if location == nil {
		location = time.UTC
	}
	return &CivilClock{
		location: location,
		now:      time.Now,
	}
}

// FixedCivilClock always reports the given date key as today. Invalid keys
// fall back to the zero date. Used by tests and deterministic replays.
func FixedCivilClock(key string) *CivilClock {
	t, ok := parseDateKey(key)
	if !ok {
		t = time.Time{}
	}
	return &CivilClock{
		location: time.UTC,
		now:      func() time.Time { return t },
	}
}

func (c *CivilClock) Today() string {
	return c.now().In(c.location).Format(DateKeyLayout)
}
