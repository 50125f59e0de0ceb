package roundutil

import "time"

// Clock abstracts time so parsing and scheduling can be tested deterministically.
type Clock interface {
	Now() time.Time
	NowUTC() time.Time
	LoadLocation(name string) (*time.Location, error)
}

// RealClock uses the system clock.
type RealClock struct{}

func (RealClock) Now() time.Time    { return time.Now() }
func (RealClock) NowUTC() time.Time { return time.Now().UTC() }
func (RealClock) LoadLocation(name string) (*time.Location, error) {
	return time.LoadLocation(name)
}

// AnchorClock is a Clock whose Now/NowUTC always return the provided anchor
// time, so relative input parses the same way however late it is processed.
type AnchorClock struct {
	anchor time.Time
}

// NewAnchorClock creates a new AnchorClock. If t is the zero value, the current
// real UTC time is used.
func NewAnchorClock(t time.Time) AnchorClock {
	if t.IsZero() {
		return AnchorClock{anchor: time.Now().UTC()}
	}
	return AnchorClock{anchor: t.UTC()}
}

func (c AnchorClock) Now() time.Time    { return c.anchor }
func (c AnchorClock) NowUTC() time.Time { return c.anchor.UTC() }
func (c AnchorClock) LoadLocation(name string) (*time.Location, error) {
	return time.LoadLocation(name)
}

// FakeClock is a fake implementation of the Clock interface.
type FakeClock struct {
	NowFn          func() time.Time
	LoadLocationFn func(name string) (*time.Location, error)
}

func (f *FakeClock) Now() time.Time {
	if f.NowFn != nil {
		return f.NowFn()
	}
	return time.Now()
}

func (f *FakeClock) NowUTC() time.Time {
	return f.Now().UTC()
}

func (f *FakeClock) LoadLocation(name string) (*time.Location, error) {
	if f.LoadLocationFn != nil {
		return f.LoadLocationFn(name)
	}
	return time.LoadLocation(name)
}

var (
	_ Clock = RealClock{}
	_ Clock = AnchorClock{}
	_ Clock = (*FakeClock)(nil)
)
