package clock

import (
	"sync"
	"time"
)

// Fake is a Clock for tests. The current instant is set explicitly and
// advanced manually.
type Fake struct {
	mu  sync.Mutex
	now time.Time
}

// NewFake returns a Fake clock frozen at the given instant.
func NewFake(now time.Time) *Fake {
	return &Fake{now: now.UTC()}
}

// Ensure Fake implements Clock
var _ Clock = (*Fake)(nil)

// Now implements Clock.Now.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// TodayLocal implements Clock.TodayLocal.
func (f *Fake) TodayLocal(timezone string) time.Time {
	return Midnight(f.Now(), Location(timezone))
}

// WeekStartLocal implements Clock.WeekStartLocal.
func (f *Fake) WeekStartLocal(timezone string) time.Time {
	return WeekStart(f.Now(), Location(timezone))
}

// Set moves the fake clock to the given instant.
func (f *Fake) Set(now time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = now.UTC()
}

// Advance moves the fake clock forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}
