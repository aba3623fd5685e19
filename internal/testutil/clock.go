package testutil

import (
	"fmt"
	"time"
)

// FixedTime is where FixedClock starts. Dated export names built from it
// end in FixedDate.
var FixedTime = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

// FixedDate is FixedTime formatted the way export file names carry it.
const FixedDate = "2024-01-15"

// StubClock is a catalog.Clock that only moves when told to.
type StubClock struct {
	now time.Time
}

// FixedClock returns a StubClock set to FixedTime.
func FixedClock() *StubClock {
	return &StubClock{now: FixedTime}
}

func (c *StubClock) Now() time.Time { return c.now }

// Advance moves the clock forward by d, so later history entries sort
// after earlier ones.
func (c *StubClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// StubIDGenerator is a catalog.IDGenerator returning "id-1", "id-2", ...
// in call order.
type StubIDGenerator struct {
	issued int
}

func NewStubIDGenerator() *StubIDGenerator {
	return &StubIDGenerator{}
}

func (g *StubIDGenerator) New() string {
	g.issued++
	return fmt.Sprintf("id-%d", g.issued)
}
