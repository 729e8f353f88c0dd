package components

import "github.com/yohamta/donburi"

// Clock counts simulation time as whole cycles plus a frame within the
// current cycle. Frame runs 1..fps.
type Clock struct {
	Cycles int
	Frame  int
}

// Ticks flattens the clock for duration arithmetic.
func (c Clock) Ticks(fps int) int {
	return c.Cycles*fps + c.Frame
}

// Advance moves the clock one frame forward.
func (c *Clock) Advance(fps int) {
	c.Frame++
	if c.Frame > fps {
		c.Frame = 1
		c.Cycles++
	}
}

// WorldData is the session-wide state every system reads: the clock, the
// rotation flag and the run lifecycle.
type WorldData struct {
	Clock    Clock
	Rotating bool

	Started     bool // BEGIN received; the clock only runs after it
	BeginCycles int
	Finished    bool // last level passed
	Score       int  // cycles from BEGIN to finish
	DoneSent    bool // the finish has been reported to the room
}

var World = donburi.NewComponentType[WorldData]()
