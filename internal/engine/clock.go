package engine

// StepClock converts a host millisecond counter into fixed-rate simulation
// steps. It only ever moves forward: a counter that stalls yields no steps,
// and a long stall is capped so the simulation does not spiral trying to catch
// up.
type StepClock struct {
	rate    int
	start   uint32
	done    int
	started bool
}

// NewStepClock creates a clock producing rate steps per second.
func NewStepClock(rate int) *StepClock {
	if rate <= 0 {
		rate = 35
	}
	return &StepClock{rate: rate}
}

// Rate returns the number of steps per second.
func (c *StepClock) Rate() int {
	return c.rate
}

// Reset restarts step counting at the next call to Due.
func (c *StepClock) Reset() {
	c.started = false
	c.done = 0
}

// Due returns how many steps became due since the previous call.
// The first call anchors the clock and reports one step so a freshly
// created engine draws something immediately.
func (c *StepClock) Due(now uint32) int {
	if !c.started {
		c.start = now
		c.started = true
		c.done = 0
		return 1
	}

	total := c.elapsedSteps(now)
	n := total - c.done
	if n <= 0 {
		return 0
	}

	// Drop anything beyond one second of backlog
	if n > c.rate {
		n = c.rate
	}
	c.done = total
	return n
}

// Until returns the milliseconds left before the next step is due.
func (c *StepClock) Until(now uint32) uint32 {
	if !c.started {
		return 0
	}
	next := (uint64(c.done+1)*1000 + uint64(c.rate) - 1) / uint64(c.rate)
	elapsed := uint64(now - c.start)
	if elapsed >= next {
		return 0
	}
	return uint32(next - elapsed)
}

func (c *StepClock) elapsedSteps(now uint32) int {
	elapsed := uint64(now - c.start)
	return int(elapsed * uint64(c.rate) / 1000)
}
