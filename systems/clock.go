package systems

import "time"

// Clock measures song time. It only advances while running.
type Clock struct {
	now     func() time.Time
	last    time.Time
	elapsed float64
	running bool
}

// NewClock returns a stopped clock. A nil now uses time.Now.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// Start restarts the clock from zero.
func (c *Clock) Start() {
	c.last = c.now()
	c.elapsed = 0
	c.running = true
}

// Stop freezes the elapsed time.
func (c *Clock) Stop() {
	c.Delta()
	c.running = false
}

// Delta returns the seconds since the previous call and adds them to the
// elapsed time. It returns 0 while stopped.
func (c *Clock) Delta() float64 {
	if !c.running {
		return 0
	}
	t := c.now()
	d := t.Sub(c.last).Seconds()
	c.last = t
	c.elapsed += d
	return d
}

// Elapsed returns the time accumulated up to the last Delta.
func (c *Clock) Elapsed() float64 { return c.elapsed }

func (c *Clock) Running() bool { return c.running }
