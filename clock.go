// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package boardsim

import (
	"sort"
	"time"
)

// A Clock schedules deferred work for a board.
//
// AfterFunc arranges for f to be called once d has elapsed and returns a
// function that cancels the call. The cancel function returns false if f has
// already run or was already cancelled.
//
// Boards are not safe for concurrent use, so a Clock must run f on the
// goroutine that drives the board.
//
type Clock interface {
	Now() time.Duration
	AfterFunc(d time.Duration, f func()) (cancel func() bool)
}

// VirtualClock is a manually advanced Clock. Scheduled functions run
// synchronously from Advance, in due time order, then in scheduling order.
//
// The zero value is ready to use.
//
type VirtualClock struct {
	now   time.Duration
	seq   uint64
	tasks []*task
}

type task struct {
	due time.Duration
	seq uint64
	f   func()
}

// Now returns the time elapsed since the creation of the clock.
//
func (c *VirtualClock) Now() time.Duration { return c.now }

// AfterFunc implements Clock.
//
func (c *VirtualClock) AfterFunc(d time.Duration, f func()) func() bool {
	if d < 0 {
		d = 0
	}
	c.seq++
	t := &task{due: c.now + d, seq: c.seq, f: f}
	i := sort.Search(len(c.tasks), func(i int) bool {
		x := c.tasks[i]
		return x.due > t.due || x.due == t.due && x.seq > t.seq
	})
	c.tasks = append(c.tasks, nil)
	copy(c.tasks[i+1:], c.tasks[i:])
	c.tasks[i] = t
	return func() bool { return c.remove(t) }
}

func (c *VirtualClock) remove(t *task) bool {
	for i, x := range c.tasks {
		if x == t {
			c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Pending returns the number of scheduled functions.
//
func (c *VirtualClock) Pending() int { return len(c.tasks) }

// Advance moves the clock forward by d, running every function due until then.
// Functions scheduled by a running function run in the same call if they are
// due within d.
//
func (c *VirtualClock) Advance(d time.Duration) {
	end := c.now + d
	for len(c.tasks) > 0 && c.tasks[0].due <= end {
		t := c.tasks[0]
		c.tasks = c.tasks[1:]
		c.now = t.due
		t.f()
	}
	if end > c.now {
		c.now = end
	}
}
