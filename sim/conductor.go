package sim

import (
	"fmt"
	"sync"
)

// Conductor is a FIFO counting semaphore gating how many philosophers may
// simultaneously attempt to hold forks. With capacity N-1 at a table of N, at
// least one philosopher is always kept out of the acquisition phase, which
// breaks the circular-wait condition and rules out deadlock structurally.
//
// Seats are granted in arrival order. A freed seat with waiters queued is
// transferred directly to the head waiter, never reopened for general
// contention, so no waiter can be overtaken.
type Conductor struct {
	mu        sync.Mutex
	capacity  int
	occupied  int
	waiters   []chan struct{}
	highWater int
}

// NewConductor creates a conductor with the given seat capacity.
func NewConductor(seats int) *Conductor {
	if seats < 1 {
		panic(fmt.Sprintf("NewConductor: need at least 1 seat, got %d", seats))
	}
	return &Conductor{capacity: seats}
}

// Capacity returns the total seat capacity.
func (c *Conductor) Capacity() int {
	return c.capacity
}

// Occupied returns the current number of occupied seats.
func (c *Conductor) Occupied() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.occupied
}

// Waiting returns the current number of queued waiters.
func (c *Conductor) Waiting() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.waiters)
}

// HighWater returns the maximum number of seats ever occupied at once.
func (c *Conductor) HighWater() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.highWater
}

// RequestSeat blocks until the caller holds a seat. A free seat is taken
// immediately; otherwise the caller joins the FIFO queue and is resumed when
// a leaving philosopher hands its seat over.
func (c *Conductor) RequestSeat() {
	c.mu.Lock()
	if c.occupied < c.capacity && len(c.waiters) == 0 {
		c.occupied++
		if c.occupied > c.highWater {
			c.highWater = c.occupied
		}
		c.mu.Unlock()
		return
	}
	grant := make(chan struct{})
	c.waiters = append(c.waiters, grant)
	c.mu.Unlock()
	<-grant
}

// LeaveSeat releases the caller's seat. With waiters queued the seat is
// transferred to the head waiter and the occupied count is unchanged; with an
// empty queue the count simply drops. Panics if no seat is occupied — paired
// request/leave calls are the caller's responsibility.
func (c *Conductor) LeaveSeat() {
	c.mu.Lock()
	if c.occupied == 0 {
		c.mu.Unlock()
		panic("Conductor.LeaveSeat: no seat occupied")
	}
	if len(c.waiters) > 0 {
		grant := c.waiters[0]
		c.waiters = c.waiters[1:]
		c.mu.Unlock()
		close(grant)
		return
	}
	c.occupied--
	c.mu.Unlock()
}
