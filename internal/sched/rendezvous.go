package sched

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// ErrAborted is returned by Meet when the abort channel fired before every
// party arrived.
var ErrAborted = errors.New("sched: rendezvous aborted")

type arrival struct {
	action func()
}

// Rendezvous is a reusable meeting point for a fixed number of parties. The
// last party to arrive runs every action registered for the round, then all
// parties are released together.
type Rendezvous struct {
	mu       sync.Mutex
	parties  int
	arrivals []*arrival
	round    uint64
	release  chan struct{}
}

// NewRendezvous returns a rendezvous for n parties.
func NewRendezvous(n int) *Rendezvous {
	if n < 1 {
		n = 1
	}
	return &Rendezvous{parties: n, release: make(chan struct{})}
}

// Meet blocks until every party has called Meet for the current round. If
// action is non-nil it runs exactly once, before any party is released, unless
// Meet returns an error: a party that leaves early through ctx or abort takes
// its action with it and the caller decides what to do with it.
func (r *Rendezvous) Meet(ctx context.Context, abort <-chan struct{}, action func()) error {
	a := &arrival{action: action}

	r.mu.Lock()
	r.arrivals = append(r.arrivals, a)
	if len(r.arrivals) == r.parties {
		for _, arr := range r.arrivals {
			if arr.action != nil {
				arr.action()
			}
		}
		r.arrivals = r.arrivals[:0]
		r.round++
		close(r.release)
		r.release = make(chan struct{})
		r.mu.Unlock()
		return nil
	}
	release, round := r.release, r.round
	r.mu.Unlock()

	select {
	case <-release:
		return nil
	case <-ctx.Done():
		return r.withdraw(a, round, ctx.Err())
	case <-abort:
		return r.withdraw(a, round, ErrAborted)
	}
}

// withdraw removes a from the waiting set unless its round already completed,
// in which case the meeting counts as having happened.
func (r *Rendezvous) withdraw(a *arrival, round uint64, err error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.round != round {
		return nil
	}
	if i := slices.Index(r.arrivals, a); i >= 0 {
		r.arrivals = slices.Delete(r.arrivals, i, i+1)
	}
	return err
}

// Waiting returns how many parties are blocked in the current round.
func (r *Rendezvous) Waiting() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.arrivals)
}
