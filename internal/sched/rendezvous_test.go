package sched

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not reached")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestMeetRunsActionBeforeRelease(t *testing.T) {
	r := NewRendezvous(2)
	var ran atomic.Int32
	var sawAction atomic.Bool

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := r.Meet(context.Background(), nil, func() { ran.Add(1) }); err != nil {
			t.Errorf("first party: %v", err)
		}
	}()
	waitFor(t, func() bool { return r.Waiting() == 1 })

	if err := r.Meet(context.Background(), nil, nil); err != nil {
		t.Fatalf("second party: %v", err)
	}
	sawAction.Store(ran.Load() == 1)
	wg.Wait()

	if !sawAction.Load() {
		t.Fatal("second party released before the action ran")
	}
	if ran.Load() != 1 {
		t.Fatalf("action ran %d times", ran.Load())
	}
	if r.Waiting() != 0 {
		t.Fatal("round did not reset")
	}
}

func TestMeetIsReusable(t *testing.T) {
	r := NewRendezvous(2)
	const rounds = 100
	var count atomic.Int32

	var wg sync.WaitGroup
	wg.Add(2)
	for p := 0; p < 2; p++ {
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				if err := r.Meet(context.Background(), nil, func() { count.Add(1) }); err != nil {
					t.Errorf("round %d: %v", i, err)
					return
				}
			}
		}()
	}
	wg.Wait()
	if count.Load() != 2*rounds {
		t.Fatalf("actions ran %d times, expected %d", count.Load(), 2*rounds)
	}
}

func TestMeetAbortWithdraws(t *testing.T) {
	r := NewRendezvous(2)
	abort := make(chan struct{})
	ran := false

	done := make(chan error, 1)
	go func() { done <- r.Meet(context.Background(), abort, func() { ran = true }) }()
	waitFor(t, func() bool { return r.Waiting() == 1 })
	close(abort)

	if err := <-done; !errors.Is(err, ErrAborted) {
		t.Fatalf("Meet = %v, expected ErrAborted", err)
	}
	if r.Waiting() != 0 {
		t.Fatal("aborted party still counted")
	}
	if ran {
		t.Fatal("withdrawn action ran")
	}
}

func TestMeetContextCancel(t *testing.T) {
	r := NewRendezvous(2)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := r.Meet(ctx, nil, nil); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Meet = %v, expected deadline exceeded", err)
	}
	if r.Waiting() != 0 {
		t.Fatal("cancelled party still counted")
	}
}

func TestSinglePartyNeverBlocks(t *testing.T) {
	r := NewRendezvous(0)
	called := false
	if err := r.Meet(context.Background(), nil, func() { called = true }); err != nil || !called {
		t.Fatalf("Meet = %v, action called = %v", err, called)
	}
}
