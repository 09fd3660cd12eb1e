package control

import (
	"image"
	"testing"
	"time"
)

func closed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestDefaults(t *testing.T) {
	s := New(0).Snapshot()
	if !s.Running || s.Paused {
		t.Fatalf("new state running=%v paused=%v", s.Running, s.Paused)
	}
	if s.Speed.Mode != Unlimited {
		t.Fatalf("level 0 speed = %v", s.Speed)
	}
}

func TestSpeedLevelsClamp(t *testing.T) {
	s := New(2)
	if got := s.Snapshot().Speed; got != LimitedTo(100*time.Millisecond) {
		t.Fatalf("level 2 speed = %v", got)
	}

	s.Apply(SpeedUp)
	if got := s.Snapshot().Speed.Mode; got != Lockstep {
		t.Fatalf("after speed-up mode = %v", got)
	}
	s.Apply(SpeedUp)
	s.Apply(SpeedUp)
	if got := s.Snapshot().Level; got != 0 {
		t.Fatalf("speed-up past the fastest level gave level %d", got)
	}

	for i := 0; i < 10; i++ {
		s.Apply(SpeedDown)
	}
	snap := s.Snapshot()
	if snap.Level != len(Levels)-1 || snap.Speed != LimitedTo(5*time.Second) {
		t.Fatalf("slowest level = %d (%v)", snap.Level, snap.Speed)
	}

	s.SetLevel(-3)
	if s.Snapshot().Level != 0 {
		t.Fatal("SetLevel must clamp low")
	}
	if New(99).Snapshot().Level != len(Levels)-1 {
		t.Fatal("New must clamp high")
	}
}

func TestPauseToggle(t *testing.T) {
	s := New(0)
	if !s.Apply(TogglePause).Paused {
		t.Fatal("toggle should pause")
	}
	if s.Apply(TogglePause).Paused {
		t.Fatal("second toggle should resume")
	}
	s.SetPaused(true)
	if !s.Snapshot().Paused {
		t.Fatal("SetPaused(true) ignored")
	}
}

func TestQuitIsTerminal(t *testing.T) {
	s := New(0)
	s.Apply(Quit)
	s.Apply(TogglePause)
	s.Apply(SpeedDown)
	if s.Running() {
		t.Fatal("state runs again after quit")
	}
}

func TestChangedSignalsControlChanges(t *testing.T) {
	s := New(0)

	ch := s.Changed()
	s.UpdatePointer(func(p *Pointer) { p.Cursor = image.Pt(3, 4) })
	if closed(ch) {
		t.Fatal("pointer updates must not signal a change")
	}
	s.Apply(SpeedUp) // already fastest
	if closed(ch) {
		t.Fatal("no-op speed-up signalled a change")
	}
	s.Apply(SpeedDown)
	if !closed(ch) {
		t.Fatal("speed change was not signalled")
	}

	ch = s.Changed()
	if closed(ch) {
		t.Fatal("fresh channel already closed")
	}
	s.Apply(Quit)
	if !closed(ch) {
		t.Fatal("quit was not signalled")
	}
}

func TestUpdatePointer(t *testing.T) {
	s := New(0)
	before, after := s.UpdatePointer(func(p *Pointer) {
		p.Cursor = image.Pt(10, 20)
		p.Drawing = true
		p.DrawValue = true
	})
	if before != (Pointer{}) {
		t.Fatalf("before = %+v", before)
	}
	if after.Cursor != image.Pt(10, 20) || !after.Drawing || !after.DrawValue {
		t.Fatalf("after = %+v", after)
	}
	if s.Snapshot().Pointer != after {
		t.Fatal("snapshot pointer differs from update result")
	}
}

func TestLevelOf(t *testing.T) {
	for i, sp := range Levels {
		if LevelOf(sp) != i {
			t.Fatalf("LevelOf(%v) = %d, expected %d", sp, LevelOf(sp), i)
		}
	}
	if LevelOf(LimitedTo(time.Minute)) != -1 {
		t.Fatal("unknown speed should not have a level")
	}
}

func TestWatch(t *testing.T) {
	s := New(1)
	snap, ch := s.Watch()
	if snap.Speed.Mode != Lockstep {
		t.Fatalf("watched speed = %v", snap.Speed)
	}
	s.Apply(TogglePause)
	if !closed(ch) {
		t.Fatal("pause after Watch was not signalled")
	}
}
