package invaders

import "testing"

func TestDestructionSequence_PlaysEveryFrameThenCompletesOnce(t *testing.T) {
	d := NewDestructionSequence(4, 0.25)
	for want := 1; want <= 3; want++ {
		if d.Tick(0.25) {
			t.Fatalf("completed early at frame %d", d.Frame())
		}
		if d.Frame() != want {
			t.Fatalf("expected frame %d, got %d", want, d.Frame())
		}
	}
	if !d.Tick(0.25) {
		t.Fatal("last frame should complete the sequence")
	}
	if !d.Done() {
		t.Fatal("Done should report true after completion")
	}
	for i := 0; i < 3; i++ {
		if d.Tick(1) {
			t.Fatal("completion must be signalled exactly once")
		}
	}
}

func TestDestructionSequence_ResumesAcrossShortFrames(t *testing.T) {
	d := NewDestructionSequence(2, 0.25)
	d.Tick(0.125)
	if d.Frame() != 0 {
		t.Fatalf("half a frame should not advance, got %d", d.Frame())
	}
	d.Tick(0.125)
	if d.Frame() != 1 {
		t.Fatalf("two halves make a frame, got %d", d.Frame())
	}
	if d.Tick(0.125) {
		t.Fatal("last frame still has time left")
	}
	if !d.Tick(0.125) {
		t.Fatal("expected completion")
	}
}

func TestDestructionSequence_LargeDeltaFinishes(t *testing.T) {
	d := NewDestructionSequence(8, 0.25)
	if !d.Tick(100) {
		t.Fatal("a long frame should run the whole sequence")
	}
	if d.Frame() != 7 {
		t.Fatalf("expected last frame 7, got %d", d.Frame())
	}
}

func TestDestructionSequence_ZeroDeltaHolds(t *testing.T) {
	d := NewDestructionSequence(3, 0.25)
	for i := 0; i < 10; i++ {
		if d.Tick(0) {
			t.Fatal("zero dt must not complete")
		}
	}
	if d.Frame() != 0 {
		t.Fatalf("zero dt must not advance, got %d", d.Frame())
	}
}
