package invaders

// DestructionSequence plays the ship explosion across frames. It is resumed
// with each frame's dt until the last sprite frame has been shown for its
// full duration.
type DestructionSequence struct {
	frames   int
	perFrame float64

	frame   int     // sprite frame currently shown
	elapsed float64 // seconds spent on the current frame
	done    bool
}

// NewDestructionSequence builds a sequence of frames sprite frames shown for
// perFrame seconds each.
func NewDestructionSequence(frames int, perFrame float64) *DestructionSequence {
	if frames < 1 {
		frames = 1
	}
	return &DestructionSequence{frames: frames, perFrame: perFrame}
}

// Tick advances the sequence by dt. It returns true exactly once, on the
// tick that finishes the last frame; later ticks are no-ops.
func (d *DestructionSequence) Tick(dt float64) bool {
	if d.done {
		return false
	}
	d.elapsed += dt
	for d.elapsed >= d.perFrame {
		d.elapsed -= d.perFrame
		if d.frame == d.frames-1 {
			d.done = true
			return true
		}
		d.frame++
	}
	return false
}

// Frame returns the sprite frame to draw.
func (d *DestructionSequence) Frame() int { return d.frame }

// Done reports whether the sequence has completed.
func (d *DestructionSequence) Done() bool { return d.done }
