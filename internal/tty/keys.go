package tty

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Alien-Invaders/internal/invaders"
)

// defaultHold is how long a key stays held after its last press or repeat
// event. Terminals report presses and auto-repeats but never releases.
const defaultHold = 180 * time.Millisecond

// heldKeys approximates key state from a stream of press events.
type heldKeys struct {
	hold    time.Duration
	logical [invaders.NumKeys]time.Time // last event per invaders.Key
	other   map[rune]time.Time
}

func newHeldKeys(hold time.Duration) *heldKeys {
	return &heldKeys{hold: hold, other: make(map[rune]time.Time)}
}

// press records a key event at now. It returns false for events that map
// to nothing at all (e.g. function keys).
func (h *heldKeys) press(ev *tcell.EventKey, now time.Time) bool {
	if k, ok := logicalKey(ev); ok {
		h.logical[k] = now
		return true
	}
	if ev.Key() == tcell.KeyRune {
		h.other[ev.Rune()] = now
		return true
	}
	return false
}

// snapshot returns the keys still inside their hold window and forgets
// expired unbound keys.
func (h *heldKeys) snapshot(now time.Time) invaders.KeySet {
	var ks invaders.KeySet
	for k, at := range h.logical {
		if !at.IsZero() && now.Sub(at) < h.hold {
			ks.Set(invaders.Key(k), true)
		}
	}
	for r, at := range h.other {
		if now.Sub(at) < h.hold {
			ks.Extra++
			continue
		}
		delete(h.other, r)
	}
	return ks
}

func (h *heldKeys) reset() {
	h.logical = [invaders.NumKeys]time.Time{}
	for r := range h.other {
		delete(h.other, r)
	}
}

func logicalKey(ev *tcell.EventKey) (invaders.Key, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return invaders.KeyLeft, true
	case tcell.KeyRight:
		return invaders.KeyRight, true
	case tcell.KeyUp:
		return invaders.KeyFire, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return invaders.KeyFire, true
		case 's', 'S':
			return invaders.KeyStart, true
		case 'c', 'C':
			return invaders.KeyContinue, true
		}
	}
	return 0, false
}

func isQuit(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC
}

func isReset(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyRune && (ev.Rune() == 'r' || ev.Rune() == 'R')
}
