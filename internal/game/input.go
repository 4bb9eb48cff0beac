package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Alien-Invaders/internal/invaders"
)

// keyBindings maps each physical key to the logical key it presses.
var keyBindings = map[ebiten.Key]invaders.Key{
	ebiten.KeyArrowLeft:  invaders.KeyLeft,
	ebiten.KeyArrowRight: invaders.KeyRight,
	ebiten.KeySpace:      invaders.KeyFire,
	ebiten.KeyArrowUp:    invaders.KeyFire,
	ebiten.KeyS:          invaders.KeyStart,
	ebiten.KeyC:          invaders.KeyContinue,
}

// readKeys turns the pressed physical keys into a session input. Unbound
// keys still count as held so prompts wait for a clean press.
func readKeys(pressed []ebiten.Key) invaders.KeySet {
	var ks invaders.KeySet
	for _, p := range pressed {
		if k, ok := keyBindings[p]; ok {
			ks.Set(k, true)
			continue
		}
		ks.Extra++
	}
	return ks
}
