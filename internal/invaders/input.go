package invaders

// Key names the logical buttons the simulation reads.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyFire
	KeyStart
	KeyContinue
	keyCount
)

// NumKeys is the number of logical keys.
const NumKeys = int(keyCount)

func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyFire:
		return "fire"
	case KeyStart:
		return "start"
	case KeyContinue:
		return "continue"
	default:
		return "unknown"
	}
}

// Input is one frame's keyboard state as seen by the host. KeyCount is the
// number of physical keys held, including keys with no logical meaning.
type Input interface {
	IsKeyDown(k Key) bool
	KeyCount() int
}

// KeySet is a plain snapshot implementing Input. Extra counts held keys
// that map to no logical Key.
type KeySet struct {
	down  [keyCount]bool
	Extra int
}

// Keys returns a snapshot with the given keys held.
func Keys(held ...Key) KeySet {
	var ks KeySet
	for _, k := range held {
		ks.Set(k, true)
	}
	return ks
}

// Set marks k held or released.
func (ks *KeySet) Set(k Key, down bool) {
	if k >= 0 && k < keyCount {
		ks.down[k] = down
	}
}

func (ks KeySet) IsKeyDown(k Key) bool {
	return k >= 0 && k < keyCount && ks.down[k]
}

func (ks KeySet) KeyCount() int {
	n := ks.Extra
	for _, d := range ks.down {
		if d {
			n++
		}
	}
	return n
}
