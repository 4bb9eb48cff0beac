package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Alien-Invaders/internal/invaders"
)

const (
	feedPanelWidth = 300
	feedMaxEntries = 60
	feedLineHeight = 14
)

// categoryColors tags feed lines by SimLog category.
var categoryColors = map[string]color.RGBA{
	"phase": {R: 120, G: 160, B: 255, A: 255},
	"wave":  {R: 120, G: 230, B: 140, A: 255},
	"hit":   {R: 255, G: 200, B: 80, A: 255},
	"ship":  {R: 240, G: 80, B: 80, A: 255},
}

// EventFeed is a ring buffer of recent session events rendered beside the
// playfield.
type EventFeed struct {
	entries []invaders.SimLogEntry
	head    int
	count   int
}

// NewEventFeed creates a feed with a fixed capacity.
func NewEventFeed() *EventFeed {
	return &EventFeed{
		entries: make([]invaders.SimLogEntry, feedMaxEntries),
	}
}

// Add appends an entry, dropping the oldest when full.
func (f *EventFeed) Add(e invaders.SimLogEntry) {
	f.entries[f.head] = e
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (f *EventFeed) Recent() []invaders.SimLogEntry {
	result := make([]invaders.SimLogEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

// Draw renders the feed panel with the newest line at the bottom.
func (f *EventFeed) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(feedPanelWidth), float32(panelH), color.RGBA{R: 10, G: 10, B: 20, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 50, B: 90, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(feedPanelWidth), 16, color.RGBA{R: 20, G: 20, B: 40, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENTS", panelX+8, 0)

	entries := f.Recent()
	maxVisible := (panelH - 24) / feedLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := 20
	for i, e := range entries {
		if i >= len(entries)-3 {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(feedPanelWidth-4), float32(feedLineHeight), color.RGBA{R: 30, G: 30, B: 55, A: 160}, false)
		}
		dot, ok := categoryColors[e.Category]
		if !ok {
			dot = color.RGBA{R: 140, G: 140, B: 140, A: 255}
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 5, dot, false)
		ebitenutil.DebugPrintAt(screen, feedLine(e), panelX+12, y-2)
		y += feedLineHeight
	}
}

// feedLine is the compact panel form of an entry.
func feedLine(e invaders.SimLogEntry) string {
	return fmt.Sprintf("%5d %s %s", e.Frame, e.Key, e.Value)
}
