package game

import (
	"fmt"
	"strings"

	"github.com/Garsondee/Alien-Invaders/internal/invaders"
)

// buildReport formats the session summary followed by the last lastFrames
// frames of the SimLog, ready for pasting into a bug report.
func buildReport(s *invaders.Session, sl *invaders.SimLog, lastFrames int) string {
	if lastFrames <= 0 {
		lastFrames = 600
	}
	toFrame := s.Frame()
	fromFrame := toFrame - lastFrames + 1
	if fromFrame < 0 {
		fromFrame = 0
	}

	var b strings.Builder
	b.WriteString(s.Report().String())
	fmt.Fprintf(&b, "frame_range=[%d..%d]\n\n", fromFrame, toFrame)

	events := sl.FormatRange(fromFrame, toFrame)
	if events == "" {
		b.WriteString("(no events recorded)\n")
		return b.String()
	}
	b.WriteString("events:\n")
	b.WriteString(events)
	return b.String()
}
