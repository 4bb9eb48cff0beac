package invaders

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded event of a session.
type SimLogEntry struct {
	Frame    int
	Category string  // phase, wave, formation, bolt, hit, ship
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[F=0042] hit       alien           A[4,3] +40
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[F=%04d] %-9s %-15s %s", e.Frame, e.Category, e.Key, e.Value)
}

// SimLog collects structured events for tests and the batch report. It is
// unbounded and machine-readable; the zap logger is for humans.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-step formation and bolt
// entries are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(frame int, category, key, value string, numVal float64) {
	if sl == nil {
		return
	}
	sl.entries = append(sl.entries, SimLogEntry{
		Frame:    frame,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(frame int, category, key, value string, numVal float64) {
	if sl == nil || !sl.verbose {
		return
	}
	sl.Add(frame, category, key, value, numVal)
}

// Clear drops every entry.
func (sl *SimLog) Clear() {
	if sl == nil {
		return
	}
	sl.entries = nil
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterFrameRange returns entries within [fromFrame, toFrame] inclusive.
func (sl *SimLog) FilterFrameRange(fromFrame, toFrame int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Frame >= fromFrame && e.Frame <= toFrame {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// SumCategory adds up NumVal over entries matching category and key.
func (sl *SimLog) SumCategory(category, key string) float64 {
	total := 0.0
	for _, e := range sl.Filter(category, key) {
		total += e.NumVal
	}
	return total
}

// FirstFrame returns the frame of the first entry matching category+key
// whose value contains substr, or -1.
func (sl *SimLog) FirstFrame(category, key, substr string) int {
	for _, e := range sl.entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if substr == "" || strings.Contains(e.Value, substr) {
			return e.Frame
		}
	}
	return -1
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a frame range.
func (sl *SimLog) FormatRange(fromFrame, toFrame int) string {
	var sb strings.Builder
	for _, e := range sl.FilterFrameRange(fromFrame, toFrame) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
