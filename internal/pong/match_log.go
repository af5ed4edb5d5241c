package pong

import (
	"fmt"
	"strings"
)

// MatchLogEntry is one recorded event.
type MatchLogEntry struct {
	Tick     int
	Side     Side
	Category string  // ball, rally, score, serve, state, move
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] player score    point            1-0
func (e MatchLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-6s %-7s %-16s %s",
		e.Tick, e.Side, e.Category, e.Key, e.Value)
}

// MatchLog collects structured events for one match. It is unbounded and
// meant for tests, the headless report and clipboard dumps.
type MatchLog struct {
	entries []MatchLogEntry
	verbose bool
}

// NewMatchLog creates a MatchLog. If verbose is true, per-tick ball and
// paddle positions are recorded as well.
func NewMatchLog(verbose bool) *MatchLog {
	return &MatchLog{verbose: verbose}
}

// Add records a new entry.
func (ml *MatchLog) Add(tick int, side Side, category, key, value string, numVal float64) {
	ml.entries = append(ml.entries, MatchLogEntry{
		Tick:     tick,
		Side:     side,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (ml *MatchLog) AddVerbose(tick int, side Side, category, key, value string, numVal float64) {
	if !ml.verbose {
		return
	}
	ml.Add(tick, side, category, key, value, numVal)
}

// Record maps a session event onto a log entry. It has the listener
// signature so it can be passed to WithListener directly.
func (ml *MatchLog) Record(e Event) {
	score := fmt.Sprintf("%d-%d", e.PlayerScore, e.CPUScore)
	switch e.Kind {
	case EventWallBounce:
		ml.Add(e.Tick, e.Side, "ball", "wall", fmt.Sprintf("(%d,%d)", e.X, e.Y), float64(e.Y))
	case EventPaddleBounce:
		ml.Add(e.Tick, e.Side, "rally", "return", fmt.Sprintf("(%d,%d)", e.X, e.Y), float64(e.Y))
	case EventPoint:
		n := e.PlayerScore
		if e.Side == SideCPU {
			n = e.CPUScore
		}
		ml.Add(e.Tick, e.Side, "score", "point", score, float64(n))
	case EventResetSkipped:
		ml.Add(e.Tick, e.Side, "serve", "reset_skipped", fmt.Sprintf("ball off field at (%d,%d)", e.X, e.Y), 0)
	case EventGameOver:
		ml.Add(e.Tick, e.Side, "state", "game_over", score, 0)
	}
}

// Entries returns all recorded entries.
func (ml *MatchLog) Entries() []MatchLogEntry {
	return ml.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (ml *MatchLog) Filter(category, key string) []MatchLogEntry {
	var out []MatchLogEntry
	for _, e := range ml.entries {
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

// FilterSide returns entries for one side.
func (ml *MatchLog) FilterSide(side Side) []MatchLogEntry {
	var out []MatchLogEntry
	for _, e := range ml.entries {
		if e.Side == side {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (ml *MatchLog) FilterTickRange(fromTick, toTick int) []MatchLogEntry {
	var out []MatchLogEntry
	for _, e := range ml.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many entries match the given category and key.
func (ml *MatchLog) Count(category, key string) int {
	return len(ml.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (ml *MatchLog) LastOf(category, key string) (MatchLogEntry, bool) {
	entries := ml.Filter(category, key)
	if len(entries) == 0 {
		return MatchLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (ml *MatchLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range ml.entries {
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

// Format returns the full log as a single string.
func (ml *MatchLog) Format() string {
	return formatEntries(ml.entries)
}

// FormatRange returns the log filtered to a tick range.
func (ml *MatchLog) FormatRange(fromTick, toTick int) string {
	return formatEntries(ml.FilterTickRange(fromTick, toTick))
}

func formatEntries(entries []MatchLogEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of the match so far.
func (ml *MatchLog) Summary(s *Session) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", s.Ticks())
	fmt.Fprintf(&sb, "State: %s  score: player=%d cpu=%d\n",
		s.State(), s.Player.Score.Value(), s.CPU.Score.Value())

	var playerReturns, cpuReturns int
	for _, e := range ml.Filter("rally", "return") {
		if e.Side == SidePlayer {
			playerReturns++
		} else {
			cpuReturns++
		}
	}
	fmt.Fprintf(&sb, "Returns: player=%d cpu=%d  walls=%d\n",
		playerReturns, cpuReturns, ml.Count("ball", "wall"))

	if skipped := ml.Count("serve", "reset_skipped"); skipped > 0 {
		fmt.Fprintf(&sb, "Serves skipped: %d\n", skipped)
	}
	if w := s.Winner(); w != SideNone {
		fmt.Fprintf(&sb, "Winner: %s\n", w)
	}
	return sb.String()
}
