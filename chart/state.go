package chart

// Info is the window snapshot the engine publishes after every render.
// The caller reads it to clamp panning input.
type Info struct {
	// Earliest is the first real candle's timestamp, the lower bound
	// for a pinned cursor. Pinning there puts the first candle at the
	// window's right edge; panning further would show no data.
	Earliest int64
	// LatestPadded is the timestamp of the last placeholder appended
	// after the series, the upper bound reachable by panning right.
	LatestPadded int64
	// Interval is the candle period the window was computed with.
	Interval Interval
	// LastReal is the timestamp of the final real data candle.
	LastReal int64
	// ScrolledPastStart is set when the window's earliest timestamp
	// precedes the first real candle.
	ScrolledPastStart bool
}

// State is owned by the caller and passed to every render. It carries the
// optional pinned cursor and receives the published window Info.
type State struct {
	cursor int64
	pinned bool

	Info Info
}

// NewState returns a state tracking the live edge.
func NewState() *State {
	return &State{}
}

// SetCursor pins the window end to ts (pan mode).
func (s *State) SetCursor(ts int64) {
	s.cursor = ts
	s.pinned = true
}

// ResetCursor returns the view to tracking the newest real candle.
func (s *State) ResetCursor() {
	s.cursor = 0
	s.pinned = false
}

// Cursor returns the pinned cursor timestamp and whether one is set.
func (s *State) Cursor() (int64, bool) {
	return s.cursor, s.pinned
}

// Live reports whether the view tracks the newest data.
func (s *State) Live() bool {
	return !s.pinned
}
