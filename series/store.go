// Package series maintains the rolling candle history that the chart
// renders: backfill seeds it, live updates mutate it, and the UI reads
// consistent snapshots from it.
package series

import (
	"log"
	"sort"
	"sync"

	"github.com/yitech/candleterm/chart"
	"github.com/yitech/candleterm/feed"
)

// DefaultLimit is the target history size after a resize. The buffer
// grows freely until it hits 2×limit, then trims back to the most
// recent limit candles.
const DefaultLimit = 365

// Store holds one symbol's candle history in timestamp order, keyed by
// open time. Updates for a still-open candle replace the stored one so
// the chart always shows the in-progress period at its latest state.
type Store struct {
	mu      sync.Mutex
	limit   int
	candles []chart.Candle

	handlers map[uint64]func()
	nextID   uint64
}

// token cancels a single change-listener registration.
type token struct {
	id    uint64
	store *Store
}

func (t *token) Unsubscribe() {
	t.store.mu.Lock()
	delete(t.store.handlers, t.id)
	t.store.mu.Unlock()
}

// New creates an empty Store trimming to limit candles; limit <= 0
// selects DefaultLimit.
func New(limit int) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Store{
		limit:    limit,
		handlers: make(map[uint64]func()),
	}
}

// OnChange registers fn to run after every mutation. The returned token
// cancels the registration.
func (s *Store) OnChange(fn func()) feed.Token {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.handlers[id] = fn
	s.mu.Unlock()
	return &token{id: id, store: s}
}

// SetHistory replaces the whole buffer with a backfill batch. Candles
// are sorted by open time and deduplicated with the last sample for a
// period winning. Samples that fail validation are dropped.
func (s *Store) SetHistory(batch []*feed.Candle) {
	byTime := make(map[int64]chart.Candle, len(batch))
	for _, fc := range batch {
		c, err := fc.ToChart()
		if err != nil {
			log.Printf("series: dropping backfill sample: %v", err)
			continue
		}
		byTime[c.Timestamp] = c
	}

	candles := make([]chart.Candle, 0, len(byTime))
	for _, c := range byTime {
		candles = append(candles, c)
	}
	sort.Slice(candles, func(i, j int) bool {
		return candles[i].Timestamp < candles[j].Timestamp
	})
	if len(candles) > s.limit {
		candles = candles[len(candles)-s.limit:]
	}

	s.mu.Lock()
	s.candles = candles
	hs := s.snapshotHandlers()
	s.mu.Unlock()

	for _, h := range hs {
		h()
	}
}

// Apply folds one live update into the buffer: a repeat of the newest
// period replaces it, a newer period appends, and an older period
// replaces its stored candle if the period is still in the buffer.
func (s *Store) Apply(fc *feed.Candle) {
	c, err := fc.ToChart()
	if err != nil {
		log.Printf("series: dropping live sample: %v", err)
		return
	}

	s.mu.Lock()
	switch {
	case len(s.candles) == 0 || c.Timestamp > s.candles[len(s.candles)-1].Timestamp:
		s.appendAndResize(c)
	case c.Timestamp == s.candles[len(s.candles)-1].Timestamp:
		s.candles[len(s.candles)-1] = c
	default:
		// Late update for an earlier period.
		if i := s.indexOf(c.Timestamp); i >= 0 {
			s.candles[i] = c
		}
	}
	hs := s.snapshotHandlers()
	s.mu.Unlock()

	for _, h := range hs {
		h()
	}
}

// Snapshot returns a copy of the buffer, oldest first.
func (s *Store) Snapshot() []chart.Candle {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]chart.Candle, len(s.candles))
	copy(out, s.candles)
	return out
}

// Len returns the number of stored candles.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.candles)
}

// appendAndResize appends c and trims once the buffer exceeds 2×limit
// (called under lock).
func (s *Store) appendAndResize(c chart.Candle) {
	s.candles = append(s.candles, c)
	if len(s.candles) > s.limit*2 {
		// Keep the most recent limit candles; wait for the buffer to
		// grow to 2×limit again before the next resize.
		s.candles = s.candles[len(s.candles)-s.limit:]
	}
}

// indexOf finds the buffer position of a period by open time (called
// under lock). The buffer is sorted so a binary search suffices.
func (s *Store) indexOf(ts int64) int {
	i := sort.Search(len(s.candles), func(i int) bool {
		return s.candles[i].Timestamp >= ts
	})
	if i < len(s.candles) && s.candles[i].Timestamp == ts {
		return i
	}
	return -1
}

// snapshotHandlers returns a copy of the handler set (called under lock).
func (s *Store) snapshotHandlers() []func() {
	hs := make([]func(), 0, len(s.handlers))
	for _, h := range s.handlers {
		hs = append(hs, h)
	}
	return hs
}
