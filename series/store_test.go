package series

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yitech/candleterm/feed"
)

func fc(ts int64, o, h, l, c string) *feed.Candle {
	return &feed.Candle{
		Exchange: "test", Symbol: "BTCUSDT", Interval: "1m",
		OpenTime: ts, Open: o, High: h, Low: l, Close: c,
		Volume: "1", CloseTime: ts + 59999,
	}
}

func TestApplyAppendAndReplace(t *testing.T) {
	s := New(10)

	s.Apply(fc(0, "1.0", "2.0", "0.5", "1.5"))
	s.Apply(fc(60000, "1.5", "3.0", "1.0", "2.0"))
	require.Equal(t, 2, s.Len())

	// A repeat of the open period replaces it in place.
	s.Apply(fc(60000, "1.5", "4.0", "1.0", "3.5"))
	snap := s.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, 4.0, snap[1].High)
	assert.Equal(t, 3.5, snap[1].Close)
}

func TestApplyLateUpdate(t *testing.T) {
	s := New(10)
	s.Apply(fc(0, "1.0", "2.0", "0.5", "1.5"))
	s.Apply(fc(60000, "1.5", "3.0", "1.0", "2.0"))
	s.Apply(fc(120000, "2.0", "2.5", "1.8", "2.2"))

	// A correction for an already-closed period lands in place.
	s.Apply(fc(60000, "1.5", "9.0", "1.0", "8.0"))
	snap := s.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, 9.0, snap[1].High)

	// An unknown old period is dropped.
	s.Apply(fc(30000, "1.0", "1.1", "0.9", "1.0"))
	assert.Equal(t, 3, s.Len())
}

func TestApplyDropsInvalidSample(t *testing.T) {
	s := New(10)
	s.Apply(fc(0, "not-a-number", "2.0", "0.5", "1.5"))
	assert.Equal(t, 0, s.Len())

	// High below close violates OHLC ordering.
	s.Apply(fc(0, "1.0", "1.2", "0.5", "1.5"))
	assert.Equal(t, 0, s.Len())
}

func TestApplyTrimsAtDoubleLimit(t *testing.T) {
	s := New(5)
	for i := 0; i < 11; i++ {
		ts := int64(i) * 60000
		s.Apply(fc(ts, "1.0", "2.0", "0.5", "1.5"))
	}

	// The buffer grows to 2x5 and trims back to 5 on the next append.
	snap := s.Snapshot()
	require.Len(t, snap, 5)
	assert.Equal(t, int64(6*60000), snap[0].Timestamp, "trim keeps the most recent candles")
	assert.Equal(t, int64(10*60000), snap[4].Timestamp)
}

func TestSetHistory(t *testing.T) {
	s := New(10)
	s.SetHistory([]*feed.Candle{
		fc(120000, "2.0", "2.5", "1.8", "2.2"),
		fc(0, "1.0", "2.0", "0.5", "1.5"),
		fc(60000, "1.5", "3.0", "1.0", "2.0"),
		fc(60000, "1.5", "3.5", "1.0", "2.5"), // duplicate period, last wins
		fc(180000, "bad", "2.5", "1.8", "2.2"),
	})

	snap := s.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, int64(0), snap[0].Timestamp, "history is sorted ascending")
	assert.Equal(t, int64(120000), snap[2].Timestamp)
	assert.Equal(t, 3.5, snap[1].High)
}

func TestSetHistoryRespectsLimit(t *testing.T) {
	s := New(3)
	var batch []*feed.Candle
	for i := 0; i < 8; i++ {
		batch = append(batch, fc(int64(i)*60000, "1.0", "2.0", "0.5", "1.5"))
	}
	s.SetHistory(batch)

	snap := s.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, int64(5*60000), snap[0].Timestamp)
}

func TestOnChangeNotification(t *testing.T) {
	s := New(10)
	calls := 0
	tok := s.OnChange(func() { calls++ })

	s.Apply(fc(0, "1.0", "2.0", "0.5", "1.5"))
	s.SetHistory([]*feed.Candle{fc(0, "1.0", "2.0", "0.5", "1.5")})
	assert.Equal(t, 2, calls)

	tok.Unsubscribe()
	s.Apply(fc(60000, "1.0", "2.0", "0.5", "1.5"))
	assert.Equal(t, 2, calls, "an unsubscribed handler no longer fires")
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New(10)
	s.Apply(fc(0, "1.0", "2.0", "0.5", "1.5"))

	snap := s.Snapshot()
	snap[0].High = 99.0
	assert.Equal(t, 2.0, s.Snapshot()[0].High, "mutating a snapshot must not touch the store")
}

func TestApplyInvalidDoesNotNotify(t *testing.T) {
	s := New(10)
	calls := 0
	s.OnChange(func() { calls++ })

	s.Apply(fc(0, fmt.Sprintf("%f", 1.0), "0.5", "0.4", "1.5"))
	assert.Zero(t, calls)
}
