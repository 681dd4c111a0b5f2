package synth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackfill(t *testing.T) {
	f := New(40000, 100*time.Millisecond)
	defer f.Close()

	start := time.Unix(1_700_000_000, 0).UTC()
	end := start.Add(9 * time.Minute)

	out, err := f.Backfill("DEMOUSDT", "1m", start, end)
	require.NoError(t, err)
	require.Len(t, out, 10)

	step := time.Minute.Milliseconds()
	first := start.Truncate(time.Minute).UnixMilli()
	for i, c := range out {
		assert.Equal(t, "synth", c.Exchange)
		assert.Equal(t, "DEMOUSDT", c.Symbol)
		assert.Equal(t, "1m", c.Interval)
		assert.Equal(t, first+int64(i)*step, c.OpenTime)
		assert.Equal(t, c.OpenTime+step-1, c.CloseTime)
		assert.True(t, c.IsClosed)

		cc, err := c.ToChart()
		require.NoErrorf(t, err, "candle %d has inconsistent prices", i)
		assert.GreaterOrEqual(t, cc.High, cc.Low)
	}
}

func TestBackfillContinuity(t *testing.T) {
	f := New(100, 100*time.Millisecond)
	defer f.Close()

	start := time.Unix(1_700_000_000, 0).UTC()
	out, err := f.Backfill("DEMOUSDT", "1m", start, start.Add(50*time.Minute))
	require.NoError(t, err)
	require.Len(t, out, 51)

	// Each candle opens where the previous one closed.
	for i := 1; i < len(out); i++ {
		assert.Equal(t, out[i-1].Close, out[i].Open)
	}
}
