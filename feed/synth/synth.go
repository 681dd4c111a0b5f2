// Package synth implements feed.Feed with a random-walk candle
// generator, useful for demos and for exercising the renderer without a
// network connection.
package synth

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/yitech/candleterm/chart"
	"github.com/yitech/candleterm/feed"
)

// Feed generates plausible OHLCV candles around a drifting base price.
// Updates for the open candle are emitted once per tick and the candle
// closes when its interval elapses, mirroring a live exchange stream.
type Feed struct {
	ctx    context.Context
	cancel context.CancelFunc

	basePrice float64
	tick      time.Duration
}

// New builds a generator starting its walk at basePrice with one
// in-progress update per tick.
func New(basePrice float64, tick time.Duration) *Feed {
	ctx, cancel := context.WithCancel(context.Background())
	return &Feed{
		ctx:       ctx,
		cancel:    cancel,
		basePrice: basePrice,
		tick:      tick,
	}
}

// newRNG returns a private source per walk; rand.Rand is not safe for
// concurrent use across subscriptions.
func newRNG() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

type token struct {
	cancel context.CancelFunc
}

func (t *token) Unsubscribe() { t.cancel() }

func (f *Feed) Subscribe(symbol, interval string, handler feed.Handler) (feed.Token, error) {
	ctx, cancel := context.WithCancel(f.ctx)
	step := intervalDuration(interval)

	go func() {
		ticker := time.NewTicker(f.tick)
		defer ticker.Stop()

		w := newWalk(newRNG(), f.basePrice)
		openTime := time.Now().Truncate(step)
		for {
			select {
			case <-ctx.Done():
				return
			case t := <-ticker.C:
				w.advance()
				closed := false
				if !t.Before(openTime.Add(step)) {
					closed = true
				}
				handler(w.candle(symbol, interval, openTime, step, closed))
				if closed {
					openTime = t.Truncate(step)
					w.roll()
				}
			}
		}
	}()

	return &token{cancel: cancel}, nil
}

// Backfill synthesizes a closed-candle history for [start, end] from the
// same walk, so a demo session opens with a populated chart.
func (f *Feed) Backfill(symbol, interval string, start, end time.Time) ([]*feed.Candle, error) {
	step := intervalDuration(interval)
	w := newWalk(newRNG(), f.basePrice)

	var out []*feed.Candle
	for t := start.Truncate(step); !t.After(end); t = t.Add(step) {
		w.advance()
		w.advance()
		out = append(out, w.candle(symbol, interval, t, step, true))
		w.roll()
	}
	return out, nil
}

func (f *Feed) Close() error {
	f.cancel()
	return nil
}

// walk tracks one candle's running OHLC while the base price drifts.
type walk struct {
	rng   *rand.Rand
	price float64
	open  float64
	high  float64
	low   float64
}

func newWalk(rng *rand.Rand, base float64) *walk {
	w := &walk{rng: rng, price: base}
	w.roll()
	return w
}

// advance moves the price one random step and widens the candle extremes.
func (w *walk) advance() {
	w.price += (w.rng.Float64() - 0.5) * w.price * 0.004
	if w.price > w.high {
		w.high = w.price
	}
	if w.price < w.low {
		w.low = w.price
	}
}

// roll starts the next candle at the current price.
func (w *walk) roll() {
	w.open = w.price
	w.high = w.price
	w.low = w.price
}

func (w *walk) candle(symbol, interval string, openTime time.Time, step time.Duration, closed bool) *feed.Candle {
	return &feed.Candle{
		Exchange:  "synth",
		Symbol:    symbol,
		Interval:  interval,
		OpenTime:  openTime.UnixMilli(),
		Open:      fmt.Sprintf("%.2f", w.open),
		High:      fmt.Sprintf("%.2f", w.high),
		Low:       fmt.Sprintf("%.2f", w.low),
		Close:     fmt.Sprintf("%.2f", w.price),
		Volume:    fmt.Sprintf("%.4f", w.rng.Float64()*100),
		CloseTime: openTime.Add(step).UnixMilli() - 1,
		IsClosed:  closed,
	}
}

// intervalDuration maps an exchange interval token to a duration,
// defaulting to one minute for anything unrecognized.
func intervalDuration(interval string) time.Duration {
	return chart.ParseInterval(interval).Duration()
}
