package feed

import (
	"fmt"
	"strconv"
	"time"

	"github.com/yitech/candleterm/chart"
)

// Candle is the feed-layer representation of an OHLCV candlestick.
// Prices stay in the exchange's decimal-string form until the chart
// needs them so no precision is lost in transit.
type Candle struct {
	Exchange  string
	Symbol    string
	Interval  string
	OpenTime  int64
	Open      string
	High      string
	Low       string
	Close     string
	Volume    string
	CloseTime int64
	IsClosed  bool
}

// ToChart converts the wire candle into the chart's numeric form.
// Malformed or inconsistent price strings yield an error so a bad
// sample can be dropped instead of corrupting the series.
func (c *Candle) ToChart() (chart.Candle, error) {
	o, err := strconv.ParseFloat(c.Open, 64)
	if err != nil {
		return chart.Candle{}, fmt.Errorf("feed: parse open %q: %w", c.Open, err)
	}
	h, err := strconv.ParseFloat(c.High, 64)
	if err != nil {
		return chart.Candle{}, fmt.Errorf("feed: parse high %q: %w", c.High, err)
	}
	l, err := strconv.ParseFloat(c.Low, 64)
	if err != nil {
		return chart.Candle{}, fmt.Errorf("feed: parse low %q: %w", c.Low, err)
	}
	cl, err := strconv.ParseFloat(c.Close, 64)
	if err != nil {
		return chart.Candle{}, fmt.Errorf("feed: parse close %q: %w", c.Close, err)
	}
	return chart.NewCandle(c.OpenTime, o, h, l, cl)
}

// Handler receives every candle update emitted by a subscription,
// including repeated updates for a still-open candle.
type Handler func(*Candle)

// Token cancels a single subscription.
type Token interface {
	Unsubscribe()
}

// Feed is the contract for market-data sources. Implementations stream
// live candles to the handler and serve historical backfill on demand.
type Feed interface {
	// Subscribe starts streaming candles for the given symbol and
	// interval, invoking handler for every update until the Token is
	// cancelled or the feed is closed.
	Subscribe(symbol, interval string, handler Handler) (Token, error)

	// Backfill returns closed historical candles covering [start, end],
	// oldest first.
	Backfill(symbol, interval string, start, end time.Time) ([]*Candle, error)

	// Close shuts down the feed and releases all resources.
	Close() error
}
