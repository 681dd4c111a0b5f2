// Package binance implements feed.Feed against the Binance spot API:
// live candles over the kline WebSocket stream and backfill over the
// REST klines endpoint.
package binance

import (
	"context"
	"net/http"
	"time"

	"github.com/yitech/candleterm/feed"
)

// Feed is the Binance market-data source. A single Feed can carry any
// number of concurrent subscriptions; Close cancels them all.
type Feed struct {
	ctx    context.Context
	cancel context.CancelFunc
	client *http.Client
}

// New builds a ready-to-use Feed.
func New() *Feed {
	ctx, cancel := context.WithCancel(context.Background())
	return &Feed{
		ctx:    ctx,
		cancel: cancel,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (f *Feed) Subscribe(symbol, interval string, handler feed.Handler) (feed.Token, error) {
	return subscribeKline(f.ctx, symbol, interval, handler)
}

func (f *Feed) Backfill(symbol, interval string, start, end time.Time) ([]*feed.Candle, error) {
	return fetchKlines(f.ctx, f.client, symbol, interval, start.UnixMilli(), end.UnixMilli())
}

func (f *Feed) Close() error {
	f.cancel()
	return nil
}
