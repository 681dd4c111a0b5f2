package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/yitech/candleterm/feed"
)

const (
	wsEndpoint       = "wss://stream.binance.com:9443/ws"
	handshakeTimeout = 10 * time.Second
	minRetryDelay    = time.Second
	maxRetryDelay    = 30 * time.Second

	// A session that stayed up this long counts as healthy; the next
	// failure retries immediately instead of inheriting an old backoff.
	healthySession = time.Minute
)

var wsDialer = &websocket.Dialer{HandshakeTimeout: handshakeTimeout}

// klineStream owns one symbol/interval subscription across reconnects.
// It is its own feed.Token: cancelling the stream context ends the run
// loop and whichever session it is in.
type klineStream struct {
	symbol   string
	interval string
	handler  feed.Handler
	cancel   context.CancelFunc
}

func (s *klineStream) Unsubscribe() { s.cancel() }

// subscribeKline starts a stream under parent and returns its cancel
// token. The run loop keeps the subscription alive until the token or
// the parent context stops it.
func subscribeKline(parent context.Context, symbol, interval string, handler feed.Handler) (feed.Token, error) {
	ctx, cancel := context.WithCancel(parent)
	s := &klineStream{
		symbol:   symbol,
		interval: interval,
		handler:  handler,
		cancel:   cancel,
	}
	go s.run(ctx)
	return s, nil
}

// run dials sessions until cancelled, doubling the retry delay after
// each short-lived session and resetting it after a healthy one.
func (s *klineStream) run(ctx context.Context) {
	delay := minRetryDelay
	for {
		started := time.Now()
		err := s.session(ctx)
		if ctx.Err() != nil {
			return
		}
		if time.Since(started) >= healthySession {
			delay = minRetryDelay
		}
		log.Printf("binance ws [%s/%s]: session ended: %v, retrying in %v", s.symbol, s.interval, err, delay)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return
		}
		if delay < maxRetryDelay {
			delay *= 2
			if delay > maxRetryDelay {
				delay = maxRetryDelay
			}
		}
	}
}

// session runs one connection from dial to first failure. Cancellation
// closes the socket out from under the read loop; the resulting read
// error is reported as nil.
func (s *klineStream) session(ctx context.Context) error {
	conn, _, err := wsDialer.DialContext(ctx, s.streamURL(), nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		case <-done:
		}
		conn.Close()
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}
		s.dispatch(msg)
	}
}

// streamURL is the raw-stream path for this subscription, e.g.
// .../ws/btcusdt@kline_1m.
func (s *klineStream) streamURL() string {
	return wsEndpoint + "/" + strings.ToLower(s.symbol) + "@kline_" + s.interval
}

// dispatch decodes one frame and hands the candle to the handler.
// Undecodable frames are dropped and logged, the same policy the series
// store applies to samples that fail validation.
func (s *klineStream) dispatch(msg []byte) {
	c, err := decodeKlineEvent(msg)
	if err != nil {
		log.Printf("binance ws [%s/%s]: dropping frame: %v", s.symbol, s.interval, err)
		return
	}
	s.handler(c)
}

// wsEvent is the raw-stream frame envelope; only kline events carry a
// payload we use.
type wsEvent struct {
	EventType string  `json:"e"`
	EventTime int64   `json:"E"`
	Symbol    string  `json:"s"`
	Kline     wsKline `json:"k"`
}

type wsKline struct {
	OpenTime  int64  `json:"t"`
	CloseTime int64  `json:"T"`
	Interval  string `json:"i"`
	Open      string `json:"o"`
	High      string `json:"h"`
	Low       string `json:"l"`
	Close     string `json:"c"`
	Volume    string `json:"v"`
	IsClosed  bool   `json:"x"`
}

func (k wsKline) toCandle(symbol string) *feed.Candle {
	return &feed.Candle{
		Exchange:  "binance",
		Symbol:    symbol,
		Interval:  k.Interval,
		OpenTime:  k.OpenTime,
		Open:      k.Open,
		High:      k.High,
		Low:       k.Low,
		Close:     k.Close,
		Volume:    k.Volume,
		CloseTime: k.CloseTime,
		IsClosed:  k.IsClosed,
	}
}

func decodeKlineEvent(msg []byte) (*feed.Candle, error) {
	var ev wsEvent
	if err := json.Unmarshal(msg, &ev); err != nil {
		return nil, err
	}
	if ev.EventType != "kline" {
		return nil, fmt.Errorf("unexpected event type %q", ev.EventType)
	}
	return ev.Kline.toCandle(ev.Symbol), nil
}
