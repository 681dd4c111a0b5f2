package main

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/yitech/candleterm/config"
	"github.com/yitech/candleterm/feed"
	"github.com/yitech/candleterm/feed/binance"
	"github.com/yitech/candleterm/series"
)

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Chart a symbol from the Binance spot market",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return runFeed(cfg, binance.New())
	},
}

// runFeed backfills the store, attaches the live stream, and hands
// control to the TUI. Shared by every feed-backed command.
func runFeed(cfg config.Config, f feed.Feed) error {
	defer f.Close()

	ch := buildChart(cfg)
	store := series.New(cfg.History)

	end := time.Now()
	start := end.Add(-time.Duration(cfg.History) * ch.Interval().Duration())
	batch, err := f.Backfill(cfg.Symbol, cfg.Interval, start, end)
	if err != nil {
		// A failed backfill only costs history; the live stream still
		// populates the chart.
		log.Printf("backfill failed: %v", err)
	} else {
		store.SetHistory(batch)
	}

	tok, err := f.Subscribe(cfg.Symbol, cfg.Interval, store.Apply)
	if err != nil {
		return fmt.Errorf("subscribe %s/%s: %w", cfg.Symbol, cfg.Interval, err)
	}
	defer tok.Unsubscribe()

	return runTUI(cfg.Symbol, cfg.Interval, ch, store)
}
