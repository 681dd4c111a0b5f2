// Command candleterm renders live candlestick charts in the terminal.
package main

import (
	"log"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yitech/candleterm/chart"
	"github.com/yitech/candleterm/config"
)

var (
	flagConfig    string
	flagSymbol    string
	flagInterval  string
	flagPrecision int
	flagHistory   int
	flagFit       bool
	flagTimezone  string
)

var rootCmd = &cobra.Command{
	Use:   "candleterm",
	Short: "Candlestick charts in your terminal",
	Long: `candleterm draws live-updating candlestick charts in the terminal,
with sub-cell candle resolution, pannable history, and stretch-to-fit
layout. Data comes from Binance or from a built-in demo generator.`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "path to config file (default ~/.config/candleterm/config.yaml)")
	pf.StringVarP(&flagSymbol, "symbol", "s", "", "trading pair symbol")
	pf.StringVarP(&flagInterval, "interval", "i", "", "candle interval (1s 5s 15s 30s 1m 5m 15m 30m 1h 4h 1d)")
	pf.IntVarP(&flagPrecision, "precision", "p", -1, "decimal places on price labels")
	pf.IntVar(&flagHistory, "history", 0, "number of candles to keep and backfill")
	pf.BoolVarP(&flagFit, "fit", "f", false, "start in stretch-to-fit layout")
	pf.StringVar(&flagTimezone, "tz", "", "timezone for time labels, e.g. Europe/Berlin")

	rootCmd.AddCommand(liveCmd, demoCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// colorOr returns the configured color, or the fallback when unset.
func colorOr(v, fallback string) lipgloss.Color {
	if v == "" {
		return lipgloss.Color(fallback)
	}
	return lipgloss.Color(v)
}

// loadConfig builds the effective configuration: file, then environment,
// then command-line flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagSymbol != "" {
		cfg.Symbol = flagSymbol
	}
	if flagInterval != "" {
		cfg.Interval = flagInterval
	}
	if flagPrecision >= 0 {
		cfg.Precision = flagPrecision
	}
	if flagHistory > 0 {
		cfg.History = flagHistory
	}
	if cmd.Flags().Changed("fit") {
		cfg.Fit = flagFit
	}
	if flagTimezone != "" {
		cfg.Timezone = flagTimezone
	}
	return cfg, nil
}

// buildChart translates the configuration into a chart engine.
func buildChart(cfg config.Config) *chart.Chart {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Printf("unknown timezone %q, falling back to UTC", cfg.Timezone)
		loc = time.UTC
	}

	mode := chart.Fixed
	if cfg.Fit {
		mode = chart.Fit
	}

	styles := chart.DefaultStyles()
	styles.BullBody = styles.BullBody.Foreground(colorOr(cfg.Theme.Bull, "#26a641"))
	styles.BearBody = styles.BearBody.Foreground(colorOr(cfg.Theme.Bear, "#e05c5c"))
	styles.BullWick = styles.BullWick.Foreground(colorOr(cfg.Theme.BullWick, "#888888"))
	styles.BearWick = styles.BearWick.Foreground(colorOr(cfg.Theme.BearWick, "#888888"))
	styles.Axis = styles.Axis.Foreground(colorOr(cfg.Theme.Axis, "#555555"))

	return chart.New(
		chart.WithInterval(chart.ParseInterval(cfg.Interval)),
		chart.WithNumeric(chart.Numeric{Precision: cfg.Precision}),
		chart.WithStyles(styles),
		chart.WithDisplayLocation(loc),
		chart.WithYAxis(cfg.Axes.Price),
		chart.WithXAxis(cfg.Axes.Time),
		chart.WithFitMode(mode),
	)
}
