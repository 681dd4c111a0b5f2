package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/yitech/candleterm/feed/synth"
)

var (
	flagDemoBase float64
	flagDemoTick time.Duration
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Chart a synthetic random-walk feed (no network needed)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return runFeed(cfg, synth.New(flagDemoBase, flagDemoTick))
	},
}

func init() {
	demoCmd.Flags().Float64Var(&flagDemoBase, "base", 40000, "starting price for the random walk")
	demoCmd.Flags().DurationVar(&flagDemoTick, "tick", 250*time.Millisecond, "update rate of the generator")
}
