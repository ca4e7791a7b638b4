package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vncrypt-sim/internal/mission"
	"vncrypt-sim/internal/sim"
)

var (
	replayInput     string
	replaySpeed     float64
	replayPrintOnly bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a recorded mission log",
	Long:  "replay feeds entries from a JSONL mission log back to STDOUT or GreptimeDB, paced by their simulated seconds.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayInput == "" {
			return fmt.Errorf("input file required")
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cfg, cmd.ErrOrStderr())
		ws, err := newWriters(cfg, mission.Mission{}, writerOptions{PrintOnly: replayPrintOnly})
		if err != nil {
			return err
		}
		defer ws.Close()
		n, err := sim.ReplayLogFile(replayInput, ws.entries, replaySpeed)
		if err != nil {
			return err
		}
		logger.Info("replay complete", "entries", n, "input", replayInput)
		return nil
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to mission log file (JSONL)")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Playback speed multiplier")
	replayCmd.Flags().BoolVar(&replayPrintOnly, "print-only", false, "Print entries to STDOUT instead of writing to DB")
	replayCmd.MarkFlagRequired("input")
}
