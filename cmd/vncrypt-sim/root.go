package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	schemaPath string
)

var rootCmd = &cobra.Command{
	Use:           "vncrypt-sim",
	Short:         "VNC exfiltration defense training simulator",
	Long:          "vncrypt-sim replays scripted VNC data exfiltration missions and scores how fast a defender responds.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/simulation.yaml", "Path to simulation configuration YAML")
	rootCmd.PersistentFlags().StringVar(&schemaPath, "schema", "schemas/simulation.cue", "Path to CUE schema file")
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(missionsCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(dashboardCmd)
}
