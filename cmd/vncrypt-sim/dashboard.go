package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vncrypt-sim/internal/dashboard"
)

var dashboardOut string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Render Grafana dashboards for the GreptimeDB mission tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		paths, err := dashboard.Render(dashboardOut, dashboard.Params{
			Database:    cfg.Greptime.Database,
			LogTable:    cfg.Greptime.LogTable,
			ResultTable: cfg.Greptime.ResultTable,
		})
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	},
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardOut, "out", "build", "Output directory")
}
