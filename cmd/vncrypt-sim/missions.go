package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"vncrypt-sim/internal/mission"
)

var missionsJSON bool

var missionsCmd = &cobra.Command{
	Use:   "missions",
	Short: "List available missions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		catalog, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		if missionsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(catalog.Missions())
		}
		return printMissions(catalog.Missions())
	},
}

func init() {
	missionsCmd.Flags().BoolVar(&missionsJSON, "json", false, "Print missions as JSON")
}

func printMissions(ms []mission.Mission) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tTITLE\tDIFFICULTY\tGOAL\tTOOLS")
	for _, m := range ms {
		tools := make([]string, len(m.AllowedTools))
		for i, t := range m.AllowedTools {
			tools[i] = string(t)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.0fs\t%s\n", m.Key, m.Title, m.Difficulty,
			m.SuccessCriteria.DetectionTimeSeconds, strings.Join(tools, ","))
	}
	return tw.Flush()
}
