package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var (
	profileJSON   bool
	profileRecent int
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show level, experience and recent mission results",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		newLogger(cfg, os.Stderr)
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		ctx := cmd.Context()
		p, err := store.Profile(ctx)
		if err != nil {
			return err
		}
		results, err := store.Results(ctx)
		if err != nil {
			return err
		}
		if profileRecent > 0 && len(results) > profileRecent {
			results = results[len(results)-profileRecent:]
		}

		if profileJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"profile":       p,
				"xpToNextLevel": p.XPToNextLevel(),
				"levelProgress": p.LevelProgress(),
				"results":       results,
			})
		}

		fmt.Printf("%s (%s)\n", p.Name, p.ID)
		fmt.Printf("Level %d  XP %d  next level in %d XP (%.0f%%)\n", p.Level, p.Experience, p.XPToNextLevel(), p.LevelProgress())
		fmt.Printf("Completed missions: %d\n", len(p.CompletedMissions))
		if len(results) == 0 {
			return nil
		}
		fmt.Println()
		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "WHEN\tMISSION\tSCORE\tDETECTION\tTOOLS")
		for _, r := range results {
			tools := "-"
			if len(r.ToolsUsed) > 0 {
				ids := make([]string, len(r.ToolsUsed))
				for i, id := range r.ToolsUsed {
					ids[i] = string(id)
				}
				tools = strings.Join(ids, ",")
			}
			fmt.Fprintf(tw, "%s\t%s\t%d\t%ds\t%s\n", r.Timestamp.Local().Format(time.DateTime), r.MissionKey, r.Score, r.DetectionTimeSeconds, tools)
		}
		return tw.Flush()
	},
}

func init() {
	profileCmd.Flags().BoolVar(&profileJSON, "json", false, "Print the profile as JSON")
	profileCmd.Flags().IntVar(&profileRecent, "recent", 10, "Number of recent results to show (0 for all)")
}
