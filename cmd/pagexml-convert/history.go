// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pagexml-convert/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent conversion runs",
	Long: `History lists conversion runs recorded in the local SQLite database,
newest first, with per-status counts. Use --files to also print the per-file
outcomes of each listed run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		limit, _ := cmd.Flags().GetInt("limit")
		showFiles, _ := cmd.Flags().GetBool("files")
		if limit <= 0 {
			limit = cfg.History.MaxResults
		}
		out := cmd.OutOrStdout()

		store, err := history.Open(cfg.History)
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.ListRuns(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(out, "No conversion runs recorded.")
			return nil
		}

		for _, r := range runs {
			fmt.Fprintf(out, "#%d  %s  %s  %s  converted=%d skipped=%d failed=%d\n",
				r.ID, r.StartedAt.Format(time.RFC3339), r.Mode, r.Source,
				r.Converted, r.Skipped, r.Failed)
			if !showFiles {
				continue
			}
			outcomes, err := store.RunFiles(cmd.Context(), r.ID)
			if err != nil {
				return err
			}
			for _, o := range outcomes {
				line := fmt.Sprintf("    %-9s %s", o.Status, o.Input)
				if o.Reason != "" {
					line += " (" + o.Reason + ")"
				}
				fmt.Fprintln(out, line)
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum number of runs to list (default from config)")
	historyCmd.Flags().Bool("files", false, "also list per-file outcomes")

	rootCmd.AddCommand(historyCmd)
}
