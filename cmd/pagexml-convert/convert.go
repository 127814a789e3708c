// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pagexml-convert/internal/convert"
	"github.com/pdiddy/pagexml-convert/internal/history"
	"github.com/pdiddy/pagexml-convert/internal/resolve"
	"github.com/pdiddy/pagexml-convert/internal/transform"
	"github.com/pdiddy/pagexml-convert/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file-or-directory>",
	Short: "Convert PAGE XML files to the Transkribus variant",
	Long: `Convert rewrites one PAGE XML file, or every .xml file directly inside a
directory, into the Transkribus-compatible form. Without --output, a single
file is written next to its input as <stem>_transkribus<ext>; a directory run
writes into a transkribus_converted folder inside the input directory.

An --output hint naming an existing directory, or a non-existent path without
a file extension, is treated as an output directory and created as needed. A
hint with a file extension names the output file itself.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		input := args[0]
		hint, _ := cmd.Flags().GetString("output")
		noHistory, _ := cmd.Flags().GetBool("no-history")

		info, err := os.Stat(input)
		if err != nil {
			return fmt.Errorf("input %s: %w", input, err)
		}

		mode := types.ModeFile
		if info.IsDir() {
			mode = types.ModeDirectory
		}

		req := types.ConversionRequest{Source: input, OutputHint: hint, Mode: mode}
		plan, err := resolve.Resolve(req, cfg.Convert)
		if err != nil {
			return err
		}

		if mode == types.ModeDirectory && len(plan.Entries) == 0 {
			fmt.Fprintf(os.Stderr, "No XML files found in: %s\n", input)
			return nil
		}

		report := convert.Run(transform.Transform, plan, input, cmd.OutOrStdout())

		if mode == types.ModeDirectory && cfg.Convert.ReportName != "" {
			if err := convert.WriteReport(report, plan.OutputDir, cfg.Convert.ReportName); err != nil {
				fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			}
		}

		if !noHistory {
			recordRun(cmd, cfg.History, mode, report)
		}

		if report.HasFailures() {
			return fmt.Errorf("%d of %d files failed", report.Failed, report.Total())
		}
		return nil
	},
}

// recordRun best-effort appends the run to the history database. History
// problems never fail a conversion that already succeeded on disk.
func recordRun(cmd *cobra.Command, cfg types.HistoryConfig, mode types.RequestMode, report types.BatchReport) {
	store, err := history.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: history unavailable: %v\n", err)
		return
	}
	defer store.Close()

	if _, err := store.RecordRun(cmd.Context(), mode, report); err != nil {
		fmt.Fprintf(os.Stderr, "warning: recording run: %v\n", err)
	}
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "output file or directory (default: derived from the input path)")
	convertCmd.Flags().Bool("no-history", false, "skip recording the run in the history database")

	rootCmd.AddCommand(convertCmd)
}
