// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pagexml-convert/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file-or-directory>...",
	Short: "Check converted files for the structure Transkribus expects",
	Long: `Validate parses each file as XML and reports anything Transkribus would
reject: documents that are not well-formed, a wrong or missing PcGts
namespace, TextRegions or TextLines without Coords, TextLines without a
Baseline, and empty Unicode elements. Directories are checked one level deep.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		out := cmd.OutOrStdout()

		paths, err := collectXMLFiles(args, cfg.Convert.InputExt)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("no XML files to validate")
		}

		problems := 0
		for _, path := range paths {
			report, err := validate.File(path)
			if err != nil {
				return err
			}
			if report.OK() {
				fmt.Fprintf(out, "ok:      %s\n", path)
				continue
			}
			problems += len(report.Problems)
			for _, p := range report.Problems {
				fmt.Fprintf(out, "problem: %s: %s\n", path, p)
			}
		}

		if problems > 0 {
			return fmt.Errorf("%d problems found", problems)
		}
		return nil
	},
}

// collectXMLFiles expands directory arguments into the XML files directly
// inside them; file arguments are taken as-is regardless of extension.
func collectXMLFiles(args []string, ext string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("reading directory %s: %w", arg, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ext) {
				continue
			}
			paths = append(paths, filepath.Join(arg, entry.Name()))
		}
	}
	return paths, nil
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
