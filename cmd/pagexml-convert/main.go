// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pagexml-convert CLI.
// Implements: prd001-transform, prd002-output-layout, prd003-batch,
//             prd004-validation, prd005-history (CLI surface).
// See docs/ARCHITECTURE § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pagexml-convert/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the pagexml-convert CLI.
var rootCmd = &cobra.Command{
	Use:   "pagexml-convert",
	Short: "Convert eScriptorium PAGE XML exports for Transkribus",
	Long: `pagexml-convert rewrites PAGE XML files exported from eScriptorium/Kraken
into the variant Transkribus imports: the schema version and namespace are
moved to the 2013-07-15 schema, empty Unicode elements receive a [text]
placeholder, and TextRegions and TextLines missing Coords or Baseline
elements get placeholder geometry inserted.

The rewrite works on the document text, without a full XML parser. That is
deliberate: standard eScriptorium exports are predictable, and text rules
keep everything else in the file byte-for-byte intact. Run the validate
subcommand afterwards when a structural guarantee is needed.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pagexml-convert.yaml or ~/.config/pagexml-convert/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pagexml-convert")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pagexml-convert"))
		}
	}

	viper.SetEnvPrefix("PAGEXML_CONVERT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig merges viper overrides onto the defaults. The transform rules
// themselves are not configurable; only output layout and history settings are.
func loadConfig() types.Config {
	cfg := types.DefaultConfig()

	if v := viper.GetString("convert.output_suffix"); v != "" {
		cfg.Convert.OutputSuffix = v
	}
	if v := viper.GetString("convert.batch_dir_name"); v != "" {
		cfg.Convert.BatchDirName = v
	}
	if v := viper.GetString("convert.input_ext"); v != "" {
		cfg.Convert.InputExt = v
	}
	if viper.IsSet("convert.report_name") {
		cfg.Convert.ReportName = viper.GetString("convert.report_name")
	}
	if v := viper.GetString("history.db_path"); v != "" {
		cfg.History.DBPath = v
	}
	if v := viper.GetInt("history.max_results"); v > 0 {
		cfg.History.MaxResults = v
	}

	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
