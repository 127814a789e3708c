// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve turns a ConversionRequest into a concrete ConversionPlan:
// the ordered input/output path pairs a conversion run will process.
// Implements: prd002-output-layout; docs/ARCHITECTURE § Path Resolution.
//
// Resolution is a function of the request and of filesystem existence only.
// It never reads file contents. Creating the output directory (with parents)
// is its one side effect; it never deletes or overwrites anything.
package resolve

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pagexml-convert/pkg/types"
)

// AutoSentinel marks an output hint that requests the default layout, the
// same as leaving the hint empty.
const AutoSentinel = "auto"

// Resolve computes the conversion plan for req. In directory mode the output
// directory is created if missing; a single-file literal output path is used
// as given, without creating its parent.
func Resolve(req types.ConversionRequest, cfg types.ConvertConfig) (types.ConversionPlan, error) {
	switch req.Mode {
	case types.ModeDirectory:
		return resolveDirectory(req, cfg)
	default:
		return resolveFile(req, cfg)
	}
}

// OutputName returns the converted filename for an input file: the stem with
// the configured suffix appended, keeping the original extension
// ("page.xml" -> "page_transkribus.xml").
func OutputName(input string, cfg types.ConvertConfig) string {
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + cfg.OutputSuffix + ext
}

func resolveFile(req types.ConversionRequest, cfg types.ConvertConfig) (types.ConversionPlan, error) {
	plan := types.ConversionPlan{Mode: types.ModeFile}

	hint := strings.TrimSpace(req.OutputHint)
	if hint == "" || hint == AutoSentinel {
		out := filepath.Join(filepath.Dir(req.Source), OutputName(req.Source, cfg))
		plan.Entries = []types.PlanEntry{{Input: req.Source, Output: out}}
		return plan, nil
	}

	asDir := false
	switch info, err := os.Stat(hint); {
	case err == nil && info.IsDir():
		asDir = true
	case err == nil:
		// Existing file: always a literal output path.
	case hasTrailingSeparator(hint):
		// A trailing separator forces directory treatment even when the
		// name looks like it has an extension ("out.d/").
		asDir = true
	case filepath.Ext(hint) == "":
		// A non-existent extensionless hint is always a directory to be
		// created. There is no way to name a literal extensionless output
		// file; documented limitation.
		asDir = true
	}

	if asDir {
		if err := os.MkdirAll(hint, 0o755); err != nil {
			return plan, fmt.Errorf("creating output directory %s: %w", hint, err)
		}
		out := filepath.Join(hint, OutputName(req.Source, cfg))
		plan.Entries = []types.PlanEntry{{Input: req.Source, Output: out}}
		return plan, nil
	}

	// Literal file path. The parent directory is the caller's to provide;
	// a missing parent surfaces later as a write failure.
	plan.Entries = []types.PlanEntry{{Input: req.Source, Output: hint}}
	return plan, nil
}

func resolveDirectory(req types.ConversionRequest, cfg types.ConvertConfig) (types.ConversionPlan, error) {
	plan := types.ConversionPlan{Mode: types.ModeDirectory}

	outDir := strings.TrimSpace(req.OutputHint)
	if outDir == "" || outDir == AutoSentinel {
		outDir = filepath.Join(req.Source, cfg.BatchDirName)
	}

	entries, err := os.ReadDir(req.Source)
	if err != nil {
		return plan, fmt.Errorf("reading input directory %s: %w", req.Source, err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return plan, fmt.Errorf("creating output directory %s: %w", outDir, err)
	}
	plan.OutputDir = outDir

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), cfg.InputExt) {
			continue
		}
		plan.Entries = append(plan.Entries, types.PlanEntry{
			Input:  filepath.Join(req.Source, name),
			Output: filepath.Join(outDir, OutputName(name, cfg)),
		})
	}

	return plan, nil
}

func hasTrailingSeparator(path string) bool {
	return strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(os.PathSeparator))
}
