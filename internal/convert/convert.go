// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs conversion plans: it reads each input, applies the
// transform pipeline, writes the output, and accumulates per-file outcomes.
// Implements: prd003-batch (R1-R4); docs/ARCHITECTURE § Orchestration.
//
// This is the only layer that touches file contents on disk. A failure on
// one file never aborts the rest of a batch.
package convert

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pdiddy/pagexml-convert/pkg/types"
)

// TransformFunc rewrites one document. Production code passes
// transform.Transform; tests substitute fakes.
type TransformFunc func(string) string

// ConvertFile converts a single plan entry, printing a status line to w.
// Read and write errors become failed outcomes rather than returned errors.
// An input the pipeline leaves byte-identical is already in the target
// format and is skipped without writing.
func ConvertFile(tf TransformFunc, entry types.PlanEntry, w io.Writer) types.FileOutcome {
	outcome := types.FileOutcome{Input: entry.Input, Output: entry.Output}

	data, err := os.ReadFile(entry.Input)
	if err != nil {
		outcome.Status = types.StatusFailed
		outcome.Reason = err.Error()
		fmt.Fprintf(w, "failed:  %s (%v)\n", entry.Input, err)
		return outcome
	}

	text := string(data)
	converted := tf(text)

	if converted == text {
		outcome.Status = types.StatusSkipped
		outcome.Reason = "already in target format"
		fmt.Fprintf(w, "skipped: %s (already in target format)\n", entry.Input)
		return outcome
	}

	if err := os.WriteFile(entry.Output, []byte(converted), 0o644); err != nil {
		outcome.Status = types.StatusFailed
		outcome.Reason = err.Error()
		fmt.Fprintf(w, "failed:  %s (%v)\n", entry.Input, err)
		return outcome
	}

	outcome.Status = types.StatusConverted
	fmt.Fprintf(w, "converted: %s -> %s\n", entry.Input, entry.Output)
	return outcome
}

// Run processes every entry of a plan in order and returns the aggregate
// report. Per-file status lines and the closing "N/M files succeeded"
// summary go to w.
func Run(tf TransformFunc, plan types.ConversionPlan, source string, w io.Writer) types.BatchReport {
	report := types.BatchReport{
		Source:    source,
		StartedAt: time.Now().UTC(),
	}

	for _, entry := range plan.Entries {
		outcome := ConvertFile(tf, entry, w)
		report.Outcomes = append(report.Outcomes, outcome)
		switch outcome.Status {
		case types.StatusConverted:
			report.Converted++
		case types.StatusSkipped:
			report.Skipped++
		case types.StatusFailed:
			report.Failed++
		}
	}

	fmt.Fprintf(w, "\n%d/%d files succeeded\n", report.Converted+report.Skipped, report.Total())
	return report
}
