// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus indicates the outcome of converting one PAGE XML file.
type ConversionStatus string

const (
	StatusConverted ConversionStatus = "converted"
	StatusSkipped   ConversionStatus = "skipped"
	StatusFailed    ConversionStatus = "failed"
)

// RequestMode distinguishes a single-file conversion from a directory batch.
type RequestMode string

const (
	ModeFile      RequestMode = "file"
	ModeDirectory RequestMode = "directory"
)

// ConversionRequest describes one invocation of the converter before path
// resolution: the source to convert and where the caller wants the output.
type ConversionRequest struct {
	// Source is the input file or directory path.
	Source string `json:"source" yaml:"source"`

	// OutputHint is the user-supplied output path, or "" / "auto" for the
	// default layout next to the input.
	OutputHint string `json:"output_hint,omitempty" yaml:"output_hint,omitempty"`

	// Mode selects single-file or directory conversion.
	Mode RequestMode `json:"mode" yaml:"mode"`
}

// PlanEntry is one resolved input/output pair of a conversion plan.
type PlanEntry struct {
	// Input is the PAGE XML file to read.
	Input string `json:"input" yaml:"input"`

	// Output is the file the converted document is written to.
	Output string `json:"output" yaml:"output"`
}

// ConversionPlan is the ordered list of input/output pairs resolved from a
// ConversionRequest. Every entry has a distinct output path.
type ConversionPlan struct {
	// Mode is the mode of the originating request.
	Mode RequestMode `json:"mode" yaml:"mode"`

	// OutputDir is the resolved output directory for directory-mode plans,
	// or "" in single-file mode.
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`

	// Entries lists the files to convert, in directory order.
	Entries []PlanEntry `json:"entries" yaml:"entries"`
}

// FileOutcome records the result of converting one plan entry.
type FileOutcome struct {
	// Input is the source file path.
	Input string `json:"input" yaml:"input"`

	// Output is the resolved output path (written only on success).
	Output string `json:"output" yaml:"output"`

	// Status is converted, skipped, or failed.
	Status ConversionStatus `json:"status" yaml:"status"`

	// Reason explains a skip or failure; empty on success.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// BatchReport summarizes a conversion run for the YAML report and the
// run-history store.
type BatchReport struct {
	// Source is the input file or directory of the run.
	Source string `json:"source" yaml:"source"`

	// StartedAt is the wall-clock start of the run, UTC.
	StartedAt time.Time `json:"started_at" yaml:"started_at"`

	// Converted, Skipped, and Failed are the per-status counts.
	Converted int `json:"converted" yaml:"converted"`
	Skipped   int `json:"skipped" yaml:"skipped"`
	Failed    int `json:"failed" yaml:"failed"`

	// Outcomes lists the per-file results in plan order.
	Outcomes []FileOutcome `json:"outcomes" yaml:"outcomes"`
}

// Total returns the number of files processed in the run.
func (r BatchReport) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any file in the run failed.
func (r BatchReport) HasFailures() bool {
	return r.Failed > 0
}
