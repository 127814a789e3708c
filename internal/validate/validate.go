// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validate checks converted PAGE XML for the structure Transkribus
// requires. Implements: prd004-validation; docs/ARCHITECTURE § Validation.
//
// Unlike the transform pipeline, validation parses the document into a tree:
// it is a read-only stage, so the text-rewriter caveats do not apply, and a
// real parser catches what substring scanning cannot.
package validate

import (
	"fmt"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/pdiddy/pagexml-convert/internal/transform"
)

// Report holds the validation result for one file.
type Report struct {
	// Path is the validated file.
	Path string `json:"path" yaml:"path"`

	// WellFormed is false when the document does not parse at all; in that
	// case Problems holds the parse error and the structural checks are
	// skipped.
	WellFormed bool `json:"well_formed" yaml:"well_formed"`

	// Problems lists every structural issue found, in document order per check.
	Problems []string `json:"problems,omitempty" yaml:"problems,omitempty"`
}

// OK reports whether the file is well-formed and free of structural problems.
func (r Report) OK() bool {
	return r.WellFormed && len(r.Problems) == 0
}

var (
	regionNoCoords = xpath.MustCompile("//TextRegion[not(Coords)]")
	lineNoCoords   = xpath.MustCompile("//TextLine[not(Coords)]")
	lineNoBaseline = xpath.MustCompile("//TextLine[not(Baseline)]")
	emptyUnicode   = xpath.MustCompile("//Unicode[normalize-space(.)='']")
)

// File reads and validates one file. Only the read can fail; parse errors
// are reported through the Report, not the error.
func File(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return Check(path, data), nil
}

// Check validates document data already in memory. path is used only for
// labeling the report.
func Check(path string, data []byte) Report {
	report := Report{Path: path}

	doc, err := xmlquery.Parse(strings.NewReader(string(data)))
	if err != nil {
		report.Problems = append(report.Problems, fmt.Sprintf("not well-formed: %v", err))
		return report
	}
	report.WellFormed = true

	root := xmlquery.FindOne(doc, "/PcGts")
	if root == nil {
		report.Problems = append(report.Problems, "missing PcGts root element")
	} else if root.NamespaceURI != transform.TargetNamespace {
		report.Problems = append(report.Problems,
			fmt.Sprintf("namespace is %q, want %q", root.NamespaceURI, transform.TargetNamespace))
	}

	for _, n := range xmlquery.QuerySelectorAll(doc, regionNoCoords) {
		report.Problems = append(report.Problems,
			fmt.Sprintf("TextRegion %s missing Coords", elementLabel(n)))
	}
	for _, n := range xmlquery.QuerySelectorAll(doc, lineNoCoords) {
		report.Problems = append(report.Problems,
			fmt.Sprintf("TextLine %s missing Coords", elementLabel(n)))
	}
	for _, n := range xmlquery.QuerySelectorAll(doc, lineNoBaseline) {
		report.Problems = append(report.Problems,
			fmt.Sprintf("TextLine %s missing Baseline", elementLabel(n)))
	}
	for range xmlquery.QuerySelectorAll(doc, emptyUnicode) {
		report.Problems = append(report.Problems, "empty Unicode element")
	}

	return report
}

// elementLabel identifies an element by its id attribute when present.
func elementLabel(n *xmlquery.Node) string {
	if id := n.SelectAttr("id"); id != "" {
		return id
	}
	return "(no id)"
}
