// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pagexml-convert/pkg/types"
)

// WriteReport serializes a batch report as YAML into dir/name. Directory
// runs call this after the batch so the output folder carries a manifest of
// what was converted and why anything was skipped or failed.
func WriteReport(report types.BatchReport, dir, name string) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
