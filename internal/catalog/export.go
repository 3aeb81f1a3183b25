// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

const exportLimit = 100000

// ExportYAML writes the conversions matching opts to path as YAML.
func (s *Store) ExportYAML(ctx context.Context, path string, opts ListOptions) error {
	opts.Limit = exportLimit
	entries, err := s.List(ctx, opts)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the conversions matching opts to path as indented JSON.
func (s *Store) ExportJSON(ctx context.Context, path string, opts ListOptions) error {
	opts.Limit = exportLimit
	entries, err := s.List(ctx, opts)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
