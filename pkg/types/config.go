// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DefaultPerLine is the number of byte values written on each line of a
// generated header.
const DefaultPerLine = 64

// DefaultExtension is the module-file extension matched when none is configured.
const DefaultExtension = "xm"

// ConvertConfig holds settings for the convert stage.
type ConvertConfig struct {
	// InputDir is the directory scanned for module files. It is required.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputDir receives the generated headers. Empty means InputDir.
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`

	// Extensions lists the lower-case file extensions to convert (default ["xm"]).
	Extensions []string `json:"extensions" yaml:"extensions"`

	// PerLine is the number of byte values per line in the array body (default 64).
	PerLine int `json:"per_line" yaml:"per_line"`

	// Sanitize maps base names to valid C identifiers for the declared symbols.
	Sanitize bool `json:"sanitize" yaml:"sanitize"`

	// ManifestPath, when set, receives a YAML manifest of the batch.
	ManifestPath string `json:"manifest,omitempty" yaml:"manifest,omitempty"`
}

// CatalogConfig holds settings for the conversion catalog.
type CatalogConfig struct {
	// Path is the SQLite database file. Empty disables the catalog.
	Path string `json:"path" yaml:"path"`
}

// Enabled reports whether a catalog database is configured.
func (c CatalogConfig) Enabled() bool {
	return c.Path != ""
}
