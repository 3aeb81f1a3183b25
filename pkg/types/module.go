// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ModuleFile is a tracker module discovered in the input directory. The
// payload is opaque: nothing inspects the module format.
type ModuleFile struct {
	// Path is the filesystem path of the module.
	Path string `json:"path" yaml:"path"`

	// Name is the first dot-separated segment of the filename.
	Name string `json:"name" yaml:"name"`

	// Ext is the last dot-separated segment, lower-cased.
	Ext string `json:"ext" yaml:"ext"`
}

// Header is a rendered header file ready to be written.
type Header struct {
	// Symbol is the identifier declared for the array; <Symbol>_size holds its length.
	Symbol string `json:"symbol" yaml:"symbol"`

	// Size is the number of bytes in the array.
	Size int `json:"size" yaml:"size"`

	// Text is the complete header source.
	Text string `json:"-" yaml:"-"`
}

// Conversion records one module converted to a header.
type Conversion struct {
	Name        string    `json:"name" yaml:"name"`
	Symbol      string    `json:"symbol" yaml:"symbol"`
	SourcePath  string    `json:"source" yaml:"source"`
	HeaderPath  string    `json:"header" yaml:"header"`
	Size        int       `json:"size" yaml:"size"`
	SHA256      string    `json:"sha256" yaml:"sha256"`
	ConvertedAt time.Time `json:"converted_at" yaml:"converted_at"`
}
