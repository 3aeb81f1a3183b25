// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package header renders tracker modules as C byte-array headers.
package header

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/tracker-embed/pkg/types"
)

// Banner is the first line of every generated header.
const Banner = "// Tracker module as byte array"

// ErrMalformedName is returned by ParseName for filenames that do not
// split into a base name and an extension.
var ErrMalformedName = errors.New("filename has no extension")

// ParseName splits filename on '.' and returns the first segment as the base
// name and the last segment, lower-cased, as the extension. Middle segments
// are dropped: "song.v2.XM" yields ("song", "xm").
func ParseName(filename string) (name, ext string, err error) {
	parts := strings.Split(filename, ".")
	if len(parts) < 2 {
		return "", "", fmt.Errorf("%s: %w", filename, ErrMalformedName)
	}
	name = parts[0]
	if name == "" {
		return "", "", fmt.Errorf("%s: %w", filename, ErrMalformedName)
	}
	return name, strings.ToLower(parts[len(parts)-1]), nil
}

// Symbol maps name to a valid C identifier. Bytes outside [A-Za-z0-9_]
// become '_' and a leading digit gets a '_' prefix.
func Symbol(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 1)
	if name != "" && name[0] >= '0' && name[0] <= '9' {
		b.WriteByte('_')
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
			b.WriteByte(c)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Render produces the header declaring symbol_size and symbol[] for data.
// Values are written as %3d, comma-separated, with a line break after every
// perLine values. A perLine below 1 uses types.DefaultPerLine.
func Render(symbol string, data []byte, perLine int) types.Header {
	if perLine < 1 {
		perLine = types.DefaultPerLine
	}

	var b strings.Builder
	// Each value takes at most four bytes plus the occasional newline.
	b.Grow(128 + len(symbol)*2 + len(data)*4 + len(data)/perLine)

	b.WriteString(Banner)
	b.WriteByte('\n')
	fmt.Fprintf(&b, "const uint32_t %s_size = %d;\n", symbol, len(data))
	fmt.Fprintf(&b, "const char %s[] = {\n", symbol)
	writeValues(&b, data, perLine)
	b.WriteString("};\n")

	return types.Header{
		Symbol: symbol,
		Size:   len(data),
		Text:   b.String(),
	}
}

func writeValues(b *strings.Builder, data []byte, perLine int) {
	for i, v := range data {
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteByte(',')
		}
		fmt.Fprintf(b, "%3d", v)
		if (i+1)%perLine == 0 {
			b.WriteByte('\n')
		}
	}
}
