package render

import (
	"slices"
	"strings"

	"github.com/matzehuels/modgraph/pkg/errors"
)

// Format is an output format name.
type Format string

const (
	FormatDOT  Format = "dot"
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatJPG  Format = "jpg"
	FormatJSON Format = "json"
)

// Formats lists every supported format.
var Formats = []Format{FormatDOT, FormatSVG, FormatPNG, FormatJPG, FormatJSON}

// ParseFormat validates a format name (case-insensitive, "jpeg" accepted).
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if f == "jpeg" {
		f = FormatJPG
	}
	if !slices.Contains(Formats, f) {
		return "", errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %s (must be 'dot', 'svg', 'png', 'jpg' or 'json')", s)
	}
	return f, nil
}

// Binary reports whether output in f is not text.
func (f Format) Binary() bool { return f == FormatPNG || f == FormatJPG }

// Rasterised reports whether f needs Graphviz layout.
func (f Format) Rasterised() bool { return f == FormatSVG || f.Binary() }

// Ext returns the file extension for f, with the leading dot.
func (f Format) Ext() string { return "." + string(f) }
