// Package codec reads and writes family datasets in the supported formats.
package codec

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/theuddeshya/Dynasty/internal/domain"
)

// Format identifiers
const (
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
)

// ErrUnknownFormat is returned for a format no codec handles
var ErrUnknownFormat = errors.New("unknown dataset format")

// Importer interface for reading a dataset from a format
type Importer interface {
	Parse(r io.Reader) (domain.Dataset, error)
	Format() string
}

// Exporter interface for writing a dataset to a format
type Exporter interface {
	Export(ds domain.Dataset, w io.Writer) error
	Format() string
}

// Codec both reads and writes a format
type Codec interface {
	Importer
	Exporter
}

var registry = map[string]Codec{
	FormatJSON:     NewJSONCodec(),
	FormatYAML:     NewYAMLCodec(),
	FormatMarkdown: NewMarkdownCodec(),
}

var aliases = map[string]string{
	"yml": FormatYAML,
	"md":  FormatMarkdown,
	"txt": FormatMarkdown,
}

// Normalize maps a format name or alias to its identifier
func Normalize(format string) string {
	f := strings.ToLower(strings.TrimSpace(format))
	if canonical, ok := aliases[f]; ok {
		return canonical
	}
	return f
}

// Lookup returns the codec for a format name or alias
func Lookup(format string) (Codec, error) {
	c, ok := registry[Normalize(format)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return c, nil
}

// Formats lists the registered format identifiers
func Formats() []string {
	formats := make([]string, 0, len(registry))
	for f := range registry {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}

// FormatFromPath infers the format from a file name or URL path. Unknown
// extensions fall back to JSON.
func FormatFromPath(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if i := strings.IndexAny(ext, "?#"); i >= 0 {
		ext = ext[:i]
	}
	if _, ok := registry[Normalize(ext)]; ok {
		return Normalize(ext)
	}
	return FormatJSON
}
