package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/theuddeshya/Dynasty/internal/domain"
)

// JSONCodec handles the JSON dataset document: a top-level array of families
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return FormatJSON
}

// Parse reads a dataset from JSON. An empty document is an empty dataset.
func (c *JSONCodec) Parse(r io.Reader) (domain.Dataset, error) {
	var ds domain.Dataset
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&ds); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Dataset{}, nil
		}
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if ds == nil {
		ds = domain.Dataset{}
	}
	return ds, nil
}

// Export writes a dataset as indented JSON
func (c *JSONCodec) Export(ds domain.Dataset, w io.Writer) error {
	if ds == nil {
		ds = domain.Dataset{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(ds); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
