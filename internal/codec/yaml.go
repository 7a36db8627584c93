package codec

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/theuddeshya/Dynasty/internal/domain"
)

// YAMLCodec handles the YAML dataset document, a sequence of families using
// the same keys as the JSON form
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return FormatYAML
}

// Parse reads a dataset from YAML. An empty document is an empty dataset.
func (c *YAMLCodec) Parse(r io.Reader) (domain.Dataset, error) {
	var ds domain.Dataset
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&ds); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Dataset{}, nil
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if ds == nil {
		ds = domain.Dataset{}
	}
	return ds, nil
}

// Export writes a dataset as YAML
func (c *YAMLCodec) Export(ds domain.Dataset, w io.Writer) error {
	if ds == nil {
		ds = domain.Dataset{}
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(ds); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to flush YAML: %w", err)
	}

	return nil
}
