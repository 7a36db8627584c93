package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/theuddeshya/Dynasty/internal/codec"
	"github.com/theuddeshya/Dynasty/internal/domain"
	"github.com/theuddeshya/Dynasty/internal/repository"
)

// StoreLocation selects the SQLite dataset store as the source
const StoreLocation = "store"

// ErrUnknownFormat is returned when a source names a format no codec handles
var ErrUnknownFormat = codec.ErrUnknownFormat

// ErrNoStore is returned when the store is selected but none is configured
var ErrNoStore = errors.New("dataset store not configured")

// Source yields the raw dataset
type Source interface {
	Fetch(ctx context.Context) (domain.Dataset, error)
	String() string
}

// NewSource chooses a source for location. "store" selects the dataset
// store, http:// and https:// URLs are fetched, anything else is a file path.
// An empty format is inferred from the location's extension.
func NewSource(location, format string, store repository.Repository) (Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, errors.New("dataset location is empty")
	}

	if location == StoreLocation {
		if store == nil {
			return nil, ErrNoStore
		}
		return &StoreSource{Store: store}, nil
	}

	if format == "" {
		format = codec.FormatFromPath(location)
	}
	c, err := codec.Lookup(format)
	if err != nil {
		return nil, err
	}

	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return &HTTPSource{URL: location, Importer: c}, nil
	}
	return &FileSource{Path: location, Importer: c}, nil
}

// FileSource reads a dataset document from disk
type FileSource struct {
	Path     string
	Importer codec.Importer
}

// Fetch implements Source
func (s *FileSource) Fetch(ctx context.Context) (domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	ds, err := s.Importer.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return ds, nil
}

func (s *FileSource) String() string {
	return s.Path
}

// HTTPSource fetches a dataset document over HTTP
type HTTPSource struct {
	URL      string
	Importer codec.Importer
	Client   *http.Client
}

// DefaultHTTPTimeout bounds a dataset fetch when no client is given
const DefaultHTTPTimeout = 30 * time.Second

// Fetch implements Source
func (s *HTTPSource) Fetch(ctx context.Context) (domain.Dataset, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultHTTPTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("failed to fetch dataset: %s returned %s", s.URL, resp.Status)
	}

	ds, err := s.Importer.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.URL, err)
	}
	return ds, nil
}

func (s *HTTPSource) String() string {
	return s.URL
}

// StoreSource reads the dataset saved in the dataset store
type StoreSource struct {
	Store repository.Repository
}

// Fetch implements Source
func (s *StoreSource) Fetch(ctx context.Context) (domain.Dataset, error) {
	ds, err := s.Store.LoadDataset(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset from store: %w", err)
	}
	return ds, nil
}

func (s *StoreSource) String() string {
	return StoreLocation
}

// StaticSource serves an in-memory dataset, such as one just imported
type StaticSource struct {
	Name    string
	Dataset domain.Dataset
}

// Fetch implements Source
func (s *StaticSource) Fetch(ctx context.Context) (domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.Dataset, nil
}

func (s *StaticSource) String() string {
	return s.Name
}
