package repository

import (
	"context"
	"errors"
	"time"

	"github.com/theuddeshya/Dynasty/internal/domain"
)

// ErrEmptyStore is returned when loading from a store nothing was saved to
var ErrEmptyStore = errors.New("dataset store is empty")

// Stats summarizes the stored dataset
type Stats struct {
	Families    int       `json:"families"`
	Members     int       `json:"members"`
	Connections int       `json:"connections"`
	Source      string    `json:"source,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`
}

// Repository persists the raw dataset. Records are stored in input order,
// malformed ones included, so node ids derived from a stored dataset match
// the ones derived from the original document.
type Repository interface {
	// SaveDataset atomically replaces the stored dataset
	SaveDataset(ctx context.Context, ds domain.Dataset, source string) error
	// LoadDataset returns the stored dataset in input order
	LoadDataset(ctx context.Context) (domain.Dataset, error)
	Stats(ctx context.Context) (Stats, error)
	Close() error
}
