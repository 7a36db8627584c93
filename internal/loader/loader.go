package loader

import (
	"context"
	"fmt"
	"time"

	"github.com/theuddeshya/Dynasty/internal/core/graph"
	"github.com/theuddeshya/Dynasty/internal/domain"
	"github.com/theuddeshya/Dynasty/internal/logger"
)

// Snapshot is the immutable result of one dataset load
type Snapshot struct {
	Dataset  domain.Dataset
	Graph    *domain.Graph
	Facets   graph.Facets
	Skipped  []graph.SkippedRecord
	Source   string
	LoadedAt time.Time
	Duration time.Duration
}

// EmptySnapshot is served before the first load completes and after a load
// fails
func EmptySnapshot() *Snapshot {
	return &Snapshot{
		Dataset: domain.Dataset{},
		Graph:   domain.NewGraph(),
		Facets:  graph.Facets{Groups: []string{}, Professions: []string{}},
	}
}

// Stats summarizes a derived graph against this snapshot
func (s *Snapshot) Stats(derived *domain.Graph) domain.Stats {
	stats := domain.Stats{
		Families:   len(s.Dataset),
		Members:    s.Dataset.MemberCount(),
		TotalNodes: len(s.Graph.Nodes),
		TotalLinks: len(s.Graph.Links),
		Skipped:    len(s.Skipped),
	}
	if derived != nil {
		stats.FilteredNodes = len(derived.Nodes)
		stats.FilteredLinks = len(derived.Links)
	}
	return stats
}

// Loader turns dataset sources into snapshots
type Loader struct {
	builder *graph.Builder
}

// New creates a loader building graphs with builder
func New(builder *graph.Builder) *Loader {
	if builder == nil {
		builder = graph.NewBuilder()
	}
	return &Loader{builder: builder}
}

// Load fetches and builds a snapshot. A cancelled context aborts the fetch;
// the build itself does not block.
func (l *Loader) Load(ctx context.Context, src Source) (*Snapshot, error) {
	start := time.Now()

	ds, err := src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset from %s: %w", src, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap := l.Build(ds, src.String())
	snap.Duration = time.Since(start)
	return snap, nil
}

// Build creates a snapshot from an in-memory dataset
func (l *Loader) Build(ds domain.Dataset, source string) *Snapshot {
	if ds == nil {
		ds = domain.Dataset{}
	}
	result := l.builder.Build(ds)

	if n := len(result.Skipped); n > 0 {
		first := result.Skipped[0]
		logger.Warn("Skipped malformed records",
			"source", source,
			"count", n,
			"first", domain.NodeID(first.GroupIndex, first.MemberIndex),
			"reason", first.Reason,
		)
	}

	return &Snapshot{
		Dataset:  ds,
		Graph:    result.Graph,
		Facets:   graph.ExtractFacets(ds),
		Skipped:  result.Skipped,
		Source:   source,
		LoadedAt: time.Now(),
	}
}
