package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/theuddeshya/Dynasty/internal/codec"
	"github.com/theuddeshya/Dynasty/internal/core/graph"
	"github.com/theuddeshya/Dynasty/internal/domain"
	"github.com/theuddeshya/Dynasty/internal/loader"
	"github.com/theuddeshya/Dynasty/internal/logger"
	"github.com/theuddeshya/Dynasty/internal/metrics"
	"github.com/theuddeshya/Dynasty/internal/repository"
)

var (
	// ErrNodeNotFound is returned for an id absent from the canonical graph
	ErrNodeNotFound = errors.New("node not found")
	// ErrClosed is returned by operations on a closed service
	ErrClosed = errors.New("service closed")
	// ErrSuperseded is returned by a load that a newer load replaced
	ErrSuperseded = errors.New("load superseded")
	// ErrNoSource is returned by Reload when no dataset source is configured
	ErrNoSource = errors.New("no dataset source configured")
)

// LoadState is the lifecycle state of the dataset
type LoadState string

const (
	StateIdle    LoadState = "idle"
	StateLoading LoadState = "loading"
	StateReady   LoadState = "ready"
	StateFailed  LoadState = "failed"
)

// LoadStatus reports the outcome of the most recent load
type LoadStatus struct {
	State      LoadState `json:"state"`
	Source     string    `json:"source"`
	Error      string    `json:"error,omitempty"`
	Generation uint64    `json:"generation"`
	LoadedAt   time.Time `json:"loaded_at,omitzero"`
	DurationMS int64     `json:"duration_ms"`
	Nodes      int       `json:"nodes"`
	Links      int       `json:"links"`
	Skipped    int       `json:"skipped"`
}

// CategoryInfo is one legend entry
type CategoryInfo struct {
	Category    domain.Category `json:"category"`
	Keywords    []string        `json:"keywords"`
	CanvasColor string          `json:"canvas_color"`
	BadgeColor  string          `json:"badge_color"`
}

// NodeRef is a short reference to another node
type NodeRef struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Profession string `json:"profession"`
}

// NodeDetail is a node with its neighbourhood, for the info card
type NodeDetail struct {
	Node      domain.Node   `json:"node"`
	Mentions  []domain.Edge `json:"mentions"`
	Relatives []NodeRef     `json:"relatives"`
}

// Options configures an ExplorerService
type Options struct {
	Source        loader.Source
	Loader        *loader.Loader
	Store         repository.Repository
	EventBus      *EventBus
	Metrics       *metrics.Registry
	CacheSize     int
	CanvasPalette domain.Palette
	BadgePalette  domain.Palette
}

// ExplorerService holds the canonical graph of the current dataset and serves
// derived graphs from it
type ExplorerService struct {
	source   loader.Source
	loader   *loader.Loader
	store    repository.Repository
	eventBus *EventBus
	metrics  *metrics.Registry
	canvas   domain.Palette
	badge    domain.Palette

	mu        sync.RWMutex
	snapshot  *loader.Snapshot
	status    LoadStatus
	applied   LoadStatus // status of the current snapshot
	cache     *graph.FilterCache
	positions map[string]domain.NodePosition

	loadMu sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	closed bool
}

// NewExplorerService creates a service serving an empty graph until the
// first load completes
func NewExplorerService(opts Options) *ExplorerService {
	if opts.Loader == nil {
		opts.Loader = loader.New(nil)
	}
	if opts.CanvasPalette == nil {
		opts.CanvasPalette = domain.DefaultCanvasPalette
	}
	if opts.BadgePalette == nil {
		opts.BadgePalette = domain.DefaultBadgePalette
	}

	empty := loader.EmptySnapshot()
	source := ""
	if opts.Source != nil {
		source = opts.Source.String()
	}

	return &ExplorerService{
		source:    opts.Source,
		loader:    opts.Loader,
		store:     opts.Store,
		eventBus:  opts.EventBus,
		metrics:   opts.Metrics,
		canvas:    opts.CanvasPalette,
		badge:     opts.BadgePalette,
		snapshot:  empty,
		status:    LoadStatus{State: StateIdle, Source: source},
		applied:   LoadStatus{State: StateIdle, Source: source},
		cache:     graph.NewFilterCache(empty.Graph, opts.CacheSize),
		positions: make(map[string]domain.NodePosition),
	}
}

// Reload loads the configured source and replaces the current dataset. A
// reload started later supersedes this one; its result is then discarded
// and ErrSuperseded returned.
func (s *ExplorerService) Reload(ctx context.Context) error {
	if s.source == nil {
		return ErrNoSource
	}
	return s.load(ctx, s.source)
}

func (s *ExplorerService) load(ctx context.Context, src loader.Source) error {
	s.loadMu.Lock()
	if s.closed {
		s.loadMu.Unlock()
		return ErrClosed
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	gen := s.gen
	loadCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	// set under loadMu so a stale load cannot overwrite a newer status
	s.mu.Lock()
	s.status.State = StateLoading
	s.status.Source = src.String()
	s.status.Generation = gen
	s.mu.Unlock()
	s.loadMu.Unlock()
	defer cancel()

	logger.Info("Loading dataset", "source", src.String(), "generation", gen)
	start := time.Now()
	snap, err := s.loader.Load(loadCtx, src)

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	if s.closed || gen != s.gen {
		logger.Debug("Discarding superseded dataset load", "source", src.String(), "generation", gen)
		s.metrics.RecordLoad("superseded", time.Since(start))
		if s.closed {
			return ErrClosed
		}
		return ErrSuperseded
	}
	s.cancel = nil

	// The caller gave up; the previous dataset stays in place.
	if err != nil && errors.Is(err, context.Canceled) {
		logger.Debug("Dataset load aborted", "source", src.String(), "generation", gen)
		s.metrics.RecordLoad("aborted", time.Since(start))
		s.mu.Lock()
		s.status = s.applied
		s.mu.Unlock()
		return err
	}

	if err != nil {
		logger.Error("Failed to load dataset", "source", src.String(), "err", err)
		s.metrics.RecordLoad("failure", time.Since(start))
		s.apply(loader.EmptySnapshot(), LoadStatus{
			State:      StateFailed,
			Source:     src.String(),
			Error:      err.Error(),
			Generation: gen,
			DurationMS: time.Since(start).Milliseconds(),
		})
		s.metrics.UpdateGraphMetrics(0, 0, 0, 0)
		s.eventBus.Publish(Event{
			Type:    EventDatasetLoadFailed,
			Payload: map[string]string{"source": src.String(), "error": err.Error()},
		})
		return err
	}

	status := LoadStatus{
		State:      StateReady,
		Source:     snap.Source,
		Generation: gen,
		LoadedAt:   snap.LoadedAt,
		DurationMS: snap.Duration.Milliseconds(),
		Nodes:      len(snap.Graph.Nodes),
		Links:      len(snap.Graph.Links),
		Skipped:    len(snap.Skipped),
	}
	s.apply(snap, status)
	s.metrics.RecordLoad("success", snap.Duration)
	s.metrics.UpdateGraphMetrics(
		len(snap.Graph.Nodes),
		snap.Graph.CountEdges(domain.EdgeTypeGroup),
		snap.Graph.CountEdges(domain.EdgeTypeResolvedMention),
		len(snap.Skipped),
	)
	logger.Info("Dataset loaded",
		"source", snap.Source,
		"families", len(snap.Dataset),
		"nodes", status.Nodes,
		"links", status.Links,
		"duration", snap.Duration,
	)
	s.eventBus.Publish(Event{Type: EventDatasetLoaded, Payload: status})
	return nil
}

// apply swaps in a snapshot; the caller holds loadMu
func (s *ExplorerService) apply(snap *loader.Snapshot, status LoadStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snap
	s.status = status
	s.applied = status
	s.positions = make(map[string]domain.NodePosition)
	s.cache.Reset(snap.Graph)
}

// Close cancels an in-flight load and rejects further loads
func (s *ExplorerService) Close() error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	return nil
}

// Status returns the state of the most recent load
func (s *ExplorerService) Status() LoadStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *ExplorerService) current() *loader.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Graph returns the derived graph for criteria with the session's renderer
// positions applied
func (s *ExplorerService) Graph(ctx context.Context, criteria graph.Criteria) (*domain.GraphView, error) {
	if err := validateCriteria(criteria); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	s.mu.RLock()
	snap := s.snapshot
	derived, result := s.cache.Filter(criteria)
	for i := range derived.Nodes {
		if pos, ok := s.positions[derived.Nodes[i].ID]; ok {
			pos.Apply(&derived.Nodes[i])
		}
	}
	s.mu.RUnlock()
	s.metrics.RecordFilter(string(result), time.Since(start))

	return &domain.GraphView{
		Nodes: derived.Nodes,
		Links: derived.Links,
		Stats: snap.Stats(derived),
	}, nil
}

// Facets returns the filter panel option lists
func (s *ExplorerService) Facets() graph.Facets {
	snap := s.current()
	return snap.Facets
}

// Categories returns the legend in display order
func (s *ExplorerService) Categories() []CategoryInfo {
	cats := domain.Categories()
	out := make([]CategoryInfo, 0, len(cats))
	for _, c := range cats {
		keywords := c.Keywords()
		if keywords == nil {
			keywords = []string{}
		}
		out = append(out, CategoryInfo{
			Category:    c,
			Keywords:    keywords,
			CanvasColor: s.canvas.Color(c),
			BadgeColor:  s.badge.Color(c),
		})
	}
	return out
}

// Node returns a node with its resolved mentions and family members
func (s *ExplorerService) Node(ctx context.Context, id string) (*NodeDetail, error) {
	s.mu.RLock()
	snap := s.snapshot
	pos, moved := s.positions[id]
	s.mu.RUnlock()

	node, ok := snap.Graph.NodeByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	node = node.Clone()
	if moved {
		pos.Apply(&node)
	}

	detail := &NodeDetail{Node: node, Mentions: []domain.Edge{}, Relatives: []NodeRef{}}
	for _, e := range snap.Graph.Links {
		switch {
		case e.Type == domain.EdgeTypeResolvedMention && (e.Source == id || e.Target == id):
			detail.Mentions = append(detail.Mentions, e)
		case e.Type == domain.EdgeTypeGroup && e.Source == id:
			if mate, ok := snap.Graph.NodeByID(e.Target); ok {
				detail.Relatives = append(detail.Relatives, NodeRef{ID: mate.ID, Name: mate.Name, Profession: mate.Profession})
			}
		}
	}
	return detail, nil
}

// UpdatePositions records renderer positions for the current dataset. Ids
// not in the canonical graph are ignored; the number applied is returned.
func (s *ExplorerService) UpdatePositions(ctx context.Context, patches []PositionPatch) (int, error) {
	if err := validatePositions(patches); err != nil {
		return 0, err
	}

	s.mu.Lock()
	ids := s.snapshot.Graph.NodeIDs()
	applied := 0
	for _, p := range patches {
		if _, ok := ids[p.NodeID]; !ok {
			continue
		}
		s.positions[p.NodeID] = p.toDomain()
		applied++
	}
	s.mu.Unlock()

	if applied > 0 {
		s.eventBus.Publish(Event{
			Type:    EventPositionsUpdated,
			Payload: map[string]int{"count": applied},
		})
	}
	return applied, nil
}

// Positions returns the session's renderer positions
func (s *ExplorerService) Positions() []domain.NodePosition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.NodePosition, 0, len(s.positions))
	for _, n := range s.snapshot.Graph.Nodes {
		if pos, ok := s.positions[n.ID]; ok {
			out = append(out, pos)
		}
	}
	return out
}

// Import replaces the session dataset with a document in format. When a
// dataset store is configured the dataset is saved there first.
func (s *ExplorerService) Import(ctx context.Context, format string, r io.Reader) (LoadStatus, error) {
	if err := validateFormat(format); err != nil {
		return LoadStatus{}, err
	}
	c, err := codec.Lookup(format)
	if err != nil {
		return LoadStatus{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	ds, err := c.Parse(r)
	if err != nil {
		return LoadStatus{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	name := "import:" + c.Format()
	if err := ctx.Err(); err != nil {
		return s.Status(), err
	}
	if s.store != nil {
		if err := s.store.SaveDataset(ctx, ds, name); err != nil {
			return LoadStatus{}, fmt.Errorf("failed to persist imported dataset: %w", err)
		}
	}

	if err := s.load(ctx, &loader.StaticSource{Name: name, Dataset: ds}); err != nil {
		return s.Status(), err
	}
	return s.Status(), nil
}

// Export writes the current dataset in format
func (s *ExplorerService) Export(ctx context.Context, format string, w io.Writer) error {
	c, err := codec.Lookup(format)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	snap := s.current()
	return c.Export(snap.Dataset, w)
}
