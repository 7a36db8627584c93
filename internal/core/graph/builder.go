package graph

import (
	"math/rand/v2"
	"strings"

	"github.com/theuddeshya/Dynasty/internal/domain"
)

// Rendering bounds for freshly built nodes
const (
	MinWeight    = 8.0
	WeightSpread = 4.0
	CanvasWidth  = 800.0
	CanvasHeight = 600.0
)

// Skip reasons reported in BuildResult.Skipped
const (
	ReasonMissingFamilyName = "missing family name"
	ReasonMissingMemberName = "missing member name"
)

// SkippedRecord identifies an input record that could not become a node.
// MemberIndex is -1 when the whole family was skipped.
type SkippedRecord struct {
	GroupIndex  int    `json:"group_index"`
	MemberIndex int    `json:"member_index"`
	Reason      string `json:"reason"`
}

// BuildResult is the canonical graph together with the records left out of it
type BuildResult struct {
	Graph   *domain.Graph
	Skipped []SkippedRecord
}

// Option configures a Builder
type Option func(*Builder)

// WithResolver replaces the default SubstringResolver
func WithResolver(r Resolver) Option {
	return func(b *Builder) {
		if r != nil {
			b.resolver = r
		}
	}
}

// WithPalette sets the canvas palette used for node colors
func WithPalette(p domain.Palette) Option {
	return func(b *Builder) {
		if p != nil {
			b.palette = p
		}
	}
}

// WithSeed makes weights and initial positions reproducible
func WithSeed(seed uint64) Option {
	return func(b *Builder) {
		b.seed = seed
		b.seeded = true
	}
}

// Builder synthesizes the canonical graph from a dataset
type Builder struct {
	resolver Resolver
	palette  domain.Palette
	seed     uint64
	seeded   bool
}

// NewBuilder creates a builder with the default resolver and canvas palette
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		resolver: SubstringResolver{},
		palette:  domain.DefaultCanvasPalette,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Builder) newRand() *rand.Rand {
	if b.seeded {
		return rand.New(rand.NewPCG(b.seed, b.seed))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Build creates the canonical graph. It is safe for concurrent use and never
// fails; an empty dataset yields an empty graph.
func (b *Builder) Build(families domain.Dataset) BuildResult {
	rng := b.newRand()
	result := BuildResult{Graph: domain.NewGraph()}

	// node ids per family, in member order, for the group edge pass
	groups := make([][]int, 0, len(families))

	for gi, family := range families {
		if !family.Valid() {
			result.Skipped = append(result.Skipped, SkippedRecord{
				GroupIndex:  gi,
				MemberIndex: -1,
				Reason:      ReasonMissingFamilyName,
			})
			continue
		}

		var members []int
		for mi, m := range family.Members {
			if !m.Valid() {
				result.Skipped = append(result.Skipped, SkippedRecord{
					GroupIndex:  gi,
					MemberIndex: mi,
					Reason:      ReasonMissingMemberName,
				})
				continue
			}

			category := domain.Classify(m.Profession)
			node := domain.Node{
				ID:          domain.NodeID(gi, mi),
				Name:        strings.TrimSpace(m.Name),
				Profession:  m.Profession,
				Bio:         m.Bio,
				Connections: append([]string{}, m.Connections...),
				Family:      family.Name,
				Category:    category,
				Val:         MinWeight + rng.Float64()*WeightSpread,
				Color:       b.palette.Color(category),
				X:           rng.Float64() * CanvasWidth,
				Y:           rng.Float64() * CanvasHeight,
			}
			members = append(members, len(result.Graph.Nodes))
			result.Graph.Nodes = append(result.Graph.Nodes, node)
		}
		groups = append(groups, members)
	}

	nodes := result.Graph.Nodes

	for _, members := range groups {
		for _, i := range members {
			for _, j := range members {
				if i == j {
					continue
				}
				result.Graph.Links = append(result.Graph.Links, domain.NewGroupEdge(nodes[i].ID, nodes[j].ID))
			}
		}
	}

	candidates := make([]Candidate, len(nodes))
	known := make(map[string]struct{}, len(nodes))
	for i, n := range nodes {
		candidates[i] = Candidate{ID: n.ID, Name: n.Name}
		known[n.ID] = struct{}{}
	}

	for _, n := range nodes {
		for _, text := range n.Connections {
			for _, target := range b.resolver.Resolve(n.ID, text, candidates) {
				if _, ok := known[target]; !ok || target == n.ID {
					continue
				}
				result.Graph.Links = append(result.Graph.Links, domain.NewMentionEdge(n.ID, target, text))
			}
		}
	}

	return result
}
