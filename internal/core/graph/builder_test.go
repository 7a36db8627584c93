package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theuddeshya/Dynasty/internal/domain"
)

func kapoorDataset() domain.Dataset {
	return domain.Dataset{
		{
			Name: "Kapoor",
			Members: []domain.Member{
				{Name: "Raj Kapoor", Profession: "Actor", Connections: []string{"father of Randhir Kapoor"}},
				{Name: "Randhir Kapoor", Profession: "Actor", Connections: []string{}},
			},
		},
	}
}

func TestBuild_KapoorExample(t *testing.T) {
	result := NewBuilder(WithSeed(1)).Build(kapoorDataset())
	g := result.Graph

	require.Len(t, g.Nodes, 2)
	assert.Empty(t, result.Skipped)
	assert.Equal(t, "0-0", g.Nodes[0].ID)
	assert.Equal(t, "0-1", g.Nodes[1].ID)

	assert.Equal(t, 2, g.CountEdges(domain.EdgeTypeGroup))
	assert.Equal(t, domain.NewGroupEdge("0-0", "0-1"), g.Links[0])
	assert.Equal(t, domain.NewGroupEdge("0-1", "0-0"), g.Links[1])

	require.Equal(t, 1, g.CountEdges(domain.EdgeTypeResolvedMention))
	mention := g.Links[2]
	assert.Equal(t, "0-0", mention.Source)
	assert.Equal(t, "0-1", mention.Target)
	assert.Equal(t, "father of Randhir Kapoor", mention.Relationship)
	assert.Equal(t, domain.MentionStrength, mention.Strength)
	assert.Equal(t, domain.MentionEdgeColor, mention.Color)
}

func TestBuild_NodeAttributes(t *testing.T) {
	g := NewBuilder(WithSeed(7)).Build(kapoorDataset()).Graph

	for _, n := range g.Nodes {
		assert.Equal(t, "Kapoor", n.Family)
		assert.Equal(t, domain.CategoryPerformer, n.Category)
		assert.Equal(t, "#e74c3c", n.Color)
		assert.GreaterOrEqual(t, n.Val, MinWeight)
		assert.Less(t, n.Val, MinWeight+WeightSpread)
		assert.GreaterOrEqual(t, n.X, 0.0)
		assert.Less(t, n.X, CanvasWidth)
		assert.GreaterOrEqual(t, n.Y, 0.0)
		assert.Less(t, n.Y, CanvasHeight)
	}
}

func TestBuild_SeedIsReproducible(t *testing.T) {
	a := NewBuilder(WithSeed(42)).Build(kapoorDataset()).Graph
	b := NewBuilder(WithSeed(42)).Build(kapoorDataset()).Graph
	assert.Equal(t, a, b)
}

func TestBuild_CopiesConnections(t *testing.T) {
	ds := kapoorDataset()
	g := NewBuilder().Build(ds).Graph

	g.Nodes[0].Connections[0] = "changed"
	assert.Equal(t, "father of Randhir Kapoor", ds[0].Members[0].Connections[0])
}

func TestBuild_EmptyDataset(t *testing.T) {
	for name, ds := range map[string]domain.Dataset{"nil": nil, "empty": {}} {
		t.Run(name, func(t *testing.T) {
			result := NewBuilder().Build(ds)
			require.NotNil(t, result.Graph)
			assert.Empty(t, result.Graph.Nodes)
			assert.Empty(t, result.Graph.Links)
			assert.Empty(t, result.Skipped)
		})
	}
}

func TestBuild_SkipsMalformedRecords(t *testing.T) {
	ds := domain.Dataset{
		{Name: "", Members: []domain.Member{{Name: "Orphan"}}},
		{
			Name: "Bachchan",
			Members: []domain.Member{
				{Name: "Amitabh Bachchan", Profession: "Actor"},
				{Name: "   ", Profession: "Actor"},
				{Name: "Jaya Bachchan", Profession: "Actress, Politician"},
			},
		},
	}

	result := NewBuilder().Build(ds)

	require.Len(t, result.Graph.Nodes, 2)
	assert.Equal(t, "1-0", result.Graph.Nodes[0].ID)
	assert.Equal(t, "1-2", result.Graph.Nodes[1].ID, "ids keep their input positions")
	assert.Equal(t, 2, result.Graph.CountEdges(domain.EdgeTypeGroup))

	assert.Equal(t, []SkippedRecord{
		{GroupIndex: 0, MemberIndex: -1, Reason: ReasonMissingFamilyName},
		{GroupIndex: 1, MemberIndex: 1, Reason: ReasonMissingMemberName},
	}, result.Skipped)
}

func TestBuild_DuplicateMentionsAreKept(t *testing.T) {
	ds := domain.Dataset{
		{Name: "A", Members: []domain.Member{
			{Name: "Alpha", Connections: []string{"brother of Beta", "works with Beta"}},
		}},
		{Name: "B", Members: []domain.Member{{Name: "Beta"}}},
	}

	g := NewBuilder().Build(ds).Graph

	assert.Equal(t, 0, g.CountEdges(domain.EdgeTypeGroup))
	require.Equal(t, 2, g.CountEdges(domain.EdgeTypeResolvedMention))
	assert.Equal(t, "brother of Beta", g.Links[0].Relationship)
	assert.Equal(t, "works with Beta", g.Links[1].Relationship)
}

func TestBuild_CustomResolver(t *testing.T) {
	resolver := ResolverFunc(func(sourceID, text string, candidates []Candidate) []string {
		// returns itself and an unknown id, both must be dropped
		return []string{sourceID, "9-9", "0-1"}
	})

	g := NewBuilder(WithResolver(resolver)).Build(kapoorDataset()).Graph

	for _, e := range g.Links {
		assert.NotEqual(t, e.Source, e.Target)
		assert.NotEqual(t, "9-9", e.Target)
	}
	assert.Equal(t, 1, g.CountEdges(domain.EdgeTypeResolvedMention))
}

func TestBuild_CustomPalette(t *testing.T) {
	palette := domain.DefaultCanvasPalette.WithOverrides(map[string]string{"performer": "#111111"})
	g := NewBuilder(WithPalette(palette)).Build(kapoorDataset()).Graph
	assert.Equal(t, "#111111", g.Nodes[0].Color)
}
