package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theuddeshya/Dynasty/internal/domain"
)

func sampleGraph() *domain.Graph {
	ds := domain.Dataset{
		{Name: "Kapoor", Members: []domain.Member{
			{Name: "Raj Kapoor", Profession: "Actor", Connections: []string{"father of Randhir Kapoor"}},
			{Name: "Randhir Kapoor", Profession: "Actor"},
		}},
		{Name: "Akhtar", Members: []domain.Member{
			{Name: "Javed Akhtar", Profession: "Poet"},
			{Name: "Zoya Akhtar", Profession: "Director", Connections: []string{"daughter of Javed Akhtar"}},
		}},
	}
	return NewBuilder(WithSeed(3)).Build(ds).Graph
}

func TestFilter_SearchExample(t *testing.T) {
	g := &domain.Graph{
		Nodes: []domain.Node{
			{ID: "0-0", Name: "A", Profession: "Actor", Family: "F1"},
			{ID: "1-0", Name: "B", Profession: "Director", Family: "F2"},
		},
		Links: []domain.Edge{},
	}

	out := Filter(g, Criteria{Search: "director"})

	require.Len(t, out.Nodes, 1)
	assert.Equal(t, "1-0", out.Nodes[0].ID)
	assert.Empty(t, out.Links)
}

func TestFilter_FacetConjunction(t *testing.T) {
	g := sampleGraph()

	out := Filter(g, Criteria{Groups: []string{"Kapoor"}, Professions: []string{"Director"}})
	assert.Empty(t, out.Nodes)
	assert.Empty(t, out.Links)

	out = Filter(g, Criteria{Groups: []string{"Akhtar"}, Professions: []string{"Director"}})
	require.Len(t, out.Nodes, 1)
	assert.Equal(t, "Zoya Akhtar", out.Nodes[0].Name)
}

func TestFilter_Search(t *testing.T) {
	g := sampleGraph()

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"by name", "randhir", []string{"0-1"}},
		{"by profession", "POET", []string{"1-0"}},
		{"by family", "akhtar", []string{"1-0", "1-1"}},
		{"trimmed", "  zoya  ", []string{"1-1"}},
		{"whitespace only is no constraint", "   ", []string{"0-0", "0-1", "1-0", "1-1"}},
		{"no match", "bachchan", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Filter(g, Criteria{Search: tt.search})
			var ids []string
			for _, n := range out.Nodes {
				ids = append(ids, n.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilter_EdgesNeedBothEnds(t *testing.T) {
	g := sampleGraph()

	out := Filter(g, Criteria{Search: "raj"})
	require.Len(t, out.Nodes, 1)
	assert.Empty(t, out.Links, "links to Randhir must be pruned")

	out = Filter(g, Criteria{Groups: []string{"Kapoor"}})
	assert.Len(t, out.Nodes, 2)
	assert.Equal(t, 2, out.CountEdges(domain.EdgeTypeGroup))
	assert.Equal(t, 1, out.CountEdges(domain.EdgeTypeResolvedMention))
}

func TestFilter_EmptyCriteriaReturnsCanonical(t *testing.T) {
	g := sampleGraph()
	assert.Equal(t, g, Filter(g, Criteria{}))
	assert.Equal(t, g, Filter(g, Criteria{Search: " ", Groups: []string{}, Professions: nil}))
}

func TestFilter_DoesNotAliasCanonical(t *testing.T) {
	g := sampleGraph()
	out := Filter(g, Criteria{})

	out.Nodes[0].X = -1
	out.Nodes[0].Connections[0] = "mutated"
	out.Links[0].Source = "mutated"

	assert.NotEqual(t, -1.0, g.Nodes[0].X)
	assert.Equal(t, "father of Randhir Kapoor", g.Nodes[0].Connections[0])
	assert.NotEqual(t, "mutated", g.Links[0].Source)
}

func TestFilter_NilGraph(t *testing.T) {
	out := Filter(nil, Criteria{Search: "x"})
	require.NotNil(t, out)
	assert.Empty(t, out.Nodes)
}

func TestCriteriaKey(t *testing.T) {
	a := Criteria{Search: " Kapoor ", Groups: []string{"B", "A", "A"}, Professions: []string{"Actor"}}
	b := Criteria{Search: "kapoor", Groups: []string{"A", "B"}, Professions: []string{"Actor", "Actor"}}
	c := Criteria{Search: "kapoor", Groups: []string{"A"}, Professions: []string{"B", "Actor"}}

	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
	assert.NotEqual(t,
		Criteria{Groups: []string{"a\x1fb"}}.Key(),
		Criteria{Groups: []string{"a", "b"}}.Key(),
		"separator bytes inside a value")
	assert.NotEqual(t,
		Criteria{Groups: []string{"a"}}.Key(),
		Criteria{Professions: []string{"a"}}.Key())
	assert.NotEqual(t,
		Criteria{Search: "x\x00"}.Key(),
		Criteria{Search: "x", Groups: []string{""}}.Key())
	assert.True(t, Criteria{Search: "  "}.IsEmpty())
	assert.False(t, a.IsEmpty())
}

func TestCriteriaMatch(t *testing.T) {
	n := domain.Node{Name: "Zoya Akhtar", Profession: "Director", Family: "Akhtar"}
	assert.True(t, Criteria{Search: "ZOYA"}.Match(n))
	assert.True(t, Criteria{Professions: []string{"Director"}}.Match(n))
	assert.False(t, Criteria{Professions: []string{"director"}}.Match(n), "facets match exactly")
}
