package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/theuddeshya/Dynasty/internal/domain"
)

func TestExtractFacets(t *testing.T) {
	ds := domain.Dataset{
		{Name: "Kapoor", Members: []domain.Member{
			{Name: "Raj Kapoor", Profession: "Actor"},
			{Name: "Prithviraj Kapoor", Profession: "Actor"},
			{Name: "Krishna Kapoor", Profession: "  "},
		}},
		{Name: "Akhtar", Members: []domain.Member{
			{Name: "Javed Akhtar", Profession: "Poet"},
			{Name: "Zoya Akhtar", Profession: "Director"},
			{Name: "", Profession: "Ghost"},
		}},
		{Name: "", Members: []domain.Member{{Name: "Nobody", Profession: "Producer"}}},
		{Name: "Empty"},
	}

	facets := ExtractFacets(ds)

	assert.Equal(t, []string{"Akhtar", "Empty", "Kapoor"}, facets.Groups)
	assert.Equal(t, []string{"Actor", "Director", "Poet"}, facets.Professions)
}

func TestExtractFacets_Empty(t *testing.T) {
	facets := ExtractFacets(nil)
	assert.NotNil(t, facets.Groups)
	assert.NotNil(t, facets.Professions)
	assert.Empty(t, facets.Groups)
	assert.Empty(t, facets.Professions)
}

func TestExtractFacets_MatchesNodeProfessions(t *testing.T) {
	ds := domain.Dataset{{Name: "X", Members: []domain.Member{{Name: "A", Profession: " Actor "}}}}

	facets := ExtractFacets(ds)
	g := NewBuilder().Build(ds).Graph

	assert.Equal(t, []string{" Actor "}, facets.Professions)
	filtered := Filter(g, Criteria{Professions: facets.Professions})
	assert.Len(t, filtered.Nodes, 1)
}
