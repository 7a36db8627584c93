package graph

import (
	"strings"

	"github.com/tidwall/btree"

	"github.com/theuddeshya/Dynasty/internal/domain"
)

// Facets holds the sorted, distinct option lists for the filter panels
type Facets struct {
	Groups      []string `json:"groups"`
	Professions []string `json:"professions"`
}

func stringLess(a, b string) bool { return a < b }

// ExtractFacets collects family names and non-blank professions in ascending
// order. Records the builder skips are skipped here too. Professions are kept
// verbatim to match domain.Node.Profession exactly.
func ExtractFacets(families domain.Dataset) Facets {
	groups := btree.NewBTreeG[string](stringLess)
	professions := btree.NewBTreeG[string](stringLess)

	for _, family := range families {
		if !family.Valid() {
			continue
		}
		groups.Set(family.Name)
		for _, m := range family.Members {
			if !m.Valid() {
				continue
			}
			if strings.TrimSpace(m.Profession) != "" {
				professions.Set(m.Profession)
			}
		}
	}

	return Facets{
		Groups:      collect(groups),
		Professions: collect(professions),
	}
}

func collect(tr *btree.BTreeG[string]) []string {
	out := make([]string, 0, tr.Len())
	tr.Scan(func(item string) bool {
		out = append(out, item)
		return true
	})
	return out
}
