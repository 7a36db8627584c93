package graph

import (
	"slices"
	"strconv"
	"strings"

	"github.com/theuddeshya/Dynasty/internal/domain"
)

// Criteria is the explicit filter state of one view. The zero value selects
// the whole graph.
type Criteria struct {
	Search      string   `json:"search"`
	Groups      []string `json:"groups"`
	Professions []string `json:"professions"`
}

// Normalize returns the criteria with the search term trimmed and lower-cased
// and both facet sets sorted and de-duplicated
func (c Criteria) Normalize() Criteria {
	return Criteria{
		Search:      strings.ToLower(strings.TrimSpace(c.Search)),
		Groups:      normalizeSet(c.Groups),
		Professions: normalizeSet(c.Professions),
	}
}

// IsEmpty reports whether the criteria place no constraint on the graph
func (c Criteria) IsEmpty() bool {
	n := c.Normalize()
	return n.Search == "" && len(n.Groups) == 0 && len(n.Professions) == 0
}

// Key is a memoization key; criteria selecting the same nodes share a key.
// Every value is length-prefixed so no facet value can forge a separator.
func (c Criteria) Key() string {
	n := c.Normalize()
	var sb strings.Builder
	writeKeyField(&sb, n.Search)
	for _, set := range [][]string{n.Groups, n.Professions} {
		sb.WriteString(strconv.Itoa(len(set)))
		sb.WriteByte('#')
		for _, v := range set {
			writeKeyField(&sb, v)
		}
	}
	return sb.String()
}

func writeKeyField(sb *strings.Builder, v string) {
	sb.WriteString(strconv.Itoa(len(v)))
	sb.WriteByte(':')
	sb.WriteString(v)
}

func normalizeSet(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := slices.Clone(values)
	slices.Sort(out)
	return slices.Compact(out)
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// Match reports whether a single node satisfies the criteria
func (c Criteria) Match(n domain.Node) bool {
	nc := c.Normalize()
	return nc.matcher()(n)
}

func (c Criteria) matcher() func(domain.Node) bool {
	groups := toSet(c.Groups)
	professions := toSet(c.Professions)
	search := c.Search

	return func(n domain.Node) bool {
		if search != "" &&
			!strings.Contains(strings.ToLower(n.Name), search) &&
			!strings.Contains(strings.ToLower(n.Profession), search) &&
			!strings.Contains(strings.ToLower(n.Family), search) {
			return false
		}
		if len(groups) > 0 {
			if _, ok := groups[n.Family]; !ok {
				return false
			}
		}
		if len(professions) > 0 {
			if _, ok := professions[n.Profession]; !ok {
				return false
			}
		}
		return true
	}
}

// Filter returns the subgraph of g selected by c. Nodes and links keep their
// canonical order and are copied, so callers may modify the result freely.
func Filter(g *domain.Graph, c Criteria) *domain.Graph {
	out := domain.NewGraph()
	if g == nil {
		return out
	}

	match := c.Normalize().matcher()
	retained := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		if match(n) {
			retained[n.ID] = struct{}{}
			out.Nodes = append(out.Nodes, n.Clone())
		}
	}

	for _, e := range g.Links {
		_, src := retained[e.Source]
		_, dst := retained[e.Target]
		if src && dst {
			out.Links = append(out.Links, e)
		}
	}

	return out
}
