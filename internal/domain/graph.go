package domain

// Graph is the {nodes, links} document consumed by the renderer
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Edge `json:"links"`
}

// NewGraph returns an empty graph with non-nil slices so it serializes as
// empty arrays rather than null
func NewGraph() *Graph {
	return &Graph{
		Nodes: []Node{},
		Links: []Edge{},
	}
}

// Clone returns a deep copy of the graph
func (g *Graph) Clone() *Graph {
	if g == nil {
		return NewGraph()
	}
	out := &Graph{
		Nodes: make([]Node, len(g.Nodes)),
		Links: make([]Edge, len(g.Links)),
	}
	for i, n := range g.Nodes {
		out.Nodes[i] = n.Clone()
	}
	copy(out.Links, g.Links)
	return out
}

// NodeByID returns the node with the given id
func (g *Graph) NodeByID(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// NodeIDs returns the set of node ids in the graph
func (g *Graph) NodeIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		ids[n.ID] = struct{}{}
	}
	return ids
}

// CountEdges returns the number of links of the given type
func (g *Graph) CountEdges(t EdgeType) int {
	count := 0
	for _, e := range g.Links {
		if e.Type == t {
			count++
		}
	}
	return count
}

// Stats summarizes a derived graph against the canonical graph it came from
type Stats struct {
	Families      int `json:"families"`
	Members       int `json:"members"`
	TotalNodes    int `json:"total_nodes"`
	TotalLinks    int `json:"total_links"`
	FilteredNodes int `json:"filtered_nodes"`
	FilteredLinks int `json:"filtered_links"`
	Skipped       int `json:"skipped"`
}

// GraphView is a derived graph together with its statistics
type GraphView struct {
	Nodes []Node `json:"nodes"`
	Links []Edge `json:"links"`
	Stats Stats  `json:"stats"`
}
