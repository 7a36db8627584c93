package domain

// EdgeType distinguishes how an edge was derived
type EdgeType string

const (
	// EdgeTypeGroup links two members of the same family
	EdgeTypeGroup EdgeType = "group"
	// EdgeTypeResolvedMention links a member to someone named in one of its
	// connection strings
	EdgeTypeResolvedMention EdgeType = "resolved-mention"
)

// Link strengths and colors consumed by the renderer
const (
	GroupStrength    = 0.3
	MentionStrength  = 0.8
	GroupEdgeColor   = "rgba(255, 255, 255, 0.2)"
	MentionEdgeColor = "rgba(255, 255, 255, 0.4)"
)

// Edge is a directed link between two nodes
type Edge struct {
	Source       string   `json:"source"`
	Target       string   `json:"target"`
	Type         EdgeType `json:"type"`
	Strength     float64  `json:"strength"`
	Color        string   `json:"color"`
	Relationship string   `json:"relationship,omitempty"`
}

// NewGroupEdge creates a co-membership edge
func NewGroupEdge(source, target string) Edge {
	return Edge{
		Source:   source,
		Target:   target,
		Type:     EdgeTypeGroup,
		Strength: GroupStrength,
		Color:    GroupEdgeColor,
	}
}

// NewMentionEdge creates an edge carrying the connection text that produced it
func NewMentionEdge(source, target, relationship string) Edge {
	return Edge{
		Source:       source,
		Target:       target,
		Type:         EdgeTypeResolvedMention,
		Strength:     MentionStrength,
		Color:        MentionEdgeColor,
		Relationship: relationship,
	}
}
