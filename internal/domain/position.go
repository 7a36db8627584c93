package domain

// NodePosition is a renderer-reported position for a node. Positions are the
// only node state the renderer may change.
type NodePosition struct {
	NodeID string  `json:"node_id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Pinned bool    `json:"pinned"`
}

// NewNodePosition creates a new node position
func NewNodePosition(nodeID string, x, y float64) *NodePosition {
	return &NodePosition{
		NodeID: nodeID,
		X:      x,
		Y:      y,
		Pinned: false,
	}
}

// Apply moves the node to the recorded position
func (p NodePosition) Apply(n *Node) {
	n.X = p.X
	n.Y = p.Y
}
