package domain

import (
	"fmt"
	"slices"
)

// Node is the graph representation of a Member
type Node struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Profession  string   `json:"profession"`
	Bio         string   `json:"bio"`
	Connections []string `json:"connections"`
	Family      string   `json:"family"`
	Category    Category `json:"category"`
	Val         float64  `json:"val"`
	Color       string   `json:"color"`
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
}

// NodeID returns the identifier of the member at memberIndex of the family at
// groupIndex. Identifiers are positional so they stay unique when two
// families contain members with the same name.
func NodeID(groupIndex, memberIndex int) string {
	return fmt.Sprintf("%d-%d", groupIndex, memberIndex)
}

// Clone returns a deep copy of the node
func (n Node) Clone() Node {
	out := n
	out.Connections = slices.Clone(n.Connections)
	return out
}

// HasConnection reports whether text is one of the node's connection strings
func (n Node) HasConnection(text string) bool {
	return slices.Contains(n.Connections, text)
}
