package domain

import (
	"testing"
)

func TestNewNodePosition(t *testing.T) {
	t.Run("creates position with defaults", func(t *testing.T) {
		pos := NewNodePosition("0-1", 100.5, 200.5)

		if pos.NodeID != "0-1" {
			t.Errorf("expected NodeID '0-1', got %s", pos.NodeID)
		}
		if pos.X != 100.5 {
			t.Errorf("expected X=100.5, got %f", pos.X)
		}
		if pos.Y != 200.5 {
			t.Errorf("expected Y=200.5, got %f", pos.Y)
		}
		if pos.Pinned {
			t.Error("expected Pinned to be false by default")
		}
	})

	t.Run("creates position with negative coordinates", func(t *testing.T) {
		pos := NewNodePosition("2-0", -50.5, -100.5)

		if pos.X != -50.5 || pos.Y != -100.5 {
			t.Errorf("expected (-50.5, -100.5), got (%f, %f)", pos.X, pos.Y)
		}
	})
}

func TestNodePositionApply(t *testing.T) {
	t.Run("moves node only", func(t *testing.T) {
		node := Node{
			ID:          "0-0",
			Name:        "Raj Kapoor",
			Family:      "Kapoor",
			Category:    CategoryPerformer,
			Connections: []string{"father of Randhir Kapoor"},
			X:           1,
			Y:           2,
		}
		NewNodePosition("0-0", 300, 400).Apply(&node)

		if node.X != 300 || node.Y != 400 {
			t.Errorf("expected (300, 400), got (%f, %f)", node.X, node.Y)
		}
		if node.ID != "0-0" {
			t.Errorf("expected ID unchanged, got %s", node.ID)
		}
		if node.Category != CategoryPerformer {
			t.Errorf("expected category unchanged, got %s", node.Category)
		}
		if len(node.Connections) != 1 {
			t.Errorf("expected connections unchanged, got %v", node.Connections)
		}
	})
}
