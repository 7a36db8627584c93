// Package domain defines the core types of the Dynasty family-graph explorer.
//
// # Input Records
//
// Family is a named group of related individuals and the top-level record of a
// dataset. Member is one individual with free-text profession, biography and
// connection strings. A Member has no identity outside its Family.
//
// # Derived Graph
//
// Node is the graph representation of a Member. Its ID is derived from the
// member's position in the dataset, never from its name, because names are
// only unique within a family.
//
// Edge links two nodes and is either a group edge (co-membership in a family)
// or a resolved-mention edge (a connection string that names another member).
//
// Graph is the {nodes, links} document handed to the browser renderer.
//
// # Categories
//
// Category is derived from profession text by Classify. The canvas fill color
// and the UI badge color are looked up from two independent palettes keyed by
// Category, so the two surfaces cannot drift apart.
//
// # Design Principles
//
// - No database, transport or logging dependencies
// - Canonical graphs are treated as immutable once built
// - Renderers may only move nodes (see NodePosition)
package domain
