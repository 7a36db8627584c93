// Package graph builds and filters the family graph.
//
// # Building
//
// Builder turns a domain.Dataset into the canonical graph in two passes. The
// node pass walks families and members in input order, assigning positional
// ids, a category and canvas color, a rendering weight and an initial
// position. The edge pass emits the complete directed pair set of group edges
// for each family and then one resolved-mention edge for every target the
// Resolver finds in each connection string.
//
// Malformed records (a family or member without a name) are skipped and
// reported in BuildResult.Skipped. Building never fails.
//
// # Resolving
//
// Resolver is the pluggable matcher behind resolved-mention edges. The
// default SubstringResolver reports every candidate whose lower-cased name
// occurs in the lower-cased connection text.
//
// # Filtering
//
// Filter narrows a graph by Criteria: a search term matched against name,
// profession and family (any of the three), conjoined with the family and
// profession facets. An empty facet places no constraint. Links survive only
// when both ends survive. FilterCache memoizes results per Criteria.Key.
//
// # Facets
//
// ExtractFacets derives the sorted distinct family names and professions used
// to populate the filter panels.
package graph
