package graph

import "strings"

// Candidate is a node a connection string may refer to
type Candidate struct {
	ID   string
	Name string
}

// Resolver maps one connection string of the node sourceID to the ids of the
// candidates it mentions, in candidate order
type Resolver interface {
	Resolve(sourceID, text string, candidates []Candidate) []string
}

// ResolverFunc adapts a plain function to the Resolver interface
type ResolverFunc func(sourceID, text string, candidates []Candidate) []string

// Resolve calls f
func (f ResolverFunc) Resolve(sourceID, text string, candidates []Candidate) []string {
	return f(sourceID, text, candidates)
}

// SubstringResolver matches a candidate when its lower-cased name occurs
// anywhere in the lower-cased connection text. Every match is kept, so one
// sentence may mention several people.
//
// Only case is folded. Punctuation, diacritics and whitespace variants are
// compared as-is, so "Rishi  Kapoor" does not match "Rishi Kapoor", and a
// short name such as "Raj" also matches inside "Rajiv".
type SubstringResolver struct{}

// Resolve implements Resolver
func (SubstringResolver) Resolve(sourceID, text string, candidates []Candidate) []string {
	lowered := strings.ToLower(text)
	var targets []string
	for _, c := range candidates {
		if c.ID == sourceID {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(c.Name)) {
			targets = append(targets, c.ID)
		}
	}
	return targets
}
