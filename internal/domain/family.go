package domain

import "strings"

// Member is one individual of a family as it appears in the dataset
type Member struct {
	Name        string   `json:"name" yaml:"name"`
	Profession  string   `json:"profession" yaml:"profession"`
	Bio         string   `json:"bio" yaml:"bio"`
	Connections []string `json:"connections" yaml:"connections"`
}

// Family is a named group of members
type Family struct {
	Name    string   `json:"family_name" yaml:"family_name"`
	Members []Member `json:"members" yaml:"members"`
}

// Dataset is the ordered list of families loaded from a dataset source
type Dataset []Family

// Valid reports whether the member carries the fields required to become a node
func (m Member) Valid() bool {
	return strings.TrimSpace(m.Name) != ""
}

// Valid reports whether the family carries a usable name
func (f Family) Valid() bool {
	return strings.TrimSpace(f.Name) != ""
}

// MemberCount returns the number of member records across all families,
// including records that will be skipped as malformed
func (d Dataset) MemberCount() int {
	total := 0
	for _, f := range d {
		total += len(f.Members)
	}
	return total
}
