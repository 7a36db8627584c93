package domain

import "strings"

// Category is the profession class of a member
type Category string

const (
	CategoryPerformer    Category = "performer"
	CategoryDirector     Category = "director"
	CategoryProducer     Category = "producer"
	CategoryMusician     Category = "musician"
	CategoryPolitician   Category = "politician"
	CategoryWriter       Category = "writer"
	CategoryUnclassified Category = "unclassified"
)

// CategoryRule maps profession keywords to a category
type CategoryRule struct {
	Keywords []string `json:"keywords"`
	Category Category `json:"category"`
}

// CategoryRules is evaluated top to bottom; the first rule with a keyword
// contained in the lower-cased profession wins.
var CategoryRules = []CategoryRule{
	{Keywords: []string{"actor", "actress"}, Category: CategoryPerformer},
	{Keywords: []string{"director"}, Category: CategoryDirector},
	{Keywords: []string{"producer"}, Category: CategoryProducer},
	{Keywords: []string{"singer"}, Category: CategoryMusician},
	{Keywords: []string{"politician"}, Category: CategoryPolitician},
	{Keywords: []string{"writer", "poet"}, Category: CategoryWriter},
}

// Categories lists every category in legend order
func Categories() []Category {
	cats := make([]Category, 0, len(CategoryRules)+1)
	for _, rule := range CategoryRules {
		cats = append(cats, rule.Category)
	}
	return append(cats, CategoryUnclassified)
}

// Classify derives the category of a profession. It never fails: empty or
// unmatched professions are unclassified.
func Classify(profession string) Category {
	p := strings.ToLower(profession)
	for _, rule := range CategoryRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(p, kw) {
				return rule.Category
			}
		}
	}
	return CategoryUnclassified
}

// Keywords returns the profession keywords that select c
func (c Category) Keywords() []string {
	for _, rule := range CategoryRules {
		if rule.Category == c {
			return rule.Keywords
		}
	}
	return nil
}

// Palette maps categories to a color value for one presentation surface
type Palette map[Category]string

// DefaultCanvasPalette holds the node fill colors used by the graph canvas
var DefaultCanvasPalette = Palette{
	CategoryPerformer:    "#e74c3c",
	CategoryDirector:     "#3498db",
	CategoryProducer:     "#f39c12",
	CategoryMusician:     "#9b59b6",
	CategoryPolitician:   "#27ae60",
	CategoryWriter:       "#e67e22",
	CategoryUnclassified: "#95a5a6",
}

// DefaultBadgePalette holds the badge classes used by the filter panels
var DefaultBadgePalette = Palette{
	CategoryPerformer:    "bg-red-500/20 text-red-200 border-red-400/30",
	CategoryDirector:     "bg-blue-500/20 text-blue-200 border-blue-400/30",
	CategoryProducer:     "bg-orange-500/20 text-orange-200 border-orange-400/30",
	CategoryMusician:     "bg-purple-500/20 text-purple-200 border-purple-400/30",
	CategoryPolitician:   "bg-green-500/20 text-green-200 border-green-400/30",
	CategoryWriter:       "bg-amber-500/20 text-amber-200 border-amber-400/30",
	CategoryUnclassified: "bg-gray-500/20 text-gray-200 border-gray-400/30",
}

// Color returns the palette entry for c, falling back to the unclassified entry
func (p Palette) Color(c Category) string {
	if v, ok := p[c]; ok {
		return v
	}
	return p[CategoryUnclassified]
}

// WithOverrides returns a copy of p with the given entries replaced. Unknown
// category names are ignored.
func (p Palette) WithOverrides(overrides map[string]string) Palette {
	out := make(Palette, len(p))
	for k, v := range p {
		out[k] = v
	}
	for name, color := range overrides {
		c := Category(strings.ToLower(strings.TrimSpace(name)))
		if _, known := p[c]; known && color != "" {
			out[c] = color
		}
	}
	return out
}
