package codec

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/theuddeshya/Dynasty/internal/domain"
	"github.com/theuddeshya/Dynasty/internal/logger"
)

var (
	headingPattern = regexp.MustCompile(`^#{2,3}\s*([^#\s].*)$`)
	memberPattern  = regexp.MustCompile(`^(?:[-*]\s+)?\*\*(.+?):\*\*\s*(.*)$`)
	sentenceBreak  = regexp.MustCompile(`[.;](?:\s+|$)`)

	// clauses that describe a relation to another person
	relationPattern = regexp.MustCompile(`(?i)^(?:` +
		`married to|` +
		`(?:ex-)?(?:wife|husband|partner) of|` +
		`(?:great-)?(?:grand)?(?:son|daughter|father|mother|child)(?:-in-law)? of|` +
		`(?:brother|sister)(?:-in-law)? of|` +
		`(?:step)?(?:son|daughter|father|mother|brother|sister) of|` +
		`(?:niece|nephew|cousin|aunt|uncle|member|founder) of)\b`)
)

// Warning describes an input line the markdown importer ignored
type Warning struct {
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s: %q", w.Line, w.Reason, w.Text)
}

// MarkdownCodec handles the raw text format the dataset is curated in:
//
//	### Kapoor
//	**Raj Kapoor:** Actor, Director. Father of Randhir Kapoor. Known as the showman.
//
// A heading starts a family. In a member line the first sentence is the
// profession unless it names a relation; sentences and comma-separated
// clauses that start with a relation phrase ("Son of", "Married to", ...)
// become connections, and everything else is the biography.
type MarkdownCodec struct{}

// NewMarkdownCodec creates a new markdown codec
func NewMarkdownCodec() *MarkdownCodec {
	return &MarkdownCodec{}
}

// Format returns the codec format identifier
func (c *MarkdownCodec) Format() string {
	return FormatMarkdown
}

// Parse reads a dataset from the raw text format, logging ignored lines
func (c *MarkdownCodec) Parse(r io.Reader) (domain.Dataset, error) {
	ds, warnings, err := c.ParseDocument(r)
	if err != nil {
		return nil, err
	}
	if len(warnings) > 0 {
		logger.Warn("Ignored lines in markdown dataset", "count", len(warnings), "first", warnings[0].String())
	}
	return ds, nil
}

// ParseDocument reads a dataset and reports every line it could not use
func (c *MarkdownCodec) ParseDocument(r io.Reader) (domain.Dataset, []Warning, error) {
	ds := domain.Dataset{}
	var warnings []Warning
	current := -1

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if m := headingPattern.FindStringSubmatch(line); m != nil {
			ds = append(ds, domain.Family{Name: strings.TrimSpace(m[1]), Members: []domain.Member{}})
			current = len(ds) - 1
			continue
		}
		if strings.HasPrefix(line, "##") {
			warnings = append(warnings, Warning{Line: lineNo, Text: line, Reason: "unrecognized family heading"})
			continue
		}

		if !strings.HasPrefix(line, "**") && !strings.HasPrefix(line, "- **") && !strings.HasPrefix(line, "* **") {
			// prose between entries
			continue
		}

		m := memberPattern.FindStringSubmatch(line)
		switch {
		case m == nil:
			warnings = append(warnings, Warning{Line: lineNo, Text: line, Reason: "malformed member line"})
		case current < 0:
			warnings = append(warnings, Warning{Line: lineNo, Text: line, Reason: "member before first family heading"})
		default:
			member := parseDescription(strings.TrimSpace(m[2]))
			member.Name = strings.TrimSpace(m[1])
			ds[current].Members = append(ds[current].Members, member)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read markdown: %w", err)
	}

	return ds, warnings, nil
}

func parseDescription(desc string) domain.Member {
	member := domain.Member{Connections: []string{}}
	var bio []string

	for i, sentence := range splitSentences(desc) {
		var plain []string
		inRelation := false
		for _, clause := range strings.Split(sentence, ",") {
			clause = strings.TrimSpace(clause)
			if clause == "" {
				continue
			}
			switch {
			case relationPattern.MatchString(clause):
				member.Connections = append(member.Connections, clause)
				inRelation = true
			case inRelation:
				// "Son of A, B" keeps listing relatives
				last := len(member.Connections) - 1
				member.Connections[last] += ", " + clause
			default:
				plain = append(plain, clause)
			}
		}
		if len(plain) == 0 {
			continue
		}
		text := strings.Join(plain, ", ")
		if i == 0 {
			member.Profession = text
			continue
		}
		bio = append(bio, text)
	}

	member.Bio = strings.Join(bio, ". ")
	return member
}

func splitSentences(desc string) []string {
	parts := sentenceBreak.Split(desc, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Export writes a dataset in the raw text format. Connections are written
// after the biography, one sentence each. A member with a biography but no
// profession reads back with the biography's first sentence as profession.
func (c *MarkdownCodec) Export(ds domain.Dataset, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i, family := range ds {
		if i > 0 {
			bw.WriteString("\n")
		}
		fmt.Fprintf(bw, "### %s\n\n", family.Name)
		for _, m := range family.Members {
			var sentences []string
			if p := strings.TrimSpace(m.Profession); p != "" {
				sentences = append(sentences, strings.TrimSuffix(p, "."))
			}
			if b := strings.TrimSpace(m.Bio); b != "" {
				sentences = append(sentences, strings.TrimSuffix(b, "."))
			}
			for _, conn := range m.Connections {
				if conn = strings.TrimSpace(conn); conn != "" {
					sentences = append(sentences, strings.TrimSuffix(conn, "."))
				}
			}
			desc := strings.Join(sentences, ". ")
			if desc != "" {
				desc += "."
			}
			fmt.Fprintf(bw, "**%s:** %s\n", m.Name, desc)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write markdown: %w", err)
	}
	return nil
}
