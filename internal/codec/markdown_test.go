package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theuddeshya/Dynasty/internal/domain"
)

const rawFamilies = `
Curated notes on film families.

**Stray Person:** Actor.

### Kapoor Family

**Prithviraj Kapoor:** Actor. Founder of Prithvi Theatres. Father of Raj Kapoor, Shammi Kapoor, Shashi Kapoor.
**Raj Kapoor:** Actor, Director, Producer. Son of Prithviraj Kapoor. Married to Krishna Kapoor. Known as the showman of Indian cinema.
- **Rishi Kapoor:** Actor, son of Raj Kapoor. Married to Neetu Singh (actress).
**Broken line without colon**

### Akhtar Family
**Javed Akhtar:** Poet, Lyricist; Husband of Shabana Azmi
**Farhan Akhtar:** Son of Javed Akhtar. Actor and director.
`

func TestMarkdownParseDocument(t *testing.T) {
	ds, warnings, err := NewMarkdownCodec().ParseDocument(strings.NewReader(rawFamilies))
	require.NoError(t, err)

	require.Len(t, ds, 2)
	assert.Equal(t, "Kapoor Family", ds[0].Name)
	assert.Equal(t, "Akhtar Family", ds[1].Name)
	require.Len(t, ds[0].Members, 3)
	require.Len(t, ds[1].Members, 2)

	t.Run("profession from first sentence", func(t *testing.T) {
		m := ds[0].Members[0]
		assert.Equal(t, "Prithviraj Kapoor", m.Name)
		assert.Equal(t, "Actor", m.Profession)
		assert.Equal(t, []string{
			"Founder of Prithvi Theatres",
			"Father of Raj Kapoor, Shammi Kapoor, Shashi Kapoor",
		}, m.Connections)
		assert.Empty(t, m.Bio)
	})

	t.Run("remaining text is bio", func(t *testing.T) {
		m := ds[0].Members[1]
		assert.Equal(t, "Actor, Director, Producer", m.Profession)
		assert.Equal(t, []string{"Son of Prithviraj Kapoor", "Married to Krishna Kapoor"}, m.Connections)
		assert.Equal(t, "Known as the showman of Indian cinema", m.Bio)
	})

	t.Run("relation inside the first sentence", func(t *testing.T) {
		m := ds[0].Members[2]
		assert.Equal(t, "Rishi Kapoor", m.Name)
		assert.Equal(t, "Actor", m.Profession)
		assert.Equal(t, []string{"son of Raj Kapoor", "Married to Neetu Singh (actress)"}, m.Connections)
	})

	t.Run("semicolon separates sentences", func(t *testing.T) {
		m := ds[1].Members[0]
		assert.Equal(t, "Poet, Lyricist", m.Profession)
		assert.Equal(t, []string{"Husband of Shabana Azmi"}, m.Connections)
	})

	t.Run("relation first leaves profession empty", func(t *testing.T) {
		m := ds[1].Members[1]
		assert.Empty(t, m.Profession)
		assert.Equal(t, []string{"Son of Javed Akhtar"}, m.Connections)
		assert.Equal(t, "Actor and director", m.Bio)
	})

	t.Run("warnings", func(t *testing.T) {
		require.Len(t, warnings, 2)
		assert.Equal(t, 4, warnings[0].Line)
		assert.Equal(t, "member before first family heading", warnings[0].Reason)
		assert.Equal(t, "malformed member line", warnings[1].Reason)
		assert.Contains(t, warnings[1].String(), "Broken line without colon")
	})
}

func TestMarkdownHeadings(t *testing.T) {
	input := "### Kapoor\n**Raj Kapoor:** Actor.\n###Bachchan\n**Amitabh Bachchan:** Actor.\n" +
		"##  Akhtar\n**Zoya Akhtar:** Director.\n####Deep\n###\n"

	ds, warnings, err := NewMarkdownCodec().ParseDocument(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, ds, 3)
	assert.Equal(t, "Kapoor", ds[0].Name)
	assert.Equal(t, "Bachchan", ds[1].Name, "no space after the hashes")
	assert.Equal(t, "Akhtar", ds[2].Name)
	for _, f := range ds {
		assert.Len(t, f.Members, 1, f.Name)
	}
	assert.Equal(t, "Amitabh Bachchan", ds[1].Members[0].Name)

	require.Len(t, warnings, 2)
	assert.Equal(t, 7, warnings[0].Line)
	assert.Equal(t, "unrecognized family heading", warnings[0].Reason)
	assert.Equal(t, 8, warnings[1].Line)
}

func TestMarkdownParse_Empty(t *testing.T) {
	ds, err := NewMarkdownCodec().Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.NotNil(t, ds)
	assert.Empty(t, ds)
}

func TestMarkdownRoundTrip(t *testing.T) {
	c := NewMarkdownCodec()
	input := domain.Dataset{
		{Name: "Kapoor", Members: []domain.Member{
			{Name: "Raj Kapoor", Profession: "Actor, Director", Bio: "Known as the showman", Connections: []string{"Father of Randhir Kapoor, Rishi Kapoor"}},
			{Name: "Randhir Kapoor", Profession: "Actor", Connections: []string{}},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, c.Export(input, &buf))
	assert.Contains(t, buf.String(), "### Kapoor\n")
	assert.Contains(t, buf.String(), "**Raj Kapoor:** Actor, Director. Known as the showman. Father of Randhir Kapoor, Rishi Kapoor.\n")

	ds, warnings, err := c.ParseDocument(&buf)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, input, ds)
}
