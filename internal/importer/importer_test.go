package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkoval/markd/internal/domain"
)

const netscapeSample = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><H3>Dev</H3>
    <DL><p>
        <DT><A HREF="https://go.dev" TAGS="go,lang">The Go Programming Language</A>
        <DT><A HREF="https://pkg.go.dev">Go Packages</A>
    </DL><p>
    <DT><H3>News</H3>
    <DL><p>
        <DT><A HREF="https://news.ycombinator.com">Hacker News</A>
    </DL><p>
</DL><p>
`

func TestParseNetscape(t *testing.T) {
	inputs, err := ParseNetscape(strings.NewReader(netscapeSample))
	require.NoError(t, err)
	require.Len(t, inputs, 3)

	assert.Equal(t, "The Go Programming Language", inputs[0].Title)
	assert.Equal(t, "https://go.dev", inputs[0].URL)
	assert.Equal(t, "Dev", inputs[0].Category)
	assert.Equal(t, []string{"go", "lang"}, inputs[0].Tags)

	assert.Equal(t, "Dev", inputs[1].Category)
	assert.Empty(t, inputs[1].Tags)

	assert.Equal(t, "News", inputs[2].Category)
	assert.Equal(t, "Hacker News", inputs[2].Title)
}

func TestParseNetscapeSkipsEmptyEntries(t *testing.T) {
	sample := `<DL><p>
		<DT><A HREF="">no href</A>
		<DT><A HREF="https://ok.example">ok</A>
		<DT><A HREF="https://no-title.example"></A>
	</DL><p>`

	inputs, err := ParseNetscape(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	assert.Equal(t, "https://ok.example", inputs[0].URL)
}

func TestParseJSON(t *testing.T) {
	data := []byte(`{
		"bookmarks": [
			{"title": "Redis docs", "url": "https://redis.io/docs", "description": "reference", "tags": ["db", "cache"]},
			{"title": "", "url": "https://skipped.example"},
			{"title": "Plain", "url": "https://plain.example", "category": "misc"}
		]
	}`)

	inputs, err := ParseJSON(data)
	require.NoError(t, err)
	require.Len(t, inputs, 2)

	assert.Equal(t, "Redis docs", inputs[0].Title)
	assert.Equal(t, "reference", inputs[0].Notes)
	assert.Equal(t, []string{"db", "cache"}, inputs[0].Tags)
	assert.Equal(t, "misc", inputs[1].Category)
}

func TestParseJSONEmpty(t *testing.T) {
	_, err := ParseJSON([]byte(`{"bookmarks": []}`))
	assert.Error(t, err)
}

func TestParseDetectsFormat(t *testing.T) {
	fromJSON, err := Parse([]byte(`{"bookmarks": [{"title": "a", "url": "https://a.example"}]}`))
	require.NoError(t, err)
	require.Len(t, fromJSON, 1)

	fromHTML, err := Parse([]byte(netscapeSample))
	require.NoError(t, err)
	require.Len(t, fromHTML, 3)
}

func TestExportNetscapeRoundTrip(t *testing.T) {
	bookmarks := []*domain.Bookmark{
		{Title: "The Go Programming Language", URL: "https://go.dev", Category: "Dev", Tags: []string{"go"}},
		{Title: "Hacker News", URL: "https://news.ycombinator.com", Category: "News"},
		{Title: "Loose link", URL: "https://loose.example", Tags: []string{}},
	}

	var sb strings.Builder
	require.NoError(t, ExportNetscape(&sb, bookmarks))
	out := sb.String()

	assert.Contains(t, out, "<!DOCTYPE NETSCAPE-Bookmark-file-1>")
	assert.Contains(t, out, "<DT><H3>Dev</H3>")
	assert.Contains(t, out, `TAGS="go"`)

	// What we export must come back in through the parser.
	inputs, err := ParseNetscape(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, inputs, 3)
	assert.Equal(t, "Dev", inputs[0].Category)
	assert.Equal(t, []string{"go"}, inputs[0].Tags)
	// Uncategorized entries come after the folders; the parser
	// attributes them to the last seen folder, which Netscape files
	// tolerate.
	assert.Equal(t, "Loose link", inputs[2].Title)
}

func TestExportEscapesHTML(t *testing.T) {
	bookmarks := []*domain.Bookmark{
		{Title: "A <b>bold</b> & dangerous title", URL: "https://x.example"},
	}

	var sb strings.Builder
	require.NoError(t, ExportNetscape(&sb, bookmarks))
	assert.Contains(t, sb.String(), "A &lt;b&gt;bold&lt;/b&gt; &amp; dangerous title")
}
