package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogwire/blogwire/internal/entity"
)

func testPosts() []entity.Post {
	return []entity.Post{
		{
			ID:        "1",
			Title:     "Hello",
			Content:   "<p>body one</p>",
			Summary:   "the first post",
			PermaLink: "http://blog.example.com/hello",
			Created:   time.Date(2009, 5, 4, 12, 30, 0, 0, time.UTC),
		},
		{
			ID:      "2",
			Title:   "Draft",
			Private: true,
		},
		{
			Title: "Never created",
		},
		{
			ID:      "3",
			Title:   "Second",
			Link:    "http://blog.example.com/second",
			Created: time.Date(2009, 5, 5, 9, 0, 0, 0, time.UTC),
		},
	}
}

func testInfo() entity.BlogInfo {
	return entity.BlogInfo{
		Title:   "My Blog",
		URL:     "http://blog.example.com",
		Summary: "a test blog",
	}
}

func TestExportRSS(t *testing.T) {
	out, err := Export(testInfo(), testPosts(), FormatRSS)

	require.NoError(t, err)
	doc := string(out)

	assert.Contains(t, doc, "<title>My Blog</title>")
	assert.Contains(t, doc, "<title>Hello</title>")
	assert.Contains(t, doc, "<title>Second</title>")
	assert.Contains(t, doc, "http://blog.example.com/hello", "the permalink wins over the plain link")
	assert.NotContains(t, doc, "Draft", "private posts are skipped")
	assert.NotContains(t, doc, "Never created", "posts without an id are skipped")
}

func TestExportAtom(t *testing.T) {
	out, err := Export(testInfo(), testPosts(), FormatAtom)

	require.NoError(t, err)
	doc := string(out)

	assert.Contains(t, doc, `<feed xmlns="http://www.w3.org/2005/Atom">`)
	assert.Contains(t, doc, "<title>Hello</title>")
	assert.NotContains(t, doc, "Draft")
}

func TestExportFormatIsCaseInsensitive(t *testing.T) {
	_, err := Export(testInfo(), testPosts(), "RSS")

	assert.NoError(t, err)
}

func TestExportUnsupportedFormat(t *testing.T) {
	_, err := Export(testInfo(), testPosts(), "opml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported feed format")
}
