package blog

import (
	"github.com/blogwire/blogwire/internal/categories"
	"github.com/blogwire/blogwire/internal/entity"
)

// appKey is the fixed application key the oldest API generation expects as
// the first argument of every call. Servers ignore its value.
const appKey = "0123456789ABCDEF"

// blogger1 is the oldest dialect. Posts have no structured title or
// category fields; both ride embedded in the content as <title> and
// <category> markers.
type blogger1 struct{}

func (b *blogger1) name() string { return entity.DialectBlogger1 }

func (b *blogger1) method(op rpcOp) string {
	switch op {
	case opGetRecentPosts:
		return "blogger.getRecentPosts"
	case opCreatePost:
		return "blogger.newPost"
	case opModifyPost:
		return "blogger.editPost"
	case opFetchPost:
		return "blogger.getPost"
	}

	return ""
}

func (b *blogger1) defaultArgs(c *Client, id string) []any {
	args := []any{appKey}

	if id != "" {
		args = append(args, id)
	}

	return append(args, c.username, c.password)
}

func (b *blogger1) writeArgs(p *entity.Post) []any {
	content := "<title>" + p.Title + "</title>"

	for _, cat := range p.Categories {
		content += "<category>" + cat + "</category>"
	}

	content += p.Content

	return []any{content, !p.Private}
}

func (b *blogger1) readPost(p *entity.Post, m map[string]any, _ *categories.Cache) bool {
	if p == nil {
		return false
	}

	if dt, ok := timeValue(m["dateCreated"]); ok {
		p.Created = dt.Local()
	}

	if dt, ok := timeValue(m["lastModified"]); ok {
		p.Modified = dt.Local()
	}

	p.ID = mapID(m)

	title := mapString(m, "title")
	embedded, cats, rest := extractEmbedded(mapString(m, "content"))

	if embedded != "" {
		title = embedded
	}

	p.Title = title
	p.Content = rest
	p.Categories = cats

	return true
}

func (b *blogger1) capabilities() caps { return caps{} }
