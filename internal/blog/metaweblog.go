package blog

import (
	"github.com/blogwire/blogwire/internal/categories"
	"github.com/blogwire/blogwire/internal/entity"
)

// metaWeblog extends the base dialect with structured post fields, a
// category listing and media uploads. The app key prefix is gone from the
// argument list.
type metaWeblog struct {
	blogger1
}

func (mw *metaWeblog) name() string { return entity.DialectMetaWeblog }

func (mw *metaWeblog) method(op rpcOp) string {
	switch op {
	case opGetRecentPosts:
		return "metaWeblog.getRecentPosts"
	case opCreatePost:
		return "metaWeblog.newPost"
	case opModifyPost:
		return "metaWeblog.editPost"
	case opFetchPost:
		return "metaWeblog.getPost"
	case opListCategories:
		return "metaWeblog.getCategories"
	case opCreateMedia:
		return "metaWeblog.newMediaObject"
	}

	return ""
}

func (mw *metaWeblog) defaultArgs(c *Client, id string) []any {
	var args []any

	if id != "" {
		args = append(args, id)
	}

	return append(args, c.username, c.password)
}

func (mw *metaWeblog) writeArgs(p *entity.Post) []any {
	return []any{
		map[string]any{
			"categories":   p.Categories,
			"description":  p.Content,
			"title":        p.Title,
			"lastModified": p.Modified.UTC(),
			"dateCreated":  p.Created.UTC(),
		},
		!p.Private,
	}
}

func (mw *metaWeblog) readPost(p *entity.Post, m map[string]any, _ *categories.Cache) bool {
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
	p.Title = mapString(m, "title")
	p.Content = mapString(m, "description")

	if cats := stringList(m["categories"]); len(cats) > 0 {
		p.Categories = cats
	}

	return true
}

// mediaArgs builds the upload payload. The data rides as a base64 value.
func (mw *metaWeblog) mediaArgs(media *entity.Media) []any {
	return []any{
		map[string]any{
			"name": media.Name,
			"type": media.Mimetype,
			"bits": media.Data,
		},
	}
}

func (mw *metaWeblog) capabilities() caps {
	return caps{listsCategories: true, media: true}
}
