package blog

import (
	"strings"

	"github.com/blogwire/blogwire/internal/categories"
	"github.com/blogwire/blogwire/internal/entity"
)

// Category orchestration methods. These exist from this dialect generation
// on; categories are attached to a post through separate calls keyed by
// category id, never through the write itself.
const (
	methodGetPostCategories = "mt.getPostCategories"
	methodSetPostCategories = "mt.setPostCategories"
	methodGetTrackBackPings = "mt.getTrackbackPings"
)

// movableType extends the structured dialect with extended entries,
// trackbacks and id-keyed category assignment.
type movableType struct {
	metaWeblog
}

func (mt *movableType) name() string { return entity.DialectMovableType }

func (mt *movableType) writeArgs(p *entity.Post) []any {
	m := map[string]any{
		"categories":        p.Categories,
		"description":       p.Content,
		"title":             p.Title,
		"dateCreated":       p.Created.UTC(),
		"mt_allow_comments": boolToInt(p.CommentAllowed),
		"mt_allow_pings":    boolToInt(p.TrackBackAllowed),
		"mt_excerpt":        p.Summary,
		"mt_keywords":       strings.Join(p.Tags, ","),
	}

	if p.AdditionalContent != "" {
		m["mt_text_more"] = p.AdditionalContent
	}

	return []any{m, !p.Private}
}

func (mt *movableType) readPost(p *entity.Post, m map[string]any, cats *categories.Cache) bool {
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
	p.Slug = mapString(m, "wp_slug")
	p.AdditionalContent = mapString(m, "mt_text_more")

	if allowed, ok := boolish(m["mt_allow_comments"]); ok {
		p.CommentAllowed = allowed
	}

	if allowed, ok := boolish(m["mt_allow_pings"]); ok {
		p.TrackBackAllowed = allowed
	}

	p.Summary = mapString(m, "mt_excerpt")
	p.Tags = keywordList(m["mt_keywords"])
	p.Link = mapString(m, "link")
	p.PermaLink = mapString(m, "permaLink")

	// Servers report publish, private or draft here. An absent field means
	// the server never set it, not that the post is public.
	if status := mapString(m, "post_status"); status != "" && status != "publish" {
		p.Private = true
	}

	// The listing is ambiguous about whether it carries names or ids, so
	// each entry is matched against both. Entries matching neither are
	// dropped.
	var resolved []string

	for _, item := range stringList(m["categories"]) {
		for _, cat := range cats.List() {
			if cat.Name == item || cat.ID == item {
				resolved = append(resolved, cat.Name)
			}
		}
	}

	if len(resolved) > 0 {
		p.Categories = resolved
	}

	return true
}

func (mt *movableType) capabilities() caps {
	return caps{
		listsCategories:   true,
		assignsCategories: true,
		media:             true,
		trackBacks:        true,
	}
}

func keywordList(v any) []string {
	if s, ok := v.(string); ok {
		if s == "" {
			return nil
		}

		return strings.Split(s, ",")
	}

	return stringList(v)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}

	return 0
}
