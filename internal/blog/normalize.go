package blog

import (
	"regexp"
	"strconv"
	"time"

	"github.com/blogwire/blogwire/internal/entity"
)

// Loosely typed server payloads get normalized here. XML-RPC servers are
// sloppy about types: ids arrive as strings or ints, booleans as ints,
// dates as typed values or bare strings.

var (
	embeddedTitle    = regexp.MustCompile(`<title>([^<]*)</title>`)
	embeddedCategory = regexp.MustCompile(`<category>([^<]*)</category>`)
)

// extractEmbedded pulls title and category markers out of a raw content
// blob and returns the remaining content. Servers speaking the oldest
// dialect have no dedicated fields for these, so they ride embedded in the
// content itself. Content without markers passes through unchanged.
func extractEmbedded(content string) (title string, categories []string, rest string) {
	if m := embeddedTitle.FindStringSubmatch(content); m != nil {
		title = m[1]
	}

	for _, m := range embeddedCategory.FindAllStringSubmatch(content, -1) {
		categories = append(categories, m[1])
	}

	rest = embeddedTitle.ReplaceAllString(content, "")
	rest = embeddedCategory.ReplaceAllString(rest, "")

	return title, categories, rest
}

func mapString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// mapID reads a post id, preferring "postid" over "postId" and accepting
// integer ids.
func mapID(m map[string]any) string {
	if id, ok := scalarString(m["postid"]); ok && id != "" {
		return id
	}

	id, _ := scalarString(m["postId"])

	return id
}

/// scalarString accepts the types servers use for ids: strings and ints.
func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	}

	return "", false
}

var timeLayouts = []string{
	time.RFC3339,
	"20060102T15:04:05",
	"2006-01-02T15:04:05",
}

// timeValue accepts decoded dateTime values and the string spellings
// common in the wild. The zero time reports false.
func timeValue(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case string:
		for _, layout := range timeLayouts {
			if dt, err := time.Parse(layout, t); err == nil {
				return dt, !dt.IsZero()
			}
		}
	}

	return time.Time{}, false
}

func stringList(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		list := make([]string, 0, len(t))

		for _, item := range t {
			if s, ok := scalarString(item); ok {
				list = append(list, s)
			}
		}

		return list
	}

	return nil
}

// boolish accepts booleans and the integer spelling some servers return.
func boolish(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case int:
		return t != 0, true
	case int64:
		return t != 0, true
	}

	return false, false
}

// parseCategories accepts both response shapes for a category listing: the
// standard struct-of-structs keyed by name, and the array-of-structs
// variant some servers return instead.
func parseCategories(payload any) ([]entity.Category, bool) {
	switch v := payload.(type) {
	case map[string]any:
		list := make([]entity.Category, 0, len(v))

		for name, raw := range v {
			sub, _ := raw.(map[string]any)
			list = append(list, entity.Category{
				Name:        name,
				Description: mapString(sub, "description"),
				HTMLURL:     mapString(sub, "htmlUrl"),
				RSSURL:      mapString(sub, "rssUrl"),
				ID:          categoryID(sub),
				ParentID:    categoryParentID(sub),
			})
		}

		return list, true
	case []any:
		list := make([]entity.Category, 0, len(v))

		for _, raw := range v {
			sub, ok := raw.(map[string]any)

			if !ok {
				continue
			}

			list = append(list, entity.Category{
				Name:        mapString(sub, "categoryName"),
				Description: mapString(sub, "description"),
				HTMLURL:     mapString(sub, "htmlUrl"),
				RSSURL:      mapString(sub, "rssUrl"),
				ID:          categoryID(sub),
				ParentID:    categoryParentID(sub),
			})
		}

		return list, true
	}

	return nil, false
}

// categoryIDValue keeps numeric category ids numeric on the wire.
func categoryIDValue(id string) any {
	if n, err := strconv.Atoi(id); err == nil {
		return n
	}

	return id
}

func categoryID(m map[string]any) string {
	id, _ := scalarString(m["categoryId"])
	return id
}

func categoryParentID(m map[string]any) string {
	id, _ := scalarString(m["parentId"])
	return id
}

// parseTrackBacks reads a trackback ping listing.
func parseTrackBacks(payload any) ([]entity.TrackBackPing, bool) {
	list, ok := payload.([]any)

	if !ok {
		return nil, false
	}

	pings := make([]entity.TrackBackPing, 0, len(list))

	for _, raw := range list {
		m, ok := raw.(map[string]any)

		if !ok {
			continue
		}

		pings = append(pings, entity.TrackBackPing{
			Title: mapString(m, "pingTitle"),
			URL:   mapString(m, "pingURL"),
			IP:    mapString(m, "pingIP"),
		})
	}

	return pings, true
}

// parseUserInfo reads an account profile response.
func parseUserInfo(payload any) (entity.UserInfo, bool) {
	m, ok := payload.(map[string]any)

	if !ok {
		return entity.UserInfo{}, false
	}

	return entity.UserInfo{
		Nickname:  mapString(m, "nickname"),
		UserID:    mapString(m, "userid"),
		URL:       mapString(m, "url"),
		Email:     mapString(m, "email"),
		FirstName: mapString(m, "firstname"),
		LastName:  mapString(m, "lastname"),
	}, true
}

// parseBlogs reads a blog discovery response.
func parseBlogs(payload any) ([]entity.BlogInfo, bool) {
	list, ok := payload.([]any)

	if !ok {
		return nil, false
	}

	blogs := make([]entity.BlogInfo, 0, len(list))

	for _, raw := range list {
		m, ok := raw.(map[string]any)

		if !ok {
			continue
		}

		id, _ := scalarString(m["blogid"])
		blogs = append(blogs, entity.BlogInfo{
			ID:    id,
			Title: mapString(m, "blogName"),
			URL:   mapString(m, "url"),
		})
	}

	return blogs, true
}
