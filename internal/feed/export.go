// Package feed renders fetched posts as an RSS or Atom document, so a
// blog mirrored through one of the dialects can be republished as a plain
// feed.
package feed

import (
	"fmt"
	"strings"

	"github.com/gorilla/feeds"

	"github.com/blogwire/blogwire/internal/entity"
)

const (
	FormatRSS  = "rss"
	FormatAtom = "atom"
)

// Export creates a feed document from fetched posts. Posts still marked
// private and posts without an id are skipped.
func Export(info entity.BlogInfo, posts []entity.Post, format string) ([]byte, error) {
	f := &feeds.Feed{
		Title:       info.Title,
		Link:        &feeds.Link{Href: info.URL},
		Description: info.Summary,
	}

	for _, p := range posts {
		if p.Private || p.ID == "" {
			continue
		}

		link := p.PermaLink

		if link == "" {
			link = p.Link
		}

		f.Items = append(f.Items, &feeds.Item{
			Id:          p.ID,
			Title:       p.Title,
			Content:     p.Content,
			Description: p.Summary,
			Link:        &feeds.Link{Href: link},
			Created:     p.Created,
			Updated:     p.Modified,
		})

		if f.Created.IsZero() || p.Created.After(f.Created) {
			f.Created = p.Created
		}
	}

	var content string
	var err error

	switch strings.ToLower(format) {
	case FormatRSS:
		content, err = f.ToRss()
	case FormatAtom:
		content, err = f.ToAtom()
	default:
		return nil, fmt.Errorf("unsupported feed format: %s", format)
	}

	if err != nil {
		return nil, fmt.Errorf("could not marshal %s to a feed: %w", info.Title, err)
	}

	return []byte(content), nil
}
