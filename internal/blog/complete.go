package blog

import (
	"fmt"

	"github.com/blogwire/blogwire/internal/calls"
	"github.com/blogwire/blogwire/internal/entity"
)

// complete is the single entry point for transport completions. It resolves
// the token exactly once, then routes the payload by the pending entry's
// kind. Handlers fire after the internal state has settled; completions
// arriving after Close are dropped.
func (c *Client) complete(token uint64, payload any, failure *callFailure) {
	if c.closed.Load() {
		return
	}

	c.locked(func() {
		c.completeLocked(token, payload, failure)
	})
}

func (c *Client) completeLocked(token uint64, payload any, failure *callFailure) {
	entry, ok := c.reg.Resolve(token)

	if !ok {
		c.emitError(&Error{Kind: ErrOther, Message: fmt.Sprintf("no pending call for token %d", token)})
		return
	}

	if failure != nil {
		c.failEntry(entry, ErrTransport, failure.message)
		return
	}

	// Hand-issued writes deliver the raw response document; decode it
	// into the same value shapes the codec produces.
	if data, isRaw := payload.([]byte); isRaw {
		value, fault, err := decodeMethodResponse(data)

		if err != nil {
			c.failEntry(entry, ErrParsing, err.Error())
			return
		}

		if fault != nil {
			c.failEntry(entry, ErrTransport, fault.message)
			return
		}

		payload = value
	}

	switch entry.Kind {
	case calls.KindFetchUserInfo:
		c.handleUserInfo(payload)
	case calls.KindListBlogs:
		c.handleBlogs(payload)
	case calls.KindListRecentPosts:
		c.handleRecentPosts(entry, payload)
	case calls.KindListCategories:
		c.handleCategories(payload)
	case calls.KindFetchPost:
		c.handleFetch(entry, payload)
	case calls.KindCreatePost:
		c.handleCreate(entry, payload)
	case calls.KindModifyPost:
		c.handleModify(entry, payload)
	case calls.KindRemovePost:
		c.handleRemove(entry, payload)
	case calls.KindGetPostCategories:
		c.handleGetPostCategories(entry, payload)
	case calls.KindSetPostCategories:
		c.handleSetPostCategories(entry, payload)
	case calls.KindListTrackBackPings:
		c.handleTrackBacks(entry, payload)
	case calls.KindCreateMedia:
		c.handleMedia(entry, payload)
	default:
		c.emitError(&Error{Kind: ErrOther, Message: fmt.Sprintf("unhandled call kind %d", entry.Kind)})
	}
}

// failEntry reports a failed call against the object it concerned. A failed
// category listing additionally fails every operation parked behind it.
func (c *Client) failEntry(entry calls.Entry, kind ErrorKind, msg string) {
	if entry.Kind == calls.KindListCategories {
		c.categoriesInFlight = false
		c.failQueuedLocked(kind, msg)
		c.emitError(&Error{Kind: kind, Message: msg})
		return
	}

	switch {
	case entry.Post != nil:
		c.failPost(kind, msg, entry.Post)
	case entry.Media != nil:
		c.failMedia(kind, msg, entry.Media)
	default:
		c.emitError(&Error{Kind: kind, Message: msg})
	}
}

func (c *Client) failPost(kind ErrorKind, msg string, p *entity.Post) {
	p.Status = entity.PostError
	p.Error = msg
	c.emitError(&Error{Kind: kind, Message: msg, Post: p})
}

func (c *Client) failMedia(kind ErrorKind, msg string, m *entity.Media) {
	m.Status = entity.MediaError
	m.Error = msg
	c.emitError(&Error{Kind: kind, Message: msg, Media: m})
}

func (c *Client) failQueuedLocked(kind ErrorKind, msg string) {
	msg = "categories could not be listed: " + msg

	for _, queue := range []*[]*entity.Post{&c.createQueue, &c.modifyQueue, &c.fetchQueue} {
		for _, p := range *queue {
			c.failPost(kind, msg, p)
		}

		*queue = nil
	}
}

func (c *Client) handleUserInfo(payload any) {
	info, ok := parseUserInfo(payload)

	if !ok {
		c.emitError(&Error{Kind: ErrParsing, Message: "could not read the user info, not a struct"})
		return
	}

	c.emitUserInfo(info)
}

func (c *Client) handleBlogs(payload any) {
	blogs, ok := parseBlogs(payload)

	if !ok {
		c.emitError(&Error{Kind: ErrParsing, Message: "could not read the list of blogs"})
		return
	}

	c.emitBlogs(blogs)
}

func (c *Client) handleRecentPosts(entry calls.Entry, payload any) {
	list, ok := payload.([]any)

	if !ok {
		c.emitError(&Error{Kind: ErrParsing, Message: "could not read the list of posts"})
		return
	}

	posts := make([]entity.Post, 0, len(list))

	for _, raw := range list {
		if entry.Count > 0 && len(posts) >= entry.Count {
			break
		}

		m, ok := raw.(map[string]any)

		if !ok {
			continue
		}

		var p entity.Post

		if !c.proto.readPost(&p, m, c.cats) {
			continue
		}

		p.Status = entity.PostFetched
		posts = append(posts, p)
	}

	c.emitRecentPosts(posts)
}

// handleCategories lands the category listing: refresh the cache and its
// snapshot, notify listeners, then replay everything parked behind it.
func (c *Client) handleCategories(payload any) {
	c.categoriesInFlight = false

	list, ok := parseCategories(payload)

	if !ok {
		msg := "could not read the categories out of the result from the server"
		c.failQueuedLocked(ErrParsing, msg)
		c.emitError(&Error{Kind: ErrParsing, Message: msg})
		return
	}

	ctx, cancel := storeContext()
	defer cancel()

	c.cats.Replace(ctx, list)
	c.emitCategories(list)
	c.replayQueuedLocked()
}

// replayQueuedLocked resumes deferred operations in FIFO order per queue.
// The cache is populated now, so none of them parks again.
func (c *Client) replayQueuedLocked() {
	creates, modifies, fetches := c.createQueue, c.modifyQueue, c.fetchQueue
	c.createQueue, c.modifyQueue, c.fetchQueue = nil, nil, nil

	for _, p := range creates {
		c.writePostLocked(p, true)
	}

	for _, p := range modifies {
		c.writePostLocked(p, false)
	}

	for _, p := range fetches {
		c.fetchLocked(p)
	}
}

func (c *Client) handleFetch(entry calls.Entry, payload any) {
	p := entry.Post
	m, ok := payload.(map[string]any)

	if !ok || !c.proto.readPost(p, m, c.cats) {
		c.failPost(ErrParsing, "could not fetch the post out of the result from the server", p)
		return
	}

	// Category-orchestrated dialects leave categories out of the post
	// struct; fetch them separately before reporting the post.
	if c.proto.capabilities().assignsCategories && len(p.Categories) == 0 {
		token := c.reg.Register(calls.Entry{Kind: calls.KindGetPostCategories, Post: p})
		c.tr.Call(token, methodGetPostCategories, c.proto.defaultArgs(c, p.ID))
		return
	}

	p.Status = entity.PostFetched
	c.emitPostFetched(p)
}

func (c *Client) handleCreate(entry calls.Entry, payload any) {
	p := entry.Post
	id, ok := scalarString(payload)

	if !ok {
		c.failPost(ErrParsing, "could not read the post id, not a string or an integer", p)
		return
	}

	p.ID = id

	if entry.Assign {
		c.assignCategoriesLocked(p, entry.Publish, true)
		return
	}

	p.Status = entity.PostCreated
	c.emitPostCreated(p)
}

func (c *Client) handleModify(entry calls.Entry, payload any) {
	p := entry.Post

	if _, ok := boolish(payload); !ok {
		c.failPost(ErrParsing, "could not read the result, not a boolean", p)
		return
	}

	// The republish write of a silent creation ends a create flow.
	if entry.Silent {
		p.Status = entity.PostCreated
		c.emitPostCreated(p)
		return
	}

	if entry.Assign {
		c.assignCategoriesLocked(p, false, false)
		return
	}

	p.Status = entity.PostModified
	c.emitPostModified(p)
}

func (c *Client) handleRemove(entry calls.Entry, payload any) {
	p := entry.Post

	if _, ok := boolish(payload); !ok {
		c.failPost(ErrParsing, "could not read the result, not a boolean", p)
		return
	}

	p.Status = entity.PostRemoved
	c.emitPostRemoved(p)
}

// handleGetPostCategories completes a fetch on category-orchestrated
// dialects. A malformed category list is reported but does not fail the
// fetch; the post is delivered without categories.
func (c *Client) handleGetPostCategories(entry calls.Entry, payload any) {
	p := entry.Post
	list, ok := payload.([]any)

	if !ok {
		c.emitError(&Error{
			Kind:    ErrParsing,
			Message: "could not read the category list, the post is delivered without categories",
			Post:    p,
		})
	} else {
		var names []string

		for _, raw := range list {
			m, ok := raw.(map[string]any)

			if !ok {
				continue
			}

			if name := mapString(m, "categoryName"); name != "" {
				names = append(names, name)
			}
		}

		p.Categories = names
	}

	p.Status = entity.PostFetched
	c.emitPostFetched(p)
}

// handleSetPostCategories continues the write flow after an assignment. A
// malformed result is reported but the flow still runs to completion.
func (c *Client) handleSetPostCategories(entry calls.Entry, payload any) {
	p := entry.Post

	if _, ok := payload.(bool); !ok {
		c.emitError(&Error{
			Kind:    ErrParsing,
			Message: "could not read the result of the category assignment, not a boolean",
			Post:    p,
		})
	}

	// Publish only when the flow started as a create of a public post.
	if entry.Publish && !p.Private {
		c.republishLocked(p)
		return
	}

	if !entry.Publish {
		if entry.Silent {
			p.Status = entity.PostCreated
			c.emitPostCreated(p)
		} else {
			p.Status = entity.PostModified
			c.emitPostModified(p)
		}
	}
}

func (c *Client) handleTrackBacks(entry calls.Entry, payload any) {
	pings, ok := parseTrackBacks(payload)

	if !ok {
		c.emitError(&Error{Kind: ErrParsing, Message: "could not read the list of trackback pings", Post: entry.Post})
		return
	}

	c.emitTrackBacks(entry.Post, pings)
}

func (c *Client) handleMedia(entry calls.Entry, payload any) {
	media := entry.Media
	m, ok := payload.(map[string]any)

	if !ok {
		c.failMedia(ErrParsing, "could not read the result, not a struct", media)
		return
	}

	location := mapString(m, "url")

	if location == "" {
		c.failMedia(ErrParsing, "the upload result carries no url", media)
		return
	}

	media.URL = location
	media.Status = entity.MediaCreated
	c.emitMediaCreated(media)
}
