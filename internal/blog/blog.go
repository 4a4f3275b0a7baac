// Package blog implements asynchronous clients for the classic XML-RPC
// blogging dialects and the Atom-based Blogger dialect. Every operation is
// fire-and-forget: it issues network calls and returns immediately, and
// results arrive later through registered On* handlers.
package blog

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/blogwire/blogwire/internal/app"
	"github.com/blogwire/blogwire/internal/calls"
	"github.com/blogwire/blogwire/internal/categories"
	"github.com/blogwire/blogwire/internal/entity"
	"github.com/blogwire/blogwire/internal/transport"
)

const userAgent = "blogwire/0.9 (+https://github.com/blogwire/blogwire)"

// storeTimeout bounds category snapshot reads and writes.
const storeTimeout = 5 * time.Second

// Client talks to one blog account over one of the XML-RPC dialects.
//
// All operations are asynchronous. Completion processing is serialized by
// an internal mutex; handlers run after that processing has settled and
// may call back into the client, including retrying a failed operation
// from the error event.
type Client struct {
	mu     sync.Mutex
	closed atomic.Bool

	url      *url.URL
	blogID   string
	username string
	password string

	proto  dialect
	tr     transport.Transport
	reg    *calls.Registry
	cats   *categories.Cache
	logger *slog.Logger

	// Posts whose operation waits for the category listing to land.
	createQueue []*entity.Post
	modifyQueue []*entity.Post
	fetchQueue  []*entity.Post
	// Guards against issuing a second listing while one is outstanding.
	categoriesInFlight bool

	callbacks
}

// New creates a client for the configured account. The store persists
// category snapshots across runs.
func New(cfg *entity.Config, store categories.Store) (*Client, error) {
	proto, ok := dialectFor(cfg.Dialect)

	if !ok {
		return nil, fmt.Errorf("unknown dialect %q", cfg.Dialect)
	}

	u, err := url.Parse(cfg.URL)

	if err != nil {
		return nil, fmt.Errorf("could not parse the endpoint URL: %w", err)
	}

	c := &Client{
		url:      u,
		blogID:   cfg.BlogID,
		username: cfg.Username,
		password: cfg.Password,
		proto:    proto,
		reg:      calls.NewRegistry(),
		cats: categories.NewCache(categories.Key{
			Host:     u.Hostname(),
			BlogID:   cfg.BlogID,
			Username: cfg.Username,
		}, store),
		logger: app.Logger(),
	}

	tr, err := transport.New(cfg.URL, userAgent, time.Duration(cfg.TimeoutSeconds)*time.Second, clientSink{c})

	if err != nil {
		return nil, err
	}

	c.tr = tr

	return c, nil
}

// Close stops completion processing. Calls still on the wire may finish,
// but their results are dropped; the caller's posts are never touched
// after Close returns.
func (c *Client) Close() {
	c.closed.Store(true)

	if n := c.reg.Outstanding(); n > 0 {
		c.logger.Debug("dropping unresolved calls", "count", n)
	}
}

// Dialect reports which wire dialect the client speaks.
func (c *Client) Dialect() string {
	return c.proto.name()
}

// Categories returns the cached category list.
func (c *Client) Categories() []entity.Category {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.cats.List()
}

// locked runs f under the client mutex, then invokes the events f queued
// once the mutex is released. Handlers therefore never observe the mutex
// held and can issue follow-up operations directly.
func (c *Client) locked(f func()) {
	c.mu.Lock()
	f()
	events := c.take()
	c.mu.Unlock()

	for _, emit := range events {
		emit()
	}
}

// FetchUserInfo asks the server for the account profile.
func (c *Client) FetchUserInfo() {
	if c.closed.Load() {
		return
	}

	c.locked(func() {
		token := c.reg.Register(calls.Entry{Kind: calls.KindFetchUserInfo})
		c.tr.Call(token, "blogger.getUserInfo", c.bloggerArgs(""))
	})
}

// ListBlogs asks the server which blogs the account can write to.
func (c *Client) ListBlogs() {
	if c.closed.Load() {
		return
	}

	c.locked(func() {
		token := c.reg.Register(calls.Entry{Kind: calls.KindListBlogs})
		c.tr.Call(token, "blogger.getUsersBlogs", c.bloggerArgs(""))
	})
}

// ListRecentPosts fetches the newest posts, at most number of them.
func (c *Client) ListRecentPosts(number int) {
	if c.closed.Load() {
		return
	}

	c.locked(func() {
		c.loadCategoriesLocked()

		token := c.reg.Register(calls.Entry{Kind: calls.KindListRecentPosts, Count: number})
		args := append(c.proto.defaultArgs(c, c.blogID), number)
		c.tr.Call(token, c.proto.method(opGetRecentPosts), args)
	})
}

// ListCategories fetches the server's category list and refreshes the
// cached snapshot.
func (c *Client) ListCategories() {
	if c.closed.Load() {
		return
	}

	c.locked(func() {
		if !c.proto.capabilities().listsCategories {
			c.emitError(&Error{Kind: ErrNotSupported, Message: "the dialect has no category listing"})
			return
		}

		c.requestCategoriesLocked()
	})
}

// FetchPost fetches the post identified by its ID and fills in the rest.
func (c *Client) FetchPost(p *entity.Post) {
	if c.closed.Load() {
		return
	}

	c.locked(func() {
		if p == nil {
			c.emitError(&Error{Kind: ErrOther, Message: "post is nil"})
			return
		}

		c.loadCategoriesLocked()

		if c.deferForCategoriesLocked(p, &c.fetchQueue) {
			return
		}

		c.fetchLocked(p)
	})
}

// CreatePost uploads a new post. On category-orchestrated dialects a post
// with categories is written private first, gets its categories assigned,
// and is only then republished with the caller's visibility.
func (c *Client) CreatePost(p *entity.Post) {
	if c.closed.Load() {
		return
	}

	c.locked(func() {
		if p == nil {
			c.emitError(&Error{Kind: ErrOther, Message: "post is nil"})
			return
		}

		c.loadCategoriesLocked()

		if c.deferForCategoriesLocked(p, &c.createQueue) {
			return
		}

		c.writePostLocked(p, true)
	})
}

// ModifyPost uploads changes to an existing post.
func (c *Client) ModifyPost(p *entity.Post) {
	if c.closed.Load() {
		return
	}

	c.locked(func() {
		if p == nil {
			c.emitError(&Error{Kind: ErrOther, Message: "post is nil"})
			return
		}

		c.loadCategoriesLocked()

		if c.deferForCategoriesLocked(p, &c.modifyQueue) {
			return
		}

		c.writePostLocked(p, false)
	})
}

// RemovePost deletes the post identified by its ID.
func (c *Client) RemovePost(p *entity.Post) {
	if c.closed.Load() {
		return
	}

	c.locked(func() {
		if p == nil {
			c.emitError(&Error{Kind: ErrOther, Message: "post is nil"})
			return
		}

		token := c.reg.Register(calls.Entry{Kind: calls.KindRemovePost, Post: p})
		// The publish flag must be set for the server to actually remove.
		args := append(c.bloggerArgs(p.ID), true)
		c.tr.Call(token, "blogger.deletePost", args)
	})
}

// CreateMedia uploads a media object.
func (c *Client) CreateMedia(media *entity.Media) {
	if c.closed.Load() {
		return
	}

	c.locked(func() {
		if media == nil {
			c.emitError(&Error{Kind: ErrOther, Message: "media is nil"})
			return
		}

		uploader, ok := c.proto.(mediaUploader)

		if !ok || !c.proto.capabilities().media {
			c.failMedia(ErrNotSupported, "the dialect cannot upload media", media)
			return
		}

		token := c.reg.Register(calls.Entry{Kind: calls.KindCreateMedia, Media: media})
		args := append(c.proto.defaultArgs(c, c.blogID), uploader.mediaArgs(media)...)
		c.tr.Call(token, c.proto.method(opCreateMedia), args)
	})
}

// ListTrackBackPings fetches the trackback pings of a post.
func (c *Client) ListTrackBackPings(p *entity.Post) {
	if c.closed.Load() {
		return
	}

	c.locked(func() {
		if p == nil {
			c.emitError(&Error{Kind: ErrOther, Message: "post is nil"})
			return
		}

		if !c.proto.capabilities().trackBacks {
			c.emitError(&Error{Kind: ErrNotSupported, Message: "the dialect has no trackback listing"})
			return
		}

		token := c.reg.Register(calls.Entry{Kind: calls.KindListTrackBackPings, Post: p})
		c.tr.Call(token, methodGetTrackBackPings, c.proto.defaultArgs(c, p.ID))
	})
}

// bloggerArgs builds the app-key argument prefix used by the calls every
// dialect still serves through the oldest method family.
func (c *Client) bloggerArgs(id string) []any {
	args := []any{appKey}

	if id != "" {
		args = append(args, id)
	}

	return append(args, c.username, c.password)
}

// loadCategoriesLocked reads the persisted snapshot once per client, so
// inline category ids in responses resolve without a server round trip.
func (c *Client) loadCategoriesLocked() {
	ctx, cancel := storeContext()
	defer cancel()

	c.cats.Load(ctx)
}

// deferForCategoriesLocked parks the post on the given queue when the
// operation needs category ids that are not cached yet. Reports true when
// the post was parked; the operation is replayed once the listing lands.
func (c *Client) deferForCategoriesLocked(p *entity.Post, queue *[]*entity.Post) bool {
	if !c.proto.capabilities().assignsCategories || len(p.Categories) == 0 {
		return false
	}

	if !c.cats.Empty() {
		return false
	}

	c.logger.Debug("no categories cached yet, listing them first", "dialect", c.proto.name())
	*queue = append(*queue, p)
	c.requestCategoriesLocked()

	return true
}

func (c *Client) requestCategoriesLocked() {
	if c.categoriesInFlight {
		return
	}

	c.categoriesInFlight = true

	token := c.reg.Register(calls.Entry{Kind: calls.KindListCategories})
	c.tr.Call(token, c.proto.method(opListCategories), c.proto.defaultArgs(c, c.blogID))
}

func (c *Client) fetchLocked(p *entity.Post) {
	token := c.reg.Register(calls.Entry{Kind: calls.KindFetchPost, Post: p})
	c.tr.Call(token, c.proto.method(opFetchPost), c.proto.defaultArgs(c, p.ID))
}

// writePostLocked issues the actual post write. When categories have to be
// assigned afterwards, a create is forced private for the duration of the
// flow; the caller's visibility is restored on the post right away and
// reapplied by the final republish write.
func (c *Client) writePostLocked(p *entity.Post, create bool) {
	assign := c.proto.capabilities().assignsCategories && len(p.Categories) > 0
	publish := false
	origPrivate := p.Private

	if create && assign {
		publish = !origPrivate
		p.Private = true
	}

	kind, op, id := calls.KindModifyPost, opModifyPost, p.ID

	if create {
		kind, op, id = calls.KindCreatePost, opCreatePost, c.blogID
	}

	token := c.reg.Register(calls.Entry{
		Kind:    kind,
		Post:    p,
		Publish: publish,
		Assign:  assign,
	})

	if rw, ok := c.proto.(rawWriter); ok {
		var body []byte

		if create {
			body = rw.createMarkup(c, p)
		} else {
			body = rw.modifyMarkup(c, p)
		}

		c.tr.Post(token, c.url.String(), body, rawPostHeaders())
	} else {
		args := append(c.proto.defaultArgs(c, id), c.proto.writeArgs(p)...)
		c.tr.Call(token, c.proto.method(op), args)
	}

	if create && assign {
		p.Private = origPrivate
	}
}

// republishLocked is the final write of a silent creation: the post exists
// and has its categories, this write applies the caller's visibility.
func (c *Client) republishLocked(p *entity.Post) {
	token := c.reg.Register(calls.Entry{Kind: calls.KindModifyPost, Post: p, Silent: true})

	if rw, ok := c.proto.(rawWriter); ok {
		c.tr.Post(token, c.url.String(), rw.modifyMarkup(c, p), rawPostHeaders())
		return
	}

	args := append(c.proto.defaultArgs(c, p.ID), c.proto.writeArgs(p)...)
	c.tr.Call(token, c.proto.method(opModifyPost), args)
}

// assignCategoriesLocked attaches the post's categories by id. Names the
// cache cannot resolve are dropped silently.
func (c *Client) assignCategoriesLocked(p *entity.Post, publish, fromCreate bool) {
	token := c.reg.Register(calls.Entry{
		Kind:    calls.KindSetPostCategories,
		Post:    p,
		Publish: publish,
		Silent:  fromCreate,
	})

	list := make([]any, 0, len(p.Categories))

	for _, name := range p.Categories {
		id, ok := c.cats.IDByName(name)

		if !ok {
			c.logger.Debug("dropping category unknown to the server", "name", name)
			continue
		}

		list = append(list, map[string]any{"categoryId": categoryIDValue(id)})
	}

	args := append(c.proto.defaultArgs(c, p.ID), list)
	c.tr.Call(token, methodSetPostCategories, args)
}

func rawPostHeaders() map[string]string {
	return map[string]string{"Content-Type": "text/xml; charset=utf-8"}
}

func storeContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}

// clientSink adapts the transport's completion callbacks to the client.
type clientSink struct {
	c *Client
}

func (s clientSink) Success(token uint64, payload any) {
	s.c.complete(token, payload, nil)
}

func (s clientSink) Failure(token uint64, code int, message string) {
	s.c.complete(token, nil, &callFailure{code: code, message: message})
}

type callFailure struct {
	code    int
	message string
}
