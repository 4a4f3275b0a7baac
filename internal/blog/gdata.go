package blog

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/blogwire/blogwire/internal/app"
	"github.com/blogwire/blogwire/internal/calls"
	"github.com/blogwire/blogwire/internal/entity"
	"github.com/blogwire/blogwire/internal/transport"
)

const (
	gdataFeedBase  = "http://www.blogger.com/feeds"
	clientLoginURL = "https://www.google.com/accounts/ClientLogin"
)

var (
	rxAuthToken = regexp.MustCompile(`Auth=(.+)`)
	rxPostID    = regexp.MustCompile(`post-(\d+)`)
	rxBlogID    = regexp.MustCompile(`blog-(\d+)`)
	rxProfileID = regexp.MustCompile(`http://www\.blogger\.com/profile/(\d+)`)
	rxPublished = regexp.MustCompile(`<published>(.+)</published>`)
	rxUpdated   = regexp.MustCompile(`<updated>(.+)</updated>`)
)

// GData talks to one blog over the Atom publishing dialect. Reads are
// plain feed fetches; writes carry Atom entry documents and require a
// bearer token that is exchanged lazily and renewed after expiry.
type GData struct {
	mu     sync.Mutex
	closed atomic.Bool

	blogURL   *url.URL
	blogID    string
	username  string
	password  string
	fullName  string
	profileID string

	tr     transport.Transport
	reg    *calls.Registry
	auth   *authSession
	parser *gofeed.Parser
	logger *slog.Logger

	callbacks
}

// NewGData creates a client for the configured account. The URL is the
// blog's web address, used to discover the profile id.
func NewGData(cfg *entity.Config) (*GData, error) {
	u, err := url.Parse(cfg.URL)

	if err != nil {
		return nil, fmt.Errorf("could not parse the blog URL: %w", err)
	}

	g := &GData{
		blogURL:  u,
		blogID:   cfg.BlogID,
		username: cfg.Username,
		password: cfg.Password,
		fullName: cfg.FullName,
		reg:      calls.NewRegistry(),
		auth:     newAuthSession(),
		parser:   gofeed.NewParser(),
		logger:   app.Logger(),
	}

	tr, err := transport.New(cfg.URL, userAgent, time.Duration(cfg.TimeoutSeconds)*time.Second, gdataSink{g})

	if err != nil {
		return nil, err
	}

	g.tr = tr

	return g, nil
}

// Close stops completion processing; results of calls still on the wire
// are dropped.
func (g *GData) Close() {
	g.closed.Store(true)

	if n := g.reg.Outstanding(); n > 0 {
		g.logger.Debug("dropping unresolved calls", "count", n)
	}
}

// ProfileID returns the discovered profile id, empty until FetchProfileID
// has completed.
func (g *GData) ProfileID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.profileID
}

// locked runs f under the client mutex, then invokes the events f queued
// once the mutex is released. Handlers therefore never observe the mutex
// held and can issue follow-up operations directly, such as listing blogs
// from the profile-id handler.
func (g *GData) locked(f func()) {
	g.mu.Lock()
	f()
	events := g.take()
	g.mu.Unlock()

	for _, emit := range events {
		emit()
	}
}

// FetchProfileID discovers the account's profile id from the blog's web
// page. ListBlogs needs it.
func (g *GData) FetchProfileID() {
	if g.closed.Load() {
		return
	}

	g.locked(func() {
		token := g.reg.Register(calls.Entry{Kind: calls.KindFetchProfileID})
		g.tr.Get(token, g.blogURL.String())
	})
}

// ListBlogs fetches the blogs belonging to the discovered profile.
func (g *GData) ListBlogs() {
	if g.closed.Load() {
		return
	}

	g.locked(func() {
		if g.profileID == "" {
			g.emitError(&Error{Kind: ErrOther, Message: "no profile id discovered yet"})
			return
		}

		token := g.reg.Register(calls.Entry{Kind: calls.KindListBlogs})
		g.tr.Get(token, fmt.Sprintf("%s/%s/blogs", gdataFeedBase, g.profileID))
	})
}

// ListRecentPosts fetches the newest posts, at most number of them.
func (g *GData) ListRecentPosts(number int) {
	g.ListRecentPostsFiltered(nil, number, time.Time{}, time.Time{}, time.Time{}, time.Time{})
}

// ListRecentPostsFiltered fetches posts restricted by labels and by
// updated/published time windows. Zero times mean no bound.
func (g *GData) ListRecentPostsFiltered(labels []string, number int, updatedMin, updatedMax, publishedMin, publishedMax time.Time) {
	if g.closed.Load() {
		return
	}

	g.locked(func() {
		feedURL := fmt.Sprintf("%s/%s/posts/default", gdataFeedBase, g.blogID)

		if len(labels) > 0 {
			feedURL += "/-/" + strings.Join(labels, "/")
		}

		query := url.Values{}

		for _, bound := range []struct {
			name string
			t    time.Time
		}{
			{"updated-min", updatedMin},
			{"updated-max", updatedMax},
			{"published-min", publishedMin},
			{"published-max", publishedMax},
		} {
			if !bound.t.IsZero() {
				query.Set(bound.name, bound.t.UTC().Format(time.RFC3339))
			}
		}

		if len(query) > 0 {
			feedURL += "?" + query.Encode()
		}

		token := g.reg.Register(calls.Entry{Kind: calls.KindListRecentPosts, Count: number})
		g.tr.Get(token, feedURL)
	})
}

// FetchPost fetches the post identified by its ID from the posts feed.
func (g *GData) FetchPost(p *entity.Post) {
	if g.closed.Load() {
		return
	}

	g.locked(func() {
		if p == nil {
			g.emitError(&Error{Kind: ErrOther, Message: "post is nil"})
			return
		}

		token := g.reg.Register(calls.Entry{Kind: calls.KindFetchPost, Post: p})
		g.tr.Get(token, fmt.Sprintf("%s/%s/posts/default", gdataFeedBase, g.blogID))
	})
}

// CreatePost uploads a new post.
func (g *GData) CreatePost(p *entity.Post) {
	if g.closed.Load() {
		return
	}

	g.locked(func() {
		if p == nil {
			g.emitError(&Error{Kind: ErrOther, Message: "post is nil"})
			return
		}

		g.ensureAuthLocked(func(authToken string, ok bool) {
			if !ok {
				g.failPost(ErrAuthentication, "authentication failed", p)
				return
			}

			token := g.reg.Register(calls.Entry{Kind: calls.KindCreatePost, Post: p})
			g.tr.Post(token,
				fmt.Sprintf("%s/%s/posts/default", gdataFeedBase, g.blogID),
				g.entryMarkup(p, false),
				gdataHeaders(authToken, ""))
		})
	})
}

// ModifyPost uploads changes to an existing post.
func (g *GData) ModifyPost(p *entity.Post) {
	if g.closed.Load() {
		return
	}

	g.locked(func() {
		if p == nil {
			g.emitError(&Error{Kind: ErrOther, Message: "post is nil"})
			return
		}

		g.ensureAuthLocked(func(authToken string, ok bool) {
			if !ok {
				g.failPost(ErrAuthentication, "authentication failed", p)
				return
			}

			token := g.reg.Register(calls.Entry{Kind: calls.KindModifyPost, Post: p})
			g.tr.Post(token,
				fmt.Sprintf("%s/%s/posts/default/%s", gdataFeedBase, g.blogID, p.ID),
				g.entryMarkup(p, true),
				gdataHeaders(authToken, "PUT"))
		})
	})
}

// RemovePost deletes the post identified by its ID.
func (g *GData) RemovePost(p *entity.Post) {
	if g.closed.Load() {
		return
	}

	g.locked(func() {
		if p == nil {
			g.emitError(&Error{Kind: ErrOther, Message: "post is nil"})
			return
		}

		g.ensureAuthLocked(func(authToken string, ok bool) {
			if !ok {
				g.failPost(ErrAuthentication, "authentication failed", p)
				return
			}

			token := g.reg.Register(calls.Entry{Kind: calls.KindRemovePost, Post: p})
			g.tr.Post(token,
				fmt.Sprintf("%s/%s/posts/default/%s", gdataFeedBase, g.blogID, p.ID),
				nil,
				gdataHeaders(authToken, "DELETE"))
		})
	})
}

// ListComments fetches the comments of one post.
func (g *GData) ListComments(p *entity.Post) {
	if g.closed.Load() {
		return
	}

	g.locked(func() {
		if p == nil {
			g.emitError(&Error{Kind: ErrOther, Message: "post is nil"})
			return
		}

		token := g.reg.Register(calls.Entry{Kind: calls.KindListComments, Post: p})
		g.tr.Get(token, fmt.Sprintf("%s/%s/%s/comments/default", gdataFeedBase, g.blogID, p.ID))
	})
}

// ListAllComments fetches the comments of the whole blog.
func (g *GData) ListAllComments() {
	if g.closed.Load() {
		return
	}

	g.locked(func() {
		token := g.reg.Register(calls.Entry{Kind: calls.KindListAllComments})
		g.tr.Get(token, fmt.Sprintf("%s/%s/comments/default", gdataFeedBase, g.blogID))
	})
}

// CreateComment adds a comment to a post.
func (g *GData) CreateComment(p *entity.Post, cm *entity.Comment) {
	if g.closed.Load() {
		return
	}

	g.locked(func() {
		if p == nil || cm == nil {
			g.emitError(&Error{Kind: ErrOther, Message: "post or comment is nil"})
			return
		}

		g.ensureAuthLocked(func(authToken string, ok bool) {
			if !ok {
				g.failComment(ErrAuthentication, "authentication failed", cm)
				return
			}

			token := g.reg.Register(calls.Entry{Kind: calls.KindCreateComment, Post: p, Comment: cm})
			g.tr.Post(token,
				fmt.Sprintf("%s/%s/%s/comments/default", gdataFeedBase, g.blogID, p.ID),
				g.commentMarkup(cm),
				gdataHeaders(authToken, ""))
		})
	})
}

// RemoveComment deletes a comment from a post.
func (g *GData) RemoveComment(p *entity.Post, cm *entity.Comment) {
	if g.closed.Load() {
		return
	}

	g.locked(func() {
		if p == nil || cm == nil {
			g.emitError(&Error{Kind: ErrOther, Message: "post or comment is nil"})
			return
		}

		g.ensureAuthLocked(func(authToken string, ok bool) {
			if !ok {
				g.failComment(ErrAuthentication, "authentication failed", cm)
				return
			}

			token := g.reg.Register(calls.Entry{Kind: calls.KindRemoveComment, Post: p, Comment: cm})
			g.tr.Post(token,
				fmt.Sprintf("%s/%s/%s/comments/default/%s", gdataFeedBase, g.blogID, p.ID, cm.ID),
				nil,
				gdataHeaders(authToken, "DELETE"))
		})
	})
}

// ensureAuthLocked runs then with a usable token. When no valid token is
// cached the continuation is queued and a single exchange is issued; every
// operation queued meanwhile chains onto that same exchange.
func (g *GData) ensureAuthLocked(then func(authToken string, ok bool)) {
	if token, ok := g.auth.validToken(); ok {
		then(token, true)
		return
	}

	g.auth.waiting = append(g.auth.waiting, then)

	if g.auth.inFlight {
		return
	}

	g.auth.inFlight = true

	gateway := clientLoginURL + "?" + url.Values{
		"Email":   {g.username},
		"Passwd":  {g.password},
		"source":  {userAgent},
		"service": {"blogger"},
	}.Encode()

	token := g.reg.Register(calls.Entry{Kind: calls.KindAuth})
	g.tr.Post(token, gateway, nil, nil)
}

func gdataHeaders(authToken, methodOverride string) map[string]string {
	h := map[string]string{
		"Content-Type":  "application/atom+xml; charset=utf-8",
		"Authorization": "GoogleLogin auth=" + authToken,
	}

	if methodOverride != "" {
		h["X-HTTP-Method-Override"] = methodOverride
	}

	return h
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&apos;",
	`"`, "&quot;",
)

// entryMarkup builds the Atom entry document for a post write. Content is
// carried verbatim as xhtml; everything else is escaped.
func (g *GData) entryMarkup(p *entity.Post, withID bool) []byte {
	var b strings.Builder

	b.WriteString("<entry xmlns='http://www.w3.org/2005/Atom'>")

	if withID {
		fmt.Fprintf(&b, "<id>tag:blogger.com,1999:blog-%s.post-%s</id>", g.blogID, p.ID)
	}

	if !p.Created.IsZero() {
		fmt.Fprintf(&b, "<published>%s</published>", p.Created.UTC().Format(time.RFC3339))
	}

	if !p.Modified.IsZero() {
		fmt.Fprintf(&b, "<updated>%s</updated>", p.Modified.UTC().Format(time.RFC3339))
	}

	fmt.Fprintf(&b, "<title type='text'>%s</title>", xmlEscaper.Replace(p.Title))

	if p.Private {
		b.WriteString("<app:control xmlns:app='http://purl.org/atom/app#'><app:draft>yes</app:draft></app:control>")
	}

	b.WriteString("<content type='xhtml'><div xmlns='http://www.w3.org/1999/xhtml'>")
	b.WriteString(p.Content)
	b.WriteString("</div></content>")

	for _, tag := range p.Tags {
		fmt.Fprintf(&b, "<category scheme='http://www.blogger.com/atom/ns#' term='%s' />", xmlEscaper.Replace(tag))
	}

	b.WriteString("<author>")

	if g.fullName != "" {
		fmt.Fprintf(&b, "<name>%s</name>", xmlEscaper.Replace(g.fullName))
	}

	fmt.Fprintf(&b, "<email>%s</email>", xmlEscaper.Replace(g.username))
	b.WriteString("</author></entry>")

	return []byte(b.String())
}

func (g *GData) commentMarkup(cm *entity.Comment) []byte {
	var b strings.Builder

	b.WriteString("<entry xmlns='http://www.w3.org/2005/Atom'>")
	fmt.Fprintf(&b, "<title type='text'>%s</title>", xmlEscaper.Replace(cm.Title))
	fmt.Fprintf(&b, "<content type='html'>%s</content>", xmlEscaper.Replace(cm.Content))
	b.WriteString("<author>")

	if cm.Name != "" {
		fmt.Fprintf(&b, "<name>%s</name>", xmlEscaper.Replace(cm.Name))
	}

	fmt.Fprintf(&b, "<email>%s</email>", xmlEscaper.Replace(cm.Email))
	b.WriteString("</author></entry>")

	return []byte(b.String())
}

// gdataSink adapts the transport's completion callbacks to the client.
type gdataSink struct {
	g *GData
}

func (s gdataSink) Success(token uint64, payload any) {
	s.g.complete(token, payload, nil)
}

func (s gdataSink) Failure(token uint64, code int, message string) {
	s.g.complete(token, nil, &callFailure{code: code, message: message})
}

func (g *GData) failPost(kind ErrorKind, msg string, p *entity.Post) {
	p.Status = entity.PostError
	p.Error = msg
	g.emitError(&Error{Kind: kind, Message: msg, Post: p})
}

func (g *GData) failComment(kind ErrorKind, msg string, cm *entity.Comment) {
	cm.Status = entity.CommentError
	cm.Error = msg
	g.emitError(&Error{Kind: kind, Message: msg, Comment: cm})
}

func (g *GData) complete(token uint64, payload any, failure *callFailure) {
	if g.closed.Load() {
		return
	}

	g.locked(func() {
		g.completeLocked(token, payload, failure)
	})
}

func (g *GData) completeLocked(token uint64, payload any, failure *callFailure) {
	entry, ok := g.reg.Resolve(token)

	if !ok {
		g.emitError(&Error{Kind: ErrOther, Message: fmt.Sprintf("no pending call for token %d", token)})
		return
	}

	if entry.Kind == calls.KindAuth {
		g.handleAuth(payload, failure)
		return
	}

	if failure != nil {
		switch {
		case entry.Comment != nil:
			g.failComment(ErrTransport, failure.message, entry.Comment)
		case entry.Post != nil:
			g.failPost(ErrTransport, failure.message, entry.Post)
		default:
			g.emitError(&Error{Kind: ErrTransport, Message: failure.message})
		}

		return
	}

	data, ok := payload.([]byte)

	if !ok {
		g.emitError(&Error{Kind: ErrParsing, Message: "unexpected payload type"})
		return
	}

	switch entry.Kind {
	case calls.KindFetchProfileID:
		g.handleProfileID(data)
	case calls.KindListBlogs:
		g.handleGDataBlogs(data)
	case calls.KindListRecentPosts:
		g.handleGDataRecentPosts(entry, data)
	case calls.KindFetchPost:
		g.handleGDataFetch(entry, data)
	case calls.KindCreatePost:
		g.handleAtomWrite(entry, data, entity.PostCreated)
	case calls.KindModifyPost:
		g.handleAtomWrite(entry, data, entity.PostModified)
	case calls.KindRemovePost:
		entry.Post.Status = entity.PostRemoved
		g.emitPostRemoved(entry.Post)
	case calls.KindListComments:
		g.handleGDataComments(entry, data)
	case calls.KindListAllComments:
		g.handleGDataAllComments(data)
	case calls.KindCreateComment:
		g.handleCommentWrite(entry, data)
	case calls.KindRemoveComment:
		entry.Comment.Status = entity.CommentRemoved
		g.emitCommentRemoved(entry.Post, entry.Comment)
	default:
		g.emitError(&Error{Kind: ErrOther, Message: fmt.Sprintf("unhandled call kind %d", entry.Kind)})
	}
}

// handleAuth ends the token exchange and resumes everything chained onto
// it, in the order the operations were issued.
func (g *GData) handleAuth(payload any, failure *callFailure) {
	authToken := ""

	if failure == nil {
		if data, ok := payload.([]byte); ok {
			if m := rxAuthToken.FindStringSubmatch(string(data)); m != nil {
				authToken = m[1]
			}
		}
	}

	if authToken != "" {
		g.auth.accept(authToken)
	} else {
		g.logger.Warn("token exchange failed", "gateway", clientLoginURL)
	}

	for _, then := range g.auth.takeWaiting() {
		then(authToken, authToken != "")
	}
}

func (g *GData) handleProfileID(data []byte) {
	id := ""

	if doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data)); err == nil {
		doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			href, _ := sel.Attr("href")

			if m := rxProfileID.FindStringSubmatch(href); m != nil {
				id = m[1]
				return false
			}

			return true
		})
	}

	// Profile links sometimes sit outside anchors, in feed link headers.
	if id == "" {
		if m := rxProfileID.FindStringSubmatch(string(data)); m != nil {
			id = m[1]
		}
	}

	if id == "" {
		g.emitError(&Error{Kind: ErrParsing, Message: "could not find the profile id on the blog page"})
		return
	}

	g.profileID = id
	g.emitProfileID(id)
}

func (g *GData) handleGDataBlogs(data []byte) {
	feed, err := g.parser.ParseString(string(data))

	if err != nil {
		g.emitError(&Error{Kind: ErrParsing, Message: "could not parse the blog feed: " + err.Error()})
		return
	}

	blogs := make([]entity.BlogInfo, 0, len(feed.Items))

	for _, item := range feed.Items {
		info := entity.BlogInfo{
			Title:   item.Title,
			URL:     item.Link,
			Summary: item.Description,
		}

		if m := rxBlogID.FindStringSubmatch(item.GUID); m != nil {
			info.ID = m[1]
		}

		blogs = append(blogs, info)
	}

	g.emitBlogs(blogs)
}

func (g *GData) handleGDataRecentPosts(entry calls.Entry, data []byte) {
	feed, err := g.parser.ParseString(string(data))

	if err != nil {
		g.emitError(&Error{Kind: ErrParsing, Message: "could not parse the posts feed: " + err.Error()})
		return
	}

	posts := make([]entity.Post, 0, len(feed.Items))

	for _, item := range feed.Items {
		if entry.Count > 0 && len(posts) >= entry.Count {
			break
		}

		posts = append(posts, postFromItem(item))
	}

	g.emitRecentPosts(posts)
}

func (g *GData) handleGDataFetch(entry calls.Entry, data []byte) {
	feed, err := g.parser.ParseString(string(data))

	if err != nil {
		g.failPost(ErrParsing, "could not parse the posts feed: "+err.Error(), entry.Post)
		return
	}

	p := entry.Post

	for _, item := range feed.Items {
		m := rxPostID.FindStringSubmatch(item.GUID)

		if m == nil || m[1] != p.ID {
			continue
		}

		*p = postFromItem(item)
		g.emitPostFetched(p)

		return
	}

	g.failPost(ErrOther, "the posts feed carries no post with the requested id", p)
}

// handleAtomWrite ends a create or modify flow. The server echoes the
// entry back; the id and timestamps are read out of that echo.
func (g *GData) handleAtomWrite(entry calls.Entry, data []byte, status entity.PostStatus) {
	p := entry.Post
	body := string(data)
	m := rxPostID.FindStringSubmatch(body)

	if m == nil {
		g.failPost(ErrParsing, "could not read the post id out of the result", p)
		return
	}

	p.ID = m[1]

	if pm := rxPublished.FindStringSubmatch(body); pm != nil {
		if dt, err := time.Parse(time.RFC3339, pm[1]); err == nil {
			p.Created = dt.Local()
		}
	}

	if um := rxUpdated.FindStringSubmatch(body); um != nil {
		if dt, err := time.Parse(time.RFC3339, um[1]); err == nil {
			p.Modified = dt.Local()
		}
	}

	p.Status = status

	if status == entity.PostCreated {
		g.emitPostCreated(p)
	} else {
		g.emitPostModified(p)
	}
}

func (g *GData) handleGDataComments(entry calls.Entry, data []byte) {
	list, err := g.commentsFromFeed(data)

	if err != nil {
		g.emitError(&Error{Kind: ErrParsing, Message: err.Error(), Post: entry.Post})
		return
	}

	g.emitComments(entry.Post, list)
}

func (g *GData) handleGDataAllComments(data []byte) {
	list, err := g.commentsFromFeed(data)

	if err != nil {
		g.emitError(&Error{Kind: ErrParsing, Message: err.Error()})
		return
	}

	g.emitAllComments(list)
}

func (g *GData) handleCommentWrite(entry calls.Entry, data []byte) {
	cm := entry.Comment
	body := string(data)
	m := rxPostID.FindStringSubmatch(body)

	if m == nil {
		g.failComment(ErrParsing, "could not read the comment id out of the result", cm)
		return
	}

	cm.ID = m[1]

	if pm := rxPublished.FindStringSubmatch(body); pm != nil {
		if dt, err := time.Parse(time.RFC3339, pm[1]); err == nil {
			cm.Created = dt.Local()
		}
	}

	if um := rxUpdated.FindStringSubmatch(body); um != nil {
		if dt, err := time.Parse(time.RFC3339, um[1]); err == nil {
			cm.Modified = dt.Local()
		}
	}

	cm.Status = entity.CommentCreated
	g.emitCommentCreated(entry.Post, cm)
}

func (g *GData) commentsFromFeed(data []byte) ([]entity.Comment, error) {
	feed, err := g.parser.ParseString(string(data))

	if err != nil {
		return nil, fmt.Errorf("could not parse the comments feed: %w", err)
	}

	list := make([]entity.Comment, 0, len(feed.Items))

	for _, item := range feed.Items {
		cm := entity.Comment{
			Title:  item.Title,
			URL:    item.Link,
			Status: entity.CommentFetched,
		}

		cm.Content = item.Content

		if cm.Content == "" {
			cm.Content = item.Description
		}

		if m := rxPostID.FindStringSubmatch(item.GUID); m != nil {
			cm.ID = m[1]
		}

		if item.PublishedParsed != nil {
			cm.Created = item.PublishedParsed.Local()
		}

		if item.UpdatedParsed != nil {
			cm.Modified = item.UpdatedParsed.Local()
		}

		if len(item.Authors) > 0 && item.Authors[0] != nil {
			cm.Name = item.Authors[0].Name
			cm.Email = item.Authors[0].Email
		}

		list = append(list, cm)
	}

	return list, nil
}

// postFromItem maps one feed entry onto a post.
func postFromItem(item *gofeed.Item) entity.Post {
	p := entity.Post{
		Title:  item.Title,
		Link:   item.Link,
		Tags:   item.Categories,
		Status: entity.PostFetched,
	}

	if m := rxPostID.FindStringSubmatch(item.GUID); m != nil {
		p.ID = m[1]
	}

	p.Content = item.Content

	if p.Content == "" {
		p.Content = item.Description
	}

	if item.PublishedParsed != nil {
		p.Created = item.PublishedParsed.Local()
	}

	if item.UpdatedParsed != nil {
		p.Modified = item.UpdatedParsed.Local()
	}

	return p
}
