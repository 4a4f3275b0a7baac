package blog

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogwire/blogwire/internal/app"
	"github.com/blogwire/blogwire/internal/calls"
	"github.com/blogwire/blogwire/internal/entity"
)

func newTestGData(t *testing.T) (*GData, *fakeTransport) {
	t.Helper()

	u, err := url.Parse("http://myblog.blogspot.com/")
	require.NoError(t, err)

	tr := &fakeTransport{}

	return &GData{
		blogURL:  u,
		blogID:   "1",
		username: "alice@example.com",
		password: "secret",
		fullName: "Alice Example",
		tr:       tr,
		reg:      calls.NewRegistry(),
		auth:     newAuthSession(),
		parser:   gofeed.NewParser(),
		logger:   app.Logger(),
	}, tr
}

const postsFeed = `<?xml version="1.0"?>
<feed xmlns="http://www.w3.org/2005/Atom">
	<title>My Blog</title>
	<entry>
		<id>tag:blogger.com,1999:blog-1.post-123</id>
		<title>Hello</title>
		<link rel="alternate" href="http://myblog.blogspot.com/2009/05/hello.html"/>
		<published>2009-05-04T12:30:00Z</published>
		<updated>2009-05-04T12:35:00Z</updated>
		<content type="html">body one</content>
		<category scheme="http://www.blogger.com/atom/ns#" term="go"/>
	</entry>
	<entry>
		<id>tag:blogger.com,1999:blog-1.post-456</id>
		<title>Second</title>
		<content type="html">body two</content>
	</entry>
</feed>`

func TestGDataWritesShareOneTokenExchange(t *testing.T) {
	g, tr := newTestGData(t)

	p1 := &entity.Post{Title: "Hello", Content: "body"}
	p2 := &entity.Post{ID: "7", Title: "Changed"}

	g.CreatePost(p1)
	g.ModifyPost(p2)

	// Both writes chain onto a single token exchange.
	require.Len(t, tr.calls, 1)
	exchange := tr.calls[0]
	assert.True(t, strings.HasPrefix(exchange.url, clientLoginURL+"?"), exchange.url)
	assert.Contains(t, exchange.url, "Email=alice%40example.com")
	assert.Contains(t, exchange.url, "service=blogger")

	g.complete(exchange.token, []byte("SID=aaa\nLSID=bbb\nAuth=token123"), nil)

	require.Len(t, tr.calls, 3)

	create := tr.calls[1]
	assert.Equal(t, "http://www.blogger.com/feeds/1/posts/default", create.url)
	assert.Equal(t, "GoogleLogin auth=token123", create.headers["Authorization"])
	assert.Equal(t, "application/atom+xml; charset=utf-8", create.headers["Content-Type"])
	assert.NotContains(t, create.headers, "X-HTTP-Method-Override")
	assert.Contains(t, string(create.body), "<title type='text'>Hello</title>")
	assert.NotContains(t, string(create.body), "<id>", "a create carries no entry id")

	modify := tr.calls[2]
	assert.Equal(t, "http://www.blogger.com/feeds/1/posts/default/7", modify.url)
	assert.Equal(t, "PUT", modify.headers["X-HTTP-Method-Override"])
	assert.Contains(t, string(modify.body), "<id>tag:blogger.com,1999:blog-1.post-7</id>")

	var created []*entity.Post
	g.OnPostCreated(func(p *entity.Post) { created = append(created, p) })

	echo := []byte(`<entry xmlns="http://www.w3.org/2005/Atom">
		<id>tag:blogger.com,1999:blog-1.post-123</id>
		<published>2009-05-04T12:30:00Z</published>
		<updated>2009-05-04T12:35:00Z</updated>
	</entry>`)
	g.complete(create.token, echo, nil)

	require.Len(t, created, 1)
	assert.Equal(t, "123", p1.ID)
	assert.Equal(t, entity.PostCreated, p1.Status)
	assert.True(t, p1.Created.Equal(time.Date(2009, 5, 4, 12, 30, 0, 0, time.UTC)))
	assert.True(t, p1.Modified.Equal(time.Date(2009, 5, 4, 12, 35, 0, 0, time.UTC)))
}

func TestGDataTokenIsReusedUntilItExpires(t *testing.T) {
	g, tr := newTestGData(t)

	current := time.Now()
	g.auth.now = func() time.Time { return current }

	g.CreatePost(&entity.Post{Title: "First"})
	require.Len(t, tr.calls, 1)
	g.complete(tr.calls[0].token, []byte("Auth=token123"), nil)
	require.Len(t, tr.calls, 2)

	// A later write within the token's lifetime goes out directly.
	current = current.Add(authTTL - time.Second)
	g.CreatePost(&entity.Post{Title: "Second"})
	require.Len(t, tr.calls, 3)
	assert.NotContains(t, tr.calls[2].url, clientLoginURL)

	// Past the lifetime a fresh exchange is issued first.
	current = current.Add(2 * time.Second)
	g.CreatePost(&entity.Post{Title: "Third"})
	require.Len(t, tr.calls, 4)
	assert.True(t, strings.HasPrefix(tr.calls[3].url, clientLoginURL+"?"))
}

func TestGDataAuthFailureFailsTheWrite(t *testing.T) {
	g, tr := newTestGData(t)

	var errs []*Error
	g.OnError(func(e *Error) { errs = append(errs, e) })

	p := &entity.Post{Title: "Hello"}
	g.CreatePost(p)

	require.Len(t, tr.calls, 1)
	g.complete(tr.calls[0].token, nil, &callFailure{code: 403, message: "Error=BadAuthentication"})

	require.Len(t, errs, 1)
	assert.Equal(t, ErrAuthentication, errs[0].Kind)
	assert.Same(t, p, errs[0].Post)
	assert.Equal(t, entity.PostError, p.Status)
	assert.Len(t, tr.calls, 1, "the write is never issued without a token")
}

func TestGDataProfileIDDiscovery(t *testing.T) {
	g, tr := newTestGData(t)

	var ids []string
	g.OnProfileID(func(id string) { ids = append(ids, id) })

	g.FetchProfileID()

	require.Len(t, tr.calls, 1)
	assert.True(t, tr.calls[0].get)
	assert.Equal(t, "http://myblog.blogspot.com/", tr.calls[0].url)

	page := []byte(`<html><body>
		<a href="http://www.blogger.com/profile/1234567890">My profile</a>
	</body></html>`)
	g.complete(tr.calls[0].token, page, nil)

	require.Len(t, ids, 1)
	assert.Equal(t, "1234567890", ids[0])
	assert.Equal(t, "1234567890", g.ProfileID())

	g.ListBlogs()

	require.Len(t, tr.calls, 2)
	assert.Equal(t, "http://www.blogger.com/feeds/1234567890/blogs", tr.calls[1].url)
}

func TestProfileIDHandlerMayChainListBlogs(t *testing.T) {
	g, tr := newTestGData(t)

	g.OnProfileID(func(string) { g.ListBlogs() })

	var blogs []entity.BlogInfo
	g.OnBlogs(func(list []entity.BlogInfo) { blogs = list })

	g.FetchProfileID()
	require.Len(t, tr.calls, 1)

	page := []byte(`<html><body>
		<a href="http://www.blogger.com/profile/555">My profile</a>
	</body></html>`)
	g.complete(tr.calls[0].token, page, nil)

	require.Len(t, tr.calls, 2, "the chained listing goes out")
	assert.Equal(t, "http://www.blogger.com/feeds/555/blogs", tr.calls[1].url)

	feed := []byte(`<?xml version="1.0"?>
	<feed xmlns="http://www.w3.org/2005/Atom">
		<entry>
			<id>tag:blogger.com,1999:user-555.blog-1</id>
			<title>My Blog</title>
			<link rel="alternate" href="http://myblog.blogspot.com/"/>
		</entry>
	</feed>`)
	g.complete(tr.calls[1].token, feed, nil)

	require.Len(t, blogs, 1)
	assert.Equal(t, "1", blogs[0].ID)
	assert.Equal(t, "My Blog", blogs[0].Title)
}

func TestGDataListBlogsNeedsAProfileID(t *testing.T) {
	g, tr := newTestGData(t)

	var errs []*Error
	g.OnError(func(e *Error) { errs = append(errs, e) })

	g.ListBlogs()

	assert.Empty(t, tr.calls)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrOther, errs[0].Kind)
}

func TestGDataRecentPostsFiltered(t *testing.T) {
	g, tr := newTestGData(t)

	var listed [][]entity.Post
	g.OnRecentPosts(func(posts []entity.Post) { listed = append(listed, posts) })

	updatedMin := time.Date(2009, 5, 1, 0, 0, 0, 0, time.UTC)
	g.ListRecentPostsFiltered([]string{"go", "news"}, 1, updatedMin, time.Time{}, time.Time{}, time.Time{})

	require.Len(t, tr.calls, 1)
	assert.Equal(t,
		"http://www.blogger.com/feeds/1/posts/default/-/go/news?updated-min=2009-05-01T00%3A00%3A00Z",
		tr.calls[0].url)

	g.complete(tr.calls[0].token, []byte(postsFeed), nil)

	require.Len(t, listed, 1)
	posts := listed[0]
	require.Len(t, posts, 1, "the listing is capped at the requested number")

	assert.Equal(t, "123", posts[0].ID)
	assert.Equal(t, "Hello", posts[0].Title)
	assert.Equal(t, "body one", posts[0].Content)
	assert.Equal(t, []string{"go"}, posts[0].Tags)
	assert.Equal(t, entity.PostFetched, posts[0].Status)
}

func TestGDataFetchPostMatchesByID(t *testing.T) {
	g, tr := newTestGData(t)

	var fetched []*entity.Post
	var errs []*Error
	g.OnPostFetched(func(p *entity.Post) { fetched = append(fetched, p) })
	g.OnError(func(e *Error) { errs = append(errs, e) })

	p := &entity.Post{ID: "456"}
	g.FetchPost(p)

	require.Len(t, tr.calls, 1)
	assert.Equal(t, "http://www.blogger.com/feeds/1/posts/default", tr.calls[0].url)

	g.complete(tr.calls[0].token, []byte(postsFeed), nil)

	require.Len(t, fetched, 1)
	assert.Equal(t, "Second", p.Title)
	assert.Equal(t, "body two", p.Content)
	assert.Equal(t, entity.PostFetched, p.Status)

	missing := &entity.Post{ID: "999"}
	g.FetchPost(missing)
	g.complete(tr.calls[1].token, []byte(postsFeed), nil)

	require.Len(t, errs, 1)
	assert.Equal(t, ErrOther, errs[0].Kind)
	assert.Equal(t, entity.PostError, missing.Status)
}

func TestGDataListComments(t *testing.T) {
	g, tr := newTestGData(t)

	var got []entity.Comment
	g.OnComments(func(_ *entity.Post, list []entity.Comment) { got = list })

	p := &entity.Post{ID: "123"}
	g.ListComments(p)

	require.Len(t, tr.calls, 1)
	assert.Equal(t, "http://www.blogger.com/feeds/1/123/comments/default", tr.calls[0].url)

	feed := []byte(`<?xml version="1.0"?>
	<feed xmlns="http://www.w3.org/2005/Atom">
		<entry>
			<id>tag:blogger.com,1999:blog-1.post-777</id>
			<title>Re: Hello</title>
			<content type="html">nice one</content>
			<author><name>Bob</name><email>bob@example.com</email></author>
		</entry>
	</feed>`)
	g.complete(tr.calls[0].token, feed, nil)

	require.Len(t, got, 1)
	assert.Equal(t, "777", got[0].ID)
	assert.Equal(t, "Re: Hello", got[0].Title)
	assert.Equal(t, "nice one", got[0].Content)
	assert.Equal(t, "Bob", got[0].Name)
	assert.Equal(t, "bob@example.com", got[0].Email)
	assert.Equal(t, entity.CommentFetched, got[0].Status)
}

func TestGDataEntryMarkup(t *testing.T) {
	g, _ := newTestGData(t)

	p := &entity.Post{
		ID:      "7",
		Title:   "Cats & Dogs",
		Content: "<p>body</p>",
		Tags:    []string{"pets"},
		Private: true,
	}

	markup := string(g.entryMarkup(p, true))

	assert.Contains(t, markup, "<id>tag:blogger.com,1999:blog-1.post-7</id>")
	assert.Contains(t, markup, "<title type='text'>Cats &amp; Dogs</title>")
	assert.Contains(t, markup, "<app:draft>yes</app:draft>")
	assert.Contains(t, markup, "<div xmlns='http://www.w3.org/1999/xhtml'><p>body</p></div>", "content is carried verbatim")
	assert.Contains(t, markup, "term='pets'")
	assert.Contains(t, markup, "<name>Alice Example</name>")
	assert.Contains(t, markup, "<email>alice@example.com</email>")
}
