package blog

import (
	"github.com/blogwire/blogwire/internal/categories"
	"github.com/blogwire/blogwire/internal/entity"
)

// rpcOp selects a wire method name. The dialects share flow and differ in
// method names, argument shapes and response fields, so each dialect is a
// strategy the client composes rather than a client of its own.
type rpcOp int

const (
	opGetRecentPosts rpcOp = iota
	opCreatePost
	opModifyPost
	opFetchPost
	opListCategories
	opCreateMedia
)

// caps describes what a dialect can do beyond the shared base flow.
type caps struct {
	// listsCategories: the dialect has a category listing method.
	listsCategories bool
	// assignsCategories: categories are attached through separate
	// assignment calls after a post write, which makes writes
	// category-orchestrated.
	assignsCategories bool
	// media: the dialect can upload media objects.
	media bool
	// trackBacks: the dialect can list trackback pings.
	trackBacks bool
}

// dialect is one wire protocol variant. Implementations are stateless;
// account state lives on the Client.
type dialect interface {
	name() string

	// method maps an operation to its wire method name.
	method(op rpcOp) string

	// defaultArgs builds the credential argument prefix. id is the blog
	// or post id the call targets and may be empty.
	defaultArgs(c *Client, id string) []any

	// writeArgs appends the post payload arguments for create and modify
	// calls.
	writeArgs(p *entity.Post) []any

	// readPost fills a post from a response struct. Reported false when
	// the payload cannot be read at all.
	readPost(p *entity.Post, m map[string]any, cats *categories.Cache) bool

	capabilities() caps
}

// rawWriter is implemented by dialects that cannot go through the XML-RPC
// codec for post writes and build the request markup by hand instead.
type rawWriter interface {
	createMarkup(c *Client, p *entity.Post) []byte
	modifyMarkup(c *Client, p *entity.Post) []byte
}

// mediaUploader is implemented by dialects that can upload media objects.
type mediaUploader interface {
	mediaArgs(media *entity.Media) []any
}

func dialectFor(name string) (dialect, bool) {
	switch name {
	case entity.DialectBlogger1:
		return &blogger1{}, true
	case entity.DialectMetaWeblog:
		return &metaWeblog{}, true
	case entity.DialectMovableType:
		return &movableType{}, true
	case entity.DialectWordpressBuggy:
		return &wordpressBuggy{}, true
	}

	return nil, false
}
