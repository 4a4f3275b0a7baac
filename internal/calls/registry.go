// Package calls correlates asynchronous network calls with the domain
// objects they concern.
package calls

import (
	"sync"

	"github.com/blogwire/blogwire/internal/entity"
)

// Kind identifies which operation a pending call belongs to, so that the
// completion handler can route the raw payload to the right reader.
type Kind int

const (
	KindNone Kind = iota
	KindFetchUserInfo
	KindListBlogs
	KindListRecentPosts
	KindListCategories
	KindFetchPost
	KindCreatePost
	KindModifyPost
	KindRemovePost
	KindGetPostCategories
	KindSetPostCategories
	KindListTrackBackPings
	KindCreateMedia
	KindListComments
	KindListAllComments
	KindCreateComment
	KindRemoveComment
	KindFetchProfileID
	KindAuth
)

// Entry is the state shared between the issuer of a call and its completion
// handler. Exactly one of Post, Comment, Media is set for object-scoped
// calls; list-scoped calls may carry none.
type Entry struct {
	Kind    Kind
	Post    *entity.Post
	Comment *entity.Comment
	Media   *entity.Media

	// Count limits how many items of a list response are consumed.
	Count int

	// Publish records the caller's original publish intent when a write
	// was forced private for silent creation.
	Publish bool
	// Assign marks a write whose categories still have to be attached
	// once the write confirms.
	Assign bool
	// Silent marks a call belonging to a silent creation: its completion
	// ends a create flow, not a modify flow, even on modify-shaped calls.
	Silent bool
}

// Registry issues correlation tokens and resolves them exactly once.
// Tokens are monotonically increasing and never reused within a process
// run.
type Registry struct {
	mu      sync.Mutex
	counter uint64
	pending map[uint64]Entry
}

func NewRegistry() *Registry {
	return &Registry{pending: make(map[uint64]Entry)}
}

// Register issues a fresh token and records the association.
func (r *Registry) Register(e Entry) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.counter++
	r.pending[r.counter] = e

	return r.counter
}

// Resolve looks up and removes the association atomically. A second Resolve
// for the same token reports false: that indicates a double completion and
// must be treated as fatal to that call by the caller.
func (r *Registry) Resolve(token uint64) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.pending[token]

	if ok {
		delete(r.pending, token)
	}

	return e, ok
}

// Outstanding reports how many calls are still unresolved.
func (r *Registry) Outstanding() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.pending)
}
