package blog

import "github.com/blogwire/blogwire/internal/entity"

// callbacks fans completion events out to registered handlers. Registration
// follows the On* style; every handler registered for an event runs in
// registration order. Emission is two-phase: emit* queues the event while
// the client mutex is held, take hands the queue over for invocation after
// the mutex is released, so handlers are free to call back into the client.
type callbacks struct {
	postCreated    []func(*entity.Post)
	postModified   []func(*entity.Post)
	postFetched    []func(*entity.Post)
	postRemoved    []func(*entity.Post)
	recentPosts    []func([]entity.Post)
	categories     []func([]entity.Category)
	mediaCreated   []func(*entity.Media)
	trackBacks     []func(*entity.Post, []entity.TrackBackPing)
	userInfo       []func(entity.UserInfo)
	blogs          []func([]entity.BlogInfo)
	comments       []func(*entity.Post, []entity.Comment)
	allComments    []func([]entity.Comment)
	commentCreated []func(*entity.Post, *entity.Comment)
	commentRemoved []func(*entity.Post, *entity.Comment)
	profileID      []func(string)
	errs           []func(*Error)

	queued []func()
}

// OnPostCreated registers a handler for completed create flows.
func (cb *callbacks) OnPostCreated(f func(*entity.Post)) {
	cb.postCreated = append(cb.postCreated, f)
}

// OnPostModified registers a handler for completed modify flows.
func (cb *callbacks) OnPostModified(f func(*entity.Post)) {
	cb.postModified = append(cb.postModified, f)
}

// OnPostFetched registers a handler for completed fetches.
func (cb *callbacks) OnPostFetched(f func(*entity.Post)) {
	cb.postFetched = append(cb.postFetched, f)
}

// OnPostRemoved registers a handler for completed removals.
func (cb *callbacks) OnPostRemoved(f func(*entity.Post)) {
	cb.postRemoved = append(cb.postRemoved, f)
}

// OnRecentPosts registers a handler for recent-post listings.
func (cb *callbacks) OnRecentPosts(f func([]entity.Post)) {
	cb.recentPosts = append(cb.recentPosts, f)
}

// OnCategories registers a handler for category listings.
func (cb *callbacks) OnCategories(f func([]entity.Category)) {
	cb.categories = append(cb.categories, f)
}

// OnMediaCreated registers a handler for completed media uploads.
func (cb *callbacks) OnMediaCreated(f func(*entity.Media)) {
	cb.mediaCreated = append(cb.mediaCreated, f)
}

// OnTrackBackPings registers a handler for trackback listings.
func (cb *callbacks) OnTrackBackPings(f func(*entity.Post, []entity.TrackBackPing)) {
	cb.trackBacks = append(cb.trackBacks, f)
}

// OnUserInfo registers a handler for account profile lookups.
func (cb *callbacks) OnUserInfo(f func(entity.UserInfo)) {
	cb.userInfo = append(cb.userInfo, f)
}

// OnBlogs registers a handler for blog discovery listings.
func (cb *callbacks) OnBlogs(f func([]entity.BlogInfo)) {
	cb.blogs = append(cb.blogs, f)
}

// OnComments registers a handler for per-post comment listings.
func (cb *callbacks) OnComments(f func(*entity.Post, []entity.Comment)) {
	cb.comments = append(cb.comments, f)
}

// OnAllComments registers a handler for blog-wide comment listings.
func (cb *callbacks) OnAllComments(f func([]entity.Comment)) {
	cb.allComments = append(cb.allComments, f)
}

// OnCommentCreated registers a handler for completed comment creations.
func (cb *callbacks) OnCommentCreated(f func(*entity.Post, *entity.Comment)) {
	cb.commentCreated = append(cb.commentCreated, f)
}

// OnCommentRemoved registers a handler for completed comment removals.
func (cb *callbacks) OnCommentRemoved(f func(*entity.Post, *entity.Comment)) {
	cb.commentRemoved = append(cb.commentRemoved, f)
}

// OnProfileID registers a handler for profile-id discovery (GData only).
func (cb *callbacks) OnProfileID(f func(string)) {
	cb.profileID = append(cb.profileID, f)
}

// OnError registers a handler for error events.
func (cb *callbacks) OnError(f func(*Error)) {
	cb.errs = append(cb.errs, f)
}

// take returns and clears the queued events.
func (cb *callbacks) take() []func() {
	queued := cb.queued
	cb.queued = nil

	return queued
}

func (cb *callbacks) emitPostCreated(p *entity.Post) {
	handlers := cb.postCreated
	cb.queued = append(cb.queued, func() {
		for _, f := range handlers {
			f(p)
		}
	})
}

func (cb *callbacks) emitPostModified(p *entity.Post) {
	handlers := cb.postModified
	cb.queued = append(cb.queued, func() {
		for _, f := range handlers {
			f(p)
		}
	})
}

func (cb *callbacks) emitPostFetched(p *entity.Post) {
	handlers := cb.postFetched
	cb.queued = append(cb.queued, func() {
		for _, f := range handlers {
			f(p)
		}
	})
}

func (cb *callbacks) emitPostRemoved(p *entity.Post) {
	handlers := cb.postRemoved
	cb.queued = append(cb.queued, func() {
		for _, f := range handlers {
			f(p)
		}
	})
}

func (cb *callbacks) emitRecentPosts(posts []entity.Post) {
	handlers := cb.recentPosts
	cb.queued = append(cb.queued, func() {
		for _, f := range handlers {
			f(posts)
		}
	})
}

func (cb *callbacks) emitCategories(list []entity.Category) {
	handlers := cb.categories
	cb.queued = append(cb.queued, func() {
		for _, f := range handlers {
			f(list)
		}
	})
}

func (cb *callbacks) emitMediaCreated(m *entity.Media) {
	handlers := cb.mediaCreated
	cb.queued = append(cb.queued, func() {
		for _, f := range handlers {
			f(m)
		}
	})
}

func (cb *callbacks) emitTrackBacks(p *entity.Post, pings []entity.TrackBackPing) {
	handlers := cb.trackBacks
	cb.queued = append(cb.queued, func() {
		for _, f := range handlers {
			f(p, pings)
		}
	})
}

func (cb *callbacks) emitUserInfo(info entity.UserInfo) {
	handlers := cb.userInfo
	cb.queued = append(cb.queued, func() {
		for _, f := range handlers {
			f(info)
		}
	})
}

func (cb *callbacks) emitBlogs(list []entity.BlogInfo) {
	handlers := cb.blogs
	cb.queued = append(cb.queued, func() {
		for _, f := range handlers {
			f(list)
		}
	})
}

func (cb *callbacks) emitComments(p *entity.Post, list []entity.Comment) {
	handlers := cb.comments
	cb.queued = append(cb.queued, func() {
		for _, f := range handlers {
			f(p, list)
		}
	})
}

func (cb *callbacks) emitAllComments(list []entity.Comment) {
	handlers := cb.allComments
	cb.queued = append(cb.queued, func() {
		for _, f := range handlers {
			f(list)
		}
	})
}

func (cb *callbacks) emitCommentCreated(p *entity.Post, cm *entity.Comment) {
	handlers := cb.commentCreated
	cb.queued = append(cb.queued, func() {
		for _, f := range handlers {
			f(p, cm)
		}
	})
}

func (cb *callbacks) emitCommentRemoved(p *entity.Post, cm *entity.Comment) {
	handlers := cb.commentRemoved
	cb.queued = append(cb.queued, func() {
		for _, f := range handlers {
			f(p, cm)
		}
	})
}

func (cb *callbacks) emitProfileID(id string) {
	handlers := cb.profileID
	cb.queued = append(cb.queued, func() {
		for _, f := range handlers {
			f(id)
		}
	})
}

func (cb *callbacks) emitError(e *Error) {
	handlers := cb.errs
	cb.queued = append(cb.queued, func() {
		for _, f := range handlers {
			f(e)
		}
	})
}
