package entity

import "time"

// PostStatus tracks the lifecycle of a post across asynchronous operations.
type PostStatus int

const (
	PostNew PostStatus = iota
	PostFetched
	PostCreated
	PostModified
	PostRemoved
	PostError
)

func (s PostStatus) String() string {
	switch s {
	case PostNew:
		return "new"
	case PostFetched:
		return "fetched"
	case PostCreated:
		return "created"
	case PostModified:
		return "modified"
	case PostRemoved:
		return "removed"
	case PostError:
		return "error"
	}

	return "unknown"
}

// Post is a blog post as the dialect-independent canonical field set.
// The client holds only a non-owning reference for the duration of a
// pending operation; the caller owns the value.
type Post struct {
	// ID is the server-assigned post id, empty until the post is created.
	ID                string
	Title             string
	Content           string
	// AdditionalContent is the dialect-specific secondary body section
	// (mt_text_more on MovableType servers).
	AdditionalContent string
	Slug              string
	// Categories is ordered, the first entry is the primary category.
	Categories        []string
	Tags              []string
	Summary           string
	CommentAllowed    bool
	TrackBackAllowed  bool
	// Private suppresses publishing; a private post stays a draft.
	Private           bool
	Created           time.Time
	Modified          time.Time
	Link              string
	PermaLink         string
	Status            PostStatus
	// Error holds the last error message for Status == PostError.
	Error             string
}

// TrackBackPing is one trackback registered on a post.
type TrackBackPing struct {
	Title string
	URL   string
	IP    string
}
