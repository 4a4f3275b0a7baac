package entity

import "time"

// CommentStatus tracks the lifecycle of a comment.
type CommentStatus int

const (
	CommentNew CommentStatus = iota
	CommentFetched
	CommentCreated
	CommentRemoved
	CommentError
)

func (s CommentStatus) String() string {
	switch s {
	case CommentNew:
		return "new"
	case CommentFetched:
		return "fetched"
	case CommentCreated:
		return "created"
	case CommentRemoved:
		return "removed"
	case CommentError:
		return "error"
	}

	return "unknown"
}

// Comment is a reader comment on a post.
type Comment struct {
	ID       string
	Title    string
	Content  string
	Name     string
	Email    string
	URL      string
	Created  time.Time
	Modified time.Time
	Status   CommentStatus
	Error    string
}
