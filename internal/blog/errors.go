package blog

import (
	"fmt"

	"github.com/blogwire/blogwire/internal/entity"
)

// ErrorKind classifies asynchronous failures.
type ErrorKind int

const (
	// ErrTransport covers network failures, HTTP errors and XML-RPC
	// faults surfaced by the transport.
	ErrTransport ErrorKind = iota
	// ErrParsing means the response arrived but was structurally
	// unexpected.
	ErrParsing
	// ErrAuthentication means the credential exchange failed or was
	// rejected.
	ErrAuthentication
	// ErrNotSupported means the dialect does not implement the
	// operation.
	ErrNotSupported
	// ErrOther covers precondition violations such as a nil post.
	ErrOther
)

func (k ErrorKind) String() string {
	switch k {
	case ErrTransport:
		return "transport"
	case ErrParsing:
		return "parsing"
	case ErrAuthentication:
		return "authentication"
	case ErrNotSupported:
		return "not supported"
	case ErrOther:
		return "other"
	}

	return "unknown"
}

// Error is delivered through the error callback. At most one of Post,
// Comment, Media is set, pointing at the domain object whose operation
// failed.
type Error struct {
	Kind    ErrorKind
	Message string
	Post    *entity.Post
	Comment *entity.Comment
	Media   *entity.Media
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}
