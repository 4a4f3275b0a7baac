package entity

// MediaStatus tracks the lifecycle of a media upload.
type MediaStatus int

const (
	MediaNew MediaStatus = iota
	MediaCreated
	MediaError
)

func (s MediaStatus) String() string {
	switch s {
	case MediaNew:
		return "new"
	case MediaCreated:
		return "created"
	case MediaError:
		return "error"
	}

	return "unknown"
}

// Media is a binary object (image, attachment) uploaded alongside posts.
type Media struct {
	Name     string
	// URL is set by the server once the upload succeeded.
	URL      string
	Mimetype string
	Data     []byte
	Status   MediaStatus
	Error    string
}
