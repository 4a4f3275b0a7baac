package entity

// Category is one server-side category of a blog. The list of categories is
// treated as a cache populated from server data, never as an authoritative
// source.
type Category struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	HTMLURL     string `json:"htmlUrl,omitempty"`
	RSSURL      string `json:"rssUrl,omitempty"`
	ID          string `json:"categoryId"`
	ParentID    string `json:"parentId,omitempty"`
}

// BlogInfo describes one blog of an account, as returned by blog discovery.
type BlogInfo struct {
	ID      string
	Title   string
	URL     string
	APIURL  string
	Summary string
}

// UserInfo is the account profile returned by user discovery.
type UserInfo struct {
	Nickname  string
	UserID    string
	URL       string
	Email     string
	FirstName string
	LastName  string
}
