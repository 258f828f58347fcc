package models

// Comment is a reply attached to a Post. ParentID makes threads
// self-referencing: a top-level comment has no parent, a reply points at
// another comment of the same post.
type Comment struct {
	// ID is the server-assigned unique identifier.
	ID int64 `json:"id"`

	// PostID references the parent post.
	PostID int64 `json:"post_id"`

	// ParentID references the parent comment for threaded replies,
	// nil for top-level comments.
	ParentID *int64 `json:"parent_id,omitempty"`

	// AuthorID references the authoring account.
	AuthorID int64 `json:"author_id"`

	// Content is the comment body.
	Content string `json:"content"`

	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

// TableName returns the name of the database table backing the local
// comment cache.
func (c Comment) TableName() string {
	return "comments"
}
