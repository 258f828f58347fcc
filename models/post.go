package models

// Post is a feed entry authored by an Account. Posts are created remotely,
// paginated into the local cache page by page, and mutated in place by
// like/edit/delete operations. The client never hard-deletes a post: Deleted
// is a soft flag and the stored row is retained.
type Post struct {
	// ID is the server-assigned unique identifier.
	ID int64 `json:"id"`

	// AuthorID references the owning Account.
	AuthorID int64 `json:"author_id"`

	// Author is the expanded owning account, present on "with author"
	// listings and absent otherwise.
	Author *Account `json:"author,omitempty"`

	// Content is the post body.
	Content string `json:"content"`

	// Likes is the total like count as last reported by the server.
	Likes int64 `json:"likes"`

	// Liked reports whether the current user has liked this post.
	Liked bool `json:"liked"`

	// Deleted marks the post as soft-deleted. Soft-deleted posts are
	// excluded from default listings but keep their stored row.
	Deleted bool `json:"deleted"`

	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

// TableName returns the name of the database table backing the local
// post cache.
func (p Post) TableName() string {
	return "posts"
}

// PostPatch carries the subset of post fields a client may edit. Nil fields
// are left untouched by the server.
type PostPatch struct {
	Content *string `json:"content,omitempty"`
}
