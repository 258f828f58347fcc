// Package store implements the Local Store: the durable, SQLite-backed
// cache of every entity the client has seen.
//
// The store exclusively owns persisted rows. It never talks to the network;
// the sync layer decides what gets written and when. Writes are
// last-writer-wins per entity identifier, soft deletion is a flag on the
// row, and Remove/Clear exist only for cache invalidation and logout.
package store

import (
	"context"

	"github.com/feedkit/feedkit/models"
)

// PostFilter narrows a cached post listing. The zero value lists the first
// page of all non-deleted posts.
type PostFilter struct {
	// AuthorID restricts the listing to one account when non-zero.
	AuthorID int64

	// Search keeps only posts whose content contains the term.
	Search string

	// IncludeDeleted includes soft-deleted rows, which default listings
	// exclude.
	IncludeDeleted bool

	// Page is the zero-based pagination cursor.
	Page int

	// Limit is the page size; non-positive means no limit.
	Limit int
}

// PostRepository is the local post cache.
type PostRepository interface {
	// Get returns the cached post or ErrNotFound.
	Get(ctx context.Context, id int64) (models.Post, error)

	// List returns cached posts matching filter, newest first.
	List(ctx context.Context, filter PostFilter) ([]models.Post, error)

	// Upsert inserts or replaces posts by identifier.
	Upsert(ctx context.Context, posts ...models.Post) error

	// MarkDeleted sets the soft-delete flag, retaining the row.
	MarkDeleted(ctx context.Context, id int64) error

	// Remove drops a row. Cache invalidation only; user-initiated deletion
	// goes through MarkDeleted.
	Remove(ctx context.Context, id int64) error

	// Clear empties the post cache. Used on logout.
	Clear(ctx context.Context) error
}

// AccountRepository is the local account cache.
type AccountRepository interface {
	Get(ctx context.Context, id int64) (models.Account, error)
	GetByEmail(ctx context.Context, email string) (models.Account, error)
	Upsert(ctx context.Context, accounts ...models.Account) error
	Clear(ctx context.Context) error
}

// CommentRepository is the local comment cache.
type CommentRepository interface {
	// ListByPost returns the cached thread of a post, newest first.
	ListByPost(ctx context.Context, postID int64) ([]models.Comment, error)
	Upsert(ctx context.Context, comments ...models.Comment) error
	Clear(ctx context.Context) error
}
