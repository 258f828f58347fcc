// Package adapter provides the transport-layer gateway between the data
// layer and the remote social service.
//
// The primary abstraction is [RemoteRepository], a stateless per-entity
// gateway: it owns no cached data, performs exactly one transport call per
// operation, and normalizes every failure through the internal/apperrors
// taxonomy before it reaches a caller. The only persistence side effects
// live in the authentication operations, which save or clear the bearer
// token in the [CredentialStore] handed to the constructor.
package adapter

import (
	"context"

	"github.com/feedkit/feedkit/models"
)

// CredentialStore is the durable key-value storage for the issued bearer
// token and the device identifier. It is passed by reference to the remote
// repository constructor instead of living as process-wide mutable state;
// the lifecycle is "init on app start, clear on logout".
type CredentialStore interface {
	// Token returns the stored bearer token, or an empty string when the
	// client is not authenticated.
	Token() (string, error)

	// SaveToken persists the bearer token under the fixed credential key.
	SaveToken(token string) error

	// ClearToken removes the stored bearer token.
	ClearToken() error

	// DeviceID returns the stable installation identifier, minting and
	// persisting one on first use.
	DeviceID() (string, error)
}

// PostQuery describes one page of the feed. The zero value means "first
// page, default size, no filters".
type PostQuery struct {
	// Page is the zero-based pagination cursor.
	Page int

	// Limit is the page size; the adapter applies DefaultPageSize when
	// it is not positive.
	Limit int

	// AuthorID restricts the listing to one account when non-zero.
	AuthorID int64

	// Search restricts the listing to posts containing the term.
	Search string

	// WithAuthor asks the server to expand each post's author record.
	WithAuthor bool
}

// RemoteRepository is the stateless gateway to the authoritative service.
// Implementations must route every failure through the apperrors taxonomy.
type RemoteRepository interface {
	// Login authenticates with email/password. On success the issued token
	// is persisted in the credential store and the full session payload is
	// returned. A nominally successful response that carries no token fails
	// with a client error ("login failed").
	Login(ctx context.Context, email, password string) (models.Session, error)

	// Register creates an account. No token is issued; the caller logs in
	// afterwards.
	Register(ctx context.Context, reg models.Registration) (models.Account, error)

	// Logout clears the locally stored token. It performs no remote call;
	// the server session, if any, expires on its own.
	Logout(ctx context.Context) error

	// Profile fetches the authenticated account.
	Profile(ctx context.Context) (models.Account, error)

	// FetchPosts fetches the default (unpaginated) post listing.
	FetchPosts(ctx context.Context) ([]models.Post, error)

	// FetchPostsPage fetches one feed page described by q.
	FetchPostsPage(ctx context.Context, q PostQuery) ([]models.Post, error)

	// LikePost toggles the like flag and returns the updated post.
	LikePost(ctx context.Context, id int64) (models.Post, error)

	// DeletePost soft-deletes a post. The endpoint returns an empty body.
	DeletePost(ctx context.Context, id int64) error

	// EditPost applies patch and returns the updated post.
	EditPost(ctx context.Context, id int64, patch models.PostPatch) (models.Post, error)

	// FetchComments fetches the comment thread of a post.
	FetchComments(ctx context.Context, postID int64) ([]models.Comment, error)
}
