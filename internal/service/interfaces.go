// Package service implements the sync orchestrators: the coordinators that
// decide, for every read and write, whether to serve the local cache, the
// remote service, or both, and that reconcile the two afterwards.
//
// Reads degrade: offline or failed-but-recoverable fetches fall back to the
// cache and mark the result stale. Writes do not: they are attempted
// remotely or fail fast, and the cache is updated only after the remote
// confirms. Identical in-flight requests collapse into one remote call via
// request-shape keys.
package service

import (
	"context"
	"time"

	"github.com/feedkit/feedkit/internal/adapter"
	"github.com/feedkit/feedkit/models"
)

// FeedResult is one reconciled page of the feed. Stale marks a result
// served from the local cache without remote confirmation.
type FeedResult struct {
	Posts []models.Post
	Stale bool
}

// CommentsResult is a reconciled comment thread.
type CommentsResult struct {
	Comments []models.Comment
	Stale    bool
}

// ProfileResult is the reconciled authenticated account.
type ProfileResult struct {
	Account models.Account
	Stale   bool
}

// PostSyncService coordinates cache-vs-remote dispatch for posts and their
// comment threads.
type PostSyncService interface {
	// Feed resolves one feed page. Online, the remote copy is authoritative
	// and is upserted into the cache; offline or on a recoverable failure
	// the cached copy is served with Stale set. Concurrent calls for the
	// same query shape share a single remote call.
	Feed(ctx context.Context, q adapter.PostQuery) (FeedResult, error)

	// Comments resolves the comment thread of a post with the same
	// dispatch policy as Feed.
	Comments(ctx context.Context, postID int64) (CommentsResult, error)

	// Like toggles the like flag remotely and, after confirmation, in the
	// cache. Fails fast with a network error when offline.
	Like(ctx context.Context, id int64) (models.Post, error)

	// Edit applies a patch remotely and, after confirmation, in the cache.
	// Fails fast with a network error when offline.
	Edit(ctx context.Context, id int64, patch models.PostPatch) (models.Post, error)

	// Delete soft-deletes a post remotely and then flags the cached row.
	// The row is retained. Fails fast with a network error when offline.
	Delete(ctx context.Context, id int64) error
}

// AccountSyncService coordinates authentication and the profile.
type AccountSyncService interface {
	// Profile resolves the authenticated account, cache-falling-back like
	// every read.
	Profile(ctx context.Context) (ProfileResult, error)

	// Login authenticates and caches the returned account. The adapter
	// persists the issued token. Fails fast when offline.
	Login(ctx context.Context, email, password string) (models.Session, error)

	// Register creates an account remotely. Fails fast when offline.
	Register(ctx context.Context, reg models.Registration) (models.Account, error)

	// Logout clears the stored token and empties every local cache. It
	// performs no remote call.
	Logout(ctx context.Context) error
}

// RefreshJob is a background worker that re-runs a refresh hook on a ticker
// and immediately when connectivity returns.
type RefreshJob interface {
	// Start launches the background goroutine. interval defaults to
	// 5 minutes when not positive. Any previously running job is stopped
	// first.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the goroutine to exit and blocks until it has.
	Stop()
}
