// Package state holds the reactive projections the UI layer consumes.
//
// An entity store owns the in-memory, read-optimized copy of a collection —
// never the source of truth — together with its loading flag, current
// error, and pagination cursor. The provider/consumer pattern of the host
// UI maps onto explicit Subscribe/Unsubscribe: every state change publishes
// a fresh immutable Snapshot to all subscribers.
package state

import (
	"context"
	"sync"

	"github.com/feedkit/feedkit/internal/adapter"
	"github.com/feedkit/feedkit/internal/logger"
	"github.com/feedkit/feedkit/internal/service"
	"github.com/feedkit/feedkit/models"
)

// Snapshot is one published state of the feed. Posts must be treated as
// read-only by consumers.
type Snapshot struct {
	Posts   []models.Post
	Loading bool
	Stale   bool
	Err     error
}

// FeedStore is the observable projection of the post feed. All methods are
// safe for concurrent use. A zero-value FeedStore fails every operation
// with ErrNotInitialized.
type FeedStore struct {
	syncer   service.PostSyncService
	logger   *logger.Logger
	pageSize int

	mu          sync.Mutex
	initialized bool
	closed      bool

	// gen invalidates in-flight fetches: a commit whose generation no
	// longer matches is discarded instead of applied.
	gen uint64

	query   adapter.PostQuery
	page    int
	posts   []models.Post
	loading bool
	stale   bool
	err     error

	subs    map[int]func(Snapshot)
	nextSub int
}

// NewFeedStore constructs an initialized feed store. pageSize falls back to
// the adapter default when not positive.
func NewFeedStore(syncer service.PostSyncService, pageSize int, log *logger.Logger) *FeedStore {
	if pageSize <= 0 {
		pageSize = adapter.DefaultPageSize
	}
	return &FeedStore{
		syncer:      syncer,
		logger:      log,
		pageSize:    pageSize,
		initialized: true,
		query:       adapter.PostQuery{WithAuthor: true},
		subs:        make(map[int]func(Snapshot)),
	}
}

// ensureLive guards every accessor: using the store outside its
// initialization scope is an error, never a crash.
func (s *FeedStore) ensureLive() error {
	if s == nil {
		return ErrNotInitialized
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return ErrNotInitialized
	}
	if s.closed {
		return ErrStoreClosed
	}
	return nil
}

// Subscribe registers fn to receive every snapshot change, starting with
// the current one. The returned cancel function releases the subscription.
func (s *FeedStore) Subscribe(fn func(Snapshot)) (func(), error) {
	if err := s.ensureLive(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	current := s.snapshotLocked()
	s.mu.Unlock()

	fn(current)

	cancel := func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
	return cancel, nil
}

// Snapshot returns the current state.
func (s *FeedStore) Snapshot() (Snapshot, error) {
	if err := s.ensureLive(); err != nil {
		return Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(), nil
}

func (s *FeedStore) snapshotLocked() Snapshot {
	posts := make([]models.Post, len(s.posts))
	copy(posts, s.posts)
	return Snapshot{Posts: posts, Loading: s.loading, Stale: s.stale, Err: s.err}
}

// publishLocked pushes the current snapshot to all subscribers. Callers
// hold the lock; delivery happens synchronously in the caller's goroutine.
func (s *FeedStore) publishLocked() {
	snap := s.snapshotLocked()
	for _, fn := range s.subs {
		fn(snap)
	}
}

// Refresh reloads the first page of the current query, replacing the
// collection.
func (s *FeedStore) Refresh(ctx context.Context) error {
	return s.load(ctx, 0, false)
}

// FetchMore advances the pagination cursor by one page and appends the
// results, keeping the merged collection time-ordered.
func (s *FeedStore) FetchMore(ctx context.Context) error {
	if err := s.ensureLive(); err != nil {
		return err
	}
	s.mu.Lock()
	next := s.page + 1
	s.mu.Unlock()
	return s.load(ctx, next, true)
}

// SearchPosts replaces the query with a content search and reloads.
func (s *FeedStore) SearchPosts(ctx context.Context, term string) error {
	if err := s.ensureLive(); err != nil {
		return err
	}
	s.mu.Lock()
	s.query = adapter.PostQuery{Search: term, WithAuthor: true}
	s.mu.Unlock()
	return s.load(ctx, 0, false)
}

// UserPosts replaces the query with a single-author listing and reloads.
func (s *FeedStore) UserPosts(ctx context.Context, accountID int64) error {
	if err := s.ensureLive(); err != nil {
		return err
	}
	s.mu.Lock()
	s.query = adapter.PostQuery{AuthorID: accountID, WithAuthor: true}
	s.mu.Unlock()
	return s.load(ctx, 0, false)
}

// load fetches one page through the orchestrator and commits it, replacing
// or appending depending on append. A commit is discarded when the store
// was cleaned or closed while the fetch was in flight.
func (s *FeedStore) load(ctx context.Context, page int, append bool) error {
	if err := s.ensureLive(); err != nil {
		return err
	}

	s.mu.Lock()
	gen := s.gen
	q := s.query
	q.Page = page
	q.Limit = s.pageSize
	s.loading = true
	s.err = nil
	s.publishLocked()
	s.mu.Unlock()

	res, err := s.syncer.Feed(ctx, q)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.gen != gen {
		return nil
	}

	s.loading = false
	if err != nil {
		s.err = err
		s.publishLocked()
		return err
	}

	if append {
		s.posts = mergePosts(s.posts, res.Posts)
		s.page = page
	} else {
		s.posts = SortByNewest(res.Posts, postCreatedAt)
		s.page = 0
	}
	s.stale = res.Stale
	s.publishLocked()
	return nil
}

// LikePost toggles a like and patches only that post's projection in place,
// leaving unrelated pagination state untouched.
func (s *FeedStore) LikePost(ctx context.Context, id int64) error {
	if err := s.ensureLive(); err != nil {
		return err
	}

	post, err := s.syncer.Like(ctx, id)
	if err != nil {
		s.fail(err)
		return err
	}

	s.patchPost(post)
	return nil
}

// EditPost applies a patch and updates that post's projection in place.
func (s *FeedStore) EditPost(ctx context.Context, id int64, patch models.PostPatch) error {
	if err := s.ensureLive(); err != nil {
		return err
	}

	post, err := s.syncer.Edit(ctx, id, patch)
	if err != nil {
		s.fail(err)
		return err
	}

	s.patchPost(post)
	return nil
}

// DeletePost soft-deletes a post and eagerly removes it from the
// projection. The cached row keeps its soft-delete flag; only the visible
// collection shrinks.
func (s *FeedStore) DeletePost(ctx context.Context, id int64) error {
	if err := s.ensureLive(); err != nil {
		return err
	}

	if err := s.syncer.Delete(ctx, id); err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.posts[:0:0]
	for _, p := range s.posts {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.posts = kept
	s.publishLocked()
	return nil
}

// CleanPosts resets the in-memory projection without touching the local
// cache. In-flight fetches are invalidated and their results discarded.
func (s *FeedStore) CleanPosts() error {
	if err := s.ensureLive(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.posts = nil
	s.page = 0
	s.query = adapter.PostQuery{WithAuthor: true}
	s.loading = false
	s.stale = false
	s.err = nil
	s.publishLocked()
	return nil
}

// Close tears the store down. Every later operation fails with
// ErrStoreClosed and in-flight results are discarded.
func (s *FeedStore) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.subs = map[int]func(Snapshot){}
}

func (s *FeedStore) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	s.publishLocked()
}

// patchPost replaces the matching post in place, keeping the previously
// expanded author when the confirmed copy arrives without one.
func (s *FeedStore) patchPost(post models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == post.ID {
			if post.Author == nil {
				post.Author = s.posts[i].Author
			}
			s.posts[i] = post
			break
		}
	}
	s.publishLocked()
}

// mergePosts appends a fetched page onto the existing collection, dropping
// duplicates by identifier (a refetched entity keeps its newest copy) and
// restoring time order: server pages are not assumed globally consistent
// with cached entries inserted by other operations.
func mergePosts(existing, page []models.Post) []models.Post {
	merged := make([]models.Post, 0, len(existing)+len(page))
	seen := make(map[int64]int, len(existing)+len(page))

	for _, p := range existing {
		seen[p.ID] = len(merged)
		merged = append(merged, p)
	}
	for _, p := range page {
		if i, ok := seen[p.ID]; ok {
			merged[i] = p
			continue
		}
		seen[p.ID] = len(merged)
		merged = append(merged, p)
	}

	return SortByNewest(merged, postCreatedAt)
}
