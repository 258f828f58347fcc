package service

import (
	"context"
	"fmt"

	"github.com/feedkit/feedkit/internal/adapter"
	"github.com/feedkit/feedkit/internal/apperrors"
	"github.com/feedkit/feedkit/internal/connectivity"
	"github.com/feedkit/feedkit/internal/logger"
	"github.com/feedkit/feedkit/internal/store"
	"github.com/feedkit/feedkit/models"
	"golang.org/x/sync/singleflight"
)

type postSyncService struct {
	storages *store.ClientStorages
	remote   adapter.RemoteRepository
	monitor  connectivity.Monitor
	logger   *logger.Logger

	group singleflight.Group
}

// NewPostSyncService builds the post orchestrator.
func NewPostSyncService(storages *store.ClientStorages, remote adapter.RemoteRepository, monitor connectivity.Monitor, log *logger.Logger) PostSyncService {
	return &postSyncService{
		storages: storages,
		remote:   remote,
		monitor:  monitor,
		logger:   log,
	}
}

func (s *postSyncService) Feed(ctx context.Context, q adapter.PostQuery) (FeedResult, error) {
	v, err, _ := s.group.Do(q.ShapeKey(), func() (any, error) {
		return s.fetchFeed(ctx, q)
	})
	if err != nil {
		return FeedResult{}, err
	}
	return v.(FeedResult), nil
}

func (s *postSyncService) fetchFeed(ctx context.Context, q adapter.PostQuery) (FeedResult, error) {
	filter := store.PostFilter{
		AuthorID: q.AuthorID,
		Search:   q.Search,
		Page:     q.Page,
		Limit:    q.Limit,
	}
	if filter.Limit <= 0 {
		filter.Limit = adapter.DefaultPageSize
	}

	if !s.monitor.Online() {
		return s.serveCachedFeed(ctx, filter, nil)
	}

	posts, err := s.remote.FetchPostsPage(ctx, q)
	if err != nil {
		if apperrors.Recoverable(err) {
			return s.serveCachedFeed(ctx, filter, err)
		}
		return FeedResult{}, err
	}

	s.reconcilePosts(ctx, posts)
	return FeedResult{Posts: posts}, nil
}

// serveCachedFeed answers a read from the local cache. remoteErr carries the
// failed remote attempt, nil when no attempt was made (offline); it is
// propagated when the cache has nothing to offer.
func (s *postSyncService) serveCachedFeed(ctx context.Context, filter store.PostFilter, remoteErr error) (FeedResult, error) {
	posts, err := s.storages.Posts.List(ctx, filter)
	if err != nil {
		s.logger.Warn().Err(err).Msg("local post cache unavailable")
		if remoteErr != nil {
			return FeedResult{}, remoteErr
		}
		return FeedResult{}, apperrors.Clientf("local cache unavailable: %v", err).WithCause(err)
	}

	if len(posts) == 0 && remoteErr != nil {
		return FeedResult{}, remoteErr
	}
	return FeedResult{Posts: posts, Stale: true}, nil
}

// reconcilePosts mirrors a confirmed remote result into the cache. Cache
// faults degrade to remote-only behaviour with a warning, never an error.
func (s *postSyncService) reconcilePosts(ctx context.Context, posts []models.Post) {
	for _, post := range posts {
		if post.Author != nil {
			if err := s.storages.Accounts.Upsert(ctx, *post.Author); err != nil {
				s.logger.Warn().Err(err).Int64("account_id", post.Author.ID).Msg("failed to cache post author")
			}
		}
	}
	if err := s.storages.Posts.Upsert(ctx, posts...); err != nil {
		s.logger.Warn().Err(err).Msg("failed to cache fetched posts")
	}
}

func (s *postSyncService) Comments(ctx context.Context, postID int64) (CommentsResult, error) {
	key := fmt.Sprintf("comments?post=%d", postID)
	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.fetchComments(ctx, postID)
	})
	if err != nil {
		return CommentsResult{}, err
	}
	return v.(CommentsResult), nil
}

func (s *postSyncService) fetchComments(ctx context.Context, postID int64) (CommentsResult, error) {
	if !s.monitor.Online() {
		return s.serveCachedComments(ctx, postID, nil)
	}

	comments, err := s.remote.FetchComments(ctx, postID)
	if err != nil {
		if apperrors.Recoverable(err) {
			return s.serveCachedComments(ctx, postID, err)
		}
		return CommentsResult{}, err
	}

	if err = s.storages.Comments.Upsert(ctx, comments...); err != nil {
		s.logger.Warn().Err(err).Int64("post_id", postID).Msg("failed to cache fetched comments")
	}
	return CommentsResult{Comments: comments}, nil
}

func (s *postSyncService) serveCachedComments(ctx context.Context, postID int64, remoteErr error) (CommentsResult, error) {
	comments, err := s.storages.Comments.ListByPost(ctx, postID)
	if err != nil {
		s.logger.Warn().Err(err).Msg("local comment cache unavailable")
		if remoteErr != nil {
			return CommentsResult{}, remoteErr
		}
		return CommentsResult{}, apperrors.Clientf("local cache unavailable: %v", err).WithCause(err)
	}

	if len(comments) == 0 && remoteErr != nil {
		return CommentsResult{}, remoteErr
	}
	return CommentsResult{Comments: comments, Stale: true}, nil
}

func (s *postSyncService) Like(ctx context.Context, id int64) (models.Post, error) {
	if !s.monitor.Online() {
		return models.Post{}, apperrors.Network()
	}

	post, err := s.remote.LikePost(ctx, id)
	if err != nil {
		return models.Post{}, err
	}

	if err = s.storages.Posts.Upsert(ctx, post); err != nil {
		s.logger.Warn().Err(err).Int64("post_id", id).Msg("failed to cache liked post")
	}
	return post, nil
}

func (s *postSyncService) Edit(ctx context.Context, id int64, patch models.PostPatch) (models.Post, error) {
	if !s.monitor.Online() {
		return models.Post{}, apperrors.Network()
	}

	post, err := s.remote.EditPost(ctx, id, patch)
	if err != nil {
		return models.Post{}, err
	}

	if err = s.storages.Posts.Upsert(ctx, post); err != nil {
		s.logger.Warn().Err(err).Int64("post_id", id).Msg("failed to cache edited post")
	}
	return post, nil
}

func (s *postSyncService) Delete(ctx context.Context, id int64) error {
	if !s.monitor.Online() {
		return apperrors.Network()
	}

	if err := s.remote.DeletePost(ctx, id); err != nil {
		return err
	}

	if err := s.storages.Posts.MarkDeleted(ctx, id); err != nil {
		s.logger.Warn().Err(err).Int64("post_id", id).Msg("failed to flag deleted post in cache")
	}
	return nil
}
