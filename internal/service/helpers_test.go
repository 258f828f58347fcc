package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/feedkit/feedkit/internal/adapter"
	"github.com/feedkit/feedkit/internal/config"
	"github.com/feedkit/feedkit/internal/logger"
	"github.com/feedkit/feedkit/internal/store"
	"github.com/feedkit/feedkit/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// stubRemote is a hand-written adapter.RemoteRepository: counts calls,
// returns canned payloads, and can delay to provoke request overlap.
type stubRemote struct {
	session  models.Session
	account  models.Account
	posts    []models.Post
	comments []models.Comment
	err      error

	delay time.Duration

	loginCalls      atomic.Int64
	profileCalls    atomic.Int64
	fetchPageCalls  atomic.Int64
	commentCalls    atomic.Int64
	likeCalls       atomic.Int64
	editCalls       atomic.Int64
	deleteCalls     atomic.Int64
	logoutCalls     atomic.Int64
	registerCalls   atomic.Int64
	fetchPostsCalls atomic.Int64
}

func (r *stubRemote) pause() {
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
}

func (r *stubRemote) Login(context.Context, string, string) (models.Session, error) {
	r.loginCalls.Add(1)
	return r.session, r.err
}

func (r *stubRemote) Register(context.Context, models.Registration) (models.Account, error) {
	r.registerCalls.Add(1)
	return r.account, r.err
}

func (r *stubRemote) Logout(context.Context) error {
	r.logoutCalls.Add(1)
	return r.err
}

func (r *stubRemote) Profile(context.Context) (models.Account, error) {
	r.profileCalls.Add(1)
	r.pause()
	return r.account, r.err
}

func (r *stubRemote) FetchPosts(context.Context) ([]models.Post, error) {
	r.fetchPostsCalls.Add(1)
	return r.posts, r.err
}

func (r *stubRemote) FetchPostsPage(context.Context, adapter.PostQuery) ([]models.Post, error) {
	r.fetchPageCalls.Add(1)
	r.pause()
	return r.posts, r.err
}

func (r *stubRemote) LikePost(_ context.Context, id int64) (models.Post, error) {
	r.likeCalls.Add(1)
	if r.err != nil {
		return models.Post{}, r.err
	}
	return models.Post{ID: id, Likes: 1, Liked: true}, nil
}

func (r *stubRemote) DeletePost(context.Context, int64) error {
	r.deleteCalls.Add(1)
	return r.err
}

func (r *stubRemote) EditPost(_ context.Context, id int64, patch models.PostPatch) (models.Post, error) {
	r.editCalls.Add(1)
	if r.err != nil {
		return models.Post{}, r.err
	}
	post := models.Post{ID: id}
	if patch.Content != nil {
		post.Content = *patch.Content
	}
	return post, nil
}

func (r *stubRemote) FetchComments(context.Context, int64) ([]models.Comment, error) {
	r.commentCalls.Add(1)
	r.pause()
	return r.comments, r.err
}

// newTestStorages opens a migrated in-memory cache.
func newTestStorages(t *testing.T) *store.ClientStorages {
	t.Helper()

	storages, err := store.NewClientStorages(
		config.ClientStorage{DB: config.ClientDB{DSN: ":memory:"}},
		logger.Nop(),
	)
	require.NoError(t, err)
	return storages
}

// authenticate stores a token whose subject claim is accountID.
func authenticate(t *testing.T, storages *store.ClientStorages, accountID string) {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": accountID}).
		SignedString([]byte("test-key"))
	require.NoError(t, err)
	require.NoError(t, storages.Credentials.SaveToken(token))
}
