package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/feedkit/feedkit/internal/apperrors"
	"github.com/feedkit/feedkit/internal/logger"
	"github.com/feedkit/feedkit/models"
	"github.com/go-resty/resty/v2"
)

// DefaultPageSize is the feed page size used when a query does not set one.
const DefaultPageSize = 10

// Config carries the settings of the HTTP remote repository.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

type httpRemote struct {
	client *resty.Client
	creds  CredentialStore
	logger *logger.Logger
}

// NewHTTPRemote constructs an HTTP/REST implementation of
// [RemoteRepository]. It normalises and validates cfg.BaseURL and configures
// the underlying resty client with the resolved base URL and request
// timeout. Returns an error if cfg.BaseURL is empty or unparsable.
func NewHTTPRemote(cfg Config, creds CredentialStore, log *logger.Logger) (RemoteRepository, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid remote base url: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout)

	return &httpRemote{client: client, creds: creds, logger: log}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// request builds a resty request carrying the device identifier and, when
// the client is authenticated, the bearer token.
func (h *httpRemote) request(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)

	if deviceID, err := h.creds.DeviceID(); err == nil && deviceID != "" {
		req.SetHeader("X-Device-ID", deviceID)
	}
	if token, err := h.creds.Token(); err == nil && token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}

	return req
}

// Login implements [RemoteRepository]. It POSTs the credentials to
// POST /auth/login and persists the issued token before returning the
// session payload.
func (h *httpRemote) Login(ctx context.Context, email, password string) (models.Session, error) {
	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"email": email, "password": password}).
		Post("/auth/login")
	if err = normalize(resp, err); err != nil {
		return models.Session{}, err
	}

	var session models.Session
	if err = decodePayload(resp, &session); err != nil {
		return models.Session{}, err
	}
	if session.Token == "" {
		return models.Session{}, apperrors.Client("login failed")
	}

	if err = h.creds.SaveToken(session.Token); err != nil {
		return models.Session{}, apperrors.Clientf("persist auth token: %v", err).WithCause(err)
	}

	h.logger.Debug().Int64("account_id", session.Account.ID).Msg("login succeeded")
	return session, nil
}

// Register implements [RemoteRepository]. It POSTs the account fields to
// POST /auth/register. No persistence side effect: registering does not
// authenticate.
func (h *httpRemote) Register(ctx context.Context, reg models.Registration) (models.Account, error) {
	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(reg).
		Post("/auth/register")
	if err = normalize(resp, err); err != nil {
		return models.Account{}, err
	}

	var account models.Account
	if err = decodePayload(resp, &account); err != nil {
		return models.Account{}, err
	}
	return account, nil
}

// Logout implements [RemoteRepository]. Local-only: the stored token is
// removed and no request is issued.
func (h *httpRemote) Logout(ctx context.Context) error {
	if err := h.creds.ClearToken(); err != nil {
		return apperrors.Clientf("clear auth token: %v", err).WithCause(err)
	}
	h.logger.Debug().Msg("auth token cleared")
	return nil
}

// Profile implements [RemoteRepository]. GET /account/profile.
func (h *httpRemote) Profile(ctx context.Context) (models.Account, error) {
	resp, err := h.request(ctx).Get("/account/profile")
	if err = normalize(resp, err); err != nil {
		return models.Account{}, err
	}

	var account models.Account
	if err = decodePayload(resp, &account); err != nil {
		return models.Account{}, err
	}
	return account, nil
}

// FetchPosts implements [RemoteRepository]. GET /post.
func (h *httpRemote) FetchPosts(ctx context.Context) ([]models.Post, error) {
	resp, err := h.request(ctx).Get("/post")
	if err = normalize(resp, err); err != nil {
		return nil, err
	}

	var posts []models.Post
	if err = decodePayload(resp, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// FetchPostsPage implements [RemoteRepository]. GET /post?<encoded params>.
func (h *httpRemote) FetchPostsPage(ctx context.Context, q PostQuery) ([]models.Post, error) {
	resp, err := h.request(ctx).Get("/post" + encodeQuery(q.params()))
	if err = normalize(resp, err); err != nil {
		return nil, err
	}

	var posts []models.Post
	if err = decodePayload(resp, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// LikePost implements [RemoteRepository]. POST /post/{id}/like.
func (h *httpRemote) LikePost(ctx context.Context, id int64) (models.Post, error) {
	resp, err := h.request(ctx).Post(fmt.Sprintf("/post/%d/like", id))
	if err = normalize(resp, err); err != nil {
		return models.Post{}, err
	}

	var post models.Post
	if err = decodePayload(resp, &post); err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// DeletePost implements [RemoteRepository]. POST /post/{id}/delete; the
// response body is empty, only the status matters.
func (h *httpRemote) DeletePost(ctx context.Context, id int64) error {
	resp, err := h.request(ctx).Post(fmt.Sprintf("/post/%d/delete", id))
	return normalize(resp, err)
}

// EditPost implements [RemoteRepository]. POST /post/{id}/edit.
func (h *httpRemote) EditPost(ctx context.Context, id int64, patch models.PostPatch) (models.Post, error) {
	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(patch).
		Post(fmt.Sprintf("/post/%d/edit", id))
	if err = normalize(resp, err); err != nil {
		return models.Post{}, err
	}

	var post models.Post
	if err = decodePayload(resp, &post); err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// FetchComments implements [RemoteRepository]. GET /post/{id}/comment.
func (h *httpRemote) FetchComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	resp, err := h.request(ctx).Get(fmt.Sprintf("/post/%d/comment", postID))
	if err = normalize(resp, err); err != nil {
		return nil, err
	}

	var comments []models.Comment
	if err = decodePayload(resp, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// params renders the query as an encoder mapping. Zero-valued filters are
// nil so the encoder drops them.
func (q PostQuery) params() map[string]any {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}

	params := map[string]any{
		"page":  q.Page,
		"limit": limit,
	}
	if q.AuthorID != 0 {
		params["author"] = q.AuthorID
	}
	if q.Search != "" {
		params["search"] = q.Search
	}
	if q.WithAuthor {
		params["with_author"] = true
	}
	return params
}

// ShapeKey identifies the request shape of this query for in-flight
// de-duplication: two queries collapse into one remote call exactly when
// their keys are equal.
func (q PostQuery) ShapeKey() string {
	return "post-page" + encodeQuery(q.params())
}
