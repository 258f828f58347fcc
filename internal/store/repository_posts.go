package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/feedkit/feedkit/internal/logger"
	"github.com/feedkit/feedkit/models"
)

type postRepository struct {
	*DB
	logger *logger.Logger
}

// NewPostRepository wires the SQLite-backed post cache.
func NewPostRepository(db *DB, logger *logger.Logger) PostRepository {
	return &postRepository{DB: db, logger: logger}
}

func (r *postRepository) Get(ctx context.Context, id int64) (models.Post, error) {
	row := r.DB.QueryRowContext(ctx, getSinglePost, id)

	post, err := scanPost(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Post{}, ErrNotFound
		}
		r.logger.Err(err).
			Str("func", "postRepository.Get").
			Int64("post_id", id).
			Msg("failed to read cached post")
		return models.Post{}, fmt.Errorf("failed to read cached post (id=%d): %w", id, err)
	}

	return post, nil
}

func (r *postRepository) List(ctx context.Context, filter PostFilter) ([]models.Post, error) {
	query, args, err := buildPostListQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to build post listing query: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).
			Str("func", "postRepository.List").
			Msg("failed to query cached posts")
		return nil, fmt.Errorf("failed to query cached posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		post, scanErr := scanPost(rows.Scan)
		if scanErr != nil {
			r.logger.Err(scanErr).
				Str("func", "postRepository.List").
				Msg("failed to scan post row")
			return nil, fmt.Errorf("failed to scan post row: %w", scanErr)
		}
		posts = append(posts, post)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", rowsErr)
	}

	return posts, nil
}

func (r *postRepository) Upsert(ctx context.Context, posts ...models.Post) error {
	for _, post := range posts {
		_, err := r.DB.ExecContext(ctx, upsertPost,
			post.ID,
			post.AuthorID,
			post.Content,
			post.Likes,
			post.Liked,
			post.Deleted,
			post.CreatedAt,
			post.UpdatedAt,
		)
		if err != nil {
			r.logger.Err(err).
				Str("func", "postRepository.Upsert").
				Int64("post_id", post.ID).
				Msg("failed to upsert cached post")
			return fmt.Errorf("failed to upsert cached post (id=%d): %w", post.ID, err)
		}
	}

	return nil
}

func (r *postRepository) MarkDeleted(ctx context.Context, id int64) error {
	if _, err := r.DB.ExecContext(ctx, markPostDeleted, id); err != nil {
		r.logger.Err(err).
			Str("func", "postRepository.MarkDeleted").
			Int64("post_id", id).
			Msg("failed to soft-delete cached post")
		return fmt.Errorf("failed to soft-delete cached post (id=%d): %w", id, err)
	}
	return nil
}

func (r *postRepository) Remove(ctx context.Context, id int64) error {
	if _, err := r.DB.ExecContext(ctx, removePost, id); err != nil {
		r.logger.Err(err).
			Str("func", "postRepository.Remove").
			Int64("post_id", id).
			Msg("failed to invalidate cached post")
		return fmt.Errorf("failed to invalidate cached post (id=%d): %w", id, err)
	}
	return nil
}

func (r *postRepository) Clear(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, clearPosts); err != nil {
		return fmt.Errorf("failed to clear post cache: %w", err)
	}
	return nil
}

func scanPost(scan func(dest ...any) error) (models.Post, error) {
	var post models.Post
	err := scan(
		&post.ID,
		&post.AuthorID,
		&post.Content,
		&post.Likes,
		&post.Liked,
		&post.Deleted,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	return post, err
}
