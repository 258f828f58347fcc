package store

import (
	"context"
	"fmt"

	"github.com/feedkit/feedkit/internal/logger"
	"github.com/feedkit/feedkit/models"
)

type commentRepository struct {
	*DB
	logger *logger.Logger
}

// NewCommentRepository wires the SQLite-backed comment cache.
func NewCommentRepository(db *DB, logger *logger.Logger) CommentRepository {
	return &commentRepository{DB: db, logger: logger}
}

func (r *commentRepository) ListByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	rows, err := r.DB.QueryContext(ctx, getCommentsByPost, postID)
	if err != nil {
		r.logger.Err(err).
			Str("func", "commentRepository.ListByPost").
			Int64("post_id", postID).
			Msg("failed to query cached comments")
		return nil, fmt.Errorf("failed to query cached comments (post_id=%d): %w", postID, err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var comment models.Comment
		scanErr := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.ParentID,
			&comment.AuthorID,
			&comment.Content,
			&comment.CreatedAt,
			&comment.UpdatedAt,
		)
		if scanErr != nil {
			r.logger.Err(scanErr).
				Str("func", "commentRepository.ListByPost").
				Int64("post_id", postID).
				Msg("failed to scan comment row")
			return nil, fmt.Errorf("failed to scan comment row: %w", scanErr)
		}
		comments = append(comments, comment)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", rowsErr)
	}

	return comments, nil
}

func (r *commentRepository) Upsert(ctx context.Context, comments ...models.Comment) error {
	for _, comment := range comments {
		_, err := r.DB.ExecContext(ctx, upsertComment,
			comment.ID,
			comment.PostID,
			comment.ParentID,
			comment.AuthorID,
			comment.Content,
			comment.CreatedAt,
			comment.UpdatedAt,
		)
		if err != nil {
			r.logger.Err(err).
				Str("func", "commentRepository.Upsert").
				Int64("comment_id", comment.ID).
				Msg("failed to upsert cached comment")
			return fmt.Errorf("failed to upsert cached comment (id=%d): %w", comment.ID, err)
		}
	}

	return nil
}

func (r *commentRepository) Clear(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, clearComments); err != nil {
		return fmt.Errorf("failed to clear comment cache: %w", err)
	}
	return nil
}
