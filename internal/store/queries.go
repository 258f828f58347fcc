package store

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	upsertPost = `
		INSERT OR REPLACE INTO posts (
			id,
			author_id,
			content,
			likes,
			liked,
			deleted,
			created_at,
			updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?);`

	getSinglePost = `
		SELECT
			id,
			author_id,
			content,
			likes,
			liked,
			deleted,
			created_at,
			updated_at
		FROM posts
		WHERE id = ?;`

	markPostDeleted = `
		UPDATE posts SET
			deleted    = 1,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?;`

	removePost = `DELETE FROM posts WHERE id = ?;`
	clearPosts = `DELETE FROM posts;`

	upsertAccount = `
		INSERT OR REPLACE INTO accounts (
			id,
			name,
			email,
			avatar_url,
			role,
			verified,
			street,
			city,
			state,
			zip_code,
			created_at,
			updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	getSingleAccount = `
		SELECT
			id,
			name,
			email,
			avatar_url,
			role,
			verified,
			street,
			city,
			state,
			zip_code,
			created_at,
			updated_at
		FROM accounts
		WHERE id = ?;`

	getAccountByEmail = `
		SELECT
			id,
			name,
			email,
			avatar_url,
			role,
			verified,
			street,
			city,
			state,
			zip_code,
			created_at,
			updated_at
		FROM accounts
		WHERE email = ?;`

	clearAccounts = `DELETE FROM accounts;`

	upsertComment = `
		INSERT OR REPLACE INTO comments (
			id,
			post_id,
			parent_id,
			author_id,
			content,
			created_at,
			updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?);`

	getCommentsByPost = `
		SELECT
			id,
			post_id,
			parent_id,
			author_id,
			content,
			created_at,
			updated_at
		FROM comments
		WHERE post_id = ?
		ORDER BY created_at DESC, id DESC;`

	clearComments = `DELETE FROM comments;`

	getCredential = `SELECT value FROM credentials WHERE key = ?;`
	putCredential = `INSERT OR REPLACE INTO credentials (key, value) VALUES (?, ?);`
	delCredential = `DELETE FROM credentials WHERE key = ?;`
)

var postColumns = []string{
	"id",
	"author_id",
	"content",
	"likes",
	"liked",
	"deleted",
	"created_at",
	"updated_at",
}

// buildPostListQuery assembles the dynamic post listing statement. Filters
// are additive; the NULLS-last created_at ordering plus the id tiebreak
// keeps the listing deterministic.
func buildPostListQuery(filter PostFilter) (string, []any, error) {
	qb := sq.Select(postColumns...).
		From("posts").
		OrderBy("created_at IS NULL", "created_at DESC", "id DESC")

	if !filter.IncludeDeleted {
		qb = qb.Where(sq.Eq{"deleted": false})
	}
	if filter.AuthorID != 0 {
		qb = qb.Where(sq.Eq{"author_id": filter.AuthorID})
	}
	if filter.Search != "" {
		qb = qb.Where(sq.Like{"content": "%" + filter.Search + "%"})
	}
	if filter.Limit > 0 {
		qb = qb.Limit(uint64(filter.Limit))
		if filter.Page > 0 {
			qb = qb.Offset(uint64(filter.Page * filter.Limit))
		}
	}

	return qb.ToSql()
}
