package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_buildPostListQuery_DefaultFilter(t *testing.T) {
	query, args, err := buildPostListQuery(PostFilter{})
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "from posts")
	require.Contains(t, q, "deleted = ?")
	require.Contains(t, q, "order by created_at is null, created_at desc, id desc")
	assert.NotContains(t, q, "limit")
	assert.NotContains(t, q, "author_id")
	assert.NotContains(t, q, "like")

	require.Len(t, args, 1)
	assert.Equal(t, false, args[0])
}

func Test_buildPostListQuery_AllFilters(t *testing.T) {
	query, args, err := buildPostListQuery(PostFilter{
		AuthorID: 7,
		Search:   "cats",
		Page:     2,
		Limit:    10,
	})
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "author_id = ?")
	require.Contains(t, q, "content like ?")
	require.Contains(t, q, "limit 10")
	require.Contains(t, q, "offset 20")

	require.Len(t, args, 3)
	assert.Equal(t, false, args[0])
	assert.Equal(t, int64(7), args[1])
	assert.Equal(t, "%cats%", args[2])
}

func Test_buildPostListQuery_IncludeDeleted(t *testing.T) {
	query, args, err := buildPostListQuery(PostFilter{IncludeDeleted: true})
	require.NoError(t, err)

	assert.NotContains(t, strings.ToLower(query), "deleted")
	assert.Empty(t, args)
}

func Test_buildPostListQuery_FirstPageHasNoOffset(t *testing.T) {
	query, _, err := buildPostListQuery(PostFilter{Limit: 10})
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "limit 10")
	assert.NotContains(t, q, "offset")
}
