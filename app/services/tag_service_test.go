package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twogether/pkg/apperror"
)

func TestCreateTagReusesExisting(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.tags.Create(ctx, 1, " travel ")
	require.NoError(t, err)
	assert.Equal(t, "travel", first.Name)

	second, err := env.tags.Create(ctx, 1, "travel")
	require.NoError(t, err)
	assert.Equal(t, first.TagID, second.TagID)

	// 不同用户的同名标签互不影响
	other, err := env.tags.Create(ctx, 2, "travel")
	require.NoError(t, err)
	assert.NotEqual(t, first.TagID, other.TagID)

	_, err = env.tags.Create(ctx, 1, strings.Repeat("가", 21))
	assert.ErrorIs(t, err, apperror.ErrInvalidTagName)
	_, err = env.tags.Create(ctx, 1, "   ")
	assert.ErrorIs(t, err, apperror.ErrInvalidTagName)
}

func TestDeleteTag(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.singleUser(t, "author")
	stranger := env.singleUser(t, "stranger")

	memo, err := env.contents.CreateMemo(ctx, author, ContentInput{Title: "trip", Tags: []string{"travel"}})
	require.NoError(t, err)
	require.Len(t, memo.Tags, 1)
	tagID := memo.Tags[0].TagID

	err = env.tags.Delete(ctx, stranger, tagID)
	assert.ErrorIs(t, err, apperror.ErrTagNotFound)

	require.NoError(t, env.tags.Delete(ctx, author, tagID))

	tags, err := env.tags.List(ctx, author)
	require.NoError(t, err)
	assert.Empty(t, tags)

	got, err := env.contents.GetMemo(ctx, author, memo.ContentID)
	require.NoError(t, err)
	assert.Empty(t, got.Tags)

	// 删除后重新创建会恢复同名标签
	again, err := env.tags.Create(ctx, author, "travel")
	require.NoError(t, err)
	assert.Equal(t, tagID, again.TagID)
}
