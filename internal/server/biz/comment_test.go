package biz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cowrite/cowrite/internal/objects"
	"github.com/cowrite/cowrite/internal/policy"
)

func TestCommentService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	svc, stores := setupTestServices(t)
	_, author := signUp(t, svc, "author")
	_, other := signUp(t, svc, "other")

	created, err := svc.Comments.Create(ctx, author, &objects.Comment{
		ID:         99,
		DocumentID: 1,
		UserID:     other.UserID,
		Content:    "looks good",
		Anchor:     "p1:0-4",
		Status:     objects.CommentStatusResolved,
	})
	require.NoError(t, err)
	assert.NotEqual(t, int64(99), created.ID)
	assert.Equal(t, author.UserID, created.UserID)
	assert.Equal(t, objects.CommentStatusActive, created.Status)

	t.Run("non author is forbidden", func(t *testing.T) {
		_, err := svc.Comments.Update(ctx, other, created.ID, &objects.Comment{Content: "mine now"})
		require.ErrorIs(t, err, policy.ErrForbidden)

		_, err = svc.Comments.ChangeStatus(ctx, other, created.ID, objects.CommentStatusResolved)
		require.ErrorIs(t, err, policy.ErrForbidden)

		_, err = svc.Comments.Delete(ctx, other, created.ID)
		require.ErrorIs(t, err, policy.ErrForbidden)
	})

	t.Run("author updates content", func(t *testing.T) {
		updated, err := svc.Comments.Update(ctx, author, created.ID, &objects.Comment{
			Content:    "edited",
			DocumentID: 2,
			Status:     objects.CommentStatusResolved,
		})
		require.NoError(t, err)
		assert.Equal(t, "edited", updated.Content)
		assert.Equal(t, int64(1), updated.DocumentID)
		assert.Equal(t, objects.CommentStatusActive, updated.Status)
	})

	t.Run("author resolves", func(t *testing.T) {
		resolved, err := svc.Comments.ChangeStatus(ctx, author, created.ID, objects.CommentStatusResolved)
		require.NoError(t, err)
		assert.Equal(t, objects.CommentStatusResolved, resolved.Status)
		assert.Equal(t, "edited", resolved.Content)

		_, err = svc.Comments.ChangeStatus(ctx, author, created.ID, "CLOSED")
		require.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("anyone reads", func(t *testing.T) {
		got, err := svc.Comments.Get(ctx, other, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)

		_, err = svc.Comments.Get(ctx, nil, created.ID)
		require.ErrorIs(t, err, policy.ErrUnauthenticated)
	})

	t.Run("author deletes", func(t *testing.T) {
		ok, err := svc.Comments.Delete(ctx, author, created.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		_, err = svc.Comments.Get(ctx, author, created.ID)
		require.ErrorIs(t, err, policy.ErrNotFound)

		_, err = svc.Comments.Delete(ctx, author, created.ID)
		require.ErrorIs(t, err, policy.ErrNotFound)

		stored, err := stores.Comments.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, stored.Deleted)
		assert.Equal(t, "edited", stored.Content)
	})
}

func TestCommentService_Create_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupTestServices(t)
	_, author := signUp(t, svc, "author")

	_, err := svc.Comments.Create(ctx, nil, &objects.Comment{DocumentID: 1, Content: "x"})
	require.ErrorIs(t, err, policy.ErrUnauthenticated)

	_, err = svc.Comments.Create(ctx, author, &objects.Comment{Content: "x"})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.Comments.Create(ctx, author, &objects.Comment{DocumentID: 1, Content: "  "})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.Comments.Create(ctx, author, nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCommentService_ListAndPage(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupTestServices(t)
	_, author := signUp(t, svc, "author")

	var ids []int64

	for i, content := range []string{"first draft", "second", "draft again", "other doc"} {
		doc := int64(1)
		if i == 3 {
			doc = 2
		}

		c, err := svc.Comments.Create(ctx, author, &objects.Comment{DocumentID: doc, Content: content})
		require.NoError(t, err)

		ids = append(ids, c.ID)
	}

	_, err := svc.Comments.Delete(ctx, author, ids[1])
	require.NoError(t, err)

	comments, err := svc.Comments.ListByDocument(ctx, author, 1)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, ids[2], comments[0].ID)
	assert.Equal(t, ids[0], comments[1].ID)

	_, err = svc.Comments.ListByDocument(ctx, nil, 1)
	require.ErrorIs(t, err, policy.ErrUnauthenticated)

	page, err := svc.Comments.Page(ctx, author, objects.PageRequest{Keyword: "draft"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 1, page.Current)
	assert.Equal(t, 10, page.Size)
	require.Len(t, page.Records, 2)
	assert.Equal(t, ids[2], page.Records[0].ID)

	page, err = svc.Comments.Page(ctx, author, objects.PageRequest{Page: 2, Size: 1, SortBy: "id", SortOrder: "ASC"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, int64(3), page.Pages)
	require.Len(t, page.Records, 1)
	assert.Equal(t, ids[2], page.Records[0].ID)
}
