package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grouple/communityhub/internal/model"
)

func TestPaginatedPostsPageAtTwo(t *testing.T) {
	postRepo := newFakePostRepo()
	svc := NewPostService(postRepo)
	channelID, viewerID := uuid.New(), uuid.New()

	for i := 0; i < 3; i++ {
		post := &model.Post{Content: "hello", ChannelID: channelID, AuthorID: viewerID}
		require.NoError(t, postRepo.Create(context.Background(), post))
	}

	first, err := svc.Paginated(context.Background(), channelID, viewerID, 0)
	require.NoError(t, err)
	assert.Len(t, first, PostsPageSize)

	second, err := svc.Paginated(context.Background(), channelID, viewerID, PostsPageSize)
	require.NoError(t, err)
	assert.Len(t, second, 1)

	// Past the end the page is empty, which surfaces as no results.
	_, err = svc.Paginated(context.Background(), channelID, viewerID, 4)
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestLikeAndUnlike(t *testing.T) {
	postRepo := newFakePostRepo()
	svc := NewPostService(postRepo)
	channelID, viewerID := uuid.New(), uuid.New()

	post := &model.Post{Content: "hello", ChannelID: channelID, AuthorID: viewerID}
	require.NoError(t, postRepo.Create(context.Background(), post))

	require.NoError(t, svc.Like(context.Background(), post.ID, viewerID))

	feed, err := svc.Paginated(context.Background(), channelID, viewerID, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), feed[0].LikeCount)
	assert.Len(t, feed[0].Likes, 1)

	require.NoError(t, svc.Unlike(context.Background(), post.ID, viewerID))
	assert.ErrorIs(t, svc.Unlike(context.Background(), post.ID, viewerID), ErrPostNotFound)

	assert.ErrorIs(t, svc.Like(context.Background(), uuid.New(), viewerID), ErrPostNotFound)
}

func TestComments(t *testing.T) {
	postRepo := newFakePostRepo()
	svc := NewPostService(postRepo)
	channelID, viewerID := uuid.New(), uuid.New()

	post := &model.Post{Content: "hello", ChannelID: channelID, AuthorID: viewerID}
	require.NoError(t, postRepo.Create(context.Background(), post))

	comment, err := svc.Comment(context.Background(), post.ID, viewerID, "nice one")
	require.NoError(t, err)
	assert.Equal(t, "nice one", comment.Content)

	comments, err := svc.Comments(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 1)

	_, err = svc.Comment(context.Background(), uuid.New(), viewerID, "nope")
	assert.ErrorIs(t, err, ErrPostNotFound)
}
