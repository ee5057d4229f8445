package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/autoreply/pkg/platform"
	"github.com/umputun/autoreply/server/mocks"
)

func TestServer_getPostsHandler(t *testing.T) {
	posts := make([]platform.Media, 0, 7)
	for i := 1; i <= 7; i++ {
		posts = append(posts, platform.Media{ID: fmt.Sprintf("p%d", i), MediaType: "IMAGE", MediaURL: "https://cdn/img.jpg",
			CommentsCount: i, LikeCount: 10 * i})
	}
	posts[0].Caption = strings.Repeat("a", 100)
	media := &mocks.MediaMock{ListMediaFunc: func(ctx context.Context, limit int) ([]platform.Media, error) {
		return posts, nil
	}}
	srv := testServer(t, Deps{Media: media})

	code, resp := call(t, srv, http.MethodGet, "/api/get_posts", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", resp["status"])
	assert.Equal(t, float64(7), resp["total"])
	assert.Equal(t, float64(1), resp["page"])
	assert.Equal(t, true, resp["has_next"])
	items := resp["posts"].([]any)
	require.Len(t, items, 5)
	first := items[0].(map[string]any)
	assert.Equal(t, "p1", first["id"])
	assert.Equal(t, strings.Repeat("a", 80)+"...", first["caption"])
	assert.Equal(t, "https://cdn/img.jpg", first["thumbnail"])
	assert.Equal(t, float64(1), first["comment_count"])
	assert.Equal(t, float64(10), first["like_count"])
	assert.Equal(t, "no caption", items[1].(map[string]any)["caption"])
	require.Len(t, media.ListMediaCalls(), 1)
	assert.Equal(t, mediaListLimit, media.ListMediaCalls()[0].Limit)

	code, resp = call(t, srv, http.MethodGet, "/api/get_posts?page=2", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, resp["posts"].([]any), 2)
	assert.Equal(t, false, resp["has_next"])

	code, resp = call(t, srv, http.MethodGet, "/api/get_posts?page=9", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, resp["posts"].([]any))

	code, _ = call(t, srv, http.MethodGet, "/api/get_posts?page=0", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestServer_getPostsHandler_PlatformError(t *testing.T) {
	media := &mocks.MediaMock{ListMediaFunc: func(ctx context.Context, limit int) ([]platform.Media, error) {
		return nil, &platform.APIError{Status: 400, Message: "Invalid OAuth access token"}
	}}
	code, resp := call(t, testServer(t, Deps{Media: media}), http.MethodGet, "/api/get_posts", "")
	assert.Equal(t, http.StatusBadGateway, code)
	assert.Equal(t, "error", resp["status"])
	assert.Equal(t, "failed to list posts", resp["message"])
}

func TestServer_getPostHandler(t *testing.T) {
	album := platform.Media{ID: "p1", Caption: "summer drop", MediaType: "CAROUSEL_ALBUM", LikeCount: 3, CommentsCount: 2,
		Timestamp: "2026-05-01T10:00:00+0000", ThumbnailURL: "https://cdn/t.jpg"}
	media := &mocks.MediaMock{GetMediaFunc: func(ctx context.Context, mediaID string) (platform.Media, error) {
		if mediaID == "p1" {
			return album, nil
		}
		return platform.Media{}, errors.New("not found")
	}}
	srv := testServer(t, Deps{Media: media})

	code, resp := call(t, srv, http.MethodGet, "/api/post/p1", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", resp["status"])
	post := resp["post"].(map[string]any)
	assert.Equal(t, "summer drop", post["caption"])
	assert.Equal(t, "CAROUSEL_ALBUM", post["media_type"])
	assert.Equal(t, "https://cdn/t.jpg", post["thumbnail"])
	assert.Equal(t, "https://cdn/t.jpg", post["url"])
	assert.Equal(t, "2026-05-01T10:00:00+0000", post["timestamp"])

	code, _ = call(t, srv, http.MethodGet, "/api/post/p2", "")
	assert.Equal(t, http.StatusBadGateway, code)

	code, _ = call(t, srv, http.MethodGet, "/api/post/bad%20id", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Len(t, media.GetMediaCalls(), 2)
}

func TestServer_getCommentsHandler(t *testing.T) {
	media := &mocks.MediaMock{ListCommentsFunc: func(ctx context.Context, mediaID string) ([]platform.Comment, error) {
		c1 := platform.Comment{ID: "c1", Text: "price?", Username: "bob", Timestamp: "2026-05-01T10:00:00+0000"}
		c2 := platform.Comment{ID: "c2", Text: "sale"}
		c2.From.Username = "ann"
		return []platform.Comment{c1, c2}, nil
	}}
	srv := testServer(t, Deps{Media: media})

	code, resp := call(t, srv, http.MethodGet, "/api/comments/p1", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", resp["status"])
	assert.Equal(t, float64(2), resp["total"])
	comments := resp["comments"].([]any)
	require.Len(t, comments, 2)
	assert.Equal(t, "bob", comments[0].(map[string]any)["username"])
	assert.Equal(t, "price?", comments[0].(map[string]any)["text"])
	assert.Equal(t, "ann", comments[1].(map[string]any)["username"])
	assert.Equal(t, "p1", media.ListCommentsCalls()[0].MediaID)
}

func TestServer_MediaRoutesDisabled(t *testing.T) {
	srv := testServer(t, Deps{})
	for _, path := range []string{"/api/get_posts", "/api/post/p1", "/api/comments/p1"} {
		code := statusOf(srv, http.MethodGet, path)
		assert.Equal(t, http.StatusNotFound, code, path)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abc", 2))
	assert.Equal(t, "привет...", truncate("привет мир", 6))
}
