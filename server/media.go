package server

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/umputun/autoreply/pkg/domain"
	"github.com/umputun/autoreply/pkg/platform"
)

const (
	mediaListLimit    = 50 // latest posts fetched for the listing
	postsPerPage      = 5
	captionPreviewLen = 80
)

// postView is a post as shown to the admin ui
type postView struct {
	ID           string `json:"id"`
	Caption      string `json:"caption"`
	MediaType    string `json:"media_type"`
	URL          string `json:"url,omitempty"`
	Thumbnail    string `json:"thumbnail"`
	LikeCount    int    `json:"like_count"`
	CommentCount int    `json:"comment_count"`
	Timestamp    string `json:"timestamp,omitempty"`
}

type commentView struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// getPostsHandler lists latest posts of the account, page by page
func (s *Server) getPostsHandler(w http.ResponseWriter, r *http.Request) {
	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < 1 {
			renderError(w, r, fmt.Errorf("invalid page %q", v), http.StatusBadRequest)
			return
		}
		page = p
	}

	media, err := s.media.ListMedia(r.Context(), mediaListLimit)
	if err != nil {
		log.Printf("[WARN] failed to list posts: %v", err)
		renderError(w, r, fmt.Errorf("failed to list posts"), http.StatusBadGateway)
		return
	}

	start := min((page-1)*postsPerPage, len(media))
	end := min(start+postsPerPage, len(media))
	posts := make([]postView, 0, end-start)
	for _, m := range media[start:end] {
		v := newPostView(m)
		v.Caption = truncate(v.Caption, captionPreviewLen)
		v.URL, v.Timestamp = "", ""
		posts = append(posts, v)
	}

	renderJSON(w, r, http.StatusOK, map[string]any{
		"status":   statusSuccess,
		"posts":    posts,
		"total":    len(media),
		"page":     page,
		"per_page": postsPerPage,
		"has_next": end < len(media),
	})
}

// getPostHandler returns details of a single post
func (s *Server) getPostHandler(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathPostID(w, r)
	if !ok {
		return
	}
	m, err := s.media.GetMedia(r.Context(), postID)
	if err != nil {
		log.Printf("[WARN] failed to get post %s: %v", postID, err)
		renderError(w, r, fmt.Errorf("failed to get post"), http.StatusBadGateway)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"status": statusSuccess, "post": newPostView(m)})
}

// getCommentsHandler lists comments of a post
func (s *Server) getCommentsHandler(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathPostID(w, r)
	if !ok {
		return
	}
	comments, err := s.media.ListComments(r.Context(), postID)
	if err != nil {
		log.Printf("[WARN] failed to list comments of %s: %v", postID, err)
		renderError(w, r, fmt.Errorf("failed to list comments"), http.StatusBadGateway)
		return
	}

	res := make([]commentView, 0, len(comments))
	for _, c := range comments {
		username := c.Username
		if username == "" {
			username = c.From.Username
		}
		res = append(res, commentView{ID: c.ID, Username: username, Text: c.Text, Timestamp: c.Timestamp})
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"status": statusSuccess, "comments": res, "total": len(res)})
}

func newPostView(m platform.Media) postView {
	caption := m.Caption
	if caption == "" {
		caption = "no caption"
	}
	mediaType := m.MediaType
	if mediaType == "" {
		mediaType = "UNKNOWN"
	}
	url := m.MediaURL
	if url == "" {
		url = m.PreviewURL()
	}
	return postView{
		ID:           m.ID,
		Caption:      caption,
		MediaType:    mediaType,
		URL:          url,
		Thumbnail:    m.PreviewURL(),
		LikeCount:    m.LikeCount,
		CommentCount: m.CommentsCount,
		Timestamp:    m.Timestamp,
	}
}

func pathPostID(w http.ResponseWriter, r *http.Request) (string, bool) {
	postID := r.PathValue("post_id")
	if !domain.ValidPostID(postID) {
		renderError(w, r, fmt.Errorf("%w: %q", domain.ErrInvalidPostID, postID), http.StatusBadRequest)
		return "", false
	}
	return postID, true
}

// truncate cuts s to n runes, adding "..." if cut
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
