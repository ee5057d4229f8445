// Package platform is a minimal Graph API client for comment replies, direct messages
// and listing media comments.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/autoreply/pkg/metrics"
)

// DefaultGraphURL is the Graph API base used when none configured
const DefaultGraphURL = "https://graph.instagram.com/v23.0"

// Client talks to the platform Graph API
type Client struct {
	baseURL string
	token   string
	userID  string
	http    *http.Client
}

// Params for the client
type Params struct {
	BaseURL     string
	AccessToken string
	UserID      string // account id owning the media, "me" if empty
	Timeout     time.Duration
}

// DirectMessage is a private message with optional single url button
type DirectMessage struct {
	RecipientID string
	Text        string
	ButtonText  string
	ButtonURL   string
}

// Media is a post of the account
type Media struct {
	ID            string `json:"id"`
	Caption       string `json:"caption"`
	MediaType     string `json:"media_type"`
	MediaURL      string `json:"media_url"`
	ThumbnailURL  string `json:"thumbnail_url"`
	Timestamp     string `json:"timestamp"`
	LikeCount     int    `json:"like_count"`
	CommentsCount int    `json:"comments_count"`
	Children      *struct {
		Data []struct {
			MediaURL string `json:"media_url"`
		} `json:"data"`
	} `json:"children,omitempty"`
}

// PreviewURL returns url of the image to show for the post. First child for albums,
// media itself for images, thumbnail for videos.
func (m Media) PreviewURL() string {
	switch m.MediaType {
	case "CAROUSEL_ALBUM":
		if m.Children != nil && len(m.Children.Data) > 0 && m.Children.Data[0].MediaURL != "" {
			return m.Children.Data[0].MediaURL
		}
	case "IMAGE":
		if m.MediaURL != "" {
			return m.MediaURL
		}
	}
	if m.ThumbnailURL != "" {
		return m.ThumbnailURL
	}
	return m.MediaURL
}

// Comment is a comment on a media
type Comment struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
	Username  string `json:"username"`
	From      struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"from"`
}

// APIError is the error envelope returned by the Graph API
type APIError struct {
	Status    int    `json:"-"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	Code      int    `json:"code"`
	FBTraceID string `json:"fbtrace_id"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("platform api error %d (%s, status %d): %s", e.Code, e.Type, e.Status, e.Message)
}

// New makes a client
func New(p Params) *Client {
	if p.BaseURL == "" {
		p.BaseURL = DefaultGraphURL
	}
	if p.UserID == "" {
		p.UserID = "me"
	}
	if p.Timeout <= 0 {
		p.Timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(p.BaseURL, "/"),
		token:   p.AccessToken,
		userID:  p.UserID,
		http:    &http.Client{Timeout: p.Timeout},
	}
}

// ReplyToComment posts a public reply under the comment
func (c *Client) ReplyToComment(ctx context.Context, commentID, message string) error {
	form := url.Values{}
	form.Set("message", message)
	form.Set("access_token", c.token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+url.PathEscape(commentID)+"/replies",
		strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("make reply request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if err := c.do(req, "reply", nil); err != nil {
		return fmt.Errorf("reply to comment %s: %w", commentID, err)
	}
	return nil
}

// SendDirectMessage sends a private message, as a button template when button is set
func (c *Client) SendDirectMessage(ctx context.Context, dm DirectMessage) error {
	body := map[string]any{"recipient": map[string]string{"id": dm.RecipientID}}
	if dm.ButtonText != "" && dm.ButtonURL != "" {
		body["message"] = map[string]any{
			"attachment": map[string]any{
				"type": "template",
				"payload": map[string]any{
					"template_type": "button",
					"text":          dm.Text,
					"buttons": []map[string]string{
						{"type": "web_url", "url": dm.ButtonURL, "title": dm.ButtonText},
					},
				},
			},
		}
	} else {
		body["message"] = map[string]string{"text": dm.Text}
	}

	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal direct message: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+url.PathEscape(c.userID)+"/messages",
		bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("make message request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	if err := c.do(req, "dm", nil); err != nil {
		return fmt.Errorf("send direct message to %s: %w", dm.RecipientID, err)
	}
	return nil
}

// maxCommentPages limits how many pages ListComments follows
const maxCommentPages = 20

const mediaFields = "id,caption,media_type,media_url,thumbnail_url,timestamp,like_count,comments_count"

// ListMedia returns up to limit latest posts of the account
func (c *Client) ListMedia(ctx context.Context, limit int) ([]Media, error) {
	params := url.Values{}
	params.Set("fields", mediaFields)
	params.Set("limit", strconv.Itoa(limit))

	var resp struct {
		Data []Media `json:"data"`
	}
	if err := c.get(ctx, "/"+url.PathEscape(c.userID)+"/media", params, "list_media", &resp); err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	return resp.Data, nil
}

// GetMedia returns a single post with its album children
func (c *Client) GetMedia(ctx context.Context, mediaID string) (Media, error) {
	params := url.Values{}
	params.Set("fields", mediaFields+",children{media_url}")

	var res Media
	if err := c.get(ctx, "/"+url.PathEscape(mediaID), params, "get_media", &res); err != nil {
		return Media{}, fmt.Errorf("get media %s: %w", mediaID, err)
	}
	return res, nil
}

// ListComments returns comments of the media, following pagination cursors up to maxCommentPages
func (c *Client) ListComments(ctx context.Context, mediaID string) ([]Comment, error) {
	var res []Comment
	after := ""
	for page := 0; page < maxCommentPages; page++ {
		params := url.Values{}
		params.Set("fields", "id,text,timestamp,username,from")
		if after != "" {
			params.Set("after", after)
		}

		var resp struct {
			Data   []Comment `json:"data"`
			Paging struct {
				Cursors struct {
					After string `json:"after"`
				} `json:"cursors"`
				Next string `json:"next"`
			} `json:"paging"`
		}
		if err := c.get(ctx, "/"+url.PathEscape(mediaID)+"/comments", params, "list_comments", &resp); err != nil {
			return nil, fmt.Errorf("list comments of %s: %w", mediaID, err)
		}
		res = append(res, resp.Data...)
		if resp.Paging.Next == "" || resp.Paging.Cursors.After == "" || len(resp.Data) == 0 {
			return res, nil
		}
		after = resp.Paging.Cursors.After
	}
	lgr.Printf("[WARN] comments of %s truncated at %d pages, %d comments", mediaID, maxCommentPages, len(res))
	return res, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, op string, res any) error {
	params.Set("access_token", c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("make request: %w", err)
	}
	req.URL.RawQuery = params.Encode()
	return c.do(req, op, res)
}

// do sends request, decodes API errors and, if res is set, the response body
func (c *Client) do(req *http.Request, op string, res any) error {
	st := time.Now()
	status := "error"
	defer func() {
		metrics.PlatformRequestSeconds.WithLabelValues(op, status).Observe(time.Since(st).Seconds())
	}()

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		var envelope struct {
			Error *APIError `json:"error"`
		}
		if json.Unmarshal(body, &envelope) == nil && envelope.Error != nil {
			envelope.Error.Status = resp.StatusCode
			return envelope.Error
		}
		return &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(body)), Type: "http"}
	}

	status = "ok"
	if res == nil {
		return nil
	}
	if err := json.Unmarshal(body, res); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
