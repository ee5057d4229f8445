package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// CommentSource tells where a comment event came from
type CommentSource string

// comment sources
const (
	SourceWebhook CommentSource = "webhook"
	SourcePoll    CommentSource = "poll"
)

// CommentEvent is a single inbound comment, normalized from a webhook change or a polled comment
type CommentEvent struct {
	PostID    string
	CommentID string
	Text      string
	Username  string
	UserID    string
	Timestamp *time.Time // nil when absent or unparsable
	Source    CommentSource
}

// MatchResult is the outcome of running comment text against the rules of a post.
// Matched is true only for a keyword hit; a default response leaves it false with a non-empty Reply.
type MatchResult struct {
	Matched bool
	Reply   string
	Keyword string
}

// HasReply reports whether anything should be sent
func (m MatchResult) HasReply() bool {
	return m.Reply != ""
}

var postIDRe = regexp.MustCompile(`^[A-Za-z0-9_.\-]{1,128}$`)

// ValidPostID checks post id is non-empty and safe to use as a storage key and file name part
func ValidPostID(id string) bool {
	return postIDRe.MatchString(id) && id != "." && id != ".."
}

// graphTimeLayout is the timestamp format of the Graph API, zone offset without colon
const graphTimeLayout = "2006-01-02T15:04:05-0700"

// ParseTimestamp accepts RFC3339, Graph API layout and unix seconds, nil if none fits
func ParseTimestamp(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, graphTimeLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil && secs > 0 {
		t := time.Unix(secs, 0).UTC()
		return &t
	}
	return nil
}
