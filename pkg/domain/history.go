package domain

import "time"

// HistoryEntry is the write-once record of a comment the bot responded to
type HistoryEntry struct {
	CommentID         string    `json:"comment_id"`
	PostID            string    `json:"post_id"`
	CommenterUsername string    `json:"commenter_username"`
	CommenterUserID   string    `json:"commenter_user_id"`
	CommentText       string    `json:"comment_text"`
	ReplyText         string    `json:"reply_text"`
	Keyword           string    `json:"keyword,omitempty"`
	RespondedAt       time.Time `json:"responded_at"`
	Matched           bool      `json:"matched"`
}

// HistoryFilter narrows history listing
type HistoryFilter struct {
	PostID string
	Limit  int
}
