package processor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/autoreply/pkg/domain"
)

// payload is the webhook delivery envelope. Entries and changes are kept raw and decoded one
// by one, so a malformed change doesn't spoil the rest of the delivery
type payload struct {
	Object string            `json:"object"`
	Entry  []json.RawMessage `json:"entry"`
}

type entry struct {
	Time    any               `json:"time"`
	Changes []json.RawMessage `json:"changes"`
}

type change struct {
	Field string          `json:"field"`
	Value json.RawMessage `json:"value"`
}

// decoded is the result of payload parsing
type decoded struct {
	events  []domain.CommentEvent
	ignored int // changes of other fields
	invalid int // entries or changes which can't be decoded
}

// decodePayload parses webhook body into comment events. Error returned only if the envelope
// itself is unreadable.
func decodePayload(body []byte) (decoded, error) {
	var p payload
	if err := decodeJSON(body, &p); err != nil {
		return decoded{}, fmt.Errorf("decode webhook payload: %w", err)
	}

	var res decoded
	for i, rawEntry := range p.Entry {
		var e entry
		if err := decodeJSON(rawEntry, &e); err != nil {
			lgr.Printf("[WARN] skip webhook entry %d: %v", i, err)
			res.invalid++
			continue
		}
		entryTime := domain.ParseTimestamp(firstString(map[string]any{"time": e.Time}, "time"))
		for j, rawChange := range e.Changes {
			var ch change
			if err := decodeJSON(rawChange, &ch); err != nil {
				lgr.Printf("[WARN] skip webhook change %d/%d: %v", i, j, err)
				res.invalid++
				continue
			}
			if ch.Field != "" && ch.Field != "comments" && ch.Field != "live_comments" {
				res.ignored++
				continue
			}
			value, err := decodeValue(ch.Value)
			if err != nil {
				lgr.Printf("[WARN] skip webhook change %d/%d: %v", i, j, err)
				res.invalid++
				continue
			}
			ev := eventFromValue(value)
			if ev.Timestamp == nil {
				ev.Timestamp = entryTime
			}
			res.events = append(res.events, ev)
		}
	}
	return res, nil
}

func decodeValue(raw json.RawMessage) (map[string]any, error) {
	var value map[string]any
	if err := decodeJSON(raw, &value); err != nil {
		return nil, fmt.Errorf("bad value: %w", err)
	}
	if value == nil {
		return nil, fmt.Errorf("no value")
	}
	return value, nil
}

// decodeJSON keeps numbers as json.Number, graph ids don't fit float64
func decodeJSON(data []byte, v any) error {
	if len(data) == 0 {
		return fmt.Errorf("empty value")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

// eventFromValue extracts comment fields, explicit id fields are tried before nested objects
func eventFromValue(v map[string]any) domain.CommentEvent {
	from := firstMap(v, "from", "user")
	ev := domain.CommentEvent{
		PostID:    firstString(v, "media_id", "post_id"),
		CommentID: firstString(v, "comment_id"),
		Text:      strings.TrimSpace(firstString(v, "text", "message")),
		Username:  firstString(from, "username", "name"),
		UserID:    firstString(from, "id"),
		Source:    domain.SourceWebhook,
	}
	if ev.PostID == "" {
		ev.PostID = firstString(firstMap(v, "media", "post"), "id")
	}
	if ev.CommentID == "" {
		ev.CommentID = firstString(firstMap(v, "comment"), "id")
	}
	if ev.CommentID == "" {
		ev.CommentID = firstString(v, "id")
	}
	if ev.Text == "" {
		ev.Text = strings.TrimSpace(firstString(firstMap(v, "comment"), "text", "message"))
	}
	if ev.Username == "" {
		ev.Username = firstString(v, "username")
	}
	ev.Timestamp = domain.ParseTimestamp(firstString(v, "timestamp", "created_time", "time"))
	return ev
}

func firstString(m map[string]any, keys ...string) string {
	for _, key := range keys {
		switch val := m[key].(type) {
		case string:
			if val != "" {
				return val
			}
		case json.Number:
			return val.String()
		}
	}
	return ""
}

func firstMap(m map[string]any, keys ...string) map[string]any {
	for _, key := range keys {
		if val, ok := m[key].(map[string]any); ok {
			return val
		}
	}
	return nil
}
