package rules

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/autoreply/pkg/domain"
)

var strictPolicy = bluemonday.StrictPolicy()

// Sanitize strips any markup from admin supplied text and trims it.
// The admin UI renders rules as HTML, replies go out as plain text.
func Sanitize(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// ParseResponses turns a list of replies or a single comma separated string into a normalized list
func ParseResponses(list []string, commaSeparated string) domain.Responses {
	raw := list
	if len(raw) == 0 && commaSeparated != "" {
		raw = strings.Split(commaSeparated, ",")
	}
	res := make([]string, 0, len(raw))
	for _, r := range raw {
		res = append(res, Sanitize(r))
	}
	return domain.NormalizeResponses(res)
}

// AddRule sets keyword replies on the config. Existing keyword keeps its priority position.
func AddRule(cfg *domain.PostRuleConfig, keyword string, responses domain.Responses) error {
	keyword = strings.ToLower(Sanitize(keyword))
	if keyword == "" {
		return fmt.Errorf("%w: keyword is required", domain.ErrInvalidRule)
	}
	if len(responses) == 0 {
		return fmt.Errorf("%w: at least one response is required", domain.ErrInvalidRule)
	}
	if len(responses) > domain.MaxResponses {
		return fmt.Errorf("%w: max %d responses per keyword, got %d", domain.ErrTooManyResponses, domain.MaxResponses, len(responses))
	}
	if cfg.Keywords == nil {
		cfg.Keywords = domain.NewKeywords()
	}
	cfg.Keywords.Set(keyword, responses)
	return nil
}

// DeleteRule removes keyword from the config
func DeleteRule(cfg *domain.PostRuleConfig, keyword string) error {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if cfg.Keywords == nil {
		return fmt.Errorf("%w: %q", domain.ErrKeywordNotFound, keyword)
	}
	if _, ok := cfg.Keywords.Delete(keyword); !ok {
		return fmt.Errorf("%w: %q", domain.ErrKeywordNotFound, keyword)
	}
	return nil
}

// SetDirectMessage sets DM payload. Button text and url go together, url must be absolute http(s).
func SetDirectMessage(cfg *domain.PostRuleConfig, message, buttonText, buttonURL string) error {
	message, buttonText, buttonURL = Sanitize(message), Sanitize(buttonText), strings.TrimSpace(buttonURL)
	if (buttonText == "") != (buttonURL == "") {
		return fmt.Errorf("%w: button text and url must be set together", domain.ErrInvalidRule)
	}
	if buttonURL != "" {
		u, err := url.Parse(buttonURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: invalid button url %q", domain.ErrInvalidRule, buttonURL)
		}
	}
	if message == "" && buttonText != "" {
		return fmt.Errorf("%w: button requires a message", domain.ErrInvalidRule)
	}
	cfg.DMMessage, cfg.DMButtonText, cfg.DMButtonURL = message, buttonText, buttonURL
	return nil
}
