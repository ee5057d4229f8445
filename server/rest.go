package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/umputun/autoreply/pkg/domain"
	"github.com/umputun/autoreply/pkg/rules"
)

const (
	maxHistoryLimit = 1000
	statusSuccess   = "success" // admin api envelope status, "error" on failures
)

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	if s.history != nil {
		if count, err := s.history.Count(r.Context()); err == nil {
			status["responded"] = count
		}
	}
	if s.db != nil {
		status["db"] = "ok"
		if err := s.db.Ping(r.Context()); err != nil {
			log.Printf("[WARN] history db ping failed: %v", err)
			status["db"] = "error"
		}
	}
	renderJSON(w, r, http.StatusOK, status)
}

// ruleRequest is the body of rule management calls, fields used depend on the call
type ruleRequest struct {
	PostID          string          `json:"post_id"`
	Keyword         string          `json:"keyword"`
	Responses       json.RawMessage `json:"responses"`
	Enabled         *bool           `json:"enabled"`
	DefaultResponse *string         `json:"default_response"`
	DMMessage       string          `json:"dm_message"`
	DMButtonText    string          `json:"dm_button_text"`
	DMButtonURL     string          `json:"dm_button_url"`
	CommentText     string          `json:"comment_text"`
}

// responses decodes a list of replies or a comma separated string
func (req ruleRequest) responses() (domain.Responses, error) {
	if len(req.Responses) == 0 || string(req.Responses) == "null" {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal(req.Responses, &list); err == nil {
		return rules.ParseResponses(list, ""), nil
	}
	var single string
	if err := json.Unmarshal(req.Responses, &single); err != nil {
		return nil, fmt.Errorf("%w: responses must be a list or a string", domain.ErrInvalidRule)
	}
	return rules.ParseResponses(nil, single), nil
}

// addRuleHandler adds or replaces replies of a keyword
func (s *Server) addRuleHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRuleRequest(w, r)
	if !ok {
		return
	}
	responses, err := req.responses()
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	cfg, err := s.rules.Update(r.Context(), req.PostID, func(cfg *domain.PostRuleConfig) error {
		return rules.AddRule(cfg, req.Keyword, responses)
	})
	if err != nil {
		s.renderUpdateError(w, r, "add rule", err)
		return
	}
	log.Printf("[INFO] rule %q added to post %s, %d responses", strings.ToLower(rules.Sanitize(req.Keyword)),
		req.PostID, len(responses))
	renderJSON(w, r, http.StatusOK, map[string]any{"status": statusSuccess, "message": "rule saved", "config": cfg})
}

// deleteRuleHandler removes a keyword, 404 if there is no such keyword
func (s *Server) deleteRuleHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRuleRequest(w, r)
	if !ok {
		return
	}
	cfg, err := s.rules.Update(r.Context(), req.PostID, func(cfg *domain.PostRuleConfig) error {
		return rules.DeleteRule(cfg, req.Keyword)
	})
	if err != nil {
		s.renderUpdateError(w, r, "delete rule", err)
		return
	}
	log.Printf("[INFO] rule %q deleted from post %s", req.Keyword, req.PostID)
	renderJSON(w, r, http.StatusOK, map[string]any{"status": statusSuccess, "message": "rule deleted", "config": cfg})
}

// listRulesHandler returns configs of all known posts
func (s *Server) listRulesHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, map[string]any{"status": statusSuccess, "rules": s.rules.List(r.Context())})
}

// getRulesHandler returns config of a post, defaults if nothing stored
func (s *Server) getRulesHandler(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathPostID(w, r)
	if !ok {
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"status": statusSuccess, "config": s.rules.Get(r.Context(), postID)})
}

// toggleAutoHandler enables or disables auto-reply. Enabling stamps enabled_since so older
// comments are not answered.
func (s *Server) toggleAutoHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRuleRequest(w, r)
	if !ok {
		return
	}
	if req.Enabled == nil {
		renderError(w, r, fmt.Errorf("%w: enabled is required", domain.ErrInvalidRule), http.StatusBadRequest)
		return
	}

	cfg, err := s.rules.Update(r.Context(), req.PostID, func(cfg *domain.PostRuleConfig) error {
		cfg.Enabled = *req.Enabled
		cfg.EnabledSince = nil
		if cfg.Enabled {
			now := time.Now().UTC()
			cfg.EnabledSince = &now
		}
		return nil
	})
	if err != nil {
		s.renderUpdateError(w, r, "toggle auto-reply", err)
		return
	}
	log.Printf("[INFO] auto-reply for post %s set to %v", req.PostID, cfg.Enabled)
	renderJSON(w, r, http.StatusOK, map[string]any{"status": statusSuccess, "message": "auto-reply updated", "config": cfg})
}

// setDefaultHandler sets or clears default response
func (s *Server) setDefaultHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRuleRequest(w, r)
	if !ok {
		return
	}
	if req.DefaultResponse == nil {
		renderError(w, r, fmt.Errorf("%w: default_response is required", domain.ErrInvalidRule), http.StatusBadRequest)
		return
	}

	cfg, err := s.rules.Update(r.Context(), req.PostID, func(cfg *domain.PostRuleConfig) error {
		cfg.DefaultResponse = rules.Sanitize(*req.DefaultResponse)
		return nil
	})
	if err != nil {
		s.renderUpdateError(w, r, "set default response", err)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"status": statusSuccess, "message": "default response updated", "config": cfg})
}

// setDMHandler sets direct message sent after a keyword reply, empty message disables it
func (s *Server) setDMHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRuleRequest(w, r)
	if !ok {
		return
	}
	cfg, err := s.rules.Update(r.Context(), req.PostID, func(cfg *domain.PostRuleConfig) error {
		return rules.SetDirectMessage(cfg, req.DMMessage, req.DMButtonText, req.DMButtonURL)
	})
	if err != nil {
		s.renderUpdateError(w, r, "set direct message", err)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"status": statusSuccess, "message": "direct message updated", "config": cfg})
}

// historyHandler lists responded comments, newest first
func (s *Server) historyHandler(w http.ResponseWriter, r *http.Request) {
	filter := domain.HistoryFilter{PostID: r.URL.Query().Get("post_id")}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			renderError(w, r, fmt.Errorf("invalid limit %q", limitStr), http.StatusBadRequest)
			return
		}
		filter.Limit = min(limit, maxHistoryLimit)
	}

	entries, err := s.history.List(r.Context(), filter)
	if err != nil {
		log.Printf("[ERROR] failed to list history: %v", err)
		renderError(w, r, fmt.Errorf("failed to list history"), http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"status": statusSuccess, "history": entries})
}

// processCommentsHandler runs the matcher against stored rules without sending anything
func (s *Server) processCommentsHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRuleRequest(w, r)
	if !ok {
		return
	}
	if !domain.ValidPostID(req.PostID) {
		renderError(w, r, fmt.Errorf("%w: %q", domain.ErrInvalidPostID, req.PostID), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.CommentText) == "" {
		renderError(w, r, fmt.Errorf("comment_text is required"), http.StatusBadRequest)
		return
	}

	cfg := s.rules.Get(r.Context(), req.PostID)
	res := rules.Match(req.CommentText, cfg, rules.RandomPick)
	renderJSON(w, r, http.StatusOK, map[string]any{
		"status":   statusSuccess,
		"matched":  res.Matched,
		"response": res.Reply,
		"keyword":  res.Keyword,
		"enabled":  cfg.Enabled,
	})
}

func (s *Server) decodeRuleRequest(w http.ResponseWriter, r *http.Request) (ruleRequest, bool) {
	var req ruleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return req, false
	}
	req.PostID = strings.TrimSpace(req.PostID)
	return req, true
}

// renderUpdateError maps rule errors to 400/404, anything else is a storage failure
func (s *Server) renderUpdateError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrKeywordNotFound):
		renderError(w, r, err, http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidRule), errors.Is(err, domain.ErrTooManyResponses),
		errors.Is(err, domain.ErrInvalidPostID):
		renderError(w, r, err, http.StatusBadRequest)
	default:
		log.Printf("[ERROR] failed to %s: %v", op, err)
		renderError(w, r, fmt.Errorf("failed to %s", op), http.StatusInternalServerError)
	}
}
