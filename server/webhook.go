package server

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
)

const signatureHeader = "X-Hub-Signature-256"

// webhookVerifyHandler answers the subscription handshake, echoes hub.challenge if token matches
func (s *Server) webhookVerifyHandler(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("hub.mode")
	token := r.URL.Query().Get("hub.verify_token")
	challenge := r.URL.Query().Get("hub.challenge")

	verifyToken, _ := s.config.GetWebhookConfig()
	if mode != "subscribe" || verifyToken == "" || !hmac.Equal([]byte(token), []byte(verifyToken)) {
		log.Printf("[WARN] webhook verification failed, mode %q", mode)
		renderError(w, r, fmt.Errorf("verification failed"), http.StatusForbidden)
		return
	}

	log.Printf("[INFO] webhook verified")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(challenge))
}

// webhookEventHandler processes comment deliveries. Responds 200 for anything it could read,
// item level failures are never reported back.
func (s *Server) webhookEventHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("[WARN] can't read webhook body: %v", err)
		renderJSON(w, r, http.StatusOK, map[string]string{"status": "ok", "message": "unreadable body"})
		return
	}

	_, appSecret := s.config.GetWebhookConfig()
	if appSecret != "" && !validSignature(body, r.Header.Get(signatureHeader), appSecret) {
		log.Printf("[WARN] webhook signature mismatch from %s", r.RemoteAddr)
		renderError(w, r, fmt.Errorf("invalid signature"), http.StatusForbidden)
		return
	}

	summary, err := s.processor.ProcessPayload(r.Context(), body)
	if err != nil {
		log.Printf("[WARN] can't process webhook: %v", err)
		renderJSON(w, r, http.StatusOK, map[string]string{"status": "ok", "message": "payload ignored"})
		return
	}

	renderJSON(w, r, http.StatusOK, map[string]any{
		"status":   "ok",
		"message":  fmt.Sprintf("processed %d changes", summary.Total),
		"outcomes": summary.Outcomes,
	})
}

// validSignature checks "sha256=<hex>" header against hmac of the body
func validSignature(body []byte, header, secret string) bool {
	sig, ok := strings.CutPrefix(header, "sha256=")
	if !ok {
		return false
	}
	got, err := hex.DecodeString(sig)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hmac.Equal(got, mac.Sum(nil))
}
