package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"exterior_chat_backend/platform/logger"
)

type fakeService struct {
	handled   []string
	restarted []string
}

func (f *fakeService) HandleMessage(_ context.Context, conversationID, text string) error {
	f.handled = append(f.handled, conversationID+":"+text)
	return nil
}

func (f *fakeService) Restart(_ context.Context, conversationID string) error {
	f.restarted = append(f.restarted, conversationID)
	return nil
}

type fakeWebhookConfig struct{}

func (fakeWebhookConfig) GetVerifyToken() string { return "secret-token" }

func setupHandler(t *testing.T) (*gin.Engine, *fakeService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := &fakeService{}
	h := New(svc, fakeWebhookConfig{}, logger.New("development"))

	r := gin.New()
	h.RegisterRoutes(r.Group("/webhook"))
	return r, svc
}

func TestVerifyHandshakeEchoesChallenge(t *testing.T) {
	r, _ := setupHandler(t)

	req := httptest.NewRequest(http.MethodGet,
		"/webhook?hub.mode=subscribe&hub.verify_token=secret-token&hub.challenge=1158201444", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "1158201444" {
		t.Fatalf("expected the challenge echoed, got %q", w.Body.String())
	}
}

func TestVerifyHandshakeRejectsBadToken(t *testing.T) {
	r, _ := setupHandler(t)

	req := httptest.NewRequest(http.MethodGet,
		"/webhook?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=x", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestEventsDispatchToService(t *testing.T) {
	r, svc := setupHandler(t)

	body := `{
		"object": "page",
		"entry": [{
			"id": "page-1",
			"messaging": [
				{"sender": {"id": "user-1"}, "message": {"text": "hi there"}},
				{"sender": {"id": "user-2"}, "message": {"text": "ignored echo", "is_echo": true}},
				{"sender": {"id": "user-3"}, "postback": {"payload": "GET_STARTED"}}
			]
		}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "EVENT_RECEIVED" {
		t.Fatalf("expected acknowledgment body, got %q", w.Body.String())
	}

	if len(svc.handled) != 1 || svc.handled[0] != "user-1:hi there" {
		t.Fatalf("unexpected handled messages: %v", svc.handled)
	}
	if len(svc.restarted) != 1 || svc.restarted[0] != "user-3" {
		t.Fatalf("unexpected restarts: %v", svc.restarted)
	}
}

func TestEventsQuickReplyPayloadWins(t *testing.T) {
	r, svc := setupHandler(t)

	body := `{
		"object": "page",
		"entry": [{
			"messaging": [
				{"sender": {"id": "user-9"}, "message": {"text": "Windows", "quick_reply": {"payload": "windows"}}}
			]
		}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if len(svc.handled) != 1 || svc.handled[0] != "user-9:windows" {
		t.Fatalf("expected quick reply payload, got %v", svc.handled)
	}
}

func TestEventsRejectsNonPageObjects(t *testing.T) {
	r, svc := setupHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{"object":"user","entry":[]}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if len(svc.handled) != 0 {
		t.Fatalf("nothing should be handled, got %v", svc.handled)
	}
}

func TestEventsRejectsMalformedJSON(t *testing.T) {
	r, _ := setupHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
