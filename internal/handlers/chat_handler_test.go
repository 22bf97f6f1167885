package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/moneyfornothin/taxchat/internal/common"
	"github.com/moneyfornothin/taxchat/internal/interfaces"
)

// mockChatService implements interfaces.ChatService for testing
type mockChatService struct {
	chatFunc   func(ctx context.Context, req *interfaces.ChatRequest) (*interfaces.ChatResponse, error)
	healthFunc func(ctx context.Context) error
	resetCalls []string
}

func (m *mockChatService) Chat(ctx context.Context, req *interfaces.ChatRequest) (*interfaces.ChatResponse, error) {
	if m.chatFunc != nil {
		return m.chatFunc(ctx, req)
	}
	return &interfaces.ChatResponse{Answer: "ok", Provider: "mock", Model: "mock-large"}, nil
}

func (m *mockChatService) Reset(sessionID string) {
	m.resetCalls = append(m.resetCalls, sessionID)
}

func (m *mockChatService) HealthCheck(ctx context.Context) error {
	if m.healthFunc != nil {
		return m.healthFunc(ctx)
	}
	return nil
}

func TestChatHandler_Success(t *testing.T) {
	service := &mockChatService{
		chatFunc: func(ctx context.Context, req *interfaces.ChatRequest) (*interfaces.ChatResponse, error) {
			if req.Question != "What is the EITC?" {
				t.Errorf("Unexpected question: %q", req.Question)
			}
			return &interfaces.ChatResponse{
				Answer:          "A refundable credit.",
				SourceDocuments: []string{"pub596/eitc.md"},
				Provider:        "claude",
				Model:           "claude-sonnet-4-20250514",
			}, nil
		},
	}
	handler := NewChatHandler(service, common.GetLogger())

	body := `{"question": "What is the EITC?", "session_id": "s1"}`
	req := httptest.NewRequest("POST", "/api/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ChatHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response["answer"] != "A refundable credit." {
		t.Errorf("Unexpected answer: %v", response["answer"])
	}
	if response["provider"] != "claude" {
		t.Errorf("Unexpected provider: %v", response["provider"])
	}
	sources := response["source_documents"].([]interface{})
	if len(sources) != 1 || sources[0] != "pub596/eitc.md" {
		t.Errorf("Unexpected sources: %v", sources)
	}
}

func TestChatHandler_RejectsEmptyQuestion(t *testing.T) {
	handler := NewChatHandler(&mockChatService{}, common.GetLogger())

	req := httptest.NewRequest("POST", "/api/chat", strings.NewReader(`{"question": "  "}`))
	rec := httptest.NewRecorder()

	handler.ChatHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestChatHandler_RejectsInvalidBody(t *testing.T) {
	handler := NewChatHandler(&mockChatService{}, common.GetLogger())

	req := httptest.NewRequest("POST", "/api/chat", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	handler.ChatHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestChatHandler_RejectsWrongMethod(t *testing.T) {
	handler := NewChatHandler(&mockChatService{}, common.GetLogger())

	req := httptest.NewRequest("GET", "/api/chat", nil)
	rec := httptest.NewRecorder()

	handler.ChatHandler(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", rec.Code)
	}
}

func TestResetHandler(t *testing.T) {
	service := &mockChatService{}
	handler := NewChatHandler(service, common.GetLogger())

	req := httptest.NewRequest("POST", "/api/chat/reset", strings.NewReader(`{"session_id": "s7"}`))
	rec := httptest.NewRecorder()

	handler.ResetHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if len(service.resetCalls) != 1 || service.resetCalls[0] != "s7" {
		t.Errorf("Expected reset for s7, got %v", service.resetCalls)
	}
}

func TestHealthHandler_Unhealthy(t *testing.T) {
	service := &mockChatService{
		healthFunc: func(ctx context.Context) error {
			return context.DeadlineExceeded
		},
	}
	handler := NewChatHandler(service, common.GetLogger())

	req := httptest.NewRequest("GET", "/api/chat/health", nil)
	rec := httptest.NewRecorder()

	handler.HealthHandler(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", rec.Code)
	}
}
