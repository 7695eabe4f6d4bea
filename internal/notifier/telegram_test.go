package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pfrederiksen/fo76-feeds/internal/extract"
)

func testTelegram(serverURL string) *TelegramNotifier {
	return &TelegramNotifier{
		baseURL:    serverURL + "/bot",
		botToken:   "test-token",
		chatID:     "12345",
		httpClient: &http.Client{},
	}
}

func TestTelegramNotifier_Notify(t *testing.T) {
	var payload map[string]interface{}
	var path string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Expected Content-Type application/json, got %s", r.Header.Get("Content-Type"))
		}
		path = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decoding payload: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": true}) // nolint:errcheck
	}))
	defer server.Close()

	events := []extract.EventEntry{
		{Name: "Mutated Public Events", Starts: "Th, 16th Oct 2026 (12:00)", Ends: "Mo, 20th Oct 2026 (12:00)"},
		{Name: "Double XP", Starts: "Mo, 13th Oct 2026 (18:00)", Ends: "Mo, 20th Oct 2026 (18:00)"},
	}

	if err := testTelegram(server.URL).Notify(context.Background(), events); err != nil {
		t.Fatalf("Notify() unexpected error: %v", err)
	}

	if path != "/bottest-token/sendMessage" {
		t.Errorf("request path = %q", path)
	}
	if payload["chat_id"] != "12345" || payload["parse_mode"] != "HTML" {
		t.Errorf("unexpected payload %v", payload)
	}
	text, _ := payload["text"].(string)
	if !strings.Contains(text, "2 new events") {
		t.Errorf("digest text = %q", text)
	}
}

func TestTelegramNotifier_NoEvents(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	if err := testTelegram(server.URL).Notify(context.Background(), nil); err != nil {
		t.Errorf("Notify(nil) error = %v", err)
	}
	if called {
		t.Error("no request should be sent without events")
	}
}

func TestTelegramNotifier_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{ // nolint:errcheck
			"ok":          false,
			"description": "Bad Request: chat not found",
		})
	}))
	defer server.Close()

	err := testTelegram(server.URL).Notify(context.Background(), []extract.EventEntry{{Name: "Fasnacht"}})
	if err == nil || !strings.Contains(err.Error(), "Bad Request") {
		t.Errorf("Notify() error = %v, want error containing 'Bad Request'", err)
	}
}

func TestTelegramNotifier_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error")) // nolint:errcheck
	}))
	defer server.Close()

	err := testTelegram(server.URL).Notify(context.Background(), []extract.EventEntry{{Name: "Fasnacht"}})
	if err == nil || !strings.Contains(err.Error(), "status 500") {
		t.Errorf("Notify() error = %v, want error containing 'status 500'", err)
	}
}

func TestTelegramNotifier_CanceledContext(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := testTelegram(server.URL).Notify(ctx, []extract.EventEntry{{Name: "Fasnacht"}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Notify() error = %v, want context.Canceled", err)
	}
	if called {
		t.Error("no request should reach the server after cancellation")
	}
}

func TestNewTelegramNotifier(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "12345")
	if _, err := NewTelegramNotifier(); !errors.Is(err, ErrMissingTelegramConfig) {
		t.Errorf("NewTelegramNotifier() error = %v, want ErrMissingTelegramConfig", err)
	}

	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	n, err := NewTelegramNotifier()
	if err != nil {
		t.Fatalf("NewTelegramNotifier() error = %v", err)
	}
	if n.baseURL != telegramAPIBaseURL {
		t.Errorf("baseURL = %q", n.baseURL)
	}
}

func TestFormatDigest(t *testing.T) {
	events := []extract.EventEntry{
		{Name: "Late <Event>", Starts: "Mo, 20th Oct 2026 (18:00)", Ends: "Tu, 21st Oct 2026 (18:00)"},
		{Name: "Early & Loud", Starts: "Mo, 13th Oct 2026 (18:00)", Ends: "Mo, 20th Oct 2026 (18:00)"},
	}

	got := FormatDigest(events)

	early := strings.Index(got, "Early &amp; Loud")
	late := strings.Index(got, "Late &lt;Event&gt;")
	if early < 0 || late < 0 {
		t.Fatalf("digest should HTML-escape names:\n%s", got)
	}
	if early > late {
		t.Error("digest should list events in start order")
	}
	if events[0].Name != "Late <Event>" {
		t.Error("FormatDigest must not reorder the caller's slice")
	}

	single := FormatDigest(events[:1])
	if !strings.Contains(single, "1 new event on") {
		t.Errorf("singular form missing:\n%s", single)
	}
}
