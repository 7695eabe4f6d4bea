package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/fo76-feeds/internal/extract"
	"github.com/pfrederiksen/fo76-feeds/internal/feed"
)

const (
	telegramAPIBaseURL = "https://api.telegram.org/bot"
	telegramTimeout    = 10 * time.Second
)

// ErrMissingTelegramConfig is returned when TELEGRAM_BOT_TOKEN or TELEGRAM_CHAT_ID is unset.
var ErrMissingTelegramConfig = errors.New("missing TELEGRAM_BOT_TOKEN or TELEGRAM_CHAT_ID")

// TelegramNotifier sends one digest message per run to a Telegram chat.
type TelegramNotifier struct {
	baseURL    string
	botToken   string
	chatID     string
	httpClient *http.Client
}

// NewTelegramNotifier creates a notifier from TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID.
func NewTelegramNotifier() (*TelegramNotifier, error) {
	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	chatID := os.Getenv("TELEGRAM_CHAT_ID")
	if botToken == "" || chatID == "" {
		return nil, ErrMissingTelegramConfig
	}

	return &TelegramNotifier{
		baseURL:  telegramAPIBaseURL,
		botToken: botToken,
		chatID:   chatID,
		httpClient: &http.Client{
			Timeout: telegramTimeout,
		},
	}, nil
}

// Notify sends all events as a single digest.
func (n *TelegramNotifier) Notify(ctx context.Context, events []extract.EventEntry) error {
	if len(events) == 0 {
		return nil
	}
	return n.sendMessage(ctx, FormatDigest(events))
}

func (n *TelegramNotifier) sendMessage(ctx context.Context, text string) error {
	url := fmt.Sprintf("%s%s/sendMessage", n.baseURL, n.botToken)

	payload := map[string]interface{}{
		"chat_id":                  n.chatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("telegram API error: %s", result.Description)
	}

	return nil
}

// FormatDigest renders events as one HTML message, in start order.
func FormatDigest(events []extract.EventEntry) string {
	sorted := make([]extract.EventEntry, len(events))
	copy(sorted, events)
	feed.SortEvents(sorted)

	var msg strings.Builder
	msg.WriteString("☢️ <b>New Fallout 76 events</b>\n\n")
	msg.WriteString(fmt.Sprintf("🗓 %d new event%s on the calendar\n\n", len(sorted), pluralize(len(sorted))))

	for _, evt := range sorted {
		msg.WriteString(fmt.Sprintf("• <b>%s</b>\n", html.EscapeString(evt.Name)))
		if evt.Starts != "" || evt.Ends != "" {
			msg.WriteString(fmt.Sprintf("  %s → %s\n", html.EscapeString(evt.Starts), html.EscapeString(evt.Ends)))
		}
	}

	return msg.String()
}

func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
