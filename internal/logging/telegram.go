package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"omnia-sync/internal/config"
)

const (
	iconInfo    = "ℹ️"
	iconError   = "❌"
	iconWarning = "⚠️"
	iconSuccess = "✅"
)

// TelegramNotifier pushes selected log lines to a Telegram chat. A nil
// notifier is valid and drops everything, so callers never have to check.
type TelegramNotifier struct {
	creds config.TelegramBotConfig
}

type telegramRequest struct {
	ChatId string `json:"chat_id"`
	Text   string `json:"text"`
}

func NewTelegramNotifier(cfg config.TelegramBotConfig) *TelegramNotifier {
	if cfg.ChatId == "" || cfg.Token == "" {
		return nil
	}
	return &TelegramNotifier{creds: cfg}
}

func (t *TelegramNotifier) Notify(icon, level, value string) {
	if t == nil {
		return
	}
	_ = t.sendRequest(formatMessage(icon, level, value))
}

func formatMessage(icon, level, value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		v = "-"
	}
	return fmt.Sprintf("%s %s: %s", icon, level, v)
}

func (t *TelegramNotifier) sendRequest(value string) error {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.creds.Token)

	reqBody := telegramRequest{
		ChatId: t.creds.ChatId,
		Text:   value,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram send failed: %s: %s", resp.Status, string(respBody))
	}
	return nil
}
