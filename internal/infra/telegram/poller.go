package telegram

import (
	"errors"
	"time"

	"gopkg.in/telebot.v4"
)

// Режимы получения обновлений.
const (
	ModePolling = "polling"
	ModeWebhook = "webhook"
)

// PollerConfig параметры получения обновлений.
type PollerConfig struct {
	Mode        string
	WebhookURL  string
	ListenAddr  string
	PollTimeout time.Duration
}

// NewPoller создаёт Poller в зависимости от режима.
func NewPoller(cfg PollerConfig) (telebot.Poller, error) {
	if cfg.Mode == ModeWebhook {
		if cfg.WebhookURL == "" {
			return nil, errors.New("webhook mode requires WEBHOOK_URL")
		}
		return &telebot.Webhook{
			Listen: cfg.ListenAddr,
			Endpoint: &telebot.WebhookEndpoint{
				PublicURL: cfg.WebhookURL,
			},
		}, nil
	}

	timeout := cfg.PollTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &telebot.LongPoller{Timeout: timeout}, nil
}
