package middleware

import (
	"log/slog"
	"sync"
	"time"

	"gopkg.in/telebot.v4"
)

// ChatAction показывает пользователю статус (например, "отправляет файл"), пока работает обработчик.
// Статус в Telegram гаснет через несколько секунд, поэтому он повторяется каждые every.
func ChatAction(action telebot.ChatAction, every time.Duration, logger *slog.Logger) telebot.MiddlewareFunc {
	if every <= 0 {
		every = 4 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			if c.Chat() == nil {
				return next(c)
			}

			done := make(chan struct{})
			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer wg.Done()
				ticker := time.NewTicker(every)
				defer ticker.Stop()
				for {
					if err := c.Notify(action); err != nil {
						logger.Debug("failed to send chat action", slog.Any("error", err))
					}
					select {
					case <-done:
						return
					case <-ticker.C:
					}
				}
			}()
			defer func() {
				close(done)
				wg.Wait()
			}()

			return next(c)
		}
	}
}
