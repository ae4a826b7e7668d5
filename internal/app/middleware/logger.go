package middleware

import (
	"encoding/json"
	"log/slog"

	"gopkg.in/telebot.v4"
)

// Logger возвращает middleware, которое пишет каждое входящее обновление в лог на уровне DEBUG.
// Подключается только в режиме отладки.
func Logger(logger *slog.Logger) telebot.MiddlewareFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			data, _ := json.Marshal(c.Update())
			attrs := []any{slog.String("update", string(data))}
			if u := c.Sender(); u != nil {
				attrs = append(attrs, slog.Int64("user_id", u.ID))
			}
			logger.Debug("incoming update", attrs...)
			return next(c)
		}
	}
}
