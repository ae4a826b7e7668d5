package middleware

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/telebot.v4"
)

// Throttler ставит флаг ограничения частоты для пользователя.
type Throttler interface {
	AcquireThrottle(ctx context.Context, telegramID int64, ttl time.Duration) (bool, error)
}

// Throttle пропускает не больше одного текстового сообщения пользователя за ttl.
// Лишние сообщения молча отбрасываются. Нажатия на кнопки не ограничиваются.
func Throttle(t Throttler, ttl time.Duration) telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			u := c.Sender()
			if c.Callback() != nil || c.Message() == nil || u == nil {
				return next(c)
			}

			ok, err := t.AcquireThrottle(context.Background(), u.ID, ttl)
			if err != nil {
				return fmt.Errorf("failed to check throttle: %w", err)
			}
			if !ok {
				return nil
			}
			return next(c)
		}
	}
}
