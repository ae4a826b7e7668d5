package middleware

import (
	"context"
	"fmt"

	"github.com/IT-Nick/garden-bot/internal/domain/users/service"
	"gopkg.in/telebot.v4"
)

// UserTracker регистрирует пользователей и следит за сменой username.
type UserTracker interface {
	Track(ctx context.Context, p service.Profile) error
}

// TrackUser регистрирует отправителя при первом обращении и обновляет его username.
func TrackUser(tracker UserTracker) telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			u := c.Sender()
			if u == nil || u.IsBot {
				return next(c)
			}

			err := tracker.Track(context.Background(), service.Profile{
				TelegramID: u.ID,
				UserName:   u.Username,
				FirstName:  u.FirstName,
				LastName:   u.LastName,
			})
			if err != nil {
				return fmt.Errorf("failed to track user %d: %w", u.ID, err)
			}
			return next(c)
		}
	}
}
