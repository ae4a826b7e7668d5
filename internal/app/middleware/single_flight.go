package middleware

import (
	"context"

	"github.com/IT-Nick/garden-bot/internal/infra/locks"
	"gopkg.in/telebot.v4"
)

const busyText = "На данный момент бот уже занят выгрузкой данных.\nПожалуйста, повторите попытку позже."

// SingleFlight не даёт выполнять выгрузки одновременно.
// Если выгрузка уже идёт, пользователь получает сообщение о занятости. Дальше, в зависимости от режима
// блокировки, событие отбрасывается или ждёт освобождения.
func SingleFlight(lock *locks.ExportLock) telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			return lock.Do(context.Background(),
				func() error { return c.Send(busyText) },
				func() error { return next(c) },
			)
		}
	}
}
