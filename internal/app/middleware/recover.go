package middleware

import (
	"errors"
	"fmt"
	"log/slog"

	"gopkg.in/telebot.v4"
)

// Recover возвращает middleware, которое перехватывает панику в обработчике и превращает её в ошибку.
// Ошибка возвращается дальше по цепочке и попадает в обработчик ошибок бота.
func Recover(logger *slog.Logger) telebot.MiddlewareFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					switch x := r.(type) {
					case error:
						err = x
					case string:
						err = errors.New(x)
					default:
						err = fmt.Errorf("unknown panic: %v", x)
					}
					logger.Error("recovered from panic", slog.Any("error", err))
				}
			}()
			return next(c)
		}
	}
}
