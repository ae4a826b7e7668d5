package middleware

import "gopkg.in/telebot.v4"

// AdminOnly пропускает только события от администраторов. Остальные события молча отбрасываются.
func AdminOnly(adminIDs []int64) telebot.MiddlewareFunc {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			u := c.Sender()
			if u == nil {
				return nil
			}
			if _, ok := admins[u.ID]; !ok {
				return nil
			}
			return next(c)
		}
	}
}
