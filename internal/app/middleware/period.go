package middleware

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/IT-Nick/garden-bot/internal/domain/stats"
	"gopkg.in/telebot.v4"
)

const (
	periodKey = "period"

	// AllTimeData данные кнопки выгрузки за всё время.
	AllTimeData = "all"

	invalidFormatText = "Некорректный формат команды"
)

// ParsePeriod разбирает период выгрузки и кладёт его в контекст обработчика.
// Текст сообщения: число дней или интервал ДД.ММ.ГГГГ-ДД.ММ.ГГГГ в часовом поясе loc,
// данные кнопки: число дней из предустановленных или AllTimeData.
// На нераспознанный ввод отвечает "Некорректный формат команды" и не вызывает обработчик.
func ParsePeriod(loc *time.Location, now func() time.Time) telebot.MiddlewareFunc {
	if now == nil {
		now = time.Now
	}
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			var (
				p   stats.Period
				err error
			)
			if cb := c.Callback(); cb != nil {
				p, err = presetPeriod(cb.Data, now())
			} else {
				p, err = stats.ParsePeriod(c.Text(), now(), loc)
			}

			if errors.Is(err, stats.ErrInvalidFormat) {
				return c.Send(invalidFormatText)
			}
			if err != nil {
				return err
			}

			c.Set(periodKey, p)
			return next(c)
		}
	}
}

// PeriodFrom возвращает период, разобранный ParsePeriod.
func PeriodFrom(c telebot.Context) (stats.Period, bool) {
	p, ok := c.Get(periodKey).(stats.Period)
	return p, ok
}

func presetPeriod(data string, now time.Time) (stats.Period, error) {
	data = strings.TrimSpace(data)
	if data == AllTimeData {
		return stats.AllTimePeriod(), nil
	}
	n, err := strconv.Atoi(data)
	if err != nil || n < 1 {
		return stats.Period{}, stats.ErrInvalidFormat
	}
	return stats.LastDays(now, n), nil
}
