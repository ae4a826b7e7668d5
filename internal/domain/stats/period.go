// Package stats строит выгрузку статистики по пользователям за период в виде Excel-файла.
package stats

import (
	"errors"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

// ErrInvalidFormat текст команды не похож ни на число дней, ни на интервал дат.
var ErrInvalidFormat = errors.New("invalid period format")

// DateLayout формат даты в интервале ДД.ММ.ГГГГ-ДД.ММ.ГГГГ.
const DateLayout = "2.1.2006"

// PresetDays варианты периода на клавиатуре выгрузки.
var PresetDays = []int{1, 3, 5, 7, 10, 15, 30, 90}

// Period интервал выгрузки в UTC. AllTime означает выгрузку без ограничения по датам.
type Period struct {
	From    time.Time
	To      time.Time
	AllTime bool
}

// AllTimePeriod возвращает период "за всё время".
func AllTimePeriod() Period {
	return Period{AllTime: true}
}

// Bounds возвращает границы для запроса. Для выгрузки за всё время границ нет.
func (p Period) Bounds() (from, to *time.Time) {
	if p.AllTime {
		return nil, nil
	}
	f, t := p.From, p.To
	return &f, &t
}

// Contains сообщает, попадает ли момент в период. Границы включаются.
func (p Period) Contains(t time.Time) bool {
	if p.AllTime {
		return true
	}
	return !t.Before(p.From) && !t.After(p.To)
}

// LastDays возвращает период из n последних суток до now.
func LastDays(now time.Time, n int) Period {
	to := now.UTC()
	return Period{From: to.Add(-time.Duration(n) * 24 * time.Hour), To: to}
}

// ParseDays разбирает положительное целое число дней.
func ParseDays(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, ErrInvalidFormat
	}
	return n, nil
}

// ParseInterval разбирает интервал ДД.ММ.ГГГГ-ДД.ММ.ГГГГ в часовом поясе loc.
// Начало интервала приводится к 00:00:00, конец к 23:59:59.999999. Границы возвращаются в UTC.
func ParseInterval(s string, loc *time.Location) (Period, error) {
	if loc == nil {
		loc = time.UTC
	}

	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return Period{}, ErrInvalidFormat
	}

	from, err := time.ParseInLocation(DateLayout, strings.TrimSpace(parts[0]), loc)
	if err != nil {
		return Period{}, ErrInvalidFormat
	}
	to, err := time.ParseInLocation(DateLayout, strings.TrimSpace(parts[1]), loc)
	if err != nil {
		return Period{}, ErrInvalidFormat
	}
	if from.After(to) {
		return Period{}, ErrInvalidFormat
	}

	to = time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 999999000, loc)
	return Period{From: from.UTC(), To: to.UTC()}, nil
}

// ParsePeriod разбирает текст команды: число дней или интервал дат.
func ParsePeriod(s string, now time.Time, loc *time.Location) (Period, error) {
	if n, err := ParseDays(s); err == nil {
		return LastDays(now, n), nil
	}
	return ParseInterval(strings.TrimSpace(s), loc)
}
