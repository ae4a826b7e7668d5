package stats

import (
	"errors"
	"testing"
	"time"
)

func moscow(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		t.Fatalf("не удалось загрузить часовой пояс: %v", err)
	}
	return loc
}

func TestParseDays(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"30", 30, false},
		{" 7 ", 7, false},
		{"1", 1, false},
		{"0", 0, true},
		{"-5", 0, true},
		{"abc", 0, true},
		{"3.5", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseDays(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseDays(%q) = %d, %v", tt.in, got, err)
		}
		if err != nil && !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("ParseDays(%q): ожидалась ErrInvalidFormat, получено %v", tt.in, err)
		}
	}
}

func TestLastDays(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	p := LastDays(now, 3)
	if !p.To.Equal(now) || !p.From.Equal(time.Date(2024, 3, 7, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("LastDays = %v - %v", p.From, p.To)
	}
	if p.AllTime {
		t.Error("период по дням не может быть за всё время")
	}
}

func TestParseInterval(t *testing.T) {
	loc := moscow(t)

	p, err := ParseInterval("01.01.2024-31.12.2024", loc)
	if err != nil {
		t.Fatalf("ParseInterval: %v", err)
	}
	wantFrom := time.Date(2023, 12, 31, 21, 0, 0, 0, time.UTC)
	wantTo := time.Date(2024, 12, 31, 20, 59, 59, 999999000, time.UTC)
	if !p.From.Equal(wantFrom) || !p.To.Equal(wantTo) {
		t.Errorf("получено %v - %v, ожидалось %v - %v", p.From, p.To, wantFrom, wantTo)
	}
	if p.From.Location() != time.UTC || p.To.Location() != time.UTC {
		t.Error("границы должны быть в UTC")
	}

	same, err := ParseInterval("5.2.2024 - 5.2.2024", loc)
	if err != nil {
		t.Fatalf("один день: %v", err)
	}
	if got := same.To.Sub(same.From); got != 24*time.Hour-time.Microsecond {
		t.Errorf("однодневный интервал длится %v", got)
	}
}

func TestParseInterval_Invalid(t *testing.T) {
	loc := moscow(t)
	for _, in := range []string{
		"31.12.2024-01.01.2024",
		"01.01.2024",
		"01.01.2024-02.01.2024-03.01.2024",
		"32.01.2024-01.02.2024",
		"2024-01-01",
		"привет",
	} {
		if _, err := ParseInterval(in, loc); !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("ParseInterval(%q): ожидалась ErrInvalidFormat, получено %v", in, err)
		}
	}
}

func TestParsePeriod(t *testing.T) {
	loc := moscow(t)
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	p, err := ParsePeriod("10", now, loc)
	if err != nil || !p.From.Equal(now.Add(-240*time.Hour)) {
		t.Errorf("ParsePeriod(10) = %+v, %v", p, err)
	}
	if _, err := ParsePeriod("01.05.2024-31.05.2024", now, loc); err != nil {
		t.Errorf("интервал: %v", err)
	}
	if _, err := ParsePeriod("неделя", now, loc); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("ожидалась ErrInvalidFormat, получено %v", err)
	}
}

func TestPeriodContains(t *testing.T) {
	p := Period{
		From: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	if !p.Contains(p.From) || !p.Contains(p.To) {
		t.Error("границы должны входить в период")
	}
	if p.Contains(p.To.Add(time.Nanosecond)) {
		t.Error("момент после периода не должен входить в него")
	}
	if !AllTimePeriod().Contains(time.Time{}) {
		t.Error("период за всё время содержит любой момент")
	}
}
