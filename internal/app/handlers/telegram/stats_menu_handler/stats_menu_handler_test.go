package stats_menu_handler

import (
	"testing"

	"github.com/IT-Nick/garden-bot/internal/app/middleware"
	"github.com/IT-Nick/garden-bot/internal/domain/stats"
)

func TestKeyboard(t *testing.T) {
	kb := Keyboard()

	var buttons int
	for _, row := range kb.InlineKeyboard {
		if len(row) > buttonsPerRow {
			t.Errorf("в строке %d кнопок", len(row))
		}
		for _, b := range row {
			if b.Unique != ExportUnique {
				t.Errorf("кнопка %q с идентификатором %q", b.Text, b.Unique)
			}
			buttons++
		}
	}
	if buttons != len(stats.PresetDays)+1 {
		t.Errorf("кнопок %d, ожидалось %d", buttons, len(stats.PresetDays)+1)
	}

	last := kb.InlineKeyboard[len(kb.InlineKeyboard)-1]
	if len(last) != 1 || last[0].Data != middleware.AllTimeData {
		t.Errorf("последняя строка %+v", last)
	}
}

func TestDaysLabel(t *testing.T) {
	tests := map[int]string{
		1:  "1 день",
		3:  "3 дня",
		5:  "5 дней",
		11: "11 дней",
		21: "21 день",
		22: "22 дня",
		90: "90 дней",
	}
	for n, want := range tests {
		if got := daysLabel(n); got != want {
			t.Errorf("daysLabel(%d) = %q, ожидалось %q", n, got, want)
		}
	}
}
