package stats_menu_handler

import (
	"strconv"

	"github.com/IT-Nick/garden-bot/internal/app/middleware"
	"github.com/IT-Nick/garden-bot/internal/domain/stats"
	"gopkg.in/telebot.v4"
)

// ExportUnique идентификатор кнопок выбора периода выгрузки.
const ExportUnique = "export_days"

const (
	menuText = "Выберите, за какой период отобразить статистику.\n" +
		"Или введите его в формате: <b>ДД.ММ.ГГГГ-ДД.ММ.ГГГГ</b>\n" +
		"Например: 01.01.2024-31.12.2024"
	buttonsPerRow = 4
)

// StatsMenuHandler отвечает на /stats клавиатурой с периодами выгрузки
type StatsMenuHandler struct {
	markup *telebot.ReplyMarkup
}

func NewStatsMenuHandler() *StatsMenuHandler {
	return &StatsMenuHandler{markup: Keyboard()}
}

func (h *StatsMenuHandler) Handle(c telebot.Context) error {
	return c.Send(menuText, h.markup)
}

func (h *StatsMenuHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}

// Keyboard строит клавиатуру: предустановленные периоды в днях и кнопка "За всё время".
func Keyboard() *telebot.ReplyMarkup {
	var rows [][]telebot.InlineButton
	var row []telebot.InlineButton
	for _, days := range stats.PresetDays {
		row = append(row, telebot.InlineButton{
			Unique: ExportUnique,
			Text:   daysLabel(days),
			Data:   strconv.Itoa(days),
		})
		if len(row) == buttonsPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, []telebot.InlineButton{{
		Unique: ExportUnique,
		Text:   "За всё время",
		Data:   middleware.AllTimeData,
	}})
	return &telebot.ReplyMarkup{InlineKeyboard: rows}
}

func daysLabel(n int) string {
	word := "дней"
	switch {
	case n%10 == 1 && n%100 != 11:
		word = "день"
	case n%10 >= 2 && n%10 <= 4 && (n%100 < 12 || n%100 > 14):
		word = "дня"
	}
	return strconv.Itoa(n) + " " + word
}
