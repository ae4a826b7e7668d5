package admin_menu_handler

import "gopkg.in/telebot.v4"

const menuText = "<b><i>/stats</i></b> - Открыть меню выгрузки статистики (за предопределённое количество дней или за всё время).\n\n" +
	"<b><i>Интервал в формате ДД.ММ.ГГГГ-ДД.ММ.ГГГГ</i></b> - Выгрузить данные за определённый интервал дат. " +
	"Пример команды: <code>01.01.2024-31.12.2024</code>\n\n" +
	"<b><i>Любое целое число N</i></b> - Выгрузить статистику за последние N дней. Пример команды: <code>30</code>"

// AdminMenuHandler отвечает на /menu списком команд администратора
type AdminMenuHandler struct{}

func NewAdminMenuHandler() *AdminMenuHandler {
	return &AdminMenuHandler{}
}

func (h *AdminMenuHandler) Handle(c telebot.Context) error {
	return c.Send(menuText)
}

func (h *AdminMenuHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
