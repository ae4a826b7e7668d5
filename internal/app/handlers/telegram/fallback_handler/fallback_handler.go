/*
MIT License

Copyright (c) 2025 Первый Бит

Данная лицензия разрешает использование, копирование, изменение, слияние, публикацию, распространение,
лицензирование и/или продажу копий программного обеспечения при соблюдении следующих условий:

В вышеуказанном уведомлении об авторских правах и данном уведомлении о разрешении должны быть включены все копии
или значимые части программного обеспечения.

ПРОГРАММНОЕ ОБЕСПЕЧЕНИЕ ПРЕДОСТАВЛЯЕТСЯ "КАК ЕСТЬ", БЕЗ ГАРАНТИЙ ЛЮБОГО РОДА, ЯВНЫХ ИЛИ ПОДРАЗУМЕВАЕМЫХ,
ВКЛЮЧАЯ, НО НЕ ОГРАНИЧИВАЯСЬ, ГАРАНТИЯМИ КОММЕРЧЕСКОЙ ПРИГОДНОСТИ, СООТВЕТСТВИЯ ДЛЯ ОПРЕДЕЛЕННОЙ ЦЕЛИ И
НЕНАРУШЕНИЯ ПРАВ. НИ В КОЕМ СЛУЧАЕ АВТОРЫ ИЛИ ПРАВООБЛАДАТЕЛИ НЕ НЕСУТ ОТВЕТСТВЕННОСТИ ПО ИСКАМ,
УСЛОВИЯМ, ДАМГЕ или другим обязательствам, возникающим из, или в связи с использованием, или иным образом
связанным с данным программным обеспечением.
*/

package fallback_handler

import (
	"context"

	"gopkg.in/telebot.v4"
)

// Fallbacker реагирует на неожиданные события.
type Fallbacker interface {
	Fallback(ctx context.Context, chatID, userID int64, messageID int) error
}

// FallbackHandler обрабатывает нажатия на кнопки, для которых нет своего обработчика:
// удаляет сообщение и предлагает начать заново.
type FallbackHandler struct {
	quiz Fallbacker
}

func NewFallbackHandler(quiz Fallbacker) *FallbackHandler {
	return &FallbackHandler{quiz: quiz}
}

func (h *FallbackHandler) Handle(c telebot.Context) error {
	if c.Sender() == nil || c.Chat() == nil {
		return nil
	}
	var messageID int
	if cb := c.Callback(); cb != nil && cb.Message != nil {
		messageID = cb.Message.ID
	}
	return h.quiz.Fallback(context.Background(), c.Chat().ID, c.Sender().ID, messageID)
}

func (h *FallbackHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
