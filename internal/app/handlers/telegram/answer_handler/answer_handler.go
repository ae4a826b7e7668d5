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

package answer_handler

import (
	"context"

	"gopkg.in/telebot.v4"
)

// QuizAnswerer принимает ответы на вопросы теста.
type QuizAnswerer interface {
	Answer(ctx context.Context, chatID, userID int64, messageID int, data string) error
}

// AnswerHandler обрабатывает нажатия на кнопки ответа
type AnswerHandler struct {
	quiz QuizAnswerer
}

func NewAnswerHandler(quiz QuizAnswerer) *AnswerHandler {
	return &AnswerHandler{quiz: quiz}
}

func (h *AnswerHandler) Handle(c telebot.Context) error {
	cb := c.Callback()
	if cb == nil || c.Sender() == nil || cb.Message == nil || cb.Message.Chat == nil {
		return nil
	}
	return h.quiz.Answer(context.Background(), cb.Message.Chat.ID, c.Sender().ID, cb.Message.ID, cb.Data)
}

func (h *AnswerHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
