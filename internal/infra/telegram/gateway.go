// Package telegram связывает доменные сервисы с Telegram через telebot.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/IT-Nick/garden-bot/internal/domain/gateway"
	"gopkg.in/telebot.v4"
)

// Тексты ошибок Bot API, после которых сообщение считается уже удалённым.
var notFoundMarkers = []string{
	"message to delete not found",
	"message to edit not found",
	"message can't be deleted",
	"message can't be edited",
}

// Gateway реализует gateway.Messenger поверх telebot.
type Gateway struct {
	bot telebot.API
}

// NewGateway создаёт адаптер для бота.
func NewGateway(bot telebot.API) *Gateway {
	return &Gateway{bot: bot}
}

// Send отправляет текстовое сообщение и возвращает его идентификатор.
func (g *Gateway) Send(ctx context.Context, chatID int64, text string, kb gateway.Keyboard) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	msg, err := g.bot.Send(&telebot.Chat{ID: chatID}, text, Markup(kb))
	if err != nil {
		return 0, fmt.Errorf("failed to send message: %w", classify(err))
	}
	return msg.ID, nil
}

// Edit заменяет текст и клавиатуру сообщения.
func (g *Gateway) Edit(ctx context.Context, chatID int64, messageID int, text string, kb gateway.Keyboard) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := g.bot.Edit(stored(chatID, messageID), text, Markup(kb))
	if err != nil {
		if errors.Is(err, telebot.ErrSameMessageContent) {
			return nil
		}
		return fmt.Errorf("failed to edit message %d: %w", messageID, classify(err))
	}
	return nil
}

// Delete удаляет сообщение. Для уже удалённого сообщения возвращается gateway.ErrMessageNotFound.
func (g *Gateway) Delete(ctx context.Context, chatID int64, messageID int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := g.bot.Delete(stored(chatID, messageID)); err != nil {
		return fmt.Errorf("failed to delete message %d: %w", messageID, classify(err))
	}
	return nil
}

// SendPhoto отправляет картинку по file id или с диска.
func (g *Gateway) SendPhoto(ctx context.Context, chatID int64, photo gateway.Photo, caption string) (gateway.SentPhoto, error) {
	if err := ctx.Err(); err != nil {
		return gateway.SentPhoto{}, err
	}

	file := telebot.File{FileID: photo.FileID}
	if photo.FileID == "" {
		file = telebot.FromDisk(photo.Path)
	}

	msg, err := g.bot.Send(&telebot.Chat{ID: chatID}, &telebot.Photo{File: file, Caption: caption})
	if err != nil {
		return gateway.SentPhoto{}, fmt.Errorf("failed to send photo: %w", classify(err))
	}

	sent := gateway.SentPhoto{MessageID: msg.ID, FileID: photo.FileID}
	if msg.Photo != nil && msg.Photo.FileID != "" {
		sent.FileID = msg.Photo.FileID
	}
	return sent, nil
}

// Markup переводит клавиатуру в разметку telebot. Пустая клавиатура даёт nil.
func Markup(kb gateway.Keyboard) *telebot.ReplyMarkup {
	if len(kb) == 0 {
		return nil
	}
	rows := make([][]telebot.InlineButton, 0, len(kb))
	for _, row := range kb {
		buttons := make([]telebot.InlineButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, telebot.InlineButton{
				Text:   b.Text,
				Unique: b.Unique,
				Data:   b.Data,
				URL:    b.URL,
			})
		}
		rows = append(rows, buttons)
	}
	return &telebot.ReplyMarkup{InlineKeyboard: rows}
}

func stored(chatID int64, messageID int) telebot.StoredMessage {
	return telebot.StoredMessage{MessageID: strconv.Itoa(messageID), ChatID: chatID}
}

// classify оборачивает ошибки "сообщение не найдено" в gateway.ErrMessageNotFound.
func classify(err error) error {
	if err == nil {
		return nil
	}
	text := strings.ToLower(err.Error())
	for _, marker := range notFoundMarkers {
		if strings.Contains(text, marker) {
			return fmt.Errorf("%w: %w", gateway.ErrMessageNotFound, err)
		}
	}
	return err
}
