// Package gateway описывает то, что доменным сервисам нужно от мессенджера,
// не привязываясь к конкретной библиотеке Telegram.
package gateway

import (
	"context"
	"errors"
)

// ErrMessageNotFound сообщение уже удалено или недоступно для изменения.
var ErrMessageNotFound = errors.New("message not found")

// Button кнопка inline-клавиатуры. Заполняется либо Unique/Data, либо URL.
type Button struct {
	Text   string
	Unique string
	Data   string
	URL    string
}

// Keyboard строки inline-клавиатуры.
type Keyboard [][]Button

// Column раскладывает кнопки по одной в строке.
func Column(buttons ...Button) Keyboard {
	kb := make(Keyboard, 0, len(buttons))
	for _, b := range buttons {
		kb = append(kb, []Button{b})
	}
	return kb
}

// Photo картинка для отправки: либо уже загруженный FileID, либо локальный путь.
type Photo struct {
	FileID string
	Path   string
}

// SentPhoto результат отправки картинки.
type SentPhoto struct {
	MessageID int
	FileID    string
}

// Messenger операции с сообщениями в чате.
type Messenger interface {
	Send(ctx context.Context, chatID int64, text string, kb Keyboard) (int, error)
	Edit(ctx context.Context, chatID int64, messageID int, text string, kb Keyboard) error
	Delete(ctx context.Context, chatID int64, messageID int) error
	SendPhoto(ctx context.Context, chatID int64, photo Photo, caption string) (SentPhoto, error)
}
