package model

import "time"

// ActionType тип действия пользователя.
type ActionType int

const (
	// ActionQuizCompleted пользователь прошёл тест до конца.
	ActionQuizCompleted ActionType = 1
)

// Action запись журнала действий. Записи только добавляются.
type Action struct {
	ID        int        `json:"id"`
	UserID    int        `json:"user_id"`
	Type      ActionType `json:"type"`
	CreatedAt time.Time  `json:"created_at"`
}
