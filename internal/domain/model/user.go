package model

import "time"

// User пользователь бота. Строковые поля Telegram необязательны.
type User struct {
	ID         int       `json:"id"`
	TelegramID int64     `json:"telegram_id"`
	UserName   *string   `json:"user_name,omitempty"`
	FirstName  *string   `json:"first_name,omitempty"`
	LastName   *string   `json:"last_name,omitempty"`
	JoinedAt   time.Time `json:"joined_at"`
}

// StatsRow строка выгрузки: пользователь и число прохождений теста за период.
type StatsRow struct {
	User
	Completed int `json:"completed"`
}
