package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/IT-Nick/garden-bot/internal/domain/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository реализация хранилища пользователей и их действий в PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository создает новый экземпляр UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUserIfNotExists создает пользователя. Повторное создание с тем же telegram_id ничего не меняет.
func (r *UserRepository) CreateUserIfNotExists(ctx context.Context, telegramID int64, userName, firstName, lastName *string) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO users (telegram_id, user_name, first_name, last_name)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (telegram_id) DO NOTHING`,
		telegramID, userName, firstName, lastName)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// RecordAction добавляет действие пользователю с указанным telegram_id.
// Для неизвестного пользователя ничего не записывается.
func (r *UserRepository) RecordAction(ctx context.Context, telegramID int64, action model.ActionType) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO actions (user_id, type)
        SELECT id, $2 FROM users WHERE telegram_id = $1`,
		telegramID, int(action))
	if err != nil {
		return fmt.Errorf("failed to record action: %w", err)
	}
	return nil
}

// UpdateUserName обновляет username пользователя
func (r *UserRepository) UpdateUserName(ctx context.Context, telegramID int64, userName *string) error {
	_, err := r.db.Exec(ctx, "UPDATE users SET user_name=$1 WHERE telegram_id=$2", userName, telegramID)
	if err != nil {
		return fmt.Errorf("failed to update user name: %w", err)
	}
	return nil
}

const allTimeStatsQuery = `
    SELECT u.id, u.telegram_id, u.user_name, u.first_name, u.last_name, u.joined_at,
           COUNT(a.id) AS completed
    FROM users u
    LEFT JOIN actions a ON a.user_id = u.id AND a.type = $1
    GROUP BY u.id
    ORDER BY u.id`

// Пользователь попадает в выборку, если присоединился в интервале или совершил в нём действие.
// Считаются только действия из интервала.
const rangeStatsQuery = `
    SELECT u.id, u.telegram_id, u.user_name, u.first_name, u.last_name, u.joined_at,
           COUNT(a.id) AS completed
    FROM users u
    LEFT JOIN actions a ON a.user_id = u.id AND a.type = $1
        AND a.created_at BETWEEN $2 AND $3
    WHERE u.joined_at BETWEEN $2 AND $3
       OR EXISTS (
           SELECT 1 FROM actions x
           WHERE x.user_id = u.id AND x.type = $1
             AND x.created_at BETWEEN $2 AND $3
       )
    GROUP BY u.id
    ORDER BY u.id`

// UsersWithActionCounts возвращает пользователей с числом пройденных тестов.
// Если from и to не заданы, выборка строится за всё время.
func (r *UserRepository) UsersWithActionCounts(ctx context.Context, from, to *time.Time) ([]model.StatsRow, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if from == nil || to == nil {
		rows, err = r.db.Query(ctx, allTimeStatsQuery, int(model.ActionQuizCompleted))
	} else {
		rows, err = r.db.Query(ctx, rangeStatsQuery, int(model.ActionQuizCompleted), from.UTC(), to.UTC())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query users stats: %w", err)
	}
	defer rows.Close()

	var result []model.StatsRow
	for rows.Next() {
		var row model.StatsRow
		if err := rows.Scan(
			&row.ID, &row.TelegramID, &row.UserName, &row.FirstName, &row.LastName, &row.JoinedAt, &row.Completed,
		); err != nil {
			return nil, fmt.Errorf("failed to scan users stats row: %w", err)
		}
		row.JoinedAt = row.JoinedAt.UTC()
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users stats: %w", err)
	}

	return result, nil
}
