package session

import (
	"context"
	"encoding/json"
	"fmt"
)

const sessionField = "session"

// Store хранит сессии пользователей.
type Store interface {
	Get(ctx context.Context, userID int64) (Session, error)
	Save(ctx context.Context, userID int64, s Session) error
}

// FieldStore хэш данных пользователя в кэше.
type FieldStore interface {
	UserField(ctx context.Context, telegramID int64, field string) (string, bool, error)
	SetUserField(ctx context.Context, telegramID int64, field, value string) error
}

// CacheStore хранит сессию JSON-строкой в хэше данных пользователя.
type CacheStore struct {
	fields FieldStore
}

// NewCacheStore создаёт хранилище сессий поверх кэша.
func NewCacheStore(fields FieldStore) *CacheStore {
	return &CacheStore{fields: fields}
}

// Get возвращает сессию пользователя. Для нового пользователя возвращается пустая сессия.
func (s *CacheStore) Get(ctx context.Context, userID int64) (Session, error) {
	raw, ok, err := s.fields.UserField(ctx, userID, sessionField)
	if err != nil {
		return Session{}, fmt.Errorf("failed to load session: %w", err)
	}
	if !ok || raw == "" {
		return New(), nil
	}

	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return Session{}, fmt.Errorf("failed to decode session: %w", err)
	}
	sess.normalize()
	return sess, nil
}

// Save сохраняет сессию пользователя.
func (s *CacheStore) Save(ctx context.Context, userID int64, sess Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.fields.SetUserField(ctx, userID, sessionField, string(raw)); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
