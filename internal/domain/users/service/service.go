package service

import (
	"context"
	"fmt"

	"github.com/IT-Nick/garden-bot/internal/domain/model"
)

// Profile данные пользователя из входящего события Telegram.
type Profile struct {
	TelegramID int64
	UserName   string
	FirstName  string
	LastName   string
}

// Repository хранилище пользователей.
type Repository interface {
	CreateUserIfNotExists(ctx context.Context, telegramID int64, userName, firstName, lastName *string) error
	UpdateUserName(ctx context.Context, telegramID int64, userName *string) error
	RecordAction(ctx context.Context, telegramID int64, action model.ActionType) error
}

// Cache кэш известных пользователей и их username.
type Cache interface {
	UserKnown(ctx context.Context, telegramID int64) (bool, error)
	SetUsername(ctx context.Context, telegramID int64, username string) error
	UpdateUsernameIfChanged(ctx context.Context, telegramID int64, username string) (bool, error)
}

// UserService содержит логику бизнес-операций для пользователей
type UserService struct {
	userRepo Repository
	cache    Cache
}

// NewUserService создает новый экземпляр UserService
func NewUserService(userRepo Repository, cache Cache) *UserService {
	return &UserService{userRepo: userRepo, cache: cache}
}

// Track регистрирует пользователя при первом обращении и обновляет username, если он изменился.
func (s *UserService) Track(ctx context.Context, p Profile) error {
	known, err := s.cache.UserKnown(ctx, p.TelegramID)
	if err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}

	if !known {
		if err := s.cache.SetUsername(ctx, p.TelegramID, p.UserName); err != nil {
			return fmt.Errorf("failed to cache username: %w", err)
		}
		if err := s.userRepo.CreateUserIfNotExists(ctx, p.TelegramID,
			optional(p.UserName), optional(p.FirstName), optional(p.LastName)); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	}

	changed, err := s.cache.UpdateUsernameIfChanged(ctx, p.TelegramID, p.UserName)
	if err != nil {
		return fmt.Errorf("failed to reconcile username: %w", err)
	}
	if changed {
		if err := s.userRepo.UpdateUserName(ctx, p.TelegramID, optional(p.UserName)); err != nil {
			return fmt.Errorf("failed to update username: %w", err)
		}
	}
	return nil
}

// RecordAction записывает действие пользователя
func (s *UserService) RecordAction(ctx context.Context, telegramID int64, action model.ActionType) error {
	if err := s.userRepo.RecordAction(ctx, telegramID, action); err != nil {
		return fmt.Errorf("failed to record action: %w", err)
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
