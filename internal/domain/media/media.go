// Package media отправляет картинки, загружая каждую в Telegram не более одного раза.
// Идентификатор загруженного файла хранится в кэше и переиспользуется.
package media

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/IT-Nick/garden-bot/internal/domain/gateway"
	"golang.org/x/sync/singleflight"
)

// Cache хранит идентификаторы загруженных картинок.
type Cache interface {
	PictureID(ctx context.Context, name string) (string, bool, error)
	SetPictureID(ctx context.Context, name, id string) error
}

// SendFunc отправляет картинку и возвращает результат отправки.
type SendFunc func(photo gateway.Photo) (gateway.SentPhoto, error)

// Service отправляет картинки с кэшированием file id.
type Service struct {
	cache  Cache
	group  singleflight.Group
	logger *slog.Logger
}

// NewService создаёт сервис картинок.
func NewService(cache Cache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{cache: cache, logger: logger}
}

// SendPhoto отправляет картинку name. Если её file id уже известен, файл повторно не загружается.
// Одновременные первые отправки одной картинки выполняют одну загрузку, остальные
// используют полученный идентификатор.
func (s *Service) SendPhoto(ctx context.Context, name, path string, send SendFunc) (gateway.SentPhoto, error) {
	id, ok, err := s.cache.PictureID(ctx, name)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to read picture id", slog.String("picture", name), slog.Any("error", err))
	}
	if ok && id != "" {
		return send(gateway.Photo{FileID: id})
	}

	var (
		ran  bool
		mine *gateway.SentPhoto
	)
	v, err, _ := s.group.Do(name, func() (any, error) {
		ran = true
		sent, err := send(gateway.Photo{Path: path})
		if err != nil {
			return "", err
		}
		mine = &sent
		if sent.FileID != "" {
			if err := s.cache.SetPictureID(ctx, name, sent.FileID); err != nil {
				s.logger.WarnContext(ctx, "failed to cache picture id", slog.String("picture", name), slog.Any("error", err))
			}
		}
		return sent.FileID, nil
	})
	if mine != nil {
		return *mine, nil
	}
	if err != nil {
		if ran {
			return gateway.SentPhoto{}, fmt.Errorf("failed to upload picture %s: %w", name, err)
		}
		// загрузка у другого вызова не удалась, пробуем сами
		return send(gateway.Photo{Path: path})
	}

	fileID, _ := v.(string)
	if fileID == "" {
		return send(gateway.Photo{Path: path})
	}
	return send(gateway.Photo{FileID: fileID})
}
