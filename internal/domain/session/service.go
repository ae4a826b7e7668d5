package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/IT-Nick/garden-bot/internal/domain/gateway"
	"github.com/IT-Nick/garden-bot/internal/domain/media"
	"github.com/IT-Nick/garden-bot/internal/domain/model"
	"github.com/IT-Nick/garden-bot/internal/domain/quiz"
	"github.com/IT-Nick/garden-bot/internal/infra/locks"
)

// AnswerUnique идентификатор кнопок ответа на вопрос.
const AnswerUnique = "answer"

const (
	fallbackText       = "Ой! Что-то пошло не так! Начните заново /start"
	defaultPromoButton = "Подробнее"
)

// ActionRecorder записывает действия пользователя.
type ActionRecorder interface {
	RecordAction(ctx context.Context, telegramID int64, action model.ActionType) error
}

// PhotoSender отправляет картинки с кэшированием загруженных файлов.
type PhotoSender interface {
	SendPhoto(ctx context.Context, name, path string, send media.SendFunc) (gateway.SentPhoto, error)
}

// Options настройки диалога.
type Options struct {
	// ImagesDir каталог с картинками результатов.
	ImagesDir string
	// PromoURL ссылка в сообщении после результата. Пустая ссылка отключает сообщение.
	PromoURL    string
	PromoButton string
	// DeleteDelay пауза после каждого удаления сообщения.
	DeleteDelay time.Duration
}

// Service ведёт диалог с пользователем.
type Service struct {
	store   Store
	msg     gateway.Messenger
	photos  PhotoSender
	actions ActionRecorder
	locks   *locks.Keyed
	pick    quiz.Picker
	opts    Options
	logger  *slog.Logger
}

// NewService создаёт сервис диалога. pick выбирает победителя среди категорий с равным счётом.
func NewService(
	store Store,
	msg gateway.Messenger,
	photos PhotoSender,
	actions ActionRecorder,
	userLocks *locks.Keyed,
	pick quiz.Picker,
	opts Options,
	logger *slog.Logger,
) *Service {
	if userLocks == nil {
		userLocks = locks.NewKeyed()
	}
	if pick == nil {
		pick = quiz.DefaultPicker
	}
	if opts.PromoButton == "" {
		opts.PromoButton = defaultPromoButton
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:   store,
		msg:     msg,
		photos:  photos,
		actions: actions,
		locks:   userLocks,
		pick:    pick,
		opts:    opts,
		logger:  logger,
	}
}

// Start начинает тест заново: удаляет прежние сообщения бота, обнуляет счёт и отправляет первый вопрос.
func (s *Service) Start(ctx context.Context, chatID, userID int64) error {
	unlock := s.locks.Lock(userID)
	defer unlock()

	sess, err := s.store.Get(ctx, userID)
	if err != nil {
		return err
	}

	state, err := Transition(ctx, sess.State, EventStart)
	if err != nil {
		return err
	}

	if err := s.deleteMessages(ctx, chatID, sess.LastMessageIDs); err != nil {
		return err
	}

	msgID, err := s.msg.Send(ctx, chatID, quiz.RenderQuestion(0), answerKeyboard(0))
	if err != nil {
		return fmt.Errorf("failed to send first question: %w", err)
	}

	return s.store.Save(ctx, userID, Session{
		State:          state,
		QuestionIndex:  0,
		Scores:         quiz.NewScores(),
		LastMessageIDs: []int{msgID},
	})
}

// Answer принимает ответ на текущий вопрос. messageID: сообщение, на кнопку которого нажал пользователь.
// Ответ вне теста, на чужое сообщение или с неизвестной категорией обрабатывается как Fallback.
func (s *Service) Answer(ctx context.Context, chatID, userID int64, messageID int, data string) error {
	unlock := s.locks.Lock(userID)
	defer unlock()

	sess, err := s.store.Get(ctx, userID)
	if err != nil {
		return err
	}

	if sess.State != StateInProgress || (messageID != 0 && !sess.Tracks(messageID)) {
		return s.fallback(ctx, chatID, messageID)
	}

	category, err := quiz.ParseCategory(data)
	if err != nil || !quiz.QuestionAt(sess.QuestionIndex).Has(category) {
		return s.fallback(ctx, chatID, messageID)
	}
	if err := quiz.Accumulate(sess.Scores, category); err != nil {
		return s.fallback(ctx, chatID, messageID)
	}

	next := sess.QuestionIndex + 1
	if next >= quiz.Length {
		return s.finish(ctx, chatID, userID, sess)
	}

	if sess.State, err = Transition(ctx, sess.State, EventAnswer); err != nil {
		return err
	}

	target := messageID
	if n := len(sess.LastMessageIDs); n > 0 {
		target = sess.LastMessageIDs[n-1]
	}

	err = s.msg.Edit(ctx, chatID, target, quiz.RenderQuestion(next), answerKeyboard(next))
	switch {
	case errors.Is(err, gateway.ErrMessageNotFound):
		id, err := s.msg.Send(ctx, chatID, quiz.RenderQuestion(next), answerKeyboard(next))
		if err != nil {
			return fmt.Errorf("failed to send question %d: %w", next+1, err)
		}
		sess.LastMessageIDs = []int{id}
	case err != nil:
		return fmt.Errorf("failed to edit question %d: %w", next+1, err)
	}

	sess.QuestionIndex = next
	return s.store.Save(ctx, userID, sess)
}

// Fallback удаляет сообщение, на которое пришло неожиданное событие, и предлагает начать заново.
func (s *Service) Fallback(ctx context.Context, chatID, userID int64, messageID int) error {
	unlock := s.locks.Lock(userID)
	defer unlock()

	return s.fallback(ctx, chatID, messageID)
}

func (s *Service) fallback(ctx context.Context, chatID int64, messageID int) error {
	if messageID != 0 {
		if err := s.deleteMessages(ctx, chatID, []int{messageID}); err != nil {
			return err
		}
	}
	if _, err := s.msg.Send(ctx, chatID, fallbackText, nil); err != nil {
		return fmt.Errorf("failed to send fallback message: %w", err)
	}
	return nil
}

func (s *Service) finish(ctx context.Context, chatID, userID int64, sess Session) error {
	state, err := Transition(ctx, sess.State, EventFinish)
	if err != nil {
		return err
	}

	result := quiz.Classify(sess.Scores, s.pick)
	psychotype, ok := quiz.Describe(result.Winner)
	if !ok {
		return fmt.Errorf("no description for category %s", result.Winner)
	}

	if err := s.deleteMessages(ctx, chatID, sess.LastMessageIDs); err != nil {
		return err
	}

	caption := quiz.RenderResult(result)
	path := filepath.Join(s.opts.ImagesDir, psychotype.Image)
	sent, err := s.photos.SendPhoto(ctx, string(result.Winner), path, func(photo gateway.Photo) (gateway.SentPhoto, error) {
		return s.msg.SendPhoto(ctx, chatID, photo, caption)
	})
	if err != nil {
		return fmt.Errorf("failed to send result: %w", err)
	}
	ids := []int{sent.MessageID}

	if s.opts.PromoURL != "" {
		kb := gateway.Column(gateway.Button{Text: s.opts.PromoButton, URL: s.opts.PromoURL})
		id, err := s.msg.Send(ctx, chatID, quiz.RenderGarden(result.Winner), kb)
		if err != nil {
			return fmt.Errorf("failed to send promo message: %w", err)
		}
		ids = append(ids, id)
	}

	if err := s.store.Save(ctx, userID, Session{
		State:          state,
		Scores:         sess.Scores,
		LastMessageIDs: ids,
	}); err != nil {
		return err
	}

	// Ошибка записи не отменяет выданный результат.
	if err := s.actions.RecordAction(ctx, userID, model.ActionQuizCompleted); err != nil {
		s.logger.ErrorContext(ctx, "failed to record quiz completion",
			slog.Int64("user_id", userID),
			slog.Any("error", err),
		)
	}

	s.logger.InfoContext(ctx, "quiz completed",
		slog.Int64("user_id", userID),
		slog.String("category", string(result.Winner)),
	)
	return nil
}

// deleteMessages удаляет сообщения по порядку. Уже удалённые сообщения пропускаются.
func (s *Service) deleteMessages(ctx context.Context, chatID int64, ids []int) error {
	for _, id := range ids {
		if err := s.msg.Delete(ctx, chatID, id); err != nil && !errors.Is(err, gateway.ErrMessageNotFound) {
			return fmt.Errorf("failed to delete message %d: %w", id, err)
		}
		time.Sleep(s.opts.DeleteDelay)
	}
	return nil
}

func answerKeyboard(i int) gateway.Keyboard {
	q := quiz.QuestionAt(i)
	row := make([]gateway.Button, 0, len(q.Options))
	for n, opt := range q.Options {
		row = append(row, gateway.Button{
			Text:   quiz.OptionLabel(n + 1),
			Unique: AnswerUnique,
			Data:   string(opt.Category),
		})
	}
	return gateway.Keyboard{row}
}
