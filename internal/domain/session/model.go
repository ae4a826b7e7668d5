// Package session ведёт диалог пользователя с ботом: запуск теста, ответы на вопросы и выдачу результата.
// Состояние диалога хранится во внешнем кэше и переживает перезапуск бота.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/IT-Nick/garden-bot/internal/domain/quiz"
	"github.com/looplab/fsm"
)

// State этап диалога.
type State string

const (
	StateIdle       State = "idle"
	StateInProgress State = "quiz_in_progress"
	StateFinished   State = "finished"
)

// События диалога.
const (
	EventStart  = "start"
	EventAnswer = "answer"
	EventFinish = "finish"
)

// Session состояние диалога одного пользователя.
// LastMessageIDs отправленные ботом сообщения, которые удаляются при следующем запуске теста.
type Session struct {
	State          State                 `json:"state"`
	QuestionIndex  int                   `json:"question_index"`
	Scores         map[quiz.Category]int `json:"scores"`
	LastMessageIDs []int                 `json:"last_message_ids,omitempty"`
}

// New возвращает пустую сессию.
func New() Session {
	return Session{State: StateIdle, Scores: quiz.NewScores()}
}

// Tracks сообщает, отслеживается ли сообщение сессией.
func (s Session) Tracks(messageID int) bool {
	for _, id := range s.LastMessageIDs {
		if id == messageID {
			return true
		}
	}
	return false
}

// normalize восстанавливает поля, которых могло не быть в сохранённых данных.
func (s *Session) normalize() {
	if s.State == "" {
		s.State = StateIdle
	}
	if s.Scores == nil {
		s.Scores = quiz.NewScores()
	}
	for _, c := range quiz.Categories {
		if _, ok := s.Scores[c]; !ok {
			s.Scores[c] = 0
		}
	}
	if s.QuestionIndex < 0 || s.QuestionIndex >= quiz.Length {
		s.QuestionIndex = 0
	}
}

func newMachine(current State) *fsm.FSM {
	all := []string{string(StateIdle), string(StateInProgress), string(StateFinished)}
	return fsm.NewFSM(
		string(current),
		fsm.Events{
			{Name: EventStart, Src: all, Dst: string(StateInProgress)},
			{Name: EventAnswer, Src: []string{string(StateInProgress)}, Dst: string(StateInProgress)},
			{Name: EventFinish, Src: []string{string(StateInProgress)}, Dst: string(StateFinished)},
		},
		fsm.Callbacks{},
	)
}

// Transition возвращает состояние после события или ошибку, если событие в текущем состоянии недопустимо.
func Transition(ctx context.Context, current State, event string) (State, error) {
	m := newMachine(current)
	if err := m.Event(ctx, event); err != nil {
		var noTransition fsm.NoTransitionError
		if !errors.As(err, &noTransition) {
			return current, fmt.Errorf("event %s in state %s: %w", event, current, err)
		}
	}
	return State(m.Current()), nil
}
