package locks

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Mode определяет поведение при занятой блокировке выгрузки.
type Mode string

const (
	// ModeReject сообщить о занятости и отбросить запрос.
	ModeReject Mode = "reject"
	// ModeWait сообщить о занятости и дождаться освобождения, опрашивая флаг.
	ModeWait Mode = "wait"
)

// ParseMode разбирает режим из конфигурации.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeReject:
		return ModeReject, nil
	case ModeWait:
		return ModeWait, nil
	}
	return "", fmt.Errorf("unknown export lock mode %q", s)
}

// ExportLock единый для процесса флаг "идёт выгрузка".
// Один экземпляр создаётся при запуске и передаётся во все обработчики выгрузки.
type ExportLock struct {
	mu      sync.Mutex
	pending bool

	mode Mode
	poll time.Duration
}

// NewExportLock создаёт блокировку. poll: период опроса флага в режиме ожидания.
func NewExportLock(mode Mode, poll time.Duration) *ExportLock {
	if poll <= 0 {
		poll = time.Second
	}
	if mode == "" {
		mode = ModeReject
	}
	return &ExportLock{mode: mode, poll: poll}
}

// Mode возвращает режим блокировки.
func (l *ExportLock) Mode() Mode {
	return l.mode
}

// Pending сообщает, выполняется ли сейчас выгрузка.
func (l *ExportLock) Pending() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending
}

// TryAcquire устанавливает флаг, если он был снят.
func (l *ExportLock) TryAcquire() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.pending {
		return false
	}
	l.pending = true
	return true
}

// Release снимает флаг.
func (l *ExportLock) Release() {
	l.mu.Lock()
	l.pending = false
	l.mu.Unlock()
}

// Do выполняет fn под блокировкой. Флаг снимается после fn при любом исходе, включая панику.
//
// Если выгрузка уже идёт, вызывается onBusy. В режиме ModeReject запрос на этом заканчивается,
// в режиме ModeWait флаг опрашивается каждые poll до освобождения или отмены ctx.
func (l *ExportLock) Do(ctx context.Context, onBusy func() error, fn func() error) error {
	if !l.TryAcquire() {
		if onBusy != nil {
			if err := onBusy(); err != nil {
				return fmt.Errorf("failed to report busy exporter: %w", err)
			}
		}
		if l.mode != ModeWait {
			return nil
		}
		if err := l.wait(ctx); err != nil {
			return err
		}
	}
	defer l.Release()

	return fn()
}

func (l *ExportLock) wait(ctx context.Context) error {
	ticker := time.NewTicker(l.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if l.TryAcquire() {
				return nil
			}
		}
	}
}
