package middleware

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/IT-Nick/garden-bot/internal/domain/stats"
	"github.com/IT-Nick/garden-bot/internal/domain/users/service"
	"github.com/IT-Nick/garden-bot/internal/infra/cache"
	"github.com/IT-Nick/garden-bot/internal/infra/locks"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gopkg.in/telebot.v4"
)

// fakeContext реализует только те методы telebot.Context, которые нужны middleware.
type fakeContext struct {
	telebot.Context

	mu       sync.Mutex
	sender   *telebot.User
	message  *telebot.Message
	callback *telebot.Callback
	store    map[string]any
	sent     []any
	notified int
}

func newMessageContext(userID int64, text string) *fakeContext {
	chat := &telebot.Chat{ID: userID}
	return &fakeContext{
		sender:  &telebot.User{ID: userID, Username: "gardener"},
		message: &telebot.Message{ID: 1, Text: text, Chat: chat},
		store:   make(map[string]any),
	}
}

func newCallbackContext(userID int64, data string) *fakeContext {
	c := newMessageContext(userID, "")
	c.callback = &telebot.Callback{Data: data, Message: c.message}
	return c
}

func (c *fakeContext) Sender() *telebot.User       { return c.sender }
func (c *fakeContext) Message() *telebot.Message   { return c.message }
func (c *fakeContext) Callback() *telebot.Callback { return c.callback }
func (c *fakeContext) Update() telebot.Update      { return telebot.Update{ID: 7, Message: c.message} }

func (c *fakeContext) Chat() *telebot.Chat {
	if c.message == nil {
		return nil
	}
	return c.message.Chat
}

func (c *fakeContext) Text() string {
	if c.message == nil {
		return ""
	}
	return c.message.Text
}

func (c *fakeContext) Send(what interface{}, _ ...interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, what)
	return nil
}

func (c *fakeContext) Notify(telebot.ChatAction) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notified++
	return nil
}

func (c *fakeContext) Get(key string) interface{} { return c.store[key] }

func (c *fakeContext) Set(key string, val interface{}) { c.store[key] = val }

func (c *fakeContext) sentTexts() []any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]any(nil), c.sent...)
}

func countingHandler(n *int) telebot.HandlerFunc {
	return func(telebot.Context) error {
		*n++
		return nil
	}
}

func TestAdminOnly(t *testing.T) {
	var calls int
	h := AdminOnly([]int64{1, 2})(countingHandler(&calls))

	if err := h(newMessageContext(1, "/stats")); err != nil {
		t.Fatal(err)
	}
	if err := h(newMessageContext(3, "/stats")); err != nil {
		t.Fatal(err)
	}
	noSender := newMessageContext(0, "/stats")
	noSender.sender = nil
	_ = h(noSender)

	if calls != 1 {
		t.Errorf("обработчик вызван %d раз, ожидался 1", calls)
	}
}

func TestThrottle(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	var calls int
	h := Throttle(cache.NewWithClient(rdb), 3*time.Second)(countingHandler(&calls))

	for i := 0; i < 3; i++ {
		if err := h(newMessageContext(1, "7")); err != nil {
			t.Fatal(err)
		}
	}
	if calls != 1 {
		t.Errorf("в пределах ttl пропущено %d сообщений, ожидалось 1", calls)
	}

	_ = h(newCallbackContext(1, "7"))
	if calls != 2 {
		t.Error("нажатия на кнопки не должны ограничиваться")
	}

	_ = h(newMessageContext(2, "7"))
	if calls != 3 {
		t.Error("флаг одного пользователя не должен мешать другому")
	}

	mr.FastForward(3 * time.Second)
	_ = h(newMessageContext(1, "7"))
	if calls != 4 {
		t.Error("после истечения ttl сообщение должно пропускаться")
	}
}

func TestParsePeriod(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	mw := ParsePeriod(loc, func() time.Time { return now })

	tests := []struct {
		name    string
		ctx     *fakeContext
		wantRun bool
		check   func(t *testing.T, p stats.Period)
	}{
		{
			name:    "число дней",
			ctx:     newMessageContext(1, "30"),
			wantRun: true,
			check: func(t *testing.T, p stats.Period) {
				if !p.From.Equal(now.Add(-30*24*time.Hour)) || !p.To.Equal(now) {
					t.Errorf("период %v - %v", p.From, p.To)
				}
			},
		},
		{
			name:    "интервал",
			ctx:     newMessageContext(1, "01.01.2024-31.12.2024"),
			wantRun: true,
			check: func(t *testing.T, p stats.Period) {
				if !p.From.Equal(time.Date(2023, 12, 31, 21, 0, 0, 0, time.UTC)) {
					t.Errorf("начало %v", p.From)
				}
			},
		},
		{
			name:    "кнопка за всё время",
			ctx:     newCallbackContext(1, AllTimeData),
			wantRun: true,
			check: func(t *testing.T, p stats.Period) {
				if !p.AllTime {
					t.Error("ожидался период за всё время")
				}
			},
		},
		{
			name:    "кнопка с днями",
			ctx:     newCallbackContext(1, "7"),
			wantRun: true,
			check: func(t *testing.T, p stats.Period) {
				if !p.From.Equal(now.Add(-7 * 24 * time.Hour)) {
					t.Errorf("начало %v", p.From)
				}
			},
		},
		{name: "ноль дней", ctx: newMessageContext(1, "0")},
		{name: "перевёрнутый интервал", ctx: newMessageContext(1, "31.12.2024-01.01.2024")},
		{name: "произвольный текст", ctx: newMessageContext(1, "привет")},
		{name: "испорченная кнопка", ctx: newCallbackContext(1, "week")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *stats.Period
			h := mw(func(c telebot.Context) error {
				p, ok := PeriodFrom(c)
				if !ok {
					t.Fatal("период не сохранён в контексте")
				}
				got = &p
				return nil
			})

			if err := h(tt.ctx); err != nil {
				t.Fatalf("middleware вернул ошибку: %v", err)
			}

			if !tt.wantRun {
				if got != nil {
					t.Error("обработчик не должен вызываться")
				}
				sent := tt.ctx.sentTexts()
				if len(sent) != 1 || sent[0] != invalidFormatText {
					t.Errorf("ответ %v, ожидалось %q", sent, invalidFormatText)
				}
				return
			}
			if got == nil {
				t.Fatal("обработчик не вызван")
			}
			tt.check(t, *got)
		})
	}
}

func TestSingleFlight_RejectsWhileBusy(t *testing.T) {
	lock := locks.NewExportLock(locks.ModeReject, time.Millisecond)
	mw := SingleFlight(lock)

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	first := mw(func(telebot.Context) error {
		close(started)
		<-release
		return nil
	})
	go func() { done <- first(newMessageContext(1, "7")) }()
	<-started

	var calls int
	busy := newMessageContext(2, "30")
	if err := mw(countingHandler(&calls))(busy); err != nil {
		t.Fatal(err)
	}
	if calls != 0 {
		t.Error("вторая выгрузка не должна выполняться")
	}
	if sent := busy.sentTexts(); len(sent) != 1 || sent[0] != busyText {
		t.Errorf("ответ %v", sent)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatal(err)
	}

	if err := mw(countingHandler(&calls))(newMessageContext(2, "30")); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Error("после освобождения выгрузка должна выполняться")
	}
}

func TestSingleFlight_ReleasesAfterError(t *testing.T) {
	lock := locks.NewExportLock(locks.ModeReject, time.Millisecond)
	wantErr := errors.New("export failed")

	err := SingleFlight(lock)(func(telebot.Context) error { return wantErr })(newMessageContext(1, "7"))
	if !errors.Is(err, wantErr) {
		t.Errorf("ожидалась ошибка обработчика, получено %v", err)
	}
	if lock.Pending() {
		t.Error("блокировка должна сниматься после ошибки")
	}
}

func TestChatAction(t *testing.T) {
	c := newMessageContext(1, "7")
	h := ChatAction(telebot.UploadingDocument, 5*time.Millisecond, nil)(func(telebot.Context) error {
		time.Sleep(30 * time.Millisecond)
		return nil
	})
	if err := h(c); err != nil {
		t.Fatal(err)
	}

	c.mu.Lock()
	n := c.notified
	c.mu.Unlock()
	if n < 2 {
		t.Errorf("статус отправлен %d раз, ожидалось не меньше 2", n)
	}

	time.Sleep(20 * time.Millisecond)
	c.mu.Lock()
	after := c.notified
	c.mu.Unlock()
	if after != n {
		t.Error("после завершения обработчика статус не должен отправляться")
	}
}

func TestRecover(t *testing.T) {
	h := Recover(nil)(func(telebot.Context) error { panic("boom") })
	err := h(newMessageContext(1, "/start"))
	if err == nil || err.Error() != "boom" {
		t.Errorf("ожидалась ошибка boom, получено %v", err)
	}

	wantErr := errors.New("typed")
	h = Recover(nil)(func(telebot.Context) error { panic(wantErr) })
	if err := h(newMessageContext(1, "/start")); !errors.Is(err, wantErr) {
		t.Errorf("ожидалась исходная ошибка, получено %v", err)
	}
}

type fakeTracker struct {
	profiles []service.Profile
	err      error
}

func (f *fakeTracker) Track(_ context.Context, p service.Profile) error {
	f.profiles = append(f.profiles, p)
	return f.err
}

func TestTrackUser(t *testing.T) {
	tracker := &fakeTracker{}
	var calls int
	h := TrackUser(tracker)(countingHandler(&calls))

	if err := h(newMessageContext(42, "/start")); err != nil {
		t.Fatal(err)
	}
	if len(tracker.profiles) != 1 || tracker.profiles[0].TelegramID != 42 || tracker.profiles[0].UserName != "gardener" {
		t.Errorf("переданы профили %+v", tracker.profiles)
	}
	if calls != 1 {
		t.Error("обработчик должен вызываться после регистрации")
	}

	tracker.err = errors.New("redis down")
	if err := h(newMessageContext(42, "/start")); !errors.Is(err, tracker.err) {
		t.Errorf("ожидалась ошибка регистрации, получено %v", err)
	}
	if calls != 1 {
		t.Error("при ошибке регистрации обработчик не вызывается")
	}
}
