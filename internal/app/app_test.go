package app

import (
	"sync"
	"testing"
	"time"

	"github.com/IT-Nick/garden-bot/internal/domain/stats"
	"github.com/IT-Nick/garden-bot/internal/infra/cache"
	"github.com/IT-Nick/garden-bot/internal/infra/locks"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gopkg.in/telebot.v4"
)

type fakeContext struct {
	telebot.Context

	mu       sync.Mutex
	sender   *telebot.User
	message  *telebot.Message
	store    map[string]any
	sent     []any
	notified int
}

func newMessageContext(userID int64, text string) *fakeContext {
	return &fakeContext{
		sender:  &telebot.User{ID: userID},
		message: &telebot.Message{ID: 1, Text: text, Chat: &telebot.Chat{ID: userID}},
		store:   make(map[string]any),
	}
}

func (c *fakeContext) Sender() *telebot.User           { return c.sender }
func (c *fakeContext) Message() *telebot.Message       { return c.message }
func (c *fakeContext) Callback() *telebot.Callback     { return nil }
func (c *fakeContext) Chat() *telebot.Chat             { return c.message.Chat }
func (c *fakeContext) Text() string                    { return c.message.Text }
func (c *fakeContext) Get(key string) interface{}      { return c.store[key] }
func (c *fakeContext) Set(key string, val interface{}) { c.store[key] = val }

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

// chain применяет middleware в том же порядке, что и telebot: первое оборачивает остальные.
func chain(h telebot.HandlerFunc, m []telebot.MiddlewareFunc) telebot.HandlerFunc {
	for i := len(m) - 1; i >= 0; i-- {
		h = m[i](h)
	}
	return h
}

func newCache(t *testing.T) (*cache.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return cache.NewWithClient(rdb), mr
}

func TestStartMiddleware_ThrottlesRepeatedStart(t *testing.T) {
	c, mr := newCache(t)
	var calls int
	h := chain(func(telebot.Context) error {
		calls++
		return nil
	}, startMiddleware(c, 3*time.Second))

	for i := 0; i < 3; i++ {
		if err := h(newMessageContext(42, "/start")); err != nil {
			t.Fatal(err)
		}
	}
	if calls != 1 {
		t.Errorf("/start выполнен %d раз в пределах ttl, ожидался 1", calls)
	}

	mr.FastForward(3 * time.Second)
	_ = h(newMessageContext(42, "/start"))
	if calls != 2 {
		t.Error("после истечения ttl /start должен выполняться")
	}
}

func TestExportMiddleware_NoChatActionWhileBusy(t *testing.T) {
	c, _ := newCache(t)
	lock := locks.NewExportLock(locks.ModeReject, time.Millisecond)
	statsService := stats.NewService(nil, time.UTC)

	var calls int
	h := chain(func(telebot.Context) error {
		calls++
		return nil
	}, exportMiddleware([]int64{1, 2}, c, time.Second, statsService, lock, nil))

	if !lock.TryAcquire() {
		t.Fatal("блокировка должна быть свободна")
	}
	busy := newMessageContext(1, "30")
	if err := h(busy); err != nil {
		t.Fatal(err)
	}
	if calls != 0 || busy.notified != 0 {
		t.Errorf("при занятой блокировке: вызовов %d, статусов %d", calls, busy.notified)
	}
	if len(busy.sent) != 1 {
		t.Errorf("ожидалось сообщение о занятости, отправлено %v", busy.sent)
	}
	lock.Release()

	free := newMessageContext(2, "30")
	if err := h(free); err != nil {
		t.Fatal(err)
	}
	if calls != 1 || free.notified == 0 {
		t.Errorf("при свободной блокировке: вызовов %d, статусов %d", calls, free.notified)
	}
}
