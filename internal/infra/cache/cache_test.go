package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewWithClient(rdb), mr
}

func TestUsername(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	known, err := c.UserKnown(ctx, 10)
	if err != nil || known {
		t.Fatalf("UserKnown для нового пользователя = %v, %v", known, err)
	}

	if err := c.SetUsername(ctx, 10, "gardener"); err != nil {
		t.Fatalf("SetUsername: %v", err)
	}
	if got := mr.HGet("userdata_10", "tg_username"); got != "gardener" {
		t.Errorf("в хэше %q, ожидалось gardener", got)
	}

	known, _ = c.UserKnown(ctx, 10)
	if !known {
		t.Error("пользователь должен считаться известным")
	}

	changed, err := c.UpdateUsernameIfChanged(ctx, 10, "gardener")
	if err != nil || changed {
		t.Errorf("тот же username: changed=%v err=%v", changed, err)
	}
	changed, err = c.UpdateUsernameIfChanged(ctx, 10, "")
	if err != nil || !changed {
		t.Errorf("сброс username: changed=%v err=%v", changed, err)
	}
	name, ok, _ := c.Username(ctx, 10)
	if !ok || name != "" {
		t.Errorf("Username = %q, %v; ожидалась пустая строка", name, ok)
	}
}

func TestUpdateUsernameIfChanged_Missing(t *testing.T) {
	c, _ := newTestClient(t)
	changed, err := c.UpdateUsernameIfChanged(context.Background(), 5, "")
	if err != nil || !changed {
		t.Errorf("отсутствующий username должен записываться: changed=%v err=%v", changed, err)
	}
}

func TestAcquireThrottle(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	ok, err := c.AcquireThrottle(ctx, 1, 3*time.Second)
	if err != nil || !ok {
		t.Fatalf("первый вызов: ok=%v err=%v", ok, err)
	}
	ok, _ = c.AcquireThrottle(ctx, 1, 3*time.Second)
	if ok {
		t.Error("второй вызов в пределах ttl должен вернуть false")
	}
	ok, _ = c.AcquireThrottle(ctx, 2, 3*time.Second)
	if !ok {
		t.Error("флаг другого пользователя не должен мешать")
	}

	mr.FastForward(4 * time.Second)
	ok, _ = c.AcquireThrottle(ctx, 1, 3*time.Second)
	if !ok {
		t.Error("после истечения ttl флаг должен ставиться снова")
	}
}

func TestPictureID(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	if _, ok, err := c.PictureID(ctx, "visual"); ok || err != nil {
		t.Fatalf("пустой кэш: ok=%v err=%v", ok, err)
	}
	if err := c.SetPictureID(ctx, "visual", "AgAD-file"); err != nil {
		t.Fatalf("SetPictureID: %v", err)
	}
	id, ok, err := c.PictureID(ctx, "visual")
	if err != nil || !ok || id != "AgAD-file" {
		t.Errorf("PictureID = %q, %v, %v", id, ok, err)
	}
}

func TestUserField(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	if err := c.SetUserField(ctx, 3, "session", `{"state":"idle"}`); err != nil {
		t.Fatalf("SetUserField: %v", err)
	}
	v, ok, err := c.UserField(ctx, 3, "session")
	if err != nil || !ok || v != `{"state":"idle"}` {
		t.Errorf("UserField = %q, %v, %v", v, ok, err)
	}
	if _, ok, _ := c.UserField(ctx, 3, "missing"); ok {
		t.Error("отсутствующее поле не должно находиться")
	}
}
