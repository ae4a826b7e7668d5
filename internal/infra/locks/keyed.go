// Package locks содержит примитивы взаимного исключения: блокировку по пользователю
// и общую для процесса блокировку выгрузки статистики.
package locks

import "sync"

// Keyed сериализует операции по ключу (Telegram ID пользователя).
// Записи удаляются, когда ключ никто не держит и не ждёт.
type Keyed struct {
	mu      sync.Mutex
	entries map[int64]*keyedEntry
}

type keyedEntry struct {
	mu   sync.Mutex
	refs int
}

// NewKeyed создаёт пустой набор блокировок.
func NewKeyed() *Keyed {
	return &Keyed{entries: make(map[int64]*keyedEntry)}
}

// Lock захватывает блокировку ключа и возвращает функцию освобождения.
func (k *Keyed) Lock(key int64) (unlock func()) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &keyedEntry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Unlock()

			k.mu.Lock()
			e.refs--
			if e.refs == 0 {
				delete(k.entries, key)
			}
			k.mu.Unlock()
		})
	}
}

// size используется в тестах.
func (k *Keyed) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}
