package lock

import (
	"context"
	"sync"
	"time"
)

// занятый ключ хранит канал, закрываемый при освобождении
var (
	mu   sync.Mutex
	held = map[string]chan struct{}{}
)

// WithDelay выполняет safeCode под именованной блокировкой процесса.
// Если ключ занят, ждёт освобождения не дольше wait; при wait == 0 сразу возвращает false.
// Блокировка снимается и при панике в safeCode
func WithDelay(ctx context.Context, key string, wait time.Duration, safeCode func() error) (success bool, err error) {
	var timeout <-chan time.Time
	if wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		timeout = timer.C
	}
	for {
		released, acquired := tryAcquire(key)
		if acquired {
			break
		}
		if wait <= 0 {
			return false, nil
		}
		select {
		case <-released:
		case <-timeout:
			return false, nil
		case <-ctx.Done():
			return false, nil
		}
	}
	defer release(key)
	return true, safeCode()
}

// IsHeld занят ли ключ
func IsHeld(key string) bool {
	mu.Lock()
	defer mu.Unlock()
	_, ok := held[key]
	return ok
}

func tryAcquire(key string) (released chan struct{}, acquired bool) {
	mu.Lock()
	defer mu.Unlock()
	if ch, ok := held[key]; ok {
		return ch, false
	}
	held[key] = make(chan struct{})
	return nil, true
}

func release(key string) {
	mu.Lock()
	defer mu.Unlock()
	if ch, ok := held[key]; ok {
		close(ch)
		delete(held, key)
	}
}
