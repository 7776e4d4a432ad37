// Package notify реализует уведомления пользователя.
package notify

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gonotepad/internal/notes/domain/entities"
	"gonotepad/internal/notes/ports/services"
	"gonotepad/pkg/logger"
)

// DefaultTTL время жизни уведомления по умолчанию.
const DefaultTTL = 3 * time.Second

const LogNotification = "notification"

// Center хранит активные уведомления и снимает каждое по истечении TTL.
type Center struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	active []entities.Notification
	timers map[string]*time.Timer
	closed bool
}

var _ services.Notifier = (*Center)(nil)

// NewCenter создает центр уведомлений; ttl <= 0 заменяется DefaultTTL.
func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{
		ttl:    ttl,
		now:    time.Now,
		timers: make(map[string]*time.Timer),
	}
}

// Notify добавляет уведомление и планирует его снятие.
func (c *Center) Notify(ctx context.Context, message string, severity entities.Severity) {
	logger.Log(ctx).Debug(ctx, LogNotification,
		zap.String("severity", string(severity)), zap.String("message", message))

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	now := c.now()
	n := entities.Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Severity:  severity,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}
	c.active = append(c.active, n)
	c.timers[n.ID] = time.AfterFunc(c.ttl, func() { c.Dismiss(n.ID) })
}

// Dismiss снимает уведомление id досрочно. Возвращает false, если его уже нет.
func (c *Center) Dismiss(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.timers[id]; ok {
		t.Stop()
		delete(c.timers, id)
	}
	for i := range c.active {
		if c.active[i].ID == id {
			c.active = append(c.active[:i], c.active[i+1:]...)
			return true
		}
	}
	return false
}

// Active возвращает активные уведомления, от старых к новым.
func (c *Center) Active() []entities.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]entities.Notification, len(c.active))
	copy(out, c.active)
	return out
}

// Close останавливает таймеры; новые уведомления после этого игнорируются.
func (c *Center) Close(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
	c.active = nil
	c.closed = true
	return nil
}

// Console печатает уведомления строками "[severity] message".
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

var _ services.Notifier = (*Console)(nil)

// NewConsole создает консольный вывод уведомлений в w.
func NewConsole(w io.Writer) *Console {
	return &Console{out: w}
}

// Notify пишет уведомление в w.
func (c *Console) Notify(ctx context.Context, message string, severity entities.Severity) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := fmt.Fprintf(c.out, "[%s] %s\n", severity, message); err != nil {
		logger.Log(ctx).Warn(ctx, "failed to print notification", zap.Error(err))
	}
}
