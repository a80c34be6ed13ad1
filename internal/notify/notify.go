// Package notify — уведомления (тосты), которые компоненты показывают пользователю.
package notify

import (
	"sync"
	"time"

	"github.com/DRSN-tech/product-ordering/pkg/logger"
)

// Kind — вариант уведомления.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
)

// Title возвращает заголовок тоста для варианта.
func (k Kind) Title() string {
	switch k {
	case KindSuccess:
		return "Success"
	case KindError:
		return "Error"
	case KindWarning:
		return "Warning"
	default:
		return "Info"
	}
}

// Notification — одно показанное уведомление.
type Notification struct {
	Kind      Kind      `json:"variant"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notifier — узкий интерфейс показа уведомлений.
type Notifier interface {
	Notify(kind Kind, message string)
}

func Success(n Notifier, message string) { n.Notify(KindSuccess, message) }
func Error(n Notifier, message string) { n.Notify(KindError, message) }
func Info(n Notifier, message string) { n.Notify(KindInfo, message) }

// Collector накапливает уведомления сессии до тех пор, пока хост их не заберёт.
type Collector struct {
	mu    sync.Mutex
	items []Notification
	limit int
	now   func() time.Time
}

// NewCollector создаёт накопитель. При limit > 0 хранятся только последние limit уведомлений.
func NewCollector(limit int) *Collector {
	return &Collector{
		limit: limit,
		now:   time.Now,
	}
}

func (c *Collector) Notify(kind Kind, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = append(c.items, Notification{
		Kind:      kind,
		Title:     kind.Title(),
		Message:   message,
		CreatedAt: c.now(),
	})

	if c.limit > 0 && len(c.items) > c.limit {
		c.items = append([]Notification(nil), c.items[len(c.items)-c.limit:]...)
	}
}

// Drain возвращает накопленные уведомления и очищает очередь.
func (c *Collector) Drain() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.items
	c.items = nil
	if items == nil {
		return []Notification{}
	}

	return items
}

// Pending возвращает количество ещё не забранных уведомлений.
func (c *Collector) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.items)
}

// LogNotifier пишет уведомления в лог.
type LogNotifier struct {
	logger logger.Logger
	prefix string
}

func NewLogNotifier(logger logger.Logger, prefix string) *LogNotifier {
	return &LogNotifier{logger: logger, prefix: prefix}
}

func (l *LogNotifier) Notify(kind Kind, message string) {
	switch kind {
	case KindError:
		l.logger.Warnf("%s toast %s: %s", l.prefix, kind, message)
	default:
		l.logger.Debugf("%s toast %s: %s", l.prefix, kind, message)
	}
}

// Multi рассылает уведомление нескольким получателям по порядку.
type Multi []Notifier

func (m Multi) Notify(kind Kind, message string) {
	for _, n := range m {
		n.Notify(kind, message)
	}
}
