// Package bus — шина сообщений publish/subscribe внутри одной сессии.
//
// Доставка синхронная: Publish вызывает обработчики по очереди, в порядке подписки,
// и возвращается после последнего. Сообщения, опубликованные до подписки, теряются:
// буфера и повторной доставки нет.
package bus

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Channel — имя канала шины.
type Channel string

// ProductOrderingChannel — канал намерений "добавить в заказ".
const ProductOrderingChannel Channel = "productOrdering"

// Message — сообщение, доставляемое подписчику.
type Message struct {
	Channel Channel
	Payload any
}

// Handler обрабатывает сообщение. Результат обработчика издателю не возвращается.
type Handler func(ctx context.Context, msg Message)

// Token идентифицирует подписку. Нулевое значение — пустая подписка.
type Token struct {
	id      string
	channel Channel
}

// IsZero сообщает, что токен не соответствует ни одной подписке.
func (t Token) IsZero() bool {
	return t.id == ""
}

// Bus — контракт шины, который получают компоненты.
type Bus interface {
	Subscribe(channel Channel, handler Handler) Token
	Publish(ctx context.Context, channel Channel, payload any)
	Unsubscribe(token Token)
}

type subscription struct {
	id      string
	handler Handler
}

// MessageBus — реализация Bus в памяти процесса.
type MessageBus struct {
	mu   sync.RWMutex
	subs map[Channel][]subscription
}

func NewMessageBus() *MessageBus {
	return &MessageBus{
		subs: make(map[Channel][]subscription),
	}
}

// Subscribe регистрирует обработчик в конце списка подписчиков канала.
func (b *MessageBus) Subscribe(channel Channel, handler Handler) Token {
	id := uuid.NewString()

	b.mu.Lock()
	b.subs[channel] = append(b.subs[channel], subscription{id: id, handler: handler})
	b.mu.Unlock()

	return Token{id: id, channel: channel}
}

// Publish доставляет payload всем текущим подписчикам канала.
// Обработчики вызываются вне блокировки, поэтому могут сами публиковать и отписываться.
func (b *MessageBus) Publish(ctx context.Context, channel Channel, payload any) {
	b.mu.RLock()
	subs := make([]subscription, len(b.subs[channel]))
	copy(subs, b.subs[channel])
	b.mu.RUnlock()

	msg := Message{Channel: channel, Payload: payload}
	for _, s := range subs {
		s.handler(ctx, msg)
	}
}

// Unsubscribe удаляет подписку. Повторная отписка и нулевой токен допустимы.
func (b *MessageBus) Unsubscribe(token Token) {
	if token.IsZero() {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[token.channel]
	for i, s := range subs {
		if s.id != token.id {
			continue
		}

		rest := make([]subscription, 0, len(subs)-1)
		rest = append(rest, subs[:i]...)
		rest = append(rest, subs[i+1:]...)
		if len(rest) == 0 {
			delete(b.subs, token.channel)
		} else {
			b.subs[token.channel] = rest
		}
		return
	}
}

// Len возвращает число подписчиков канала.
func (b *MessageBus) Len(channel Channel) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.subs[channel])
}
