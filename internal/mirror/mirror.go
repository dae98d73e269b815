/*
Package mirror copies room activity (joins, leaves, messages, locations) to a
RabbitMQ topic exchange for external consumers such as moderation or
analytics tools. The relay itself never consumes these records.
*/
package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Tyrowin/roomchat/internal/contract"
	"github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

var (
	// ErrQueueFull is returned by Publish when the outbound buffer is saturated.
	ErrQueueFull = fmt.Errorf("activity queue is full")
	ErrClosed    = fmt.Errorf("activity publisher is closed")
)

// Discard drops every activity. It is used when no broker is configured.
type Discard struct{}

// Publish drops the activity.
func (Discard) Publish(context.Context, contract.Activity) error { return nil }

// Close does nothing.
func (Discard) Close() error { return nil }

// Channel is the subset of *amqp091.Channel the publisher uses.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

/*
Publisher queues activities and publishes them from a single goroutine, so
callers on the connection read pumps never wait on the broker.  A full queue
drops the record rather than blocking a chat event.
*/
type Publisher struct {
	log      *slog.Logger
	channel  Channel
	exchange string
	queue    chan contract.Activity
	stopped  chan struct{}
	mu       sync.RWMutex
	closed   bool
}

// NewPublisher declares the topic exchange on ch and starts the publishing
// goroutine.
func NewPublisher(log *slog.Logger, ch Channel, exchange string, buffer int) (*Publisher, error) {
	if buffer <= 0 {
		buffer = 256
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange %q: %w", exchange, err)
	}

	p := &Publisher{
		log:      log,
		channel:  ch,
		exchange: exchange,
		queue:    make(chan contract.Activity, buffer),
		stopped:  make(chan struct{}),
	}
	go p.run()
	return p, nil
}

// Dial connects to the broker at url and returns a publisher bound to a
// fresh channel. The returned closer releases the connection.
func Dial(log *slog.Logger, url, exchange string, buffer int) (*Publisher, func() error, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("open RabbitMQ channel: %w", err)
	}

	p, err := NewPublisher(log, ch, exchange, buffer)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, err
	}
	return p, conn.Close, nil
}

// Publish enqueues an activity without blocking.
func (p *Publisher) Publish(_ context.Context, activity contract.Activity) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrClosed
	}

	select {
	case p.queue <- activity:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting activities, flushes the queue and closes the channel.
func (p *Publisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	<-p.stopped
	return p.channel.Close()
}

func (p *Publisher) run() {
	defer close(p.stopped)

	for activity := range p.queue {
		if err := p.publish(activity); err != nil {
			p.log.Error("Failed to mirror room activity",
				"kind", activity.Kind, "room", activity.Room, "error", err)
		}
	}
}

func (p *Publisher) publish(activity contract.Activity) error {
	body, err := json.Marshal(activity)
	if err != nil {
		return fmt.Errorf("encode activity: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	return p.channel.PublishWithContext(ctx, p.exchange, RoutingKey(activity), false, false,
		amqp091.Publishing{
			ContentType: "application/json",
			Timestamp:   activity.At,
			Body:        body,
		})
}

// RoutingKey is room.<room>.<kind>, with dots in the room name replaced so
// topic bindings stay unambiguous.
func RoutingKey(activity contract.Activity) string {
	room := strings.ReplaceAll(activity.Room, ".", "_")
	return "room." + room + "." + string(activity.Kind)
}
