package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const dialTimeout = 10 * time.Second

// WelcomeMessage is the JSON envelope published for every notification.
type WelcomeMessage struct {
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	SentAt    time.Time `json:"sent_at"`
}

// channel is the subset of *amqp.Channel the gateway uses.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPGateway publishes notifications to a durable topic exchange, leaving
// delivery to whatever consumer is bound to the routing key.
type AMQPGateway struct {
	exchange   string
	routingKey string
	logger     *slog.Logger
	now        func() time.Time

	mu       sync.Mutex
	conn     *amqp.Connection
	ch       channel
	declared bool
}

var _ Gateway = (*AMQPGateway)(nil)

// NewAMQPGateway dials the broker and opens a channel. The exchange is
// declared lazily on the first Send.
func NewAMQPGateway(rawURL, exchange, routingKey string, logger *slog.Logger) (*AMQPGateway, error) {
	cleanURL, err := sanitizeAMQPURL(rawURL)
	if err != nil {
		return nil, err
	}

	conn, err := amqp.DialConfig(cleanURL, amqp.Config{Dial: amqp.DefaultDial(dialTimeout)})
	if err != nil {
		return nil, fmt.Errorf("dialing amqp broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening amqp channel: %w", err)
	}

	return &AMQPGateway{
		exchange:   exchange,
		routingKey: routingKey,
		logger:     logger,
		now:        time.Now,
		conn:       conn,
		ch:         ch,
	}, nil
}

func (g *AMQPGateway) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(WelcomeMessage{
		Recipient: msg.Recipient,
		Subject:   msg.Subject,
		Body:      msg.Body,
		SentAt:    g.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encoding notification: %w", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.publish(ctx, body); err != nil {
		g.logger.WarnContext(ctx, "publish failed, reopening channel",
			slog.String("exchange", g.exchange),
			slog.String("error", err.Error()),
		)
		if reopenErr := g.reopen(); reopenErr != nil {
			return errors.Join(err, reopenErr)
		}
		if err := g.publish(ctx, body); err != nil {
			return fmt.Errorf("publishing notification: %w", err)
		}
	}

	g.logger.DebugContext(ctx, "notification published",
		slog.String("exchange", g.exchange),
		slog.String("routing_key", g.routingKey),
	)
	return nil
}

// publish must be called with g.mu held.
func (g *AMQPGateway) publish(ctx context.Context, body []byte) error {
	if !g.declared {
		if err := g.ch.ExchangeDeclare(g.exchange, "topic", true, false, false, false, nil); err != nil {
			return fmt.Errorf("declaring exchange %q: %w", g.exchange, err)
		}
		g.declared = true
	}

	return g.ch.PublishWithContext(ctx, g.exchange, g.routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    g.now(),
		Body:         body,
	})
}

// reopen replaces a failed channel; must be called with g.mu held.
func (g *AMQPGateway) reopen() error {
	if g.conn == nil || g.conn.IsClosed() {
		return errors.New("amqp connection is closed")
	}
	ch, err := g.conn.Channel()
	if err != nil {
		return fmt.Errorf("reopening amqp channel: %w", err)
	}
	if g.ch != nil {
		_ = g.ch.Close()
	}
	g.ch = ch
	g.declared = false
	return nil
}

// Close releases the channel and the connection.
func (g *AMQPGateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	var errs []error
	if g.ch != nil {
		if err := g.ch.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, err)
		}
	}
	if g.conn != nil {
		if err := g.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// sanitizeAMQPURL trims quotes and stray prefixes that tend to creep in from
// env files and rejects anything that is not amqp:// or amqps://.
func sanitizeAMQPURL(raw string) (string, error) {
	clean := strings.Trim(strings.TrimSpace(raw), "\"'")
	if idx := strings.Index(strings.ToLower(clean), "amqp"); idx > 0 {
		clean = clean[idx:]
	}
	u, err := url.Parse(clean)
	if err != nil {
		return "", fmt.Errorf("parsing amqp url: %w", err)
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", errors.New("amqp url scheme must be amqp:// or amqps://")
	}
	return clean, nil
}
