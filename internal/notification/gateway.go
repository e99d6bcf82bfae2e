// Package notification delivers outbound messages to account holders. The
// services layer only sees the Gateway interface; the concrete backend is
// picked from configuration at startup.
package notification

import (
	"context"
	"log/slog"
)

// Message is a single outbound notification.
type Message struct {
	Recipient string
	Subject   string
	Body      string
}

// Gateway sends a message to its recipient.
type Gateway interface {
	Send(ctx context.Context, msg Message) error
}

// LogGateway writes every message as a structured log record instead of
// delivering it. It is the default backend.
type LogGateway struct {
	logger *slog.Logger
}

var _ Gateway = (*LogGateway)(nil)

func NewLogGateway(logger *slog.Logger) *LogGateway {
	return &LogGateway{logger: logger}
}

func (g *LogGateway) Send(ctx context.Context, msg Message) error {
	g.logger.InfoContext(ctx, "notification sent",
		slog.String("recipient", msg.Recipient),
		slog.String("subject", msg.Subject),
		slog.Int("body_bytes", len(msg.Body)),
	)
	return nil
}
