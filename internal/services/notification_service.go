package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"ridehail/internal/config"
	"ridehail/internal/notification"
)

// NotificationService sends best-effort messages to account holders. Sends
// run in the background; their outcome is only ever logged.
type NotificationService struct {
	gateway notification.Gateway
	subject string
	timeout time.Duration
	logger  *slog.Logger

	// mu orders wg.Add against Shutdown so no send is added once draining
	// has started.
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewNotificationService(gateway notification.Gateway, cfg config.NotificationConfig, logger *slog.Logger) *NotificationService {
	return &NotificationService{
		gateway: gateway,
		subject: cfg.WelcomeSubject,
		timeout: cfg.SendTimeout,
		logger:  logger,
	}
}

// SendWelcome queues the welcome message for email and returns immediately.
// The send outlives ctx's cancellation but not the configured timeout. After
// Shutdown the message is dropped and logged.
func (s *NotificationService) SendWelcome(ctx context.Context, email string) {
	msg := notification.Message{Recipient: email, Subject: s.subject}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.logger.WarnContext(ctx, "welcome notification dropped, service shutting down",
			slog.String("recipient", email),
		)
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()

		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()

		if err := s.gateway.Send(sendCtx, msg); err != nil {
			s.logger.ErrorContext(sendCtx, "welcome notification failed",
				slog.String("recipient", email),
				slog.String("error", err.Error()),
			)
		}
	}()
}

// Wait blocks until every send started so far has finished.
func (s *NotificationService) Wait() {
	s.wg.Wait()
}

// Shutdown stops accepting new sends and waits for the in-flight ones. It is
// safe to call while SendWelcome is still being called.
func (s *NotificationService) Shutdown() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.wg.Wait()
}
