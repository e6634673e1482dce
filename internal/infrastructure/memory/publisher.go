package memory

import (
	"context"

	"github.com/baechuer/inventory-service/internal/application/auth"
)

// NoopPublisher discards events. Used in dev when RabbitMQ is unavailable
// and in tests that do not care about the mailer.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (NoopPublisher) PublishUserRegistered(ctx context.Context, evt auth.UserRegisteredEvent) error {
	return nil
}
