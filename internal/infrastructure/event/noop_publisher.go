package event

import (
	"context"

	"github.com/erp/passbook/internal/domain/shared"
	"github.com/erp/passbook/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NoopPublisher drops events; used when event.enabled is false
type NoopPublisher struct {
	logger *zap.Logger
}

// NewNoopPublisher creates a NoopPublisher
func NewNoopPublisher(logger *zap.Logger) *NoopPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoopPublisher{logger: logger}
}

// Publish logs the dropped events at debug level
func (p *NoopPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	for _, e := range events {
		p.logger.Debug("event publishing disabled, dropping event",
			zap.String("event_type", e.EventType()),
			zap.String("aggregate_id", e.AggregateID().String()),
		)
	}
	return nil
}

// Close implements shared.EventPublisher
func (p *NoopPublisher) Close() error {
	return nil
}

// NewPublisher returns a KafkaPublisher when events are enabled, otherwise a NoopPublisher
func NewPublisher(cfg config.EventConfig, logger *zap.Logger) shared.EventPublisher {
	if !cfg.Enabled {
		return NewNoopPublisher(logger)
	}
	return NewKafkaPublisher(cfg, logger)
}

var _ shared.EventPublisher = (*NoopPublisher)(nil)
