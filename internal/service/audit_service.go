package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/architdhariwal/sms-backend/internal/events"
)

// AuditService writes an audit log line for every committed record change.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger.Named("audit"),
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventRecordCreated, a.handle)
	a.dispatcher.Subscribe(events.EventRecordUpdated, a.handle)
	a.dispatcher.Subscribe(events.EventRecordDeleted, a.handle)
}

func (a *AuditService) handle(_ context.Context, event events.Event) error {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("collection", event.Collection),
		zap.String("key", event.Key),
		zap.Time("at", event.Timestamp),
	}
	if len(event.Fields) > 0 {
		fields = append(fields, zap.Strings("fields", event.Fields))
	}
	a.logger.Info(string(event.Type), fields...)
	return nil
}
