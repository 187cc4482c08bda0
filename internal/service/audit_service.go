package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/spec-kit/college-records/internal/events"
	"github.com/spec-kit/college-records/internal/repository"
)

// AuditService records domain events into the audit trail.
type AuditService struct {
	dispatcher events.Dispatcher
	records    repository.AuditRepository
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, records repository.AuditRepository, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, records: records, logger: logger}
}

// RegisterHandlers subscribes to every audited event type.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventUserLoggedIn,
		events.EventUserLoggedOut,
		events.EventStudentCreated,
		events.EventStudentUpdated,
		events.EventStudentDeleted,
	} {
		a.dispatcher.Subscribe(eventType, a.handleEvent)
	}
}

func (a *AuditService) handleEvent(ctx context.Context, event events.Event) error {
	a.logger.Info("audit",
		zap.String("event_type", string(event.Type)),
		zap.String("subject_id", event.SubjectID),
		zap.Any("actor", event.Actor))

	if a.records == nil {
		return nil
	}

	payload, err := json.Marshal(event.Payload)
	if err != nil {
		payload = nil
	}
	record := &repository.AuditRecord{
		ID:          event.ID,
		EventType:   string(event.Type),
		SubjectID:   event.SubjectID,
		ActorUserID: event.Actor.UserID,
		Payload:     payload,
	}
	if err := a.records.Create(ctx, record); err != nil {
		a.logger.Warn("audit record write failed", zap.Error(err))
	}
	return nil
}
