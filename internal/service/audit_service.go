package service

import (
	"context"
	"encoding/json"
	"log"

	"knowthee-be/internal/pkg/logger"
	"knowthee-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IAuditService interface {
	Consume(ctx context.Context) error
}

// auditService drains pipeline events onto the isolated audit log. It
// never blocks the query path; events arrive through the in-process bus.
type auditService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	auditLog  logger.ILogger
}

func NewAuditService(pubSub *gochannel.GoChannel, topicName string, auditLog logger.ILogger) IAuditService {
	return &auditService{
		pubSub:    pubSub,
		topicName: topicName,
		auditLog:  auditLog,
	}
}

func (s *auditService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(msg)
		}
	}()

	return nil
}

func (s *auditService) processMessage(msg *message.Message) {
	var event events.BaseEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		// Ack malformed messages to prevent infinite retry
		log.Printf("[ERROR] Failed to unmarshal audit event: %v", err)
		msg.Ack()
		return
	}

	s.auditLog.Info("audit", event.Type, event.Data)
	msg.Ack()
}
