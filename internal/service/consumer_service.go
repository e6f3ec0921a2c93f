package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"note-share-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/gofiber/fiber/v2/log"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService writes an audit line for every note event.
type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	handled    atomic.Int64
}

func NewConsumerService(subscriber message.Subscriber, topicName string) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			if err := cs.processMessage(msg); err != nil {
				log.Warnf("[AUDIT] dropped message %s: %v", msg.UUID, err)
			}
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) error {
	// Malformed payloads are acked too; redelivery would not fix them.
	defer msg.Ack()

	var event dto.NoteEventMessage
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return fmt.Errorf("decode note event: %w", err)
	}

	log.Infof("[AUDIT] event=%s note=%s title=%q public_id=%s at=%s",
		event.Event, event.NoteId, event.Title, event.PublicId, event.At.Format(time.RFC3339))
	cs.handled.Add(1)
	return nil
}
