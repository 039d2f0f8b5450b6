package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"marketing-service/utils"

	amqp "github.com/rabbitmq/amqp091-go"
)

type NotificationPublisher struct {
	conn              *RabbitMQConnection
	messagesPublished int64
	messagesFailed    int64
	lastPublishTime   time.Time
}

// NewNotificationPublisher creates a new notification event publisher
func NewNotificationPublisher(conn *RabbitMQConnection) *NotificationPublisher {
	return &NotificationPublisher{
		conn:            conn,
		lastPublishTime: time.Now(),
	}
}

// PublishActivityDecision publishes an approval/rejection event to the
// push_noti_events queue, addressed to the activity author.
func (p *NotificationPublisher) PublishActivityDecision(ctx context.Context, event ActivityDecisionEvent) error {
	_, err := p.conn.Channel.QueueDeclare(
		NotiQueue, // queue name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	message := NotificationMessage{
		ID:          utils.GenerateRandomStringWithLength(6),
		Type:        TypeInApp,
		Priority:    PriorityNormal,
		RecipientID: event.AuthorID,
		Payload:     map[string]any{"activity_decision": event},
		RetryCount:  0,
		MaxRetries:  5,
		CreatedAt:   time.Now(),
	}

	body, err := json.Marshal(message)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to marshal notification event: %w", err)
	}

	err = p.conn.Channel.PublishWithContext(
		ctx,
		"",        // exchange
		NotiQueue, // routing key (queue name)
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to publish notification event: %w", err)
	}

	p.messagesPublished++
	p.lastPublishTime = time.Now()

	slog.Info("Activity decision event published",
		"queue", NotiQueue,
		"activity_id", event.ActivityID,
		"decision", event.Decision,
	)

	return nil
}
