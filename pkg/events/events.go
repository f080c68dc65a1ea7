package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/frequencyai/member-platform/pkg/logger"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type Subscriber interface {
	Subscribe(subject string, handler func(msg *Message)) (Unsubscribe, error)
	Close() error
}

type EventBus interface {
	Publisher
	Subscriber
}

// Unsubscribe tears down a standing subscription. Callers own exactly one
// handle per subscription and must invoke it on shutdown.
type Unsubscribe func() error

type Message struct {
	Subject   string
	Data      []byte
	Timestamp time.Time
}

type NATSEventBus struct {
	conn *nats.Conn
}

func NewNATSEventBus(url string) (*NATSEventBus, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSEventBus{conn: conn}, nil
}

func (n *NATSEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "publishing event", "subject", subject, "bytes", len(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSEventBus) Subscribe(subject string, handler func(msg *Message)) (Unsubscribe, error) {
	sub, err := n.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(&Message{
			Subject:   msg.Subject,
			Data:      msg.Data,
			Timestamp: time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}
	return sub.Unsubscribe, nil
}

func (n *NATSEventBus) Close() error {
	n.conn.Close()
	return nil
}

// Appointment change events. Subjects embed the owning user ID so a
// dashboard feed can subscribe to exactly one user's rows.
const (
	AppointmentCreated = "created"
	AppointmentUpdated = "updated"
	AppointmentDeleted = "deleted"
)

// AppointmentSubject builds the per-user subject for one change kind.
func AppointmentSubject(userID, kind string) string {
	return fmt.Sprintf("appointments.%s.%s", userID, kind)
}

// AppointmentWildcard matches every change event for one user's rows.
func AppointmentWildcard(userID string) string {
	return fmt.Sprintf("appointments.%s.*", userID)
}

// AppointmentChangeEvent is the payload carried on every appointment
// change subject. Deleted events carry only the row identifier.
type AppointmentChangeEvent struct {
	Kind          string          `json:"kind"`
	AppointmentID string          `json:"appointment_id"`
	UserID        string          `json:"user_id"`
	Row           json.RawMessage `json:"row,omitempty"`
	OccurredAt    time.Time       `json:"occurred_at"`
}
