package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/sirupsen/logrus"

	"storefront-service/internal/store"
)

const (
	StreamName     = "STOREFRONT_EVENTS"
	subjectPrefix  = "storefront."
	publishTimeout = 10 * time.Second
)

// StoreEvent is the payload published for every store mutation
type StoreEvent struct {
	EventID   string    `json:"eventId"`
	EventType string    `json:"eventType"`
	Namespace string    `json:"namespace"`
	Entity    string    `json:"entity"`
	Action    string    `json:"action"`
	EntityID  string    `json:"entityId,omitempty"`
	ActorID   string    `json:"actorId,omitempty"`
	Version   uint64    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// Subject returns storefront.<entity>.<action>
func (e StoreEvent) Subject() string {
	return subjectPrefix + e.Entity + "." + e.Action
}

// StreamPublisher is the part of jetstream.JetStream the publisher needs
type StreamPublisher interface {
	Publish(ctx context.Context, subject string, data []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// Publisher forwards store change events to NATS JetStream
type Publisher struct {
	js        StreamPublisher
	conn      *nats.Conn
	namespace string
	logger    *logrus.Entry
	wg        sync.WaitGroup
}

// NewPublisher creates a publisher on an existing JetStream handle
func NewPublisher(js StreamPublisher, namespace string, logger *logrus.Logger) *Publisher {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Publisher{
		js:        js,
		namespace: namespace,
		logger:    logger.WithField("component", "events.publisher"),
	}
}

// Connect dials NATS, ensures the storefront stream and returns a publisher
func Connect(ctx context.Context, natsURL, namespace string, logger *logrus.Logger) (*Publisher, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	nc, err := nats.Connect(natsURL,
		nats.Name("storefront-service"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.WithField("url", nc.ConnectedUrl()).Info("NATS reconnected")
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.WithError(err).Warn("NATS disconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:      StreamName,
		Subjects:  []string{subjectPrefix + ">"},
		Retention: jetstream.LimitsPolicy,
		MaxAge:    7 * 24 * time.Hour,
		Storage:   jetstream.FileStorage,
		Replicas:  1,
	})
	if err != nil {
		logger.WithError(err).Warn("Failed to ensure " + StreamName + " stream")
	}

	p := NewPublisher(js, namespace, logger)
	p.conn = nc
	return p, nil
}

// Publish sends one event. The event id doubles as the JetStream dedup id.
func (p *Publisher) Publish(ctx context.Context, event StoreEvent) error {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if _, err := p.js.Publish(ctx, event.Subject(), data, jetstream.WithMsgID(event.EventID)); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Subject(), err)
	}
	return nil
}

// ChangeHandler returns a store subscriber publishing every event of a batch.
// Publishing runs in the background so mutations never wait on NATS.
func (p *Publisher) ChangeHandler() func(store.Change) {
	return func(change store.Change) {
		if len(change.Events) == 0 {
			return
		}
		batch := make([]StoreEvent, 0, len(change.Events))
		for _, ev := range change.Events {
			batch = append(batch, StoreEvent{
				EventType: ev.Type,
				Namespace: p.namespace,
				Entity:    ev.Entity,
				Action:    ev.Action,
				EntityID:  ev.EntityID,
				ActorID:   ev.ActorID,
				Version:   change.Version,
				Timestamp: ev.OccurredAt,
			})
		}
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
			defer cancel()
			for _, e := range batch {
				if err := p.Publish(ctx, e); err != nil {
					p.logger.WithError(err).WithField("event_type", e.EventType).Warn("Failed to publish store event")
				}
			}
		}()
	}
}

// IsConnected reports whether the underlying NATS connection is up
func (p *Publisher) IsConnected() bool {
	return p.conn != nil && p.conn.IsConnected()
}

// Close waits for in-flight publishes and drains the connection
func (p *Publisher) Close() {
	p.wg.Wait()
	if p.conn != nil {
		if err := p.conn.Drain(); err != nil {
			p.logger.WithError(err).Warn("NATS drain failed")
		}
	}
}
