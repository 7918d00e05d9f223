package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/models"
	"storefront-service/internal/store"
)

type published struct {
	subject string
	event   StoreEvent
}

type fakeStream struct {
	mu   sync.Mutex
	msgs []published
	err  error
}

func (f *fakeStream) Publish(_ context.Context, subject string, data []byte, _ ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
	if f.err != nil {
		return nil, f.err
	}
	var ev StoreEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, published{subject: subject, event: ev})
	return &jetstream.PubAck{Stream: StreamName}, nil
}

func (f *fakeStream) all() []published {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]published(nil), f.msgs...)
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "storefront.order.created", StoreEvent{Entity: "order", Action: "created"}.Subject())
}

func TestPublishAssignsEventID(t *testing.T) {
	stream := &fakeStream{}
	p := NewPublisher(stream, "wx-ecommerce", quietLogger())
	require.NoError(t, p.Publish(context.Background(), StoreEvent{Entity: "page", Action: "deleted", EntityID: "pg1"}))

	msgs := stream.all()
	require.Len(t, msgs, 1)
	assert.Equal(t, "storefront.page.deleted", msgs[0].subject)
	assert.NotEmpty(t, msgs[0].event.EventID)
}

func TestPublishWrapsStreamErrors(t *testing.T) {
	cause := errors.New("no responders")
	p := NewPublisher(&fakeStream{err: cause}, "wx-ecommerce", quietLogger())
	err := p.Publish(context.Background(), StoreEvent{Entity: "page", Action: "deleted"})
	assert.ErrorIs(t, err, cause)
}

func TestChangeHandlerPublishesBatchEvents(t *testing.T) {
	stream := &fakeStream{}
	p := NewPublisher(stream, "wx-ecommerce", quietLogger())
	st := store.New(store.WithLogger(quietLogger()))
	st.Subscribe(p.ChangeHandler())

	_, err := st.CreateCustomer(context.Background(), models.CreateCustomerRequest{
		FirstName: "John", LastName: "Doe", Email: "john.doe@example.com",
	})
	require.NoError(t, err)
	p.Close()

	msgs := stream.all()
	require.Len(t, msgs, 1)
	assert.Equal(t, "storefront.customer.created", msgs[0].subject)
	assert.Equal(t, "customer.created", msgs[0].event.EventType)
	assert.Equal(t, "wx-ecommerce", msgs[0].event.Namespace)
	assert.Equal(t, uint64(1), msgs[0].event.Version)
	assert.False(t, p.IsConnected())
}
