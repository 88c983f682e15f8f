package mailer

import (
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/order"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type capture struct {
	mu   sync.Mutex
	sent []Message
}

func (c *capture) send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, msg)
	return nil
}

func (c *capture) messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.sent))
	copy(out, c.sent)
	return out
}

func sampleEvent() order.Created {
	return order.Created{
		Order: order.Order{
			ID:            8,
			PaymentStatus: order.PaymentPending,
			Items: []order.Item{
				{ProductID: 1, Quantity: 2, UnitPrice: 4},
				{ProductID: 2, Quantity: 1, UnitPrice: 2.5},
			},
		},
		CustomerEmail: "buyer@example.com",
	}
}

func TestWorkerDeliversConfirmation(t *testing.T) {
	cap := &capture{}
	w := NewWorker(quietLogger(), "shop@example.com", 4, cap.send)

	require.NoError(t, w.Subscriber().Notify(sampleEvent()))
	w.Close()

	sent := cap.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "buyer@example.com", sent[0].To)
	assert.Equal(t, "Order #8 confirmed", sent[0].Subject)
	assert.Contains(t, sent[0].Body, "10.50")
}

func TestWorkerIgnoresOtherEvents(t *testing.T) {
	cap := &capture{}
	w := NewWorker(quietLogger(), "shop@example.com", 4, cap.send)

	require.NoError(t, w.Subscriber().Notify(fakeEvent{}))
	w.Close()
	assert.Empty(t, cap.messages())
}

type fakeEvent struct{}

func (fakeEvent) Type() string { return "something.else" }

func TestWorkerRejectsMissingEmail(t *testing.T) {
	w := NewWorker(quietLogger(), "shop@example.com", 4, nil)
	defer w.Close()

	e := sampleEvent()
	e.CustomerEmail = ""
	assert.Error(t, w.Subscriber().Notify(e))
}

func TestEnqueueAfterCloseFails(t *testing.T) {
	w := NewWorker(quietLogger(), "shop@example.com", 4, nil)
	w.Close()
	assert.Error(t, w.Enqueue(Message{To: "x@example.com"}))
}
