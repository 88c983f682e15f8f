package mailer

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"storefront/internal/event"
	"storefront/internal/order"
)

// Message is a rendered mail ready for delivery.
type Message struct {
	To      string
	Subject string
	Body    string
}

// SendFunc performs the actual delivery. The default logs the message,
// which stands in for an SMTP relay.
type SendFunc func(msg Message) error

// Worker delivers order confirmations from a buffered queue on its own
// goroutine so a slow relay never blocks order placement.
type Worker struct {
	log   *logrus.Logger
	from  string
	queue chan Message
	send  SendFunc

	wg       sync.WaitGroup
	stopOnce sync.Once
	mu       sync.RWMutex
	closed   bool
}

func NewWorker(log *logrus.Logger, from string, queueSize int, send SendFunc) *Worker {
	w := &Worker{
		log:   log,
		from:  from,
		queue: make(chan Message, queueSize),
		send:  send,
	}
	if w.send == nil {
		w.send = w.logSend
	}
	w.wg.Add(1)
	go w.run()
	return w
}

func (w *Worker) run() {
	defer w.wg.Done()
	for msg := range w.queue {
		if err := w.send(msg); err != nil {
			w.log.WithError(err).WithField("to", msg.To).Warn("mail delivery failed")
		}
	}
}

func (w *Worker) logSend(msg Message) error {
	w.log.WithFields(logrus.Fields{
		"from":    w.from,
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info(msg.Body)
	return nil
}

// Enqueue hands a message to the worker without blocking. A full queue
// drops the message and reports the drop to the caller.
func (w *Worker) Enqueue(msg Message) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return errors.New("mailer is closed")
	}
	select {
	case w.queue <- msg:
		return nil
	default:
		return errors.New("mail queue full, message dropped")
	}
}

// Subscriber returns the event subscriber that turns order events into
// confirmation mails.
func (w *Worker) Subscriber() event.Subscriber {
	return event.SubscriberFunc(func(e event.Event) error {
		created, ok := e.(order.Created)
		if !ok {
			return nil
		}
		if created.CustomerEmail == "" {
			return errors.New("order has no customer email")
		}
		return w.Enqueue(renderConfirmation(created))
	})
}

func renderConfirmation(e order.Created) Message {
	total := 0.0
	for _, item := range e.Order.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return Message{
		To:      e.CustomerEmail,
		Subject: fmt.Sprintf("Order #%d confirmed", e.Order.ID),
		Body: fmt.Sprintf("Thank you for your order. %d item(s), total %.2f. Payment status: %s.",
			len(e.Order.Items), total, e.Order.PaymentStatus),
	}
}

// Close stops accepting new mail and waits for the queue to drain.
func (w *Worker) Close() {
	w.stopOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		w.mu.Unlock()
		close(w.queue)
	})
	w.wg.Wait()
}
