package event

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Dispatcher fans events out to an explicit list of subscribers supplied at
// construction. Each subscriber's failure is isolated: it is logged and the
// remaining subscribers still run. Dispatch never reports an error to the
// emitting workflow.
type Dispatcher struct {
	log  *logrus.Logger
	subs []Subscriber
}

func NewDispatcher(log *logrus.Logger, subs ...Subscriber) *Dispatcher {
	return &Dispatcher{log: log, subs: subs}
}

func (d *Dispatcher) Dispatch(e Event) {
	for _, sub := range d.subs {
		if err := d.notify(sub, e); err != nil {
			d.log.WithError(err).WithField("event", e.Type()).Warn("event subscriber failed")
		}
	}
}

func (d *Dispatcher) notify(sub Subscriber, e Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("subscriber panic: %v", r)
		}
	}()
	return sub.Notify(e)
}
