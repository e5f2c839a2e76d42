// Package dispatch decodes inbound frames and republishes each as "the
// latest event". Delivery is single-slot, last-write-wins: a consumer that
// falls behind observes only the newest event, never a backlog. That fits a
// client that re-renders from authoritative snapshots instead of applying
// deltas.
package dispatch

import (
	"go.uber.org/zap"

	"codenames-client/internal/protocol"
)

type Dispatcher struct {
	log    *zap.Logger
	latest chan protocol.Event
}

func New(log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		log:    log,
		latest: make(chan protocol.Event, 1),
	}
}

// HandleFrame decodes one received frame and publishes it. Malformed frames
// are logged and dropped; unrecognised kinds still flow through so the
// mounted screen can report them.
func (d *Dispatcher) HandleFrame(data []byte) {
	ev, err := protocol.DecodeEvent(data)
	if err != nil {
		d.log.Warn("dropping malformed frame", zap.Error(err))
		return
	}
	d.Publish(ev)
}

// Publish overwrites the slot. If an undelivered event is still pending it
// is discarded in favour of the newer one.
func (d *Dispatcher) Publish(ev protocol.Event) {
	for {
		select {
		case d.latest <- ev:
			return
		default:
		}
		select {
		case <-d.latest:
		default:
		}
	}
}

// Latest yields events as they become available. At most one is ever
// buffered.
func (d *Dispatcher) Latest() <-chan protocol.Event {
	return d.latest
}
