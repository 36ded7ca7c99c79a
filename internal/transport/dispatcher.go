package transport

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Outbound is one message in a turn's send plan. The state machine decides
// the plan; the dispatcher decides pacing and ordering for the channel.
type Outbound struct {
	Body string

	// FeedbackEligible marks the message whose id becomes the session's
	// feedback-correlation target. Welcomes and acks are not eligible.
	FeedbackEligible bool
}

// Sent is a dispatched plan entry together with its channel message id.
type Sent struct {
	Outbound
	MessageID string
}

type Dispatcher struct {
	messenger Messenger
	pacing    time.Duration
}

func NewDispatcher(messenger Messenger, pacing time.Duration) *Dispatcher {
	return &Dispatcher{
		messenger: messenger,
		pacing:    pacing,
	}
}

// Dispatch sends the plan sequentially with a fixed pacing delay between
// messages so the channel preserves ordering. A transport failure aborts
// the remainder of the plan; messages already sent are returned alongside
// the error so the caller can still record them.
func (d *Dispatcher) Dispatch(ctx context.Context, to string, plan []Outbound) ([]Sent, error) {
	var sent []Sent

	for i, msg := range plan {
		if i > 0 && d.pacing > 0 {
			time.Sleep(d.pacing)
		}

		id, err := d.messenger.Send(ctx, to, msg.Body)
		if err != nil {
			log.Error().Err(err).Str("to", to).Int("planIndex", i).Msg("dispatch aborted")
			return sent, err
		}
		sent = append(sent, Sent{Outbound: msg, MessageID: id})
	}

	return sent, nil
}
