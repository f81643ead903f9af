package notify

import (
	"context"
	"sync"

	"vital-alert-service/internal/logging"
	"vital-alert-service/internal/models"
)

// Channel is one independent outbound notification transport. A Channel picks
// its own addresses out of the recipient list and sends one batched request
// for all of them.
type Channel interface {
	Name() string
	Enabled() bool
	Send(ctx context.Context, payload models.AlertMessagePayload, recipients []models.NotificationRecipient) error
}

// Broadcaster is an optional side output (the live WebSocket feed) fed on
// every dispatch, independent of the recipient list.
type Broadcaster interface {
	BroadcastAlert(payload models.AlertMessagePayload)
}

// Dispatcher fans one payload out to every configured channel. Channel
// failures are isolated: they reach the log, never the caller.
type Dispatcher struct {
	channels []Channel
	live     Broadcaster
	logger   *logging.Logger
}

func NewDispatcher(logger *logging.Logger, channels ...Channel) *Dispatcher {
	return &Dispatcher{channels: channels, logger: logger}
}

// SetBroadcaster attaches the live feed side output.
func (d *Dispatcher) SetBroadcaster(b Broadcaster) {
	d.live = b
}

// Dispatch sends the payload through all channels concurrently and returns
// after every channel attempt has finished. It never returns an error: a
// failed or disabled channel degrades to a log line, and the alert that
// triggered the dispatch stays recorded either way.
func (d *Dispatcher) Dispatch(ctx context.Context, payload models.AlertMessagePayload, recipients []models.NotificationRecipient) {
	if d.live != nil {
		d.live.BroadcastAlert(payload)
	}

	var wg sync.WaitGroup
	for _, ch := range d.channels {
		if !ch.Enabled() {
			d.logger.Warnf("Channel %s disabled (missing endpoint or API key), skipping", ch.Name())
			continue
		}
		wg.Add(1)
		go func(ch Channel) {
			defer wg.Done()
			if err := ch.Send(ctx, payload, recipients); err != nil {
				d.logger.Errorf("Channel %s delivery failed for subject %s: %v", ch.Name(), payload.SubjectID, err)
				return
			}
			d.logger.Infof("Channel %s delivered alert for subject %s", ch.Name(), payload.SubjectID)
		}(ch)
	}
	wg.Wait()
}
