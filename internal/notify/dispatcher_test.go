package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vital-alert-service/internal/logging"
	"vital-alert-service/internal/models"
)

type fakeChannel struct {
	name    string
	enabled bool
	err     error

	mu    sync.Mutex
	calls [][]models.NotificationRecipient
}

func (c *fakeChannel) Name() string  { return c.name }
func (c *fakeChannel) Enabled() bool { return c.enabled }

func (c *fakeChannel) Send(_ context.Context, _ models.AlertMessagePayload, recipients []models.NotificationRecipient) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, recipients)
	return c.err
}

func (c *fakeChannel) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

type fakeBroadcaster struct {
	mu       sync.Mutex
	payloads []models.AlertMessagePayload
}

func (b *fakeBroadcaster) BroadcastAlert(payload models.AlertMessagePayload) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.payloads = append(b.payloads, payload)
}

func testPayload() models.AlertMessagePayload {
	return models.AlertMessagePayload{
		Title:     "Cảnh báo chỉ số sinh tồn (HIGH)",
		Body:      "Huyết áp tâm thu: 190 mmHg",
		Severity:  models.SeverityHigh,
		SubjectID: "subj-1",
		Timestamp: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestDispatchSkipsDisabledChannels(t *testing.T) {
	sms := &fakeChannel{name: "sms", enabled: true}
	push := &fakeChannel{name: "push", enabled: false}
	messaging := &fakeChannel{name: "messaging", enabled: false}
	d := NewDispatcher(logging.NewNop(), sms, push, messaging)

	recipients := []models.NotificationRecipient{{Phone: "+84901234567"}}
	d.Dispatch(context.Background(), testPayload(), recipients)

	assert.Equal(t, 1, sms.callCount())
	assert.Equal(t, 0, push.callCount())
	assert.Equal(t, 0, messaging.callCount())
}

func TestDispatchIsolatesChannelFailures(t *testing.T) {
	failing := &fakeChannel{name: "sms", enabled: true, err: errors.New("gateway down")}
	healthy := &fakeChannel{name: "push", enabled: true}
	d := NewDispatcher(logging.NewNop(), failing, healthy)

	// Must return normally despite the failing channel.
	d.Dispatch(context.Background(), testPayload(), []models.NotificationRecipient{{Phone: "+84901234567", PushToken: "tok-1"}})

	assert.Equal(t, 1, failing.callCount())
	assert.Equal(t, 1, healthy.callCount())
}

func TestDispatchPassesFullRecipientSetToEachChannel(t *testing.T) {
	sms := &fakeChannel{name: "sms", enabled: true}
	d := NewDispatcher(logging.NewNop(), sms)

	recipients := []models.NotificationRecipient{
		{Phone: "+84901234567"},
		{PushToken: "tok-1"},
		{MessagingID: "user-9"},
	}
	d.Dispatch(context.Background(), testPayload(), recipients)

	require.Equal(t, 1, sms.callCount())
	assert.Equal(t, recipients, sms.calls[0])
}

func TestDispatchFeedsBroadcaster(t *testing.T) {
	d := NewDispatcher(logging.NewNop())
	live := &fakeBroadcaster{}
	d.SetBroadcaster(live)

	d.Dispatch(context.Background(), testPayload(), nil)

	require.Len(t, live.payloads, 1)
	assert.Equal(t, "subj-1", live.payloads[0].SubjectID)
}

func TestDispatchWithNoChannels(t *testing.T) {
	d := NewDispatcher(logging.NewNop())
	d.Dispatch(context.Background(), testPayload(), []models.NotificationRecipient{{Phone: "+84901234567"}})
}
