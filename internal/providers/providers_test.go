package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vital-alert-service/internal/config"
	"vital-alert-service/internal/models"
)

type capturedRequest struct {
	apiKey string
	body   map[string]interface{}
}

// captureServer records every JSON POST it receives.
func captureServer(t *testing.T) (*httptest.Server, func() []capturedRequest) {
	t.Helper()
	var mu sync.Mutex
	var captured []capturedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode provider request: %v", err)
		}
		mu.Lock()
		captured = append(captured, capturedRequest{apiKey: r.Header.Get("X-Api-Key"), body: body})
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv, func() []capturedRequest {
		mu.Lock()
		defer mu.Unlock()
		return captured
	}
}

func payload() models.AlertMessagePayload {
	return models.AlertMessagePayload{
		Title:        "Cảnh báo chỉ số sinh tồn (HIGH)",
		Body:         "SpO2: 85 %",
		Severity:     models.SeverityHigh,
		SubjectID:    "subj-1",
		SubjectLabel: "Nguyễn Văn An",
		Timestamp:    time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestSMSSendsOneBatchedRequest(t *testing.T) {
	srv, captured := captureServer(t)
	sms := NewSMS(config.ChannelConfig{Endpoint: srv.URL, APIKey: "key-1"}, 10)

	recipients := []models.NotificationRecipient{
		{Phone: "+84901234567"},
		{Phone: "+84907654321"},
		{PushToken: "tok-only"}, // no phone, skipped by this channel
	}
	require.NoError(t, sms.Send(context.Background(), payload(), recipients))

	calls := captured()
	require.Len(t, calls, 1)
	assert.Equal(t, "key-1", calls[0].apiKey)
	assert.Equal(t, []interface{}{"+84901234567", "+84907654321"}, calls[0].body["to"])
	assert.Contains(t, calls[0].body["message"], "[HIGH] Nguyễn Văn An")
}

func TestSMSNoPhonesNoCall(t *testing.T) {
	srv, captured := captureServer(t)
	sms := NewSMS(config.ChannelConfig{Endpoint: srv.URL, APIKey: "key-1"}, 10)

	require.NoError(t, sms.Send(context.Background(), payload(), []models.NotificationRecipient{{PushToken: "tok"}}))
	assert.Empty(t, captured())
}

func TestSMSDisabledWithoutConfig(t *testing.T) {
	assert.False(t, NewSMS(config.ChannelConfig{}, 10).Enabled())
	assert.False(t, NewSMS(config.ChannelConfig{Endpoint: "http://sms"}, 10).Enabled())
	assert.False(t, NewSMS(config.ChannelConfig{APIKey: "k"}, 10).Enabled())
	assert.True(t, NewSMS(config.ChannelConfig{Endpoint: "http://sms", APIKey: "k"}, 10).Enabled())
}

func TestSMSPropagatesGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	sms := NewSMS(config.ChannelConfig{Endpoint: srv.URL, APIKey: "key-1"}, 10)
	err := sms.Send(context.Background(), payload(), []models.NotificationRecipient{{Phone: "+84901234567"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestPushBatchesTokens(t *testing.T) {
	srv, captured := captureServer(t)
	push := NewPush(config.ChannelConfig{Endpoint: srv.URL, APIKey: "key-2"})

	recipients := []models.NotificationRecipient{
		{PushToken: "tok-1"},
		{Phone: "+84901234567"}, // no token, skipped
		{PushToken: "tok-2"},
	}
	require.NoError(t, push.Send(context.Background(), payload(), recipients))

	calls := captured()
	require.Len(t, calls, 1)
	assert.Equal(t, []interface{}{"tok-1", "tok-2"}, calls[0].body["tokens"])
	assert.Equal(t, "Cảnh báo chỉ số sinh tồn (HIGH)", calls[0].body["title"])
}

func TestMessengerBatchesRecipientIDs(t *testing.T) {
	srv, captured := captureServer(t)
	messenger := NewMessenger(config.ChannelConfig{Endpoint: srv.URL, APIKey: "key-3"})

	recipients := []models.NotificationRecipient{
		{MessagingID: "user-1"},
		{MessagingID: "user-2"},
	}
	require.NoError(t, messenger.Send(context.Background(), payload(), recipients))

	calls := captured()
	require.Len(t, calls, 1)
	assert.Equal(t, []interface{}{"user-1", "user-2"}, calls[0].body["recipients"])
}
