package providers

import (
	"context"
	"net/http"

	"vital-alert-service/internal/config"
	"vital-alert-service/internal/models"
	"vital-alert-service/pkg/webhook"
)

// Messenger delivers the structured payload to the in-house messaging
// platform for every recipient with a messaging ID.
type Messenger struct {
	cfg    config.ChannelConfig
	client *http.Client
}

func NewMessenger(cfg config.ChannelConfig) *Messenger {
	return &Messenger{cfg: cfg}
}

func (m *Messenger) Name() string { return "messaging" }

func (m *Messenger) Enabled() bool { return m.cfg.Enabled() }

type messengerRequest struct {
	Recipients []string                   `json:"recipients"`
	Payload    models.AlertMessagePayload `json:"payload"`
}

func (m *Messenger) Send(ctx context.Context, payload models.AlertMessagePayload, recipients []models.NotificationRecipient) error {
	var ids []string
	for _, r := range recipients {
		if r.MessagingID != "" {
			ids = append(ids, r.MessagingID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	req := messengerRequest{Recipients: ids, Payload: payload}
	return webhook.Post(ctx, m.client, m.cfg.Endpoint, m.cfg.APIKey, req)
}
