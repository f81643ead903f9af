package providers

import (
	"context"
	"net/http"

	"vital-alert-service/internal/config"
	"vital-alert-service/internal/models"
	"vital-alert-service/pkg/webhook"
)

// Push delivers the structured payload to the push provider for every
// recipient device token in one batched request.
type Push struct {
	cfg    config.ChannelConfig
	client *http.Client
}

func NewPush(cfg config.ChannelConfig) *Push {
	return &Push{cfg: cfg}
}

func (p *Push) Name() string { return "push" }

func (p *Push) Enabled() bool { return p.cfg.Enabled() }

type pushRequest struct {
	Tokens  []string                   `json:"tokens"`
	Title   string                     `json:"title"`
	Body    string                     `json:"body"`
	Payload models.AlertMessagePayload `json:"payload"`
}

func (p *Push) Send(ctx context.Context, payload models.AlertMessagePayload, recipients []models.NotificationRecipient) error {
	var tokens []string
	for _, r := range recipients {
		if r.PushToken != "" {
			tokens = append(tokens, r.PushToken)
		}
	}
	if len(tokens) == 0 {
		return nil
	}

	req := pushRequest{
		Tokens:  tokens,
		Title:   payload.Title,
		Body:    payload.Body,
		Payload: payload,
	}
	return webhook.Post(ctx, p.client, p.cfg.Endpoint, p.cfg.APIKey, req)
}
