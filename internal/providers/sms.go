package providers

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/time/rate"

	"vital-alert-service/internal/config"
	"vital-alert-service/internal/models"
	"vital-alert-service/internal/notify"
	"vital-alert-service/pkg/webhook"
)

// SMS delivers rendered text messages through the configured SMS gateway in
// one batched request per dispatch. A shared rate limiter protects the
// gateway quota across concurrent dispatches.
type SMS struct {
	cfg     config.ChannelConfig
	limiter *rate.Limiter
	client  *http.Client
}

func NewSMS(cfg config.ChannelConfig, ratePerSecond int) *SMS {
	if ratePerSecond <= 0 {
		ratePerSecond = 10
	}
	return &SMS{
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(float64(ratePerSecond)), ratePerSecond),
	}
}

func (s *SMS) Name() string { return "sms" }

func (s *SMS) Enabled() bool { return s.cfg.Enabled() }

type smsRequest struct {
	To      []string `json:"to"`
	Message string   `json:"message"`
}

func (s *SMS) Send(ctx context.Context, payload models.AlertMessagePayload, recipients []models.NotificationRecipient) error {
	var phones []string
	for _, r := range recipients {
		if r.Phone != "" {
			phones = append(phones, r.Phone)
		}
	}
	if len(phones) == 0 {
		return nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("sms rate limit: %w", err)
	}

	req := smsRequest{
		To:      phones,
		Message: notify.RenderSMS(payload),
	}
	return webhook.Post(ctx, s.client, s.cfg.Endpoint, s.cfg.APIKey, req)
}
