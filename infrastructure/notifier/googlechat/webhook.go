package googlechat

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-anomaly-monitor/internal/config"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/notifying"
	"github.com/vfg2006/budget-anomaly-monitor/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var ErrWebhookNotConfigured = errors.New("google chat webhook url not configured")

// WebhookClient publica mensagens em um espaço do Google Chat via webhook
type WebhookClient struct {
	webhookURL string
	httpClient *http.Client
}

func NewWebhookClient(cfg config.GoogleChat) *WebhookClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &WebhookClient{
		webhookURL: cfg.WebhookURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Send envia o cartão. Uma resposta diferente de 2xx é tratada como falha.
func (c *WebhookClient) Send(ctx context.Context, message *notifying.ChatMessage) error {
	if c.webhookURL == "" {
		return ErrWebhookNotConfigured
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("erro ao serializar mensagem: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	if _, err := utils.MakeRequest(ctx, c.httpClient, req); err != nil {
		var statusErr *utils.StatusError
		if errors.As(err, &statusErr) {
			return fmt.Errorf("google chat respondeu %d: %s", statusErr.StatusCode, string(statusErr.Body))
		}
		return fmt.Errorf("erro ao enviar mensagem ao google chat: %w", err)
	}

	logrus.WithField("bytes", len(payload)).Debug("Mensagem enviada ao Google Chat")

	return nil
}
