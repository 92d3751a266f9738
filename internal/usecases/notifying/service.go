package notifying

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-anomaly-monitor/internal/config"
	"github.com/vfg2006/budget-anomaly-monitor/internal/domain"
)

var ErrSenderNotConfigured = errors.New("notification sender not configured")

// Sender entrega o cartão ao canal de alertas
type Sender interface {
	Send(ctx context.Context, message *ChatMessage) error
}

// NotifyError indica que a renderização funcionou mas a entrega falhou
type NotifyError struct {
	Platform domain.Platform
	Count    int
	Err      error
}

func (e *NotifyError) Error() string {
	return fmt.Sprintf("failed to notify %d %s anomalies: %v", e.Count, e.Platform, e.Err)
}

func (e *NotifyError) Unwrap() error {
	return e.Err
}

type Notifier interface {
	Notify(ctx context.Context, platform domain.Platform, anomalies []*domain.Anomaly, now time.Time) (bool, error)
}

type Service struct {
	sender  Sender
	options CardOptions
}

// NewService cria o notificador. sender nil desativa o envio.
func NewService(sender Sender, cfg config.GoogleChat) *Service {
	return &Service{
		sender: sender,
		options: CardOptions{
			MaxCriticalItems: cfg.MaxCriticalItems,
			MaxNewItems:      cfg.MaxNewItems,
		},
	}
}

// Notify envia um único cartão com as anomalias da plataforma. Retorna true
// quando o cartão foi entregue. Não há nova tentativa em caso de falha.
func (s *Service) Notify(ctx context.Context, platform domain.Platform, anomalies []*domain.Anomaly, now time.Time) (bool, error) {
	message := BuildCard(platform, anomalies, now, s.options)
	if message == nil {
		return false, nil
	}

	if s.sender == nil {
		logrus.WithField("platform", platform).Warn("Envio de alertas desativado: webhook não configurado")
		return false, ErrSenderNotConfigured
	}

	if err := s.sender.Send(ctx, message); err != nil {
		logrus.WithFields(logrus.Fields{
			"platform":  platform,
			"anomalies": len(anomalies),
			"error":     err.Error(),
		}).Error("Falha ao enviar alerta para o Google Chat")
		return false, &NotifyError{Platform: platform, Count: len(anomalies), Err: err}
	}

	logrus.WithFields(logrus.Fields{
		"platform":  platform,
		"anomalies": len(anomalies),
	}).Info("Alerta enviado para o Google Chat")

	return true, nil
}
