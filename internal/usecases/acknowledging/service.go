package acknowledging

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-anomaly-monitor/infrastructure/repository"
	"github.com/vfg2006/budget-anomaly-monitor/internal/domain"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/notifying"
	"github.com/vfg2006/budget-anomaly-monitor/pkg/apiErrors"
	"github.com/vfg2006/budget-anomaly-monitor/pkg/metrics"
	"github.com/vfg2006/budget-anomaly-monitor/pkg/utils"
)

// Mirror replica a confirmação no data warehouse
type Mirror interface {
	MirrorAcknowledgment(ctx context.Context, ack domain.Acknowledgment) error
}

type AcknowledgeService interface {
	Acknowledge(ctx context.Context, ack domain.Acknowledgment) (*AcknowledgeResult, error)
	HandleChatEvent(ctx context.Context, event *ChatEvent) (*ChatResponse, error)
}

type AcknowledgeResult struct {
	Requested     int       `json:"requested"`
	Updated       int64     `json:"updated"`
	FalsePositive bool      `json:"false_positive"`
	By            string    `json:"acknowledged_by"`
	At            time.Time `json:"acknowledged_at"`
}

type Service struct {
	anomalyRepository repository.AnomalyRepository
	mirror            Mirror
	now               func() time.Time
}

// NewService cria o serviço. mirror pode ser nil quando o warehouse está desativado.
func NewService(anomalyRepository repository.AnomalyRepository, mirror Mirror) *Service {
	return &Service{
		anomalyRepository: anomalyRepository,
		mirror:            mirror,
		now:               time.Now,
	}
}

// Acknowledge marca as anomalias informadas como confirmadas (ou falso
// positivo). Nenhuma outra anomalia é alterada.
func (s *Service) Acknowledge(ctx context.Context, ack domain.Acknowledgment) (*AcknowledgeResult, error) {
	ack.AnomalyIDs = uniqueIDs(ack.AnomalyIDs)
	if len(ack.AnomalyIDs) == 0 {
		return nil, NewAcknowledgeError(ErrNoAnomalyIDs, apiErrors.ErrMissingRequiredData, "Informe ao menos um anomaly_id")
	}
	if strings.TrimSpace(ack.By) == "" {
		return nil, NewAcknowledgeError(ErrMissingAuthor, apiErrors.ErrMissingRequiredData, "Informe quem está confirmando")
	}
	if ack.At.IsZero() {
		ack.At = s.now().UTC()
	}

	updated, err := s.anomalyRepository.Acknowledge(ctx, ack)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"anomaly_ids": ack.AnomalyIDs,
			"error":       err.Error(),
		}).Error("Erro ao confirmar anomalias")
		return nil, NewAcknowledgeError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao confirmar anomalias no banco de dados")
	}

	if updated == 0 {
		return nil, NewAcknowledgeError(ErrAnomaliesNotFound, apiErrors.ErrResourceNotFound, "Nenhuma anomalia encontrada para os ids informados")
	}

	metrics.RecordAcknowledgment(updated, ack.FalsePositive)

	if s.mirror != nil {
		if err := s.mirror.MirrorAcknowledgment(ctx, ack); err != nil {
			logrus.WithFields(logrus.Fields{
				"anomaly_ids": ack.AnomalyIDs,
				"error":       err.Error(),
			}).Warn("Falha ao replicar confirmação no warehouse")
		}
	}

	logrus.WithFields(logrus.Fields{
		"updated":        updated,
		"by":             ack.By,
		"false_positive": ack.FalsePositive,
	}).Info("Anomalias confirmadas")

	return &AcknowledgeResult{
		Requested:     len(ack.AnomalyIDs),
		Updated:       updated,
		FalsePositive: ack.FalsePositive,
		By:            ack.By,
		At:            ack.At,
	}, nil
}

// HandleChatEvent trata os botões do cartão de alerta. Erros de parâmetro são
// retornados; falhas de banco viram texto na thread.
func (s *Service) HandleChatEvent(ctx context.Context, event *ChatEvent) (*ChatResponse, error) {
	params, err := ParseActionParameters(event.Action.Parameters)
	if err != nil {
		return &ChatResponse{Text: "❌ No anomaly IDs provided", Thread: event.thread()}, err
	}

	switch event.Action.ActionMethodName {
	case notifying.ActionAcknowledge:
		return s.acknowledgeFromChat(ctx, event, params), nil
	case notifying.ActionViewDetails:
		return s.detailsFromChat(ctx, event, params), nil
	default:
		return &ChatResponse{Text: "❌ Unknown action", Thread: event.thread()},
			fmt.Errorf("%w: %s", ErrUnknownAction, event.Action.ActionMethodName)
	}
}

func (s *Service) acknowledgeFromChat(ctx context.Context, event *ChatEvent, params ChatActionParams) *ChatResponse {
	name := event.userName()

	ack := domain.Acknowledgment{
		AnomalyIDs:    params.AnomalyIDs,
		By:            event.userEmail(),
		FalsePositive: !params.Acknowledged,
	}
	if params.Acknowledged {
		ack.Note = fmt.Sprintf("Acknowledged via Google Chat by %s", name)
	} else {
		ack.Note = fmt.Sprintf("Marked as false positive by %s", name)
	}

	if _, err := s.Acknowledge(ctx, ack); err != nil {
		return &ChatResponse{Text: fmt.Sprintf("❌ Failed to update anomalies: %v", err), Thread: event.thread()}
	}

	text := fmt.Sprintf("✅ %d anomalies acknowledged by %s", len(params.AnomalyIDs), name)
	if !params.Acknowledged {
		text = fmt.Sprintf("✅ %d anomalies marked as false positive by %s", len(params.AnomalyIDs), name)
	}

	return &ChatResponse{Text: text, Thread: event.thread()}
}

func (s *Service) detailsFromChat(ctx context.Context, event *ChatEvent, params ChatActionParams) *ChatResponse {
	anomalies, err := s.anomalyRepository.GetAnomaliesByIDs(ctx, params.AnomalyIDs)
	if err != nil {
		logrus.WithField("error", err.Error()).Error("Erro ao buscar detalhes das anomalias")
		return &ChatResponse{Text: fmt.Sprintf("❌ Failed to retrieve details: %v", err), Thread: event.thread()}
	}

	if len(anomalies) == 0 {
		return &ChatResponse{Text: "❌ No anomaly details found", Thread: event.thread()}
	}

	return &ChatResponse{Text: FormatDetails(anomalies), Thread: event.thread()}
}

// FormatDetails monta o texto de detalhes exibido na thread
func FormatDetails(anomalies []*domain.Anomaly) string {
	var b strings.Builder
	b.WriteString("📊 *Anomaly Details:*\n\n")

	for _, a := range anomalies {
		fmt.Fprintf(&b, "*Campaign:* %s\n", a.CampaignName)
		fmt.Fprintf(&b, "*Account:* %s\n", a.AccountName)
		fmt.Fprintf(&b, "*Type:* %s\n", a.Category)
		fmt.Fprintf(&b, "*Message:* %s\n", a.Message)
		fmt.Fprintf(&b, "*Current Budget:* $%s\n", utils.FormatThousands(a.CurrentBudget))
		if a.PreviousBudget > 0 {
			fmt.Fprintf(&b, "*Previous Budget:* $%s\n", utils.FormatThousands(a.PreviousBudget))
		}
		fmt.Fprintf(&b, "*Detected:* %s\n", a.DetectedTime.Format(time.RFC3339))
		if a.Acknowledged && a.AcknowledgedBy != nil && a.AcknowledgedAt != nil {
			fmt.Fprintf(&b, "*Acknowledged by:* %s at %s\n", *a.AcknowledgedBy, a.AcknowledgedAt.Format(time.RFC3339))
		}
		b.WriteString("\n---\n\n")
	}

	return b.String()
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
