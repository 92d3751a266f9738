package detecting

import (
	"context"

	"github.com/vfg2006/budget-anomaly-monitor/internal/domain"
)

// StateReader lê o último estado conhecido de uma campanha. Retorna nil, nil
// quando a campanha nunca foi vista.
type StateReader interface {
	GetState(ctx context.Context, key domain.StateKey) (*domain.CurrentState, error)
}

// DeliveryChecker consulta se a campanha possui conjuntos e anúncios ativos
type DeliveryChecker interface {
	CheckDelivery(ctx context.Context, campaign *domain.Campaign) (*domain.DeliveryCheck, error)
}
