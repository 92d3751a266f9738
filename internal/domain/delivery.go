package domain

type DeliveryStatus string

const (
	DeliveryStatusActive          DeliveryStatus = "Active"
	DeliveryStatusNoAdSets        DeliveryStatus = "No ad sets"
	DeliveryStatusAllAdSetsPaused DeliveryStatus = "All ad sets paused"
	DeliveryStatusNoActiveAds     DeliveryStatus = "No active ads"
	DeliveryStatusNotStarted      DeliveryStatus = "Not started"
	DeliveryStatusCheckFailed     DeliveryStatus = "Check failed"
)

// DeliveryCheck resume a estrutura de conjuntos de anúncios de uma campanha
type DeliveryCheck struct {
	TotalAdSets         int            `json:"total_adsets"`
	ActiveAdSets        int            `json:"active_adsets"`
	AdSetsWithActiveAds int            `json:"adsets_with_active_ads"`
	Status              DeliveryStatus `json:"status"`
}

// CanDeliver indica se a campanha consegue veicular impressões
func (d *DeliveryCheck) CanDeliver() bool {
	return d.Status == DeliveryStatusActive
}

// ResolveDeliveryStatus calcula o status a partir das contagens de conjuntos
func ResolveDeliveryStatus(total, active, withActiveAds int) DeliveryStatus {
	switch {
	case total == 0:
		return DeliveryStatusNoAdSets
	case active == 0:
		return DeliveryStatusAllAdSetsPaused
	case withActiveAds == 0:
		return DeliveryStatusNoActiveAds
	default:
		return DeliveryStatusActive
	}
}
