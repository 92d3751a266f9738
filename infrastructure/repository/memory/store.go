// Package memory guarda estado, histórico e anomalias em memória. Usado pelo
// modo --dry-run do CLI, que roda um ciclo completo sem banco de dados.
package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/vfg2006/budget-anomaly-monitor/infrastructure/repository"
	"github.com/vfg2006/budget-anomaly-monitor/internal/domain"
)

type Store struct {
	mu        sync.RWMutex
	states    map[domain.StateKey]domain.CurrentState
	snapshots []domain.CampaignSnapshot
	anomalies map[string]*domain.Anomaly
	order     []string
	accounts  []*domain.AdAccount
}

var (
	_ repository.StateRepository    = (*Store)(nil)
	_ repository.SnapshotRepository = (*Store)(nil)
	_ repository.AnomalyRepository  = (*Store)(nil)
)

func NewStore() *Store {
	return &Store{
		states:    make(map[domain.StateKey]domain.CurrentState),
		anomalies: make(map[string]*domain.Anomaly),
	}
}

// AddAccounts registra contas monitoradas, normalmente lidas direto das plataformas
func (s *Store) AddAccounts(accounts ...*domain.AdAccount) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = append(s.accounts, accounts...)
}

func (s *Store) ListAccounts(_ context.Context, platform *domain.Platform, availableStatus []domain.AdAccountStatus) ([]*domain.AdAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.AdAccount, 0, len(s.accounts))
	for _, account := range s.accounts {
		if platform != nil && account.Platform != *platform {
			continue
		}
		if len(availableStatus) > 0 && !slices.Contains(availableStatus, account.Status) {
			continue
		}
		result = append(result, account)
	}
	return result, nil
}

func (s *Store) GetState(_ context.Context, key domain.StateKey) (*domain.CurrentState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[key]
	if !ok {
		return nil, nil
	}
	return &state, nil
}

func (s *Store) UpsertStates(_ context.Context, states []*domain.CurrentState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, state := range states {
		s.states[state.Key()] = *state
	}
	return nil
}

func (s *Store) ListStates(_ context.Context, filters domain.StateFilters) ([]*domain.CurrentState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	states := make([]*domain.CurrentState, 0, len(s.states))
	for _, state := range s.states {
		if filters.Platform != nil && state.Platform != *filters.Platform {
			continue
		}
		if filters.AccountID != nil && state.AccountID != *filters.AccountID {
			continue
		}
		if filters.StaleBefore != nil && !state.IsStale(*filters.StaleBefore) {
			continue
		}
		st := state
		states = append(states, &st)
	}

	sort.Slice(states, func(i, j int) bool {
		if !states[i].LastUpdated.Equal(states[j].LastUpdated) {
			return states[i].LastUpdated.After(states[j].LastUpdated)
		}
		return states[i].CampaignID < states[j].CampaignID
	})

	return limit(states, filters.Limit), nil
}

func (s *Store) AppendSnapshots(_ context.Context, snapshots []*domain.CampaignSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, snapshot := range snapshots {
		s.snapshots = append(s.snapshots, *snapshot)
	}
	return nil
}

// Snapshots retorna uma cópia do histórico gravado
func (s *Store) Snapshots() []domain.CampaignSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.CampaignSnapshot, len(s.snapshots))
	copy(out, s.snapshots)
	return out
}

func (s *Store) AppendAnomalies(_ context.Context, anomalies []*domain.Anomaly) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, anomaly := range anomalies {
		if _, exists := s.anomalies[anomaly.AnomalyID]; exists {
			continue
		}
		a := *anomaly
		s.anomalies[a.AnomalyID] = &a
		s.order = append(s.order, a.AnomalyID)
	}
	return nil
}

func (s *Store) Acknowledge(_ context.Context, ack domain.Acknowledgment) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var affected int64
	for _, id := range ack.AnomalyIDs {
		anomaly, ok := s.anomalies[id]
		if !ok {
			continue
		}

		by, note, at := ack.By, ack.Note, ack.At
		anomaly.Acknowledged = true
		anomaly.AcknowledgedBy = &by
		anomaly.AcknowledgmentNote = &note
		anomaly.AcknowledgedAt = &at
		anomaly.FalsePositive = ack.FalsePositive
		affected++
	}
	return affected, nil
}

func (s *Store) MarkAlertSent(_ context.Context, anomalyIDs []string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range anomalyIDs {
		if anomaly, ok := s.anomalies[id]; ok {
			sentAt := at
			anomaly.AlertSent = true
			anomaly.AlertSentAt = &sentAt
		}
	}
	return nil
}

func (s *Store) GetAnomaliesByIDs(_ context.Context, anomalyIDs []string) ([]*domain.Anomaly, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	anomalies := make([]*domain.Anomaly, 0, len(anomalyIDs))
	for _, id := range anomalyIDs {
		if anomaly, ok := s.anomalies[id]; ok {
			a := *anomaly
			anomalies = append(anomalies, &a)
		}
	}
	return anomalies, nil
}

func (s *Store) ListAnomalies(_ context.Context, filters domain.AnomalyFilters) ([]*domain.Anomaly, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	anomalies := s.filtered(filters)
	sort.SliceStable(anomalies, func(i, j int) bool {
		return anomalies[i].DetectedTime.After(anomalies[j].DetectedTime)
	})

	return limit(anomalies, filters.Limit), nil
}

func (s *Store) Summary(_ context.Context, filters domain.AnomalyFilters) ([]*domain.AnomalySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type key struct {
		platform domain.Platform
		category domain.Category
	}

	grouped := make(map[key]*domain.AnomalySummary)
	for _, a := range s.filtered(filters) {
		k := key{a.Platform, a.Category}
		summary, ok := grouped[k]
		if !ok {
			summary = &domain.AnomalySummary{Platform: a.Platform, Category: a.Category}
			grouped[k] = summary
		}
		summary.Total++
		if a.Acknowledged {
			summary.Acknowledged++
		}
		if a.FalsePositive {
			summary.FalsePositives++
		}
		summary.MaxBudget = max(summary.MaxBudget, a.CurrentBudget)
	}

	summaries := make([]*domain.AnomalySummary, 0, len(grouped))
	for _, summary := range grouped {
		summaries = append(summaries, summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Platform != summaries[j].Platform {
			return summaries[i].Platform < summaries[j].Platform
		}
		return summaries[i].Category < summaries[j].Category
	})

	return summaries, nil
}

func (s *Store) AvailablePeriods(_ context.Context) (*domain.AvailablePeriods, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	periods := make([]string, 0)
	for _, id := range s.order {
		period := s.anomalies[id].DetectedTime.Format("01-2006")
		if _, ok := seen[period]; ok {
			continue
		}
		seen[period] = struct{}{}
		periods = append(periods, period)
	}

	return repository.BuildAvailablePeriods(periods), nil
}

func (s *Store) filtered(filters domain.AnomalyFilters) []*domain.Anomaly {
	anomalies := make([]*domain.Anomaly, 0, len(s.order))
	for _, id := range s.order {
		a := s.anomalies[id]
		if filters.Platform != nil && a.Platform != *filters.Platform {
			continue
		}
		if filters.Category != nil && a.Category != *filters.Category {
			continue
		}
		if filters.AccountID != nil && a.AccountID != *filters.AccountID {
			continue
		}
		if filters.Acknowledged != nil && a.Acknowledged != *filters.Acknowledged {
			continue
		}
		if filters.Since != nil && a.DetectedTime.Before(*filters.Since) {
			continue
		}
		if filters.Until != nil && !a.DetectedTime.Before(*filters.Until) {
			continue
		}
		cp := *a
		anomalies = append(anomalies, &cp)
	}
	return anomalies
}

func limit[T any](items []T, n uint64) []T {
	if n > 0 && uint64(len(items)) > n {
		return items[:n]
	}
	return items
}
