package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/budget-anomaly-monitor/internal/api/handler/mocks"
	"github.com/vfg2006/budget-anomaly-monitor/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestListStates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := mocks.NewMockStateReader(ctrl)

	t.Run("Campanhas paradas desde a data", func(t *testing.T) {
		mockReader.EXPECT().ListStates(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filters domain.StateFilters) ([]*domain.CurrentState, error) {
				require.NotNil(t, filters.StaleBefore)
				assert.Equal(t, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), *filters.StaleBefore)
				assert.Equal(t, "123", *filters.AccountID)
				assert.Equal(t, uint64(20), filters.Limit)
				return []*domain.CurrentState{{CampaignID: "c1"}}, nil
			})

		rec := httptest.NewRecorder()
		ListStates(mockReader).ServeHTTP(rec, newRequest(http.MethodGet, "/v1/states?account_id=123&stale_before=2024-05-10&limit=20", ""))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Limite inválido", func(t *testing.T) {
		rec := httptest.NewRecorder()
		ListStates(mockReader).ServeHTTP(rec, newRequest(http.MethodGet, "/v1/states?limit=0", ""))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Erro no banco", func(t *testing.T) {
		mockReader.EXPECT().ListStates(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

		rec := httptest.NewRecorder()
		ListStates(mockReader).ServeHTTP(rec, newRequest(http.MethodGet, "/v1/states", ""))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
