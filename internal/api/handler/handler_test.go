package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/budget-anomaly-monitor/internal/domain"
	"github.com/vfg2006/budget-anomaly-monitor/pkg/apiErrors"
	"github.com/vfg2006/budget-anomaly-monitor/pkg/middleware"
)

func newRequest(method, target, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	return httptest.NewRequest(method, target, reader)
}

func withClaims(req *http.Request, claims *domain.Claims) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUser, claims))
}

func withParams(req *http.Request, params ...httprouter.Param) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), httprouter.ParamsKey, httprouter.Params(params)))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()

	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}
