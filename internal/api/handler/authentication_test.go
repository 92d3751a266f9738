package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/budget-anomaly-monitor/internal/domain"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/authenticating"
	authmocks "github.com/vfg2006/budget-anomaly-monitor/internal/usecases/authenticating/mocks"
	"github.com/vfg2006/budget-anomaly-monitor/pkg/apiErrors"
	"github.com/vfg2006/budget-anomaly-monitor/pkg/middleware"
	"go.uber.org/mock/gomock"
)

func TestLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := authmocks.NewMockAuthenticator(ctrl)

	tests := []struct {
		name       string
		body       string
		setup      func()
		wantStatus int
		wantCode   string
	}{
		{
			name: "Login com sucesso",
			body: `{"email":"ana@empresa.com","password":"Senha@123"}`,
			setup: func() {
				mockAuth.EXPECT().LoginUser(gomock.Any(), "ana@empresa.com", "Senha@123").Return("jwt-token", nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "Senha incorreta",
			body: `{"email":"ana@empresa.com","password":"errada"}`,
			setup: func() {
				mockAuth.EXPECT().LoginUser(gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", authenticating.NewUserAuthError(authenticating.ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, 7, "Senha incorreta"))
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiErrors.ErrInvalidCredentials,
		},
		{
			name: "Usuário desativado",
			body: `{"email":"ana@empresa.com","password":"Senha@123"}`,
			setup: func() {
				mockAuth.EXPECT().LoginUser(gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", authenticating.NewUserAuthError(authenticating.ErrUserDisabled, apiErrors.ErrUserDisabled, 7, "Conta desativada"))
			},
			wantStatus: http.StatusForbidden,
			wantCode:   apiErrors.ErrUserDisabled,
		},
		{
			name:       "JSON inválido",
			body:       `email=ana`,
			setup:      func() {},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			rec := httptest.NewRecorder()
			Login(mockAuth).ServeHTTP(rec, newRequest(http.MethodPost, "/v1/login", tt.body))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
				return
			}

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "jwt-token", resp["token"])
		})
	}
}

func TestChangePassword_OutroUsuario(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := authmocks.NewMockAuthenticator(ctrl)

	req := newRequest(http.MethodPost, "/v1/users/9/change-password", `{"current_password":"a","new_password":"b"}`)
	req = withClaims(withParams(req, httprouter.Param{Key: "id", Value: "9"}), &domain.Claims{UserID: 2, UserRoleID: middleware.RoleAnalyst})

	rec := httptest.NewRecorder()
	ChangePassword(mockAuth).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, apiErrors.ErrInsufficientPrivilege, decodeError(t, rec).Code)
}

func TestGeneratePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := authmocks.NewMockAuthenticator(ctrl)
	mockAuth.EXPECT().ResetPassword(gomock.Any(), 1, 5).Return("N0va@Senha12", nil)

	req := newRequest(http.MethodPost, "/v1/users/5/generate-password", "")
	req = withClaims(withParams(req, httprouter.Param{Key: "id", Value: "5"}), &domain.Claims{UserID: 1, UserRoleID: middleware.RoleAdmin})

	rec := httptest.NewRecorder()
	GeneratePassword(mockAuth).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"password":"N0va@Senha12"}`, rec.Body.String())
}

func TestUpdateUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := authmocks.NewMockAuthenticator(ctrl)

	tests := []struct {
		name       string
		claims     *domain.Claims
		body       string
		setup      func()
		wantStatus int
	}{
		{
			name:   "Usuário edita o próprio nome",
			claims: &domain.Claims{UserID: 5, UserRoleID: middleware.RoleObserver},
			body:   `{"name":"Bruno"}`,
			setup: func() {
				mockAuth.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "Usuário comum não altera perfil",
			claims:     &domain.Claims{UserID: 5, UserRoleID: middleware.RoleObserver},
			body:       `{"role_id":1}`,
			setup:      func() {},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "Usuário comum não edita terceiros",
			claims:     &domain.Claims{UserID: 6, UserRoleID: middleware.RoleAnalyst},
			body:       `{"name":"Bruno"}`,
			setup:      func() {},
			wantStatus: http.StatusForbidden,
		},
		{
			name:   "Admin ativa usuário",
			claims: &domain.Claims{UserID: 1, UserRoleID: middleware.RoleAdmin},
			body:   `{"active":true}`,
			setup: func() {
				mockAuth.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			req := newRequest(http.MethodPut, "/v1/users/5", tt.body)
			req = withClaims(withParams(req, httprouter.Param{Key: "id", Value: "5"}), tt.claims)

			rec := httptest.NewRecorder()
			UpdateUser(mockAuth).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
