package metaclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-anomaly-monitor/internal/config"
)

// ErrTokenRefreshed indica que a chamada falhou por token expirado e o token
// já foi renovado; a chamada pode ser repetida uma vez.
var ErrTokenRefreshed = errors.New("token expirado e renovado, por favor tente novamente")

// ErrReauthorizationRequired indica que o token não pode mais ser renovado
var ErrReauthorizationRequired = errors.New("token expirado, é necessário reautorizar o aplicativo")

// TokenManager gerencia o token de acesso da API do Meta
type TokenManager struct {
	cfg        config.Meta
	httpClient *http.Client

	mu          sync.RWMutex
	accessToken string
	expiresAt   time.Time

	now func() time.Time
}

// NewTokenManager cria o gerenciador a partir do token configurado. O token de
// longa duração tem prioridade sobre o de curta duração.
func NewTokenManager(cfg config.Meta, httpClient *http.Client) *TokenManager {
	token := cfg.AccessToken
	if cfg.LongLivedToken != "" {
		token = cfg.LongLivedToken
	}

	return &TokenManager{
		cfg:         cfg,
		httpClient:  httpClient,
		accessToken: token,
		expiresAt:   cfg.TokenExpiresAt,
		now:         time.Now,
	}
}

// AccessToken retorna o token corrente
func (tm *TokenManager) AccessToken() string {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.accessToken
}

// ExpiresAt retorna a expiração conhecida (zero quando desconhecida)
func (tm *TokenManager) ExpiresAt() time.Time {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.expiresAt
}

func (tm *TokenManager) canExchange() bool {
	return tm.cfg.AppID != "" && tm.cfg.AppSecret != ""
}

// InitToken valida o token na subida. Falhas são registradas mas não impedem
// a aplicação de subir.
func (tm *TokenManager) InitToken(ctx context.Context) {
	if tm.AccessToken() == "" {
		logrus.Warn("Token do Meta não configurado; a coleta do Meta ficará indisponível")
		return
	}

	if !tm.canExchange() {
		logrus.Info("App do Meta não configurado; usando o token informado sem renovação")
		return
	}

	if tm.cfg.LongLivedToken == "" {
		logrus.Info("Token de longa duração não encontrado. Iniciando processo de obtenção...")
		if err := tm.RefreshToken(ctx); err != nil {
			logrus.Errorf("Falha ao inicializar token de longa duração: %v", err)
		}
		return
	}

	logrus.Info("Validando token de longa duração existente...")
	if err := tm.ValidateExistingToken(ctx); err != nil {
		logrus.Errorf("Falha ao validar token existente: %v", err)
		if err := tm.RefreshToken(ctx); err != nil {
			logrus.Errorf("Falha ao renovar token: %v", err)
		}
	}
}

// StartAutoRefresh renova o token periodicamente até o contexto ser cancelado
func (tm *TokenManager) StartAutoRefresh(ctx context.Context) {
	if !tm.canExchange() {
		return
	}

	refreshInterval := 23 * time.Hour
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			logrus.Info("Iniciando renovação periódica do token da Meta")
			if err := tm.RefreshToken(ctx); err != nil {
				logrus.Errorf("Erro na renovação periódica do token: %v", err)
				ticker.Reset(1 * time.Hour)
			} else {
				ticker.Reset(refreshInterval)
			}
		case <-ctx.Done():
			logrus.Info("Encerrando renovação periódica do token")
			return
		}
	}
}

// ValidateExistingToken consulta a expiração do token atual
func (tm *TokenManager) ValidateExistingToken(ctx context.Context) error {
	expiresAt, valid, err := GetTokenExpiration(ctx, tm.httpClient, tm.AccessToken(), tm.cfg.AppID, tm.cfg.AppSecret, tm.cfg.URL)
	if err != nil {
		return err
	}
	if !valid {
		return fmt.Errorf("token de longa duração inválido")
	}

	tm.mu.Lock()
	if !expiresAt.IsZero() {
		tm.expiresAt = expiresAt.Add(-24 * time.Hour)
	}
	tm.mu.Unlock()

	logrus.WithField("expires_at", expiresAt.Format(time.RFC3339)).Info("Token de longa duração validado com sucesso")

	return nil
}

// RefreshToken obtém um novo token de longa duração a partir do atual
func (tm *TokenManager) RefreshToken(ctx context.Context) error {
	if !tm.canExchange() {
		return ErrReauthorizationRequired
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()

	tokenResponse, err := GetLongLivedToken(ctx, tm.httpClient, tm.accessToken, tm.cfg.AppID, tm.cfg.AppSecret, tm.cfg.URL)
	if err != nil {
		if containsTokenExpirationMessage(err.Error()) {
			logrus.Error("O token de acesso expirou e não pode ser renovado automaticamente")
			return fmt.Errorf("%w: %v", ErrReauthorizationRequired, err)
		}
		return fmt.Errorf("erro ao obter novo token de longa duração: %w", err)
	}

	if tokenResponse.AccessToken == tm.accessToken {
		logrus.Info("Token renovado, mas não mudou")
	}

	tm.accessToken = tokenResponse.AccessToken
	tm.expiresAt = CalculateTokenExpiration(tm.now(), tokenResponse.ExpiresIn)

	logrus.Infof("Token de longa duração atualizado com sucesso. Expira em: %s", tm.expiresAt.Format(time.RFC3339))

	return nil
}

// EnsureValidToken renova o token quando faltam menos de 24 horas para expirar
func (tm *TokenManager) EnsureValidToken(ctx context.Context) error {
	if tm.AccessToken() == "" {
		return fmt.Errorf("token do Meta não configurado")
	}

	expiresAt := tm.ExpiresAt()
	if expiresAt.IsZero() || !tm.canExchange() {
		return nil
	}

	if expiresAt.Sub(tm.now()) < 24*time.Hour {
		logrus.Info("Token expira em menos de 24 horas. Renovando proativamente...")
		return tm.RefreshToken(ctx)
	}

	return nil
}

// HandleExpiredToken tenta renovar o token após um erro de expiração e
// retorna ErrTokenRefreshed quando a chamada pode ser repetida.
func (tm *TokenManager) HandleExpiredToken(ctx context.Context) error {
	logrus.Warn("Token expirado detectado pela API Meta")

	if err := tm.RefreshToken(ctx); err != nil {
		return fmt.Errorf("erro ao renovar token expirado: %w", err)
	}

	return ErrTokenRefreshed
}

func containsTokenExpirationMessage(message string) bool {
	return strings.Contains(message, "Error validating access token") ||
		strings.Contains(message, "Session has expired") ||
		strings.Contains(message, "The session has been invalidated")
}
