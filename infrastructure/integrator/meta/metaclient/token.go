package metaclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-anomaly-monitor/pkg/utils"
)

// TokenResponse representa a resposta da API do Meta ao trocar um token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type debugTokenResponse struct {
	Data struct {
		IsValid   bool  `json:"is_valid"`
		ExpiresAt int64 `json:"expires_at"`
	} `json:"data"`
}

// GetLongLivedToken troca um token de curta duração por um de longa duração
func GetLongLivedToken(ctx context.Context, client *http.Client, shortLivedToken, appID, appSecret, apiURL string) (*TokenResponse, error) {
	if shortLivedToken == "" {
		return nil, fmt.Errorf("token de acesso não pode ser vazio")
	}

	params := url.Values{}
	params.Add("grant_type", "fb_exchange_token")
	params.Add("client_id", appID)
	params.Add("client_secret", appSecret)
	params.Add("fb_exchange_token", shortLivedToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL+"/oauth/access_token?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	body, err := utils.MakeRequest(ctx, client, req)
	if err != nil {
		return nil, fmt.Errorf("erro ao obter token de longa duração: %w", describeError(err))
	}

	var tokenResp TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta: %w", err)
	}

	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("token retornado pela API é vazio")
	}

	logrus.Infof("Token de longa duração obtido com sucesso. Expira em %s.", FormatDuration(tokenResp.ExpiresIn))

	return &tokenResp, nil
}

// GetTokenExpiration consulta o debug_token e retorna a expiração do token.
// Tokens de usuário de sistema retornam expires_at 0 (não expiram).
func GetTokenExpiration(ctx context.Context, client *http.Client, token, appID, appSecret, apiURL string) (time.Time, bool, error) {
	params := url.Values{}
	params.Add("input_token", token)
	params.Add("access_token", appID+"|"+appSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL+"/debug_token?"+params.Encode(), nil)
	if err != nil {
		return time.Time{}, false, err
	}

	body, err := utils.MakeRequest(ctx, client, req)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("erro ao obter informações de debug do token: %w", describeError(err))
	}

	var response debugTokenResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return time.Time{}, false, fmt.Errorf("erro ao decodificar resposta: %w", err)
	}

	if response.Data.ExpiresAt == 0 {
		return time.Time{}, response.Data.IsValid, nil
	}

	return time.Unix(response.Data.ExpiresAt, 0), response.Data.IsValid, nil
}

// FormatDuration formata a duração em segundos para um formato legível
func FormatDuration(seconds int64) string {
	duration := time.Duration(seconds) * time.Second
	days := duration / (24 * time.Hour)
	hours := (duration % (24 * time.Hour)) / time.Hour
	minutes := (duration % time.Hour) / time.Minute

	return fmt.Sprintf("%d dias, %d horas e %d minutos", days, hours, minutes)
}

// CalculateTokenExpiration antecipa a expiração em um dia para renovar antes
func CalculateTokenExpiration(now time.Time, expiresIn int64) time.Time {
	buffer := int64(24 * 60 * 60)
	safeExpiresIn := expiresIn - buffer

	if safeExpiresIn < 0 {
		safeExpiresIn = expiresIn / 2
	}

	return now.Add(time.Duration(safeExpiresIn) * time.Second)
}
