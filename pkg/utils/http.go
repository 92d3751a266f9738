package utils

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// StatusError é retornado quando a resposta não é 2xx. O corpo é mantido para
// que o chamador interprete o erro da plataforma. URL não inclui a query, que
// pode conter tokens.
type StatusError struct {
	URL        string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Error on Request: %s status: %d", e.URL, e.StatusCode)
}

// MakeRequest executa a requisição e devolve o corpo quando o status é 2xx
func MakeRequest(ctx context.Context, client *http.Client, req *http.Request) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{URL: req.URL.Scheme + "://" + req.URL.Host + req.URL.Path, StatusCode: resp.StatusCode, Body: data}
	}

	return data, nil
}
