package googleadsdomain

import (
	"fmt"
	"strings"
)

// ErrorResponse é o envelope de erro da API REST do Google Ads
type ErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
		Details []struct {
			Errors []struct {
				Message string `json:"message"`
			} `json:"errors"`
		} `json:"details"`
	} `json:"error"`
}

func (e *ErrorResponse) String() string {
	messages := make([]string, 0)
	for _, detail := range e.Error.Details {
		for _, err := range detail.Errors {
			messages = append(messages, err.Message)
		}
	}

	if len(messages) == 0 {
		return fmt.Sprintf("google ads api error %d (%s): %s", e.Error.Code, e.Error.Status, e.Error.Message)
	}

	return fmt.Sprintf("google ads api error %d (%s): %s", e.Error.Code, e.Error.Status, strings.Join(messages, "; "))
}
