package acknowledging

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/notifying"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ChatEvent é o corpo enviado pelo Google Chat quando um botão do cartão é
// clicado (type CARD_CLICKED).
type ChatEvent struct {
	Type    string       `json:"type"`
	Token   string       `json:"token,omitempty"`
	Action  ChatAction   `json:"action"`
	User    ChatUser     `json:"user"`
	Message *ChatMessage `json:"message,omitempty"`
}

type ChatAction struct {
	ActionMethodName string                      `json:"actionMethodName"`
	Parameters       []notifying.ActionParameter `json:"parameters"`
}

type ChatUser struct {
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

type ChatMessage struct {
	Name   string      `json:"name,omitempty"`
	Thread *ChatThread `json:"thread,omitempty"`
}

type ChatThread struct {
	Name string `json:"name,omitempty"`
}

// ChatResponse é a mensagem de texto devolvida na mesma thread do cartão
type ChatResponse struct {
	Text   string      `json:"text"`
	Thread *ChatThread `json:"thread,omitempty"`
}

// ChatActionParams são os parâmetros extraídos dos botões
type ChatActionParams struct {
	AnomalyIDs   []string
	Acknowledged bool
}

// ParseActionParameters lê anomaly_ids (lista JSON) e acknowledged ("true"/"false")
func ParseActionParameters(params []notifying.ActionParameter) (ChatActionParams, error) {
	var parsed ChatActionParams

	for _, param := range params {
		switch param.Key {
		case notifying.ParamAnomalyIDs:
			if err := json.UnmarshalFromString(param.Value, &parsed.AnomalyIDs); err != nil {
				return parsed, fmt.Errorf("%w: anomaly_ids: %v", ErrInvalidParameters, err)
			}
		case notifying.ParamAcknowledged:
			parsed.Acknowledged = strings.EqualFold(strings.TrimSpace(param.Value), "true")
		}
	}

	if len(parsed.AnomalyIDs) == 0 {
		return parsed, ErrNoAnomalyIDs
	}

	return parsed, nil
}

func (e *ChatEvent) userName() string {
	if e.User.DisplayName != "" {
		return e.User.DisplayName
	}
	return "Unknown User"
}

func (e *ChatEvent) userEmail() string {
	if e.User.Email != "" {
		return e.User.Email
	}
	return "unknown@email.com"
}

func (e *ChatEvent) thread() *ChatThread {
	if e.Message == nil {
		return nil
	}
	return e.Message.Thread
}
