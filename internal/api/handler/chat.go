package handler

import (
	"crypto/subtle"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-anomaly-monitor/internal/usecases/acknowledging"
	"github.com/vfg2006/budget-anomaly-monitor/pkg/apiErrors"
)

const chatEventCardClicked = "CARD_CLICKED"

// ChatInteraction recebe os cliques nos botões dos cartões do Google Chat.
// O Chat exibe o texto da resposta na thread, então falhas de negócio
// retornam 200 com a mensagem de erro.
func ChatInteraction(service acknowledging.AcknowledgeService, verificationToken string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var event acknowledging.ChatEvent
		if !decodeBody(w, r, &event) {
			return
		}

		if verificationToken != "" && subtle.ConstantTimeCompare([]byte(event.Token), []byte(verificationToken)) != 1 {
			logrus.WithField("user", event.User.Email).Warn("Callback do Google Chat com token inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Token de verificação inválido", nil)
			return
		}

		if event.Type != chatEventCardClicked {
			writeJSON(w, http.StatusOK, acknowledging.ChatResponse{Text: "Unknown action"})
			return
		}

		resp, err := service.HandleChatEvent(r.Context(), &event)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"action": event.Action.ActionMethodName,
				"user":   event.User.Email,
				"error":  err.Error(),
			}).Warn("Erro ao processar ação do Google Chat")
		}

		if resp == nil {
			resp = &acknowledging.ChatResponse{Text: "❌ Error processing request"}
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
