package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kushtati/TRANSG/internal/apperrors"
	"github.com/kushtati/TRANSG/internal/core/domain"
	portssvc "github.com/kushtati/TRANSG/internal/core/ports/services"
	"github.com/kushtati/TRANSG/internal/platform/ai"
)

const assistantSystemPrompt = `Tu es l'assistant TRANSG, un expert du transit et du dédouanement en Guinée.
Tu aides les agents transitaires avec leurs questions sur les régimes douaniers, les droits et taxes
(DD 35%%, RTL 2%%, PC 0.5%%, CA 0.25%%, TVA 18%% sur valeur + DD, BFU forfaitaire), les documents de
transit (BL, facture, liste de colisage) et le suivi des dossiers au Port Autonome de Conakry.
Réponds de façon concise et pratique, en français. Tu parles à %s (%s) de la société en cours.`

// assistantService implements the AssistantSvcFacade interface. The backend
// is optional: a deployment without an API key serves everything else and
// reports the assistant as unavailable.
type assistantService struct {
	BaseService
	client *ai.MistralClient
}

// NewAssistantService creates a new instance of assistantService.
func NewAssistantService(client *ai.MistralClient) portssvc.AssistantSvcFacade {
	return &assistantService{
		client: client,
	}
}

// Enabled reports whether an assistant backend is configured.
func (s *assistantService) Enabled() bool {
	return s.client.Enabled()
}

// Chat sends one user message and returns the assistant's reply.
func (s *assistantService) Chat(ctx context.Context, identity domain.Identity, message string) (string, error) {
	if !s.Enabled() {
		return "", apperrors.ErrAssistantUnavailable
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return "", fmt.Errorf("%w: message must not be empty", apperrors.ErrValidation)
	}

	prompt := fmt.Sprintf(assistantSystemPrompt, identity.Name, identity.Role)
	reply, err := s.client.Chat(ctx, prompt, message)
	if err != nil {
		s.LogError(ctx, err, "assistant chat failed")
		return "", apperrors.ErrAssistantUnavailable
	}

	s.LogInfo(ctx, "assistant chat served", slog.String("user_id", identity.UserID), slog.Int("reply_chars", len(reply)))
	return reply, nil
}
