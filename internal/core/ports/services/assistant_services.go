package services

import (
	"context"

	"github.com/kushtati/TRANSG/internal/core/domain"
)

// AssistantSvcFacade defines the interface for the AI assistant collaborator.
type AssistantSvcFacade interface {
	// Enabled reports whether an assistant backend is configured.
	Enabled() bool

	// Chat sends one user message and returns the assistant's reply.
	// Returns apperrors.ErrAssistantUnavailable when no backend is
	// configured.
	Chat(ctx context.Context, identity domain.Identity, message string) (string, error)
}
