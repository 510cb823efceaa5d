package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/kushtati/TRANSG/internal/platform/config"
)

// Mailer sends the transactional mail of the auth flows. Implementations must
// be safe for concurrent use.
type Mailer interface {
	// SendVerificationCode delivers the 6-digit code to a freshly registered
	// or re-registered address.
	SendVerificationCode(ctx context.Context, to string, name string, code string) error

	// SendWelcome greets a user whose email just got verified.
	SendWelcome(ctx context.Context, to string, name string) error
}

// SMTPMailer delivers mail through a plain SMTP relay with STARTTLS handled
// by the relay (port 587).
type SMTPMailer struct {
	addr     string
	auth     smtp.Auth
	from     string
	validity string
}

// NewSMTPMailer builds a mailer from the SMTP_* configuration.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		addr:     cfg.SMTPHost + ":" + cfg.SMTPPort,
		auth:     smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost),
		from:     cfg.SMTPFrom,
		validity: fmt.Sprintf("%d", int(cfg.VerificationCodeTTL.Minutes())),
	}
}

func (m *SMTPMailer) SendVerificationCode(ctx context.Context, to string, name string, code string) error {
	subject := "Votre code de vérification TRANSG"
	body := fmt.Sprintf(
		"Bonjour %s,\r\n\r\n"+
			"Votre code de vérification est : %s\r\n\r\n"+
			"Ce code expire dans %s minutes.\r\n\r\n"+
			"L'équipe TRANSG",
		name, code, m.validity,
	)

	msg := buildMessage(m.from, to, subject, body)
	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send verification mail: %w", err)
	}
	return nil
}

func (m *SMTPMailer) SendWelcome(ctx context.Context, to string, name string) error {
	subject := "Bienvenue sur TRANSG"
	body := fmt.Sprintf(
		"Bonjour %s,\r\n\r\n"+
			"Votre adresse email est confirmée. Vous pouvez maintenant gérer vos dossiers\r\n"+
			"de transit et suivre vos dépenses en douane depuis votre espace TRANSG.\r\n\r\n"+
			"L'équipe TRANSG",
		name,
	)

	msg := buildMessage(m.from, to, subject, body)
	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send welcome mail: %w", err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

// NoopMailer is used when no SMTP relay is configured. It logs the code so
// local development can complete the verification flow.
type NoopMailer struct {
	Logger *slog.Logger
}

func (m *NoopMailer) SendVerificationCode(ctx context.Context, to string, name string, code string) error {
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("SMTP not configured, verification code not mailed",
		slog.String("to", to),
		slog.String("code", code),
	)
	return nil
}

func (m *NoopMailer) SendWelcome(ctx context.Context, to string, name string) error {
	return nil
}
