package email

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/docflow_backend/internal/apperrors"
	"github.com/SscSPs/docflow_backend/internal/core/ports/infrastructure"
	"github.com/sony/gobreaker"
	"github.com/wneessen/go-mail"
)

// SMTPConfig configures the SMTP relay.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	Timeout  time.Duration
}

// sender is the subset of *mail.Client used here.
type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// SMTPMailer delivers email through an SMTP relay behind a circuit breaker.
type SMTPMailer struct {
	cfg     SMTPConfig
	client  sender
	breaker *gobreaker.CircuitBreaker
	logger  *slog.Logger
}

var _ infrastructure.Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer builds the go-mail client. Authentication is only enabled when a username is set.
func NewSMTPMailer(cfg SMTPConfig, logger *slog.Logger) (*SMTPMailer, error) {
	if cfg.Host == "" || cfg.From == "" {
		return nil, fmt.Errorf("smtp host and sender are required: %w", apperrors.ErrValidation)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(cfg.Timeout),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}
	return newSMTPMailer(cfg, client, logger), nil
}

func newSMTPMailer(cfg SMTPConfig, client sender, logger *slog.Logger) *SMTPMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &SMTPMailer{cfg: cfg, client: client, breaker: newBreaker("smtp"), logger: logger}
}

// Send implements infrastructure.Mailer. Every failure wraps apperrors.ErrUpstream.
func (m *SMTPMailer) Send(ctx context.Context, e infrastructure.Email) error {
	msg, err := m.buildMessage(e)
	if err != nil {
		return err
	}
	_, err = m.breaker.Execute(func() (interface{}, error) {
		return nil, m.client.DialAndSendWithContext(ctx, msg)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			m.logger.WarnContext(ctx, "SMTP circuit open, email not attempted", slog.String("to", e.To))
		}
		return fmt.Errorf("smtp send to %s: %v: %w", e.To, err, apperrors.ErrUpstream)
	}
	m.logger.InfoContext(ctx, "Email sent", slog.String("to", e.To), slog.Int("attachments", len(e.Attachments)))
	return nil
}

func (m *SMTPMailer) buildMessage(e infrastructure.Email) (*mail.Msg, error) {
	msg := mail.NewMsg()
	var err error
	if m.cfg.FromName != "" {
		err = msg.FromFormat(m.cfg.FromName, m.cfg.From)
	} else {
		err = msg.From(m.cfg.From)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", apperrors.ErrValidation)
	}
	if e.ToName != "" {
		err = msg.AddToFormat(e.ToName, e.To)
	} else {
		err = msg.To(e.To)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", e.To, apperrors.ErrValidation)
	}
	msg.Subject(e.Subject)
	msg.SetBodyString(mail.TypeTextHTML, e.HTML)
	for _, a := range e.Attachments {
		opts := []mail.FileOption{}
		if a.ContentType != "" {
			opts = append(opts, mail.WithFileContentType(mail.ContentType(a.ContentType)))
		}
		if err := msg.AttachReader(a.FileName, bytes.NewReader(a.Content), opts...); err != nil {
			return nil, fmt.Errorf("attach %s: %w", a.FileName, err)
		}
	}
	return msg, nil
}
