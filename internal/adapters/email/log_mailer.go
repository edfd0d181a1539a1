package email

import (
	"context"
	"log/slog"

	"github.com/SscSPs/docflow_backend/internal/core/ports/infrastructure"
)

// LogMailer records emails in the log instead of sending them. Used when SMTP is not configured.
type LogMailer struct {
	logger *slog.Logger
}

var _ infrastructure.Mailer = (*LogMailer)(nil)

func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, e infrastructure.Email) error {
	names := make([]string, 0, len(e.Attachments))
	for _, a := range e.Attachments {
		names = append(names, a.FileName)
	}
	m.logger.InfoContext(ctx, "Email delivery skipped (no SMTP relay configured)",
		slog.String("to", e.To),
		slog.String("subject", e.Subject),
		slog.Any("attachments", names),
	)
	return nil
}
