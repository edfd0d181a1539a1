package infrastructure

import "context"

// Attachment is a file sent along with an email.
type Attachment struct {
	FileName    string
	ContentType string
	Content     []byte
}

// Email is a transactional message.
type Email struct {
	To          string
	ToName      string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Mailer delivers transactional email.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}
