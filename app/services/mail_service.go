package services

import (
	"context"
	"fmt"

	"inkwell/config"

	mail "github.com/wneessen/go-mail"
)

// ContactMessage is a contact-form submission bound for the site owner.
type ContactMessage struct {
	Name    string
	Email   string
	Number  string
	Message string
}

func (m ContactMessage) Body() string {
	return fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\nMessage: %s\n",
		m.Name, m.Email, m.Number, m.Message)
}

// Mailer is what the contact controller depends on; tests substitute a
// fake.
type Mailer interface {
	SendContact(ctx context.Context, msg ContactMessage) error
}

// MailService submits contact messages over SMTP with STARTTLS.
// Credentials and the recipient come from configuration, never from the
// source.
type MailService struct{ cfg config.SMTP }

func NewMailService(cfg config.SMTP) *MailService { return &MailService{cfg: cfg} }

func (s *MailService) SendContact(ctx context.Context, msg ContactMessage) error {
	m := mail.NewMsg()
	if err := m.From(s.cfg.From); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := m.To(s.cfg.To); err != nil {
		return fmt.Errorf("mail to: %w", err)
	}
	m.Subject("Blog Message")
	m.SetBodyString(mail.TypeTextPlain, msg.Body())

	client, err := mail.NewClient(s.cfg.Host,
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.User),
		mail.WithPassword(s.cfg.Pass),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(s.cfg.Timeout),
	)
	if err != nil {
		return fmt.Errorf("mail client: %w", err)
	}
	// The context bounds the whole dial-and-send so a stalled relay
	// cannot pin the request worker.
	return client.DialAndSendWithContext(ctx, m)
}
