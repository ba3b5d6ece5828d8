package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// MailerConfig carries the relay endpoint, sender credentials and the single
// recipient this run notifies.
type MailerConfig struct {
	Relay    string // SMTP host
	Port     int    // 0 means the library default (25)
	Username string
	Password string
	From     string
	To       string
}

// Mailer sends the notification as one SMTP submission.
type Mailer struct {
	client *mail.Client
	from   string
	to     string
}

var _ Notifier = (*Mailer)(nil)

func NewMailer(cfg MailerConfig) (*Mailer, error) {
	opts := []mail.Option{
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	}
	if cfg.Port > 0 {
		opts = append(opts, mail.WithPort(cfg.Port))
	}
	c, err := mail.NewClient(cfg.Relay, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &Mailer{client: c, from: cfg.From, to: cfg.To}, nil
}

func (m *Mailer) Send(ctx context.Context, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("%w: sender address: %v", ErrDeliveryFailed, err)
	}
	if err := msg.To(m.to); err != nil {
		return fmt.Errorf("%w: recipient address: %v", ErrDeliveryFailed, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	return nil
}

// Verify dials the relay and authenticates without sending anything. Used by
// the preflight tool.
func (m *Mailer) Verify(ctx context.Context) error {
	if err := m.client.DialWithContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	return m.client.Close()
}
