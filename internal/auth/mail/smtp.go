package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

// SMTPConfig holds the outbound mail settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPDispatcher sends codes through a real SMTP server using go-mail.
type SMTPDispatcher struct {
	client *gomail.Client
	from   string
}

func NewSMTPDispatcher(cfg SMTPConfig) (*SMTPDispatcher, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client setup: %w", err)
	}
	return &SMTPDispatcher{client: client, from: cfg.From}, nil
}

func (d *SMTPDispatcher) SendVerificationCode(ctx context.Context, email, code string) error {
	body := fmt.Sprintf(
		"Your registration code is %s.\n\nIt expires shortly. If you did not request this, ignore this email.\n",
		code)
	return d.send(ctx, email, "Your registration code", body)
}

func (d *SMTPDispatcher) SendPasswordResetCode(ctx context.Context, email, code string) error {
	body := fmt.Sprintf(
		"Your password reset code is %s.\n\nIt expires shortly. If you did not request this, ignore this email.\n",
		code)
	return d.send(ctx, email, "Your password reset code", body)
}

func (d *SMTPDispatcher) send(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(d.from); err != nil {
		return fmt.Errorf("invalid sender address %q: %w", d.from, err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address %q: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	// Everything past message construction is the transport's problem.
	if err := d.client.DialAndSendWithContext(ctx, msg); err != nil {
		return NewTransportError(err)
	}
	return nil
}
