// Package notify delivers outbound mail on a fire-and-forget basis.
// Senders enqueue and move on; delivery failures are logged, never
// surfaced to the request that caused them.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"
)

type Mail struct {
	To      string
	Subject string
	Body    string
}

type Sender interface {
	Send(m *Mail) error
}

type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (s *SMTPSender) Send(m *Mail) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/plain", m.Body)

	return s.dialer.DialAndSend(msg)
}

type Notifier struct {
	logger *slog.Logger
	sender Sender
	ch     chan *Mail
}

func New(sender Sender, queueSize int) *Notifier {
	return &Notifier{
		logger: slog.With("logger", "notify"),
		sender: sender,
		ch:     make(chan *Mail, queueSize),
	}
}

// Enqueue hands the mail to the worker without blocking. A full queue
// drops the mail; the invite record is already durable, so the caller
// still reports success.
func (n *Notifier) Enqueue(m *Mail) {
	if n == nil || m == nil {
		return
	}

	select {
	case n.ch <- m:
	default:
		n.logger.Warn("notification queue full, dropping mail", slog.String("to", m.To))
	}
}

func (n *Notifier) Start(ctx context.Context) {
	n.logger.Info("notification worker started")

	for {
		select {
		case m := <-n.ch:
			if err := n.sender.Send(m); err != nil {
				n.logger.Error("error sending mail", slog.String("to", m.To), slog.Any("error", err))
			}
		case <-ctx.Done():
			n.logger.Info("notification worker stopped")
			return
		}
	}
}

// InviteMail builds the invitation message for a trip invite token.
func InviteMail(email, tripName, token string) *Mail {
	return &Mail{
		To:      email,
		Subject: fmt.Sprintf("Trip invite: %s", tripName),
		Body:    fmt.Sprintf("You are invited. Accept: /api/invites/accept?token=%s", token),
	}
}
