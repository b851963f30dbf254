// Package notify alerts the business when a conversation needs a human.
package notify

import (
	"context"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"

	"exterior_chat_backend/platform/config"
)

// SMTPSender delivers handoff alerts over SMTP via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
	alertTo   string
}

// NewSMTPSender creates the sender from the email configuration, or nil when
// email is disabled.
func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	if !cfg.IsEmailEnabled() {
		return nil
	}

	return &SMTPSender{
		host:      cfg.GetSMTPHost(),
		port:      cfg.GetSMTPPort(),
		username:  cfg.GetSMTPUsername(),
		password:  cfg.GetSMTPPassword(),
		fromName:  cfg.GetEmailFromName(),
		fromEmail: cfg.GetEmailFromAddress(),
		alertTo:   cfg.GetHandoffAlertAddress(),
	}
}

// SendHandoffAlert emails the captured contact to the business inbox.
func (s *SMTPSender) SendHandoffAlert(ctx context.Context, conversationID, contact, service string) error {
	if s == nil {
		return nil
	}

	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(s.alertTo); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject("Chat handoff: prospect waiting for a call")
	msg.SetBodyString(gomail.TypeTextPlain, renderHandoffAlert(conversationID, contact, service))

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func renderHandoffAlert(conversationID, contact, service string) string {
	body := "A prospect asked to speak with a person.\n\n" +
		"Contact: " + contact + "\n" +
		"Conversation: " + conversationID + "\n"
	if service != "" {
		body += "Service discussed: " + service + "\n"
	}
	body += "\nPlease reach out as soon as possible."
	return body
}
