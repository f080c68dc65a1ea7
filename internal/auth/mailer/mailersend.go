package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"
)

type MailerSend struct {
	client *mailersend.Mailersend
	from   mailersend.From
}

func NewMailerSend(apiKey, fromName, fromEmail string) (*MailerSend, error) {
	if apiKey == "" || fromEmail == "" {
		return nil, errors.New("mailersend requires MAILERSEND_API_KEY and MAILER_FROM")
	}
	return &MailerSend{
		client: mailersend.NewMailersend(apiKey),
		from:   mailersend.From{Name: fromName, Email: fromEmail},
	}, nil
}

func (m *MailerSend) SendVerificationEmail(toEmail, toName, verifyURL string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	text := fmt.Sprintf(
		"Hi %s,\n\nConfirm your Frequency AI account by opening the link below:\n\n%s\n\nThe link expires in a few hours.",
		toName, verifyURL,
	)
	html := fmt.Sprintf(
		`<p>Hi %s,</p><p>Confirm your Frequency AI account:</p><p><a href=%q>Verify my email</a></p>`,
		toName, verifyURL,
	)

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Name: toName, Email: toEmail}})
	msg.SetSubject("Confirm your Frequency AI account")
	msg.SetText(text)
	msg.SetHTML(html)

	res, err := m.client.Email.Send(ctx, msg)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("mailersend returned status %d", res.StatusCode)
	}
	if id := strings.TrimSpace(res.Header.Get("X-Message-Id")); id == "" {
		return errors.New("mailersend accepted the message without an id")
	}
	return nil
}
