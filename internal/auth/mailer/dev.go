package mailer

import "github.com/frequencyai/member-platform/pkg/logger"

// DevMailer logs emails instead of sending them. Used when
// EMAIL_DEV_MODE is set or no MailerSend key is configured.
type DevMailer struct{}

func NewDevMailer() *DevMailer { return &DevMailer{} }

func (m *DevMailer) SendVerificationEmail(toEmail, toName, verifyURL string) error {
	logger.Info("dev mailer: verification email",
		"to", toEmail,
		"name", toName,
		"verify_url", verifyURL,
	)
	return nil
}
