package mailer

// Service sends the account emails the auth flow depends on. Delivery
// failures are reported to the caller, which decides whether they are
// fatal for the surrounding operation.
type Service interface {
	SendVerificationEmail(toEmail, toName, verifyURL string) error
}
