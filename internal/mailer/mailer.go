package mailer

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

// Mailer sends owner notifications over SMTP. All sends are best effort;
// callers log failures and move on.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func New(host string, port int, email, password string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, email, password),
		from:   email,
	}
}

func (m *Mailer) SendListingCreatedEmail(toEmail, listingTitle string) error {
	return m.send(toEmail, "New Listing Created",
		fmt.Sprintf("Your listing '%s' has been created successfully.", listingTitle))
}

func (m *Mailer) SendPromotionReceiptEmail(toEmail, listingTitle string, promotedUntil time.Time) error {
	return m.send(toEmail, "Your Listing Is Now Promoted",
		fmt.Sprintf("Your listing '%s' is promoted until %s. It will appear at the top of browse results until then.",
			listingTitle, promotedUntil.Format("January 2, 2006")))
}

func (m *Mailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}
