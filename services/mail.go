package services

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// MailSender is what the controllers depend on; tests swap in a fake.
type MailSender interface {
	Send(to, subject, body string, html bool) error
}

// Mailer sends mail through the configured SMTP account.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer builds a Mailer from EMAIL_USER/EMAIL_PASS/SMTP_HOST/SMTP_PORT.
func NewMailer() (*Mailer, error) {
	user := os.Getenv("EMAIL_USER")
	pass := os.Getenv("EMAIL_PASS")
	host := os.Getenv("SMTP_HOST")
	if user == "" || pass == "" || host == "" {
		return nil, fmt.Errorf("mail configuration missing")
	}

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   user,
	}, nil
}

func (m *Mailer) Send(to, subject, body string, html bool) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	if html {
		msg.SetBody("text/html", body)
	} else {
		msg.SetBody("text/plain", body)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}

var resetPassTemplate = template.Must(template.New("reset").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto;">
  <h2>Password Reset Request</h2>
  <p>Hi {{.Name}},</p>
  <p>We received a request to reset your password. Click the button below to choose a new one. The link expires in 15 minutes.</p>
  <p style="text-align: center;">
    <a href="{{.Link}}" style="background-color: #e74c3c; color: #fff; padding: 12px 24px; text-decoration: none; border-radius: 4px;">Reset Password</a>
  </p>
  <p>If you did not request this, you can safely ignore this email.</p>
</div>
`))

// ResetPasswordEmail renders the HTML body for the password-reset mail.
func ResetPasswordEmail(name, link string) (string, error) {
	var buf bytes.Buffer
	if err := resetPassTemplate.Execute(&buf, struct{ Name, Link string }{name, link}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
