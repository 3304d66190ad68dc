package pkg

import (
	"crypto/tls"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

const MailSubjectPrefix = "[Hey] "

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func SendEmail(cfg SMTPConfig, to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", MailSubjectPrefix+subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	return d.DialAndSend(m)
}

// TokenLinkHTML is the shared body for confirmation / reset / email-change
// mails: an action line, the link carrying the token, and the validity window.
func TokenLinkHTML(action, link string, ttl time.Duration) string {
	mins := int(ttl.Minutes())
	return fmt.Sprintf(
		`<p>Hello,</p><p>To %s, follow this link:</p><p><a href="%s">%s</a></p><p>The link is valid for %d minutes. If you did not request this, ignore this message.</p>`,
		action, link, link, mins)
}
