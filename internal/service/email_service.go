package service

import (
	"fmt"

	"Hey_Blog/internal/pkg"

	"go.uber.org/zap"
)

// EmailService builds and dispatches the token-bearing mails. Sends are
// fire-and-forget: failures are logged, never surfaced to the request that
// triggered them.
type EmailService struct {
	cfg     pkg.SMTPConfig
	baseURL string
}

func NewEmailService(cfg pkg.SMTPConfig, baseURL string) *EmailService {
	return &EmailService{cfg: cfg, baseURL: baseURL}
}

func (s *EmailService) SendConfirmation(to, token string) {
	link := fmt.Sprintf("%s/api/auth/confirm/%s", s.baseURL, token)
	s.send(to, "Confirm Your Account",
		pkg.TokenLinkHTML("confirm your account", link, pkg.ConfirmTokenTTL))
}

func (s *EmailService) SendPasswordReset(to, token string) {
	link := fmt.Sprintf("%s/api/auth/reset/%s", s.baseURL, token)
	s.send(to, "Reset Your Password",
		pkg.TokenLinkHTML("reset your password", link, pkg.ResetTokenTTL))
}

func (s *EmailService) SendEmailChange(to, token string) {
	link := fmt.Sprintf("%s/api/auth/email/%s", s.baseURL, token)
	s.send(to, "Confirm Your Email Address",
		pkg.TokenLinkHTML("confirm your new email address", link, pkg.EmailChangeTokenTTL))
}

func (s *EmailService) send(to, subject, body string) {
	go func() {
		if err := pkg.SendEmail(s.cfg, to, subject, body); err != nil {
			pkg.Log.Warn("send email failed",
				zap.String("to", to), zap.String("subject", subject), zap.Error(err))
		}
	}()
}
