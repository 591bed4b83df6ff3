package mail

import (
	"fmt"
	"net/smtp"

	"reviewhub/internal/config"
)

// Sender delivers confirmation codes out-of-band. Delivery is best-effort: a
// failed send must never roll back already-committed user state.
type Sender interface {
	SendConfirmationCode(to, code string) error
}

type smtpSender struct {
	addr string
	auth smtp.Auth
	from string
}

func NewSMTPSender(cfg *config.Config) Sender {
	var auth smtp.Auth
	if cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)
	}
	return &smtpSender{
		addr: fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		auth: auth,
		from: cfg.EmailFrom,
	}
}

func (s *smtpSender) SendConfirmationCode(to, code string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Your confirmation code\r\n\r\nYour confirmation code: %s\r\n",
		s.from, to, code,
	)
	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send confirmation email: %w", err)
	}
	return nil
}
