package pkg

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"time"

	"yatube/internal/config"

	"gopkg.in/gomail.v2"
)

// Mailer 发送 html 邮件
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type SMTPMailer struct {
	cfg    config.SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{ServerName: cfg.Host}
	return &SMTPMailer{cfg: cfg, dialer: d}
}

func (m *SMTPMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	return m.dialer.DialAndSend(msg)
}

// LogMailer 未配置 smtp 时只记日志
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	slog.InfoContext(ctx, "mail not sent, smtp disabled", "to", to, "subject", subject, "body", htmlBody)
	return nil
}

// NewMailer smtp.host 为空时退化为 LogMailer
func NewMailer(cfg config.SMTPConfig) Mailer {
	if cfg.Host == "" {
		return LogMailer{}
	}
	return NewSMTPMailer(cfg)
}

func ResetCodeHTML(username, code string, ttl time.Duration) string {
	return fmt.Sprintf(`<p>Здравствуйте, %s!</p><p>Код для сброса пароля на Yatube: <b style="font-size:18px;">%s</b>.</p><p>Код действителен %d минут. Если вы не запрашивали сброс, просто проигнорируйте это письмо.</p>`,
		username, code, int(ttl.Minutes()))
}
