// Package mailer delivers transactional mail.  Delivery goes through the
// Resend HTTP API when an API key is configured, through plain SMTP when a
// host is configured, and falls back to logging the message when neither
// is set so local development works without credentials.
package mailer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/smtp"

	"github.com/iliyamo/sport-venue-booking/internal/config"
)

// Mailer sends a single HTML message.  The queue consumer depends on this
// interface so tests can capture messages instead of sending them.
type Mailer interface {
	Send(to, subject, html string) error
}

// New picks the delivery mode from the config.
func New(cfg config.MailConfig) Mailer {
	switch {
	case cfg.SMTPHost != "":
		return &smtpMailer{cfg: cfg}
	case cfg.ResendAPIKey != "":
		return &resendMailer{cfg: cfg}
	default:
		return &logMailer{}
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendMailer struct {
	cfg config.MailConfig
}

func (m *resendMailer) Send(to, subject, html string) error {
	body := resendRequest{
		From:    m.cfg.From,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequest(http.MethodPost, "https://api.resend.com/emails", bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.cfg.ResendAPIKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("resend api status %d", resp.StatusCode)
	}
	return nil
}

type smtpMailer struct {
	cfg config.MailConfig
}

func (m *smtpMailer) Send(to, subject, html string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		m.cfg.From, to, subject, html)
	addr := m.cfg.SMTPHost + ":" + m.cfg.SMTPPort
	var a smtp.Auth
	if m.cfg.SMTPUser != "" {
		a = smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPass, m.cfg.SMTPHost)
	}
	if err := smtp.SendMail(addr, a, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// logMailer is the no-credentials fallback.
type logMailer struct{}

func (m *logMailer) Send(to, subject, html string) error {
	log.Printf("mailer: no delivery configured, would send to=%s subject=%q", to, subject)
	return nil
}
