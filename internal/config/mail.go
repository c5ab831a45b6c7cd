package config

import "os"

// MailConfig selects how OTP mails are delivered.  When SMTPHost is set the
// mailer speaks SMTP directly; otherwise it posts to the Resend HTTP API
// using ResendAPIKey.  From is the sender address placed on every message.
type MailConfig struct {
    From         string
    ResendAPIKey string
    SMTPHost     string
    SMTPPort     string
    SMTPUser     string
    SMTPPass     string
}

// LoadMailConfig reads mail delivery settings.  All fields are optional; a
// completely empty config makes the mailer log the message instead of
// sending it, which keeps local development working without credentials.
func LoadMailConfig() MailConfig {
    return MailConfig{
        From:         getenv("MAIL_FROM", "admin@sanberdev.com"),
        ResendAPIKey: os.Getenv("RESEND_API_KEY"),
        SMTPHost:     os.Getenv("SMTP_HOST"),
        SMTPPort:     getenv("SMTP_PORT", "587"),
        SMTPUser:     os.Getenv("SMTP_USER"),
        SMTPPass:     os.Getenv("SMTP_PASS"),
    }
}

func getenv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}
