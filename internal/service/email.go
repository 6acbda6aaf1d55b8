package service

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
)

// EmailService sends transactional mail over SMTP. When SMTP is not
// configured (development, tests) it logs and drops the message instead
// of failing the calling operation.
type EmailService struct {
	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	fromEmail    string
	publicURL    string
}

var _ Mailer = (*EmailService)(nil)

// NewEmailService creates an EmailService from the environment.
func NewEmailService(publicURL string) *EmailService {
	return &EmailService{
		smtpHost:     os.Getenv("SMTP_HOST"),
		smtpPort:     os.Getenv("SMTP_PORT"),
		smtpUsername: os.Getenv("SMTP_USERNAME"),
		smtpPassword: os.Getenv("SMTP_PASSWORD"),
		fromEmail:    os.Getenv("EMAIL_FROM"),
		publicURL:    publicURL,
	}
}

// SendVerificationEmail mails the account verification link.
func (s *EmailService) SendVerificationEmail(to, token string) error {
	if s.smtpHost == "" {
		log.Printf("SMTP not configured, skipping verification email to %s", to)
		return nil
	}

	link := fmt.Sprintf("%s/api/auth/verify/%s", s.publicURL, token)
	body := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Verify email\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n"+
			`<a href="%s" target="_blank">Click verify email</a>`+"\r\n",
		s.fromEmail, to, link,
	)

	addr := fmt.Sprintf("%s:%s", s.smtpHost, s.smtpPort)
	auth := smtp.PlainAuth("", s.smtpUsername, s.smtpPassword, s.smtpHost)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, []byte(body)); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}
