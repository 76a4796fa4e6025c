// services/email.go
package services

import "log"

// EmailSender is the transactional email contract: recipient, subject, HTML
// body.
type EmailSender interface {
	Send(to, subject, html string) error
}

// NoopEmailSender logs instead of sending. Kept as the default until a real
// provider is configured.
type NoopEmailSender struct{}

func (NoopEmailSender) Send(to, subject, html string) error {
	log.Printf("Email suppressed (no provider configured): to=%s subject=%q", to, subject)
	return nil
}
