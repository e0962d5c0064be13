package utils

import (
	"fmt"
	"os"

	"gopkg.in/gomail.v2"
)

// SendEmail delivers a plain-text message over SMTP. Callers treat
// failures as non-fatal: listing submission and moderation emails are
// best-effort and never fail the primary operation.
func SendEmail(to, subject, body string) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")
	smtpPort := 587
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		fmt.Sscanf(portStr, "%d", &smtpPort)
	}
	if smtpHost == "" {
		return fmt.Errorf("SMTP_HOST not configured")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", smtpUser)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPass)
	return d.DialAndSend(m)
}

// SubmissionEmailBody is the confirmation sent to an owner right after
// a listing lands in the moderation queue.
func SubmissionEmailBody(ownerName, title string) (subject, body string) {
	subject = "Your property listing has been received"
	body = fmt.Sprintf("Dear %s,\n\nYour listing %q has been received and is awaiting review. "+
		"You will be notified once it is approved.\n\nBest regards,\nEstateList", ownerName, title)
	return subject, body
}

// ModerationEmailBody is the notification sent when an admin approves
// or rejects a listing.
func ModerationEmailBody(ownerName, title string, approved bool) (subject, body string) {
	if approved {
		subject = "Your property listing is live"
		body = fmt.Sprintf("Dear %s,\n\nYour listing %q has been approved and is now visible to buyers.\n\nBest regards,\nEstateList", ownerName, title)
		return subject, body
	}
	subject = "Your property listing was not approved"
	body = fmt.Sprintf("Dear %s,\n\nYour listing %q was not approved. You can edit and resubmit it at any time.\n\nBest regards,\nEstateList", ownerName, title)
	return subject, body
}
