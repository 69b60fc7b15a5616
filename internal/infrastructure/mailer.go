package infrastructure

import (
	"context"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"course-service/internal/config"
)

// Mailer sends transactional receipt emails. Sending is best-effort;
// without an API key it is a no-op.
type Mailer struct {
	apiKey      string
	senderEmail string
	senderName  string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		apiKey:      cfg.SendGridAPIKey,
		senderEmail: cfg.SenderEmail,
		senderName:  cfg.SenderName,
	}
}

func (m *Mailer) SendPaymentConfirmed(ctx context.Context, recipientEmail, courseName string) error {
	if m.apiKey == "" {
		return nil
	}

	from := mail.NewEmail(m.senderName, m.senderEmail)
	to := mail.NewEmail("", recipientEmail)
	subject := "Your payment was confirmed"

	plainTextContent := fmt.Sprintf("Your payment for %q was confirmed. The course is now in your library.", courseName)
	htmlContent := fmt.Sprintf("<strong>Your payment for %q was confirmed.</strong> The course is now in your library.", courseName)

	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)
	response, err := sendgrid.NewSendClient(m.apiKey).SendWithContext(ctx, message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid status %d", response.StatusCode)
	}
	log.Println("receipt email sent, status:", response.StatusCode)
	return nil
}
