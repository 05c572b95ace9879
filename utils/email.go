package utils

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
)

// SendGridMailer sends transactional email through SendGrid
type SendGridMailer struct {
	APIKey    string
	FromName  string
	FromEmail string
	Logger    logrus.FieldLogger
}

// SendEmail sends an email using SendGrid
func (m *SendGridMailer) SendEmail(ctx context.Context, toName, toEmail, subject, textContent, htmlContent string) error {
	if m.APIKey == "" {
		return fmt.Errorf("SENDGRID_API_KEY is not set in environment variables")
	}

	from := mail.NewEmail(m.FromName, m.FromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, textContent, htmlContent)
	client := sendgrid.NewSendClient(m.APIKey)

	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("error sending email to %s: %w", toEmail, err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d, body: %s", response.StatusCode, response.Body)
	}

	m.logger().WithFields(logrus.Fields{"to": toEmail, "status": response.StatusCode}).Info("email sent")
	return nil
}

func (m *SendGridMailer) logger() logrus.FieldLogger {
	if m.Logger == nil {
		return logrus.StandardLogger()
	}
	return m.Logger
}
