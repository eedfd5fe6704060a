package services

import (
	"fmt"
	"log"
	"os"

	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	client *resend.Client
}

var emailService *EmailService

// InitEmailService initializes the email service with Resend API
func InitEmailService() {
	apiKey := os.Getenv("RESEND_API_KEY")

	if apiKey == "" {
		log.Println("WARNING: RESEND_API_KEY not set. Email service will not be available.")
		return
	}

	emailService = &EmailService{
		client: resend.NewClient(apiKey),
	}

	log.Println("Email service initialized successfully with Resend")
}

// GetEmailService returns the singleton email service instance
func GetEmailService() *EmailService {
	return emailService
}

// SendIncidentAlertEmail notifies a manager that a high severity incident was
// recorded for a resident.
func (s *EmailService) SendIncidentAlertEmail(toEmail string, firstName string, residentName string, category string, severity string, description string) error {
	if s.client == nil {
		return fmt.Errorf("email service not initialized")
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
        }
        .header {
            text-align: center;
            padding: 20px 0;
            border-bottom: 2px solid #c59090;
        }
        .header h1 {
            color: #c59090;
            margin: 0;
        }
        .content {
            padding: 30px 0;
        }
        .incident-box {
            background-color: #fdf2f2;
            border: 2px solid #c59090;
            border-radius: 8px;
            padding: 20px;
            margin: 20px 0;
        }
        .severity {
            font-weight: bold;
            color: #b03030;
        }
        .footer {
            text-align: center;
            padding: 20px 0;
            border-top: 1px solid #ddd;
            font-size: 12px;
            color: #666;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>careledger</h1>
    </div>

    <div class="content">
        <h2>Incident Alert</h2>

        <p>Hi %s,</p>

        <p>A new incident has been recorded and needs your attention.</p>

        <div class="incident-box">
            <p><strong>Resident:</strong> %s</p>
            <p><strong>Category:</strong> %s</p>
            <p><strong>Severity:</strong> <span class="severity">%s</span></p>
            <p><strong>Description:</strong> %s</p>
        </div>

        <p>Please review the incident record and confirm any follow-up actions.</p>
    </div>

    <div class="footer">
        <p>This is an automated alert from careledger. Do not reply to this email.</p>
    </div>
</body>
</html>`, firstName, residentName, category, severity, description)

	fromEmail := os.Getenv("FROM_EMAIL")
	if fromEmail == "" {
		fromEmail = "alerts@careledger.app"
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("careledger <%s>", fromEmail),
		To:      []string{toEmail},
		Subject: fmt.Sprintf("Incident alert: %s (%s)", residentName, severity),
		Html:    htmlBody,
	}

	sent, err := s.client.Emails.Send(params)
	if err != nil {
		log.Printf("Failed to send incident alert email to %s: %v", toEmail, err)
		return fmt.Errorf("failed to send incident alert email: %w", err)
	}

	log.Printf("Incident alert email sent to %s (ID: %s)", toEmail, sent.Id)
	return nil
}
