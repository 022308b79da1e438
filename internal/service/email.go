package service

import (
	"context"
	"fmt"

	"civichub-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(ctx context.Context, to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}

	logger.Debug("Email sent", "to", to, "subject", subject)
	return nil
}

func (s *emailService) SendAffiliationRequestReceived(ctx context.Context, adminEmail, requesterName, orgName string) error {
	subject := fmt.Sprintf("New affiliation request for %s", orgName)
	body := fmt.Sprintf("Hello,\n\n%s has requested to join %s. Review the request in the admin area.\n\nBest regards,\nThe Civichub Team", requesterName, orgName)
	return s.send(ctx, adminEmail, "", subject, body)
}

func (s *emailService) SendAffiliationDecision(ctx context.Context, email, name, orgName, status, response string) error {
	subject := fmt.Sprintf("Your affiliation request for %s", orgName)
	body := fmt.Sprintf("Hello %s,\n\nYour request to join %s has been %s.", name, orgName, status)
	if response != "" {
		body += fmt.Sprintf("\n\nMessage from the organisation: %s", response)
	}
	body += "\n\nBest regards,\nThe Civichub Team"
	return s.send(ctx, email, name, subject, body)
}

func (s *emailService) SendOrganisationStatusNotification(ctx context.Context, email, name, orgName, status string) error {
	subject := fmt.Sprintf("Status update for %s", orgName)
	body := fmt.Sprintf("Hello %s,\n\nThe status of %s has changed to: %s.\n\nBest regards,\nThe Civichub Team", name, orgName, status)
	return s.send(ctx, email, name, subject, body)
}

func (s *emailService) SendPendingRequestsDigest(ctx context.Context, adminEmail, orgName string, pendingCount int) error {
	subject := fmt.Sprintf("Pending affiliation requests for %s", orgName)
	body := fmt.Sprintf("Hello,\n\n%s has %d affiliation request(s) awaiting review.\n\nBest regards,\nThe Civichub Team", orgName, pendingCount)
	return s.send(ctx, adminEmail, "", subject, body)
}
