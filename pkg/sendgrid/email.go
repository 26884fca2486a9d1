package sendgrid

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type EmailService interface {
	Send(ctx context.Context, req *models.EmailNotificationRequest) error
	SendVerification(ctx context.Context, to, fullName, token string) error
	SendPasswordReset(ctx context.Context, to, fullName, token string) error
	GetSendGridClient() *sendgrid.Client
}

type emailService struct {
	client     *sendgrid.Client
	fromEmail  string
	fromName   string
	appBaseURL string
}

func NewEmailService(apiKey string, fromEmail string, fromName string, appBaseURL string) EmailService {
	return &emailService{
		client:     sendgrid.NewSendClient(apiKey),
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: strings.TrimRight(appBaseURL, "/"),
	}
}

func (e *emailService) Send(ctx context.Context, req *models.EmailNotificationRequest) error {
	from := mail.NewEmail(e.fromName, e.fromEmail)
	to := mail.NewEmail("", req.To)

	message := mail.NewV3Mail()
	message.SetFrom(from)

	personalization := mail.NewPersonalization()
	personalization.AddTos(to)

	for _, cc := range req.CC {
		personalization.AddCCs(mail.NewEmail("", cc))
	}

	for _, bcc := range req.BCC {
		personalization.AddBCCs(mail.NewEmail("", bcc))
	}

	personalization.Subject = req.Subject
	message.AddPersonalizations(personalization)

	message.AddContent(mail.NewContent("text/plain", req.Content))

	if req.HTMLContent != "" {
		message.AddContent(mail.NewContent("text/html", req.HTMLContent))
	}

	response, err := e.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	return nil
}

func (e *emailService) SendVerification(ctx context.Context, to, fullName, token string) error {
	link := e.link("/verify-email", token)

	return e.Send(ctx, &models.EmailNotificationRequest{
		To:          to,
		Subject:     "Verify your email address",
		Content:     fmt.Sprintf("Hi %s,\n\nConfirm your email address by opening %s\n", fullName, link),
		HTMLContent: fmt.Sprintf(`<p>Hi %s,</p><p><a href="%s">Confirm your email address</a></p>`, fullName, link),
	})
}

func (e *emailService) SendPasswordReset(ctx context.Context, to, fullName, token string) error {
	link := e.link("/reset-password", token)

	return e.Send(ctx, &models.EmailNotificationRequest{
		To:          to,
		Subject:     "Reset your password",
		Content:     fmt.Sprintf("Hi %s,\n\nReset your password by opening %s\nIf you did not ask for this, ignore this email.\n", fullName, link),
		HTMLContent: fmt.Sprintf(`<p>Hi %s,</p><p><a href="%s">Reset your password</a></p><p>If you did not ask for this, ignore this email.</p>`, fullName, link),
	})
}

func (e *emailService) link(path, token string) string {
	return e.appBaseURL + path + "?token=" + url.QueryEscape(token)
}

// GetSendGridClient provides access to the internal sendgrid.Client.
func (e *emailService) GetSendGridClient() *sendgrid.Client {
	return e.client
}
