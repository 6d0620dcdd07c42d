package email

import (
	"fmt"
	"os"

	"github.com/keighl/postmark"
)

// Sender delivers transactional mail. Auth flows depend on this interface so
// tests can swap in a recorder.
type Sender interface {
	SendVerificationEmail(toEmail, code, name string) error
	SendLoginOtpEmail(toEmail, otp, name string) error
}

// Service sends email through Postmark.
type Service struct {
	client *postmark.Client
	from   string
}

// NewService initializes a Postmark-backed Service from the environment.
func NewService() *Service {
	apiToken := os.Getenv("POSTMARK_API_TOKEN")
	if apiToken == "" {
		panic("POSTMARK_API_TOKEN is not set in environment variables")
	}
	return &Service{
		client: postmark.NewClient(apiToken, ""),
		from:   os.Getenv("EMAIL_SENDER"),
	}
}

func (s *Service) send(toEmail, subject, htmlContent string) error {
	_, err := s.client.SendEmail(postmark.Email{
		From:     s.from,
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlContent,
		TextBody: htmlContent,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *Service) SendVerificationEmail(toEmail, code, name string) error {
	greeting := "Hello"
	if name != "" {
		greeting = "Hello " + name
	}
	subject := "Verify Your Email"
	htmlContent := fmt.Sprintf(
		"<strong>%s,</strong><br><br>Your verification code is <strong>%s</strong>. It expires in 24 hours.",
		greeting, code,
	)
	return s.send(toEmail, subject, htmlContent)
}

func (s *Service) SendLoginOtpEmail(toEmail, otp, name string) error {
	greeting := "Hello"
	if name != "" {
		greeting = "Hello " + name
	}
	subject := "Your Login Code"
	htmlContent := fmt.Sprintf(
		"<strong>%s,</strong><br><br>Your one-time login code is <strong>%s</strong>. If you did not request it, you can ignore this email.",
		greeting, otp,
	)
	return s.send(toEmail, subject, htmlContent)
}
