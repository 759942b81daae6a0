package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailService delivers generated child credentials to supervisors via
// Amazon SES. It is optional; without a configured sender it silently
// skips every send.
type EmailService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
}

// NewEmailService creates a new email service. An empty fromEmail
// yields a disabled service rather than an error.
func NewEmailService(awsRegion, fromEmail, fromName string) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)

	return &EmailService{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendChildCredentials emails a supervisor the login details generated
// for a newly registered child.
func (s *EmailService) SendChildCredentials(ctx context.Context, toEmail, supervisorName, childName, login, password string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): credentials to %s", toEmail)
		return nil
	}

	subject := fmt.Sprintf("Login details for %s", childName)
	textBody := fmt.Sprintf(
		"Hi %s,\n\n"+
			"A play account was created for %s.\n\n"+
			"Login ID: %s\n"+
			"Password: %s\n\n"+
			"Keep these details somewhere safe. The password is not shown again.\n",
		supervisorName, childName, login, password,
	)

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(textBody)},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send credentials email: %w", err)
	}

	return nil
}
