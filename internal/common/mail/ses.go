package mail

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	awsclient "candidate-gateway/internal/common/aws"
	"candidate-gateway/internal/common/config"
)

// SESMailer delivers mail through AWS SES.
type SESMailer struct {
	client    *awsclient.SESClient
	fromEmail string
}

func NewSESMailer(ctx context.Context, cfg config.NotificationConfig) (*SESMailer, error) {
	client, err := awsclient.NewSESClient(ctx, cfg.SES.Region)
	if err != nil {
		return nil, fmt.Errorf("failed to create SES client: %w", err)
	}
	return &SESMailer{
		client:    client,
		fromEmail: cfg.SES.FromEmail,
	}, nil
}

func (m *SESMailer) Send(ctx context.Context, msg Message) error {
	source := m.fromEmail
	if msg.FromName != "" {
		source = fmt.Sprintf("%q <%s>", msg.FromName, m.fromEmail)
	}

	input := &ses.SendEmailInput{
		Source: aws.String(source),
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(msg.Subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data:    aws.String(msg.HTML),
					Charset: aws.String("UTF-8"),
				},
			},
		},
	}

	if _, err := m.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("SES send failed: %w", err)
	}
	return nil
}
