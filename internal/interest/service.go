// Package interest relays client interest submissions: a best-effort
// store write followed by two sequential email sends.
package interest

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/google/uuid"

	"candidate-gateway/internal/common/airtable"
	"candidate-gateway/internal/common/errors"
	"candidate-gateway/internal/common/logger"
	"candidate-gateway/internal/common/mail"
	"candidate-gateway/internal/common/metrics"
)

// RecordStore is the slice of the store client this service needs.
type RecordStore interface {
	CreateRecord(ctx context.Context, tableID string, fields map[string]interface{}) (*airtable.Record, error)
}

// SNSPublisher publishes the optional admin text notification.
type SNSPublisher interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

type Service struct {
	store             RecordStore
	interestTable     string
	mailer            mail.Mailer
	notificationEmail string
	snsClient         SNSPublisher
	snsTopicARN       string
	logger            logger.Logger
}

type ServiceOptions struct {
	Store             RecordStore
	InterestTable     string
	Mailer            mail.Mailer
	NotificationEmail string
	SNSClient         SNSPublisher
	SNSTopicARN       string
	Logger            logger.Logger
}

func NewService(opts ServiceOptions) *Service {
	return &Service{
		store:             opts.Store,
		interestTable:     opts.InterestTable,
		mailer:            opts.Mailer,
		notificationEmail: opts.NotificationEmail,
		snsClient:         opts.SNSClient,
		snsTopicARN:       opts.SNSTopicARN,
		logger:            opts.Logger.WithFields(map[string]interface{}{"component": "interest-service"}),
	}
}

// Submit runs the full interest flow: log first (best-effort), then
// notify. A notification failure fails the submission even when the
// log write landed; a log failure alone never does.
func (s *Service) Submit(ctx context.Context, candidateID string, client ClientData) (*Receipt, error) {
	receipt := &Receipt{
		Reference:  uuid.NewString(),
		LogOutcome: s.LogInterest(ctx, candidateID, client),
	}

	if err := s.Notify(ctx, candidateID, client, receipt.Reference); err != nil {
		return receipt, err
	}
	return receipt, nil
}

// LogInterest writes one inquiry record with a server-generated
// timestamp. Failures are absorbed: they are logged, counted and
// reported in the outcome, but never escalate.
func (s *Service) LogInterest(ctx context.Context, candidateID string, client ClientData) LogOutcome {
	if s.store == nil || s.interestTable == "" {
		err := errors.NewConfigurationError("interest table not configured")
		s.logger.WithError(err).Warn("skipping interest log", nil)
		metrics.InterestLogFailures.Inc()
		return LogOutcome{Logged: false, Err: err}
	}

	fields := map[string]interface{}{
		fieldCandidateID: candidateID,
		fieldClientName:  client.Name,
		fieldOrg:         client.Organization,
		fieldEmail:       client.Email,
		fieldPhone:       client.Phone,
		fieldNotes:       client.Notes,
		fieldDate:        time.Now().UTC().Format(time.RFC3339),
	}

	if _, err := s.store.CreateRecord(ctx, s.interestTable, fields); err != nil {
		s.logger.WithError(err).Error("interest log write failed, continuing", map[string]interface{}{
			"candidateId": candidateID,
		})
		metrics.InterestLogFailures.Inc()
		return LogOutcome{Logged: false, Err: errors.NewStoreInsertError("interest expressions", err)}
	}
	return LogOutcome{Logged: true}
}

// Notify issues the two sequential sends: admin notice first, then the
// client confirmation. The pair is not atomic; a confirmation failure
// after a delivered admin notice still returns an error.
func (s *Service) Notify(ctx context.Context, candidateID string, client ClientData, reference string) error {
	if s.mailer == nil || s.notificationEmail == "" {
		return errors.NewConfigurationError("email backend not configured")
	}

	adminMsg := mail.Message{
		FromName: "Candidate Gateway Notifications",
		To:       s.notificationEmail,
		Subject:  fmt.Sprintf("New Interest Expression - %s for Candidate ID %s", client.Organization, candidateID),
		HTML:     buildAdminNotice(candidateID, client, reference),
	}
	if err := s.mailer.Send(ctx, adminMsg); err != nil {
		metrics.EmailsSentTotal.WithLabelValues("admin", "error").Inc()
		return errors.NewNotificationSendError("admin", err)
	}
	metrics.EmailsSentTotal.WithLabelValues("admin", "success").Inc()

	confirmMsg := mail.Message{
		FromName: "Candidate Gateway Team",
		To:       client.Email,
		Subject:  "Thank you for your interest",
		HTML:     buildConfirmation(client, reference),
	}
	if err := s.mailer.Send(ctx, confirmMsg); err != nil {
		metrics.EmailsSentTotal.WithLabelValues("confirmation", "error").Inc()
		return errors.NewNotificationSendError("confirmation", err)
	}
	metrics.EmailsSentTotal.WithLabelValues("confirmation", "success").Inc()

	s.publishAdminText(ctx, candidateID, client)
	return nil
}

// publishAdminText sends the optional SNS admin notification. Failures
// are logged only; the submission already succeeded.
func (s *Service) publishAdminText(ctx context.Context, candidateID string, client ClientData) {
	if s.snsClient == nil || s.snsTopicARN == "" {
		return
	}

	message := fmt.Sprintf("New interest expression from %s (%s) for candidate %s",
		client.Organization, client.Name, candidateID)
	_, err := s.snsClient.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(s.snsTopicARN),
		Message:  aws.String(message),
	})
	if err != nil {
		s.logger.WithError(err).Warn("SNS admin notification failed", map[string]interface{}{
			"candidateId": candidateID,
		})
	}
}

func buildAdminNotice(candidateID string, client ClientData, reference string) string {
	var b strings.Builder

	b.WriteString("<h2>New Interest Expression</h2>")
	b.WriteString("<h3>Client Information:</h3><ul>")
	b.WriteString(fmt.Sprintf("<li><strong>Name:</strong> %s</li>", html.EscapeString(client.Name)))
	b.WriteString(fmt.Sprintf("<li><strong>Organization:</strong> %s</li>", html.EscapeString(client.Organization)))
	b.WriteString(fmt.Sprintf("<li><strong>Email:</strong> %s</li>", html.EscapeString(client.Email)))
	if client.Phone != "" {
		b.WriteString(fmt.Sprintf("<li><strong>Phone:</strong> %s</li>", html.EscapeString(client.Phone)))
	}
	b.WriteString("</ul>")
	b.WriteString("<h3>Candidate Details:</h3><ul>")
	b.WriteString(fmt.Sprintf("<li><strong>Candidate ID:</strong> %s</li>", html.EscapeString(candidateID)))
	b.WriteString(fmt.Sprintf("<li><strong>Reference:</strong> %s</li>", html.EscapeString(reference)))
	b.WriteString("</ul>")
	if client.Notes != "" {
		b.WriteString(fmt.Sprintf("<h3>Additional Notes:</h3><p>%s</p>", html.EscapeString(client.Notes)))
	}
	b.WriteString("<hr><p><em>This notification was sent from the candidate dashboard.</em></p>")

	return b.String()
}

func buildConfirmation(client ClientData, reference string) string {
	var b strings.Builder

	b.WriteString("<h2>Thank you for your interest!</h2>")
	b.WriteString(fmt.Sprintf("<p>Dear %s,</p>", html.EscapeString(client.Name)))
	b.WriteString("<p>Thank you for expressing interest in one of our healthcare professionals.</p>")
	b.WriteString("<p>We have received your inquiry and our team will review your requirements and get back to you within 24 hours.</p>")
	b.WriteString("<h3>Your submission details:</h3><ul>")
	b.WriteString(fmt.Sprintf("<li><strong>Organization:</strong> %s</li>", html.EscapeString(client.Organization)))
	b.WriteString(fmt.Sprintf("<li><strong>Contact Email:</strong> %s</li>", html.EscapeString(client.Email)))
	if client.Phone != "" {
		b.WriteString(fmt.Sprintf("<li><strong>Phone:</strong> %s</li>", html.EscapeString(client.Phone)))
	}
	b.WriteString(fmt.Sprintf("<li><strong>Reference:</strong> %s</li>", html.EscapeString(reference)))
	b.WriteString("</ul>")
	b.WriteString("<p>If you have any urgent requirements or questions, please don't hesitate to contact us directly.</p>")
	b.WriteString("<p>Best regards,<br>The Team</p>")

	return b.String()
}
