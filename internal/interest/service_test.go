package interest

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candidate-gateway/internal/common/airtable"
	stderrors "candidate-gateway/internal/common/errors"
	"candidate-gateway/internal/common/logger"
	"candidate-gateway/internal/common/mail"
)

type mockStore struct {
	CreateFunc func(ctx context.Context, tableID string, fields map[string]interface{}) (*airtable.Record, error)
	calls      int
}

func (m *mockStore) CreateRecord(ctx context.Context, tableID string, fields map[string]interface{}) (*airtable.Record, error) {
	m.calls++
	return m.CreateFunc(ctx, tableID, fields)
}

type mockMailer struct {
	SendFunc func(ctx context.Context, msg mail.Message) error
	sent     []mail.Message
}

func (m *mockMailer) Send(ctx context.Context, msg mail.Message) error {
	m.sent = append(m.sent, msg)
	if m.SendFunc != nil {
		return m.SendFunc(ctx, msg)
	}
	return nil
}

type mockSNS struct {
	PublishFunc func(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
	calls       int
}

func (m *mockSNS) Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error) {
	m.calls++
	return m.PublishFunc(ctx, input)
}

func testClient() ClientData {
	return ClientData{
		Name:         "Jane Doe",
		Organization: "Acme Clinic",
		Email:        "jane@acme.example",
		Phone:        "+353 1 234 5678",
		Notes:        "Urgent requirement",
	}
}

func newService(store RecordStore, mailer mail.Mailer) *Service {
	return NewService(ServiceOptions{
		Store:             store,
		InterestTable:     "Interest Expressions",
		Mailer:            mailer,
		NotificationEmail: "admin@example.com",
		Logger:            logger.NewNoOpLogger(),
	})
}

func TestLogInterest_WritesTimestampedRecord(t *testing.T) {
	var captured map[string]interface{}
	store := &mockStore{
		CreateFunc: func(ctx context.Context, tableID string, fields map[string]interface{}) (*airtable.Record, error) {
			assert.Equal(t, "Interest Expressions", tableID)
			captured = fields
			return &airtable.Record{ID: "recLog"}, nil
		},
	}
	svc := newService(store, &mockMailer{})

	outcome := svc.LogInterest(context.Background(), "rec42", testClient())

	assert.True(t, outcome.Logged)
	assert.NoError(t, outcome.Err)
	assert.Equal(t, "rec42", captured[fieldCandidateID])
	assert.Equal(t, "Jane Doe", captured[fieldClientName])
	assert.Equal(t, "Acme Clinic", captured[fieldOrg])
	assert.NotEmpty(t, captured[fieldDate])
}

func TestLogInterest_FailureIsSwallowed(t *testing.T) {
	store := &mockStore{
		CreateFunc: func(ctx context.Context, tableID string, fields map[string]interface{}) (*airtable.Record, error) {
			return nil, errors.New("store down")
		},
	}
	svc := newService(store, &mockMailer{})

	outcome := svc.LogInterest(context.Background(), "rec42", testClient())

	assert.False(t, outcome.Logged)
	assert.Error(t, outcome.Err)
}

func TestSubmit_LogFailureDoesNotBlockNotification(t *testing.T) {
	store := &mockStore{
		CreateFunc: func(ctx context.Context, tableID string, fields map[string]interface{}) (*airtable.Record, error) {
			return nil, errors.New("store down")
		},
	}
	mailer := &mockMailer{}
	svc := newService(store, mailer)

	receipt, err := svc.Submit(context.Background(), "rec42", testClient())

	require.NoError(t, err)
	assert.False(t, receipt.LogOutcome.Logged)
	assert.NotEmpty(t, receipt.Reference)
	require.Len(t, mailer.sent, 2)
}

func TestSubmit_SendsAdminThenConfirmation(t *testing.T) {
	store := &mockStore{
		CreateFunc: func(ctx context.Context, tableID string, fields map[string]interface{}) (*airtable.Record, error) {
			return &airtable.Record{ID: "recLog"}, nil
		},
	}
	mailer := &mockMailer{}
	svc := newService(store, mailer)

	receipt, err := svc.Submit(context.Background(), "rec42", testClient())

	require.NoError(t, err)
	assert.True(t, receipt.LogOutcome.Logged)
	require.Len(t, mailer.sent, 2)
	assert.Equal(t, "admin@example.com", mailer.sent[0].To)
	assert.Contains(t, mailer.sent[0].Subject, "Acme Clinic")
	assert.Contains(t, mailer.sent[0].HTML, "rec42")
	assert.Equal(t, "jane@acme.example", mailer.sent[1].To)
	assert.Contains(t, mailer.sent[1].HTML, "Jane Doe")
}

func TestSubmit_SecondSendFailureSurfaces(t *testing.T) {
	store := &mockStore{
		CreateFunc: func(ctx context.Context, tableID string, fields map[string]interface{}) (*airtable.Record, error) {
			return &airtable.Record{ID: "recLog"}, nil
		},
	}
	mailer := &mockMailer{}
	mailer.SendFunc = func(ctx context.Context, msg mail.Message) error {
		if len(mailer.sent) == 2 {
			return errors.New("relay rejected")
		}
		return nil
	}
	svc := newService(store, mailer)

	receipt, err := svc.Submit(context.Background(), "rec42", testClient())

	// admin notice went out, confirmation failed; no rollback
	require.Len(t, mailer.sent, 2)
	assert.True(t, receipt.LogOutcome.Logged)

	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeNotificationSendFailed, stdErr.Code)
}

func TestSubmit_NoMailerIsConfigErrorAfterLogging(t *testing.T) {
	store := &mockStore{
		CreateFunc: func(ctx context.Context, tableID string, fields map[string]interface{}) (*airtable.Record, error) {
			return &airtable.Record{ID: "recLog"}, nil
		},
	}
	svc := NewService(ServiceOptions{
		Store:         store,
		InterestTable: "Interest Expressions",
		Logger:        logger.NewNoOpLogger(),
	})

	receipt, err := svc.Submit(context.Background(), "rec42", testClient())

	// logging is attempted before the notification config check
	assert.Equal(t, 1, store.calls)
	assert.True(t, receipt.LogOutcome.Logged)

	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeConfigurationError, stdErr.Code)
}

func TestNotify_OptionalSNSFailureIsAbsorbed(t *testing.T) {
	snsClient := &mockSNS{
		PublishFunc: func(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error) {
			return nil, errors.New("topic gone")
		},
	}
	svc := NewService(ServiceOptions{
		Store: &mockStore{CreateFunc: func(ctx context.Context, tableID string, fields map[string]interface{}) (*airtable.Record, error) {
			return &airtable.Record{ID: "recLog"}, nil
		}},
		InterestTable:     "Interest Expressions",
		Mailer:            &mockMailer{},
		NotificationEmail: "admin@example.com",
		SNSClient:         snsClient,
		SNSTopicARN:       "arn:aws:sns:eu-west-1:123:interest",
		Logger:            logger.NewNoOpLogger(),
	})

	err := svc.Notify(context.Background(), "rec42", testClient(), "ref-1")

	assert.NoError(t, err)
	assert.Equal(t, 1, snsClient.calls)
}
