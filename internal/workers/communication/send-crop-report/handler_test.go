package sendcropreport

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"crop-planner/internal/common/errors"
	"crop-planner/internal/common/logger"
	"crop-planner/internal/farmer/farmertest"
	"crop-planner/internal/pipeline"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock AWS Services
// ==========================

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
	calls         []*ses.SendEmailInput
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.calls = append(m.calls, params)
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(ctx, params, optFns...)
	}
	return &ses.SendEmailOutput{MessageId: aws.String("ses-message-id")}, nil
}

type MockSNSService struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
	calls       []*sns.PublishInput
}

func (m *MockSNSService) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.calls = append(m.calls, params)
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, params, optFns...)
	}
	return &sns.PublishOutput{MessageId: aws.String("sns-message-id")}, nil
}

// ==========================
// Test Helper Functions
// ==========================

// 09:05 IST on 15 July 2024
var julyMorning = time.Date(2024, 7, 15, 3, 35, 0, 0, time.UTC)

func createTestConfig() *Config {
	kolkata, _ := time.LoadLocation("Asia/Kolkata")
	return &Config{
		EmailEnabled: true,
		SMSEnabled:   true,
		FromEmail:    "plans@cropplan.example",
		SenderID:     "CROPPLN",
		Timeout:      5 * time.Second,
		Location:     kolkata,
		Now:          func() time.Time { return julyMorning },
	}
}

func newTestHandler(t *testing.T, cfg *Config) (*Handler, *MockSESService, *MockSNSService) {
	sesMock := &MockSESService{}
	snsMock := &MockSNSService{}
	return NewHandler(cfg, sesMock, snsMock, logger.NewTestLogger(t), nil), sesMock, snsMock
}

// createTestInput carries the stage outputs of a full Punjab plan.
func createTestInput(t *testing.T, recipient Recipient) *Input {
	r := pipeline.Run(farmertest.Punjab(t), pipeline.WithMonth(7), pipeline.WithIDGenerator(func() string { return "report-1" }))
	return &Input{
		FarmerProfile:   farmertest.Document(t, farmertest.PunjabProfile()),
		ReportID:        r.ID,
		ReferenceMonth:  r.ReferenceMonth,
		Recommendations: r.Recommendation,
		RiskAnalysis:    r.Risk,
		FinancialPlan:   r.Finance,
		Recipient:       recipient,
	}
}

func createMockJob(t *testing.T, variables interface{}) entities.Job {
	raw, err := json.Marshal(variables)
	require.NoError(t, err)
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:                11001,
		Type:               TaskType,
		ProcessInstanceKey: 110010,
		Retries:            3,
		Variables:          string(raw),
	}}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_EmailAndSMS(t *testing.T) {
	h, sesMock, snsMock := newTestHandler(t, createTestConfig())

	out, err := h.Execute(context.Background(), createTestInput(t, Recipient{
		Email: "gurpreet@example.com",
		Phone: "+919876543210",
	}))
	require.NoError(t, err)

	assert.Equal(t, StatusSent, out.Status)
	assert.Equal(t, StatusSent, out.EmailStatus)
	assert.Equal(t, StatusSent, out.SMSStatus)
	assert.Equal(t, "report-1", out.ReportID)
	assert.NotEmpty(t, out.NotificationID)
	assert.Equal(t, "2024-07-15T03:35:00Z", out.SentAt)

	require.Len(t, sesMock.calls, 1)
	email := sesMock.calls[0]
	assert.Equal(t, []string{"gurpreet@example.com"}, email.Destination.ToAddresses)
	assert.Equal(t, "plans@cropplan.example", aws.ToString(email.Source))
	assert.Equal(t, "Crop plan for Gurpreet Singh", aws.ToString(email.Message.Subject.Data))

	body := aws.ToString(email.Message.Body.Text.Data)
	assert.Contains(t, body, "Top Crop: Mixed Vegetables\n")
	assert.Contains(t, body, "Total Investment: ₹90,000\n")
	assert.True(t, strings.HasSuffix(body, "Generated: 15/07/2024 09:05"), body)

	require.Len(t, snsMock.calls, 1)
	sms := snsMock.calls[0]
	assert.Equal(t, "+919876543210", aws.ToString(sms.PhoneNumber))
	assert.Equal(t, body, aws.ToString(sms.Message))
	assert.Equal(t, "CROPPLN", aws.ToString(sms.MessageAttributes["AWS.SNS.SMS.SenderID"].StringValue))
}

func TestHandler_Execute_Channels(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		recipient   Recipient
		status      string
		emailStatus string
		smsStatus   string
		emails      int
		publishes   int
	}{
		{
			name:        "email only recipient",
			recipient:   Recipient{Email: "gurpreet@example.com"},
			status:      StatusSent,
			emailStatus: StatusSent,
			smsStatus:   StatusDisabled,
			emails:      1,
		},
		{
			name:        "sms disabled in config",
			mutate:      func(c *Config) { c.SMSEnabled = false },
			recipient:   Recipient{Email: "gurpreet@example.com", Phone: "+919876543210"},
			status:      StatusSent,
			emailStatus: StatusSent,
			smsStatus:   StatusDisabled,
			emails:      1,
		},
		{
			name:        "everything disabled",
			mutate:      func(c *Config) { c.EmailEnabled, c.SMSEnabled = false, false },
			recipient:   Recipient{Email: "gurpreet@example.com", Phone: "+919876543210"},
			status:      StatusDisabled,
			emailStatus: StatusDisabled,
			smsStatus:   StatusDisabled,
		},
		{
			name:        "no contact details",
			status:      StatusDisabled,
			emailStatus: StatusDisabled,
			smsStatus:   StatusDisabled,
		},
		{
			name:        "sms through carrier gateway",
			mutate:      func(c *Config) { c.SMSGateway = true },
			recipient:   Recipient{Phone: "+91 98765-43210", Carrier: "Jio"},
			status:      StatusSent,
			emailStatus: StatusDisabled,
			smsStatus:   StatusSent,
			emails:      1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := createTestConfig()
			if tt.mutate != nil {
				tt.mutate(cfg)
			}
			h, sesMock, snsMock := newTestHandler(t, cfg)

			out, err := h.Execute(context.Background(), createTestInput(t, tt.recipient))
			require.NoError(t, err)

			assert.Equal(t, tt.status, out.Status)
			assert.Equal(t, tt.emailStatus, out.EmailStatus)
			assert.Equal(t, tt.smsStatus, out.SMSStatus)
			assert.Len(t, sesMock.calls, tt.emails)
			assert.Len(t, snsMock.calls, tt.publishes)
		})
	}
}

func TestHandler_Execute_GatewayAddress(t *testing.T) {
	cfg := createTestConfig()
	cfg.SMSGateway = true
	h, sesMock, _ := newTestHandler(t, cfg)

	_, err := h.Execute(context.Background(), createTestInput(t, Recipient{Phone: "+91 98765-43210", Carrier: "jio"}))
	require.NoError(t, err)

	require.Len(t, sesMock.calls, 1)
	assert.Equal(t, []string{"919876543210@sms.jio.com"}, sesMock.calls[0].Destination.ToAddresses)
}

func TestHandler_Execute_UnknownCarrierSendsNothing(t *testing.T) {
	cfg := createTestConfig()
	cfg.SMSGateway = true
	h, sesMock, snsMock := newTestHandler(t, cfg)

	_, err := h.Execute(context.Background(), createTestInput(t, Recipient{
		Email:   "gurpreet@example.com",
		Phone:   "+919876543210",
		Carrier: "pigeon",
	}))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeUnknownCarrier))
	assert.Empty(t, sesMock.calls)
	assert.Empty(t, snsMock.calls)

	res := h.errHandler.Resolve(createMockJob(t, nil), err)
	assert.False(t, res.Retry)
	assert.Equal(t, "NOTIFICATION_SEND_FAILED", res.BPMN.Code)
}

// ==========================
// Failure Tests
// ==========================

func TestHandler_Execute_PartialFailureStillSent(t *testing.T) {
	h, _, snsMock := newTestHandler(t, createTestConfig())
	snsMock.PublishFunc = func(context.Context, *sns.PublishInput, ...func(*sns.Options)) (*sns.PublishOutput, error) {
		return nil, fmt.Errorf("throttled")
	}

	out, err := h.Execute(context.Background(), createTestInput(t, Recipient{
		Email: "gurpreet@example.com",
		Phone: "+919876543210",
	}))
	require.NoError(t, err)
	assert.Equal(t, StatusSent, out.Status)
	assert.Equal(t, StatusSent, out.EmailStatus)
	assert.Equal(t, StatusFailed, out.SMSStatus)
}

func TestHandler_Execute_AllChannelsFailed(t *testing.T) {
	h, sesMock, snsMock := newTestHandler(t, createTestConfig())
	sesMock.SendEmailFunc = func(context.Context, *ses.SendEmailInput, ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
		return nil, fmt.Errorf("mail from domain not verified")
	}
	snsMock.PublishFunc = func(context.Context, *sns.PublishInput, ...func(*sns.Options)) (*sns.PublishOutput, error) {
		return nil, fmt.Errorf("throttled")
	}

	_, err := h.Execute(context.Background(), createTestInput(t, Recipient{
		Email: "gurpreet@example.com",
		Phone: "+919876543210",
	}))
	require.Error(t, err)

	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeNotificationSendFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
	assert.Contains(t, stdErr.Details, "throttled")

	res := h.errHandler.Resolve(createMockJob(t, nil), err)
	assert.True(t, res.Retry)
	assert.Equal(t, int32(2), res.Retries)
}

// ==========================
// Input Parsing Tests
// ==========================

func TestHandler_ParseInput(t *testing.T) {
	h, _, _ := newTestHandler(t, createTestConfig())

	want := createTestInput(t, Recipient{Email: "gurpreet@example.com", Phone: "+919876543210"})
	got, err := h.parseInput(createMockJob(t, want))
	require.NoError(t, err)

	assert.Equal(t, want.Recipient, got.Recipient)
	assert.Equal(t, want.ReportID, got.ReportID)
	assert.Equal(t, want.FinancialPlan, got.FinancialPlan)
}

func TestHandler_ParseInput_Errors(t *testing.T) {
	tests := []struct {
		name      string
		variables map[string]interface{}
		field     string
	}{
		{
			name:      "missing profile",
			variables: map[string]interface{}{"recipient": map[string]string{"email": "a@b.co"}},
			field:     "farmerProfile",
		},
		{
			name: "invalid email",
			variables: map[string]interface{}{
				"farmerProfile": farmertest.PunjabProfile(),
				"recipient":     map[string]string{"email": "not-an-email"},
			},
			field: "recipient.email",
		},
		{
			name: "invalid phone",
			variables: map[string]interface{}{
				"farmerProfile": farmertest.PunjabProfile(),
				"recipient":     map[string]string{"phone": "12"},
			},
			field: "recipient.phone",
		},
	}

	h, _, _ := newTestHandler(t, createTestConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.parseInput(createMockJob(t, tt.variables))
			require.Error(t, err)

			stdErr, ok := errors.AsStandardError(err)
			require.True(t, ok)
			assert.Equal(t, errors.ErrCodeInvalidInput, stdErr.Code)
			assert.Equal(t, tt.field, stdErr.Metadata["field"])
		})
	}
}
