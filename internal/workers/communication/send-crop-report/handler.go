package sendcropreport

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"crop-planner/internal/common/errors"
	"crop-planner/internal/common/logger"
	"crop-planner/internal/common/metrics"
	"crop-planner/internal/common/observability"
	"crop-planner/internal/common/validation"
	"crop-planner/internal/farmer"
	"crop-planner/internal/pipeline"
	"crop-planner/internal/report"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	TaskType = "send-crop-report"
)

type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Handler struct {
	config     *Config
	logger     logger.Logger
	errHandler *errors.ErrorHandler
	obs        *observability.Observability
	sesClient  SESService
	snsClient  SNSService
}

func NewHandler(config *Config, sesClient SESService, snsClient SNSService, log logger.Logger, obs *observability.Observability) *Handler {
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.Location == nil {
		config.Location = time.UTC
	}
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		logger:     l,
		errHandler: errors.NewErrorHandler(l),
		obs:        obs,
		sesClient:  sesClient,
		snsClient:  snsClient,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	timer := metrics.StartJob(TaskType)
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()
	ctx, span := h.obs.StartSpan(ctx, TaskType)
	defer span.End()

	input, err := h.parseInput(job)
	if err != nil {
		h.failJob(ctx, client, job, timer, start, err)
		return
	}

	output, err := h.execute(ctx, input)
	if err != nil {
		h.failJob(ctx, client, job, timer, start, err)
		return
	}

	h.completeJob(ctx, client, job, output)
	timer.Done("")
	h.obs.RecordJob(ctx, TaskType, start, "completed")
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		return nil, errors.NewInvalidInputError("variables", err.Error())
	}
	if len(input.FarmerProfile) == 0 || string(input.FarmerProfile) == "null" {
		return nil, errors.NewInvalidInputError("farmerProfile", "farmerProfile is required")
	}
	if input.Recipient.Email != "" && !validation.ValidateEmail(input.Recipient.Email) {
		return nil, errors.NewInvalidInputError("recipient.email", "invalid email address")
	}
	if input.Recipient.Phone != "" && !validation.ValidatePhone(input.Recipient.Phone) {
		return nil, errors.NewInvalidInputError("recipient.phone", "invalid phone number")
	}
	return &input, nil
}

// execute delivers the report on every enabled channel the recipient can be
// reached on. The job fails with a retryable error only when every attempted
// channel failed.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	a, err := farmer.Decode(input.FarmerProfile)
	if err != nil {
		return nil, err
	}

	smsTo := input.Recipient.Phone
	if h.config.SMSEnabled && h.config.SMSGateway && smsTo != "" {
		// an unknown carrier is rejected before anything is sent
		if smsTo, err = report.GatewayAddress(input.Recipient.Phone, input.Recipient.Carrier); err != nil {
			return nil, err
		}
	}

	r := h.buildReport(a, input)
	text := report.FormatSMS(r)
	subject := fmt.Sprintf("Crop plan for %s", r.Farmer.Name)

	output := &Output{
		NotificationID: uuid.New().String(),
		ReportID:       r.ID,
		EmailStatus:    StatusDisabled,
		SMSStatus:      StatusDisabled,
		SentAt:         h.config.Now().UTC().Format(time.RFC3339),
	}

	var lastErr error
	attempted, delivered := 0, 0

	if h.config.EmailEnabled && input.Recipient.Email != "" {
		attempted++
		if err := h.sendEmail(ctx, input.Recipient.Email, subject, text); err != nil {
			h.logger.Error("email send failed", map[string]interface{}{
				"error": err,
				"email": input.Recipient.Email,
			})
			output.EmailStatus = StatusFailed
			lastErr = errors.NewNotificationSendFailedError(ChannelEmail, err)
		} else {
			output.EmailStatus = StatusSent
			delivered++
		}
		metrics.NotificationsSent.WithLabelValues(ChannelEmail, output.EmailStatus).Inc()
	}

	if h.config.SMSEnabled && input.Recipient.Phone != "" {
		attempted++
		if err := h.sendSMS(ctx, smsTo, text); err != nil {
			h.logger.Error("SMS send failed", map[string]interface{}{
				"error": err,
				"phone": input.Recipient.Phone,
			})
			output.SMSStatus = StatusFailed
			lastErr = errors.NewNotificationSendFailedError(ChannelSMS, err)
		} else {
			output.SMSStatus = StatusSent
			delivered++
		}
		metrics.NotificationsSent.WithLabelValues(ChannelSMS, output.SMSStatus).Inc()
	}

	switch {
	case attempted == 0:
		output.Status = StatusDisabled
	case delivered == 0:
		return nil, lastErr
	default:
		output.Status = StatusSent
	}

	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("emailStatus", output.EmailStatus),
		attribute.String("smsStatus", output.SMSStatus),
	)
	h.logger.Info("crop report delivered", map[string]interface{}{
		"notificationId": output.NotificationID,
		"reportId":       output.ReportID,
		"status":         output.Status,
		"emailStatus":    output.EmailStatus,
		"smsStatus":      output.SMSStatus,
	})
	return output, nil
}

// buildReport reassembles the plan from the stage outputs carried by the
// process.
func (h *Handler) buildReport(a farmer.Attributes, input *Input) *pipeline.Report {
	id := input.ReportID
	if id == "" {
		id = uuid.New().String()
	}
	return &pipeline.Report{
		ID:             id,
		GeneratedAt:    h.config.Now().In(h.config.Location),
		ReferenceMonth: input.ReferenceMonth,
		Farmer:         a.Summary(),
		Recommendation: input.Recommendations,
		Risk:           input.RiskAnalysis,
		Finance:        input.FinancialPlan,
	}
}

func (h *Handler) sendEmail(ctx context.Context, to, subject, body string) error {
	_, err := h.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(h.config.FromEmail),
	})
	return err
}

// sendSMS publishes through SNS, or mails the carrier gateway address when
// gateway delivery is configured.
func (h *Handler) sendSMS(ctx context.Context, to, message string) error {
	if h.config.SMSGateway {
		_, err := h.sesClient.SendEmail(ctx, &ses.SendEmailInput{
			Destination: &types.Destination{ToAddresses: []string{to}},
			Message: &types.Message{
				Subject: &types.Content{Data: aws.String("Crop Plan")},
				Body:    &types.Body{Text: &types.Content{Data: aws.String(message)}},
			},
			Source: aws.String(h.config.FromEmail),
		})
		return err
	}

	in := &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(message),
	}
	if h.config.SenderID != "" {
		in.MessageAttributes = map[string]snstypes.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {DataType: aws.String("String"), StringValue: aws.String(h.config.SenderID)},
			"AWS.SNS.SMS.SMSType":  {DataType: aws.String("String"), StringValue: aws.String("Transactional")},
		}
	}
	_, err := h.snsClient.Publish(ctx, in)
	return err
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, timer *metrics.JobTimer, start time.Time, err error) {
	trace.SpanFromContext(ctx).RecordError(err)
	res := h.errHandler.HandleJobError(ctx, client, job, err)
	timer.Done(string(res.Standard.Code))
	h.obs.RecordJob(ctx, TaskType, start, "failed")
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
