package answerfarmerquestion

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"crop-planner/internal/advisor"
	"crop-planner/internal/common/errors"
	"crop-planner/internal/common/logger"
	"crop-planner/internal/common/metrics"
	"crop-planner/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	TaskType = "answer-farmer-question"
)

type Handler struct {
	config     *Config
	logger     logger.Logger
	errHandler *errors.ErrorHandler
	obs        *observability.Observability
	advisor    *advisor.Advisor
}

func NewHandler(config *Config, adv *advisor.Advisor, log logger.Logger, obs *observability.Observability) *Handler {
	if adv == nil {
		adv = advisor.New(nil)
	}
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		logger:     l,
		errHandler: errors.NewErrorHandler(l),
		obs:        obs,
		advisor:    adv,
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
	input.Question = strings.TrimSpace(input.Question)
	input.Emergency = strings.TrimSpace(input.Emergency)
	if input.Question == "" && input.Emergency == "" {
		return nil, errors.NewInvalidInputError("question", "question or emergency is required")
	}
	return &input, nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	var output *Output
	if input.Emergency != "" {
		output = &Output{
			Answer: advisor.EmergencyAdvice(input.Emergency),
			Intent: advisor.Intent{Type: IntentEmergency, Crop: strings.ToLower(input.Crop), Confidence: 1},
		}
	} else {
		ans := h.advisor.Answer(input.Question)
		output = &Output{Answer: ans.Text, Intent: ans.Intent}
	}

	crop := output.Intent.Crop
	if crop == "" {
		crop = input.Crop
	}
	output.Tips = advisor.Tips(crop)

	metrics.QuestionsAnswered.WithLabelValues(output.Intent.Type).Inc()
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("intent", output.Intent.Type),
		attribute.Float64("confidence", output.Intent.Confidence),
	)
	h.logger.Info("farmer question answered", map[string]interface{}{
		"intent":     output.Intent.Type,
		"crop":       output.Intent.Crop,
		"topic":      output.Intent.Topic,
		"confidence": output.Intent.Confidence,
	})
	return output, nil
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
