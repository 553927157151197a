package analyzecroprisk

import (
	"context"
	"encoding/json"
	"time"

	"crop-planner/internal/catalog"
	"crop-planner/internal/common/errors"
	"crop-planner/internal/common/logger"
	"crop-planner/internal/common/metrics"
	"crop-planner/internal/common/observability"
	"crop-planner/internal/farmer"
	"crop-planner/internal/risk"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	TaskType = "analyze-crop-risk"
)

type Handler struct {
	config     *Config
	logger     logger.Logger
	errHandler *errors.ErrorHandler
	obs        *observability.Observability
}

func NewHandler(config *Config, log logger.Logger, obs *observability.Observability) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		logger:     l,
		errHandler: errors.NewErrorHandler(l),
		obs:        obs,
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
	return &input, nil
}

// execute analyzes the shortlist produced by rank-crops. An empty shortlist
// is not an error: disease and pest come back Unknown.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	a, err := farmer.Decode(input.FarmerProfile)
	if err != nil {
		return nil, err
	}

	began := time.Now()
	analysis := risk.Analyze(input.Recommendations.Crops, a)
	h.obs.RecordStage(ctx, "risk", time.Since(began))
	metrics.OverallRisk.WithLabelValues(analysis.Overall.Level).Inc()

	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("overallRisk", analysis.Overall.Level),
		attribute.Float64("riskScore", analysis.Overall.Score),
	)
	h.logger.Info("crop risk analyzed", map[string]interface{}{
		"farmer":        a.Personal().Name,
		"crops":         len(input.Recommendations.Crops),
		"overallLevel":  analysis.Overall.Level,
		"overallScore":  analysis.Overall.Score,
		"economicLevel": analysis.Economic.Level,
	})

	return &Output{
		RiskAnalysis:     analysis,
		OverallRiskLevel: analysis.Overall.Level,
		RequiresReview:   analysis.Overall.Level == catalog.High,
	}, nil
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
