package plancropfinances

import (
	"context"
	"encoding/json"
	"time"

	"crop-planner/internal/common/errors"
	"crop-planner/internal/common/logger"
	"crop-planner/internal/common/metrics"
	"crop-planner/internal/common/observability"
	"crop-planner/internal/farmer"
	"crop-planner/internal/finance"
	"crop-planner/internal/pipeline"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	TaskType = "plan-crop-finances"
)

type Handler struct {
	config     *Config
	logger     logger.Logger
	errHandler *errors.ErrorHandler
	obs        *observability.Observability
}

func NewHandler(config *Config, log logger.Logger, obs *observability.Observability) *Handler {
	if config.Now == nil {
		config.Now = time.Now
	}
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	a, err := farmer.Decode(input.FarmerProfile)
	if err != nil {
		return nil, err
	}

	var output *Output
	if input.Recommendations != nil {
		output = h.planShortlist(ctx, a, input)
	} else {
		output = h.planAll(ctx, a, input)
	}
	if err := checkEncodable(output); err != nil {
		return nil, err
	}

	plan := output.FinancialPlan
	metrics.PlanHealth.WithLabelValues(plan.Health).Inc()
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("financialHealth", plan.Health),
		attribute.Float64("roi", plan.ROI),
		attribute.Bool("financingNeeded", plan.Financing.Needed),
	)
	h.logger.Info("crop finances planned", map[string]interface{}{
		"farmer":          a.Personal().Name,
		"referenceMonth":  output.ReferenceMonth,
		"totalInvestment": plan.TotalInvestment,
		"roi":             plan.ROI,
		"health":          plan.Health,
		"financingNeeded": plan.Financing.Needed,
		"fullPlan":        output.ReportID != "",
	})
	return output, nil
}

// planShortlist plans the crops rank-crops already chose.
func (h *Handler) planShortlist(ctx context.Context, a farmer.Attributes, input *Input) *Output {
	month := h.config.Planner.Month(input.ReferenceMonth, h.config.Now())

	began := time.Now()
	plan := finance.Plan(input.Recommendations.Crops, a, month)
	h.obs.RecordStage(ctx, "finance", time.Since(began))

	return &Output{
		FinancialPlan:   plan,
		FinancialHealth: plan.Health,
		FinancingNeeded: plan.Financing.Needed,
		ReferenceMonth:  month,
	}
}

// planAll runs ranking, risk and finance in one job.
func (h *Handler) planAll(ctx context.Context, a farmer.Attributes, input *Input) *Output {
	month := h.config.Planner.Month(input.ReferenceMonth, h.config.Now())

	began := time.Now()
	r := pipeline.Run(a,
		pipeline.WithClock(h.config.Now),
		pipeline.WithLocation(h.config.Planner.Location()),
		pipeline.WithMonth(month),
	)
	h.obs.RecordStage(ctx, "pipeline", time.Since(began))
	metrics.ShortlistSize.Observe(float64(len(r.Recommendation.Crops)))
	metrics.OverallRisk.WithLabelValues(r.Risk.Overall.Level).Inc()

	return &Output{
		FinancialPlan:   r.Finance,
		FinancialHealth: r.Finance.Health,
		FinancingNeeded: r.Finance.Financing.Needed,
		ReferenceMonth:  r.ReferenceMonth,
		ReportID:        r.ID,
		Recommendations: &r.Recommendation,
		RiskAnalysis:    &r.Risk,
	}
}

// checkEncodable rejects a plan the broker could not store as variables,
// such as one carrying a NaN ratio.
func checkEncodable(output *Output) error {
	if _, err := json.Marshal(output); err != nil {
		return errors.NewPlanFailedError("finance", err)
	}
	return nil
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
