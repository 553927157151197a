package analyzecroprisk

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"crop-planner/internal/catalog"
	"crop-planner/internal/common/errors"
	"crop-planner/internal/common/logger"
	"crop-planner/internal/common/metrics"
	"crop-planner/internal/farmer/farmertest"
	"crop-planner/internal/ranking"
	"crop-planner/internal/risk"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestHandler(t *testing.T) *Handler {
	return NewHandler(&Config{Timeout: 5 * time.Second}, logger.NewTestLogger(t), nil)
}

func riskCount(t *testing.T, level string) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, metrics.OverallRisk.WithLabelValues(level).Write(&m))
	return m.GetCounter().GetValue()
}

// rankedJob builds the variables a process carries after rank-crops.
func rankedJob(t *testing.T, month int) entities.Job {
	t.Helper()
	vars, err := json.Marshal(map[string]interface{}{
		"farmerProfile":   farmertest.PunjabProfile(),
		"recommendations": ranking.Rank(farmertest.Punjab(t), month),
		"referenceMonth":  month,
	})
	require.NoError(t, err)
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:                9001,
		Type:               TaskType,
		ProcessInstanceKey: 90010,
		Retries:            3,
		Variables:          string(vars),
	}}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Punjab(t *testing.T) {
	h := newTestHandler(t)
	before := riskCount(t, catalog.Low)

	input, err := h.parseInput(rankedJob(t, 7))
	require.NoError(t, err)

	out, err := h.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, catalog.Low, out.OverallRiskLevel)
	assert.False(t, out.RequiresReview)
	assert.InDelta(t, 0.240625, out.RiskAnalysis.Overall.Score, 1e-9)
	assert.Equal(t, catalog.Medium, out.RiskAnalysis.Economic.Level)
	assert.Equal(t, "Higher return crops possible", out.RiskAnalysis.Tolerance.RecommendedRisk)
	assert.Equal(t, before+1, riskCount(t, catalog.Low))

	// variables survive the JSON hop between workers unchanged
	a := farmertest.Punjab(t)
	assert.Equal(t, risk.Analyze(ranking.Rank(a, 7).Crops, a), out.RiskAnalysis)
}

func TestHandler_Execute_EmptyShortlist(t *testing.T) {
	h := newTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{
		FarmerProfile: farmertest.Document(t, farmertest.NoMatchProfile()),
	})
	require.NoError(t, err)

	for _, category := range []string{risk.Disease, risk.Pest} {
		c := out.RiskAnalysis.Categories[category]
		assert.Equal(t, catalog.Unknown, c.Level, category)
		assert.Equal(t, "N/A", c.Mitigation, category)
		assert.Zero(t, c.Probability, category)
	}
	assert.NotEmpty(t, out.OverallRiskLevel)
}

func TestHandler_Execute_InvalidProfile(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{FarmerProfile: json.RawMessage(`{"land":{}}`)})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeProfileSchemaInvalid))
}

// ==========================
// Input Parsing Tests
// ==========================

func TestHandler_ParseInput_Errors(t *testing.T) {
	tests := []struct {
		name      string
		variables string
	}{
		{"invalid json", "{"},
		{"missing profile", `{"recommendations":{"crops":[]}}`},
		{"recommendations wrong type", `{"farmerProfile":{},"recommendations":"vegetables"}`},
	}

	h := newTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.parseInput(entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 1, Variables: tt.variables}})
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))
		})
	}
}
