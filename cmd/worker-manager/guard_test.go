package main

import (
	"path/filepath"
	"testing"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crop-planner/internal/common/camunda"
	"crop-planner/internal/common/errors"
	"crop-planner/internal/common/logger"
	"crop-planner/pkg/registry"
)

// ==========================
// Test Helper Functions
// ==========================

type countingHandler struct {
	handled int
}

func (c *countingHandler) Handle(worker.JobClient, entities.Job) { c.handled++ }

func shippedRegistry(t *testing.T) *registry.ActivityRegistry {
	t.Helper()
	reg := checkRegistry(filepath.Join("..", "..", "configs", "activity-registry.json"), taskTypes, zap.NewNop())
	require.NotNil(t, reg)
	return reg
}

func guardFor(t *testing.T, taskType string, next camunda.JobHandler) *guardedHandler {
	t.Helper()
	handlers := guardInputs(map[string]camunda.JobHandler{taskType: next}, shippedRegistry(t), logger.NewTestLogger(t))
	g, ok := handlers[taskType].(*guardedHandler)
	require.True(t, ok, "%s not guarded", taskType)
	return g
}

func jobWith(variables string) entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 20001, Variables: variables, Retries: 3}}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestGuardInputs_WrapsEveryRegisteredWorker(t *testing.T) {
	handlers := make(map[string]camunda.JobHandler, len(taskTypes))
	for _, taskType := range taskTypes {
		handlers[taskType] = &countingHandler{}
	}

	guarded := guardInputs(handlers, shippedRegistry(t), logger.NewTestLogger(t))
	for _, taskType := range taskTypes {
		assert.IsType(t, &guardedHandler{}, guarded[taskType], taskType)
	}

	unguarded := guardInputs(handlers, nil, logger.NewTestLogger(t))
	assert.Same(t, handlers[taskTypes[0]], unguarded[taskTypes[0]])
}

func TestGuardedHandler_Check(t *testing.T) {
	tests := []struct {
		name      string
		variables string
		wantField string
	}{
		{"valid", `{"farmerProfile": {"personalInfo": {}}, "referenceMonth": 7}`, ""},
		{"month omitted", `{"farmerProfile": {}}`, ""},
		{"profile missing", `{"referenceMonth": 7}`, "farmerProfile"},
		{"profile not an object", `{"farmerProfile": "Gurpreet"}`, "farmerProfile"},
		{"month out of range", `{"farmerProfile": {}, "referenceMonth": 13}`, "referenceMonth"},
		{"month not whole", `{"farmerProfile": {}, "referenceMonth": 7.5}`, "referenceMonth"},
		{"variables not json", `{`, "variables"},
	}
	g := guardFor(t, "rank-crops", &countingHandler{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.check(jobWith(tt.variables))
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			stdErr, ok := errors.AsStandardError(err)
			require.True(t, ok)
			assert.Equal(t, errors.ErrCodeInvalidInput, stdErr.Code)
			assert.Equal(t, tt.wantField, stdErr.Metadata["field"])
			assert.NotEmpty(t, stdErr.Details)
		})
	}
}

func TestGuardedHandler_ViolationsInMetadata(t *testing.T) {
	g := guardFor(t, "plan-crop-finances", &countingHandler{})

	err := g.check(jobWith(`{"farmerProfile": 3, "referenceMonth": -1}`))
	require.Error(t, err)
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)

	assert.Equal(t, "farmerProfile", stdErr.Metadata["field"])
	violations, ok := stdErr.Metadata["violations"].([]string)
	require.True(t, ok)
	assert.Len(t, violations, 2)

	res := g.errHandler.Resolve(jobWith(`{}`), err)
	assert.Equal(t, "INVALID_FARMER_PROFILE", res.BPMN.Code)
	assert.False(t, res.Retry)
}

func TestGuardedHandler_DelegatesValidJobs(t *testing.T) {
	next := &countingHandler{}
	g := guardFor(t, "answer-farmer-question", next)

	g.Handle(nil, jobWith(`{"question": "when to sow wheat?"}`))
	assert.Equal(t, 1, next.handled)
}
