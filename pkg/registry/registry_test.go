package registry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRegistry() *ActivityRegistry {
	return &ActivityRegistry{
		Version: "1.0.0",
		Activities: []Activity{
			{ID: "rank-crops", TaskType: "rank-crops", ImplementationStatus: StatusCompleted, Timeout: "10s"},
			{ID: "analyze-crop-risk", TaskType: "analyze-crop-risk", ImplementationStatus: StatusVerified},
		},
	}
}

func TestRegistry_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity-registry.json")
	at := time.Date(2024, 7, 15, 9, 5, 0, 0, time.UTC)

	require.NoError(t, sampleRegistry().Save(path, at))

	got, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, "2024-07-15T09:05:00Z", got.LastUpdated)
	assert.Equal(t, []string{"analyze-crop-risk", "rank-crops"}, got.TaskTypes())

	a, ok := got.Find("rank-crops")
	require.True(t, ok)
	assert.Equal(t, "10s", a.Timeout)
	_, ok = got.Find("send-crop-report")
	assert.False(t, ok)
}

func TestRegistry_Missing(t *testing.T) {
	r := sampleRegistry()
	assert.Equal(t, []string{"send-crop-report"}, r.Missing([]string{"send-crop-report", "rank-crops"}))
	assert.Empty(t, r.Missing([]string{"rank-crops"}))
}

func TestRegistry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *ActivityRegistry)
		errPart string
	}{
		{"valid", func(*ActivityRegistry) {}, ""},
		{"missing id", func(r *ActivityRegistry) { r.Activities[0].ID = "" }, "id is required"},
		{"duplicate task type", func(r *ActivityRegistry) { r.Activities[1].TaskType = "rank-crops" }, "duplicate taskType"},
		{"unknown status", func(r *ActivityRegistry) { r.Activities[0].ImplementationStatus = "done" }, "unknown status"},
		{"bad timeout", func(r *ActivityRegistry) { r.Activities[0].Timeout = "ten seconds" }, "bad timeout"},
		{"camel case task type", func(r *ActivityRegistry) { r.Activities[0].TaskType = "rankCrops" }, "kebab-case"},
		{"single word task type", func(r *ActivityRegistry) { r.Activities[1].TaskType = "risk" }, "kebab-case"},
		{"bad input schema", func(r *ActivityRegistry) { r.Activities[0].InputSchema = map[string]interface{}{"type": 5} }, "bad inputSchema"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := sampleRegistry()
			tt.mutate(r)
			err := r.Validate()
			if tt.errPart == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}

func TestActivity_CheckInput(t *testing.T) {
	a := Activity{
		ID:       "rank-crops",
		TaskType: "rank-crops",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"farmerProfile":  map[string]interface{}{"type": "object"},
				"referenceMonth": map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 12},
			},
			"required": []interface{}{"farmerProfile"},
		},
	}

	res, err := a.CheckInput(map[string]interface{}{"farmerProfile": map[string]interface{}{}, "referenceMonth": 7})
	require.NoError(t, err)
	assert.True(t, res.Valid)

	res, err = a.CheckInput(map[string]interface{}{"referenceMonth": 14})
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.True(t, res.HasErrors("farmerProfile"))
	assert.True(t, res.HasErrors("referenceMonth"))

	res, err = Activity{ID: "open"}.CheckInput(map[string]interface{}{"anything": true})
	require.NoError(t, err)
	assert.True(t, res.Valid)
}

func TestLoadRegistry_Errors(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err = LoadRegistry(path)
	assert.Error(t, err)
}

func TestShippedRegistry(t *testing.T) {
	r, err := LoadRegistry(filepath.Join("..", "..", "configs", "activity-registry.json"))
	require.NoError(t, err)
	require.NoError(t, r.Validate())
	assert.Empty(t, r.Missing([]string{
		"validate-farmer-profile",
		"rank-crops",
		"analyze-crop-risk",
		"plan-crop-finances",
		"send-crop-report",
		"answer-farmer-question",
	}))
}
