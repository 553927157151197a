package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"info", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestZapAdapter_FieldsAndLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).WithFields(map[string]interface{}{"taskType": "rank-crops"})

	log.Info("ranking completed", map[string]interface{}{"outputCount": 3})
	log.WithError(errors.New("boom")).Error("job failed", nil)
	log.With(map[string]interface{}{"farmer": "Ravi"}).Debug("profile decoded", nil)

	entries := logs.All()
	require.Len(t, entries, 3)

	assert.Equal(t, "ranking completed", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "rank-crops", fields["taskType"])
	assert.EqualValues(t, 3, fields["outputCount"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])

	assert.Equal(t, "Ravi", entries[2].ContextMap()["farmer"])
}

func TestMapToZapFields_SortedAndErrorAware(t *testing.T) {
	fields := mapToZapFields(map[string]interface{}{
		"b":     1,
		"a":     "x",
		"cause": errors.New("bad input"),
	})
	require.Len(t, fields, 3)
	assert.Equal(t, "a", fields[0].Key)
	assert.Equal(t, "b", fields[1].Key)
	assert.Equal(t, "cause", fields[2].Key)
	assert.Equal(t, zapcore.ErrorType, fields[2].Type)

	assert.Nil(t, mapToZapFields(nil))
}

func TestNoOpAndTestLoggers(t *testing.T) {
	assert.NotPanics(t, func() {
		NewNoOpLogger().Info("ignored", map[string]interface{}{"k": "v"})
		NewTestLogger(t).Warn("visible in test output", nil)
	})
}

func TestNewStructured_WritesJSONAtLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.log")
	log := NewStructured("warn", "json", path)

	log.Info("dropped below level", nil)
	log.Warn("shortlist empty", map[string]interface{}{"state": "Kerala"})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.NotContains(t, out, "dropped below level")
	assert.Contains(t, out, `"msg":"shortlist empty"`)
	assert.Contains(t, out, `"state":"Kerala"`)
}
