package pipeline

import (
	"encoding/json"
	"testing"
	"time"

	"crop-planner/internal/catalog"
	"crop-planner/internal/farmer/farmertest"
	"crop-planner/internal/finance"
	"crop-planner/internal/ranking"
	"crop-planner/internal/risk"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func fixedID() string { return "report-1" }

func TestRun_Punjab(t *testing.T) {
	a := farmertest.Punjab(t)
	at := time.Date(2024, time.July, 15, 9, 30, 0, 0, time.UTC)

	got := Run(a, WithClock(fixedClock(at)), WithLocation(time.UTC), WithIDGenerator(fixedID))

	rec := ranking.Rank(a, 7)
	want := &Report{
		ID:             "report-1",
		GeneratedAt:    at,
		ReferenceMonth: 7,
		Farmer:         a.Summary(),
		Recommendation: rec,
		Risk:           risk.Analyze(rec.Crops, a),
		Finance:        finance.Plan(rec.Crops, a, 7),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Run() mismatch (-want +got):\n%s", diff)
	}

	top, ok := got.TopCrop()
	require.True(t, ok)
	assert.Equal(t, "vegetables", top.Key)
}

func TestRun_ClockReadOnce(t *testing.T) {
	calls := 0
	clock := func() time.Time {
		calls++
		return time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC)
	}

	got := Run(farmertest.Punjab(t), WithClock(clock), WithLocation(time.UTC))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 11, got.ReferenceMonth)
}

func TestRun_MonthFromLocation(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	// 31 Dec 20:00 UTC is already January in India.
	at := time.Date(2024, time.December, 31, 20, 0, 0, 0, time.UTC)

	got := Run(farmertest.Punjab(t), WithClock(fixedClock(at)), WithLocation(ist))
	assert.Equal(t, 1, got.ReferenceMonth)
	assert.Equal(t, ist, got.GeneratedAt.Location())
}

func TestRun_PinnedMonth(t *testing.T) {
	at := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		month int
		want  int
	}{
		{"pinned", 11, 11},
		{"zero defers to clock", 0, 7},
		{"out of range defers to clock", 13, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Run(farmertest.Punjab(t), WithClock(fixedClock(at)), WithMonth(tt.month))
			assert.Equal(t, tt.want, got.ReferenceMonth)
		})
	}
}

func TestRun_SharedShortlist(t *testing.T) {
	got := Run(farmertest.Punjab(t), WithMonth(7))

	var investment float64
	for _, c := range got.Recommendation.Crops {
		investment += c.Investment
	}
	assert.InDelta(t, investment, got.Finance.TotalInvestment, 1e-9)
	assert.Len(t, got.Finance.CostBreakdown, len(got.Recommendation.Crops))
}

func TestRun_NoEligibleCrops(t *testing.T) {
	got := Run(farmertest.Attributes(t, farmertest.NoMatchProfile()), WithMonth(7))

	_, ok := got.TopCrop()
	assert.False(t, ok)
	assert.Zero(t, got.Recommendation.TotalRecommendations)
	assert.Equal(t, catalog.Unknown, got.Finance.Health)
	assert.Equal(t, catalog.Unknown, got.Risk.Categories[risk.Disease].Level)
}

func TestRun_RandomIDs(t *testing.T) {
	a := farmertest.Punjab(t)
	first, second := Run(a), Run(a)
	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestReport_JSONFieldNames(t *testing.T) {
	got := Run(farmertest.Punjab(t), WithMonth(7), WithIDGenerator(fixedID))

	raw, err := json.Marshal(got)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	for _, key := range []string{"id", "generatedAt", "referenceMonth", "farmerProfile", "recommendations", "riskAnalysis", "financialPlan"} {
		assert.Contains(t, doc, key)
	}
}
