package finance

import (
	"testing"

	"crop-planner/internal/catalog"
	"crop-planner/internal/farmer"
	"crop-planner/internal/farmer/farmertest"
	"crop-planner/internal/ranking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func punjabPlan(t *testing.T) ([]ranking.RankedCrop, farmer.Attributes, Report) {
	t.Helper()
	a := farmertest.Punjab(t)
	crops := ranking.Rank(a, 7).Crops
	require.Len(t, crops, 4)
	return crops, a, Plan(crops, a, 7)
}

// ==========================
// Totals
// ==========================

func TestPlan_PunjabTotals(t *testing.T) {
	_, _, r := punjabPlan(t)

	assert.InDelta(t, 90000, r.TotalInvestment, 1e-6)
	assert.InDelta(t, 124309.7856, r.TotalRevenue, 1e-6)
	assert.InDelta(t, 34309.7856, r.NetProfit, 1e-6)
	assert.InDelta(t, 18000, r.InvestmentPerAcre, 1e-6)
	assert.InDelta(t, 24861.95712, r.RevenuePerAcre, 1e-6)
	assert.InDelta(t, 38.121984, r.ROI, 1e-6)
	assert.InDelta(t, 27.6002290845, r.ProfitMargin, 1e-6)
	assert.InDelta(t, 0.2513382716, r.RiskAdjustedROI, 1e-6)
	assert.Equal(t, HealthGood, r.Health)
	assert.Equal(t, []string{"Diversify crop portfolio to reduce risk concentration"}, r.RiskMitigation)
}

func TestPlan_NetProfitMatchesTotals(t *testing.T) {
	_, _, r := punjabPlan(t)
	assert.InDelta(t, r.TotalRevenue-r.TotalInvestment, r.NetProfit, 1e-6)
}

// ==========================
// Cash flow
// ==========================

func TestPlan_CashFlowFromJuly(t *testing.T) {
	_, _, r := punjabPlan(t)

	wantExpenses := [Months]float64{6: 18000, 7: 27000, 8: 34200, 9: 3600, 10: 7200}
	for i := range wantExpenses {
		assert.InDelta(t, wantExpenses[i], r.MonthlyExpenses[i], 1e-6, "expenses month %d", i)
	}

	assert.InDelta(t, 97140.736, r.MonthlyIncome[8], 1e-6)
	assert.InDelta(t, 7285.5552, r.MonthlyIncome[9], 1e-6)
	assert.InDelta(t, 19883.4944, r.MonthlyIncome[10], 1e-6)

	var expenses, income float64
	for i := 0; i < Months; i++ {
		expenses += r.MonthlyExpenses[i]
		income += r.MonthlyIncome[i]
	}
	assert.InDelta(t, r.TotalInvestment, expenses, 1e-6)
	assert.InDelta(t, r.TotalRevenue, income, 1e-6)
	assert.Equal(t, r.TotalRevenue, r.CashFlow.TotalIncome)
	assert.Equal(t, r.TotalInvestment, r.CashFlow.TotalExpenses)

	cf := r.CashFlow
	assert.InDelta(t, 45000, cf.PeakCashRequirement, 1e-6)
	assert.Equal(t, 3, cf.PositiveMonths)
	assert.Equal(t, 2, cf.NegativeMonths)
	assert.InDelta(t, -45000, cf.Cumulative[7], 1e-6)
	assert.InDelta(t, cf.NetCashFlow, cf.Cumulative[Months-1], 1e-6)
}

func TestPlan_CashFlowWrapsAroundYearEnd(t *testing.T) {
	crops, a, _ := punjabPlan(t)
	r := Plan(crops, a, 12)

	// December start: vegetables harvest two months later, in February.
	assert.InDelta(t, 97140.736, r.MonthlyIncome[1], 1e-6)
	assert.InDelta(t, 18000, r.MonthlyExpenses[11], 1e-6)
}

func TestPlan_CashFlowTotalsMatchReport(t *testing.T) {
	crops, a, _ := punjabPlan(t)
	for month := 1; month <= 12; month++ {
		r := Plan(crops, a, month)
		assert.Equal(t, r.TotalRevenue, r.CashFlow.TotalIncome, "month %d", month)
		assert.Equal(t, r.TotalInvestment, r.CashFlow.TotalExpenses, "month %d", month)
		assert.Equal(t, r.TotalRevenue-r.TotalInvestment, r.CashFlow.NetCashFlow, "month %d", month)
	}
}

func TestCropTimeline(t *testing.T) {
	tests := []struct {
		days int
		want Timeline
	}{
		{20, Timeline{Sowing: 1, Irrigation: 2, Harvest: 1}},
		{60, Timeline{Sowing: 1, Irrigation: 2, Harvest: 2}},
		{120, Timeline{Sowing: 1, Irrigation: 2, Harvest: 4}},
		{365, Timeline{Sowing: 1, Irrigation: 4, Harvest: 12}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CropTimeline(tt.days), "days %d", tt.days)
	}
}

func TestSummarize_NoNegativePeak(t *testing.T) {
	var income [Months]float64
	income[0] = 100
	s := summarize([Months]float64{}, income, 0, 100)
	assert.Equal(t, 100.0, s.NetCashFlow)
	assert.Zero(t, s.PeakCashRequirement)
	assert.Equal(t, 1, s.PositiveMonths)
	assert.Zero(t, s.NegativeMonths)
}

// ==========================
// Break-even and sensitivity
// ==========================

func TestPlan_BreakEven(t *testing.T) {
	_, _, r := punjabPlan(t)
	assert.InDelta(t, 15.6843156843, r.BreakEven.Yield, 1e-6)
	assert.InDelta(t, 4154.4556444465, r.BreakEven.Price, 1e-6)
	assert.InDelta(t, 27.6002290845, r.BreakEven.SafetyMargin, 1e-6)
}

func TestBreakEven_ZeroYield(t *testing.T) {
	crops := []ranking.RankedCrop{{Key: "wheat", Investment: 1000}}
	assert.Equal(t, BreakEven{}, breakEven(crops))
}

func TestPlan_Sensitivity(t *testing.T) {
	_, _, r := punjabPlan(t)
	s := r.Sensitivity

	want := map[string]float64{
		"yield_reduction_20": 10.4975872,
		"yield_reduction_40": -17.1268096,
		"price_reduction_15": 17.4036864,
		"price_reduction_30": -3.3146112,
		"cost_increase_20":   15.1016533333,
		"cost_increase_40":   -1.34144,
	}
	require.Len(t, s.Scenarios, len(want))
	for name, roi := range want {
		assert.InDelta(t, roi, s.Scenarios[name], 1e-6, name)
	}

	assert.InDelta(t, r.ROI, s.BaseROI, 1e-9)
	assert.InDelta(t, -17.1268096, s.WorstCaseROI, 1e-6)
	assert.InDelta(t, r.ROI, s.BestCaseROI, 1e-9)
	assert.LessOrEqual(t, s.WorstCaseROI, s.BaseROI)
	assert.GreaterOrEqual(t, s.BestCaseROI, s.BaseROI)
}

func TestScenarioROI_ZeroInvestment(t *testing.T) {
	crops := []ranking.RankedCrop{{ExpectedRevenue: 500}}
	assert.Zero(t, ScenarioROI(crops, Scenarios[0]))
}

// ==========================
// Financing
// ==========================

func TestPlan_SelfFinanced(t *testing.T) {
	_, _, r := punjabPlan(t)
	assert.Equal(t, Financing{Recommendation: "Self-financing sufficient", LoanType: LoanNone}, r.Financing)
}

func TestFinancing(t *testing.T) {
	tests := []struct {
		name       string
		investment float64
		capacity   float64
		loanType   string
		message    string
	}{
		{"kisan credit card", 150000, 100000, LoanKisanCredit, "Consider Kisan Credit Card for ₹50,000"},
		{"term loan", 400000, 100000, LoanAgriTerm, "Consider Agricultural Term Loan for ₹300,000"},
		{"multiple sources", 1000000, 100000, LoanMultiple, "Consider Multiple loan sources for ₹900,000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := financing(tt.investment, tt.capacity)
			assert.True(t, got.Needed)
			assert.Equal(t, tt.loanType, got.LoanType)
			assert.Equal(t, tt.message, got.Recommendation)
			assert.InDelta(t, tt.investment-tt.capacity, got.LoanAmount, 1e-9)
			assert.Positive(t, got.MonthlyEMI)
		})
	}
}

func TestPlan_OverCapacity(t *testing.T) {
	p := farmertest.PunjabProfile()
	p.Financial.InvestmentCapacity = 40000
	a := farmertest.Attributes(t, p)

	crops := ranking.Rank(farmertest.Punjab(t), 7).Crops
	r := Plan(crops, a, 7)

	assert.Equal(t, HealthOverCapacity, r.Health)
	assert.True(t, r.Financing.Needed)
	assert.InDelta(t, 50000, r.Financing.LoanAmount, 1e-6)
	assert.InDelta(t, 4349.4214542711, r.Financing.MonthlyEMI, 1e-6)
}

func TestEMI(t *testing.T) {
	assert.InDelta(t, 4349.4214542711, EMI(50000, 12, 0.08), 1e-6)
	assert.InDelta(t, 1000, EMI(12000, 12, 0), 1e-9)
	assert.Zero(t, EMI(12000, 0, 0.08))
}

func TestHealth(t *testing.T) {
	assert.Equal(t, HealthOverCapacity, health(2, 1, 50))
	assert.Equal(t, HealthLowReturn, health(1, 1, 9.9))
	assert.Equal(t, HealthModerate, health(1, 1, 10))
	assert.Equal(t, HealthGood, health(1, 1, 20))
}

// ==========================
// Cost breakdown
// ==========================

func TestPlan_CostBreakdown(t *testing.T) {
	crops, _, r := punjabPlan(t)
	require.Len(t, r.CostBreakdown, len(crops))

	for i, c := range r.CostBreakdown {
		assert.Equal(t, crops[i].Key, c.Key)
		assert.InDelta(t, crops[i].Investment, c.Investment, 1e-9)
		assert.Len(t, c.Categories, 8)

		var total float64
		for _, cat := range c.Categories {
			total += cat.Total()
		}
		assert.InDelta(t, total, c.ReferenceTotal, 1e-9)
	}
}

// ==========================
// Empty shortlist
// ==========================

func TestPlan_Empty(t *testing.T) {
	a := farmertest.Attributes(t, farmertest.NoMatchProfile())
	r := Plan(nil, a, 7)

	assert.Equal(t, catalog.Unknown, r.Health)
	assert.Zero(t, r.TotalInvestment)
	assert.Zero(t, r.ROI)
	assert.False(t, r.Financing.Needed)
	assert.Empty(t, r.Sensitivity.Scenarios)
	assert.NotNil(t, r.Sensitivity.Scenarios)
	assert.Empty(t, r.RiskMitigation)
	assert.Empty(t, r.CostBreakdown)
	assert.Equal(t, [Months]float64{}, r.MonthlyExpenses)
}
