// Package finance turns a crop shortlist into a season budget: totals, a
// monthly cash-flow projection, break-even and stress analysis, and a
// financing proposal.
package finance

import (
	"crop-planner/internal/catalog"
	"crop-planner/internal/farmer"
	"crop-planner/internal/ranking"
)

// Months is the length of every monthly series.
const Months = 12

// Health verdicts.
const (
	HealthOverCapacity = "High Risk - Investment exceeds capacity"
	HealthLowReturn    = "Low Return - Consider alternatives"
	HealthModerate     = "Moderate Return - Acceptable"
	HealthGood         = "Good Return - Recommended"
)

// Report is the financial plan of a shortlist. Money values are the sum of
// the per-acre crop figures.
type Report struct {
	TotalInvestment   float64         `json:"totalInvestment"`
	TotalRevenue      float64         `json:"totalRevenue"`
	NetProfit         float64         `json:"netProfit"`
	InvestmentPerAcre float64         `json:"investmentPerAcre"`
	RevenuePerAcre    float64         `json:"revenuePerAcre"`
	ProfitPerAcre     float64         `json:"profitPerAcre"`
	ROI               float64         `json:"roi"`
	ProfitMargin      float64         `json:"profitMargin"`
	MonthlyExpenses   [Months]float64 `json:"monthlyExpenses"`
	MonthlyIncome     [Months]float64 `json:"monthlyIncome"`
	CashFlow          CashFlowSummary `json:"cashFlowSummary"`
	BreakEven         BreakEven       `json:"breakEven"`
	RiskAdjustedROI   float64         `json:"riskAdjustedRoi"`
	Sensitivity       Sensitivity     `json:"sensitivityAnalysis"`
	Financing         Financing       `json:"financing"`
	Health            string          `json:"financialHealth"`
	RiskMitigation    []string        `json:"riskMitigation"`
	CostBreakdown     []CropCosts     `json:"costBreakdown"`
}

// Plan builds the financial report of crops for a. month (1-12) is the
// first month of the cash-flow projection. An empty shortlist gives a zero
// report with health catalog.Unknown.
func Plan(crops []ranking.RankedCrop, a farmer.Attributes, month int) Report {
	capacity := a.Financial().InvestmentCapacity
	if len(crops) == 0 {
		return Report{
			Health:         catalog.Unknown,
			Financing:      financing(0, capacity),
			Sensitivity:    Sensitivity{Scenarios: map[string]float64{}},
			RiskMitigation: []string{},
			CostBreakdown:  []CropCosts{},
		}
	}

	var r Report
	for _, c := range crops {
		r.TotalInvestment += c.Investment
		r.TotalRevenue += c.ExpectedRevenue
		r.NetProfit += c.NetProfit
	}

	acres := a.Land().TotalAcres
	r.InvestmentPerAcre = r.TotalInvestment / acres
	r.RevenuePerAcre = r.TotalRevenue / acres
	r.ProfitPerAcre = r.NetProfit / acres
	r.ROI = ratioPct(r.NetProfit, r.TotalInvestment)
	r.ProfitMargin = ratioPct(r.NetProfit, r.TotalRevenue)

	r.MonthlyExpenses, r.MonthlyIncome = projectCashFlow(crops, month)
	r.CashFlow = summarize(r.MonthlyExpenses, r.MonthlyIncome, r.TotalInvestment, r.TotalRevenue)
	r.BreakEven = breakEven(crops)
	r.RiskAdjustedROI = riskAdjustedROI(crops)
	r.Sensitivity = sensitivity(crops, r.ROI)
	r.Financing = financing(r.TotalInvestment, capacity)
	r.Health = health(r.TotalInvestment, capacity, r.ROI)
	r.RiskMitigation = riskMitigation(r)
	r.CostBreakdown = costBreakdown(crops)
	return r
}

func ratioPct(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den * 100
}

func health(investment, capacity, roi float64) string {
	switch {
	case investment > capacity:
		return HealthOverCapacity
	case roi < 10:
		return HealthLowReturn
	case roi < 20:
		return HealthModerate
	default:
		return HealthGood
	}
}

// riskAdjustedROI weights each crop's ROI by its risk level.
func riskAdjustedROI(crops []ranking.RankedCrop) float64 {
	var total, weights float64
	for _, c := range crops {
		w := catalog.RiskLevelWeight(c.RiskLevel)
		total += c.ROI * w
		weights += w
	}
	if weights == 0 {
		return 0
	}
	return total / weights
}

func riskMitigation(r Report) []string {
	out := []string{}
	if r.ROI < 15 {
		out = append(out, "Consider crop insurance to protect against yield losses")
	}
	if r.CashFlow.PeakCashRequirement > 50000 {
		out = append(out, "Arrange credit line for peak cash requirement periods")
	}
	if r.BreakEven.SafetyMargin < 20 {
		out = append(out, "Focus on cost optimization and yield improvement")
	}
	if r.RiskAdjustedROI < r.ROI*0.8 {
		out = append(out, "Diversify crop portfolio to reduce risk concentration")
	}
	return out
}
