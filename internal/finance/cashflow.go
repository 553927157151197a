package finance

import (
	"math"

	"crop-planner/internal/ranking"
)

// CashFlowSummary describes the monthly series produced by the projection.
// MonthlyNet and Cumulative share the calendar indexing of the report arrays.
type CashFlowSummary struct {
	TotalExpenses       float64         `json:"totalExpenses"`
	TotalIncome         float64         `json:"totalIncome"`
	NetCashFlow         float64         `json:"netCashFlow"`
	MonthlyNet          [Months]float64 `json:"monthlyNet"`
	Cumulative          [Months]float64 `json:"cumulativeCashFlow"`
	PeakCashRequirement float64         `json:"peakCashRequirement"`
	PositiveMonths      int             `json:"positiveMonths"`
	NegativeMonths      int             `json:"negativeMonths"`
}

// Timeline is the month offset, from planting start, of each crop activity.
type Timeline struct {
	LandPrep   int `json:"landPrep"`
	Sowing     int `json:"sowing"`
	Irrigation int `json:"irrigation"`
	Harvest    int `json:"harvest"`
}

// CropTimeline derives the activity months of a crop from its growth duration.
func CropTimeline(growthDays int) Timeline {
	months := growthDays / 30
	if months < 1 {
		months = 1
	}
	irrigation := months / 3
	if irrigation < 2 {
		irrigation = 2
	}
	return Timeline{LandPrep: 0, Sowing: 1, Irrigation: irrigation, Harvest: months}
}

// Investment shares spent at each timeline point.
var expenseShares = [4]float64{0.2, 0.3, 0.3, 0.2}

// projectCashFlow spreads each crop's investment over its timeline and books
// its revenue at harvest. Arrays are calendar indexed (0 is January); month
// is the calendar month (1-12) planting starts in.
func projectCashFlow(crops []ranking.RankedCrop, month int) (expenses, income [Months]float64) {
	origin := ((month-1)%Months + Months) % Months
	for _, c := range crops {
		tl := CropTimeline(c.GrowthDays)
		points := [4]int{tl.LandPrep, tl.Sowing, tl.Irrigation, tl.Harvest}
		for i, p := range points {
			expenses[(origin+p)%Months] += c.Investment * expenseShares[i]
		}
		income[(origin+tl.Harvest)%Months] += c.ExpectedRevenue
	}
	return expenses, income
}

// summarize walks the monthly series. Totals are taken from the crop sums the
// report already carries, so TotalIncome always equals the report's
// TotalRevenue bit for bit.
func summarize(expenses, income [Months]float64, totalExpenses, totalIncome float64) CashFlowSummary {
	s := CashFlowSummary{TotalExpenses: totalExpenses, TotalIncome: totalIncome}
	var running, lowest float64
	for i := 0; i < Months; i++ {
		net := income[i] - expenses[i]
		s.MonthlyNet[i] = net
		running += net
		s.Cumulative[i] = running
		lowest = math.Min(lowest, running)

		switch {
		case net > 0:
			s.PositiveMonths++
		case net < 0:
			s.NegativeMonths++
		}
	}
	s.NetCashFlow = s.TotalIncome - s.TotalExpenses
	if lowest < 0 {
		s.PeakCashRequirement = -lowest
	}
	return s
}
