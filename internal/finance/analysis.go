package finance

import (
	"math"

	"crop-planner/internal/catalog"
	"crop-planner/internal/ranking"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type BreakEven struct {
	Yield        float64 `json:"breakEvenYield"`
	Price        float64 `json:"breakEvenPrice"`
	SafetyMargin float64 `json:"safetyMargin"`
}

// breakEven uses the revenue-weighted average price across crops. All values
// are zero when the shortlist yields nothing.
func breakEven(crops []ranking.RankedCrop) BreakEven {
	var investment, revenue, yield float64
	for _, c := range crops {
		investment += c.Investment
		revenue += c.ExpectedRevenue
		yield += c.ExpectedYield
	}
	if yield <= 0 || revenue <= 0 {
		return BreakEven{}
	}

	avgPrice := revenue / yield
	beYield := investment / avgPrice
	return BreakEven{
		Yield:        beYield,
		Price:        investment / yield,
		SafetyMargin: (yield - beYield) / yield * 100,
	}
}

// Scenario is one stress test; factors not under test stay at 1.
type Scenario struct {
	Name  string
	Yield float64
	Price float64
	Cost  float64
}

// Scenarios are the fixed stress tests, in reporting order.
var Scenarios = []Scenario{
	{Name: "yield_reduction_20", Yield: 0.8, Price: 1, Cost: 1},
	{Name: "yield_reduction_40", Yield: 0.6, Price: 1, Cost: 1},
	{Name: "price_reduction_15", Yield: 1, Price: 0.85, Cost: 1},
	{Name: "price_reduction_30", Yield: 1, Price: 0.7, Cost: 1},
	{Name: "cost_increase_20", Yield: 1, Price: 1, Cost: 1.2},
	{Name: "cost_increase_40", Yield: 1, Price: 1, Cost: 1.4},
}

type Sensitivity struct {
	BaseROI      float64            `json:"baseRoi"`
	Scenarios    map[string]float64 `json:"scenarios"`
	WorstCaseROI float64            `json:"worstCaseRoi"`
	BestCaseROI  float64            `json:"bestCaseRoi"`
}

// ScenarioROI recomputes the aggregate ROI under s. Revenue scales with the
// yield and price factors directly, so a zero-yield crop needs no price.
func ScenarioROI(crops []ranking.RankedCrop, s Scenario) float64 {
	var investment, revenue float64
	for _, c := range crops {
		investment += c.Investment * s.Cost
		revenue += c.ExpectedRevenue * s.Yield * s.Price
	}
	return ratioPct(revenue-investment, investment)
}

// sensitivity reports the worst and best case over the baseline and every
// scenario.
func sensitivity(crops []ranking.RankedCrop, base float64) Sensitivity {
	out := Sensitivity{
		BaseROI:      base,
		Scenarios:    make(map[string]float64, len(Scenarios)),
		WorstCaseROI: base,
		BestCaseROI:  base,
	}
	for _, s := range Scenarios {
		roi := ScenarioROI(crops, s)
		out.Scenarios[s.Name] = roi
		out.WorstCaseROI = math.Min(out.WorstCaseROI, roi)
		out.BestCaseROI = math.Max(out.BestCaseROI, roi)
	}
	return out
}

// Loan terms used for the EMI estimate.
const (
	LoanAnnualRate = 0.08
	LoanMonths     = 12
)

// Loan instruments, by amount bracket.
const (
	LoanNone        = "None"
	LoanKisanCredit = "Kisan Credit Card"
	LoanAgriTerm    = "Agricultural Term Loan"
	LoanMultiple    = "Multiple loan sources"
)

type Financing struct {
	Needed         bool    `json:"financingNeeded"`
	Recommendation string  `json:"recommendation"`
	LoanAmount     float64 `json:"loanAmount"`
	LoanType       string  `json:"loanType"`
	MonthlyEMI     float64 `json:"monthlyEmi"`
}

var rupees = message.NewPrinter(language.English)

func financing(investment, capacity float64) Financing {
	if investment <= capacity {
		return Financing{
			Recommendation: "Self-financing sufficient",
			LoanType:       LoanNone,
		}
	}

	amount := investment - capacity
	loanType := LoanMultiple
	switch {
	case amount < 100000:
		loanType = LoanKisanCredit
	case amount < 500000:
		loanType = LoanAgriTerm
	}
	return Financing{
		Needed:         true,
		Recommendation: rupees.Sprintf("Consider %s for ₹%.0f", loanType, amount),
		LoanAmount:     amount,
		LoanType:       loanType,
		MonthlyEMI:     EMI(amount, LoanMonths, LoanAnnualRate),
	}
}

// EMI is the fixed monthly instalment repaying principal over months at
// annualRate, compounded monthly.
func EMI(principal float64, months int, annualRate float64) float64 {
	if months <= 0 {
		return 0
	}
	r := annualRate / 12
	if r == 0 {
		return principal / float64(months)
	}
	growth := math.Pow(1+r, float64(months))
	return principal * r * growth / (growth - 1)
}

// CropCosts is the reference per-acre cost structure of one crop.
type CropCosts struct {
	Key            string                 `json:"key"`
	Name           string                 `json:"name"`
	Categories     []catalog.CostCategory `json:"categories"`
	ReferenceTotal float64                `json:"referenceTotal"`
	Investment     float64                `json:"investment"`
}

func costBreakdown(crops []ranking.RankedCrop) []CropCosts {
	out := make([]CropCosts, 0, len(crops))
	for _, c := range crops {
		cats := catalog.CostStructure(c.Key)
		var total float64
		for _, cat := range cats {
			total += cat.Total()
		}
		out = append(out, CropCosts{
			Key:            c.Key,
			Name:           c.Name,
			Categories:     cats,
			ReferenceTotal: total,
			Investment:     c.Investment,
		})
	}
	return out
}
