// Package risk scores the hazards of a crop shortlist for one farmer and
// reconciles the result with the farmer's stated risk tolerance.
package risk

import (
	"math"
	"strings"

	"crop-planner/internal/catalog"
	"crop-planner/internal/farmer"
	"crop-planner/internal/ranking"
)

// Category names, in composite weighting order.
const (
	Disease = "disease"
	Pest    = "pest"
	Weather = "weather"
	Market  = "market"
	Water   = "water"
	Soil    = "soil"
)

var categoryWeights = []struct {
	name   string
	weight float64
}{
	{Disease, 0.20},
	{Pest, 0.15},
	{Weather, 0.25},
	{Market, 0.20},
	{Water, 0.15},
	{Soil, 0.05},
}

// Assessment is the risk of one category. Probability is a percentage.
type Assessment struct {
	Level       string  `json:"level"`
	Probability float64 `json:"probability"`
	Impact      string  `json:"impact"`
	Mitigation  string  `json:"mitigation"`
	Insurance   bool    `json:"insurance"`
}

// Score is a composite risk on the 0-1 scale.
type Score struct {
	Level string  `json:"level"`
	Score float64 `json:"score"`
}

type ToleranceAnalysis struct {
	RecommendedRisk        string  `json:"recommendedRisk"`
	CompatibilityScore     float64 `json:"compatibilityScore"`
	MaxLossTolerance       float64 `json:"maxLossTolerance"`
	MinProfitTarget        float64 `json:"minProfitTarget"`
	AdjustedRecommendation string  `json:"adjustedRecommendation"`
}

// Analysis is the full risk picture of a plan.
type Analysis struct {
	Overall              Score                 `json:"overall"`
	Categories           map[string]Assessment `json:"categories"`
	Economic             Score                 `json:"economic"`
	Environmental        Score                 `json:"environmental"`
	Tolerance            ToleranceAnalysis     `json:"tolerance"`
	MitigationStrategies []string              `json:"mitigationStrategies"`
}

var generalStrategies = []string{
	"Regular monitoring and early warning systems",
	"Crop insurance for high-risk scenarios",
	"Diversification of crops and income sources",
	"Building financial reserves for emergencies",
}

// Analyze assesses crops for a. It never fails: categories without data
// come back as Unknown with zero probability.
func Analyze(crops []ranking.RankedCrop, a farmer.Attributes) Analysis {
	cats := map[string]Assessment{
		Disease: DiseaseRisk(crops),
		Pest:    PestRisk(crops),
		Weather: WeatherRisk(a),
		Market:  MarketRisk(crops, a),
		Water:   WaterRisk(a),
		Soil:    SoilRisk(a),
	}

	overall := Composite(cats)
	return Analysis{
		Overall:              overall,
		Categories:           cats,
		Economic:             EconomicRisk(a),
		Environmental:        EnvironmentalRisk(cats),
		Tolerance:            Reconcile(overall.Score, a),
		MitigationStrategies: MitigationStrategies(cats),
	}
}

func unknown() Assessment {
	return Assessment{Level: catalog.Unknown, Impact: catalog.Unknown, Mitigation: "N/A"}
}

// bucket returns Low below low, Medium below high, else High.
func bucket(v, low, high float64) string {
	switch {
	case v < low:
		return catalog.Low
	case v < high:
		return catalog.Medium
	default:
		return catalog.High
	}
}

func cropKey(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// meanFactor averages the table probability of crops over the whole list.
// ok is false when no crop has a table entry.
func meanFactor(crops []ranking.RankedCrop, factor func(string) (catalog.RiskFactor, bool)) (float64, bool) {
	var sum float64
	matched := false
	for _, c := range crops {
		if f, found := factor(cropKey(c.Name)); found {
			sum += f.Probability
			matched = true
		}
	}
	if !matched {
		return 0, false
	}
	return sum / float64(len(crops)), true
}

func DiseaseRisk(crops []ranking.RankedCrop) Assessment {
	p, ok := meanFactor(crops, catalog.DiseaseFactor)
	if !ok {
		return unknown()
	}
	impact := catalog.Low
	if p > 0.3 {
		impact = catalog.Medium
	}
	return Assessment{
		Level:       bucket(p, 0.2, 0.4),
		Probability: p * 100,
		Impact:      impact,
		Mitigation:  "Regular monitoring and preventive measures",
		Insurance:   true,
	}
}

func PestRisk(crops []ranking.RankedCrop) Assessment {
	p, ok := meanFactor(crops, catalog.PestFactor)
	if !ok {
		return unknown()
	}
	impact := catalog.Low
	if p > 0.35 {
		impact = catalog.Medium
	}
	return Assessment{
		Level:       bucket(p, 0.25, 0.45),
		Probability: p * 100,
		Impact:      impact,
		Mitigation:  "Integrated Pest Management (IPM)",
		Insurance:   true,
	}
}

// WeatherRisk starts from the regional base and discounts well irrigated farms.
func WeatherRisk(a farmer.Attributes) Assessment {
	p := catalog.RegionWeatherRisk(a.Derived().Region)
	switch cov := a.Derived().IrrigationCoverage; {
	case cov > 0.8:
		p *= 0.7
	case cov > 0.5:
		p *= 0.85
	}
	impact := catalog.Medium
	if p > 0.35 {
		impact = catalog.High
	}
	return Assessment{
		Level:       bucket(p, 0.25, 0.4),
		Probability: p * 100,
		Impact:      impact,
		Mitigation:  "Weather monitoring and contingency planning",
		Insurance:   true,
	}
}

// MarketRisk rewards category diversity and penalises heavy debt.
func MarketRisk(crops []ranking.RankedCrop, a farmer.Attributes) Assessment {
	p := 0.35
	if len(crops) > 0 {
		categories := make(map[string]struct{})
		for _, c := range crops {
			categories[c.Category] = struct{}{}
		}
		switch n := len(categories); {
		case n > 3:
			p *= 0.8
		case n == 1:
			p *= 1.2
		}
	}
	if a.Derived().DebtToIncome > 0.5 {
		p *= 1.3
	}
	return Assessment{
		Level:       bucket(p, 0.3, 0.5),
		Probability: p * 100,
		Impact:      catalog.Medium,
		Mitigation:  "Market diversification and forward contracts",
		Insurance:   false,
	}
}

func WaterRisk(a farmer.Attributes) Assessment {
	var tier float64
	switch cov := a.Derived().IrrigationCoverage; {
	case cov < 0.3:
		tier = 0.6
	case cov < 0.6:
		tier = 0.4
	default:
		tier = 0.25
	}
	p := (tier + catalog.IrrigationTypeRisk(a.Land().IrrigationType)) / 2
	impact := catalog.Medium
	if p > 0.4 {
		impact = catalog.High
	}
	return Assessment{
		Level:       bucket(p, 0.3, 0.5),
		Probability: p * 100,
		Impact:      impact,
		Mitigation:  "Water conservation and multiple sources",
		Insurance:   false,
	}
}

func SoilRisk(a farmer.Attributes) Assessment {
	p := catalog.SoilRisk(a.Land().SoilType)
	switch exp := a.Personal().ExperienceYears; {
	case exp > 15:
		p *= 0.8
	case exp < 5:
		p *= 1.2
	}
	return Assessment{
		Level:       bucket(p, 0.25, 0.4),
		Probability: p * 100,
		Impact:      catalog.Medium,
		Mitigation:  "Soil testing and organic matter management",
		Insurance:   false,
	}
}

// Composite is the weighted mean of the category probabilities on the 0-1
// scale. A missing or Unknown category contributes zero but keeps its weight.
func Composite(cats map[string]Assessment) Score {
	var weighted, total float64
	for _, cw := range categoryWeights {
		weighted += cats[cw.name].Probability / 100 * cw.weight
		total += cw.weight
	}
	score := weighted / total
	return Score{Level: bucket(score, 0.3, 0.5), Score: score}
}

// EconomicRisk combines debt, investment and cash-flow pressure. Ratios over
// a zero income count as zero.
func EconomicRisk(a farmer.Attributes) Score {
	fin, d := a.Financial(), a.Derived()
	debt := math.Min(1, d.DebtToIncome*2)
	investment := 1 - d.InvestmentRatio
	var savingsRatio float64
	if fin.AnnualIncome > 0 {
		savingsRatio = fin.Savings / fin.AnnualIncome
	}
	cashFlow := 1 - savingsRatio

	score := debt*0.4 + investment*0.3 + cashFlow*0.3
	return Score{Level: bucket(score, 0.3, 0.6), Score: score}
}

func EnvironmentalRisk(cats map[string]Assessment) Score {
	score := (cats[Weather].Probability*0.4 + cats[Water].Probability*0.4 + cats[Soil].Probability*0.2) / 100
	return Score{Level: bucket(score, 0.3, 0.5), Score: score}
}

// Reconcile compares a composite score with the farmer's tolerance anchor.
func Reconcile(composite float64, a farmer.Attributes) ToleranceAnalysis {
	anchor := catalog.ToleranceAnchor(a.Financial().RiskTolerance)

	out := ToleranceAnalysis{
		CompatibilityScore: math.Max(0, 100-math.Abs(composite-anchor)*100),
		MaxLossTolerance:   a.Financial().Savings * 0.3,
		MinProfitTarget:    a.Financial().AnnualIncome * 0.1,
	}
	switch {
	case composite > anchor+0.2:
		out.RecommendedRisk = "Lower risk crops recommended"
		out.AdjustedRecommendation = "Consider lower-risk crops or insurance"
	case composite < anchor-0.2:
		out.RecommendedRisk = "Higher return crops possible"
		out.AdjustedRecommendation = "Can consider higher-return, higher-risk options"
	default:
		out.RecommendedRisk = "Current plan suitable"
		out.AdjustedRecommendation = "Current plan aligns with risk tolerance"
	}
	return out
}

// MitigationStrategies lists the mitigation of every Medium or High category
// in weighting order, then the general strategies, without duplicates.
func MitigationStrategies(cats map[string]Assessment) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, cw := range categoryWeights {
		c, ok := cats[cw.name]
		if ok && (c.Level == catalog.Medium || c.Level == catalog.High) {
			add(c.Mitigation + " for " + c.Level + " risk")
		}
	}
	for _, s := range generalStrategies {
		add(s)
	}
	return out
}
