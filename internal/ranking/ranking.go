// Package ranking shortlists the catalog crops that suit a farmer and orders
// them by risk-discounted return.
package ranking

import (
	"math"
	"sort"

	"crop-planner/internal/catalog"
	"crop-planner/internal/farmer"
)

// MaxShortlist is the number of crops a recommendation keeps.
const MaxShortlist = 5

// RankedCrop is a catalog crop with yield, price and investment adjusted to
// one farmer. Money values are per acre.
type RankedCrop struct {
	Key             string  `json:"key"`
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	Season          string  `json:"season"`
	GrowthDays      int     `json:"growthDurationDays"`
	Water           string  `json:"waterRequirement"`
	SowingSeason    string  `json:"sowingSeason"`
	HarvestTime     string  `json:"harvestTime"`
	RiskLevel       string  `json:"riskLevel"`
	ExpectedYield   float64 `json:"expectedYield"`
	Price           float64 `json:"price"`
	Investment      float64 `json:"investment"`
	ExpectedRevenue float64 `json:"expectedRevenue"`
	NetProfit       float64 `json:"netProfit"`
	ROI             float64 `json:"roi"`
	RiskScore       float64 `json:"riskScore"`
	IrrigationCost  float64 `json:"irrigationCost"`
}

// Score is the ranking key: ROI discounted by risk.
func (c RankedCrop) Score() float64 {
	return c.ROI * (1 - c.RiskScore)
}

type RiskProfile struct {
	Level        string         `json:"level"`
	Score        float64        `json:"score"`
	Distribution map[string]int `json:"distribution"`
}

type InvestmentSummary struct {
	TotalInvestment   float64 `json:"totalInvestment"`
	AffordableCrops   int     `json:"affordableCrops"`
	InvestmentPerAcre float64 `json:"investmentPerAcre"`
	UtilizationRate   float64 `json:"utilizationRate"`
}

// Recommendation is the output of Rank.
type Recommendation struct {
	Crops                []RankedCrop      `json:"crops"`
	TotalRecommendations int               `json:"totalRecommendations"`
	RiskProfile          RiskProfile       `json:"riskProfile"`
	InvestmentSummary    InvestmentSummary `json:"investmentSummary"`
}

// Rank filters the catalog for a, adjusts every eligible crop and returns the
// top MaxShortlist by Score. month (1-12) drives the seasonal price factor.
// Crops with equal scores keep catalog order. No match yields an empty
// recommendation, never an error.
func Rank(a farmer.Attributes, month int) Recommendation {
	ranked := make([]RankedCrop, 0, catalog.Len())
	for _, c := range catalog.Crops() {
		if Eligible(c, a) {
			ranked = append(ranked, adjust(c, a, month))
		}
	}

	ranked = shortlist(ranked)
	return Recommendation{
		Crops:                ranked,
		TotalRecommendations: len(ranked),
		RiskProfile:          riskProfile(ranked),
		InvestmentSummary:    investmentSummary(ranked, a),
	}
}

// shortlist orders crops by descending Score, keeping input order on ties,
// and keeps the first MaxShortlist.
func shortlist(ranked []RankedCrop) []RankedCrop {
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score() > ranked[j].Score()
	})
	if len(ranked) > MaxShortlist {
		ranked = ranked[:MaxShortlist]
	}
	return ranked
}

// Eligible reports whether c grows on a's soil, climate and region with the
// water a can supply.
func Eligible(c catalog.Crop, a farmer.Attributes) bool {
	d := a.Derived()
	return c.SupportsSoil(a.Land().SoilType) &&
		c.SupportsClimate(d.ClimateZone) &&
		c.SupportsRegion(d.Region) &&
		waterCompatible(c.Water, a.Land())
}

func waterCompatible(requirement string, land farmer.Land) bool {
	switch requirement {
	case catalog.Low:
		return true
	case catalog.Medium:
		return land.IrrigatedAcres > 0
	default:
		return land.IrrigatedAcres >= land.TotalAcres*0.5
	}
}

func adjust(c catalog.Crop, a farmer.Attributes, month int) RankedCrop {
	yield := c.BaseYield * yieldMultiplier(a)
	price := c.BasePrice * priceMultiplier(c, a, month)
	investment := c.BaseInvestment * investmentMultiplier(a)

	revenue := yield * price
	profit := revenue - investment
	var roi float64
	if investment > 0 {
		roi = profit / investment * 100
	}

	return RankedCrop{
		Key:             c.Key,
		Name:            c.Name,
		Category:        c.Category,
		Season:          c.Season,
		GrowthDays:      c.GrowthDays,
		Water:           c.Water,
		SowingSeason:    c.SowingSeason,
		HarvestTime:     c.HarvestTime,
		RiskLevel:       c.RiskLevel,
		ExpectedYield:   yield,
		Price:           price,
		Investment:      investment,
		ExpectedRevenue: revenue,
		NetProfit:       profit,
		ROI:             roi,
		RiskScore:       riskScore(c, a),
		IrrigationCost:  catalog.IrrigationCost(c.Water, a.Land().IrrigationType),
	}
}

func yieldMultiplier(a farmer.Attributes) float64 {
	soil := catalog.SoilYieldFactor(a.Land().SoilType)
	experience := math.Min(1.2, 1+0.01*float64(a.Personal().ExperienceYears))
	irrigation := 0.8 + 0.4*a.Derived().IrrigationCoverage
	return soil * experience * irrigation
}

func priceMultiplier(c catalog.Crop, a farmer.Attributes, month int) float64 {
	seasonal := 1.0
	if catalog.InSeasonWindow(c.Season, month) {
		seasonal = 1.1
	}
	return catalog.RegionalPriceFactor(a.Derived().Region) * seasonal
}

func investmentMultiplier(a farmer.Attributes) float64 {
	scale := 1.0
	if a.Land().TotalAcres > 5 {
		scale = 0.9
	}
	return scale * catalog.IrrigationInvestmentFactor(a.Land().IrrigationType)
}

func riskScore(c catalog.Crop, a farmer.Attributes) float64 {
	score := catalog.BaseRiskScore(c.RiskLevel) * catalog.ToleranceRiskMultiplier(a.Financial().RiskTolerance)
	if a.Personal().ExperienceYears > 10 {
		score *= 0.9
	}
	return math.Max(0, math.Min(1, score))
}

func riskProfile(crops []RankedCrop) RiskProfile {
	dist := map[string]int{catalog.Low: 0, catalog.Medium: 0, catalog.High: 0}
	if len(crops) == 0 {
		return RiskProfile{Level: catalog.Unknown, Distribution: dist}
	}

	var sum float64
	for _, c := range crops {
		sum += c.RiskScore
		if _, ok := dist[c.RiskLevel]; ok {
			dist[c.RiskLevel]++
		}
	}
	avg := sum / float64(len(crops))

	level := catalog.High
	switch {
	case avg < 0.3:
		level = catalog.Low
	case avg < 0.6:
		level = catalog.Medium
	}
	return RiskProfile{Level: level, Score: avg, Distribution: dist}
}

func investmentSummary(crops []RankedCrop, a farmer.Attributes) InvestmentSummary {
	if len(crops) == 0 {
		return InvestmentSummary{}
	}

	capacity := a.Financial().InvestmentCapacity
	var s InvestmentSummary
	for _, c := range crops {
		s.TotalInvestment += c.Investment
		if c.Investment <= capacity {
			s.AffordableCrops++
		}
	}
	s.InvestmentPerAcre = s.TotalInvestment / a.Land().TotalAcres
	if capacity > 0 {
		s.UtilizationRate = s.TotalInvestment / capacity * 100
	}
	return s
}
