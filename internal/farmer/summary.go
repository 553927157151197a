package farmer

import (
	"math"

	"crop-planner/internal/catalog"
)

var riskCapacityMultipliers = map[string]float64{
	catalog.Low:    0.5,
	catalog.Medium: 1.0,
	catalog.High:   1.5,
}

type FinancialSummary struct {
	TotalAssets      float64 `json:"totalAssets"`
	NetWorth         float64 `json:"netWorth"`
	DebtToIncome     float64 `json:"debtToIncome"`
	InvestmentRatio  float64 `json:"investmentRatio"`
	AvailableCapital float64 `json:"availableCapital"`
	RiskCapacity     float64 `json:"riskCapacity"`
}

type LandSummary struct {
	TotalAcres         float64 `json:"totalAcres"`
	IrrigatedAcres     float64 `json:"irrigatedAcres"`
	RainfedAcres       float64 `json:"rainfedAcres"`
	IrrigationCoverage float64 `json:"irrigationCoveragePct"`
	SoilType           string  `json:"soilType"`
	IrrigationType     string  `json:"irrigationType"`
	LandValueTotal     float64 `json:"landValueTotal"`
}

type LocationSummary struct {
	State       string  `json:"state"`
	District    string  `json:"district"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Region      string  `json:"region"`
	ClimateZone string  `json:"climateZone"`
}

// Summary is the read-only view of a farmer carried in reports.
type Summary struct {
	Name          string           `json:"name"`
	Age           int              `json:"age"`
	Experience    int              `json:"experienceYears"`
	RiskTolerance string           `json:"riskTolerance"`
	Financial     FinancialSummary `json:"financial"`
	Land          LandSummary      `json:"land"`
	Location      LocationSummary  `json:"location"`
}

// FinancialSummary reports capital available for the season and how much
// loss the farmer can absorb.
func (a Attributes) FinancialSummary() FinancialSummary {
	fin, d := a.profile.Financial, a.derived
	return FinancialSummary{
		TotalAssets:      d.TotalAssets,
		NetWorth:         d.NetWorth,
		DebtToIncome:     d.DebtToIncome,
		InvestmentRatio:  d.InvestmentRatio,
		AvailableCapital: math.Min(fin.InvestmentCapacity, fin.Savings*0.7),
		RiskCapacity:     a.riskCapacity(),
	}
}

func (a Attributes) riskCapacity() float64 {
	multiplier, ok := riskCapacityMultipliers[a.profile.Financial.RiskTolerance]
	if !ok {
		multiplier = 1.0
	}
	switch dti := a.derived.DebtToIncome; {
	case dti > 0.5:
		multiplier *= 0.7
	case dti > 0.3:
		multiplier *= 0.85
	}
	return a.derived.NetWorth * 0.1 * multiplier
}

func (a Attributes) LandSummary() LandSummary {
	land := a.profile.Land
	return LandSummary{
		TotalAcres:         land.TotalAcres,
		IrrigatedAcres:     land.IrrigatedAcres,
		RainfedAcres:       land.TotalAcres - land.IrrigatedAcres,
		IrrigationCoverage: a.derived.IrrigationCoverage * 100,
		SoilType:           land.SoilType,
		IrrigationType:     land.IrrigationType,
		LandValueTotal:     land.TotalAcres * land.LandValuePerAcre,
	}
}

func (a Attributes) LocationSummary() LocationSummary {
	loc := a.profile.Location
	return LocationSummary{
		State:       loc.State,
		District:    loc.District,
		Latitude:    loc.Latitude,
		Longitude:   loc.Longitude,
		Region:      a.derived.Region,
		ClimateZone: a.derived.ClimateZone,
	}
}

func (a Attributes) Summary() Summary {
	return Summary{
		Name:          a.profile.Personal.Name,
		Age:           a.profile.Personal.Age,
		Experience:    a.profile.Personal.ExperienceYears,
		RiskTolerance: a.profile.Financial.RiskTolerance,
		Financial:     a.FinancialSummary(),
		Land:          a.LandSummary(),
		Location:      a.LocationSummary(),
	}
}
