package catalog

// Lookup tables. Every accessor falls back to a neutral default for keys it
// does not know, so unrecognized soil, region or irrigation values never fail.

var soilYieldFactors = map[string]float64{
	"Clay":       1.0,
	"Sandy":      0.8,
	"Loamy":      1.1,
	"Red Soil":   0.9,
	"Black Soil": 1.0,
	"Alluvial":   1.2,
}

var regionalPriceFactors = map[string]float64{
	"North-West": 1.1,
	"North":      1.0,
	"West":       0.95,
	"South":      0.9,
}

var irrigationInvestmentFactors = map[string]float64{
	"Well":     1.1,
	"Canal":    0.9,
	"Borewell": 1.0,
	"Rainfed":  0.8,
	"Mixed":    1.0,
}

var irrigationCostBase = map[string]float64{
	Low:    5000,
	Medium: 10000,
	High:   15000,
}

var irrigationCostFactors = map[string]float64{
	"Canal": 0.5,
	"Well":  0.8,
}

var baseRiskScores = map[string]float64{
	Low:    0.2,
	Medium: 0.5,
	High:   0.8,
}

var toleranceRiskMultipliers = map[string]float64{
	Low:  1.2,
	High: 0.8,
}

var seasonalWindows = map[string][]int{
	SeasonKharif: {6, 7, 8, 9},
	SeasonRabi:   {10, 11, 12, 1, 2},
}

var stateRegions = map[string]string{
	"Punjab":        "North-West",
	"Haryana":       "North-West",
	"Uttar Pradesh": "North",
	"Maharashtra":   "West",
	"Karnataka":     "South",
	"Tamil Nadu":    "South",
}

// RegionOther is the region of any state outside the region table.
const RegionOther = "Other"

func lookup(table map[string]float64, key string, fallback float64) float64 {
	if v, ok := table[key]; ok {
		return v
	}
	return fallback
}

// SoilYieldFactor scales yield by soil type (default 1.0).
func SoilYieldFactor(soil string) float64 {
	return lookup(soilYieldFactors, soil, 1.0)
}

// RegionalPriceFactor scales price by region (default 1.0).
func RegionalPriceFactor(region string) float64 {
	return lookup(regionalPriceFactors, region, 1.0)
}

// IrrigationInvestmentFactor scales investment by irrigation type (default 1.0).
func IrrigationInvestmentFactor(irrigation string) float64 {
	return lookup(irrigationInvestmentFactors, irrigation, 1.0)
}

// IrrigationCost is the per-acre irrigation cost of a water tier under an
// irrigation type. Unknown tiers cost as Medium.
func IrrigationCost(water, irrigation string) float64 {
	return lookup(irrigationCostBase, water, 10000) * lookup(irrigationCostFactors, irrigation, 1.0)
}

// BaseRiskScore maps a crop risk level to the ranking risk base (default 0.5).
func BaseRiskScore(level string) float64 {
	return lookup(baseRiskScores, level, 0.5)
}

// ToleranceRiskMultiplier inflates risk for cautious farmers and discounts it
// for bold ones (default 1.0).
func ToleranceRiskMultiplier(tolerance string) float64 {
	return lookup(toleranceRiskMultipliers, tolerance, 1.0)
}

// InSeasonWindow reports whether month (1-12) falls in the window of a crop
// tagged exactly Kharif or Rabi. Other tags have no window.
func InSeasonWindow(season string, month int) bool {
	for _, m := range seasonalWindows[season] {
		if m == month {
			return true
		}
	}
	return false
}

// RegionForState maps an Indian state onto its agricultural region.
func RegionForState(state string) string {
	if r, ok := stateRegions[state]; ok {
		return r
	}
	return RegionOther
}

// ClimateZone derives the climate zone from latitude.
func ClimateZone(latitude float64) string {
	switch {
	case latitude > 30:
		return "Temperate"
	case latitude > 20:
		return "Subtropical"
	default:
		return "Tropical"
	}
}
