package catalog

// RiskFactor is a crop's base exposure to one hazard.
type RiskFactor struct {
	Probability float64 `json:"probability"`
	Impact      string  `json:"impact"`
	Mitigation  string  `json:"mitigation"`
}

// Crop risk tables are keyed by the lowercase first word of the crop name.
var diseaseFactors = map[string]RiskFactor{
	"wheat":      {0.3, Medium, "Fungicide application"},
	"rice":       {0.4, High, "Resistant varieties"},
	"maize":      {0.25, Medium, "Crop rotation"},
	"cotton":     {0.5, High, "IPM practices"},
	"sugarcane":  {0.2, Medium, "Healthy seed"},
	"pulses":     {0.15, Low, "Seed treatment"},
	"vegetables": {0.6, High, "Greenhouse"},
}

var pestFactors = map[string]RiskFactor{
	"wheat":      {0.2, Low, "Natural predators"},
	"rice":       {0.35, Medium, "Pest-resistant varieties"},
	"maize":      {0.3, Medium, "Biological control"},
	"cotton":     {0.6, High, "IPM strategies"},
	"sugarcane":  {0.15, Low, "Clean cultivation"},
	"pulses":     {0.25, Medium, "Crop rotation"},
	"vegetables": {0.7, High, "Integrated pest management"},
}

var regionWeatherRisk = map[string]float64{
	"North-West": 0.3,
	"North":      0.4,
	"West":       0.35,
	"South":      0.25,
}

var irrigationTypeRisk = map[string]float64{
	"Well":     0.3,
	"Canal":    0.2,
	"Borewell": 0.4,
	"Rainfed":  0.7,
	"Mixed":    0.25,
}

var soilRisk = map[string]float64{
	"Clay":       0.3,
	"Sandy":      0.4,
	"Loamy":      0.2,
	"Red Soil":   0.35,
	"Black Soil": 0.25,
	"Alluvial":   0.2,
}

var toleranceAnchors = map[string]float64{
	Low:    0.3,
	Medium: 0.5,
	High:   0.7,
}

var riskLevelWeights = map[string]float64{
	Low:    1.0,
	Medium: 0.8,
	High:   0.6,
}

// DiseaseFactor returns the disease exposure for a crop key.
func DiseaseFactor(key string) (RiskFactor, bool) {
	f, ok := diseaseFactors[key]
	return f, ok
}

// PestFactor returns the pest exposure for a crop key.
func PestFactor(key string) (RiskFactor, bool) {
	f, ok := pestFactors[key]
	return f, ok
}

// RegionWeatherRisk is the base weather probability of a region (default 0.3).
func RegionWeatherRisk(region string) float64 {
	return lookup(regionWeatherRisk, region, 0.3)
}

// IrrigationTypeRisk is the water risk of an irrigation source (default 0.4).
func IrrigationTypeRisk(irrigation string) float64 {
	return lookup(irrigationTypeRisk, irrigation, 0.4)
}

// SoilRisk is the base soil-health risk of a soil type (default 0.3).
func SoilRisk(soil string) float64 {
	return lookup(soilRisk, soil, 0.3)
}

// ToleranceAnchor maps a stated risk tolerance to a composite score (default 0.5).
func ToleranceAnchor(tolerance string) float64 {
	return lookup(toleranceAnchors, tolerance, 0.5)
}

// RiskLevelWeight discounts riskier crops in the risk-adjusted ROI (default 0.8).
func RiskLevelWeight(level string) float64 {
	return lookup(riskLevelWeights, level, 0.8)
}
