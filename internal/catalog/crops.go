// Package catalog holds the static agronomic and economic reference data the
// planner works from. Every accessor returns copies; the tables themselves
// are never mutated after package initialization.
package catalog

// Tiers shared by water requirement, risk levels and risk tolerance.
const (
	Low    = "Low"
	Medium = "Medium"
	High   = "High"

	// Unknown marks an assessment with no supporting data.
	Unknown = "Unknown"
)

// Season tags used by the seasonal price factor.
const (
	SeasonKharif = "Kharif"
	SeasonRabi   = "Rabi"
)

// AllRegions is the region set entry meaning "grows anywhere".
const AllRegions = "All"

// Crop is one catalog entry. Yield, price and investment are per-acre baselines.
type Crop struct {
	Key            string   `json:"key"`
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Season         string   `json:"season"`
	GrowthDays     int      `json:"growthDurationDays"`
	Water          string   `json:"waterRequirement"`
	Soils          []string `json:"soilTypes"`
	Climates       []string `json:"climateZones"`
	Regions        []string `json:"regions"`
	BaseYield      float64  `json:"baseYield"`
	BasePrice      float64  `json:"basePrice"`
	BaseInvestment float64  `json:"baseInvestment"`
	SowingSeason   string   `json:"sowingSeason"`
	HarvestTime    string   `json:"harvestTime"`
	RiskLevel      string   `json:"riskLevel"`
	DiseaseRisk    string   `json:"diseaseRisk"`
	PestRisk       string   `json:"pestRisk"`
}

// SupportsSoil reports whether soil is in the crop's soil set.
func (c Crop) SupportsSoil(soil string) bool {
	return contains(c.Soils, soil)
}

// SupportsClimate reports whether zone is in the crop's climate set.
func (c Crop) SupportsClimate(zone string) bool {
	return contains(c.Climates, zone)
}

// SupportsRegion reports whether region is served, honouring the "All" entry.
func (c Crop) SupportsRegion(region string) bool {
	return contains(c.Regions, AllRegions) || contains(c.Regions, region)
}

func (c Crop) clone() Crop {
	c.Soils = append([]string(nil), c.Soils...)
	c.Climates = append([]string(nil), c.Climates...)
	c.Regions = append([]string(nil), c.Regions...)
	return c
}

// crops is ordered; the order is the ranking tie-break.
var crops = [...]Crop{
	{
		Key: "wheat", Name: "Wheat", Category: "Cereal", Season: SeasonRabi, GrowthDays: 120,
		Water: Medium, Soils: []string{"Loamy", "Clay"}, Climates: []string{"Temperate", "Subtropical"},
		Regions:   []string{"North-West", "North"},
		BaseYield: 3.5, BasePrice: 2200, BaseInvestment: 25000,
		SowingSeason: "October-November", HarvestTime: "March-April",
		RiskLevel: Low, DiseaseRisk: Medium, PestRisk: Low,
	},
	{
		Key: "rice", Name: "Rice", Category: "Cereal", Season: SeasonKharif, GrowthDays: 150,
		Water: High, Soils: []string{"Clay", "Alluvial"}, Climates: []string{"Tropical", "Subtropical"},
		Regions:   []string{"North", "South", "West"},
		BaseYield: 4.0, BasePrice: 1800, BaseInvestment: 30000,
		SowingSeason: "June-July", HarvestTime: "October-November",
		RiskLevel: Medium, DiseaseRisk: High, PestRisk: Medium,
	},
	{
		Key: "maize", Name: "Maize", Category: "Cereal", Season: "Kharif/Rabi", GrowthDays: 100,
		Water: Medium, Soils: []string{"Loamy", "Sandy"}, Climates: []string{"Tropical", "Subtropical"},
		Regions:   []string{"North-West", "West", "South"},
		BaseYield: 3.0, BasePrice: 1600, BaseInvestment: 20000,
		SowingSeason: "June-July / January-February", HarvestTime: "September-October / April-May",
		RiskLevel: Medium, DiseaseRisk: Medium, PestRisk: Medium,
	},
	{
		Key: "cotton", Name: "Cotton", Category: "Fiber", Season: SeasonKharif, GrowthDays: 180,
		Water: Medium, Soils: []string{"Black Soil", "Red Soil"}, Climates: []string{"Tropical", "Subtropical"},
		Regions:   []string{"West", "South"},
		BaseYield: 1.5, BasePrice: 6000, BaseInvestment: 35000,
		SowingSeason: "May-June", HarvestTime: "October-December",
		RiskLevel: High, DiseaseRisk: High, PestRisk: High,
	},
	{
		Key: "sugarcane", Name: "Sugarcane", Category: "Cash Crop", Season: "Annual", GrowthDays: 365,
		Water: High, Soils: []string{"Alluvial", "Clay"}, Climates: []string{"Tropical", "Subtropical"},
		Regions:   []string{"North", "West", "South"},
		BaseYield: 80, BasePrice: 300, BaseInvestment: 50000,
		SowingSeason: "February-March", HarvestTime: "November-March",
		RiskLevel: Medium, DiseaseRisk: Medium, PestRisk: Low,
	},
	{
		Key: "pulses", Name: "Pulses (Chickpea)", Category: "Pulse", Season: SeasonRabi, GrowthDays: 120,
		Water: Low, Soils: []string{"Loamy", "Sandy"}, Climates: []string{"Temperate", "Subtropical"},
		Regions:   []string{"North-West", "North", "West"},
		BaseYield: 1.2, BasePrice: 4500, BaseInvestment: 15000,
		SowingSeason: "October-November", HarvestTime: "March-April",
		RiskLevel: Low, DiseaseRisk: Low, PestRisk: Low,
	},
	{
		Key: "vegetables", Name: "Mixed Vegetables", Category: "Horticulture", Season: "Short-term", GrowthDays: 60,
		Water: High, Soils: []string{"Loamy", "Alluvial"}, Climates: []string{"Tropical", "Subtropical"},
		Regions:   []string{AllRegions},
		BaseYield: 8.0, BasePrice: 8000, BaseInvestment: 40000,
		SowingSeason: "Year-round", HarvestTime: "60-90 days",
		RiskLevel: Medium, DiseaseRisk: High, PestRisk: High,
	},
}

// Crops returns the catalog in its fixed order.
func Crops() []Crop {
	out := make([]Crop, len(crops))
	for i, c := range crops {
		out[i] = c.clone()
	}
	return out
}

// Lookup finds a crop by key.
func Lookup(key string) (Crop, bool) {
	for _, c := range crops {
		if c.Key == key {
			return c.clone(), true
		}
	}
	return Crop{}, false
}

// Len is the number of catalog entries.
func Len() int {
	return len(crops)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
