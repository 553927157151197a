// Package farmer models the farmer whose land and finances a plan is built for.
package farmer

import (
	"fmt"

	"crop-planner/internal/catalog"
	"crop-planner/internal/common/errors"
)

// Bounds of the India bounding box accepted for farm coordinates.
const (
	MinLatitude  = 6.0
	MaxLatitude  = 38.0
	MinLongitude = 68.0
	MaxLongitude = 98.0
)

// Profile is the raw farmer document, grouped the way it is stored.
type Profile struct {
	Personal  Personal  `json:"personal"`
	Financial Financial `json:"financial"`
	Land      Land      `json:"land"`
	Location  Location  `json:"location"`
}

type Personal struct {
	Name            string `json:"name"`
	Age             int    `json:"age"`
	ExperienceYears int    `json:"experienceYears"`
	FamilySize      int    `json:"familySize"`
	Education       string `json:"education"`
}

type Financial struct {
	AnnualIncome       float64 `json:"annualIncome"`
	Savings            float64 `json:"savings"`
	OutstandingDebt    float64 `json:"outstandingDebt"`
	RiskTolerance      string  `json:"riskTolerance"`
	InvestmentCapacity float64 `json:"investmentCapacity"`
}

type Land struct {
	TotalAcres       float64 `json:"totalAcres"`
	IrrigatedAcres   float64 `json:"irrigatedAcres"`
	LandValuePerAcre float64 `json:"landValuePerAcre"`
	SoilType         string  `json:"soilType"`
	IrrigationType   string  `json:"irrigationType"`
}

type Location struct {
	State     string  `json:"state"`
	District  string  `json:"district"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Derived holds the values computed once from a profile.
type Derived struct {
	TotalAssets        float64 `json:"totalAssets"`
	NetWorth           float64 `json:"netWorth"`
	DebtToIncome       float64 `json:"debtToIncome"`
	InvestmentRatio    float64 `json:"investmentRatio"`
	IrrigationCoverage float64 `json:"irrigationCoverage"`
	Region             string  `json:"region"`
	ClimateZone        string  `json:"climateZone"`
}

// Attributes is a validated profile plus its derived values. It is a value
// type with no exported fields; every accessor returns a copy.
type Attributes struct {
	profile Profile
	derived Derived
}

// New validates p and computes its derived values. Out-of-range input is
// rejected with an INVALID_INPUT error.
func New(p Profile) (Attributes, error) {
	if err := check(p); err != nil {
		return Attributes{}, err
	}
	return Attributes{profile: p, derived: derive(p)}, nil
}

func check(p Profile) error {
	fin, land, loc := p.Financial, p.Land, p.Location
	switch {
	case land.TotalAcres <= 0:
		return errors.NewInvalidInputError("land.totalAcres", fmt.Sprintf("must be greater than 0, got %g", land.TotalAcres))
	case land.IrrigatedAcres < 0:
		return errors.NewInvalidInputError("land.irrigatedAcres", fmt.Sprintf("must not be negative, got %g", land.IrrigatedAcres))
	case land.IrrigatedAcres > land.TotalAcres:
		return errors.NewInvalidInputError("land.irrigatedAcres", fmt.Sprintf("%g exceeds total acres %g", land.IrrigatedAcres, land.TotalAcres))
	case land.LandValuePerAcre < 0:
		return errors.NewInvalidInputError("land.landValuePerAcre", "must not be negative")
	case fin.AnnualIncome < 0:
		return errors.NewInvalidInputError("financial.annualIncome", "must not be negative")
	case fin.Savings < 0:
		return errors.NewInvalidInputError("financial.savings", "must not be negative")
	case fin.OutstandingDebt < 0:
		return errors.NewInvalidInputError("financial.outstandingDebt", "must not be negative")
	case fin.InvestmentCapacity < 0:
		return errors.NewInvalidInputError("financial.investmentCapacity", "must not be negative")
	case !validTolerance(fin.RiskTolerance):
		return errors.NewInvalidInputError("financial.riskTolerance", fmt.Sprintf("must be Low, Medium or High, got %q", fin.RiskTolerance))
	case p.Personal.ExperienceYears < 0:
		return errors.NewInvalidInputError("personal.experienceYears", "must not be negative")
	case loc.Latitude < MinLatitude || loc.Latitude > MaxLatitude:
		return errors.NewInvalidInputError("location.latitude", fmt.Sprintf("%g is outside India", loc.Latitude))
	case loc.Longitude < MinLongitude || loc.Longitude > MaxLongitude:
		return errors.NewInvalidInputError("location.longitude", fmt.Sprintf("%g is outside India", loc.Longitude))
	}
	return nil
}

func validTolerance(t string) bool {
	return t == catalog.Low || t == catalog.Medium || t == catalog.High
}

func derive(p Profile) Derived {
	assets := p.Financial.Savings + p.Land.TotalAcres*p.Land.LandValuePerAcre
	return Derived{
		TotalAssets:        assets,
		NetWorth:           assets - p.Financial.OutstandingDebt,
		DebtToIncome:       ratio(p.Financial.OutstandingDebt, p.Financial.AnnualIncome),
		InvestmentRatio:    ratio(p.Financial.InvestmentCapacity, p.Financial.AnnualIncome),
		IrrigationCoverage: ratio(p.Land.IrrigatedAcres, p.Land.TotalAcres),
		Region:             catalog.RegionForState(p.Location.State),
		ClimateZone:        catalog.ClimateZone(p.Location.Latitude),
	}
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func (a Attributes) Profile() Profile     { return a.profile }
func (a Attributes) Personal() Personal   { return a.profile.Personal }
func (a Attributes) Financial() Financial { return a.profile.Financial }
func (a Attributes) Land() Land           { return a.profile.Land }
func (a Attributes) Location() Location   { return a.profile.Location }
func (a Attributes) Derived() Derived     { return a.derived }
