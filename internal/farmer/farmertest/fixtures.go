// Package farmertest provides farmer fixtures for tests.
package farmertest

import (
	"encoding/json"
	"testing"

	"crop-planner/internal/farmer"
)

// PunjabProfile is a five acre, mostly irrigated loamy farm near Ludhiana.
func PunjabProfile() farmer.Profile {
	return farmer.Profile{
		Personal: farmer.Personal{
			Name:            "Gurpreet Singh",
			Age:             42,
			ExperienceYears: 12,
			FamilySize:      5,
			Education:       "Secondary",
		},
		Financial: farmer.Financial{
			AnnualIncome:       200000,
			Savings:            150000,
			OutstandingDebt:    50000,
			RiskTolerance:      "Medium",
			InvestmentCapacity: 100000,
		},
		Land: farmer.Land{
			TotalAcres:       5,
			IrrigatedAcres:   4,
			LandValuePerAcre: 800000,
			SoilType:         "Loamy",
			IrrigationType:   "Canal",
		},
		Location: farmer.Location{
			State:     "Punjab",
			District:  "Ludhiana",
			Latitude:  30.0,
			Longitude: 75.8,
		},
	}
}

// NoMatchProfile grows nothing in the catalog: the only black-soil crop does
// not grow in a temperate zone.
func NoMatchProfile() farmer.Profile {
	p := PunjabProfile()
	p.Land.SoilType = "Black Soil"
	p.Location.Latitude = 32.5
	return p
}

// Attributes builds attributes from p, failing the test on error.
func Attributes(t testing.TB, p farmer.Profile) farmer.Attributes {
	t.Helper()
	a, err := farmer.New(p)
	if err != nil {
		t.Fatalf("farmer.New: %v", err)
	}
	return a
}

// Punjab is the attributes of PunjabProfile.
func Punjab(t testing.TB) farmer.Attributes {
	return Attributes(t, PunjabProfile())
}

// Document encodes p as a profile document, the shape job variables carry.
func Document(t testing.TB, p farmer.Profile) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal profile: %v", err)
	}
	return raw
}
