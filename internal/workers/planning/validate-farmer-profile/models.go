package validatefarmerprofile

import (
	"encoding/json"

	"crop-planner/internal/farmer"
)

type Input struct {
	FarmerProfile json.RawMessage `json:"farmerProfile"`
}

type Output struct {
	ProfileValid  bool           `json:"profileValid"`
	FarmerProfile farmer.Profile `json:"farmerProfile"`
	FarmerSummary farmer.Summary `json:"farmerSummary"`
}
