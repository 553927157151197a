package analyzecroprisk

import (
	"encoding/json"

	"crop-planner/internal/ranking"
	"crop-planner/internal/risk"
)

// Input carries the profile document and the output of rank-crops.
type Input struct {
	FarmerProfile   json.RawMessage        `json:"farmerProfile"`
	Recommendations ranking.Recommendation `json:"recommendations"`
}

type Output struct {
	RiskAnalysis     risk.Analysis `json:"riskAnalysis"`
	OverallRiskLevel string        `json:"overallRiskLevel"`
	// RequiresReview is set when the composite risk is High, for a gateway
	// that routes the plan to an extension officer.
	RequiresReview bool `json:"requiresReview"`
}
