package rankcrops

import (
	"encoding/json"

	"crop-planner/internal/ranking"
)

type Input struct {
	FarmerProfile json.RawMessage `json:"farmerProfile"`
	// ReferenceMonth pins the planning month; 0 defers to the planner config.
	ReferenceMonth int `json:"referenceMonth,omitempty"`
}

type Output struct {
	Recommendations    ranking.Recommendation `json:"recommendations"`
	ReferenceMonth     int                    `json:"referenceMonth"`
	HasRecommendations bool                   `json:"hasRecommendations"`
	TopCrop            string                 `json:"topCrop,omitempty"`
}
