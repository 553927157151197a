package plancropfinances

import (
	"encoding/json"

	"crop-planner/internal/finance"
	"crop-planner/internal/ranking"
	"crop-planner/internal/risk"
)

// Input carries the profile document and, when the process ran rank-crops
// first, its recommendations. Without recommendations the worker runs the
// whole plan itself.
type Input struct {
	FarmerProfile   json.RawMessage         `json:"farmerProfile"`
	Recommendations *ranking.Recommendation `json:"recommendations,omitempty"`
	ReferenceMonth  int                     `json:"referenceMonth,omitempty"`
}

type Output struct {
	FinancialPlan   finance.Report `json:"financialPlan"`
	FinancialHealth string         `json:"financialHealth"`
	FinancingNeeded bool           `json:"financingNeeded"`
	ReferenceMonth  int            `json:"referenceMonth"`

	// Set only when the worker ran the whole plan.
	ReportID        string                  `json:"reportId,omitempty"`
	Recommendations *ranking.Recommendation `json:"recommendations,omitempty"`
	RiskAnalysis    *risk.Analysis          `json:"riskAnalysis,omitempty"`
}
