package sendcropreport

import (
	"encoding/json"

	"crop-planner/internal/finance"
	"crop-planner/internal/ranking"
	"crop-planner/internal/risk"
)

// Input is the process state after the planning workers ran.
type Input struct {
	FarmerProfile   json.RawMessage        `json:"farmerProfile"`
	ReportID        string                 `json:"reportId,omitempty"`
	ReferenceMonth  int                    `json:"referenceMonth"`
	Recommendations ranking.Recommendation `json:"recommendations"`
	RiskAnalysis    risk.Analysis          `json:"riskAnalysis"`
	FinancialPlan   finance.Report         `json:"financialPlan"`
	Recipient       Recipient              `json:"recipient"`
}

type Recipient struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	// Carrier selects the e-mail-to-SMS gateway when gateway delivery is on.
	Carrier string `json:"carrier,omitempty"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	ReportID       string `json:"reportId"`
	Status         string `json:"status"` // "sent", "failed", "disabled"
	EmailStatus    string `json:"emailStatus"`
	SMSStatus      string `json:"smsStatus"`
	SentAt         string `json:"sentAt"` // ISO 8601
}

// Statuses
const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

// Channels
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)
