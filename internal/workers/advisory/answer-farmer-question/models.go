package answerfarmerquestion

import "crop-planner/internal/advisor"

// Input holds either a question or an emergency situation. An emergency
// takes precedence.
type Input struct {
	Question  string `json:"question,omitempty"`
	Emergency string `json:"emergency,omitempty"`
	// Crop narrows the tips returned alongside the answer.
	Crop string `json:"crop,omitempty"`
}

type Output struct {
	Answer string         `json:"answer"`
	Intent advisor.Intent `json:"intent"`
	Tips   []string       `json:"tips"`
}

// IntentEmergency labels answers to an emergency situation.
const IntentEmergency = "emergency"
