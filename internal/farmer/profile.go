package farmer

import (
	"encoding/json"
	"fmt"
	"os"

	"crop-planner/internal/common/errors"
	"crop-planner/internal/common/validation"
)

// ProfileSchema describes the stored farmer document.
var ProfileSchema = validation.JSONSchema{
	Type:     "object",
	Required: []string{"personal", "financial", "land", "location"},
	Properties: map[string]validation.Property{
		"personal": {
			Type:     "object",
			Required: []string{"name", "experienceYears"},
			Properties: map[string]validation.Property{
				"name":            {Type: "string", MinLength: validation.Int(1)},
				"age":             {Type: "integer", Minimum: validation.Float(0)},
				"experienceYears": {Type: "integer", Minimum: validation.Float(0)},
				"familySize":      {Type: "integer", Minimum: validation.Float(0)},
				"education":       {Type: "string"},
			},
		},
		"financial": {
			Type:     "object",
			Required: []string{"annualIncome", "savings", "riskTolerance", "investmentCapacity"},
			Properties: map[string]validation.Property{
				"annualIncome":       {Type: "number", Minimum: validation.Float(0)},
				"savings":            {Type: "number", Minimum: validation.Float(0)},
				"outstandingDebt":    {Type: "number", Minimum: validation.Float(0)},
				"riskTolerance":      {Type: "string", Enum: []string{"Low", "Medium", "High"}},
				"investmentCapacity": {Type: "number", Minimum: validation.Float(0)},
			},
		},
		"land": {
			Type:     "object",
			Required: []string{"totalAcres", "irrigatedAcres", "soilType", "irrigationType"},
			Properties: map[string]validation.Property{
				"totalAcres":       {Type: "number", Minimum: validation.Float(0)},
				"irrigatedAcres":   {Type: "number", Minimum: validation.Float(0)},
				"landValuePerAcre": {Type: "number", Minimum: validation.Float(0)},
				"soilType":         {Type: "string", MinLength: validation.Int(1)},
				"irrigationType":   {Type: "string", MinLength: validation.Int(1)},
			},
		},
		"location": {
			Type:     "object",
			Required: []string{"state", "latitude", "longitude"},
			Properties: map[string]validation.Property{
				"state":     {Type: "string", MinLength: validation.Int(1)},
				"district":  {Type: "string"},
				"latitude":  {Type: "number", Minimum: validation.Float(MinLatitude), Maximum: validation.Float(MaxLatitude)},
				"longitude": {Type: "number", Minimum: validation.Float(MinLongitude), Maximum: validation.Float(MaxLongitude)},
			},
		},
	},
}

// DecodeProfile checks raw against ProfileSchema and decodes it. It does not
// apply the cross-field checks of New.
func DecodeProfile(raw []byte) (Profile, error) {
	result, err := validation.ValidateDocument(raw, ProfileSchema)
	if err != nil {
		return Profile{}, errors.NewProfileDecodeFailedError(err)
	}
	if !result.Valid {
		return Profile{}, errors.NewProfileSchemaInvalidError(result.GetErrorMessages())
	}

	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return Profile{}, errors.NewProfileDecodeFailedError(err)
	}
	return p, nil
}

// Decode turns a profile document into validated attributes.
func Decode(raw []byte) (Attributes, error) {
	p, err := DecodeProfile(raw)
	if err != nil {
		return Attributes{}, err
	}
	return New(p)
}

// Encode writes the profile document of a.
func Encode(a Attributes) ([]byte, error) {
	return json.MarshalIndent(a.profile, "", "  ")
}

// LoadFile reads and decodes a profile document from path.
func LoadFile(path string) (Attributes, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Attributes{}, fmt.Errorf("read profile %s: %w", path, err)
	}
	return Decode(raw)
}

// SaveFile writes the profile document of a to path.
func SaveFile(path string, a Attributes) error {
	raw, err := Encode(a)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := os.WriteFile(path, append(raw, '\n'), 0o644); err != nil {
		return fmt.Errorf("write profile %s: %w", path, err)
	}
	return nil
}
