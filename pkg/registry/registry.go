// Package registry reads and checks the activity registry file.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"crop-planner/internal/common/validation"
)

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	return &reg, nil
}

// Save writes the registry to path, stamping LastUpdated.
func (r *ActivityRegistry) Save(path string, now time.Time) error {
	r.LastUpdated = now.UTC().Format(time.RFC3339)
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Find returns the activity serving taskType.
func (r *ActivityRegistry) Find(taskType string) (Activity, bool) {
	for _, a := range r.Activities {
		if a.TaskType == taskType {
			return a, true
		}
	}
	return Activity{}, false
}

// TaskTypes lists the registered task types in order.
func (r *ActivityRegistry) TaskTypes() []string {
	out := make([]string, 0, len(r.Activities))
	for _, a := range r.Activities {
		out = append(out, a.TaskType)
	}
	sort.Strings(out)
	return out
}

// Missing returns the entries of served that have no activity.
func (r *ActivityRegistry) Missing(served []string) []string {
	var out []string
	for _, t := range served {
		if _, ok := r.Find(t); !ok {
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}

// Validate checks that every activity has an ID and a task type, that both
// are unique and that statuses and timeouts parse.
func (r *ActivityRegistry) Validate() error {
	var problems []string
	ids := make(map[string]bool)
	types := make(map[string]bool)

	for i, a := range r.Activities {
		switch {
		case a.ID == "":
			problems = append(problems, fmt.Sprintf("activity %d: id is required", i))
		case ids[a.ID]:
			problems = append(problems, fmt.Sprintf("activity %s: duplicate id", a.ID))
		}
		ids[a.ID] = true

		switch {
		case a.TaskType == "":
			problems = append(problems, fmt.Sprintf("activity %s: taskType is required", a.ID))
		case types[a.TaskType]:
			problems = append(problems, fmt.Sprintf("activity %s: duplicate taskType %s", a.ID, a.TaskType))
		default:
			if err := validation.ValidateTaskType(a.TaskType); err != nil {
				problems = append(problems, fmt.Sprintf("activity %s: %v", a.ID, err))
			}
		}
		types[a.TaskType] = true

		if _, err := a.Schema(); err != nil {
			problems = append(problems, fmt.Sprintf("activity %s: bad inputSchema: %v", a.ID, err))
		}

		switch a.ImplementationStatus {
		case StatusPlanned, StatusInProgress, StatusCompleted, StatusVerified:
		default:
			problems = append(problems, fmt.Sprintf("activity %s: unknown status %q", a.ID, a.ImplementationStatus))
		}
		if a.Timeout != "" {
			if _, err := time.ParseDuration(a.Timeout); err != nil {
				problems = append(problems, fmt.Sprintf("activity %s: bad timeout %q", a.ID, a.Timeout))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid registry: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Schema returns the input schema of the activity. An activity without one
// accepts any object.
func (a Activity) Schema() (validation.JSONSchema, error) {
	if len(a.InputSchema) == 0 {
		return validation.JSONSchema{Type: "object", Properties: map[string]validation.Property{}}, nil
	}
	raw, err := json.Marshal(a.InputSchema)
	if err != nil {
		return validation.JSONSchema{}, err
	}
	return validation.GetSchemaFromJSON(string(raw))
}

// CheckInput validates job variables against the activity's input schema.
func (a Activity) CheckInput(vars map[string]interface{}) (*validation.ValidationResult, error) {
	schema, err := a.Schema()
	if err != nil {
		return nil, fmt.Errorf("activity %s: %w", a.ID, err)
	}
	return validation.ValidateInput(vars, schema)
}
