package filter

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxNameLength = 255

// Filter is a stored, named set of criteria used to select check-ins:
// either an explicit [start, end) date range or a trailing number of hours,
// plus subscription-status and lifecycle-state sets.
type Filter struct {
	ID              primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name            string               `json:"name" bson:"name"`
	Description     string               `json:"description,omitempty" bson:"description,omitempty"`
	StartDate       *time.Time           `json:"start_date,omitempty" bson:"start_date,omitempty"`
	EndDate         *time.Time           `json:"end_date,omitempty" bson:"end_date,omitempty"`
	Hours           *int                 `json:"hours,omitempty" bson:"hours,omitempty"`
	SatelliteName   string               `json:"satellite_server_name" bson:"satellite_server_name"`
	Status          []string             `json:"status" bson:"status"`
	State           []string             `json:"state" bson:"state"`
	Locked          bool                 `json:"locked" bson:"locked"`
	UserID          primitive.ObjectID   `json:"user_id,omitempty" bson:"user_id,omitempty"`
	OrganizationIDs []primitive.ObjectID `json:"organization_ids,omitempty" bson:"organization_ids,omitempty"`
	CreatedAt       time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at" bson:"updated_at"`
}

// ViolationKind identifies which validation rule a filter breaks.
type ViolationKind string

const (
	ViolationMissingWindow     ViolationKind = "missing_window"
	ViolationConflictingWindow ViolationKind = "conflicting_window"
	ViolationIncompleteRange   ViolationKind = "incomplete_range"
	ViolationBackwardRange     ViolationKind = "backward_range"
	ViolationMissingServer     ViolationKind = "missing_server"
	ViolationMissingStatus     ViolationKind = "missing_status"
	ViolationMissingState      ViolationKind = "missing_state"
	ViolationBadName           ViolationKind = "bad_name"
	ViolationBadDescription    ViolationKind = "bad_description"
)

// Violation is a single validation failure with a human-readable message.
type Violation struct {
	Kind    ViolationKind `json:"kind"`
	Message string        `json:"message"`
}

// InvalidCriteriaError carries every violation found by Validate in one pass.
type InvalidCriteriaError struct {
	Violations []Violation
}

func (e *InvalidCriteriaError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Message
	}
	return "invalid filter criteria: " + strings.Join(msgs, "; ")
}

// Messages returns the human-readable message of each violation, in order.
func (e *InvalidCriteriaError) Messages() []string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Message
	}
	return msgs
}

// Validate evaluates every rule and returns all violations together, so the
// result is not dependent on rule ordering. An empty slice means the filter
// is valid.
func (f *Filter) Validate() []Violation {
	var violations []Violation

	if f.StartDate == nil && f.Hours == nil {
		violations = append(violations, Violation{
			Kind:    ViolationMissingWindow,
			Message: "Please choose either a date range or number of hours",
		})
	}

	// Date range and trailing hours are mutually exclusive.
	if f.Hours != nil {
		switch {
		case f.StartDate != nil:
			violations = append(violations, Violation{
				Kind:    ViolationConflictingWindow,
				Message: "Please choose only one of the options from Additional Filter Criteria: Start Date, Number of Hours were selected",
			})
		case f.EndDate != nil:
			violations = append(violations, Violation{
				Kind:    ViolationConflictingWindow,
				Message: "Please choose only one of the options from Additional Filter Criteria: End Date, Number of Hours were selected",
			})
		}
	} else if f.StartDate != nil || f.EndDate != nil {
		if f.StartDate == nil || f.EndDate == nil {
			violations = append(violations, Violation{
				Kind:    ViolationIncompleteRange,
				Message: "Both a start date and an end date must be provided",
			})
		} else if !f.StartDate.Before(*f.EndDate) {
			violations = append(violations, Violation{
				Kind:    ViolationBackwardRange,
				Message: "The filter start date must be an earlier date than the filter end date.",
			})
		}
	}

	if strings.TrimSpace(f.SatelliteName) == "" {
		violations = append(violations, Violation{
			Kind:    ViolationMissingServer,
			Message: "A server name has not been defined in the database. The backend splice tool must execute at least one time.",
		})
	}

	if len(f.Status) == 0 {
		violations = append(violations, Violation{
			Kind:    ViolationMissingStatus,
			Message: "Please select at least one Subscription Status.",
		})
	}

	if len(f.State) == 0 {
		violations = append(violations, Violation{
			Kind:    ViolationMissingState,
			Message: "Please select at least one Lifecycle State.",
		})
	}

	if msg := checkNameFormat(f.Name); msg != "" {
		violations = append(violations, Violation{Kind: ViolationBadName, Message: msg})
	}
	if msg := checkDescriptionFormat(f.Description); msg != "" {
		violations = append(violations, Violation{Kind: ViolationBadDescription, Message: msg})
	}

	return violations
}

func checkNameFormat(name string) string {
	if strings.TrimSpace(name) == "" {
		return "Name cannot be blank"
	}
	if len(name) > maxNameLength {
		return fmt.Sprintf("Name cannot contain more than %d characters", maxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return "Name cannot contain control characters"
		}
	}
	return ""
}

func checkDescriptionFormat(description string) string {
	if len(description) > maxNameLength {
		return fmt.Sprintf("Description cannot contain more than %d characters", maxNameLength)
	}
	for _, r := range description {
		if r != '\n' && unicode.IsControl(r) {
			return "Description cannot contain control characters"
		}
	}
	return ""
}
