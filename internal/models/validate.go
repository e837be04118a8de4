package models

// Enumerated values accepted at the API boundary. The original data model
// accepted arbitrary strings; unrecognized values are rejected here instead.
const (
	StatusOpen          = "Open"
	StatusInProgress    = "In Progress"
	StatusPendingReview = "Pending Review"
	StatusClosed        = "Closed"
	StatusOnHold        = "On Hold"

	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
	PriorityUrgent = "Urgent"

	ResolutionWon       = "Won"
	ResolutionLost      = "Lost"
	ResolutionSettled   = "Settled"
	ResolutionDismissed = "Dismissed"
	ResolutionConverted = "Converted"
)

// CaseTypes is the fixed category list shared by validation and the
// dashboard type histogram.
var CaseTypes = []string{"Criminal", "Corporate", "Family", "Real Estate", "IP", "Labor", "Immigration"}

var (
	statuses    = []string{StatusOpen, StatusInProgress, StatusPendingReview, StatusClosed, StatusOnHold}
	priorities  = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
	resolutions = []string{ResolutionWon, ResolutionLost, ResolutionSettled, ResolutionDismissed, ResolutionConverted}
)

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func ValidStatus(s string) bool   { return contains(statuses, s) }
func ValidPriority(s string) bool { return contains(priorities, s) }
func ValidCaseType(s string) bool { return contains(CaseTypes, s) }

// ValidResolution accepts the empty string: a case is unresolved until closed.
func ValidResolution(s string) bool { return s == "" || contains(resolutions, s) }

// ValidateNewClient checks required client fields before create.
func ValidateNewClient(c *Client) error {
	var missing []string
	if c.Name == "" {
		missing = append(missing, "name is required")
	}
	if c.Email == "" {
		missing = append(missing, "email is required")
	}
	if len(missing) > 0 {
		return NewValidationError(missing...)
	}
	return nil
}

// ValidateNewCase checks required fields and enum values before create.
// Defaults (status Open, priority Medium) are applied by the service before
// this runs, so empty status/priority never reach here.
func ValidateNewCase(c *Case) error {
	var bad []string
	if c.CaseNumber == "" {
		bad = append(bad, "caseNumber is required")
	}
	if c.Title == "" {
		bad = append(bad, "title is required")
	}
	if c.Type == "" {
		bad = append(bad, "type is required")
	} else if !ValidCaseType(c.Type) {
		bad = append(bad, "type must be one of the known case types")
	}
	if c.Client.IsZero() {
		bad = append(bad, "clientId is required")
	}
	if !ValidStatus(c.Status) {
		bad = append(bad, "status is not a recognized value")
	}
	if !ValidPriority(c.Priority) {
		bad = append(bad, "priority is not a recognized value")
	}
	if !ValidResolution(c.Resolution) {
		bad = append(bad, "resolution is not a recognized value")
	}
	if len(bad) > 0 {
		return NewValidationError(bad...)
	}
	return nil
}

// ValidateCasePatch checks enum values on whichever fields the patch carries.
func ValidateCasePatch(p *CasePatch) error {
	var bad []string
	if p.Status != nil && !ValidStatus(*p.Status) {
		bad = append(bad, "status is not a recognized value")
	}
	if p.Priority != nil && !ValidPriority(*p.Priority) {
		bad = append(bad, "priority is not a recognized value")
	}
	if p.Type != nil && !ValidCaseType(*p.Type) {
		bad = append(bad, "type must be one of the known case types")
	}
	if p.Resolution != nil && !ValidResolution(*p.Resolution) {
		bad = append(bad, "resolution is not a recognized value")
	}
	if p.CaseNumber != nil && *p.CaseNumber == "" {
		bad = append(bad, "caseNumber cannot be empty")
	}
	if p.Title != nil && *p.Title == "" {
		bad = append(bad, "title cannot be empty")
	}
	if len(bad) > 0 {
		return NewValidationError(bad...)
	}
	return nil
}
