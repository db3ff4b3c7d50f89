package invigilation

// ValidateDuties validates the final duty table against all provided criteria.
// Returns a slice of validation errors for any constraint violations.
// An empty slice indicates the table is valid.
func ValidateDuties(state *DutyState, criteria []Criterion) []DutyValidationError {
	var errors []DutyValidationError

	for _, criterion := range criteria {
		errors = append(errors, criterion.ValidateDuties(state)...)
	}

	return errors
}
