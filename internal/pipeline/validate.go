package pipeline

import (
	"strings"

	"psikotes/internal"
	"psikotes/internal/schema"
	"psikotes/internal/util"
)

// batchState is the fold accumulator for one validation pass. Earliest row
// number wins a key; later holders of the same NIK or email error out.
type batchState struct {
	seenNIK   map[string]int
	seenEmail map[string]int
	summary   internal.BatchSummary
	valid     []internal.NormalizedUser
}

func newBatchState(capacity int) batchState {
	return batchState{
		seenNIK:   make(map[string]int, capacity),
		seenEmail: make(map[string]int, capacity),
		summary:   internal.BatchSummary{Results: make([]internal.RowOutcome, 0, capacity)},
	}
}

// ValidateBatch checks users in input order, returning the per-row outcomes
// plus the subset that passed. One bad row never blocks the rest.
func ValidateBatch(users []internal.NormalizedUser) (internal.BatchSummary, []internal.NormalizedUser) {
	state := newBatchState(len(users))
	for _, user := range users {
		state = validateNext(state, user)
	}
	return state.summary, state.valid
}

func validateNext(state batchState, user internal.NormalizedUser) batchState {
	outcome := internal.RowOutcome{
		RowNumber: user.RowNumber,
		NIK:       user.NIK,
		Name:      user.Name,
		Email:     user.Email,
		Status:    internal.RowSuccess,
	}

	if _, dup := state.seenNIK[user.NIK]; dup {
		fail(&outcome, "nik", "NIK already appears earlier in this file", internal.CodeDuplicateNIK)
		state.summary.DuplicateNiks++
		state.summary.InvalidRows++
		state.summary.Results = append(state.summary.Results, outcome)
		return state
	}
	if user.Email != "" {
		if _, dup := state.seenEmail[user.Email]; dup {
			fail(&outcome, "email", "email already appears earlier in this file", internal.CodeDuplicateEmail)
			state.summary.DuplicateEmails++
			state.summary.InvalidRows++
			state.summary.Results = append(state.summary.Results, outcome)
			return state
		}
	}

	state.seenNIK[user.NIK] = user.RowNumber
	if user.Email != "" {
		state.seenEmail[user.Email] = user.RowNumber
	}

	if violations := schema.ValidateRecord(user); len(violations) > 0 {
		fail(&outcome, violations[0].Path, joinViolations(violations), internal.CodeValidationFailed)
		state.summary.InvalidRows++
		state.summary.Results = append(state.summary.Results, outcome)
		return state
	}

	state.summary.ValidRows++
	state.summary.Results = append(state.summary.Results, outcome)
	state.valid = append(state.valid, user)
	return state
}

func fail(outcome *internal.RowOutcome, field, message string, code internal.ErrorCode) {
	outcome.Status = internal.RowError
	outcome.Field = util.StringPtr(field)
	outcome.Message = util.StringPtr(message)
	outcome.Code = &code
}

func joinViolations(violations []schema.Violation) string {
	parts := make([]string, 0, len(violations))
	for _, v := range violations {
		parts = append(parts, v.Path+" "+v.Message)
	}
	return strings.Join(parts, "; ")
}
