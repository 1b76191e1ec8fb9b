package pipeline

import (
	"strings"
	"testing"

	"psikotes/internal"
)

func validUser(row int, nik, email string) internal.NormalizedUser {
	return internal.NormalizedUser{
		RowNumber: row,
		NIK:       nik,
		Name:      "Peserta " + nik[len(nik)-2:],
		Email:     email,
		Gender:    internal.GenderMale,
		Phone:     "+6281234567890",
	}
}

func TestValidateBatchDuplicateNIK(t *testing.T) {
	users := []internal.NormalizedUser{
		validUser(1, "3174012345678901", "a@example.com"),
		validUser(2, "3174012345678901", "b@example.com"),
	}
	summary, valid := ValidateBatch(users)
	if summary.ValidRows != 1 || summary.InvalidRows != 1 || summary.DuplicateNiks != 1 {
		t.Fatalf("summary=%+v", summary)
	}
	second := summary.Results[1]
	if second.Status != internal.RowError || second.Code == nil || *second.Code != internal.CodeDuplicateNIK {
		t.Fatalf("second=%+v", second)
	}
	if len(valid) != 1 || valid[0].RowNumber != 1 {
		t.Fatalf("valid=%+v", valid)
	}
}

func TestValidateBatchDuplicateNIKWinsOverFieldValidity(t *testing.T) {
	// A later duplicate never reaches schema validation, even when the row
	// itself would fail it.
	broken := validUser(2, "3174012345678901", "not-an-email")
	broken.Email = "not-an-email"
	users := []internal.NormalizedUser{
		validUser(1, "3174012345678901", "a@example.com"),
		broken,
	}
	summary, _ := ValidateBatch(users)
	if code := summary.Results[1].Code; code == nil || *code != internal.CodeDuplicateNIK {
		t.Fatalf("code=%v", code)
	}
}

func TestValidateBatchDuplicateEmail(t *testing.T) {
	users := []internal.NormalizedUser{
		validUser(1, "3174012345678901", "same@example.com"),
		validUser(2, "3174012345678902", "same@example.com"),
	}
	summary, _ := ValidateBatch(users)
	if summary.DuplicateEmails != 1 || summary.ValidRows != 1 {
		t.Fatalf("summary=%+v", summary)
	}
	if code := summary.Results[1].Code; code == nil || *code != internal.CodeDuplicateEmail {
		t.Fatalf("code=%v", code)
	}
}

func TestValidateBatchSchemaFailure(t *testing.T) {
	bad := internal.NormalizedUser{
		RowNumber: 1,
		NIK:       "123",
		Name:      "",
		Email:     "nope",
		Gender:    internal.GenderUndefined,
	}
	summary, valid := ValidateBatch([]internal.NormalizedUser{bad})
	if summary.InvalidRows != 1 || len(valid) != 0 {
		t.Fatalf("summary=%+v", summary)
	}
	outcome := summary.Results[0]
	if outcome.Code == nil || *outcome.Code != internal.CodeValidationFailed {
		t.Fatalf("outcome=%+v", outcome)
	}
	msg := *outcome.Message
	for _, field := range []string{"nik", "name", "email"} {
		if !strings.Contains(msg, field) {
			t.Fatalf("message %q misses %s", msg, field)
		}
	}
}

func TestValidateBatchCountsInvariant(t *testing.T) {
	users := []internal.NormalizedUser{
		validUser(1, "3174012345678901", "a@example.com"),
		validUser(2, "3174012345678901", "dup-nik@example.com"),
		validUser(3, "3174012345678903", "a@example.com"),
		{RowNumber: 4, NIK: "short", Name: "X", Email: "x@example.com", Gender: internal.GenderFemale},
		validUser(5, "3174012345678905", "e@example.com"),
	}
	summary, _ := ValidateBatch(users)
	if summary.ValidRows+summary.InvalidRows != len(summary.Results) {
		t.Fatalf("counts do not add up: %+v", summary)
	}
	if summary.DuplicateNiks+summary.DuplicateEmails > summary.InvalidRows {
		t.Fatalf("duplicate counts exceed invalid: %+v", summary)
	}
	if summary.ValidRows != 2 || summary.InvalidRows != 3 || summary.DuplicateNiks != 1 || summary.DuplicateEmails != 1 {
		t.Fatalf("summary=%+v", summary)
	}
}

func TestValidateBatchEmptyEmailNotDeduplicated(t *testing.T) {
	a := validUser(1, "3174012345678901", "")
	b := validUser(2, "3174012345678902", "")
	summary, _ := ValidateBatch([]internal.NormalizedUser{a, b})
	if summary.DuplicateEmails != 0 {
		t.Fatalf("summary=%+v", summary)
	}
	// Both rows still fail schema validation: email is required.
	if summary.InvalidRows != 2 {
		t.Fatalf("summary=%+v", summary)
	}
}
