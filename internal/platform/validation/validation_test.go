package validation

import (
	"errors"
	"testing"
)

func TestValidEmail(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{value: "a@x.com", want: true},
		{value: "first.last+tag@sub.example.org", want: true},
		{value: "", want: false},
		{value: "plain", want: false},
		{value: "a@localhost", want: false},
		{value: "Ann <a@x.com>", want: false},
		{value: " a@x.com", want: false},
		{value: "a@x.", want: false},
		{value: "@x.com", want: false},
	}
	for _, tc := range tests {
		if got := ValidEmail(tc.value); got != tc.want {
			t.Fatalf("ValidEmail(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestValidatorCollectsSortedIssues(t *testing.T) {
	v := New()
	v.Required("role", " ")
	v.Email("email", "nope")
	v.Required("name", "Ann")
	v.Range("limit", 11, 0, 10)

	err := v.Err()
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if len(verr.Issues) != 3 {
		t.Fatalf("expected 3 issues, got %+v", verr.Issues)
	}
	if verr.Issues[0].Field != "email" || verr.Issues[1].Field != "limit" || verr.Issues[2].Field != "role" {
		t.Fatalf("issues not sorted by field: %+v", verr.Issues)
	}
}

func TestValidatorWithoutIssuesReturnsNil(t *testing.T) {
	v := New()
	v.Required("name", "Ann")
	v.Email("email", "a@x.com")
	v.Min("offset", 0, 0)
	if err := v.Err(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}
