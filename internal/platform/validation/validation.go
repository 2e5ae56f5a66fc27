package validation

import (
	"fmt"
	"net/mail"
	"sort"
	"strings"
)

type Issue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Error carries every issue found in one payload.
type Error struct {
	Issues []Issue
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Field+" "+issue.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type Validator struct {
	issues []Issue
}

func New() *Validator {
	return &Validator{issues: make([]Issue, 0, 4)}
}

func (v *Validator) Add(field, reason string) {
	if v == nil {
		return
	}
	field = strings.TrimSpace(field)
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return
	}
	v.issues = append(v.issues, Issue{Field: field, Reason: reason})
}

func (v *Validator) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, "is required")
	}
}

// NotNull flags a patch key that was explicitly sent as null.
func (v *Validator) NotNull(field string, isNull bool) {
	if isNull {
		v.Add(field, "must not be null")
	}
}

func (v *Validator) Email(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, "is required")
		return
	}
	if !ValidEmail(value) {
		v.Add(field, "must be a valid email address")
	}
}

func (v *Validator) Range(field string, value, lo, hi int) {
	if value < lo || value > hi {
		v.Add(field, fmt.Sprintf("must be between %d and %d", lo, hi))
	}
}

func (v *Validator) Min(field string, value, lo int) {
	if value < lo {
		v.Add(field, fmt.Sprintf("must be at least %d", lo))
	}
}

func (v *Validator) HasIssues() bool {
	return v != nil && len(v.issues) > 0
}

func (v *Validator) Issues() []Issue {
	if v == nil || len(v.issues) == 0 {
		return nil
	}
	out := make([]Issue, len(v.issues))
	copy(out, v.issues)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Field == out[j].Field {
			return out[i].Reason < out[j].Reason
		}
		return out[i].Field < out[j].Field
	})
	return out
}

// Err returns nil when no issues were recorded.
func (v *Validator) Err() error {
	if !v.HasIssues() {
		return nil
	}
	return &Error{Issues: v.Issues()}
}

// ValidEmail accepts a bare addr-spec whose domain has at least one dot.
func ValidEmail(value string) bool {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Name != "" || addr.Address != value {
		return false
	}
	at := strings.LastIndex(addr.Address, "@")
	if at <= 0 {
		return false
	}
	domain := addr.Address[at+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}
