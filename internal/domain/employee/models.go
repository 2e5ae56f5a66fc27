package employee

import (
	"taskdesk/internal/domain/patch"
	"taskdesk/internal/platform/validation"
)

const MaxPageSize = 10

type Employee struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email"`
}

type CreateInput struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email"`
}

func (in CreateInput) Validate() error {
	v := validation.New()
	v.Required("name", in.Name)
	v.Required("role", in.Role)
	v.Email("email", in.Email)
	return v.Err()
}

// UpdateInput is a PATCH body; keys absent from the request stay unset.
type UpdateInput struct {
	Name  patch.Field[string] `json:"name"`
	Role  patch.Field[string] `json:"role"`
	Email patch.Field[string] `json:"email"`
}

func (in UpdateInput) Validate() error {
	v := validation.New()
	v.NotNull("name", in.Name.IsNull())
	v.NotNull("role", in.Role.IsNull())
	v.NotNull("email", in.Email.IsNull())
	if name, ok := in.Name.Get(); ok {
		v.Required("name", name)
	}
	if role, ok := in.Role.Get(); ok {
		v.Required("role", role)
	}
	if email, ok := in.Email.Get(); ok {
		v.Email("email", email)
	}
	return v.Err()
}

// Apply merges the supplied fields into emp and returns their names.
func (in UpdateInput) Apply(emp *Employee) []string {
	fields := make([]string, 0, 3)
	if in.Name.Apply(&emp.Name) {
		fields = append(fields, "name")
	}
	if in.Role.Apply(&emp.Role) {
		fields = append(fields, "role")
	}
	if in.Email.Apply(&emp.Email) {
		fields = append(fields, "email")
	}
	return fields
}
