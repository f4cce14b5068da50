package student

import (
	"github.com/go-playground/validator/v10"

	"github.com/upperenglish/backend/core"
)

// Student is a registered learner. GroupID is empty while the student is
// ungrouped; it is only ever mutated through group membership edits.
type Student struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	GroupID string `json:"group_id,omitempty"`
}

// NewStudent contains information needed to register a new Student.
type NewStudent struct {
	Name string `json:"name" validate:"required,notblank"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Name = core.NormalizeName(ns.Name)
	return validate.Struct(ns)
}
