package group

import (
	"github.com/go-playground/validator/v10"

	"github.com/upperenglish/backend/core"
)

// Group is a named collection of students. Membership is not stored on the
// group document; it is derived from each student's GroupID back-reference.
type Group struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewGroup contains information needed to register a new Group.
type NewGroup struct {
	Name    string   `json:"name" validate:"required,notblank"`
	UserIDs []string `json:"user_ids"`
}

func (ng *NewGroup) Validate(validate *validator.Validate) error {
	ng.Name = core.NormalizeName(ng.Name)
	return validate.Struct(ng)
}

// EditGroup renames a group and reassigns membership in two phases:
// removed students are cleared first, then added students are set.
type EditGroup struct {
	ID               string   `json:"id" validate:"required"`
	Name             string   `json:"name" validate:"required,notblank"`
	RemoveStudentsID []string `json:"removeStudentsId"`
	NewStudentsID    []string `json:"newStudentsId"`
}

func (eg *EditGroup) Validate(validate *validator.Validate) error {
	eg.Name = core.NormalizeName(eg.Name)
	return validate.Struct(eg)
}
