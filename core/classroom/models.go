package classroom

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/upperenglish/backend/core"
)

type (
	// TeacherRef is a point-in-time copy of a teacher; it does not follow
	// later renames of the teacher record.
	TeacherRef struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	// StudentRef snapshots one attendee and whether they were present.
	StudentRef struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Present bool   `json:"present"`
	}

	// GroupRef snapshots the group a session was held for, if any.
	GroupRef struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	// Classroom is one attendance record. It exclusively owns its
	// denormalized snapshot data: created once, deleted explicitly,
	// never updated in place. Seq is the monotonic sort key assigned
	// by the store on creation.
	Classroom struct {
		ID            string       `json:"id"`
		Seq           int64        `json:"-"`
		Teacher       TeacherRef   `json:"teacher"`
		Students      []StudentRef `json:"students"`
		Unit          int          `json:"unit"`
		Page          int          `json:"page"`
		LastWord      string       `json:"lastWord"`
		LastDictation string       `json:"lastDictation,omitempty"`
		LastReading   string       `json:"lastReading,omitempty"`
		DateTime      time.Time    `json:"dateTime"`
		DateShow      string       `json:"dateShow"`
		Group         *GroupRef    `json:"group,omitempty"`
	}
)

// NewClassroom contains information needed to register a new session record.
type NewClassroom struct {
	Teacher       TeacherRef   `json:"teacher" validate:"required"`
	Students      []StudentRef `json:"students" validate:"required,min=1"`
	Unit          int          `json:"unit" validate:"required"`
	Page          int          `json:"page" validate:"required"`
	LastWord      string       `json:"lastWord" validate:"required,notblank"`
	LastDictation string       `json:"lastDictation"`
	LastReading   string       `json:"lastReading"`
	DateTime      time.Time    `json:"dateTime" validate:"required"`
	DateShow      string       `json:"dateShow" validate:"required,notblank"`
	Group         *GroupRef    `json:"group"`
}

func (nc *NewClassroom) Validate(validate *validator.Validate) error {
	nc.LastWord = core.CleanString(nc.LastWord)
	nc.LastDictation = core.CleanString(nc.LastDictation)
	nc.LastReading = core.CleanString(nc.LastReading)
	return validate.Struct(nc)
}
