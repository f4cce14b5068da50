// Package inmemdb provides map-backed repositories for tests and local
// development; semantics mirror the mongodb backend.
package inmemdb

import (
	"sync"

	"github.com/upperenglish/backend/core/classroom"
	"github.com/upperenglish/backend/core/group"
	"github.com/upperenglish/backend/core/student"
	"github.com/upperenglish/backend/core/teacher"
)

type DB struct {
	mu sync.RWMutex

	students   map[string]student.Student
	teachers   map[string]teacher.Teacher
	groups     map[string]group.Group
	classrooms map[string]classroom.Classroom

	classroomSeq int64
	passwordHash []byte
}

func Open() *DB {
	return &DB{
		students:   make(map[string]student.Student),
		teachers:   make(map[string]teacher.Teacher),
		groups:     make(map[string]group.Group),
		classrooms: make(map[string]classroom.Classroom),
	}
}
