package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/upperenglish/backend/core/teacher"
)

type teacherRepository struct {
	db *DB
}

var _ teacher.Repository = (*teacherRepository)(nil)

func NewTeacherRepository(db *DB) *teacherRepository {
	return &teacherRepository{db: db}
}

func (r *teacherRepository) CreateTeacher(_ context.Context, tch teacher.Teacher) (teacher.Teacher, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	tch.ID = uuid.New().String()
	r.db.teachers[tch.ID] = tch
	return tch, nil
}

func (r *teacherRepository) QueryAllTeachers(_ context.Context) ([]teacher.Teacher, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	teachers := make([]teacher.Teacher, 0, len(r.db.teachers))
	for _, tch := range r.db.teachers {
		teachers = append(teachers, tch)
	}
	return teachers, nil
}
