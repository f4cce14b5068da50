package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/upperenglish/backend/core/student"
)

type studentRepository struct {
	db *DB
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(db *DB) *studentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) CheckStudentNameExists(_ context.Context, name string) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, std := range r.db.students {
		if std.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *studentRepository) CreateStudent(_ context.Context, std student.Student) (student.Student, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	std.ID = uuid.New().String()
	r.db.students[std.ID] = std
	return std, nil
}

func (r *studentRepository) QueryAllStudents(_ context.Context) ([]student.Student, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	students := make([]student.Student, 0, len(r.db.students))
	for _, std := range r.db.students {
		students = append(students, std)
	}
	return students, nil
}

func (r *studentRepository) QueryStudentsByGroupID(_ context.Context, groupID string) ([]student.Student, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	students := make([]student.Student, 0)
	for _, std := range r.db.students {
		if std.GroupID == groupID {
			students = append(students, std)
		}
	}
	return students, nil
}

func (r *studentRepository) SetStudentGroup(_ context.Context, id, groupID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	std, ok := r.db.students[id]
	if !ok {
		return student.ErrNotFound
	}
	std.GroupID = groupID
	r.db.students[id] = std
	return nil
}

func (r *studentRepository) DeleteStudent(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.students[id]; !ok {
		return student.ErrNotFound
	}
	delete(r.db.students, id)
	return nil
}
