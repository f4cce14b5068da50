package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/upperenglish/backend/core/classroom"
)

type classroomRepository struct {
	db *DB
}

var _ classroom.Repository = (*classroomRepository)(nil)

func NewClassroomRepository(db *DB) *classroomRepository {
	return &classroomRepository{db: db}
}

func (r *classroomRepository) CreateClassroom(_ context.Context, cls classroom.Classroom) (classroom.Classroom, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.classroomSeq++
	cls.Seq = r.db.classroomSeq
	cls.ID = uuid.New().String()
	r.db.classrooms[cls.ID] = cls
	return cls, nil
}

func (r *classroomRepository) QueryAllClassrooms(_ context.Context) ([]classroom.Classroom, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	classrooms := make([]classroom.Classroom, 0, len(r.db.classrooms))
	for _, cls := range r.db.classrooms {
		classrooms = append(classrooms, cls)
	}
	// listing order: descending (seq, id)
	sort.Slice(classrooms, func(i, j int) bool {
		if classrooms[i].Seq != classrooms[j].Seq {
			return classrooms[i].Seq > classrooms[j].Seq
		}
		return classrooms[i].ID > classrooms[j].ID
	})
	return classrooms, nil
}

func (r *classroomRepository) DeleteClassroom(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.classrooms[id]; !ok {
		return classroom.ErrNotFound
	}
	delete(r.db.classrooms, id)
	return nil
}
