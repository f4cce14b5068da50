package student

import (
	"context"

	"github.com/pkg/errors"

	"github.com/upperenglish/backend/core"
)

var (
	ErrNotFound          = errors.New("student not found")
	ErrAlreadyRegistered = errors.New("User already registered!")
)

type (
	Repository interface {
		CheckStudentNameExists(ctx context.Context, name string) (bool, error)
		CreateStudent(ctx context.Context, std Student) (Student, error)
		QueryAllStudents(ctx context.Context) ([]Student, error)
		QueryStudentsByGroupID(ctx context.Context, groupID string) ([]Student, error)
		SetStudentGroup(ctx context.Context, id, groupID string) error // empty groupID clears
		DeleteStudent(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register persists a new student. The name is stored normalized
// (trimmed + uppercased); two students may not share a normalized name.
func (s *Service) Register(ctx context.Context, ns NewStudent) (Student, error) {
	name := core.NormalizeName(ns.Name)

	exists, err := s.repo.CheckStudentNameExists(ctx, name)
	if err != nil {
		return Student{}, errors.Wrap(err, "checking student name")
	}
	if exists {
		return Student{}, core.NewValidationError(ErrAlreadyRegistered)
	}

	return s.repo.CreateStudent(ctx, Student{Name: name})
}

func (s *Service) QueryAll(ctx context.Context) ([]Student, error) {
	return s.repo.QueryAllStudents(ctx)
}

// Delete removes the student record only; classroom snapshots referencing the
// student are left untouched and the student is not pulled out of any group
// beyond what the caller does via group edits.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteStudent(ctx, id)
}
