package teacher

import (
	"context"

	"github.com/pkg/errors"

	"github.com/upperenglish/backend/core"
)

var ErrNotFound = errors.New("teacher not found")

type (
	Repository interface {
		CreateTeacher(ctx context.Context, tch Teacher) (Teacher, error)
		QueryAllTeachers(ctx context.Context) ([]Teacher, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Add(ctx context.Context, name string) (Teacher, error) {
	name = core.CleanString(name)
	if name == "" {
		return Teacher{}, core.NewValidationError(errors.New("teacher name is required"))
	}
	return s.repo.CreateTeacher(ctx, Teacher{Name: name})
}

func (s *Service) QueryAll(ctx context.Context) ([]Teacher, error) {
	return s.repo.QueryAllTeachers(ctx)
}
