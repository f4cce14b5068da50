package group

import (
	"context"

	"github.com/pkg/errors"

	"github.com/upperenglish/backend/core"
	"github.com/upperenglish/backend/core/student"
)

var (
	ErrNotFound          = errors.New("group not found")
	ErrAlreadyRegistered = errors.New("Group already registered!")
)

type (
	Repository interface {
		CheckGroupNameExists(ctx context.Context, name string) (bool, error)
		CreateGroup(ctx context.Context, grp Group) (Group, error)
		QueryAllGroups(ctx context.Context) ([]Group, error)
		UpdateGroupName(ctx context.Context, id, name string) (Group, error)
		DeleteGroup(ctx context.Context, id string) error
	}

	Service struct {
		repo     Repository
		students student.Repository
	}
)

func NewService(repo Repository, students student.Repository) *Service {
	return &Service{repo: repo, students: students}
}

// Register creates the group then assigns each listed student to it.
// The member assignments run one by one after the group exists; a failure
// midway leaves earlier assignments in place.
func (s *Service) Register(ctx context.Context, ng NewGroup) (Group, error) {
	name := core.NormalizeName(ng.Name)

	exists, err := s.repo.CheckGroupNameExists(ctx, name)
	if err != nil {
		return Group{}, errors.Wrap(err, "checking group name")
	}
	if exists {
		return Group{}, core.NewValidationError(ErrAlreadyRegistered)
	}

	grp, err := s.repo.CreateGroup(ctx, Group{Name: name})
	if err != nil {
		return Group{}, errors.Wrap(err, "creating group")
	}

	for _, id := range ng.UserIDs {
		if err := s.students.SetStudentGroup(ctx, id, grp.ID); err != nil {
			return Group{}, errors.Wrapf(err, "assigning student %s", id)
		}
	}
	return grp, nil
}

// Edit renames the group and reassigns membership in two non-atomic phases:
// removed members are cleared first, then new members are set. A concurrent
// read between the phases can observe a transiently inconsistent group; the
// caller-side full reload after every mutation is the compensating re-read.
func (s *Service) Edit(ctx context.Context, eg EditGroup) (Group, error) {
	grp, err := s.repo.UpdateGroupName(ctx, eg.ID, core.NormalizeName(eg.Name))
	if err != nil {
		return Group{}, errors.Wrap(err, "updating group name")
	}

	for _, id := range eg.RemoveStudentsID {
		if err := s.students.SetStudentGroup(ctx, id, ""); err != nil {
			return Group{}, errors.Wrapf(err, "removing student %s", id)
		}
	}
	for _, id := range eg.NewStudentsID {
		if err := s.students.SetStudentGroup(ctx, id, grp.ID); err != nil {
			return Group{}, errors.Wrapf(err, "adding student %s", id)
		}
	}
	return grp, nil
}

func (s *Service) QueryAll(ctx context.Context) ([]Group, error) {
	return s.repo.QueryAllGroups(ctx)
}

// Delete removes the group document only. Members keep their GroupID
// back-reference; callers detach them through Edit when they want that.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteGroup(ctx, id)
}
