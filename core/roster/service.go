// Package roster aggregates teachers, students and groups into the one
// payload the UI bootstraps its client-side state from.
package roster

import (
	"context"

	"github.com/pkg/errors"

	"github.com/upperenglish/backend/core/group"
	"github.com/upperenglish/backend/core/student"
	"github.com/upperenglish/backend/core/teacher"
)

type (
	// Member is a group member as shown in the aggregate listing.
	Member struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	// GroupEntry is a group together with its derived member list
	// (reverse lookup on each student's group_id).
	GroupEntry struct {
		ID       string   `json:"id"`
		Name     string   `json:"name"`
		Students []Member `json:"students"`
	}

	// Roster is the combined reference dataset. It is intentionally
	// unpaginated; the underlying fetches are capped at a page size that
	// is unbounded for practical dataset sizes.
	Roster struct {
		Teachers []teacher.Teacher `json:"teachers"`
		Students []student.Student `json:"students"`
		Groups   []GroupEntry      `json:"groups"`
	}

	Service struct {
		teachers teacher.Repository
		students student.Repository
		groups   group.Repository
	}
)

func NewService(teachers teacher.Repository, students student.Repository, groups group.Repository) *Service {
	return &Service{teachers: teachers, students: students, groups: groups}
}

// List fetches all teachers, students and groups plus each group's member
// list. All-or-nothing: a failure of any underlying fetch fails the whole
// aggregation, partial results are never returned.
func (s *Service) List(ctx context.Context) (Roster, error) {
	teachers, students, err := s.listTeachersAndStudents(ctx)
	if err != nil {
		return Roster{}, err
	}

	grps, err := s.groups.QueryAllGroups(ctx)
	if err != nil {
		return Roster{}, errors.Wrap(err, "querying groups")
	}

	entries := make([]GroupEntry, 0, len(grps))
	for _, grp := range grps {
		members, err := s.students.QueryStudentsByGroupID(ctx, grp.ID)
		if err != nil {
			return Roster{}, errors.Wrapf(err, "querying members of group %s", grp.ID)
		}
		entry := GroupEntry{ID: grp.ID, Name: grp.Name, Students: make([]Member, 0, len(members))}
		for _, m := range members {
			entry.Students = append(entry.Students, Member{ID: m.ID, Name: m.Name})
		}
		entries = append(entries, entry)
	}

	return Roster{Teachers: teachers, Students: students, Groups: entries}, nil
}

// ListTeachersAndStudents is the lighter aggregate used by forms that only
// need the two flat reference lists.
func (s *Service) ListTeachersAndStudents(ctx context.Context) ([]teacher.Teacher, []student.Student, error) {
	return s.listTeachersAndStudents(ctx)
}

func (s *Service) listTeachersAndStudents(ctx context.Context) ([]teacher.Teacher, []student.Student, error) {
	teachers, err := s.teachers.QueryAllTeachers(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "querying teachers")
	}
	students, err := s.students.QueryAllStudents(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "querying students")
	}
	return teachers, students, nil
}
