package classroom

import (
	"context"
	"sort"

	"github.com/pkg/errors"
)

// PageSize is the fixed number of records per listing page.
const PageSize = 8

var ErrNotFound = errors.New("classroom not found")

type (
	// Repository yields classrooms in listing order: descending by
	// (seq, id). Both the filtered and unfiltered listings iterate this
	// one index; the search predicate is applied during the scan.
	Repository interface {
		CreateClassroom(ctx context.Context, cls Classroom) (Classroom, error)
		QueryAllClassrooms(ctx context.Context) ([]Classroom, error)
		DeleteClassroom(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
	}

	// ListOptions selects one page of the listing. After resumes forward
	// iteration, Before backward; Search filters with the OR-predicate.
	ListOptions struct {
		Search string
		After  *Cursor
		Before *Cursor
	}

	// StudentListOptions selects one page of the sessions mentioning a
	// named student.
	StudentListOptions struct {
		Student string
		After   *Cursor
		Before  *Cursor
	}

	// Page is one listing page. After is set when a further page exists
	// forward, Before when a prior page exists. Total is the size of the
	// whole filtered set, not of this page.
	Page struct {
		Items  []Classroom
		After  *Cursor
		Before *Cursor
		Total  int
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register persists a new session record; the store assigns its ID and
// monotonic sequence value.
func (s *Service) Register(ctx context.Context, nc NewClassroom) (Classroom, error) {
	cls := Classroom{
		Teacher:       nc.Teacher,
		Students:      nc.Students,
		Unit:          nc.Unit,
		Page:          nc.Page,
		LastWord:      nc.LastWord,
		LastDictation: nc.LastDictation,
		LastReading:   nc.LastReading,
		DateTime:      nc.DateTime,
		DateShow:      nc.DateShow,
		Group:         nc.Group,
	}
	return s.repo.CreateClassroom(ctx, cls)
}

// List returns one page of session records, newest first, optionally
// filtered by a free-text search term.
func (s *Service) List(ctx context.Context, opts ListOptions) (Page, error) {
	return s.list(ctx, opts.After, opts.Before, func(c Classroom) bool {
		return c.Matches(opts.Search)
	})
}

// ListByStudent returns one page of the session records mentioning the
// named student.
func (s *Service) ListByStudent(ctx context.Context, opts StudentListOptions) (Page, error) {
	return s.list(ctx, opts.After, opts.Before, func(c Classroom) bool {
		return c.MentionsStudent(opts.Student)
	})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteClassroom(ctx, id)
}

func (s *Service) list(ctx context.Context, after, before *Cursor, match func(Classroom) bool) (Page, error) {
	all, err := s.repo.QueryAllClassrooms(ctx)
	if err != nil {
		return Page{}, errors.Wrap(err, "querying classrooms")
	}

	matching := make([]Classroom, 0, len(all))
	for _, cls := range all {
		if match(cls) {
			matching = append(matching, cls)
		}
	}

	page := paginate(matching, after, before)
	page.Total = len(matching)
	return page, nil
}

// paginate slices one page out of the filtered, descending-ordered set.
// The returned After cursor is the first record of the next page, so a
// client resuming with it visits every record exactly once; Before is the
// last record of the previous page, symmetrically.
func paginate(matching []Classroom, after, before *Cursor) Page {
	var start, end int

	// seek returns the index of the first record at or past the cursor
	// in iteration order.
	seek := func(cur Cursor) int {
		return sort.Search(len(matching), func(i int) bool {
			return !matching[i].cursor().Before(cur)
		})
	}

	switch {
	case after != nil:
		start = seek(*after)
		end = start + PageSize
	case before != nil:
		end = seek(*before)
		if end < len(matching) && matching[end].cursor() == *before {
			end++
		}
		start = end - PageSize
		if start < 0 {
			start = 0
		}
	default:
		start, end = 0, PageSize
	}
	if end > len(matching) {
		end = len(matching)
	}

	page := Page{Items: matching[start:end]}
	if end < len(matching) {
		cur := matching[end].cursor()
		page.After = &cur
	}
	if start > 0 {
		cur := matching[start-1].cursor()
		page.Before = &cur
	}
	return page
}
