package echoapi

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/upperenglish/backend/core"
	"github.com/upperenglish/backend/core/classroom"
)

type classroomApi struct {
	svc      *classroom.Service
	validate *validator.Validate
}

func registerClassroomAPI(g *echo.Group, svc *classroom.Service, validate *validator.Validate) {
	api := classroomApi{svc: svc, validate: validate}

	g.POST("/registerClassroom", api.register)
	g.GET("/listClassrooms", api.list)
	g.GET("/listClassroomsByStudent", api.listByStudent)
	g.DELETE("/deleteClassroom", api.destroy)
}

type (
	ClassroomResponse struct {
		Classroom classroom.Classroom `json:"classroom"`
	}

	// ClassroomListResponse is one listing page; After/Before are the
	// comma-joined wire form of the resume cursors.
	ClassroomListResponse struct {
		Classrooms []classroom.Classroom `json:"classrooms"`
		After      string                `json:"after,omitempty"`
		Before     string                `json:"before,omitempty"`
		Total      int                   `json:"total"`
	}

	// StudentClassroom is one record of the per-student listing: the same
	// snapshot flattened around the student in question, with their
	// present flag pulled up.
	StudentClassroom struct {
		ID            string               `json:"id"`
		Teacher       classroom.TeacherRef `json:"teacher"`
		Student       string               `json:"student"`
		Unit          int                  `json:"unit"`
		Page          int                  `json:"page"`
		LastWord      string               `json:"lastWord"`
		LastDictation string               `json:"lastDictation,omitempty"`
		LastReading   string               `json:"lastReading,omitempty"`
		DateTime      time.Time            `json:"dateTime"`
		DateShow      string               `json:"dateShow"`
		Group         *classroom.GroupRef  `json:"group,omitempty"`
		Present       *bool                `json:"present,omitempty"`
	}

	StudentClassroomListResponse struct {
		Classrooms []StudentClassroom `json:"classrooms"`
		After      string             `json:"after,omitempty"`
		Before     string             `json:"before,omitempty"`
		Total      int                `json:"total"`
	}
)

func (api *classroomApi) register(ctx echo.Context) error {
	var data classroom.NewClassroom
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClassroom")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	cls, err := api.svc.Register(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "registering classroom")
	}
	return ctx.JSON(http.StatusCreated, ClassroomResponse{Classroom: cls})
}

func (api *classroomApi) list(ctx echo.Context) error {
	var cursors CursorParams
	if err := cursors.Bind(ctx); err != nil {
		return err
	}

	page, err := api.svc.List(ctx.Request().Context(), classroom.ListOptions{
		Search: ctx.QueryParam("search"),
		After:  cursors.After,
		Before: cursors.Before,
	})
	if err != nil {
		return errors.Wrap(err, "listing classrooms")
	}

	resp := ClassroomListResponse{Classrooms: page.Items, Total: page.Total}
	if page.After != nil {
		resp.After = page.After.String()
	}
	if page.Before != nil {
		resp.Before = page.Before.String()
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *classroomApi) listByStudent(ctx echo.Context) error {
	name := ctx.QueryParam("student")
	if name == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "student", Error: "this field is required"})
	}

	var cursors CursorParams
	if err := cursors.Bind(ctx); err != nil {
		return err
	}

	page, err := api.svc.ListByStudent(ctx.Request().Context(), classroom.StudentListOptions{
		Student: name,
		After:   cursors.After,
		Before:  cursors.Before,
	})
	if err != nil {
		return errors.Wrap(err, "listing classrooms by student")
	}

	resp := StudentClassroomListResponse{
		Classrooms: make([]StudentClassroom, 0, len(page.Items)),
		Total:      page.Total,
	}
	for _, cls := range page.Items {
		resp.Classrooms = append(resp.Classrooms, StudentClassroom{
			ID:            cls.ID,
			Teacher:       cls.Teacher,
			Student:       name,
			Unit:          cls.Unit,
			Page:          cls.Page,
			LastWord:      cls.LastWord,
			LastDictation: cls.LastDictation,
			LastReading:   cls.LastReading,
			DateTime:      cls.DateTime,
			DateShow:      cls.DateShow,
			Group:         cls.Group,
			Present:       cls.PresentFor(name),
		})
	}
	if page.After != nil {
		resp.After = page.After.String()
	}
	if page.Before != nil {
		resp.Before = page.Before.String()
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *classroomApi) destroy(ctx echo.Context) error {
	id := ctx.QueryParam("id")
	if id == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "id", Error: "this field is required"})
	}

	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		if errors.Cause(err) == classroom.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting classroom")
	}
	return ctx.JSON(http.StatusAccepted, DeletedResponse{Message: "deleted"})
}
