package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/upperenglish/backend/core/roster"
)

type rosterApi struct {
	svc *roster.Service
}

func registerRosterAPI(g *echo.Group, svc *roster.Service) {
	api := rosterApi{svc: svc}

	g.GET("/listTeachersStudentsGroups", api.list)
	g.GET("/listTeachersAndStudents", api.listTeachersAndStudents)
}

func (api *rosterApi) list(ctx echo.Context) error {
	rst, err := api.svc.List(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing roster")
	}
	return ctx.JSON(http.StatusOK, rst)
}

func (api *rosterApi) listTeachersAndStudents(ctx echo.Context) error {
	teachers, students, err := api.svc.ListTeachersAndStudents(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing teachers and students")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"teachers": teachers, "students": students})
}
