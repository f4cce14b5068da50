package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/upperenglish/backend/core"
	"github.com/upperenglish/backend/core/group"
)

type groupApi struct {
	svc      *group.Service
	validate *validator.Validate
}

func registerGroupAPI(g *echo.Group, svc *group.Service, validate *validator.Validate) {
	api := groupApi{svc: svc, validate: validate}

	g.POST("/registerGroup", api.register)
	g.POST("/editGroup", api.edit)
	g.DELETE("/deleteGroup", api.destroy)
}

type GroupResponse struct {
	Group group.Group `json:"group"`
}

func (api *groupApi) register(ctx echo.Context) error {
	var data group.NewGroup
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGroup")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	grp, err := api.svc.Register(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "registering group")
	}
	return ctx.JSON(http.StatusCreated, GroupResponse{Group: grp})
}

func (api *groupApi) edit(ctx echo.Context) error {
	var data group.EditGroup
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to EditGroup")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	grp, err := api.svc.Edit(ctx.Request().Context(), data)
	if err != nil {
		if errors.Cause(err) == group.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "editing group")
	}
	return ctx.JSON(http.StatusCreated, GroupResponse{Group: grp})
}

func (api *groupApi) destroy(ctx echo.Context) error {
	id := ctx.QueryParam("id")
	if id == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "id", Error: "this field is required"})
	}

	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		if errors.Cause(err) == group.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting group")
	}
	return ctx.JSON(http.StatusAccepted, DeletedResponse{Message: "deleted"})
}
