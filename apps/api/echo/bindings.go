package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/upperenglish/backend/core"
	"github.com/upperenglish/backend/core/classroom"
)

var (
	afterParam  = "after"
	beforeParam = "before"
)

// CursorParams binds the optional after/before listing cursors from the
// query string. A malformed cursor is a validation error, not a server one.
type CursorParams struct {
	After  *classroom.Cursor
	Before *classroom.Cursor
}

func (p *CursorParams) Bind(ctx echo.Context) error {
	if v := ctx.QueryParam(afterParam); v != "" {
		cur, err := classroom.ParseCursor(v)
		if err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: afterParam, Error: err.Error()})
		}
		p.After = &cur
	}
	if v := ctx.QueryParam(beforeParam); v != "" {
		cur, err := classroom.ParseCursor(v)
		if err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: beforeParam, Error: err.Error()})
		}
		p.Before = &cur
	}
	return nil
}
