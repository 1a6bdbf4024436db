package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/edulab/peerreview/core"
)

// bindPage reads the optional `limit` and `offset` query params.
// Absent params leave the zero Page, meaning the full set.
func bindPage(ctx echo.Context) (core.Page, error) {
	var page core.Page
	var err error
	if page.Limit, err = queryInt(ctx, "limit"); err != nil {
		return core.Page{}, err
	}
	if page.Offset, err = queryInt(ctx, "offset"); err != nil {
		return core.Page{}, err
	}
	return page, nil
}

func queryInt(ctx echo.Context, name string) (int, error) {
	v := ctx.QueryParam(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, core.NewValidationError(nil, core.FieldError{Field: name, Error: "must be a non-negative integer"})
	}
	return n, nil
}

// pathID parses the numeric `:id` path param; non-numeric ids read as unknown resources.
func pathID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, errHTTPNotFound
	}
	return id, nil
}
