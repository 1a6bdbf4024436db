package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edulab/peerreview/core/comment"
)

type commentApi struct {
	svc      *comment.Service
	validate *validator.Validate
}

func registerCommentAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *comment.Service, validate *validator.Validate) {
	api := commentApi{svc: svc, validate: validate}

	cg := g.Group("/comments", jwt)
	cg.POST("", api.create)

	// the thread lives under its submission
	g.GET("/submissions/:id/comments", api.queryBySubmission, jwt)
}

// Handlers

func (api *commentApi) create(ctx echo.Context) error {
	var data comment.NewComment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewComment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	authorID, err := contextUserID(ctx)
	if err != nil {
		return err
	}

	cmt, err := api.svc.Create(ctx.Request().Context(), authorID, data)
	if err != nil {
		if errors.Cause(err) == comment.ErrSubmissionNotFound {
			return echo.NewHTTPError(http.StatusNotFound, comment.ErrSubmissionNotFound.Error())
		}
		return errors.Wrap(err, "creating comment")
	}
	return ctx.JSON(http.StatusOK, cmt)
}

func (api *commentApi) queryBySubmission(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	comments, err := api.svc.QueryBySubmission(ctx.Request().Context(), id)
	if err != nil {
		if errors.Cause(err) == comment.ErrSubmissionNotFound {
			return echo.NewHTTPError(http.StatusNotFound, comment.ErrSubmissionNotFound.Error())
		}
		return errors.Wrap(err, "querying comments")
	}
	if comments == nil {
		comments = []comment.Comment{}
	}
	return ctx.JSON(http.StatusOK, comments)
}
