package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edulab/peerreview/core/assignment"
)

type assignmentApi struct {
	svc      *assignment.Service
	validate *validator.Validate
}

func registerAssignmentAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *assignment.Service, validate *validator.Validate) {
	api := assignmentApi{svc: svc, validate: validate}

	ag := g.Group("/assignments", jwt)
	ag.POST("", api.create, teacherMiddleware())
	ag.GET("", api.query, teacherMiddleware())
	ag.GET("/my", api.queryMine)
	ag.PUT("/:id/status", api.updateStatus)
}

// Handlers

func (api *assignmentApi) create(ctx echo.Context) error {
	var data assignment.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	asg, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		switch errors.Cause(err) {
		case assignment.ErrProjectNotFound, assignment.ErrReviewerNotFound, assignment.ErrSubmissionNotFound:
			return echo.NewHTTPError(http.StatusNotFound, errors.Cause(err).Error())
		}
		return errors.Wrap(err, "creating assignment")
	}
	return ctx.JSON(http.StatusOK, asg)
}

func (api *assignmentApi) query(ctx echo.Context) error {
	asgs, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	if asgs == nil {
		asgs = []assignment.Assignment{}
	}
	return ctx.JSON(http.StatusOK, asgs)
}

func (api *assignmentApi) queryMine(ctx echo.Context) error {
	reviewerID, err := contextUserID(ctx)
	if err != nil {
		return err
	}

	asgs, err := api.svc.QueryByReviewer(ctx.Request().Context(), reviewerID)
	if err != nil {
		return errors.Wrap(err, "querying reviewer assignments")
	}
	if asgs == nil {
		asgs = []assignment.Assignment{}
	}
	return ctx.JSON(http.StatusOK, asgs)
}

func (api *assignmentApi) updateStatus(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	var data assignment.UpdateStatus
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStatus")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	callerID, err := contextUserID(ctx)
	if err != nil {
		return err
	}

	asg, err := api.svc.UpdateStatus(ctx.Request().Context(), id, callerID, data.Status)
	if err != nil {
		switch errors.Cause(err) {
		case assignment.ErrNotFound:
			return errHTTPNotFound
		case assignment.ErrNotAssignee:
			return errHTTPForbidden
		}
		return errors.Wrap(err, "updating assignment status")
	}
	return ctx.JSON(http.StatusOK, asg)
}
