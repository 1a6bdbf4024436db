package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edulab/peerreview/core/analytics"
)

type analyticsApi struct {
	svc *analytics.Service
}

func registerAnalyticsAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *analytics.Service) {
	api := analyticsApi{svc: svc}

	ag := g.Group("/analytics", jwt, teacherMiddleware())
	ag.GET("/overview", api.overview)
	ag.GET("/project/:id", api.projectSummary)
	ag.GET("/student/:id", api.studentSummary)
}

// Handlers

func (api *analyticsApi) overview(ctx echo.Context) error {
	overview, err := api.svc.Overview(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "computing overview")
	}
	return ctx.JSON(http.StatusOK, overview)
}

func (api *analyticsApi) projectSummary(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	summary, err := api.svc.ProjectSummary(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "computing project summary")
	}
	return ctx.JSON(http.StatusOK, summary)
}

func (api *analyticsApi) studentSummary(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	summary, err := api.svc.StudentSummary(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "computing student summary")
	}
	return ctx.JSON(http.StatusOK, summary)
}
