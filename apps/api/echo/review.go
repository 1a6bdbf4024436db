package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edulab/peerreview/core/review"
)

type reviewApi struct {
	svc      *review.Service
	validate *validator.Validate
}

func registerReviewAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *review.Service, validate *validator.Validate) {
	api := reviewApi{svc: svc, validate: validate}

	rg := g.Group("/reviews", jwt)
	rg.POST("", api.create)
	rg.GET("/my", api.queryMine)
}

// Handlers

func (api *reviewApi) create(ctx echo.Context) error {
	var data review.NewReview
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewReview")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	reviewerID, err := contextUserID(ctx)
	if err != nil {
		return err
	}

	rev, err := api.svc.Create(ctx.Request().Context(), reviewerID, data)
	if err != nil {
		if errors.Cause(err) == review.ErrSubmissionNotFound {
			return echo.NewHTTPError(http.StatusNotFound, review.ErrSubmissionNotFound.Error())
		}
		return err
	}
	return ctx.JSON(http.StatusOK, rev)
}

func (api *reviewApi) queryMine(ctx echo.Context) error {
	reviewerID, err := contextUserID(ctx)
	if err != nil {
		return err
	}

	reviews, err := api.svc.QueryByReviewer(ctx.Request().Context(), reviewerID)
	if err != nil {
		return errors.Wrap(err, "querying reviews")
	}
	if reviews == nil {
		reviews = []review.Authored{}
	}
	return ctx.JSON(http.StatusOK, reviews)
}
