package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edulab/peerreview/core/notification"
)

type notificationApi struct {
	svc *notification.Service
}

func registerNotificationAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *notification.Service) {
	api := notificationApi{svc: svc}

	ng := g.Group("/notifications", jwt)
	ng.GET("/my", api.queryMine)
	ng.PUT("/:id/read", api.markRead)
	ng.PUT("/mark-all-read", api.markAllRead)
}

// Handlers

func (api *notificationApi) queryMine(ctx echo.Context) error {
	uid, err := contextUserID(ctx)
	if err != nil {
		return err
	}

	notes, err := api.svc.QueryByUser(ctx.Request().Context(), uid)
	if err != nil {
		return errors.Wrap(err, "querying notifications")
	}
	if notes == nil {
		notes = []notification.Notification{}
	}
	return ctx.JSON(http.StatusOK, notes)
}

func (api *notificationApi) markRead(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	uid, err := contextUserID(ctx)
	if err != nil {
		return err
	}

	note, err := api.svc.MarkRead(ctx.Request().Context(), id, uid)
	if err != nil {
		switch errors.Cause(err) {
		case notification.ErrNotFound:
			return errHTTPNotFound
		case notification.ErrNotOwner:
			return errHTTPForbidden
		}
		return errors.Wrap(err, "marking notification read")
	}
	return ctx.JSON(http.StatusOK, note)
}

func (api *notificationApi) markAllRead(ctx echo.Context) error {
	uid, err := contextUserID(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.MarkAllRead(ctx.Request().Context(), uid); err != nil {
		return errors.Wrap(err, "marking notifications read")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "all notifications marked as read"})
}
