package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edulab/peerreview/core"
	"github.com/edulab/peerreview/core/submission"
	"github.com/edulab/peerreview/storage/files"
)

type submissionApi struct {
	svc      *submission.Service
	store    files.Store
	validate *validator.Validate
}

func registerSubmissionAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc *submission.Service,
	store files.Store,
	validate *validator.Validate,
) {
	api := submissionApi{svc: svc, store: store, validate: validate}

	sg := g.Group("/submissions", jwt)
	sg.POST("", api.create)
	sg.GET("/my", api.queryMine)
	sg.GET("/all", api.queryAll, teacherMiddleware())
	sg.PUT("/:id/grade", api.grade, teacherMiddleware())
}

// Handlers

func (api *submissionApi) create(ctx echo.Context) error {
	var data submission.NewSubmission
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubmission")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	imageURL, err := api.saveAttachment(ctx, "image")
	if err != nil {
		return err
	}
	fileURL, err := api.saveAttachment(ctx, "file")
	if err != nil {
		return err
	}

	studentID, err := contextUserID(ctx)
	if err != nil {
		return err
	}

	sub, err := api.svc.Create(ctx.Request().Context(), studentID, data, imageURL, fileURL)
	if err != nil {
		if errors.Cause(err) == submission.ErrProjectNotFound {
			return echo.NewHTTPError(http.StatusNotFound, submission.ErrProjectNotFound.Error())
		}
		return errors.Wrap(err, "creating submission")
	}
	return ctx.JSON(http.StatusOK, sub)
}

// saveAttachment stores the named multipart file field if present.
// An omitted field is not an error; a rejected file is reported against the field.
func (api *submissionApi) saveAttachment(ctx echo.Context, field string) (string, error) {
	fh, err := ctx.FormFile(field)
	if err != nil {
		return "", nil
	}

	url, err := api.store.Save(fh)
	if err != nil {
		if err == files.ErrFileType || err == files.ErrFileSize {
			return "", core.NewValidationError(nil, core.FieldError{Field: field, Error: err.Error()})
		}
		return "", errors.Wrapf(err, "saving %s", field)
	}
	return url, nil
}

func (api *submissionApi) queryMine(ctx echo.Context) error {
	studentID, err := contextUserID(ctx)
	if err != nil {
		return err
	}

	subs, err := api.svc.QueryByStudent(ctx.Request().Context(), studentID)
	if err != nil {
		return errors.Wrap(err, "querying student submissions")
	}
	if subs == nil {
		subs = []submission.Detail{}
	}
	return ctx.JSON(http.StatusOK, subs)
}

func (api *submissionApi) queryAll(ctx echo.Context) error {
	page, err := bindPage(ctx)
	if err != nil {
		return err
	}

	subs, err := api.svc.QueryAll(ctx.Request().Context(), page)
	if err != nil {
		return errors.Wrap(err, "querying submissions")
	}
	if subs == nil {
		subs = []submission.Detail{}
	}
	return ctx.JSON(http.StatusOK, subs)
}

func (api *submissionApi) grade(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	var data submission.Grade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Grade")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sub, err := api.svc.Grade(ctx.Request().Context(), id, *data.Points)
	if err != nil {
		if errors.Cause(err) == submission.ErrNotFound {
			return errHTTPNotFound
		}
		return errors.Wrap(err, "grading submission")
	}
	return ctx.JSON(http.StatusOK, sub)
}
