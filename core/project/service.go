package project

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/edulab/peerreview/core"
)

var ErrNotFound = errors.New("project not found")

type (
	Repository interface {
		CreateProject(ctx context.Context, prj Project) (Project, error)
		// QueryAllProjects returns all projects newest first, each with its
		// submission count and the viewer's isSubmitted flag.
		QueryAllProjects(ctx context.Context, viewerID int, page core.Page) ([]Info, error)
		// GetProjectDetail eagerly loads the project's submissions, their
		// reviews and comment counts. Returns ErrNotFound for an unknown id.
		GetProjectDetail(ctx context.Context, id int) (Detail, error)
		ProjectExists(ctx context.Context, id int) (bool, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, teacherID int, np NewProject) (Project, error) {
	prj := Project{
		Title:       np.Title,
		Description: np.Description,
		Tags:        np.Tags,
		DueDate:     np.DueDate,
		TeacherID:   teacherID,
		CreatedAt:   time.Now().UTC(),
	}
	return svc.repo.CreateProject(ctx, prj)
}

func (svc *Service) Query(ctx context.Context, viewerID int, page core.Page) ([]Info, error) {
	return svc.repo.QueryAllProjects(ctx, viewerID, page)
}

func (svc *Service) GetDetail(ctx context.Context, id int) (Detail, error) {
	return svc.repo.GetProjectDetail(ctx, id)
}

func (svc *Service) Exists(ctx context.Context, id int) (bool, error) {
	return svc.repo.ProjectExists(ctx, id)
}
