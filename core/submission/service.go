package submission

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/edulab/peerreview/core"
)

var (
	ErrNotFound        = errors.New("submission not found")
	ErrProjectNotFound = errors.New("project not found")
)

type (
	Repository interface {
		CreateSubmission(ctx context.Context, sub Submission) (Submission, error)
		GetSubmissionByID(ctx context.Context, id int) (Submission, error)
		SubmissionExists(ctx context.Context, id int) (bool, error)
		// QueryAllSubmissions returns every submission, newest first.
		QueryAllSubmissions(ctx context.Context, page core.Page) ([]Detail, error)
		QuerySubmissionsByStudent(ctx context.Context, studentID int) ([]Detail, error)
		SetSubmissionPoints(ctx context.Context, id, points int) (Submission, error)
	}

	// ProjectChecker reports whether a project row exists.
	ProjectChecker interface {
		ProjectExists(ctx context.Context, id int) (bool, error)
	}

	Service struct {
		repo     Repository
		projects ProjectChecker
	}
)

func NewService(repo Repository, projects ProjectChecker) *Service {
	return &Service{repo: repo, projects: projects}
}

// Create records a student's submission. imageURL and fileURL are the public
// paths of already-stored attachments; empty when the field was omitted.
func (svc *Service) Create(ctx context.Context, studentID int, ns NewSubmission, imageURL, fileURL string) (Submission, error) {
	exists, err := svc.projects.ProjectExists(ctx, ns.ProjectID)
	if err != nil {
		return Submission{}, errors.Wrap(err, "checking project")
	}
	if !exists {
		return Submission{}, ErrProjectNotFound
	}

	sub := Submission{
		Content:   ns.Content,
		ImageURL:  imageURL,
		FileURL:   fileURL,
		StudentID: studentID,
		ProjectID: ns.ProjectID,
		CreatedAt: time.Now().UTC(),
	}
	return svc.repo.CreateSubmission(ctx, sub)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Submission, error) {
	return svc.repo.GetSubmissionByID(ctx, id)
}

func (svc *Service) QueryAll(ctx context.Context, page core.Page) ([]Detail, error) {
	return svc.repo.QueryAllSubmissions(ctx, page)
}

func (svc *Service) QueryByStudent(ctx context.Context, studentID int) ([]Detail, error) {
	return svc.repo.QuerySubmissionsByStudent(ctx, studentID)
}

// Grade sets the teacher-assigned points on a submission.
func (svc *Service) Grade(ctx context.Context, id, points int) (Submission, error) {
	if exists, err := svc.repo.SubmissionExists(ctx, id); err != nil {
		return Submission{}, errors.Wrap(err, "checking submission")
	} else if !exists {
		return Submission{}, ErrNotFound
	}
	return svc.repo.SetSubmissionPoints(ctx, id, points)
}
