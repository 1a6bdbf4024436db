package comment

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var ErrSubmissionNotFound = errors.New("submission not found")

type (
	Repository interface {
		CreateComment(ctx context.Context, cmt Comment) (Comment, error)
		// QueryCommentsBySubmission returns the submission's comment thread,
		// oldest first.
		QueryCommentsBySubmission(ctx context.Context, submissionID int) ([]Comment, error)
	}

	// SubmissionChecker reports whether a submission row exists.
	SubmissionChecker interface {
		SubmissionExists(ctx context.Context, id int) (bool, error)
	}

	Service struct {
		repo        Repository
		submissions SubmissionChecker
	}
)

func NewService(repo Repository, submissions SubmissionChecker) *Service {
	return &Service{repo: repo, submissions: submissions}
}

func (svc *Service) Create(ctx context.Context, authorID int, nc NewComment) (Comment, error) {
	exists, err := svc.submissions.SubmissionExists(ctx, nc.SubmissionID)
	if err != nil {
		return Comment{}, errors.Wrap(err, "checking submission")
	}
	if !exists {
		return Comment{}, ErrSubmissionNotFound
	}

	cmt := Comment{
		Content:      nc.Content,
		AuthorID:     authorID,
		SubmissionID: nc.SubmissionID,
		CreatedAt:    time.Now().UTC(),
	}
	return svc.repo.CreateComment(ctx, cmt)
}

func (svc *Service) QueryBySubmission(ctx context.Context, submissionID int) ([]Comment, error) {
	exists, err := svc.submissions.SubmissionExists(ctx, submissionID)
	if err != nil {
		return nil, errors.Wrap(err, "checking submission")
	}
	if !exists {
		return nil, ErrSubmissionNotFound
	}
	return svc.repo.QueryCommentsBySubmission(ctx, submissionID)
}
