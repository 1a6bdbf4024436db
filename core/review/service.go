package review

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/edulab/peerreview/core"
)

var (
	ErrNotFound           = errors.New("review not found")
	ErrAlreadyReviewed    = errors.New("you already reviewed this submission")
	ErrSubmissionNotFound = errors.New("submission not found")
)

type (
	Repository interface {
		// CheckReviewUniqueness returns ErrAlreadyReviewed when the reviewer
		// already has a review for the submission.
		CheckReviewUniqueness(ctx context.Context, reviewerID, submissionID int) error
		CreateReview(ctx context.Context, rev Review) (Review, error)
		QueryReviewsByReviewer(ctx context.Context, reviewerID int) ([]Authored, error)
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

// Create records a peer review. The reviewed submission must exist and the
// reviewer may only review it once.
func (svc *Service) Create(ctx context.Context, reviewerID int, nr NewReview) (Review, error) {
	exists, err := svc.submissions.SubmissionExists(ctx, nr.SubmissionID)
	if err != nil {
		return Review{}, errors.Wrap(err, "checking submission")
	}
	if !exists {
		return Review{}, ErrSubmissionNotFound
	}

	if err = svc.repo.CheckReviewUniqueness(ctx, reviewerID, nr.SubmissionID); err != nil {
		if err == ErrAlreadyReviewed {
			return Review{}, core.NewValidationError(err, core.FieldError{Field: "submissionId", Error: err.Error()})
		}
		return Review{}, err
	}

	rev := Review{
		Content:      nr.Content,
		Score:        nr.Score,
		ReviewerID:   reviewerID,
		SubmissionID: nr.SubmissionID,
		CreatedAt:    time.Now().UTC(),
	}
	return svc.repo.CreateReview(ctx, rev)
}

// QueryByReviewer lists the reviews authored by a user.
func (svc *Service) QueryByReviewer(ctx context.Context, reviewerID int) ([]Authored, error) {
	return svc.repo.QueryReviewsByReviewer(ctx, reviewerID)
}
