package analytics

import (
	"context"

	"github.com/pkg/errors"

	"github.com/edulab/peerreview/core"
)

// recentActivityLimit caps the overview's activity feed.
const recentActivityLimit = 10

type (
	// Repository returns the raw row sets statistics are computed from.
	// Aggregation happens in the service on every request; nothing is
	// maintained incrementally.
	Repository interface {
		CountTotals(ctx context.Context) (Totals, error)
		AllReviewScores(ctx context.Context) ([]int, error)
		AllGradedPoints(ctx context.Context) ([]int, error)
		// AssignmentCompletion returns (completed, total) assignment counts.
		AssignmentCompletion(ctx context.Context) (int, int, error)
		RecentReviews(ctx context.Context, limit int) ([]Activity, error)

		ReviewScoresByProject(ctx context.Context, projectID int) ([]int, error)
		GradedPointsByProject(ctx context.Context, projectID int) ([]int, error)
		SubmissionCountByProject(ctx context.Context, projectID int) (int, error)

		// Per-student scopes cover the student's submissions: scores they
		// received, points they were graded.
		ReviewScoresByStudent(ctx context.Context, studentID int) ([]int, error)
		GradedPointsByStudent(ctx context.Context, studentID int) ([]int, error)
		SubmissionCountByStudent(ctx context.Context, studentID int) (int, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Overview(ctx context.Context) (Overview, error) {
	totals, err := svc.repo.CountTotals(ctx)
	if err != nil {
		return Overview{}, errors.Wrap(err, "counting totals")
	}

	scores, err := svc.repo.AllReviewScores(ctx)
	if err != nil {
		return Overview{}, errors.Wrap(err, "fetching review scores")
	}
	points, err := svc.repo.AllGradedPoints(ctx)
	if err != nil {
		return Overview{}, errors.Wrap(err, "fetching graded points")
	}
	completed, total, err := svc.repo.AssignmentCompletion(ctx)
	if err != nil {
		return Overview{}, errors.Wrap(err, "fetching assignment completion")
	}
	activity, err := svc.repo.RecentReviews(ctx, recentActivityLimit)
	if err != nil {
		return Overview{}, errors.Wrap(err, "fetching recent reviews")
	}
	if activity == nil {
		activity = []Activity{}
	}

	return Overview{
		Totals:         totals,
		AverageScore:   core.Round(mean(scores), 2),
		AveragePoints:  core.Round(mean(points), 1),
		CompletionRate: core.Round(rate(completed, total), 1),
		RecentActivity: activity,
	}, nil
}

func (svc *Service) ProjectSummary(ctx context.Context, projectID int) (Summary, error) {
	scores, err := svc.repo.ReviewScoresByProject(ctx, projectID)
	if err != nil {
		return Summary{}, errors.Wrap(err, "fetching project review scores")
	}
	points, err := svc.repo.GradedPointsByProject(ctx, projectID)
	if err != nil {
		return Summary{}, errors.Wrap(err, "fetching project graded points")
	}
	subs, err := svc.repo.SubmissionCountByProject(ctx, projectID)
	if err != nil {
		return Summary{}, errors.Wrap(err, "counting project submissions")
	}
	return summarize(subs, scores, points), nil
}

func (svc *Service) StudentSummary(ctx context.Context, studentID int) (Summary, error) {
	scores, err := svc.repo.ReviewScoresByStudent(ctx, studentID)
	if err != nil {
		return Summary{}, errors.Wrap(err, "fetching student review scores")
	}
	points, err := svc.repo.GradedPointsByStudent(ctx, studentID)
	if err != nil {
		return Summary{}, errors.Wrap(err, "fetching student graded points")
	}
	subs, err := svc.repo.SubmissionCountByStudent(ctx, studentID)
	if err != nil {
		return Summary{}, errors.Wrap(err, "counting student submissions")
	}
	return summarize(subs, scores, points), nil
}

func summarize(submissionCount int, scores, points []int) Summary {
	s := Summary{
		SubmissionCount: submissionCount,
		ReviewCount:     len(scores),
		AverageScore:    core.Round(mean(scores), 2),
		AveragePoints:   core.Round(mean(points), 1),
	}
	for _, score := range scores {
		if score >= 1 && score <= 5 {
			s.ScoreDistribution[score-1]++
		}
	}
	return s
}

func mean(vals []int) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum int
	for _, v := range vals {
		sum += v
	}
	return float64(sum) / float64(len(vals))
}

func rate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
