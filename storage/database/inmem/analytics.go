package inmemdb

import (
	"context"
	"sort"

	"github.com/edulab/peerreview/core/analytics"
	"github.com/edulab/peerreview/core/assignment"
	"github.com/edulab/peerreview/core/review"
	"github.com/edulab/peerreview/core/submission"
)

type analyticsRepository struct {
	db *DB
}

var _ analytics.Repository = (*analyticsRepository)(nil)

func NewAnalyticsRepository(db *DB) *analyticsRepository {
	return &analyticsRepository{db: db}
}

func (repo *analyticsRepository) CountTotals(_ context.Context) (analytics.Totals, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	return analytics.Totals{
		Users:       len(repo.db.users),
		Projects:    len(repo.db.projects),
		Submissions: len(repo.db.submissions),
		Reviews:     len(repo.db.reviews),
		Assignments: len(repo.db.assignments),
	}, nil
}

func (repo *analyticsRepository) AllReviewScores(_ context.Context) ([]int, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	return repo.scores(func(review.Review) bool { return true }), nil
}

func (repo *analyticsRepository) AllGradedPoints(_ context.Context) ([]int, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	return repo.points(func(submission.Submission) bool { return true }), nil
}

func (repo *analyticsRepository) AssignmentCompletion(_ context.Context) (int, int, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var completed int
	for _, asg := range repo.db.assignments {
		if asg.Status == assignment.StatusCompleted {
			completed++
		}
	}
	return completed, len(repo.db.assignments), nil
}

func (repo *analyticsRepository) RecentReviews(_ context.Context, limit int) ([]analytics.Activity, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	activity := make([]analytics.Activity, 0)
	for _, rev := range repo.db.reviews {
		act := analytics.Activity{
			ReviewID:  rev.ID,
			Score:     rev.Score,
			CreatedAt: rev.CreatedAt,
		}
		if reviewer, ok := repo.db.users[rev.ReviewerID]; ok {
			act.ReviewerName = reviewer.Name
		}
		if sub, ok := repo.db.submissions[rev.SubmissionID]; ok {
			if stu, ok := repo.db.users[sub.StudentID]; ok {
				act.StudentName = stu.Name
			}
			if prj, ok := repo.db.projects[sub.ProjectID]; ok {
				act.ProjectTitle = prj.Title
			}
		}
		activity = append(activity, act)
	}
	sort.Slice(activity, func(i, j int) bool { return activity[i].ReviewID > activity[j].ReviewID }) // newest first
	if len(activity) > limit {
		activity = activity[:limit]
	}
	return activity, nil
}

func (repo *analyticsRepository) ReviewScoresByProject(_ context.Context, projectID int) ([]int, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	return repo.scores(func(rev review.Review) bool {
		sub, ok := repo.db.submissions[rev.SubmissionID]
		return ok && sub.ProjectID == projectID
	}), nil
}

func (repo *analyticsRepository) GradedPointsByProject(_ context.Context, projectID int) ([]int, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	return repo.points(func(sub submission.Submission) bool { return sub.ProjectID == projectID }), nil
}

func (repo *analyticsRepository) SubmissionCountByProject(_ context.Context, projectID int) (int, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var n int
	for _, sub := range repo.db.submissions {
		if sub.ProjectID == projectID {
			n++
		}
	}
	return n, nil
}

func (repo *analyticsRepository) ReviewScoresByStudent(_ context.Context, studentID int) ([]int, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	return repo.scores(func(rev review.Review) bool {
		sub, ok := repo.db.submissions[rev.SubmissionID]
		return ok && sub.StudentID == studentID
	}), nil
}

func (repo *analyticsRepository) GradedPointsByStudent(_ context.Context, studentID int) ([]int, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	return repo.points(func(sub submission.Submission) bool { return sub.StudentID == studentID }), nil
}

func (repo *analyticsRepository) SubmissionCountByStudent(_ context.Context, studentID int) (int, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var n int
	for _, sub := range repo.db.submissions {
		if sub.StudentID == studentID {
			n++
		}
	}
	return n, nil
}

// scores must be called with db.mu held.
func (repo *analyticsRepository) scores(match func(review.Review) bool) []int {
	scores := make([]int, 0)
	for _, rev := range repo.db.reviews {
		if match(rev) {
			scores = append(scores, rev.Score)
		}
	}
	return scores
}

// points must be called with db.mu held; ungraded submissions are skipped.
func (repo *analyticsRepository) points(match func(submission.Submission) bool) []int {
	points := make([]int, 0)
	for _, sub := range repo.db.submissions {
		if sub.Points != nil && match(sub) {
			points = append(points, *sub.Points)
		}
	}
	return points
}
