package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/edulab/peerreview/core/analytics"
)

type analyticsRepository struct {
	db *sqlx.DB
}

var _ analytics.Repository = (*analyticsRepository)(nil)

func NewAnalyticsRepository(db *sqlx.DB) *analyticsRepository {
	return &analyticsRepository{db: db}
}

func (repo *analyticsRepository) CountTotals(ctx context.Context) (analytics.Totals, error) {
	var t analytics.Totals
	err := repo.db.QueryRowxContext(
		ctx,
		`SELECT (SELECT COUNT(*) FROM users),
		        (SELECT COUNT(*) FROM projects),
		        (SELECT COUNT(*) FROM submissions),
		        (SELECT COUNT(*) FROM reviews),
		        (SELECT COUNT(*) FROM assignments)`,
	).Scan(&t.Users, &t.Projects, &t.Submissions, &t.Reviews, &t.Assignments)
	return t, errors.Wrap(err, "counting totals")
}

func (repo *analyticsRepository) AllReviewScores(ctx context.Context) ([]int, error) {
	return repo.selectInts(ctx, `SELECT score FROM reviews`)
}

func (repo *analyticsRepository) AllGradedPoints(ctx context.Context) ([]int, error) {
	return repo.selectInts(ctx, `SELECT points FROM submissions WHERE points IS NOT NULL`)
}

func (repo *analyticsRepository) AssignmentCompletion(ctx context.Context) (int, int, error) {
	var completed, total int
	err := repo.db.QueryRowxContext(
		ctx,
		`SELECT COUNT(*) FILTER (WHERE status = 'COMPLETED'), COUNT(*) FROM assignments`,
	).Scan(&completed, &total)
	return completed, total, errors.Wrap(err, "counting assignment completion")
}

func (repo *analyticsRepository) RecentReviews(ctx context.Context, limit int) ([]analytics.Activity, error) {
	var rows []analytics.Activity
	err := repo.db.SelectContext(
		ctx, &rows,
		`SELECT r.id AS "reviewid", r.score AS "score", r.created_at AS "createdat",
		        rev.name AS "reviewername",
		        stu.name AS "studentname",
		        p.title AS "projecttitle"
		 FROM reviews r
		 JOIN users rev ON rev.id = r.reviewer_id
		 JOIN submissions s ON s.id = r.submission_id
		 JOIN users stu ON stu.id = s.student_id
		 JOIN projects p ON p.id = s.project_id
		 ORDER BY r.created_at DESC
		 LIMIT $1`,
		limit,
	)
	return rows, errors.Wrap(err, "querying recent reviews")
}

func (repo *analyticsRepository) ReviewScoresByProject(ctx context.Context, projectID int) ([]int, error) {
	return repo.selectInts(
		ctx,
		`SELECT r.score
		 FROM reviews r
		 JOIN submissions s ON s.id = r.submission_id
		 WHERE s.project_id = $1`,
		projectID,
	)
}

func (repo *analyticsRepository) GradedPointsByProject(ctx context.Context, projectID int) ([]int, error) {
	return repo.selectInts(
		ctx,
		`SELECT points FROM submissions WHERE project_id = $1 AND points IS NOT NULL`,
		projectID,
	)
}

func (repo *analyticsRepository) SubmissionCountByProject(ctx context.Context, projectID int) (int, error) {
	return repo.count(ctx, `SELECT COUNT(*) FROM submissions WHERE project_id = $1`, projectID)
}

func (repo *analyticsRepository) ReviewScoresByStudent(ctx context.Context, studentID int) ([]int, error) {
	return repo.selectInts(
		ctx,
		`SELECT r.score
		 FROM reviews r
		 JOIN submissions s ON s.id = r.submission_id
		 WHERE s.student_id = $1`,
		studentID,
	)
}

func (repo *analyticsRepository) GradedPointsByStudent(ctx context.Context, studentID int) ([]int, error) {
	return repo.selectInts(
		ctx,
		`SELECT points FROM submissions WHERE student_id = $1 AND points IS NOT NULL`,
		studentID,
	)
}

func (repo *analyticsRepository) SubmissionCountByStudent(ctx context.Context, studentID int) (int, error) {
	return repo.count(ctx, `SELECT COUNT(*) FROM submissions WHERE student_id = $1`, studentID)
}

func (repo *analyticsRepository) selectInts(ctx context.Context, query string, args ...interface{}) ([]int, error) {
	var vals []int
	err := repo.db.SelectContext(ctx, &vals, query, args...)
	return vals, errors.Wrap(err, "selecting values")
}

func (repo *analyticsRepository) count(ctx context.Context, query string, args ...interface{}) (int, error) {
	var n int
	err := repo.db.GetContext(ctx, &n, query, args...)
	return n, errors.Wrap(err, "counting rows")
}
