package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/edulab/peerreview/core"
	"github.com/edulab/peerreview/core/review"
	"github.com/edulab/peerreview/core/submission"
)

type submissionRepository struct {
	db *sqlx.DB
}

var _ submission.Repository = (*submissionRepository)(nil)

func NewSubmissionRepository(db *sqlx.DB) *submissionRepository {
	return &submissionRepository{db: db}
}

type submissionRow struct {
	ID           int       `db:"id"`
	Content      string    `db:"content"`
	ImageURL     string    `db:"image_url"`
	FileURL      string    `db:"file_url"`
	Points       *int      `db:"points"`
	StudentID    int       `db:"student_id"`
	ProjectID    int       `db:"project_id"`
	CreatedAt    time.Time `db:"created_at"`
	StudentName  string    `db:"student_name"`
	StudentEmail string    `db:"student_email"`
	ProjectTitle string    `db:"project_title"`
	ProjectTags  string    `db:"project_tags"`
}

func (r submissionRow) toSubmission() submission.Submission {
	return submission.Submission{
		ID:           r.ID,
		Content:      r.Content,
		ImageURL:     r.ImageURL,
		FileURL:      r.FileURL,
		Points:       r.Points,
		StudentID:    r.StudentID,
		ProjectID:    r.ProjectID,
		CreatedAt:    r.CreatedAt,
		StudentName:  r.StudentName,
		StudentEmail: r.StudentEmail,
		ProjectTitle: r.ProjectTitle,
		ProjectTags:  r.ProjectTags,
	}
}

func (repo *submissionRepository) CreateSubmission(ctx context.Context, sub submission.Submission) (submission.Submission, error) {
	err := repo.db.QueryRowxContext(
		ctx,
		`INSERT INTO submissions (content, image_url, file_url, student_id, project_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		sub.Content, sub.ImageURL, sub.FileURL, sub.StudentID, sub.ProjectID, sub.CreatedAt,
	).Scan(&sub.ID)
	if err != nil {
		return submission.Submission{}, errors.Wrap(err, "inserting submission")
	}
	return repo.GetSubmissionByID(ctx, sub.ID)
}

func (repo *submissionRepository) GetSubmissionByID(ctx context.Context, id int) (submission.Submission, error) {
	var row submissionRow
	err := repo.db.GetContext(
		ctx, &row,
		`SELECT s.id, s.content, s.image_url, s.file_url, s.points, s.student_id, s.project_id, s.created_at,
		        stu.name AS student_name, stu.email AS student_email,
		        p.title AS project_title, p.tags AS project_tags
		 FROM submissions s
		 JOIN users stu ON stu.id = s.student_id
		 JOIN projects p ON p.id = s.project_id
		 WHERE s.id = $1`,
		id,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return submission.Submission{}, submission.ErrNotFound
		}
		return submission.Submission{}, errors.Wrap(err, "getting submission")
	}
	return row.toSubmission(), nil
}

func (repo *submissionRepository) SubmissionExists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := repo.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM submissions WHERE id = $1)`, id)
	return exists, errors.Wrap(err, "checking submission existence")
}

func (repo *submissionRepository) QueryAllSubmissions(ctx context.Context, page core.Page) ([]submission.Detail, error) {
	filter, args := appendPage(`ORDER BY s.created_at DESC`, nil, page)
	return querySubmissionDetails(ctx, repo.db, filter, args...)
}

func (repo *submissionRepository) QuerySubmissionsByStudent(ctx context.Context, studentID int) ([]submission.Detail, error) {
	return querySubmissionDetails(
		ctx, repo.db,
		`WHERE s.student_id = $1 ORDER BY s.created_at DESC`,
		studentID,
	)
}

func (repo *submissionRepository) SetSubmissionPoints(ctx context.Context, id, points int) (submission.Submission, error) {
	res, err := repo.db.ExecContext(ctx, `UPDATE submissions SET points = $1 WHERE id = $2`, points, id)
	if err != nil {
		return submission.Submission{}, errors.Wrap(err, "updating submission points")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return submission.Submission{}, submission.ErrNotFound
	}
	return repo.GetSubmissionByID(ctx, id)
}

func queryReviewsForSubmissions(ctx context.Context, db *sqlx.DB, submissionIDs []int) (map[int][]review.Review, error) {
	var rows []reviewRow
	err := db.SelectContext(
		ctx, &rows,
		`SELECT r.id, r.content, r.score, r.reviewer_id, r.submission_id, r.created_at,
		        u.name AS reviewer_name, u.role AS reviewer_role
		 FROM reviews r
		 JOIN users u ON u.id = r.reviewer_id
		 WHERE r.submission_id = ANY($1)
		 ORDER BY r.created_at DESC`,
		pq.Array(submissionIDs),
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying reviews")
	}

	bySub := make(map[int][]review.Review, len(submissionIDs))
	for _, row := range rows {
		bySub[row.SubmissionID] = append(bySub[row.SubmissionID], row.toReview())
	}
	return bySub, nil
}

func queryCommentCounts(ctx context.Context, db *sqlx.DB, submissionIDs []int) (map[int]int, error) {
	var rows []struct {
		SubmissionID int `db:"submission_id"`
		Count        int `db:"count"`
	}
	err := db.SelectContext(
		ctx, &rows,
		`SELECT submission_id, COUNT(*) AS count
		 FROM comments
		 WHERE submission_id = ANY($1)
		 GROUP BY submission_id`,
		pq.Array(submissionIDs),
	)
	if err != nil {
		return nil, errors.Wrap(err, "counting comments")
	}

	counts := make(map[int]int, len(rows))
	for _, row := range rows {
		counts[row.SubmissionID] = row.Count
	}
	return counts, nil
}
