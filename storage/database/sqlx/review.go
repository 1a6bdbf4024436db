package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/edulab/peerreview/core/review"
)

type reviewRepository struct {
	db *sqlx.DB
}

var _ review.Repository = (*reviewRepository)(nil)

func NewReviewRepository(db *sqlx.DB) *reviewRepository {
	return &reviewRepository{db: db}
}

type reviewRow struct {
	ID           int       `db:"id"`
	Content      string    `db:"content"`
	Score        int       `db:"score"`
	ReviewerID   int       `db:"reviewer_id"`
	SubmissionID int       `db:"submission_id"`
	CreatedAt    time.Time `db:"created_at"`
	ReviewerName string    `db:"reviewer_name"`
	ReviewerRole string    `db:"reviewer_role"`
}

func (r reviewRow) toReview() review.Review {
	return review.Review{
		ID:           r.ID,
		Content:      r.Content,
		Score:        r.Score,
		ReviewerID:   r.ReviewerID,
		SubmissionID: r.SubmissionID,
		CreatedAt:    r.CreatedAt,
		ReviewerName: r.ReviewerName,
		ReviewerRole: r.ReviewerRole,
	}
}

func (repo *reviewRepository) CheckReviewUniqueness(ctx context.Context, reviewerID, submissionID int) error {
	var exists bool
	err := repo.db.GetContext(
		ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM reviews WHERE reviewer_id = $1 AND submission_id = $2)`,
		reviewerID, submissionID,
	)
	if err != nil {
		return errors.Wrap(err, "checking review uniqueness")
	}
	if exists {
		return review.ErrAlreadyReviewed
	}
	return nil
}

func (repo *reviewRepository) CreateReview(ctx context.Context, rev review.Review) (review.Review, error) {
	err := repo.db.QueryRowxContext(
		ctx,
		`INSERT INTO reviews (content, score, reviewer_id, submission_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		rev.Content, rev.Score, rev.ReviewerID, rev.SubmissionID, rev.CreatedAt,
	).Scan(&rev.ID)
	if err != nil {
		return review.Review{}, errors.Wrap(err, "inserting review")
	}

	var row reviewRow
	err = repo.db.GetContext(
		ctx, &row,
		`SELECT r.id, r.content, r.score, r.reviewer_id, r.submission_id, r.created_at,
		        u.name AS reviewer_name, u.role AS reviewer_role
		 FROM reviews r
		 JOIN users u ON u.id = r.reviewer_id
		 WHERE r.id = $1`,
		rev.ID,
	)
	if err != nil {
		return review.Review{}, errors.Wrap(err, "getting created review")
	}
	return row.toReview(), nil
}

func (repo *reviewRepository) QueryReviewsByReviewer(ctx context.Context, reviewerID int) ([]review.Authored, error) {
	var rows []struct {
		reviewRow
		ProjectID    int    `db:"project_id"`
		ProjectTitle string `db:"project_title"`
		StudentName  string `db:"student_name"`
	}
	err := repo.db.SelectContext(
		ctx, &rows,
		`SELECT r.id, r.content, r.score, r.reviewer_id, r.submission_id, r.created_at,
		        u.name AS reviewer_name, u.role AS reviewer_role,
		        p.id AS project_id, p.title AS project_title,
		        stu.name AS student_name
		 FROM reviews r
		 JOIN users u ON u.id = r.reviewer_id
		 JOIN submissions s ON s.id = r.submission_id
		 JOIN users stu ON stu.id = s.student_id
		 JOIN projects p ON p.id = s.project_id
		 WHERE r.reviewer_id = $1
		 ORDER BY r.created_at DESC`,
		reviewerID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying reviews by reviewer")
	}

	authored := make([]review.Authored, 0, len(rows))
	for _, row := range rows {
		authored = append(authored, review.Authored{
			Review:       row.toReview(),
			ProjectID:    row.ProjectID,
			ProjectTitle: row.ProjectTitle,
			StudentName:  row.StudentName,
		})
	}
	return authored, nil
}
