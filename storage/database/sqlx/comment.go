package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/edulab/peerreview/core/comment"
)

type commentRepository struct {
	db *sqlx.DB
}

var _ comment.Repository = (*commentRepository)(nil)

func NewCommentRepository(db *sqlx.DB) *commentRepository {
	return &commentRepository{db: db}
}

type commentRow struct {
	ID           int       `db:"id"`
	Content      string    `db:"content"`
	AuthorID     int       `db:"author_id"`
	SubmissionID int       `db:"submission_id"`
	CreatedAt    time.Time `db:"created_at"`
	AuthorName   string    `db:"author_name"`
	AuthorRole   string    `db:"author_role"`
}

func (r commentRow) toComment() comment.Comment {
	return comment.Comment{
		ID:           r.ID,
		Content:      r.Content,
		AuthorID:     r.AuthorID,
		SubmissionID: r.SubmissionID,
		CreatedAt:    r.CreatedAt,
		AuthorName:   r.AuthorName,
		AuthorRole:   r.AuthorRole,
	}
}

func (repo *commentRepository) CreateComment(ctx context.Context, cmt comment.Comment) (comment.Comment, error) {
	err := repo.db.QueryRowxContext(
		ctx,
		`INSERT INTO comments (content, author_id, submission_id, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		cmt.Content, cmt.AuthorID, cmt.SubmissionID, cmt.CreatedAt,
	).Scan(&cmt.ID)
	if err != nil {
		return comment.Comment{}, errors.Wrap(err, "inserting comment")
	}

	var row commentRow
	err = repo.db.GetContext(
		ctx, &row,
		`SELECT c.id, c.content, c.author_id, c.submission_id, c.created_at,
		        u.name AS author_name, u.role AS author_role
		 FROM comments c
		 JOIN users u ON u.id = c.author_id
		 WHERE c.id = $1`,
		cmt.ID,
	)
	if err != nil {
		return comment.Comment{}, errors.Wrap(err, "getting created comment")
	}
	return row.toComment(), nil
}

func (repo *commentRepository) QueryCommentsBySubmission(ctx context.Context, submissionID int) ([]comment.Comment, error) {
	var rows []commentRow
	err := repo.db.SelectContext(
		ctx, &rows,
		`SELECT c.id, c.content, c.author_id, c.submission_id, c.created_at,
		        u.name AS author_name, u.role AS author_role
		 FROM comments c
		 JOIN users u ON u.id = c.author_id
		 WHERE c.submission_id = $1
		 ORDER BY c.created_at ASC`,
		submissionID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying comments")
	}

	comments := make([]comment.Comment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, row.toComment())
	}
	return comments, nil
}
