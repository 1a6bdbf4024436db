package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/edulab/peerreview/core/assignment"
	"github.com/edulab/peerreview/core/notification"
)

type assignmentRepository struct {
	db *sqlx.DB
}

var _ assignment.Repository = (*assignmentRepository)(nil)

func NewAssignmentRepository(db *sqlx.DB) *assignmentRepository {
	return &assignmentRepository{db: db}
}

type assignmentRow struct {
	ID           int       `db:"id"`
	ProjectID    int       `db:"project_id"`
	ReviewerID   int       `db:"reviewer_id"`
	SubmissionID int       `db:"submission_id"`
	Status       string    `db:"status"`
	DueDate      time.Time `db:"due_date"`
	CreatedAt    time.Time `db:"created_at"`
	ProjectTitle string    `db:"project_title"`
	ReviewerName string    `db:"reviewer_name"`
	StudentName  string    `db:"student_name"`
}

func (r assignmentRow) toAssignment() assignment.Assignment {
	return assignment.Assignment{
		ID:           r.ID,
		ProjectID:    r.ProjectID,
		ReviewerID:   r.ReviewerID,
		SubmissionID: r.SubmissionID,
		Status:       r.Status,
		DueDate:      r.DueDate,
		CreatedAt:    r.CreatedAt,
		ProjectTitle: r.ProjectTitle,
		ReviewerName: r.ReviewerName,
		StudentName:  r.StudentName,
	}
}

const assignmentSelect = `
	SELECT a.id, a.project_id, a.reviewer_id, a.submission_id, a.status, a.due_date, a.created_at,
	       p.title AS project_title,
	       rev.name AS reviewer_name,
	       stu.name AS student_name
	FROM assignments a
	JOIN projects p ON p.id = a.project_id
	JOIN users rev ON rev.id = a.reviewer_id
	JOIN submissions s ON s.id = a.submission_id
	JOIN users stu ON stu.id = s.student_id`

func (repo *assignmentRepository) CreateAssignmentWithNotification(
	ctx context.Context,
	asg assignment.Assignment,
	n notification.Notification,
) (assignment.Assignment, error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	err = tx.QueryRowxContext(
		ctx,
		`INSERT INTO assignments (project_id, reviewer_id, submission_id, status, due_date, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		asg.ProjectID, asg.ReviewerID, asg.SubmissionID, asg.Status, asg.DueDate, asg.CreatedAt,
	).Scan(&asg.ID)
	if err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "inserting assignment")
	}

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO notifications (user_id, message, type, created_at)
		 VALUES ($1, $2, $3, $4)`,
		n.UserID, n.Message, n.Type, n.CreatedAt,
	)
	if err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "inserting notification")
	}

	if err = tx.Commit(); err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "committing transaction")
	}
	return repo.GetAssignmentByID(ctx, asg.ID)
}

func (repo *assignmentRepository) GetAssignmentByID(ctx context.Context, id int) (assignment.Assignment, error) {
	var row assignmentRow
	err := repo.db.GetContext(ctx, &row, assignmentSelect+` WHERE a.id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return assignment.Assignment{}, assignment.ErrNotFound
		}
		return assignment.Assignment{}, errors.Wrap(err, "getting assignment")
	}
	return row.toAssignment(), nil
}

func (repo *assignmentRepository) QueryAllAssignments(ctx context.Context) ([]assignment.Assignment, error) {
	var rows []assignmentRow
	err := repo.db.SelectContext(ctx, &rows, assignmentSelect+` ORDER BY a.created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "querying assignments")
	}
	return toAssignments(rows), nil
}

func (repo *assignmentRepository) QueryAssignmentsByReviewer(ctx context.Context, reviewerID int) ([]assignment.Assignment, error) {
	var rows []assignmentRow
	err := repo.db.SelectContext(
		ctx, &rows,
		assignmentSelect+` WHERE a.reviewer_id = $1 ORDER BY a.due_date ASC`,
		reviewerID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying assignments by reviewer")
	}
	return toAssignments(rows), nil
}

func (repo *assignmentRepository) SetAssignmentStatus(ctx context.Context, id int, status string) (assignment.Assignment, error) {
	res, err := repo.db.ExecContext(ctx, `UPDATE assignments SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "updating assignment status")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	return repo.GetAssignmentByID(ctx, id)
}

func toAssignments(rows []assignmentRow) []assignment.Assignment {
	asgs := make([]assignment.Assignment, 0, len(rows))
	for _, row := range rows {
		asgs = append(asgs, row.toAssignment())
	}
	return asgs
}
