package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/edulab/peerreview/core"
	"github.com/edulab/peerreview/core/project"
	"github.com/edulab/peerreview/core/review"
	"github.com/edulab/peerreview/core/submission"
)

type projectRepository struct {
	db *sqlx.DB
}

var _ project.Repository = (*projectRepository)(nil)

func NewProjectRepository(db *sqlx.DB) *projectRepository {
	return &projectRepository{db: db}
}

type projectRow struct {
	ID          int       `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Tags        string    `db:"tags"`
	DueDate     time.Time `db:"due_date"`
	TeacherID   int       `db:"teacher_id"`
	CreatedAt   time.Time `db:"created_at"`
	TeacherName string    `db:"teacher_name"`
}

func (r projectRow) toProject() project.Project {
	return project.Project{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Tags:        r.Tags,
		DueDate:     r.DueDate,
		TeacherID:   r.TeacherID,
		CreatedAt:   r.CreatedAt,
		TeacherName: r.TeacherName,
	}
}

func (repo *projectRepository) CreateProject(ctx context.Context, prj project.Project) (project.Project, error) {
	err := repo.db.QueryRowxContext(
		ctx,
		`INSERT INTO projects (title, description, tags, due_date, teacher_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		prj.Title, prj.Description, prj.Tags, prj.DueDate, prj.TeacherID, prj.CreatedAt,
	).Scan(&prj.ID)
	if err != nil {
		return project.Project{}, errors.Wrap(err, "inserting project")
	}
	return prj, nil
}

func (repo *projectRepository) QueryAllProjects(ctx context.Context, viewerID int, page core.Page) ([]project.Info, error) {
	q := `SELECT p.id, p.title, p.description, p.tags, p.due_date, p.teacher_id, p.created_at,
	             u.name AS teacher_name,
	             (SELECT COUNT(*) FROM submissions s WHERE s.project_id = p.id) AS submission_count,
	             EXISTS(SELECT 1 FROM submissions s WHERE s.project_id = p.id AND s.student_id = $1) AS is_submitted
	      FROM projects p
	      JOIN users u ON u.id = p.teacher_id
	      ORDER BY p.created_at DESC`
	q, args := appendPage(q, []interface{}{viewerID}, page)

	var rows []struct {
		projectRow
		SubmissionCount int  `db:"submission_count"`
		IsSubmitted     bool `db:"is_submitted"`
	}
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying projects")
	}

	infos := make([]project.Info, 0, len(rows))
	for _, row := range rows {
		infos = append(infos, project.Info{
			Project:         row.toProject(),
			SubmissionCount: row.SubmissionCount,
			IsSubmitted:     row.IsSubmitted,
		})
	}
	return infos, nil
}

func (repo *projectRepository) GetProjectDetail(ctx context.Context, id int) (project.Detail, error) {
	var row projectRow
	err := repo.db.GetContext(
		ctx, &row,
		`SELECT p.id, p.title, p.description, p.tags, p.due_date, p.teacher_id, p.created_at,
		        u.name AS teacher_name
		 FROM projects p
		 JOIN users u ON u.id = p.teacher_id
		 WHERE p.id = $1`,
		id,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return project.Detail{}, project.ErrNotFound
		}
		return project.Detail{}, errors.Wrap(err, "getting project")
	}

	subs, err := querySubmissionDetails(
		ctx, repo.db,
		`WHERE s.project_id = $1 ORDER BY s.created_at DESC`,
		id,
	)
	if err != nil {
		return project.Detail{}, errors.Wrap(err, "querying project submissions")
	}

	return project.Detail{Project: row.toProject(), Submissions: subs}, nil
}

func (repo *projectRepository) ProjectExists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := repo.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM projects WHERE id = $1)`, id)
	return exists, errors.Wrap(err, "checking project existence")
}

// querySubmissionDetails fetches submissions matching `filter` (a WHERE/ORDER
// tail over alias s) with student/project joins, then fans out their reviews
// and comment counts in two more queries instead of one per submission.
func querySubmissionDetails(ctx context.Context, db *sqlx.DB, filter string, args ...interface{}) ([]submission.Detail, error) {
	q := `SELECT s.id, s.content, s.image_url, s.file_url, s.points, s.student_id, s.project_id, s.created_at,
	             stu.name AS student_name, stu.email AS student_email,
	             p.title AS project_title, p.tags AS project_tags
	      FROM submissions s
	      JOIN users stu ON stu.id = s.student_id
	      JOIN projects p ON p.id = s.project_id ` + filter

	var rows []submissionRow
	if err := db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying submissions")
	}
	if len(rows) == 0 {
		return []submission.Detail{}, nil
	}

	ids := make([]int, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	reviewsBySub, err := queryReviewsForSubmissions(ctx, db, ids)
	if err != nil {
		return nil, err
	}
	commentCounts, err := queryCommentCounts(ctx, db, ids)
	if err != nil {
		return nil, err
	}

	details := make([]submission.Detail, 0, len(rows))
	for _, row := range rows {
		det := submission.Detail{
			Submission:   row.toSubmission(),
			Reviews:      reviewsBySub[row.ID],
			CommentCount: commentCounts[row.ID],
		}
		if det.Reviews == nil {
			det.Reviews = []review.Review{}
		}
		details = append(details, det)
	}
	return details, nil
}
