package assignment

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/edulab/peerreview/core/notification"
	"github.com/edulab/peerreview/core/submission"
	"github.com/edulab/peerreview/core/user"
)

var (
	ErrNotFound           = errors.New("assignment not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrReviewerNotFound   = errors.New("reviewer not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	// ErrNotAssignee is returned when someone other than the assigned
	// reviewer tries to update an assignment's status.
	ErrNotAssignee = errors.New("assignment belongs to another reviewer")
)

type (
	Repository interface {
		// CreateAssignmentWithNotification persists the assignment and the
		// reviewer's notification atomically: either both rows exist afterwards
		// or neither does.
		CreateAssignmentWithNotification(ctx context.Context, asg Assignment, n notification.Notification) (Assignment, error)
		GetAssignmentByID(ctx context.Context, id int) (Assignment, error)
		// QueryAllAssignments returns every assignment, newest first.
		QueryAllAssignments(ctx context.Context) ([]Assignment, error)
		// QueryAssignmentsByReviewer returns a reviewer's assignments ordered
		// by ascending due date.
		QueryAssignmentsByReviewer(ctx context.Context, reviewerID int) ([]Assignment, error)
		SetAssignmentStatus(ctx context.Context, id int, status string) (Assignment, error)
	}

	// ProjectChecker reports whether a project row exists.
	ProjectChecker interface {
		ProjectExists(ctx context.Context, id int) (bool, error)
	}

	// SubmissionGetter fetches a submission with its student and project joined.
	SubmissionGetter interface {
		GetSubmissionByID(ctx context.Context, id int) (submission.Submission, error)
	}

	// UserGetter fetches a user by id.
	UserGetter interface {
		GetUserByID(ctx context.Context, id int) (user.User, error)
	}

	Service struct {
		repo        Repository
		projects    ProjectChecker
		submissions SubmissionGetter
		users       UserGetter
	}
)

func NewService(repo Repository, projects ProjectChecker, submissions SubmissionGetter, users UserGetter) *Service {
	return &Service{repo: repo, projects: projects, submissions: submissions, users: users}
}

// Create records a teacher-directed review assignment and notifies the
// reviewer. All referenced rows are checked first so dangling ids surface
// as not-found instead of storage errors.
func (svc *Service) Create(ctx context.Context, na NewAssignment) (Assignment, error) {
	if exists, err := svc.projects.ProjectExists(ctx, na.ProjectID); err != nil {
		return Assignment{}, errors.Wrap(err, "checking project")
	} else if !exists {
		return Assignment{}, ErrProjectNotFound
	}

	if _, err := svc.users.GetUserByID(ctx, na.ReviewerID); err != nil {
		if err == user.ErrNotFound {
			return Assignment{}, ErrReviewerNotFound
		}
		return Assignment{}, errors.Wrap(err, "checking reviewer")
	}

	sub, err := svc.submissions.GetSubmissionByID(ctx, na.SubmissionID)
	if err != nil {
		if err == submission.ErrNotFound {
			return Assignment{}, ErrSubmissionNotFound
		}
		return Assignment{}, errors.Wrap(err, "checking submission")
	}

	now := time.Now().UTC()
	asg := Assignment{
		ProjectID:    na.ProjectID,
		ReviewerID:   na.ReviewerID,
		SubmissionID: na.SubmissionID,
		Status:       StatusPending,
		DueDate:      na.DueDate,
		CreatedAt:    now,
	}
	note := notification.Notification{
		UserID:    na.ReviewerID,
		Message:   fmt.Sprintf("You have been assigned to review %q by %s", sub.ProjectTitle, sub.StudentName),
		Type:      notification.TypeInfo,
		CreatedAt: now,
	}
	return svc.repo.CreateAssignmentWithNotification(ctx, asg, note)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Assignment, error) {
	return svc.repo.QueryAllAssignments(ctx)
}

func (svc *Service) QueryByReviewer(ctx context.Context, reviewerID int) ([]Assignment, error) {
	return svc.repo.QueryAssignmentsByReviewer(ctx, reviewerID)
}

// UpdateStatus transitions an assignment's status. Only the assigned
// reviewer may do so.
func (svc *Service) UpdateStatus(ctx context.Context, id, callerID int, status string) (Assignment, error) {
	asg, err := svc.repo.GetAssignmentByID(ctx, id)
	if err != nil {
		return Assignment{}, err
	}
	if asg.ReviewerID != callerID {
		return Assignment{}, ErrNotAssignee
	}
	return svc.repo.SetAssignmentStatus(ctx, id, status)
}
