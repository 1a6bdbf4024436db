package inmemdb

import (
	"context"
	"sort"

	"github.com/edulab/peerreview/core/assignment"
	"github.com/edulab/peerreview/core/notification"
)

type assignmentRepository struct {
	db *DB
}

var _ assignment.Repository = (*assignmentRepository)(nil)

func NewAssignmentRepository(db *DB) *assignmentRepository {
	return &assignmentRepository{db: db}
}

func (repo *assignmentRepository) CreateAssignmentWithNotification(
	_ context.Context,
	asg assignment.Assignment,
	n notification.Notification,
) (assignment.Assignment, error) {
	// both rows under one lock: all-or-nothing as seen by readers
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	asg.ID = repo.db.nextID("assignments")
	repo.db.assignments[asg.ID] = asg

	n.ID = repo.db.nextID("notifications")
	repo.db.notifications[n.ID] = n

	return repo.db.joinAssignment(asg), nil
}

func (repo *assignmentRepository) GetAssignmentByID(_ context.Context, id int) (assignment.Assignment, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	asg, ok := repo.db.assignments[id]
	if !ok {
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	return repo.db.joinAssignment(asg), nil
}

func (repo *assignmentRepository) QueryAllAssignments(_ context.Context) ([]assignment.Assignment, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	asgs := repo.query(func(assignment.Assignment) bool { return true })
	sort.Slice(asgs, func(i, j int) bool { return asgs[i].ID > asgs[j].ID }) // newest first
	return asgs, nil
}

func (repo *assignmentRepository) QueryAssignmentsByReviewer(_ context.Context, reviewerID int) ([]assignment.Assignment, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	asgs := repo.query(func(asg assignment.Assignment) bool { return asg.ReviewerID == reviewerID })
	sort.Slice(asgs, func(i, j int) bool {
		if !asgs[i].DueDate.Equal(asgs[j].DueDate) {
			return asgs[i].DueDate.Before(asgs[j].DueDate)
		}
		return asgs[i].ID < asgs[j].ID
	})
	return asgs, nil
}

func (repo *assignmentRepository) SetAssignmentStatus(_ context.Context, id int, status string) (assignment.Assignment, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	asg, ok := repo.db.assignments[id]
	if !ok {
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	asg.Status = status
	repo.db.assignments[id] = asg
	return repo.db.joinAssignment(asg), nil
}

// query must be called with db.mu held.
func (repo *assignmentRepository) query(match func(assignment.Assignment) bool) []assignment.Assignment {
	asgs := make([]assignment.Assignment, 0)
	for _, asg := range repo.db.assignments {
		if match(asg) {
			asgs = append(asgs, repo.db.joinAssignment(asg))
		}
	}
	return asgs
}

// joinAssignment fills display fields; db.mu must be held.
func (db *DB) joinAssignment(asg assignment.Assignment) assignment.Assignment {
	if prj, ok := db.projects[asg.ProjectID]; ok {
		asg.ProjectTitle = prj.Title
	}
	if reviewer, ok := db.users[asg.ReviewerID]; ok {
		asg.ReviewerName = reviewer.Name
	}
	if sub, ok := db.submissions[asg.SubmissionID]; ok {
		if stu, ok := db.users[sub.StudentID]; ok {
			asg.StudentName = stu.Name
		}
	}
	return asg
}
