package inmemdb

import (
	"context"

	"github.com/edulab/peerreview/core"
	"github.com/edulab/peerreview/core/submission"
)

type submissionRepository struct {
	db *DB
}

var _ submission.Repository = (*submissionRepository)(nil)

func NewSubmissionRepository(db *DB) *submissionRepository {
	return &submissionRepository{db: db}
}

func (repo *submissionRepository) CreateSubmission(_ context.Context, sub submission.Submission) (submission.Submission, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	sub.ID = repo.db.nextID("submissions")
	repo.db.submissions[sub.ID] = sub
	return repo.db.joinSubmission(sub), nil
}

func (repo *submissionRepository) GetSubmissionByID(_ context.Context, id int) (submission.Submission, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	sub, ok := repo.db.submissions[id]
	if !ok {
		return submission.Submission{}, submission.ErrNotFound
	}
	return repo.db.joinSubmission(sub), nil
}

func (repo *submissionRepository) SubmissionExists(_ context.Context, id int) (bool, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	_, ok := repo.db.submissions[id]
	return ok, nil
}

func (repo *submissionRepository) QueryAllSubmissions(_ context.Context, page core.Page) ([]submission.Detail, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	details := repo.db.submissionDetails(func(submission.Submission) bool { return true })
	low, high := page.Slice(len(details))
	return details[low:high], nil
}

func (repo *submissionRepository) QuerySubmissionsByStudent(_ context.Context, studentID int) ([]submission.Detail, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	return repo.db.submissionDetails(func(sub submission.Submission) bool { return sub.StudentID == studentID }), nil
}

func (repo *submissionRepository) SetSubmissionPoints(_ context.Context, id, points int) (submission.Submission, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	sub, ok := repo.db.submissions[id]
	if !ok {
		return submission.Submission{}, submission.ErrNotFound
	}
	sub.Points = &points
	repo.db.submissions[id] = sub
	return repo.db.joinSubmission(sub), nil
}

// joinSubmission fills display fields; db.mu must be held.
func (db *DB) joinSubmission(sub submission.Submission) submission.Submission {
	if stu, ok := db.users[sub.StudentID]; ok {
		sub.StudentName = stu.Name
		sub.StudentEmail = stu.Email
	}
	if prj, ok := db.projects[sub.ProjectID]; ok {
		sub.ProjectTitle = prj.Title
		sub.ProjectTags = prj.Tags
	}
	return sub
}
