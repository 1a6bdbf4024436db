package inmemdb

import (
	"context"
	"sort"

	"github.com/edulab/peerreview/core"
	"github.com/edulab/peerreview/core/project"
	"github.com/edulab/peerreview/core/review"
	"github.com/edulab/peerreview/core/submission"
)

type projectRepository struct {
	db *DB
}

var _ project.Repository = (*projectRepository)(nil)

func NewProjectRepository(db *DB) *projectRepository {
	return &projectRepository{db: db}
}

func (repo *projectRepository) CreateProject(_ context.Context, prj project.Project) (project.Project, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	prj.ID = repo.db.nextID("projects")
	repo.db.projects[prj.ID] = prj
	return repo.db.joinProject(prj), nil
}

func (repo *projectRepository) QueryAllProjects(_ context.Context, viewerID int, page core.Page) ([]project.Info, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	infos := make([]project.Info, 0, len(repo.db.projects))
	for _, prj := range repo.db.projects {
		info := project.Info{Project: repo.db.joinProject(prj)}
		for _, sub := range repo.db.submissions {
			if sub.ProjectID != prj.ID {
				continue
			}
			info.SubmissionCount++
			if sub.StudentID == viewerID {
				info.IsSubmitted = true
			}
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID > infos[j].ID }) // newest first

	low, high := page.Slice(len(infos))
	return infos[low:high], nil
}

func (repo *projectRepository) GetProjectDetail(_ context.Context, id int) (project.Detail, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	prj, ok := repo.db.projects[id]
	if !ok {
		return project.Detail{}, project.ErrNotFound
	}

	det := project.Detail{
		Project:     repo.db.joinProject(prj),
		Submissions: repo.db.submissionDetails(func(sub submission.Submission) bool { return sub.ProjectID == id }),
	}
	return det, nil
}

func (repo *projectRepository) ProjectExists(_ context.Context, id int) (bool, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	_, ok := repo.db.projects[id]
	return ok, nil
}

// joinProject fills display fields; db.mu must be held.
func (db *DB) joinProject(prj project.Project) project.Project {
	if teacher, ok := db.users[prj.TeacherID]; ok {
		prj.TeacherName = teacher.Name
	}
	return prj
}

// submissionDetails returns the matching submissions with reviews and comment
// counts fanned out, newest first; db.mu must be held.
func (db *DB) submissionDetails(match func(submission.Submission) bool) []submission.Detail {
	details := make([]submission.Detail, 0)
	for _, sub := range db.submissions {
		if !match(sub) {
			continue
		}
		det := submission.Detail{Submission: db.joinSubmission(sub), Reviews: []review.Review{}}
		for _, rev := range db.reviews {
			if rev.SubmissionID == sub.ID {
				det.Reviews = append(det.Reviews, db.joinReview(rev))
			}
		}
		sort.Slice(det.Reviews, func(i, j int) bool { return det.Reviews[i].ID > det.Reviews[j].ID })
		for _, cmt := range db.comments {
			if cmt.SubmissionID == sub.ID {
				det.CommentCount++
			}
		}
		details = append(details, det)
	}
	sort.Slice(details, func(i, j int) bool { return details[i].ID > details[j].ID }) // newest first
	return details
}
