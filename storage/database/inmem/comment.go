package inmemdb

import (
	"context"
	"sort"

	"github.com/edulab/peerreview/core/comment"
)

type commentRepository struct {
	db *DB
}

var _ comment.Repository = (*commentRepository)(nil)

func NewCommentRepository(db *DB) *commentRepository {
	return &commentRepository{db: db}
}

func (repo *commentRepository) CreateComment(_ context.Context, cmt comment.Comment) (comment.Comment, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	cmt.ID = repo.db.nextID("comments")
	repo.db.comments[cmt.ID] = cmt
	return repo.db.joinComment(cmt), nil
}

func (repo *commentRepository) QueryCommentsBySubmission(_ context.Context, submissionID int) ([]comment.Comment, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	comments := make([]comment.Comment, 0)
	for _, cmt := range repo.db.comments {
		if cmt.SubmissionID == submissionID {
			comments = append(comments, repo.db.joinComment(cmt))
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID }) // oldest first
	return comments, nil
}

// joinComment fills display fields; db.mu must be held.
func (db *DB) joinComment(cmt comment.Comment) comment.Comment {
	if author, ok := db.users[cmt.AuthorID]; ok {
		cmt.AuthorName = author.Name
		cmt.AuthorRole = author.Role
	}
	return cmt
}
