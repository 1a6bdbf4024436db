package inmemdb

import (
	"context"
	"sort"

	"github.com/edulab/peerreview/core/review"
)

type reviewRepository struct {
	db *DB
}

var _ review.Repository = (*reviewRepository)(nil)

func NewReviewRepository(db *DB) *reviewRepository {
	return &reviewRepository{db: db}
}

func (repo *reviewRepository) CheckReviewUniqueness(_ context.Context, reviewerID, submissionID int) error {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, rev := range repo.db.reviews {
		if rev.ReviewerID == reviewerID && rev.SubmissionID == submissionID {
			return review.ErrAlreadyReviewed
		}
	}
	return nil
}

func (repo *reviewRepository) CreateReview(_ context.Context, rev review.Review) (review.Review, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	rev.ID = repo.db.nextID("reviews")
	repo.db.reviews[rev.ID] = rev
	return repo.db.joinReview(rev), nil
}

func (repo *reviewRepository) QueryReviewsByReviewer(_ context.Context, reviewerID int) ([]review.Authored, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	authored := make([]review.Authored, 0)
	for _, rev := range repo.db.reviews {
		if rev.ReviewerID != reviewerID {
			continue
		}
		a := review.Authored{Review: repo.db.joinReview(rev)}
		if sub, ok := repo.db.submissions[rev.SubmissionID]; ok {
			if stu, ok := repo.db.users[sub.StudentID]; ok {
				a.StudentName = stu.Name
			}
			if prj, ok := repo.db.projects[sub.ProjectID]; ok {
				a.ProjectID = prj.ID
				a.ProjectTitle = prj.Title
			}
		}
		authored = append(authored, a)
	}
	sort.Slice(authored, func(i, j int) bool { return authored[i].ID > authored[j].ID }) // newest first
	return authored, nil
}

// joinReview fills display fields; db.mu must be held.
func (db *DB) joinReview(rev review.Review) review.Review {
	if reviewer, ok := db.users[rev.ReviewerID]; ok {
		rev.ReviewerName = reviewer.Name
		rev.ReviewerRole = reviewer.Role
	}
	return rev
}
