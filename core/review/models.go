package review

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/edulab/peerreview/core"
)

// Score bounds for peer reviews (star rating).
const (
	MinScore = 1
	MaxScore = 5
)

type Review struct {
	ID           int       `json:"id"`
	Content      string    `json:"content"`
	Score        int       `json:"score"`
	ReviewerID   int       `json:"reviewerId"`
	SubmissionID int       `json:"submissionId"`
	CreatedAt    time.Time `json:"createdAt"` // UTC

	// joined for display
	ReviewerName string `json:"reviewerName,omitempty"`
	ReviewerRole string `json:"reviewerRole,omitempty"`
}

// Authored is a Review as seen by its author, with the reviewed
// submission's project and student joined in.
type Authored struct {
	Review
	ProjectID    int    `json:"projectId"`
	ProjectTitle string `json:"projectTitle"`
	StudentName  string `json:"studentName"`
}

// NewReview contains information needed to review a submission.
type NewReview struct {
	SubmissionID int    `json:"submissionId" validate:"required"`
	Content      string `json:"content" validate:"required"`
	Score        int    `json:"score" validate:"required,min=1,max=5"`
}

func (nr *NewReview) Validate(validate *validator.Validate) error {
	nr.Content = core.CleanString(nr.Content)
	return validate.Struct(nr)
}
