package comment

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/edulab/peerreview/core"
)

type Comment struct {
	ID           int       `json:"id"`
	Content      string    `json:"content"`
	AuthorID     int       `json:"authorId"`
	SubmissionID int       `json:"submissionId"`
	CreatedAt    time.Time `json:"createdAt"` // UTC

	// joined for display
	AuthorName string `json:"authorName,omitempty"`
	AuthorRole string `json:"authorRole,omitempty"`
}

// NewComment contains information needed to comment on a submission.
type NewComment struct {
	SubmissionID int    `json:"submissionId" validate:"required"`
	Content      string `json:"content" validate:"required"`
}

func (nc *NewComment) Validate(validate *validator.Validate) error {
	nc.Content = core.CleanString(nc.Content)
	return validate.Struct(nc)
}
