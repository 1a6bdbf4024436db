package submission

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/edulab/peerreview/core"
	"github.com/edulab/peerreview/core/review"
)

// Points bounds for teacher grading, distinct from peer-review scores.
const (
	MinPoints = 0
	MaxPoints = 100
)

type Submission struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"imageUrl"`
	FileURL   string    `json:"fileUrl"`
	Points    *int      `json:"points"`
	StudentID int       `json:"studentId"`
	ProjectID int       `json:"projectId"`
	CreatedAt time.Time `json:"createdAt"` // UTC

	// joined for display
	StudentName  string `json:"studentName,omitempty"`
	StudentEmail string `json:"studentEmail,omitempty"`
	ProjectTitle string `json:"projectTitle,omitempty"`
	ProjectTags  string `json:"projectTags,omitempty"`
}

// Detail is a Submission with its reviews and comment count fanned out.
type Detail struct {
	Submission
	Reviews      []review.Review `json:"reviews"`
	CommentCount int             `json:"commentCount"`
}

// NewSubmission contains the multipart form fields of a submission-create
// request; attachments are handled separately by the file store.
type NewSubmission struct {
	ProjectID int    `form:"projectId" json:"projectId" validate:"required"`
	Content   string `form:"content" json:"content" validate:"required"`
}

func (ns *NewSubmission) Validate(validate *validator.Validate) error {
	ns.Content = core.CleanString(ns.Content)
	return validate.Struct(ns)
}

// Grade is the teacher grading payload.
type Grade struct {
	Points *int `json:"points" validate:"required,min=0,max=100"`
}

func (g *Grade) Validate(validate *validator.Validate) error {
	return validate.Struct(g)
}
