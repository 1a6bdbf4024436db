package project

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/edulab/peerreview/core"
	"github.com/edulab/peerreview/core/submission"
)

type Project struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        string    `json:"tags"` // comma-separated free text
	DueDate     time.Time `json:"dueDate"`
	TeacherID   int       `json:"teacherId"`
	CreatedAt   time.Time `json:"createdAt"` // UTC

	// joined for display
	TeacherName string `json:"teacherName,omitempty"`
}

// Info is a Project as rendered on listings: submission count plus whether
// the requesting user has submitted to it. IsSubmitted is computed per
// request against the viewer, never cached.
type Info struct {
	Project
	SubmissionCount int  `json:"submissionCount"`
	IsSubmitted     bool `json:"isSubmitted"`
}

// Detail is a Project with its full submission fan-out.
type Detail struct {
	Project
	Submissions []submission.Detail `json:"submissions"`
}

// NewProject contains information needed to create a Project.
type NewProject struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description" validate:"required"`
	DueDate     time.Time `json:"dueDate" validate:"required"`
	Tags        string    `json:"tags"`
}

func (np *NewProject) Validate(validate *validator.Validate) error {
	np.Title = core.CleanString(np.Title)
	np.Description = core.CleanString(np.Description)
	np.Tags = core.CleanString(np.Tags)
	return validate.Struct(np)
}
