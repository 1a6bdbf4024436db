package assignment

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Assignment statuses.
const (
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
)

// Assignment directs a specific reviewer to a specific submission by a deadline.
type Assignment struct {
	ID           int       `json:"id"`
	ProjectID    int       `json:"projectId"`
	ReviewerID   int       `json:"reviewerId"`
	SubmissionID int       `json:"submissionId"`
	Status       string    `json:"status"`
	DueDate      time.Time `json:"dueDate"`
	CreatedAt    time.Time `json:"createdAt"` // UTC

	// joined for display
	ProjectTitle string `json:"projectTitle,omitempty"`
	ReviewerName string `json:"reviewerName,omitempty"`
	StudentName  string `json:"studentName,omitempty"`
}

// NewAssignment contains information needed to create an Assignment.
type NewAssignment struct {
	ProjectID    int       `json:"projectId" validate:"required"`
	ReviewerID   int       `json:"reviewerId" validate:"required"`
	SubmissionID int       `json:"submissionId" validate:"required"`
	DueDate      time.Time `json:"dueDate" validate:"required"`
}

func (na *NewAssignment) Validate(validate *validator.Validate) error {
	return validate.Struct(na)
}

// UpdateStatus is the status-transition payload.
type UpdateStatus struct {
	Status string `json:"status" validate:"required,oneof=PENDING COMPLETED"`
}

func (us *UpdateStatus) Validate(validate *validator.Validate) error {
	return validate.Struct(us)
}
