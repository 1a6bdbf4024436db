package tests

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulab/peerreview/core/assignment"
	"github.com/edulab/peerreview/core/notification"
)

func TestAssignmentCreate(t *testing.T) {
	te := setup(t)
	teacher := te.createTeacher(t, "Prof", "prof@school.test")
	author := te.createStudent(t, "Amina", "amina@school.test")
	reviewer := te.createStudent(t, "Ben", "ben@school.test")
	prj := te.createProject(t, teacher, "Assigned")
	sub := te.createSubmission(t, author, prj)

	due := time.Now().Add(48 * time.Hour).UTC()

	t.Run("creates and notifies the reviewer", func(t *testing.T) {
		body := marshalObj(t, map[string]interface{}{
			"projectId":    prj.ID,
			"reviewerId":   reviewer.ID,
			"submissionId": sub.ID,
			"dueDate":      due.Format(time.RFC3339),
		})
		req, rec := newAuthRequest(http.MethodPost, "/api/assignments", te.token(t, teacher), body)
		te.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var asg assignment.Assignment
		decodeBody(t, rec, &asg)
		assert.Equal(t, assignment.StatusPending, asg.Status)
		assert.Equal(t, prj.Title, asg.ProjectTitle)
		assert.Equal(t, reviewer.Name, asg.ReviewerName)
		assert.Equal(t, author.Name, asg.StudentName)

		notes, err := te.ntfSvc.QueryByUser(context.Background(), reviewer.ID)
		require.NoError(t, err)
		require.Len(t, notes, 1)
		wantMsg := fmt.Sprintf("You have been assigned to review %q by %s", prj.Title, author.Name)
		assert.Equal(t, wantMsg, notes[0].Message)
		assert.Equal(t, notification.TypeInfo, notes[0].Type)
		assert.False(t, notes[0].IsRead)
	})

	t.Run("student cannot assign", func(t *testing.T) {
		body := marshalObj(t, map[string]interface{}{
			"projectId":    prj.ID,
			"reviewerId":   reviewer.ID,
			"submissionId": sub.ID,
			"dueDate":      due.Format(time.RFC3339),
		})
		req, rec := newAuthRequest(http.MethodPost, "/api/assignments", te.token(t, author), body)
		te.server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("dangling references are 404", func(t *testing.T) {
		for name, body := range map[string]map[string]interface{}{
			"project":    {"projectId": 999, "reviewerId": reviewer.ID, "submissionId": sub.ID, "dueDate": due.Format(time.RFC3339)},
			"reviewer":   {"projectId": prj.ID, "reviewerId": 999, "submissionId": sub.ID, "dueDate": due.Format(time.RFC3339)},
			"submission": {"projectId": prj.ID, "reviewerId": reviewer.ID, "submissionId": 999, "dueDate": due.Format(time.RFC3339)},
		} {
			req, rec := newAuthRequest(http.MethodPost, "/api/assignments", te.token(t, teacher), marshalObj(t, body))
			te.server.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusNotFound, rec.Code, "unknown %s: %s", name, rec.Body.String())
		}
	})
}

func TestAssignmentQueries(t *testing.T) {
	te := setup(t)
	teacher := te.createTeacher(t, "Prof", "prof@school.test")
	author := te.createStudent(t, "Amina", "amina@school.test")
	reviewer := te.createStudent(t, "Ben", "ben@school.test")
	prj := te.createProject(t, teacher, "Queue")
	sub := te.createSubmission(t, author, prj)

	ctx := context.Background()
	later, err := te.asgSvc.Create(ctx, assignment.NewAssignment{
		ProjectID: prj.ID, ReviewerID: reviewer.ID, SubmissionID: sub.ID,
		DueDate: time.Now().Add(96 * time.Hour).UTC(),
	})
	require.NoError(t, err)
	sooner, err := te.asgSvc.Create(ctx, assignment.NewAssignment{
		ProjectID: prj.ID, ReviewerID: reviewer.ID, SubmissionID: sub.ID,
		DueDate: time.Now().Add(24 * time.Hour).UTC(),
	})
	require.NoError(t, err)

	t.Run("my is due-date ascending", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/assignments/my", te.token(t, reviewer))
		te.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var got []assignment.Assignment
		decodeBody(t, rec, &got)
		require.Len(t, got, 2)
		assert.Equal(t, sooner.ID, got[0].ID)
		assert.Equal(t, later.ID, got[1].ID)
	})

	t.Run("all is teacher only", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/assignments", te.token(t, reviewer))
		te.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		req, rec = newAuthRequest(http.MethodGet, "/api/assignments", te.token(t, teacher))
		te.server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var got []assignment.Assignment
		decodeBody(t, rec, &got)
		assert.Len(t, got, 2)
	})
}

func TestAssignmentStatusUpdate(t *testing.T) {
	te := setup(t)
	teacher := te.createTeacher(t, "Prof", "prof@school.test")
	author := te.createStudent(t, "Amina", "amina@school.test")
	reviewer := te.createStudent(t, "Ben", "ben@school.test")
	other := te.createStudent(t, "Cleo", "cleo@school.test")
	prj := te.createProject(t, teacher, "Status")
	sub := te.createSubmission(t, author, prj)

	asg, err := te.asgSvc.Create(context.Background(), assignment.NewAssignment{
		ProjectID: prj.ID, ReviewerID: reviewer.ID, SubmissionID: sub.ID,
		DueDate: time.Now().Add(24 * time.Hour).UTC(),
	})
	require.NoError(t, err)

	path := "/api/assignments/" + itoa(asg.ID) + "/status"
	completed := marshalObj(t, map[string]string{"status": assignment.StatusCompleted})

	t.Run("only the assignee may update", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, path, te.token(t, other), completed)
		te.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		req, rec = newAuthRequest(http.MethodPut, path, te.token(t, reviewer), completed)
		te.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var got assignment.Assignment
		decodeBody(t, rec, &got)
		assert.Equal(t, assignment.StatusCompleted, got.Status)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		body := marshalObj(t, map[string]string{"status": "DONEISH"})
		req, rec := newAuthRequest(http.MethodPut, path, te.token(t, reviewer), body)
		te.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var fldErrs map[string]string
		decodeBody(t, rec, &fldErrs)
		assert.Contains(t, fldErrs, "status")
	})

	t.Run("unknown assignment", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/api/assignments/999/status", te.token(t, reviewer), completed)
		te.server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
