package tests

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulab/peerreview/core/project"
)

func TestProjectCreate(t *testing.T) {
	te := setup(t)
	teacher := te.createTeacher(t, "Prof", "prof@school.test")
	student := te.createStudent(t, "Amina", "amina@school.test")

	body := marshalObj(t, map[string]interface{}{
		"title":       "Data Structures",
		"description": "Implement a balanced tree",
		"dueDate":     time.Now().Add(72 * time.Hour).UTC().Format(time.RFC3339),
		"tags":        "go,trees",
	})

	t.Run("teacher ok", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/api/projects", te.token(t, teacher), body)
		te.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var prj project.Project
		decodeBody(t, rec, &prj)
		assert.Equal(t, "Data Structures", prj.Title)
		assert.Equal(t, teacher.ID, prj.TeacherID)
	})

	t.Run("student forbidden", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/api/projects", te.token(t, student), body)
		te.server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing due date rejected", func(t *testing.T) {
		bad := marshalObj(t, map[string]string{"title": "No deadline", "description": "whenever"})
		req, rec := newAuthRequest(http.MethodPost, "/api/projects", te.token(t, teacher), bad)
		te.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var fldErrs map[string]string
		decodeBody(t, rec, &fldErrs)
		assert.Contains(t, fldErrs, "dueDate")
	})
}

func TestProjectList(t *testing.T) {
	te := setup(t)
	teacher := te.createTeacher(t, "Prof", "prof@school.test")
	student := te.createStudent(t, "Amina", "amina@school.test")
	other := te.createStudent(t, "Ben", "ben@school.test")

	first := te.createProject(t, teacher, "First")
	second := te.createProject(t, teacher, "Second")
	te.createSubmission(t, student, first)

	t.Run("newest first with viewer flags", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/projects", te.token(t, student))
		te.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var got []project.Info
		decodeBody(t, rec, &got)
		require.Len(t, got, 2)

		assert.Equal(t, second.ID, got[0].ID)
		assert.False(t, got[0].IsSubmitted)
		assert.Equal(t, 0, got[0].SubmissionCount)

		assert.Equal(t, first.ID, got[1].ID)
		assert.True(t, got[1].IsSubmitted)
		assert.Equal(t, 1, got[1].SubmissionCount)
	})

	t.Run("isSubmitted is per viewer", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/projects", te.token(t, other))
		te.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var got []project.Info
		decodeBody(t, rec, &got)
		require.Len(t, got, 2)
		assert.False(t, got[1].IsSubmitted)
		assert.Equal(t, 1, got[1].SubmissionCount)
	})

	t.Run("limit and offset", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/projects?limit=1&offset=1", te.token(t, student))
		te.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var got []project.Info
		decodeBody(t, rec, &got)
		require.Len(t, got, 1)
		assert.Equal(t, first.ID, got[0].ID)
	})

	t.Run("offset without limit returns the tail", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/projects?offset=1", te.token(t, student))
		te.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var got []project.Info
		decodeBody(t, rec, &got)
		require.Len(t, got, 1)
		assert.Equal(t, first.ID, got[0].ID)
	})

	t.Run("bad limit rejected", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/projects?limit=abc", te.token(t, student))
		te.server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestProjectDetail(t *testing.T) {
	te := setup(t)
	teacher := te.createTeacher(t, "Prof", "prof@school.test")
	student := te.createStudent(t, "Amina", "amina@school.test")
	reviewer := te.createStudent(t, "Ben", "ben@school.test")

	prj := te.createProject(t, teacher, "Detailed")
	sub := te.createSubmission(t, student, prj)
	te.createReview(t, reviewer, sub, 4)

	t.Run("ok", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/projects/"+itoa(prj.ID), te.token(t, student))
		te.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var got project.Detail
		decodeBody(t, rec, &got)
		assert.Equal(t, prj.ID, got.ID)
		assert.Equal(t, teacher.Name, got.TeacherName)
		require.Len(t, got.Submissions, 1)
		assert.Equal(t, sub.ID, got.Submissions[0].ID)
		require.Len(t, got.Submissions[0].Reviews, 1)
		assert.Equal(t, 4, got.Submissions[0].Reviews[0].Score)
	})

	t.Run("unknown id", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/projects/999", te.token(t, student))
		te.server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/projects/abc", te.token(t, student))
		te.server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
