package tests

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulab/peerreview/core/analytics"
)

func TestAnalyticsOverview(t *testing.T) {
	te := setup(t)
	teacher := te.createTeacher(t, "Prof", "prof@school.test")
	amina := te.createStudent(t, "Amina", "amina@school.test")
	ben := te.createStudent(t, "Ben", "ben@school.test")
	prj := te.createProject(t, teacher, "Stats")

	subA := te.createSubmission(t, amina, prj)
	subB := te.createSubmission(t, ben, prj)
	te.createReview(t, ben, subA, 4)
	te.createReview(t, amina, subB, 5)

	_, err := te.subSvc.Grade(context.Background(), subA.ID, 80)
	require.NoError(t, err)
	_, err = te.subSvc.Grade(context.Background(), subB.ID, 85)
	require.NoError(t, err)

	t.Run("teacher only", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/analytics/overview", te.token(t, amina))
		te.server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("aggregates", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/analytics/overview", te.token(t, teacher))
		te.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var got analytics.Overview
		decodeBody(t, rec, &got)

		assert.Equal(t, 3, got.Users)
		assert.Equal(t, 1, got.Projects)
		assert.Equal(t, 2, got.Submissions)
		assert.Equal(t, 2, got.Reviews)
		assert.Equal(t, 0, got.Assignments)

		assert.InDelta(t, 4.5, got.AverageScore, 0.001)
		assert.InDelta(t, 82.5, got.AveragePoints, 0.001)
		assert.Zero(t, got.CompletionRate) // no assignments yet

		require.Len(t, got.RecentActivity, 2)
		// newest review first
		assert.Equal(t, 5, got.RecentActivity[0].Score)
		assert.Equal(t, amina.Name, got.RecentActivity[0].ReviewerName)
		assert.Equal(t, ben.Name, got.RecentActivity[0].StudentName)
		assert.Equal(t, prj.Title, got.RecentActivity[0].ProjectTitle)
	})

	t.Run("empty platform yields zeros", func(t *testing.T) {
		fresh := setup(t)
		prof := fresh.createTeacher(t, "Prof", "prof@school.test")

		req, rec := newAuthRequest(http.MethodGet, "/api/analytics/overview", fresh.token(t, prof))
		fresh.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var got analytics.Overview
		decodeBody(t, rec, &got)
		assert.Zero(t, got.AverageScore)
		assert.Zero(t, got.AveragePoints)
		assert.Zero(t, got.CompletionRate)
		assert.Empty(t, got.RecentActivity)
	})
}

func TestAnalyticsSummaries(t *testing.T) {
	te := setup(t)
	teacher := te.createTeacher(t, "Prof", "prof@school.test")
	amina := te.createStudent(t, "Amina", "amina@school.test")
	ben := te.createStudent(t, "Ben", "ben@school.test")
	cleo := te.createStudent(t, "Cleo", "cleo@school.test")

	graded := te.createProject(t, teacher, "Graded")
	other := te.createProject(t, teacher, "Other")

	subA := te.createSubmission(t, amina, graded)
	te.createReview(t, ben, subA, 3)
	te.createReview(t, cleo, subA, 5)
	_, err := te.subSvc.Grade(context.Background(), subA.ID, 90)
	require.NoError(t, err)

	// noise in another project, must not leak into Graded's summary
	subB := te.createSubmission(t, ben, other)
	te.createReview(t, amina, subB, 1)

	t.Run("project summary", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/analytics/project/"+itoa(graded.ID), te.token(t, teacher))
		te.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var got analytics.Summary
		decodeBody(t, rec, &got)
		assert.Equal(t, 1, got.SubmissionCount)
		assert.Equal(t, 2, got.ReviewCount)
		assert.InDelta(t, 4.0, got.AverageScore, 0.001)
		assert.InDelta(t, 90.0, got.AveragePoints, 0.001)
		assert.Equal(t, [5]int{0, 0, 1, 0, 1}, got.ScoreDistribution)
	})

	t.Run("student summary", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/analytics/student/"+itoa(amina.ID), te.token(t, teacher))
		te.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var got analytics.Summary
		decodeBody(t, rec, &got)
		assert.Equal(t, 1, got.SubmissionCount)
		assert.Equal(t, 2, got.ReviewCount) // reviews received, not authored
		assert.InDelta(t, 4.0, got.AverageScore, 0.001)
		assert.InDelta(t, 90.0, got.AveragePoints, 0.001)
	})

	t.Run("unknown scope is empty, not an error", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/analytics/project/999", te.token(t, teacher))
		te.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var got analytics.Summary
		decodeBody(t, rec, &got)
		assert.Zero(t, got.SubmissionCount)
		assert.Zero(t, got.ReviewCount)
	})
}
