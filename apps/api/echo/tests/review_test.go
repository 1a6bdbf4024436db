package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulab/peerreview/core/review"
)

func TestReviewCreate(t *testing.T) {
	te := setup(t)
	teacher := te.createTeacher(t, "Prof", "prof@school.test")
	author := te.createStudent(t, "Amina", "amina@school.test")
	prj := te.createProject(t, teacher, "Reviews")
	sub := te.createSubmission(t, author, prj)

	t.Run("every score in range", func(t *testing.T) {
		for score := review.MinScore; score <= review.MaxScore; score++ {
			reviewer := te.createStudent(t, "Reviewer", itoa(score)+"-reviewer@school.test")
			body := marshalObj(t, map[string]interface{}{
				"submissionId": sub.ID,
				"content":      "solid work",
				"score":        score,
			})
			req, rec := newAuthRequest(http.MethodPost, "/api/reviews", te.token(t, reviewer), body)
			te.server.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code, "score=%d: %s", score, rec.Body.String())
			var rev review.Review
			decodeBody(t, rec, &rev)
			assert.Equal(t, score, rev.Score)
			assert.Equal(t, reviewer.ID, rev.ReviewerID)
		}
	})

	t.Run("score out of range", func(t *testing.T) {
		reviewer := te.createStudent(t, "Ben", "ben@school.test")
		for _, score := range []int{0, 6, -1} {
			body := marshalObj(t, map[string]interface{}{
				"submissionId": sub.ID,
				"content":      "hmm",
				"score":        score,
			})
			req, rec := newAuthRequest(http.MethodPost, "/api/reviews", te.token(t, reviewer), body)
			te.server.ServeHTTP(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code, "score=%d", score)
			var fldErrs map[string]string
			decodeBody(t, rec, &fldErrs)
			assert.Contains(t, fldErrs, "score")
		}
	})

	t.Run("one review per submission per reviewer", func(t *testing.T) {
		reviewer := te.createStudent(t, "Cleo", "cleo@school.test")
		body := marshalObj(t, map[string]interface{}{
			"submissionId": sub.ID,
			"content":      "first take",
			"score":        3,
		})
		req, rec := newAuthRequest(http.MethodPost, "/api/reviews", te.token(t, reviewer), body)
		te.server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		req, rec = newAuthRequest(http.MethodPost, "/api/reviews", te.token(t, reviewer), body)
		te.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		var fldErrs map[string]string
		decodeBody(t, rec, &fldErrs)
		assert.Contains(t, fldErrs, "submissionId")
	})

	t.Run("unknown submission", func(t *testing.T) {
		reviewer := te.createStudent(t, "Dan", "dan@school.test")
		body := marshalObj(t, map[string]interface{}{
			"submissionId": 999,
			"content":      "ghost",
			"score":        2,
		})
		req, rec := newAuthRequest(http.MethodPost, "/api/reviews", te.token(t, reviewer), body)
		te.server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("teachers can review too", func(t *testing.T) {
		body := marshalObj(t, map[string]interface{}{
			"submissionId": sub.ID,
			"content":      "instructor feedback",
			"score":        4,
		})
		req, rec := newAuthRequest(http.MethodPost, "/api/reviews", te.token(t, teacher), body)
		te.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var rev review.Review
		decodeBody(t, rec, &rev)
		assert.Equal(t, "TEACHER", rev.ReviewerRole)
	})
}

func TestReviewQueryMine(t *testing.T) {
	te := setup(t)
	teacher := te.createTeacher(t, "Prof", "prof@school.test")
	author := te.createStudent(t, "Amina", "amina@school.test")
	reviewer := te.createStudent(t, "Ben", "ben@school.test")
	prj := te.createProject(t, teacher, "Mine")
	sub := te.createSubmission(t, author, prj)
	rev := te.createReview(t, reviewer, sub, 4)

	req, rec := newAuthRequest(http.MethodGet, "/api/reviews/my", te.token(t, reviewer))
	te.server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got []review.Authored
	decodeBody(t, rec, &got)
	require.Len(t, got, 1)
	assert.Equal(t, rev.ID, got[0].ID)
	assert.Equal(t, prj.Title, got[0].ProjectTitle)
	assert.Equal(t, author.Name, got[0].StudentName)

	// the author has no authored reviews
	req, rec = newAuthRequest(http.MethodGet, "/api/reviews/my", te.token(t, author))
	te.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var none []review.Authored
	decodeBody(t, rec, &none)
	assert.Empty(t, none)
}
