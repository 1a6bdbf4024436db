package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulab/peerreview/core/user"
)

func TestRegister(t *testing.T) {
	te := setup(t)

	t.Run("defaults to student", func(t *testing.T) {
		body := marshalObj(t, map[string]string{
			"email":    "amina@school.test",
			"password": "Secr3t!pwd",
			"name":     "Amina",
		})
		req, rec := newRequest(http.MethodPost, "/api/auth/register", body)
		te.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var resp struct {
			Token string    `json:"token"`
			User  user.User `json:"user"`
		}
		decodeBody(t, rec, &resp)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "amina@school.test", resp.User.Email)
		assert.Equal(t, user.RoleStudent, resp.User.Role)
	})

	t.Run("teacher role kept", func(t *testing.T) {
		body := marshalObj(t, map[string]string{
			"email":    "prof@school.test",
			"password": "Secr3t!pwd",
			"name":     "Prof",
			"role":     user.RoleTeacher,
		})
		req, rec := newRequest(http.MethodPost, "/api/auth/register", body)
		te.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var resp struct {
			User user.User `json:"user"`
		}
		decodeBody(t, rec, &resp)
		assert.Equal(t, user.RoleTeacher, resp.User.Role)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		body := marshalObj(t, map[string]string{
			"email":    "amina@school.test",
			"password": "Secr3t!pwd",
			"name":     "Amina Again",
		})
		req, rec := newRequest(http.MethodPost, "/api/auth/register", body)
		te.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		var fldErrs map[string]string
		decodeBody(t, rec, &fldErrs)
		assert.Contains(t, fldErrs, "email")
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		body := marshalObj(t, map[string]string{"email": "x@school.test"})
		req, rec := newRequest(http.MethodPost, "/api/auth/register", body)
		te.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var fldErrs map[string]string
		decodeBody(t, rec, &fldErrs)
		assert.Contains(t, fldErrs, "password")
		assert.Contains(t, fldErrs, "name")
	})

	t.Run("short password rejected", func(t *testing.T) {
		body := marshalObj(t, map[string]string{
			"email":    "short@school.test",
			"password": "abc",
			"name":     "Short",
		})
		req, rec := newRequest(http.MethodPost, "/api/auth/register", body)
		te.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var fldErrs map[string]string
		decodeBody(t, rec, &fldErrs)
		assert.Contains(t, fldErrs, "password")
	})
}

func TestLogin(t *testing.T) {
	te := setup(t)
	usr := te.createStudent(t, "Moss", "moss@school.test")

	t.Run("ok", func(t *testing.T) {
		body := marshalObj(t, map[string]string{"email": "moss@school.test", "password": "Secr3t!pwd"})
		req, rec := newRequest(http.MethodPost, "/api/auth/login", body)
		te.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var resp struct {
			Token string    `json:"token"`
			User  user.User `json:"user"`
		}
		decodeBody(t, rec, &resp)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, usr.ID, resp.User.ID)
	})

	t.Run("email is case-insensitive", func(t *testing.T) {
		body := marshalObj(t, map[string]string{"email": "MOSS@School.Test", "password": "Secr3t!pwd"})
		req, rec := newRequest(http.MethodPost, "/api/auth/login", body)
		te.server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("wrong password", func(t *testing.T) {
		body := marshalObj(t, map[string]string{"email": "moss@school.test", "password": "nope nope"})
		req, rec := newRequest(http.MethodPost, "/api/auth/login", body)
		te.server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		body := marshalObj(t, map[string]string{"email": "ghost@school.test", "password": "Secr3t!pwd"})
		req, rec := newRequest(http.MethodPost, "/api/auth/login", body)
		te.server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestMe(t *testing.T) {
	te := setup(t)
	usr := te.createStudent(t, "Jen", "jen@school.test")

	t.Run("ok", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/auth/me", te.token(t, usr))
		te.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var got user.User
		decodeBody(t, rec, &got)
		assert.Equal(t, usr.ID, got.ID)
		assert.Equal(t, usr.Email, got.Email)
	})

	t.Run("missing token", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/api/auth/me")
		te.server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/auth/me", "not.a.jwt")
		te.server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
