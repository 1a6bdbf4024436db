package echoapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulab/peerreview/core"
)

func TestMetricsStatusLabels(t *testing.T) {
	app := echo.New()
	mw := metricsMiddleware()

	record := func(t *testing.T, route string, err error) {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, route, nil)
		rec := httptest.NewRecorder()
		ctx := app.NewContext(req, rec)
		ctx.SetPath(route)

		got := mw(func(echo.Context) error { return err })(ctx)
		assert.Equal(t, err, got) // the error passes through untouched
	}

	requests := func(t *testing.T, route, status string) float64 {
		t.Helper()
		c, err := httpRequestsTotal.GetMetricWithLabelValues(http.MethodGet, route, status)
		require.NoError(t, err)
		return testutil.ToFloat64(c)
	}

	t.Run("success uses the response status", func(t *testing.T) {
		record(t, "/m-ok", nil)
		assert.Equal(t, 1.0, requests(t, "/m-ok", "200"))
	})

	t.Run("http error uses its code", func(t *testing.T) {
		record(t, "/m-notfound", echo.NewHTTPError(http.StatusNotFound, "not found"))
		assert.Equal(t, 1.0, requests(t, "/m-notfound", "404"))
	})

	t.Run("domain validation error counts as 400", func(t *testing.T) {
		verr := core.NewValidationError(errors.New("duplicate review"))
		record(t, "/m-domain", errors.Wrap(verr, "creating review"))
		assert.Equal(t, 1.0, requests(t, "/m-domain", "400"))
		assert.Zero(t, requests(t, "/m-domain", "500"))
	})

	t.Run("payload validation error counts as 400", func(t *testing.T) {
		verr := validator.New().Struct(struct {
			Name string `validate:"required"`
		}{})
		require.Error(t, verr)
		record(t, "/m-payload", verr)
		assert.Equal(t, 1.0, requests(t, "/m-payload", "400"))
		assert.Zero(t, requests(t, "/m-payload", "500"))
	})

	t.Run("unknown error counts as 500", func(t *testing.T) {
		record(t, "/m-boom", errors.New("boom"))
		assert.Equal(t, 1.0, requests(t, "/m-boom", "500"))
	})
}
