package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/edulab/peerreview/core"
	"github.com/edulab/peerreview/core/analytics"
	"github.com/edulab/peerreview/core/assignment"
	"github.com/edulab/peerreview/core/comment"
	"github.com/edulab/peerreview/core/notification"
	"github.com/edulab/peerreview/core/project"
	"github.com/edulab/peerreview/core/review"
	"github.com/edulab/peerreview/core/submission"
	"github.com/edulab/peerreview/core/user"
	"github.com/edulab/peerreview/storage/files"
)

type (
	ServerDeps struct {
		Conf   *core.Config
		Logger core.Logger

		UserSvc         *user.Service
		ProjectSvc      *project.Service
		SubmissionSvc   *submission.Service
		ReviewSvc       *review.Service
		CommentSvc      *comment.Service
		AssignmentSvc   *assignment.Service
		NotificationSvc *notification.Service
		AnalyticsSvc    *analytics.Service

		FileStore  files.Store
		Validate   *validator.Validate
		Translator ut.Translator
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(context.Context) error
		Close() error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		deps     ServerDeps
		app      *echo.Echo
		errs     chan error
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:     deps,
		app:      echo.New(),
		errs:     make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(metricsMiddleware())

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/healthz", health)
	s.app.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.app.Static(files.PublicPath, conf.Upload.Dir)

	api := s.app.Group("/api")
	jwt := newJWTMiddleware(conf)

	registerUserAPI(api, jwt, conf, s.deps.UserSvc, s.deps.Validate)
	registerProjectAPI(api, jwt, s.deps.ProjectSvc, s.deps.Validate)
	registerSubmissionAPI(api, jwt, s.deps.SubmissionSvc, s.deps.FileStore, s.deps.Validate)
	registerReviewAPI(api, jwt, s.deps.ReviewSvc, s.deps.Validate)
	registerCommentAPI(api, jwt, s.deps.CommentSvc, s.deps.Validate)
	registerAssignmentAPI(api, jwt, s.deps.AssignmentSvc, s.deps.Validate)
	registerNotificationAPI(api, jwt, s.deps.NotificationSvc)
	registerAnalyticsAPI(api, jwt, s.deps.AnalyticsSvc)
}

func (s *server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.errs <- err
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) Errors() <-chan error {
	return s.errs
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
