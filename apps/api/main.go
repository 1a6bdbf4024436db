package main

import (
	"context"
	"fmt"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	echoapi "github.com/edulab/peerreview/apps/api/echo"
	"github.com/edulab/peerreview/core"
	"github.com/edulab/peerreview/core/analytics"
	"github.com/edulab/peerreview/core/assignment"
	"github.com/edulab/peerreview/core/comment"
	"github.com/edulab/peerreview/core/notification"
	"github.com/edulab/peerreview/core/project"
	"github.com/edulab/peerreview/core/review"
	"github.com/edulab/peerreview/core/submission"
	"github.com/edulab/peerreview/core/user"
	logsvc "github.com/edulab/peerreview/services/logger"
	"github.com/edulab/peerreview/storage/database"
	sqlxrepos "github.com/edulab/peerreview/storage/database/sqlx"
	"github.com/edulab/peerreview/storage/files"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewLogger(conf)
	defer func() { _ = logger.Close() }()

	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			logger.Error("closing database", err)
		}
	}()

	// set up repositories
	usrRepo := sqlxrepos.NewUserRepository(db)
	prjRepo := sqlxrepos.NewProjectRepository(db)
	subRepo := sqlxrepos.NewSubmissionRepository(db)
	revRepo := sqlxrepos.NewReviewRepository(db)
	cmtRepo := sqlxrepos.NewCommentRepository(db)
	asgRepo := sqlxrepos.NewAssignmentRepository(db)
	ntfRepo := sqlxrepos.NewNotificationRepository(db)
	anlRepo := sqlxrepos.NewAnalyticsRepository(db)

	// set up services
	usrSvc := user.NewService(usrRepo)
	prjSvc := project.NewService(prjRepo)
	subSvc := submission.NewService(subRepo, prjRepo)
	revSvc := review.NewService(revRepo, subRepo)
	cmtSvc := comment.NewService(cmtRepo, subRepo)
	asgSvc := assignment.NewService(asgRepo, prjRepo, subRepo, usrRepo)
	ntfSvc := notification.NewService(ntfRepo)
	anlSvc := analytics.NewService(anlRepo)

	store, err := files.NewLocalStore(conf.Upload.Dir, conf.Upload.MaxFileSize)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up file store: %v", err), err)
	}

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:            conf,
			Logger:          logger,
			UserSvc:         usrSvc,
			ProjectSvc:      prjSvc,
			SubmissionSvc:   subSvc,
			ReviewSvc:       revSvc,
			CommentSvc:      cmtSvc,
			AssignmentSvc:   asgSvc,
			NotificationSvc: ntfSvc,
			AnalyticsSvc:    anlSvc,
			FileStore:       store,
			Validate:        validate,
			Translator:      translator,
		},
	)

	go func() {
		logger.Info(fmt.Sprintf("API listening on %s", conf.Server.Address()))
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}
	if err = database.Ping(db); err != nil {
		return nil, err
	}
	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
