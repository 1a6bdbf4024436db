package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strconv"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	. "github.com/edulab/peerreview/apps/api/echo"
	"github.com/edulab/peerreview/core"
	"github.com/edulab/peerreview/core/analytics"
	"github.com/edulab/peerreview/core/assignment"
	"github.com/edulab/peerreview/core/comment"
	"github.com/edulab/peerreview/core/notification"
	"github.com/edulab/peerreview/core/project"
	"github.com/edulab/peerreview/core/review"
	"github.com/edulab/peerreview/core/submission"
	"github.com/edulab/peerreview/core/user"
	inmemdb "github.com/edulab/peerreview/storage/database/inmem"
	"github.com/edulab/peerreview/storage/files"
)

type testEnv struct {
	conf   *core.Config
	server Server

	usrSvc *user.Service
	prjSvc *project.Service
	subSvc *submission.Service
	revSvc *review.Service
	cmtSvc *comment.Service
	asgSvc *assignment.Service
	ntfSvc *notification.Service
}

// userPair bundles a seeded user with a ready-to-use bearer token.
type userPair struct {
	usr   user.User
	token string
}

type testLogger struct{}

func (testLogger) Debug(string, ...interface{}) {}
func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}
func (testLogger) Fatal(string, ...interface{}) {}

func setup(t *testing.T) *testEnv {
	t.Helper()

	conf := &core.Config{
		TestMode:  true,
		Env:       "TEST",
		AppName:   "PeerReview",
		SecretKey: "test-secret-key",
		Server:    core.ServerConfig{JWTExpirationDelta: time.Hour},
		Upload:    core.UploadConfig{Dir: t.TempDir(), MaxFileSize: 1 << 20},
	}

	db := inmemdb.NewDB()
	usrRepo := inmemdb.NewUserRepository(db)
	prjRepo := inmemdb.NewProjectRepository(db)
	subRepo := inmemdb.NewSubmissionRepository(db)
	revRepo := inmemdb.NewReviewRepository(db)
	cmtRepo := inmemdb.NewCommentRepository(db)
	asgRepo := inmemdb.NewAssignmentRepository(db)
	ntfRepo := inmemdb.NewNotificationRepository(db)
	anlRepo := inmemdb.NewAnalyticsRepository(db)

	usrSvc := user.NewService(usrRepo)
	prjSvc := project.NewService(prjRepo)
	subSvc := submission.NewService(subRepo, prjRepo)
	revSvc := review.NewService(revRepo, subRepo)
	cmtSvc := comment.NewService(cmtRepo, subRepo)
	asgSvc := assignment.NewService(asgRepo, prjRepo, subRepo, usrRepo)
	ntfSvc := notification.NewService(ntfRepo)
	anlSvc := analytics.NewService(anlRepo)

	store, err := files.NewLocalStore(conf.Upload.Dir, conf.Upload.MaxFileSize)
	require.NoError(t, err)

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	server := NewServer(ServerDeps{
		Conf:            conf,
		Logger:          testLogger{},
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
	})

	return &testEnv{
		conf:   conf,
		server: server,
		usrSvc: usrSvc,
		prjSvc: prjSvc,
		subSvc: subSvc,
		revSvc: revSvc,
		cmtSvc: cmtSvc,
		asgSvc: asgSvc,
		ntfSvc: ntfSvc,
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

// Seed helpers

func (te *testEnv) createUser(t *testing.T, name, email, role string) user.User {
	t.Helper()
	usr, err := te.usrSvc.Register(context.Background(), user.NewUser{
		Email:    email,
		Password: "Secr3t!pwd",
		Name:     name,
		Role:     role,
	})
	require.NoError(t, err)
	return usr
}

func (te *testEnv) createStudent(t *testing.T, name, email string) user.User {
	return te.createUser(t, name, email, user.RoleStudent)
}

func (te *testEnv) createTeacher(t *testing.T, name, email string) user.User {
	return te.createUser(t, name, email, user.RoleTeacher)
}

func (te *testEnv) createProject(t *testing.T, teacher user.User, title string) project.Project {
	t.Helper()
	prj, err := te.prjSvc.Create(context.Background(), teacher.ID, project.NewProject{
		Title:       title,
		Description: "desc for " + title,
		DueDate:     time.Now().Add(7 * 24 * time.Hour).UTC(),
		Tags:        "go,testing",
	})
	require.NoError(t, err)
	return prj
}

func (te *testEnv) createSubmission(t *testing.T, student user.User, prj project.Project) submission.Submission {
	t.Helper()
	sub, err := te.subSvc.Create(context.Background(), student.ID, submission.NewSubmission{
		ProjectID: prj.ID,
		Content:   "my work for " + prj.Title,
	}, "", "")
	require.NoError(t, err)
	return sub
}

func (te *testEnv) createReview(t *testing.T, reviewer user.User, sub submission.Submission, score int) review.Review {
	t.Helper()
	rev, err := te.revSvc.Create(context.Background(), reviewer.ID, review.NewReview{
		SubmissionID: sub.ID,
		Content:      "looks good",
		Score:        score,
	})
	require.NoError(t, err)
	return rev
}

func (te *testEnv) token(t *testing.T, usr user.User) string {
	t.Helper()
	token, err := GenerateToken(te.conf, GetUserClaims(te.conf, usr))
	require.NoError(t, err)
	return token
}

// Request helpers

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

type uploadFile struct {
	field       string
	name        string
	contentType string
	content     []byte
}

func newUploadRequest(
	t *testing.T,
	path, token string,
	fields map[string]string,
	uploads ...uploadFile,
) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range uploads {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.name))
		h.Set("Content-Type", f.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func itoa(n int) string { return strconv.Itoa(n) }

func marshalObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	require.NoError(t, err)
	return data
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), "body: %s", rec.Body.String())
}
