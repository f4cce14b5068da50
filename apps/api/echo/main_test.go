package echoapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	echoapi "github.com/upperenglish/backend/apps/api/echo"
	"github.com/upperenglish/backend/core"
	"github.com/upperenglish/backend/core/auth"
	"github.com/upperenglish/backend/core/classroom"
	"github.com/upperenglish/backend/core/group"
	"github.com/upperenglish/backend/core/roster"
	"github.com/upperenglish/backend/core/student"
	"github.com/upperenglish/backend/core/teacher"
	logsvc "github.com/upperenglish/backend/services/logger"
	inmemdb "github.com/upperenglish/backend/storage/database/inmem"
)

const testPassword = "open-sesame"

var errNotAuthenticated = httpErr{Error: "user not authenticated"}

type testEnv struct {
	app  echoapi.Server
	conf *core.Config

	studentRepo   student.Repository
	teacherRepo   teacher.Repository
	groupRepo     group.Repository
	classroomRepo classroom.Repository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	conf := &core.Config{
		Debug:     true,
		TestMode:  true,
		AppName:   "upperenglish",
		Env:       "test",
		SecretKey: "poq9wer0-secret",
		Server: core.ServerConfig{
			SessionCookieName:      "upper-english-session",
			SessionExpirationDelta: time.Hour,
		},
	}

	validate := validator.New()
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ := uni.GetTranslator(enLocale.Locale())
	core.InitValidators(validate, translator)

	db := inmemdb.Open()
	studentRepo := inmemdb.NewStudentRepository(db)
	teacherRepo := inmemdb.NewTeacherRepository(db)
	groupRepo := inmemdb.NewGroupRepository(db)
	classroomRepo := inmemdb.NewClassroomRepository(db)
	authSvc := auth.NewService(inmemdb.NewAuthRepository(db))

	if err := authSvc.SetPassword(context.Background(), testPassword); err != nil {
		t.Fatalf("seeding password: %v", err)
	}

	app := echoapi.NewServer(&echoapi.Options{
		DisableReqLogs: true,
		Conf:           conf,
		Logger:         logsvc.NewStdLogger(nil),
		Validate:       validate,
		Translator:     translator,

		AuthSvc:      authSvc,
		StudentSvc:   student.NewService(studentRepo),
		GroupSvc:     group.NewService(groupRepo, studentRepo),
		ClassroomSvc: classroom.NewService(classroomRepo),
		RosterSvc:    roster.NewService(teacherRepo, studentRepo, groupRepo),
	})

	return &testEnv{
		app:  app,
		conf: conf,

		studentRepo:   studentRepo,
		teacherRepo:   teacherRepo,
		groupRepo:     groupRepo,
		classroomRepo: classroomRepo,
	}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	auth     bool
	wantCode int
	wantData []byte
}

func (env *testEnv) newRequest(t *testing.T, tt httpTest) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()

	var body bytes.Buffer
	if tt.body != nil {
		body.Write(tt.body)
	}
	method := tt.method
	if method == "" {
		method = http.MethodGet
	}
	req := httptest.NewRequest(method, tt.path, &body)
	req.Header.Set("Content-Type", "application/json")
	if tt.auth {
		req.AddCookie(env.sessionCookie(t))
	}
	return req, httptest.NewRecorder()
}

func (env *testEnv) sessionCookie(t *testing.T) *http.Cookie {
	t.Helper()

	token, err := echoapi.GenerateToken(echoapi.NewSessionClaims(env.conf), env.conf)
	if err != nil {
		t.Fatalf("sessionCookie(): %v", err)
	}
	return &http.Cookie{Name: env.conf.Server.SessionCookieName, Value: token}
}

func (env *testEnv) createStudent(t *testing.T, name string) student.Student {
	t.Helper()

	std, err := env.studentRepo.CreateStudent(context.Background(), student.Student{Name: core.NormalizeName(name)})
	if err != nil {
		t.Fatalf("createStudent(): %v", err)
	}
	return std
}

func (env *testEnv) createTeacher(t *testing.T, name string) teacher.Teacher {
	t.Helper()

	tch, err := env.teacherRepo.CreateTeacher(context.Background(), teacher.Teacher{Name: name})
	if err != nil {
		t.Fatalf("createTeacher(): %v", err)
	}
	return tch
}

func (env *testEnv) createGroup(t *testing.T, name string) group.Group {
	t.Helper()

	grp, err := env.groupRepo.CreateGroup(context.Background(), group.Group{Name: core.NormalizeName(name)})
	if err != nil {
		t.Fatalf("createGroup(): %v", err)
	}
	return grp
}

func (env *testEnv) createClassroom(t *testing.T, cls classroom.Classroom) classroom.Classroom {
	t.Helper()

	created, err := env.classroomRepo.CreateClassroom(context.Background(), cls)
	if err != nil {
		t.Fatalf("createClassroom(): %v", err)
	}
	return created
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return assert.ObjectsAreEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()

	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()

	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decodeBody(): %v; body = %s", err, rec.Body.String())
	}
}
