package echoapi

import (
	"context"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/upperenglish/backend/core"
	"github.com/upperenglish/backend/core/auth"
	"github.com/upperenglish/backend/core/classroom"
	"github.com/upperenglish/backend/core/group"
	"github.com/upperenglish/backend/core/roster"
	"github.com/upperenglish/backend/core/student"
)

type (
	Options struct {
		Addr           string
		DisableReqLogs bool

		Conf       *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator

		AuthSvc      *auth.Service
		StudentSvc   *student.Service
		GroupSvc     *group.Service
		ClassroomSvc *classroom.Service
		RosterSvc    *roster.Service
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
		quit chan struct{}
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
		quit: make(chan struct{}),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", home)

	registerAuthAPI(s.app, s.opts.AuthSvc, conf, s.opts.Validate)

	// everything data-bearing sits behind the session gate
	pg := s.app.Group("/protected", sessionGate(conf))
	registerStudentAPI(pg, s.opts.StudentSvc, s.opts.Validate)
	registerGroupAPI(pg, s.opts.GroupSvc, s.opts.Validate)
	registerRosterAPI(pg, s.opts.RosterSvc)
	registerClassroomAPI(pg, s.opts.ClassroomSvc, s.opts.Validate)
}

func (s *server) Start() {
	go func() {
		<-s.quit
		_ = s.app.Shutdown(context.Background())
	}()
	s.app.Logger.Fatal(s.app.Start(s.opts.Addr))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

// signalShutdown is handed to the error handler so an unrecoverable storage
// error can stop the server gracefully.
func (s *server) signalShutdown() {
	select {
	case <-s.quit:
	default:
		close(s.quit)
	}
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Upper English API!")
}
