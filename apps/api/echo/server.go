package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/chuo/core"
	"github.com/trezcool/chuo/core/event"
	"github.com/trezcool/chuo/core/faculty"
	"github.com/trezcool/chuo/core/notice"
	"github.com/trezcool/chuo/core/resource"
	"github.com/trezcool/chuo/core/result"
	"github.com/trezcool/chuo/core/student"
	"github.com/trezcool/chuo/core/user"
)

type (
	ServerDeps struct {
		Logger      core.Logger
		UserSvc     user.ServiceInterface
		StudentSvc  student.ServiceInterface
		NoticeSvc   notice.ServiceInterface
		EventSvc    event.ServiceInterface
		FacultySvc  faculty.ServiceInterface
		ResourceSvc resource.ServiceInterface
		ResultSvc   result.ServiceInterface
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
		addr       string
		deps       *ServerDeps
		app        *echo.Echo
		errs       chan error
		shutdownCh chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(addr string, deps *ServerDeps) Server {
	s := &server{
		addr:       addr,
		deps:       deps,
		app:        echo.New(),
		errs:       make(chan error, 1),
		shutdownCh: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	appJWTConfig.SigningKey = []byte(core.Conf.SecretKey)

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !core.Conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(core.Conf.Debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.signalShutdown)
	s.app.Debug = core.Conf.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(appJWTConfig)

	registerUserAPI(v1, jwt, s.deps.UserSvc)
	registerStudentAPI(v1, jwt, s.deps.StudentSvc)
	registerNoticeAPI(v1, jwt, s.deps.NoticeSvc)
	registerEventAPI(v1, jwt, s.deps.EventSvc)
	registerFacultyAPI(v1, jwt, s.deps.FacultySvc)
	registerResourceAPI(v1, jwt, s.deps.ResourceSvc)
	registerResultAPI(v1, jwt, s.deps.ResultSvc)
}

func (s *server) Start() {
	signal.Notify(s.shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	if err := s.app.Start(s.addr); err != nil && err != http.ErrServerClosed {
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
	return s.shutdownCh
}

// signalShutdown initiates a graceful shutdown from within the app,
// typically when an integrity issue is caught.
func (s *server) signalShutdown() {
	s.shutdownCh <- syscall.SIGTERM
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the "+core.Conf.AppName+" API!")
}
