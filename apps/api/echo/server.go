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
	"github.com/pkg/errors"

	"github.com/trezcool/tally/core"
	"github.com/trezcool/tally/core/phone"
	"github.com/trezcool/tally/core/student"
)

type (
	// Options configures the server. Exactly one of StudentSvc and PhoneSvc is expected;
	// the server mounts the application of the one that is set.
	Options struct {
		Address        string
		AppName        string
		SecretKey      string
		Debug          bool
		TestMode       bool
		DisableReqLogs bool
		Logger         core.Logger
		StudentSvc     student.ServiceInterface
		PhoneSvc       phone.ServiceInterface
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
		opts     *Options
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts:     opts,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(s.opts.Debug || s.opts.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(flashMiddleware([]byte(s.opts.SecretKey)))

	s.app.Renderer = newRenderer(s.opts.Debug || s.opts.TestMode)
	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.AppName)
	s.app.Debug = s.opts.Debug

	s.app.GET("/ping", ping)

	if s.opts.StudentSvc != nil {
		registerGradesApp(s.app, s.opts.StudentSvc, s.opts.AppName)
	}
	if s.opts.PhoneSvc != nil {
		registerPhonesApp(s.app, s.opts.PhoneSvc, s.opts.AppName)
	}
}

func (s *server) Start() {
	if err := s.app.Start(s.opts.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.errors <- err
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) Errors() <-chan error {
	return s.errors
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func ping(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "pong")
}
