package dig_container

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/tally/apps/api/echo"
	"github.com/trezcool/tally/core"
	"github.com/trezcool/tally/core/phone"
	"github.com/trezcool/tally/core/student"
	logsvc "github.com/trezcool/tally/services/logger"
	"github.com/trezcool/tally/storage/backend"
	"github.com/trezcool/tally/storage/database/jsondb"
)

// Applications
const (
	Grades = "grades"
	Phones = "phones"
	Admin  = "admin"
)

const redisConnectTimeout = 5 * time.Second

// StoreParam gathers what the record stores are built from.
type StoreParam struct {
	dig.In
	Conf   *core.Config
	Client *redis.Client `optional:"true"`
}

// ServerParam gathers the services a server may mount. Only the one of the running application is provided.
type ServerParam struct {
	dig.In
	Conf       *core.Config
	Logger     core.Logger
	StudentSvc student.ServiceInterface `optional:"true"`
	PhoneSvc   phone.ServiceInterface   `optional:"true"`
}

func newLoggerFunc(app string) func(conf *core.Config) core.Logger {
	return func(conf *core.Config) core.Logger {
		stdLogger := log.New(os.Stdout, strings.ToUpper(app)+" : ", log.LstdFlags)
		logger := logsvc.NewRollbarLogger(stdLogger, conf)
		logger.Enable(!conf.Debug && !conf.TestMode && conf.RollbarToken != "")
		return logger
	}
}

func newRedisClient(conf *core.Config) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisConnectTimeout)
	defer cancel()
	return backend.NewRedisClient(ctx, conf.Redis.Address, conf.Redis.Password, conf.Redis.DB)
}

func newStudentRepository(p StoreParam) (student.Repository, error) {
	b, err := backend.Open(p.Conf, p.Client, Grades, p.Conf.Storage.GradesPath, jsondb.DefaultStudentsDocument(core.Now()))
	if err != nil {
		return nil, errors.Wrap(err, "opening grades store")
	}
	return jsondb.NewStudentRepository(jsondb.New(b)), nil
}

func newPhoneRepository(p StoreParam) (phone.Repository, error) {
	b, err := backend.Open(p.Conf, p.Client, Phones, p.Conf.Storage.PhonesPath, jsondb.DefaultPhonesDocument)
	if err != nil {
		return nil, errors.Wrap(err, "opening phones store")
	}
	return jsondb.NewPhoneRepository(jsondb.New(b)), nil
}

func newServer(p ServerParam) echoapi.Server {
	return echoapi.NewServer(&echoapi.Options{
		Address:    p.Conf.Server.Address,
		AppName:    p.Conf.AppName,
		SecretKey:  p.Conf.SecretKey,
		Debug:      p.Conf.Debug,
		TestMode:   p.Conf.TestMode,
		Logger:     p.Logger,
		StudentSvc: p.StudentSvc,
		PhoneSvc:   p.PhoneSvc,
	})
}

// New returns a new dependency injection dig.Container for app (Grades, Phones or Admin).
func New(app string) *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLoggerFunc(app)))
	must(c.Provide(validator.New))
	must(c.Provide(core.NewTranslator))

	// conf is needed to know whether redis is used
	var driver string
	must(c.Invoke(func(conf *core.Config) { driver = conf.Storage.Driver }))
	if driver == backend.DriverRedis {
		must(c.Provide(newRedisClient))
	}

	switch app {
	case Grades, Admin:
		must(c.Provide(newStudentRepository))
		must(c.Provide(student.NewService, dig.As(new(student.ServiceInterface))))
	case Phones:
		must(c.Provide(newPhoneRepository))
		must(c.Provide(phone.NewService, dig.As(new(phone.ServiceInterface))))
	default:
		log.Fatalf("unknown application %q", app)
	}
	if app != Admin {
		must(c.Provide(newServer))
	}

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
