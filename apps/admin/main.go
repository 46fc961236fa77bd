package main

import (
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"go.uber.org/dig"

	dig_container "github.com/trezcool/tally/apps/api/di/dig"
	"github.com/trezcool/tally/core"
	"github.com/trezcool/tally/core/student"
)

type adminParam struct {
	dig.In
	Logger     core.Logger
	Validate   *validator.Validate
	Translator ut.Translator
	StudentSvc student.ServiceInterface
	Client     *redis.Client `optional:"true"`
}

func main() {
	c := dig_container.New(dig_container.Admin)

	var (
		cli    *commandLine
		logger core.Logger
		client *redis.Client
	)
	err := c.Invoke(func(p adminParam) {
		core.InitValidators(p.Validate, p.Translator)
		logger, client = p.Logger, p.Client
		cli = newCommandLine(p.StudentSvc)
	})
	if err != nil {
		log.Fatal(err)
	}

	os.Exit(run(cli, logger, client, os.Args))
}

// run executes the command and returns the process exit code.
func run(cli *commandLine, logger core.Logger, client *redis.Client, args []string) int {
	if client != nil {
		defer func() {
			if err := client.Close(); err != nil {
				logger.Error("Failed to close redis client", err)
			}
		}()
	}

	if err := cli.run(args); err != nil {
		if err != errHelp {
			logger.Error("admin command failed", err)
		}
		return 1
	}
	return 0
}
