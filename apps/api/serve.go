// Package api runs the web applications.
package api

import (
	"context"
	"fmt"
	"log"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"go.uber.org/dig"

	dig_container "github.com/trezcool/tally/apps/api/di/dig"
	echoapi "github.com/trezcool/tally/apps/api/echo"
	"github.com/trezcool/tally/core"
)

type serveParam struct {
	dig.In
	Conf       *core.Config
	Logger     core.Logger
	Validate   *validator.Validate
	Translator ut.Translator
	Server     echoapi.Server
	Client     *redis.Client `optional:"true"`
}

// Serve builds app (dig_container.Grades or dig_container.Phones) and serves it until
// an interrupt or a server error.
func Serve(app string) {
	c := dig_container.New(app)

	must(c.Invoke(func(p serveParam) {
		logger, server := p.Logger, p.Server

		// =========================================================================
		// Initialize App

		logger.Info(fmt.Sprintf("Application initializing : %s (%s, storage: %s)", app, p.Conf.Env, p.Conf.Storage.Driver))

		core.InitValidators(p.Validate, p.Translator)

		if p.Client != nil {
			defer func() {
				if err := p.Client.Close(); err != nil {
					logger.Error("Failed to close redis client", err)
				}
			}()
		}
		defer logger.Info("Application stopped")

		// =========================================================================
		// Start Web Service

		go func() {
			logger.Info("Listening on " + p.Conf.Server.Address)
			server.Start()
		}()

		// =========================================================================
		// Shutdown

		select {
		case err := <-server.Errors():
			logger.Fatal(fmt.Sprintf("server error: %v", err), err)

		case sig := <-server.ShutdownSignal():
			logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

			// give outstanding requests a deadline for completion
			ctx, cancel := context.WithTimeout(context.Background(), p.Conf.Server.ShutdownTimeout)
			defer cancel()

			// asking listener to shut down and shed load
			if err := server.Shutdown(ctx); err != nil {
				logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

				if err = server.Close(); err != nil {
					logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
				}
			}
		}
	}))
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
