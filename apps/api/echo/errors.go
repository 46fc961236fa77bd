package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/tally/core"
)

type errorPage struct {
	AppName string
	Code    int
	Title   string
	Message string
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler rendering an HTML error page.
// Expected failures never reach it (actions turn them into flash messages), so anything
// that is not an *echo.HTTPError is a server error and gets logged.
func newAppHTTPErrorHandler(logger core.Logger, appName string) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message string

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			if m, ok := origErr.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(code)
			}
		case *core.ValidationError:
			code = http.StatusBadRequest
			message = origErr.Error()
		default: // any other error is a server error
			code = http.StatusInternalServerError
			message = http.StatusText(code)
			if core.IsStorage(err) {
				message = "The data file could not be read or written."
			}
			logger.Error(http.StatusText(code), errors.Wrap(err, "handling request"), ctx.Request())
		}

		if ctx.Echo().Debug {
			message = err.Error()
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				page := errorPage{AppName: appName, Code: code, Title: http.StatusText(code), Message: message}
				if err = ctx.Render(code, errorTemplate, page); err != nil {
					err = ctx.String(code, message)
				}
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
