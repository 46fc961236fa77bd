package echoapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/tally/core"
)

var errInvalidForm = errors.New("Invalid form data!")

// page is the data every page template receives.
type page struct {
	AppName string
	Title   string
	View    string
	Flash   core.Flash
	Data    interface{}
}

// renderPage renders a page template, consuming the pending flash message.
func renderPage(ctx echo.Context, name string, p page) error {
	p.Flash = popFlash(ctx)
	return ctx.Render(http.StatusOK, name, p)
}

// bindForm binds the request form into v. Binding failures are reported like validation errors.
func bindForm(ctx echo.Context, v interface{}) error {
	if err := ctx.Bind(v); err != nil {
		return core.NewValidationError(errInvalidForm)
	}
	return nil
}

// redirect answers a POST with 303 See Other so that reloading the next page does not resubmit the form.
func redirect(ctx echo.Context, to string) error {
	return ctx.Redirect(http.StatusSeeOther, to)
}

func redirectWithFlash(ctx echo.Context, to string, f core.Flash) error {
	setFlash(ctx, f)
	return redirect(ctx, to)
}

// sendReport sends r as a file download.
func sendReport(ctx echo.Context, r core.Report) error {
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", r.Filename))
	return ctx.Blob(http.StatusOK, r.ContentType, r.Body)
}

// failureMessage returns the flash text of an expected failure: a validation error, or one of
// the sentinel errors listed in messages. Anything else is a server error.
func failureMessage(err error, messages map[error]string) (string, bool) {
	cause := errors.Cause(err)
	if msg, ok := messages[cause]; ok {
		return msg, true
	}
	if verr, ok := cause.(*core.ValidationError); ok {
		return verr.Error(), true
	}
	return "", false
}
