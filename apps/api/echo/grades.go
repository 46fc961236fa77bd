package echoapi

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/tally/core"
	"github.com/trezcool/tally/core/student"
	"github.com/trezcool/tally/services/spreadsheet"
)

const (
	msgStudentNotFound = "Student not found!"
	msgNoDataToExport  = "No data to export!"
	msgNoFile          = "Please choose an .xlsx file to import!"
)

type gradesApp struct {
	svc     student.ServiceInterface
	appName string
}

type (
	dashboardData struct {
		Stats  *student.Statistics // nil when there are no students
		Recent []student.Student
	}
	searchData struct {
		Term    string
		Results []student.Student
	}
	editData struct {
		ID      string
		Student *student.Student
	}
)

func registerGradesApp(app *echo.Echo, svc student.ServiceInterface, appName string) {
	h := &gradesApp{svc: svc, appName: appName}
	app.GET("/", h.show)
	app.POST("/", h.dispatch)
}

func (h *gradesApp) page(view, title string, data interface{}) page {
	return page{AppName: h.appName, View: view, Title: title, Data: data}
}

// show renders the view selected by the "view" query param. Unknown views fall back to the dashboard.
func (h *gradesApp) show(ctx echo.Context) error {
	rctx := ctx.Request().Context()

	switch view := ctx.QueryParam("view"); view {
	case "all":
		students, err := h.svc.QueryAll(rctx)
		if err != nil {
			return err
		}
		return renderPage(ctx, "grades/all", h.page(view, "All Students", students))

	case "add":
		return renderPage(ctx, "grades/add", h.page(view, "Add Student", nil))

	case "edit":
		data := editData{ID: core.CleanString(ctx.QueryParam("id"))}
		if data.ID != "" {
			s, err := h.svc.GetByID(rctx, data.ID)
			if err != nil {
				if errors.Cause(err) == core.ErrNotFound {
					return redirectWithFlash(ctx, "/?view=edit", core.ErrorFlash(msgStudentNotFound))
				}
				return err
			}
			data.Student = &s
		}
		return renderPage(ctx, "grades/edit", h.page(view, "Edit Student", data))

	case "search":
		data := searchData{Term: core.CleanString(ctx.QueryParam("search"))}
		results, err := h.svc.Search(rctx, data.Term)
		if err != nil {
			return err
		}
		data.Results = results
		return renderPage(ctx, "grades/search", h.page(view, "Search Students", data))

	case "stats":
		stats, err := h.stats(ctx)
		if err != nil {
			return err
		}
		return renderPage(ctx, "grades/stats", h.page(view, "Statistics", stats))

	default:
		stats, err := h.stats(ctx)
		if err != nil {
			return err
		}
		recent, err := h.svc.Recent(rctx)
		if err != nil {
			return err
		}
		return renderPage(ctx, "grades/dashboard", h.page("dashboard", "Dashboard", dashboardData{Stats: stats, Recent: recent}))
	}
}

// stats returns nil statistics for an empty grade book.
func (h *gradesApp) stats(ctx echo.Context) (*student.Statistics, error) {
	stats, err := h.svc.Stats(ctx.Request().Context())
	if err != nil {
		if errors.Cause(err) == core.ErrNoData {
			return nil, nil
		}
		return nil, err
	}
	return &stats, nil
}

// dispatch runs the action named by the "action" form field then redirects to the dashboard.
func (h *gradesApp) dispatch(ctx echo.Context) error {
	var (
		flash core.Flash
		err   error
	)

	switch ctx.FormValue("action") {
	case "add":
		flash, err = h.add(ctx)
	case "update":
		flash, err = h.update(ctx)
	case "delete":
		flash, err = h.delete(ctx)
	case "import":
		flash, err = h.importStudents(ctx)
	case "export":
		err = h.export(ctx)
		if err == nil {
			return nil
		}
	default:
		return redirect(ctx, "/")
	}

	if err != nil {
		msg, ok := failureMessage(err, map[error]string{
			core.ErrNotFound:     msgStudentNotFound,
			core.ErrDuplicateKey: fmt.Sprintf("Student ID %s already exists!", core.CleanString(ctx.FormValue("student_id"))),
			core.ErrNoData:       msgNoDataToExport,
		})
		if !ok {
			return err
		}
		flash = core.ErrorFlash(msg)
	}
	return redirectWithFlash(ctx, "/", flash)
}

func (h *gradesApp) add(ctx echo.Context) (core.Flash, error) {
	var ns student.NewStudent
	if err := bindForm(ctx, &ns); err != nil {
		return core.Flash{}, err
	}
	s, err := h.svc.Create(ctx.Request().Context(), ns)
	if err != nil {
		return core.Flash{}, err
	}
	return core.SuccessFlash(fmt.Sprintf("Student %s added successfully!", s.Name)), nil
}

func (h *gradesApp) update(ctx echo.Context) (core.Flash, error) {
	var us student.UpdateStudent
	if err := bindForm(ctx, &us); err != nil {
		return core.Flash{}, err
	}
	if _, err := h.svc.Update(ctx.Request().Context(), us); err != nil {
		return core.Flash{}, err
	}
	return core.SuccessFlash("Student record updated successfully!"), nil
}

func (h *gradesApp) delete(ctx echo.Context) (core.Flash, error) {
	if err := h.svc.Delete(ctx.Request().Context(), ctx.FormValue("student_id")); err != nil {
		return core.Flash{}, err
	}
	return core.SuccessFlash("Student deleted successfully!"), nil
}

func (h *gradesApp) export(ctx echo.Context) error {
	rctx := ctx.Request().Context()
	if ctx.FormValue("format") != "xlsx" {
		report, err := h.svc.Report(rctx)
		if err != nil {
			return err
		}
		return sendReport(ctx, report)
	}

	students, err := h.svc.QueryAll(rctx)
	if err != nil {
		return err
	}
	if len(students) == 0 {
		return core.ErrNoData
	}
	buf := new(bytes.Buffer)
	if err := spreadsheet.WriteStudents(buf, students); err != nil {
		return errors.Wrap(err, "exporting students")
	}
	return sendReport(ctx, core.Report{
		Filename:    spreadsheet.Filename("student", core.Now()),
		ContentType: spreadsheet.ContentType,
		Body:        buf.Bytes(),
	})
}

func (h *gradesApp) importStudents(ctx echo.Context) (core.Flash, error) {
	fh, err := ctx.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return core.Flash{}, core.NewValidationError(errors.New(msgNoFile))
		}
		return core.Flash{}, core.NewValidationError(errInvalidForm)
	}
	file, err := fh.Open()
	if err != nil {
		return core.Flash{}, errors.Wrap(err, "opening uploaded file")
	}
	defer file.Close()

	nss, err := spreadsheet.ReadStudents(file)
	if err != nil {
		if core.IsValidation(err) {
			return core.Flash{}, err
		}
		return core.Flash{}, core.NewValidationError(errors.New("The file is not a valid .xlsx workbook!"))
	}

	count, errs := h.svc.Import(ctx.Request().Context(), nss)
	for _, ierr := range errs {
		if core.IsStorage(ierr) {
			return core.Flash{}, ierr
		}
	}
	if len(errs) > 0 {
		return core.ErrorFlash(fmt.Sprintf("Imported %d students, %d rows skipped.", count, len(errs))), nil
	}
	return core.SuccessFlash(fmt.Sprintf("Imported %d students successfully!", count)), nil
}
