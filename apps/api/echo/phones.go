package echoapi

import (
	"bytes"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/tally/core"
	"github.com/trezcool/tally/core/phone"
	"github.com/trezcool/tally/services/spreadsheet"
)

const msgPhoneNotFound = "Phone not found!"

type phonesApp struct {
	svc     phone.ServiceInterface
	appName string
}

type inventoryData struct {
	Phones  []phone.Phone
	Summary phone.Summary
	Search  string
	Editing *phone.Phone // phone loaded in the form, nil when adding
}

func registerPhonesApp(app *echo.Echo, svc phone.ServiceInterface, appName string) {
	h := &phonesApp{svc: svc, appName: appName}
	app.GET("/", h.show)
	app.POST("/", h.dispatch)
}

// show renders the inventory with the form in add mode, or in edit mode when
// "edit=<id>" (or "view=edit&id=<id>") is given.
func (h *phonesApp) show(ctx echo.Context) error {
	rctx := ctx.Request().Context()

	data := inventoryData{Search: core.CleanString(ctx.QueryParam("search"))}
	var err error
	if data.Summary, err = h.svc.Summary(rctx); err != nil {
		return err
	}
	if data.Phones, err = h.svc.Search(rctx, data.Search); err != nil {
		return err
	}

	id := ctx.QueryParam("edit")
	if id == "" && ctx.QueryParam("view") == "edit" {
		id = ctx.QueryParam("id")
	}
	title := "Add New Phone"
	if id = core.CleanString(id); id != "" {
		p, err := h.svc.GetByID(rctx, id)
		if err != nil {
			if errors.Cause(err) == core.ErrNotFound {
				return redirectWithFlash(ctx, "/", core.ErrorFlash(msgPhoneNotFound))
			}
			return err
		}
		data.Editing = &p
		title = "Edit Phone"
	}

	return renderPage(ctx, "phones/index", page{AppName: h.appName, View: "index", Title: title, Data: data})
}

func (h *phonesApp) dispatch(ctx echo.Context) error {
	var (
		flash core.Flash
		err   error
	)

	switch ctx.FormValue("action") {
	case "create":
		flash, err = h.create(ctx)
	case "update":
		flash, err = h.update(ctx)
	case "delete":
		flash, err = h.delete(ctx)
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
			core.ErrNotFound: msgPhoneNotFound,
			core.ErrNoData:   msgNoDataToExport,
		})
		if !ok {
			return err
		}
		flash = core.ErrorFlash(msg)
	}
	return redirectWithFlash(ctx, "/", flash)
}

func (h *phonesApp) create(ctx echo.Context) (core.Flash, error) {
	var np phone.NewPhone
	if err := bindForm(ctx, &np); err != nil {
		return core.Flash{}, err
	}
	if _, err := h.svc.Create(ctx.Request().Context(), np); err != nil {
		return core.Flash{}, err
	}
	return core.SuccessFlash("Phone added successfully!"), nil
}

func (h *phonesApp) update(ctx echo.Context) (core.Flash, error) {
	var up phone.UpdatePhone
	if err := bindForm(ctx, &up); err != nil {
		return core.Flash{}, err
	}
	if _, err := h.svc.Update(ctx.Request().Context(), up); err != nil {
		return core.Flash{}, err
	}
	return core.SuccessFlash("Phone updated successfully!"), nil
}

func (h *phonesApp) delete(ctx echo.Context) (core.Flash, error) {
	if err := h.svc.Delete(ctx.Request().Context(), ctx.FormValue("id")); err != nil {
		return core.Flash{}, err
	}
	return core.SuccessFlash("Phone deleted successfully!"), nil
}

func (h *phonesApp) export(ctx echo.Context) error {
	rctx := ctx.Request().Context()
	if ctx.FormValue("format") != "xlsx" {
		report, err := h.svc.Report(rctx)
		if err != nil {
			return err
		}
		return sendReport(ctx, report)
	}

	phones, err := h.svc.QueryAll(rctx)
	if err != nil {
		return err
	}
	if len(phones) == 0 {
		return core.ErrNoData
	}
	buf := new(bytes.Buffer)
	if err := spreadsheet.WritePhones(buf, phones); err != nil {
		return errors.Wrap(err, "exporting phones")
	}
	return sendReport(ctx, core.Report{
		Filename:    spreadsheet.Filename("phone", core.Now()),
		ContentType: spreadsheet.ContentType,
		Body:        buf.Bytes(),
	})
}
