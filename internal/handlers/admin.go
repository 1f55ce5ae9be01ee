package handlers

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/diewo77/techfix/internal/auth"
	"github.com/diewo77/techfix/internal/catalog"
	"github.com/diewo77/techfix/internal/console"
	"github.com/diewo77/techfix/internal/models"
	"github.com/diewo77/techfix/internal/policy"
	"github.com/diewo77/techfix/internal/validation"
	"github.com/diewo77/techfix/internal/view"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// AdminConsole serves the management screens of one record kind. Each
// request drives its own console.Editor over the shared store.
type AdminConsole[R catalog.Record] struct {
	kind   catalog.Kind
	store  catalog.Store[R]
	binder console.Binder[R]
	export func(io.Writer, []R) error
	flash  policy.Flasher
	log    *zap.Logger
	extra  map[string]any
	now    func() time.Time
}

func NewProductConsole(store catalog.Store[models.Product], flash policy.Flasher, log *zap.Logger) *AdminConsole[models.Product] {
	return &AdminConsole[models.Product]{
		kind:   catalog.KindProduct,
		store:  store,
		binder: console.ProductBinder{},
		export: catalog.WriteProductsCSV,
		flash:  flash,
		log:    log,
		now:    time.Now,
	}
}

func NewServiceConsole(store catalog.Store[models.Service], flash policy.Flasher, log *zap.Logger) *AdminConsole[models.Service] {
	icons := make([]string, 0, 4)
	for _, i := range []catalog.Icon{catalog.IconMonitor, catalog.IconBattery, catalog.IconCpu, catalog.IconUnlock} {
		icons = append(icons, i.String())
	}
	return &AdminConsole[models.Service]{
		kind:   catalog.KindService,
		store:  store,
		binder: console.ServiceBinder{},
		export: catalog.WriteServicesCSV,
		flash:  flash,
		log:    log,
		extra:  map[string]any{"Icons": icons},
		now:    time.Now,
	}
}

// Register mounts the console under /admin/<plural>, each route behind
// guard.
func (c *AdminConsole[R]) Register(mux *http.ServeMux, guard func(http.Handler) http.Handler) {
	base := "/admin/" + c.kind.Plural()
	handle := func(pattern string, h http.HandlerFunc) { mux.Handle(pattern, guard(h)) }
	handle("GET "+base, c.List)
	handle("GET "+base+".csv", c.Export)
	handle("GET "+base+"/new", c.New)
	handle("GET "+base+"/{id}/edit", c.Edit)
	handle("POST "+base, c.Submit)
	handle("POST "+base+"/{id}/delete", c.Delete)
}

func (c *AdminConsole[R]) base() string { return "/admin/" + c.kind.Plural() }

func (c *AdminConsole[R]) editor() *console.Editor[R] {
	return console.New(c.kind, c.store, c.binder)
}

func (c *AdminConsole[R]) render(w http.ResponseWriter, r *http.Request, status int, ed *console.Editor[R], toasts ...auth.Toast) {
	errs := ed.Violations()
	if errs == nil {
		errs = validation.Violations{}
	}
	saveErr := ""
	if err := ed.Err(); err != nil {
		saveErr = err.Error()
	}
	profile, _ := policy.ProfileFromContext(r.Context())
	data := map[string]any{
		"Kind":       string(c.kind),
		"Plural":     c.kind.Plural(),
		"Rows":       ed.Rows(),
		"Editing":    ed.Editing(),
		"Form":       ed.Form(),
		"Errors":     errs,
		"SaveError":  saveErr,
		"ListFailed": ed.ListErr() != nil,
		"Profile":    profile,
		"Toasts":     toasts,
	}
	for k, v := range c.extra {
		data[k] = v
	}
	page := "admin/" + c.kind.Plural() + ".html"
	if err := view.RenderStatus(w, r, status, page, data); err != nil {
		renderError(c.log, w, page, err)
	}
}

func (c *AdminConsole[R]) browse(r *http.Request, ed *console.Editor[R]) {
	if err := ed.Browse(r.Context()); err != nil {
		c.log.Error("admin list", zap.String("kind", string(c.kind)), zap.Error(err))
	}
}

func (c *AdminConsole[R]) redirect(w http.ResponseWriter, r *http.Request, t auth.Toast) {
	flashTo(c.flash, c.log, w, r, t)
	http.Redirect(w, r, c.base(), http.StatusSeeOther)
}

// List shows every row of the kind regardless of stock.
func (c *AdminConsole[R]) List(w http.ResponseWriter, r *http.Request) {
	ed := c.editor()
	c.browse(r, ed)
	c.render(w, r, http.StatusOK, ed)
}

// New opens a blank form above the list.
func (c *AdminConsole[R]) New(w http.ResponseWriter, r *http.Request) {
	ed := c.editor()
	ed.Add()
	c.browse(r, ed)
	c.render(w, r, http.StatusOK, ed)
}

// Edit opens the form on row {id}.
func (c *AdminConsole[R]) Edit(w http.ResponseWriter, r *http.Request) {
	ed := c.editor()
	if err := ed.Edit(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.redirect(w, r, auth.Toast{Kind: auth.ToastError, Title: "toast.error", Message: "admin.not_found"})
			return
		}
		c.log.Error("admin edit", zap.String("kind", string(c.kind)), zap.Error(err))
	}
	c.render(w, r, http.StatusOK, ed)
}

// Submit saves the posted form. Field errors and store failures render
// the form again with what was typed.
func (c *AdminConsole[R]) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	ed := c.editor()
	ed.Open(c.binder.Read(r.PostForm))
	op, err := ed.Submit(r.Context())
	switch {
	case err == nil:
		msg := "admin.created"
		if op == console.OpUpdate {
			msg = "admin.updated"
		}
		c.log.Info("catalog write", zap.String("kind", string(c.kind)), zap.String("op", string(op)))
		c.redirect(w, r, auth.Toast{Kind: auth.ToastSuccess, Title: "toast.success", Message: msg})
	case errors.Is(err, console.ErrInvalid):
		c.browse(r, ed)
		c.render(w, r, http.StatusUnprocessableEntity, ed)
	default:
		c.log.Warn("catalog write failed", zap.String("kind", string(c.kind)), zap.String("op", string(op)), zap.Error(err))
		c.browse(r, ed)
		c.render(w, r, http.StatusUnprocessableEntity, ed,
			auth.Toast{Kind: auth.ToastError, Title: "toast.error", Message: "admin.save_failed"})
	}
}

// Delete removes row {id} at once.
func (c *AdminConsole[R]) Delete(w http.ResponseWriter, r *http.Request) {
	ed := c.editor()
	if err := ed.Delete(r.Context(), r.PathValue("id")); err != nil {
		c.log.Warn("catalog delete failed", zap.String("kind", string(c.kind)), zap.Error(err))
		c.redirect(w, r, auth.Toast{Kind: auth.ToastError, Title: "toast.error", Message: "admin.delete_failed"})
		return
	}
	c.redirect(w, r, auth.Toast{Kind: auth.ToastSuccess, Title: "toast.success", Message: "admin.deleted"})
}

// Export downloads every row of the kind as CSV.
func (c *AdminConsole[R]) Export(w http.ResponseWriter, r *http.Request) {
	rows, err := c.store.List(r.Context(), nil)
	if err != nil {
		c.log.Error("export", zap.String("kind", string(c.kind)), zap.Error(err))
		c.redirect(w, r, auth.Toast{Kind: auth.ToastError, Title: "toast.error", Message: "admin.list_failed"})
		return
	}
	var buf bytes.Buffer
	if err := c.export(&buf, rows); err != nil {
		c.log.Error("export", zap.String("kind", string(c.kind)), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+catalog.FileName(c.kind, c.now())+`"`)
	_, _ = w.Write(buf.Bytes())
}
