// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for ThemeMarket.
// Handlers are grouped by concern (admin, public, auth) and receive
// their dependencies through the handler struct.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"thememarket/internal/admin"
	"thememarket/internal/middleware"
	"thememarket/internal/models"
	"thememarket/internal/render"
	"thememarket/internal/schema"
	"thememarket/internal/session"
	"thememarket/internal/storage"
	"thememarket/internal/store"
)

const (
	// maxFormMemory bounds the in-memory part of multipart admin forms.
	maxFormMemory = 32 << 20

	// uploadSuffix marks the file input paired with an image field.
	uploadSuffix = "__upload"
)

// AdminTemplates lists the admin page templates rendered by this package.
var AdminTemplates = []string{"index", "list", "form", "login", "error"}

// Admin groups the schema-driven admin panel handlers. Every registered
// entity gets list, add, edit and delete views built from its descriptor
// and admin options.
type Admin struct {
	renderer *render.Renderer
	sessions *session.Store
	records  *store.RecordStore
	storage  *storage.Client
	registry *schema.Registry
}

// NewAdmin creates a new Admin handler group. storageClient may be nil
// when S3 is not configured; image fields then accept URLs only.
func NewAdmin(renderer *render.Renderer, sessions *session.Store, records *store.RecordStore, storageClient *storage.Client) *Admin {
	return &Admin{
		renderer: renderer,
		sessions: sessions,
		records:  records,
		storage:  storageClient,
		registry: schema.Default,
	}
}

// Index renders the grouped model index.
func (a *Admin) Index(w http.ResponseWriter, r *http.Request) {
	a.page(w, r, "index", &render.PageData{Title: "Site administration"})
}

// List renders the change list of one entity with its filters, search
// and list-editable columns.
func (a *Admin) List(w http.ResponseWriter, r *http.Request) {
	e, ok := a.entity(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	opts := admin.OptionsFor(e)
	query := r.URL.Query()

	lq := store.ListQuery{
		Filters:      make(map[string]string),
		Search:       query.Get("q"),
		SearchFields: opts.SearchFields,
	}
	for _, name := range opts.ListFilter {
		if v := query.Get(name); v != "" {
			lq.Filters[name] = v
		}
	}

	rows, err := a.records.List(ctx, e, lq)
	if err != nil {
		a.serverError(w, r, "list records failed", err)
		return
	}
	count, err := a.records.Count(ctx, e)
	if err != nil {
		a.serverError(w, r, "count records failed", err)
		return
	}
	fks, err := a.fkChoices(ctx, fkRefs(e, append(append([]string{}, opts.ListDisplay...), opts.ListFilter...)))
	if err != nil {
		a.serverError(w, r, "load choices failed", err)
		return
	}

	a.page(w, r, "list", &render.PageData{
		Title:   admin.Label(e),
		Section: e.Name,
		Data: map[string]any{
			"Label":         admin.Label(e),
			"Entity":        e,
			"ExportURL":     admin.ListURL(e.Name) + "export.xlsx",
			"CanAdd":        opts.CanAdd(count > 0),
			"AddURL":        admin.AddURL(e.Name),
			"ListURL":       admin.ListURL(e.Name),
			"EditURLPrefix": admin.ListURL(e.Name),
			"InlineURL":     admin.ListURL(e.Name) + "inline/",
			"Searchable":    len(opts.SearchFields) > 0,
			"Search":        lq.Search,
			"Filters":       listFilters(e, opts, query, fks),
			"Columns":       listColumns(e, opts),
			"Rows":          listRows(e, opts, rows, fks),
			"Total":         len(rows),
			"HasEditable":   len(opts.ListEditable) > 0,
		},
	})
}

// Add renders the blank form of a new row.
func (a *Admin) Add(w http.ResponseWriter, r *http.Request) {
	e, ok := a.entity(w, r)
	if !ok {
		return
	}
	opts := admin.OptionsFor(e)
	if !a.canAdd(w, r, e, opts) {
		return
	}

	inlines := make(map[string][]values)
	for _, in := range opts.Inlines {
		inlines[in.Entity] = blankRows(a.registry.MustGet(in.Entity), in.Extra)
	}
	a.renderForm(w, r, formState{
		entity:  e,
		opts:    opts,
		isNew:   true,
		values:  defaultValues(e),
		inlines: inlines,
	})
}

// Create saves a new row and its inline children.
func (a *Admin) Create(w http.ResponseWriter, r *http.Request) {
	e, ok := a.entity(w, r)
	if !ok {
		return
	}
	opts := admin.OptionsFor(e)
	if !a.canAdd(w, r, e, opts) {
		return
	}
	a.save(w, r, e, opts, 0)
}

// Edit renders the change form of an existing row.
func (a *Admin) Edit(w http.ResponseWriter, r *http.Request) {
	e, ok := a.entity(w, r)
	if !ok {
		return
	}
	id, ok := a.rowID(w, r, e)
	if !ok {
		return
	}
	ctx := r.Context()
	opts := admin.OptionsFor(e)

	rec, err := a.records.Get(ctx, e, id)
	if err != nil {
		a.serverError(w, r, "get record failed", err)
		return
	}
	if rec == nil {
		a.notFound(w, r, e)
		return
	}

	inlines := make(map[string][]values)
	for _, in := range opts.Inlines {
		child := a.registry.MustGet(in.Entity)
		kids, err := a.records.Children(ctx, child, id)
		if err != nil {
			a.serverError(w, r, "list children failed", err)
			return
		}
		rows := make([]values, 0, len(kids)+in.Extra)
		for _, k := range kids {
			rows = append(rows, recordValues(child, k))
		}
		inlines[in.Entity] = append(rows, blankRows(child, in.Extra)...)
	}

	a.renderForm(w, r, formState{
		entity:  e,
		opts:    opts,
		id:      id,
		values:  recordValues(e, rec),
		inlines: inlines,
	})
}

// Update saves changes to an existing row and syncs its inline children.
func (a *Admin) Update(w http.ResponseWriter, r *http.Request) {
	e, ok := a.entity(w, r)
	if !ok {
		return
	}
	id, ok := a.rowID(w, r, e)
	if !ok {
		return
	}
	a.save(w, r, e, admin.OptionsFor(e), id)
}

// Delete removes one row. Singleton rows are protected.
func (a *Admin) Delete(w http.ResponseWriter, r *http.Request) {
	e, ok := a.entity(w, r)
	if !ok {
		return
	}
	id, ok := a.rowID(w, r, e)
	if !ok {
		return
	}
	if !admin.OptionsFor(e).CanDelete() {
		a.errorPage(w, r, http.StatusForbidden, "Forbidden", "A "+e.Verbose+" cannot be deleted.")
		return
	}

	// Loaded first so uploaded images can be removed after the rows are gone.
	images, err := a.uploadsOf(r.Context(), e, id)
	if err != nil {
		a.serverError(w, r, "load record images failed", err)
		return
	}

	err = a.records.Delete(r.Context(), e, id)
	switch {
	case errors.Is(err, store.ErrProtected):
		a.errorPage(w, r, http.StatusForbidden, "Forbidden", "A "+e.Verbose+" cannot be deleted.")
		return
	case errors.Is(err, store.ErrNotFound):
		a.notFound(w, r, e)
		return
	case errors.Is(err, store.ErrIntegrity):
		a.flash(r, "error", fmt.Sprintf("The %s could not be deleted because other records still use it.", e.Verbose))
		a.redirect(w, r, admin.EditURL(e.Name, id))
		return
	case err != nil:
		a.serverError(w, r, "delete record failed", err)
		return
	}

	slog.Info("record deleted", "entity", e.Name, "id", id, "user", sessionEmail(r))
	a.removeUploads(r.Context(), images, nil)
	a.flash(r, "success", fmt.Sprintf("The %s was deleted successfully.", e.Verbose))
	a.redirect(w, r, admin.ListURL(e.Name))
}

// SaveList applies list-editable changes posted from the change list.
// Every row is validated before any is written, and the rows are written
// in one transaction.
func (a *Admin) SaveList(w http.ResponseWriter, r *http.Request) {
	e, ok := a.entity(w, r)
	if !ok {
		return
	}
	opts := admin.OptionsFor(e)
	if len(opts.ListEditable) == 0 {
		a.errorPage(w, r, http.StatusBadRequest, "Bad Request", e.Plural+" have no editable columns.")
		return
	}
	if err := r.ParseForm(); err != nil {
		a.errorPage(w, r, http.StatusBadRequest, "Bad Request", "The submitted form could not be read.")
		return
	}

	var (
		changes = make(map[int64]schema.Values)
		errs    []string
	)
	for _, raw := range r.PostForm["ids"] {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		form := listEditableValues(r.PostForm, raw, opts.ListEditable)
		names := make([]string, 0, len(form))
		for _, n := range opts.ListEditable {
			if _, ok := form[n]; ok {
				names = append(names, n)
			}
		}
		if len(names) == 0 {
			continue
		}
		vals, err := e.ParseFields(form, names)
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			for field, msg := range verr.Fields {
				errs = append(errs, fmt.Sprintf("#%d %s: %s", id, field, msg))
			}
			continue
		}
		if err != nil {
			a.serverError(w, r, "parse list row failed", err)
			return
		}
		changes[id] = vals
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		a.flash(r, "error", "Please correct the errors below. "+strings.Join(errs, "; "))
		a.redirect(w, r, admin.ListURL(e.Name))
		return
	}

	failed, err := a.records.UpdateMany(r.Context(), e, changes)
	var ierr *store.IntegrityError
	switch {
	case errors.As(err, &ierr):
		a.flash(r, "error", fmt.Sprintf("#%d: %s", failed, integrityMessage(e, ierr)))
		a.redirect(w, r, admin.ListURL(e.Name))
		return
	case err != nil:
		a.serverError(w, r, "update list rows failed", err)
		return
	}

	slog.Info("records changed", "entity", e.Name, "count", len(changes), "user", sessionEmail(r))
	a.flash(r, "success", changedMessage(e, len(changes)))
	a.redirect(w, r, admin.ListURL(e.Name))
}

// changedMessage reports how many rows a list save changed.
func changedMessage(e *schema.Entity, n int) string {
	if n == 1 {
		return fmt.Sprintf("1 %s was changed successfully.", e.Verbose)
	}
	return fmt.Sprintf("%d %s were changed successfully.", n, e.Plural)
}

// Export streams every row of an entity as an Excel workbook.
func (a *Admin) Export(w http.ResponseWriter, r *http.Request) {
	e, ok := a.entity(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	rows, err := a.records.List(ctx, e, store.ListQuery{})
	if err != nil {
		a.serverError(w, r, "export list failed", err)
		return
	}
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Name)
	}
	fks, err := a.fkChoices(ctx, fkRefs(e, names))
	if err != nil {
		a.serverError(w, r, "export choices failed", err)
		return
	}

	book, err := exportWorkbook(e, rows, fks)
	if err != nil {
		a.serverError(w, r, "build workbook failed", err)
		return
	}
	defer book.Close()

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, e.Table))
	if err := book.Write(w); err != nil {
		slog.Error("write workbook failed", "error", err, "entity", e.Name)
	}
}

// formState is everything needed to draw an add or change form.
type formState struct {
	entity  *schema.Entity
	opts    admin.Options
	id      int64
	isNew   bool
	values  values
	inlines map[string][]values
	errors  map[string]string
	message string
	status  int
}

// save parses, validates and writes a submitted form. id is zero for a
// new row.
func (a *Admin) save(w http.ResponseWriter, r *http.Request, e *schema.Entity, opts admin.Options, id int64) {
	ctx := r.Context()
	isNew := id == 0
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		a.errorPage(w, r, http.StatusBadRequest, "Bad Request", "The submitted form could not be read.")
		return
	}
	form := r.PostForm

	verr := &schema.ValidationError{}
	a.applyUploads(ctx, r, e.Table, form, verr)
	prepopulate(e, opts, form)

	var names []string
	for _, n := range opts.FormFields() {
		if f, ok := e.Field(n); ok && f.Writable() {
			names = append(names, n)
		}
	}
	vals, err := e.ParseFields(form, names)
	var fieldErrs *schema.ValidationError
	switch {
	case errors.As(err, &fieldErrs):
		for field, msg := range fieldErrs.Fields {
			verr.Add(field, msg)
		}
	case err != nil:
		a.serverError(w, r, "parse form failed", err)
		return
	}

	children := make(map[string][]schema.Values, len(opts.Inlines))
	for _, in := range opts.Inlines {
		children[in.Entity] = parseInline(form, a.registry.MustGet(in.Entity), in, verr)
	}

	state := formState{
		entity:  e,
		opts:    opts,
		id:      id,
		isNew:   isNew,
		values:  formValues(form, ""),
		inlines: make(map[string][]values, len(opts.Inlines)),
	}
	for _, in := range opts.Inlines {
		state.inlines[in.Entity] = inlineRowValues(form, in.Entity)
	}

	if len(verr.Fields) > 0 {
		state.errors = verr.Fields
		state.message = "Please correct the errors below."
		state.status = http.StatusUnprocessableEntity
		a.renderForm(w, r, state)
		return
	}

	var before []string
	if isNew {
		id, err = a.records.Create(ctx, e, vals, children)
	} else if before, err = a.uploadsOf(ctx, e, id); err == nil {
		err = a.records.Update(ctx, e, id, vals, children)
	}
	var ierr *store.IntegrityError
	switch {
	case errors.As(err, &ierr):
		state.errors = map[string]string{}
		if ierr.Field != "" {
			state.errors[ierr.Field] = integrityMessage(e, ierr)
		}
		state.message = integrityMessage(e, ierr)
		state.status = http.StatusConflict
		a.renderForm(w, r, state)
		return
	case errors.Is(err, store.ErrNotFound):
		a.notFound(w, r, e)
		return
	case err != nil:
		a.serverError(w, r, "save record failed", err)
		return
	}

	verb := "changed"
	if isNew {
		verb = "added"
	}
	slog.Info("record saved", "entity", e.Name, "id", id, "action", verb, "user", sessionEmail(r))
	if len(before) > 0 {
		after, err := a.uploadsOf(ctx, e, id)
		if err != nil {
			slog.Warn("load saved images failed", "error", err, "entity", e.Name, "id", id)
		} else {
			a.removeUploads(ctx, before, after)
		}
	}
	a.flash(r, "success", fmt.Sprintf("The %s “%s” was %s successfully.", e.Verbose, formatValue(vals[e.Display]), verb))

	if form.Get("_continue") != "" {
		a.redirect(w, r, admin.EditURL(e.Name, id))
		return
	}
	a.redirect(w, r, admin.ListURL(e.Name))
}

// applyUploads stores every posted image file and writes its public URL
// into the paired field.
func (a *Admin) applyUploads(ctx context.Context, r *http.Request, dir string, form url.Values, verr *schema.ValidationError) {
	if r.MultipartForm == nil {
		return
	}
	for name, files := range r.MultipartForm.File {
		if !strings.HasSuffix(name, uploadSuffix) || len(files) == 0 || files[0].Size == 0 {
			continue
		}
		target := strings.TrimSuffix(name, uploadSuffix)
		if a.storage == nil {
			verr.Add(target, "Image uploads are not configured.")
			continue
		}
		fh := files[0]
		file, err := fh.Open()
		if err != nil {
			verr.Add(target, "The uploaded file could not be read.")
			continue
		}
		up, err := a.storage.UploadImage(ctx, dir, fh.Filename, file)
		file.Close()
		if err != nil {
			slog.Warn("image upload rejected", "error", err, "field", target, "filename", fh.Filename)
			verr.Add(target, "Upload a valid image. The file you uploaded was either not an image or too large.")
			continue
		}
		slog.Info("image uploaded", "key", up.Key, "size", up.HumanSize())
		form.Set(target, up.URL)
	}
}

// storedImages returns the image URLs held by a row and, recursively, by
// every row referencing it. Foreign keys cascade on delete, so these are
// the images a delete takes with it.
func (a *Admin) storedImages(ctx context.Context, e *schema.Entity, rec store.Record) ([]string, error) {
	if rec == nil {
		return nil, nil
	}
	urls := imageValues(e, rec)
	id := strconv.FormatInt(rec.ID(), 10)
	for _, ref := range a.registry.All() {
		for i := range ref.Fields {
			f := &ref.Fields[i]
			if f.Kind != schema.KindForeignKey || f.Ref != e.Name {
				continue
			}
			rows, err := a.records.List(ctx, ref, store.ListQuery{Filters: map[string]string{f.Name: id}})
			if err != nil {
				return nil, err
			}
			for _, row := range rows {
				more, err := a.storedImages(ctx, ref, row)
				if err != nil {
					return nil, err
				}
				urls = append(urls, more...)
			}
		}
	}
	return urls, nil
}

func imageValues(e *schema.Entity, rec store.Record) []string {
	var out []string
	for i := range e.Fields {
		f := &e.Fields[i]
		if f.Kind != schema.KindImage {
			continue
		}
		if u, _ := rec[f.Name].(string); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// removeUploads deletes the stored objects behind urls, except those still
// listed in keep. Seeded and external URLs are left alone. Failures are
// only logged: the rows no longer point at the objects.
func (a *Admin) removeUploads(ctx context.Context, urls, keep []string) {
	if a.storage == nil {
		return
	}
	kept := make(map[string]bool, len(keep))
	for _, u := range keep {
		kept[u] = true
	}
	for _, u := range urls {
		if kept[u] {
			continue
		}
		kept[u] = true
		key, ok := a.storage.ExtractKey(u)
		if !ok {
			continue
		}
		if err := a.storage.Delete(ctx, key); err != nil {
			slog.Warn("image delete failed", "error", err, "key", key)
			continue
		}
		slog.Info("image deleted", "key", key)
	}
}

// uploadsOf loads the images of row id and its dependents when storage is
// configured.
func (a *Admin) uploadsOf(ctx context.Context, e *schema.Entity, id int64) ([]string, error) {
	if a.storage == nil {
		return nil, nil
	}
	rec, err := a.records.Get(ctx, e, id)
	if err != nil {
		return nil, err
	}
	return a.storedImages(ctx, e, rec)
}

// renderForm draws the add or change form from string values.
func (a *Admin) renderForm(w http.ResponseWriter, r *http.Request, st formState) {
	ctx := r.Context()
	e, opts := st.entity, st.opts

	fks, err := a.fkChoices(ctx, fkRefs(e, opts.FormFields()))
	if err != nil {
		a.serverError(w, r, "load choices failed", err)
		return
	}

	multipart := false
	var fieldsets []formFieldset
	for _, fs := range opts.FormFieldsets() {
		set := formFieldset{Name: fs.Name}
		for _, name := range fs.Fields {
			f, ok := e.Field(name)
			if !ok {
				continue
			}
			ff := newFormField(f, name, st.values, fks, st.errors)
			for target, source := range opts.Prepopulated {
				if target == name {
					ff.Prepopulate = source
				}
			}
			if f.Kind == schema.KindImage && a.storage != nil {
				ff.Uploadable = true
				multipart = true
			}
			set.Fields = append(set.Fields, ff)
		}
		fieldsets = append(fieldsets, set)
	}

	var inlines []inlineForm
	for _, in := range opts.Inlines {
		child := a.registry.MustGet(in.Entity)
		childFks, err := a.fkChoices(ctx, fkRefs(child, in.Fields))
		if err != nil {
			a.serverError(w, r, "load inline choices failed", err)
			return
		}
		form := inlineForm{Entity: child.Name, Label: child.Plural}
		for _, name := range in.Fields {
			if f, ok := child.Field(name); ok {
				form.Headers = append(form.Headers, f.Label)
			}
		}
		for i, rv := range st.inlines[in.Entity] {
			row := inlineRow{
				IDName:     inlineName(child.Name, i, "id"),
				ID:         rv["id"],
				DeleteName: inlineName(child.Name, i, "DELETE"),
			}
			for _, name := range in.Fields {
				f, ok := child.Field(name)
				if !ok {
					continue
				}
				ff := newFormField(f, inlineName(child.Name, i, name), rv, childFks, st.errors)
				if f.Kind == schema.KindImage && a.storage != nil {
					ff.Uploadable = true
					multipart = true
				}
				row.Fields = append(row.Fields, ff)
			}
			form.Rows = append(form.Rows, row)
		}
		inlines = append(inlines, form)
	}

	title := "Change " + e.Verbose
	action := admin.EditURL(e.Name, st.id)
	if st.isNew {
		title = "Add " + e.Verbose
		action = admin.AddURL(e.Name)
	}

	a.page(w, r, "form", &render.PageData{
		Title:   title,
		Section: e.Name,
		Status:  st.status,
		Data: map[string]any{
			"Entity":    e,
			"IsNew":     st.isNew,
			"Label":     admin.Label(e),
			"ListURL":   admin.ListURL(e.Name),
			"Action":    action,
			"Multipart": multipart,
			"Error":     st.message,
			"Fieldsets": fieldsets,
			"Inlines":   inlines,
			"CanDelete": !st.isNew && opts.CanDelete() && sessionCanDelete(r),
			"DeleteURL": admin.EditURL(e.Name, st.id) + "delete/",
		},
	})
}

// fkChoices loads the selectable rows of every referenced entity.
func (a *Admin) fkChoices(ctx context.Context, refs []string) (fkChoices, error) {
	out := make(fkChoices, len(refs))
	for _, name := range refs {
		ref := a.registry.MustGet(name)
		rows, err := a.records.List(ctx, ref, store.ListQuery{})
		if err != nil {
			return nil, fmt.Errorf("choices for %s: %w", name, err)
		}
		opts := make([]option, 0, len(rows))
		for _, row := range rows {
			id := strconv.FormatInt(row.ID(), 10)
			label := formatValue(row[ref.Display])
			if label == "" {
				label = ref.Verbose + " #" + id
			}
			opts = append(opts, option{Value: id, Label: label})
		}
		out[name] = opts
	}
	return out, nil
}

// canAdd enforces the singleton guard. It writes the response and
// returns false when no further row may be added.
func (a *Admin) canAdd(w http.ResponseWriter, r *http.Request, e *schema.Entity, opts admin.Options) bool {
	if !e.Singleton {
		return true
	}
	count, err := a.records.Count(r.Context(), e)
	if err != nil {
		a.serverError(w, r, "count records failed", err)
		return false
	}
	if opts.CanAdd(count > 0) {
		return true
	}
	if r.Method == http.MethodGet {
		a.flash(r, "warning", fmt.Sprintf("Only one %s may exist. Edit the existing one instead.", e.Verbose))
		a.redirect(w, r, admin.ListURL(e.Name))
		return false
	}
	a.errorPage(w, r, http.StatusForbidden, "Forbidden", fmt.Sprintf("Only one %s may exist.", e.Verbose))
	return false
}

// entity resolves the {model} URL parameter.
func (a *Admin) entity(w http.ResponseWriter, r *http.Request) (*schema.Entity, bool) {
	e, ok := a.registry.Lookup(chi.URLParam(r, "model"))
	if !ok {
		a.errorPage(w, r, http.StatusNotFound, "Not Found", "There is no such model.")
		return nil, false
	}
	return e, true
}

// rowID parses the {id} URL parameter.
func (a *Admin) rowID(w http.ResponseWriter, r *http.Request, e *schema.Entity) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		a.notFound(w, r, e)
		return 0, false
	}
	return id, true
}

// page renders an admin template with the pending flash messages.
func (a *Admin) page(w http.ResponseWriter, r *http.Request, name string, data *render.PageData) {
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil && a.sessions != nil {
		flashes, err := a.sessions.PopFlashes(r.Context(), r, sess)
		if err != nil {
			slog.Warn("pop flashes failed", "error", err)
		}
		data.Flashes = flashes
	}
	a.renderer.Page(w, r, name, data)
}

// flash queues a message for the next admin page.
func (a *Admin) flash(r *http.Request, typ, msg string) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil || a.sessions == nil {
		return
	}
	if err := a.sessions.AddFlash(r.Context(), r, sess, session.Flash{Type: typ, Message: msg}); err != nil {
		slog.Warn("add flash failed", "error", err)
	}
}

// redirect sends the browser to target. HTMX requests get HX-Redirect so
// the whole page navigates.
func (a *Admin) redirect(w http.ResponseWriter, r *http.Request, target string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (a *Admin) notFound(w http.ResponseWriter, r *http.Request, e *schema.Entity) {
	a.errorPage(w, r, http.StatusNotFound, "Not Found", fmt.Sprintf("The %s you are looking for does not exist.", e.Verbose))
}

func (a *Admin) errorPage(w http.ResponseWriter, r *http.Request, status int, title, msg string) {
	a.renderer.Page(w, r, "error", &render.PageData{
		Title:  title,
		Status: status,
		Data:   map[string]any{"Message": msg},
	})
}

func (a *Admin) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slog.Error(msg, "error", err, "path", r.URL.Path)
	a.errorPage(w, r, http.StatusInternalServerError, "Server Error", "An unexpected error occurred.")
}

// integrityMessage names the field behind a constraint violation.
func integrityMessage(e *schema.Entity, ierr *store.IntegrityError) string {
	if f, ok := e.Field(ierr.Field); ok {
		return fmt.Sprintf("%s with this %s already exists.", e.Verbose, f.Label)
	}
	return fmt.Sprintf("The %s conflicts with existing data.", e.Verbose)
}

// blankRows returns n empty inline rows. Only checkbox defaults are
// filled in, so an untouched row still counts as blank.
func blankRows(child *schema.Entity, n int) []values {
	out := make([]values, n)
	for i := range out {
		v := values{}
		for _, f := range child.Fields {
			if b, ok := f.Default.(bool); ok {
				v[f.Name] = formatValue(b)
			}
		}
		out[i] = v
	}
	return out
}

func sessionEmail(r *http.Request) string {
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		return sess.Email
	}
	return ""
}

func sessionCanDelete(r *http.Request) bool {
	sess := middleware.SessionFromCtx(r.Context())
	return sess != nil && models.Role(sess.Role).CanDelete()
}
